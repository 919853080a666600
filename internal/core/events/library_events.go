package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRegistered = "user.registered"
	EventTypeLibraryCreated = "library.created"
	EventTypeMemberAdded    = "library.member_added"
)

type UserRegisteredEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func NewUserRegisteredEvent(userID int64, username string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"username": username,
			},
		},
		UserID:   userID,
		Username: username,
	}
}

type LibraryCreatedEvent struct {
	BaseEvent
	LibraryID int64  `json:"library_id"`
	Name      string `json:"name"`
	CreatorID int64  `json:"creator_id"`
}

func NewLibraryCreatedEvent(libraryID int64, name string, creatorID int64) *LibraryCreatedEvent {
	return &LibraryCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLibraryCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"library_id": libraryID,
				"name":       name,
				"creator_id": creatorID,
			},
		},
		LibraryID: libraryID,
		Name:      name,
		CreatorID: creatorID,
	}
}

type MemberAddedEvent struct {
	BaseEvent
	LibraryID int64 `json:"library_id"`
	UserID    int64 `json:"user_id"`
	RoleID    int64 `json:"role_id"`
}

func NewMemberAddedEvent(libraryID, userID, roleID int64) *MemberAddedEvent {
	return &MemberAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMemberAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"library_id": libraryID,
				"user_id":    userID,
				"role_id":    roleID,
			},
		},
		LibraryID: libraryID,
		UserID:    userID,
		RoleID:    roleID,
	}
}
