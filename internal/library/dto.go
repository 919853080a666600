package library

import (
	"github.com/avelasqz/library-management/internal"
)

type CreateLibraryDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (dto CreateLibraryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name", "name is required")
	}
	if dto.Address == "" {
		return internal.NewValidationError("address", "address is required")
	}
	return nil
}

type AddMemberDTO struct {
	LibraryID int64 `json:"library_id"`
	UserID    int64 `json:"user_id"`
	RoleID    int64 `json:"role_id"`
}

func (dto AddMemberDTO) Validate() error {
	if dto.LibraryID <= 0 {
		return internal.NewValidationError("library_id", "library_id is required")
	}
	if dto.UserID <= 0 {
		return internal.NewValidationError("user_id", "user_id is required")
	}
	if dto.RoleID <= 0 {
		return internal.NewValidationError("role_id", "role_id is required")
	}
	return nil
}

// LibraryPatch is a partial update: only non-nil fields are applied.
type LibraryPatch struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (p LibraryPatch) Apply(l *Library) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
}

func (p LibraryPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return internal.NewValidationError("name", "name cannot be empty")
	}
	if p.Address != nil && *p.Address == "" {
		return internal.NewValidationError("address", "address cannot be empty")
	}
	return nil
}
