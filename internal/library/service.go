package library

import (
	"context"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
	"github.com/avelasqz/library-management/internal/core/events"
)

// Gate is the authorization decision applied to protected operations.
// Satisfied by auth.Gate.
type Gate interface {
	Require(user *auth.User, libraryID *int64, code string) error
}

type Service struct {
	repo Repository
	gate Gate
	bus  *events.EventBus
}

// NewService wires the library domain. bus may be nil when no subscriber
// cares about library events.
func NewService(repo Repository, gate Gate, bus *events.EventBus) *Service {
	return &Service{
		repo: repo,
		gate: gate,
		bus:  bus,
	}
}

func (s *Service) publish(event events.Event) {
	if s.bus != nil {
		s.bus.Publish(context.Background(), event)
	}
}

// Create registers a library and bootstraps the creator as its first
// member holding the owner role.
func (s *Service) Create(dto CreateLibraryDTO, creatorID int64) (*Library, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkUnique(dto.Name, dto.Address, 0); err != nil {
		return nil, err
	}

	l := &Library{
		Name:    dto.Name,
		Address: dto.Address,
	}
	if err := s.repo.Create(l); err != nil {
		return nil, err
	}

	if _, err := s.AddMember(AddMemberDTO{
		LibraryID: l.ID,
		UserID:    creatorID,
		RoleID:    OwnerRoleID,
	}); err != nil {
		return nil, err
	}

	s.publish(events.NewLibraryCreatedEvent(l.ID, l.Name, creatorID))
	return l, nil
}

func (s *Service) GetByID(id int64) (*Library, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("library_id", "invalid id")
	}
	return s.repo.GetByID(id)
}

// Members lists the users belonging to a library.
func (s *Service) Members(libraryID int64) ([]Member, error) {
	if _, err := s.repo.GetByID(libraryID); err != nil {
		return nil, err
	}
	return s.repo.Members(libraryID)
}

// AddMember grants a role to a user within a library, creating the
// membership row on first join. Membership and first role assignment are
// written atomically: a member always holds at least one role.
func (s *Service) AddMember(dto AddMemberDTO) (*Membership, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(dto.LibraryID); err != nil {
		return nil, err
	}
	if ok, err := s.repo.UserExists(dto.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, internal.NewNotFoundError("User", "id", dto.UserID)
	}
	if ok, err := s.repo.RoleExists(dto.RoleID); err != nil {
		return nil, err
	} else if !ok {
		return nil, internal.NewNotFoundError("Role", "id", dto.RoleID)
	}

	membership, err := s.repo.GetMembership(dto.LibraryID, dto.UserID)
	if err != nil && !internal.IsNotFound(err) {
		return nil, err
	}

	assignment := &RoleAssignment{
		UserID:    dto.UserID,
		RoleID:    dto.RoleID,
		LibraryID: dto.LibraryID,
	}

	if membership != nil {
		// already a member: this adds one more role
		if _, err := s.repo.GetAssignment(dto.UserID, dto.RoleID, dto.LibraryID); err == nil {
			return nil, internal.NewAlreadyExistsError("RoleAssignment", "role_id", dto.RoleID)
		} else if !internal.IsNotFound(err) {
			return nil, err
		}
		if err := s.repo.CreateAssignment(assignment); err != nil {
			return nil, err
		}
		s.publish(events.NewMemberAddedEvent(dto.LibraryID, dto.UserID, dto.RoleID))
		return membership, nil
	}

	membership = &Membership{
		LibraryID: dto.LibraryID,
		UserID:    dto.UserID,
	}
	if err := s.repo.CreateMembershipWithRole(membership, assignment); err != nil {
		return nil, err
	}
	s.publish(events.NewMemberAddedEvent(dto.LibraryID, dto.UserID, dto.RoleID))
	return membership, nil
}

// AddMemberAs is the gate-protected variant used by the HTTP surface.
func (s *Service) AddMemberAs(caller *auth.User, dto AddMemberDTO) (*Membership, error) {
	if err := s.gate.Require(caller, &dto.LibraryID, "library:member:add"); err != nil {
		return nil, err
	}
	return s.AddMember(dto)
}

// Update applies a partial patch. Requires library:update in the target
// library.
func (s *Service) Update(caller *auth.User, libraryID int64, patch LibraryPatch) (*Library, error) {
	if err := s.gate.Require(caller, &libraryID, "library:update"); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(libraryID)
	if err != nil {
		return nil, err
	}

	name := l.Name
	address := l.Address
	if patch.Name != nil {
		name = *patch.Name
	}
	if patch.Address != nil {
		address = *patch.Address
	}
	if err := s.checkUnique(name, address, libraryID); err != nil {
		return nil, err
	}

	patch.Apply(l)
	if err := s.repo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a library. Requires library:delete in the target library.
func (s *Service) Delete(caller *auth.User, libraryID int64) error {
	if err := s.gate.Require(caller, &libraryID, "library:delete"); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(libraryID); err != nil {
		return err
	}
	return s.repo.Delete(libraryID)
}

func (s *Service) checkUnique(name, address string, selfID int64) error {
	if existing, err := s.repo.GetByName(name); err == nil && existing.ID != selfID {
		return internal.NewAlreadyExistsError("Library", "name", name)
	} else if err != nil && !internal.IsNotFound(err) {
		return err
	}

	if existing, err := s.repo.GetByAddress(address); err == nil && existing.ID != selfID {
		return internal.NewAlreadyExistsError("Library", "address", address)
	} else if err != nil && !internal.IsNotFound(err) {
		return err
	}

	return nil
}
