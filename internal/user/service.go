package user

import (
	"context"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/core/events"
)

// PasswordHasher is satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	bus    *events.EventBus
}

// NewService wires the user domain. bus may be nil.
func NewService(repo Repository, hasher PasswordHasher, bus *events.EventBus) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		bus:    bus,
	}
}

// Create registers a new user. Username and email must be unique; the
// password is stored only as a bcrypt hash.
func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkUnique(dto.Username, dto.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.NewUserRegisteredEvent(u.ID, u.Username))
	}
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("id", "invalid id")
	}
	return s.repo.GetByID(id)
}

func (s *Service) GetByUsername(username string) (*User, error) {
	return s.repo.GetByUsername(username)
}

func (s *Service) GetByEmail(email string) (*User, error) {
	if err := internal.ValidateEmailFormat(email); err != nil {
		return nil, err
	}
	return s.repo.GetByEmail(email)
}

// Update applies a partial patch to the user.
func (s *Service) Update(id int64, patch UserPatch) (*User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	username := u.Username
	email := u.Email
	if patch.Username != nil {
		username = *patch.Username
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := s.checkUnique(username, email, id); err != nil {
		return nil, err
	}

	patch.Apply(u)
	if patch.Password != nil {
		hash, err := s.hasher.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Libraries lists the libraries the user is a member of.
func (s *Service) Libraries(userID int64) ([]Library, error) {
	if _, err := s.repo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.repo.Libraries(userID)
}

func (s *Service) checkUnique(username, email string, selfID int64) error {
	if existing, err := s.repo.GetByUsername(username); err == nil && existing.ID != selfID {
		return internal.NewAlreadyExistsError("User", "username", username)
	} else if err != nil && !internal.IsNotFound(err) {
		return err
	}

	if existing, err := s.repo.GetByEmail(email); err == nil && existing.ID != selfID {
		return internal.NewAlreadyExistsError("User", "email", email)
	} else if err != nil && !internal.IsNotFound(err) {
		return err
	}

	return nil
}
