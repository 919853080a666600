package user

import (
	"github.com/avelasqz/library-management/internal"
)

type CreateUserDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Username == "" {
		return internal.NewValidationError("username", "username is required")
	}
	if dto.Password == "" {
		return internal.NewValidationError("password", "password is required")
	}
	return internal.ValidateEmailFormat(dto.Email)
}

// UserPatch is a partial update: only non-nil fields are applied.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Apply merges the patch onto the user. Password is applied by the service
// because it needs hashing first.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

func (p UserPatch) Validate() error {
	if p.Username != nil && *p.Username == "" {
		return internal.NewValidationError("username", "username cannot be empty")
	}
	if p.Password != nil && *p.Password == "" {
		return internal.NewValidationError("password", "password cannot be empty")
	}
	if p.Email != nil {
		return internal.ValidateEmailFormat(*p.Email)
	}
	return nil
}
