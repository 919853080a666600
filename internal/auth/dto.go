package auth

import (
	"github.com/avelasqz/library-management/internal"
)

// LoginDTO is the password-grant credential presentation. Username also
// accepts the user's email.
type LoginDTO struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Scopes   []string `json:"scopes,omitempty"`
}

func (dto LoginDTO) Validate() error {
	if dto.Username == "" {
		return internal.NewValidationError("username", "username is required")
	}
	if dto.Password == "" {
		return internal.NewValidationError("password", "password is required")
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
