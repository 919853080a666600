package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelasqz/library-management/internal"
)

// Service handles login, password hashing and token-to-user resolution.
type Service struct {
	repo       RepositoryAPI
	issuer     *TokenIssuer
	bcryptCost int
}

func NewService(repo RepositoryAPI, issuer *TokenIssuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Authenticate validates credentials and issues an access token. Every
// failure mode (unknown user, wrong password, corrupt stored hash) collapses
// to the same invalid-credentials error so callers cannot enumerate users.
func (s *Service) Authenticate(dto LoginDTO) (*User, TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, TokenResponse{}, err
	}

	creds, err := s.repo.GetCredentials(dto.Username)
	if err != nil {
		return nil, TokenResponse{}, internal.ErrInvalidCredentials
	}

	if !VerifyPassword(dto.Password, creds.PasswordHash) {
		return nil, TokenResponse{}, internal.ErrInvalidCredentials
	}

	token, err := s.issuer.IssueToken(creds.Username, dto.Scopes, s.issuer.DefaultTTL())
	if err != nil {
		return nil, TokenResponse{}, internal.NewInternalError("failed to sign token", err)
	}

	user, err := s.repo.GetUserByUsername(creds.Username)
	if err != nil {
		return nil, TokenResponse{}, internal.ErrInvalidCredentials
	}

	return user, TokenResponse{AccessToken: token}, nil
}

// IssueToken signs a token for an arbitrary subject, used by login and by
// the seed tooling.
func (s *Service) IssueToken(subject string, scopes []string, ttl time.Duration) (string, error) {
	return s.issuer.IssueToken(subject, scopes, ttl)
}

// CurrentUser resolves a presented token to a live user. An invalid or
// expired token is an authentication failure; a valid token whose subject no
// longer exists is reported as not-found, which is deliberately distinct
// from the login-path error.
func (s *Service) CurrentUser(token string) (*User, error) {
	claims, err := s.issuer.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByUsername(claims.Subject)
	if err != nil {
		if internal.IsNotFound(err) {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to resolve token subject", err)
	}

	return user, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", internal.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain password matches the stored
// hash. A malformed hash is treated as a mismatch, never an error: a login
// against a corrupt record must fail as invalid credentials, not crash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false
	}
	// malformed/truncated hash
	return false
}
