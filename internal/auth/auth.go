package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated caller as seen by the rest of the system.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials is the stored secret material for one user, fetched during
// login. The hash is never exposed past this package.
type Credentials struct {
	UserID       int64
	Username     string
	PasswordHash string
}

// RoleAssignment is the grant "this user holds this role within this
// library". A user may hold different roles in different libraries.
type RoleAssignment struct {
	UserID    int64 `json:"user_id"`
	RoleID    int64 `json:"role_id"`
	LibraryID int64 `json:"library_id"`
}

// Permission is one capability from the global catalog.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Claims is the signed token payload: subject, optional scopes, expiry.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*User, TokenResponse, error)
	CurrentUser(token string) (*User, error)
	IssueToken(subject string, scopes []string, ttl time.Duration) (string, error)
	HashPassword(password string) (string, error)
}

// RepositoryAPI is the read surface the auth service and resolver need.
// Implemented by the postgres subpackage.
type RepositoryAPI interface {
	GetCredentials(usernameOrEmail string) (*Credentials, error)
	GetUserByUsername(username string) (*User, error)
	GetUserByID(userID int64) (*User, error)
	LibraryIDsForUser(userID int64) ([]int64, error)
	UserKnowsLibrary(userID, libraryID int64) (bool, error)
	RoleAssignments(userID, libraryID int64) ([]RoleAssignment, error)
	PermissionsForRoles(roleIDs []int64) ([]Permission, error)
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
