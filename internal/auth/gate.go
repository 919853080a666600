package auth

import (
	"log/slog"

	"github.com/avelasqz/library-management/internal"
)

// Gate is the request-scoped authorization decision. Protected service
// operations call Require explicitly at the top; there is no blanket
// middleware, so the dependency on the caller and library context is
// visible in every protected signature.
type Gate struct {
	resolver *Resolver
	repo     RepositoryAPI
	logger   *slog.Logger
}

func NewGate(resolver *Resolver, repo RepositoryAPI, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		resolver: resolver,
		repo:     repo,
		logger:   logger,
	}
}

// Require allows the operation when the caller holds a role in the library
// that grants the permission code. When no explicit library is supplied the
// caller's first known library is used; a caller with no libraries at all
// is denied outright.
func (g *Gate) Require(user *User, libraryID *int64, code string) error {
	if user == nil {
		return internal.NewAuthorizationError("not authorized, missing user info")
	}

	var library int64
	if libraryID != nil {
		library = *libraryID
	} else {
		inferred, err := g.FirstLibrary(user)
		if err != nil {
			return err
		}
		library = inferred
	}

	if _, err := g.resolver.HasPermission(user.ID, library, code); err != nil {
		g.logger.Warn("access denied",
			"user_id", user.ID,
			"library_id", library,
			"permission", code,
			"error", err)
		return err
	}

	return nil
}

// FirstLibrary returns the first library the user is known to, used when an
// operation does not name one explicitly.
func (g *Gate) FirstLibrary(user *User) (int64, error) {
	if user == nil {
		return 0, internal.NewAuthorizationError("not authorized, missing user info")
	}
	libraries, err := g.repo.LibraryIDsForUser(user.ID)
	if err != nil {
		return 0, internal.NewInternalError("failed to load user libraries", err)
	}
	if len(libraries) == 0 {
		return 0, internal.NewAuthorizationError("no libraries found for user")
	}
	return libraries[0], nil
}
