package auth

import (
	"github.com/avelasqz/library-management/internal"
)

// Resolver computes the role and permission closure of a user within one
// library. Resolution is always library-scoped and always two-hop: role
// assignment, then role-permission. There is no direct user-to-permission
// link anywhere in the model.
type Resolver struct {
	repo RepositoryAPI
}

func NewResolver(repo RepositoryAPI) *Resolver {
	return &Resolver{repo: repo}
}

// RolesForUser returns the role assignments the user holds in the given
// library. A library the user is not tied to is reported as an
// authorization failure rather than not-found, so callers cannot probe
// which libraries exist.
func (r *Resolver) RolesForUser(userID, libraryID int64) ([]RoleAssignment, error) {
	if _, err := r.repo.GetUserByID(userID); err != nil {
		return nil, err
	}

	known, err := r.repo.UserKnowsLibrary(userID, libraryID)
	if err != nil {
		return nil, internal.NewInternalError("failed to check library membership", err)
	}
	if !known {
		return nil, internal.NewAuthorizationError("library not available for this user")
	}

	assignments, err := r.repo.RoleAssignments(userID, libraryID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role assignments", err)
	}
	if len(assignments) == 0 {
		return nil, internal.NewNotFoundError("Roles", "", nil)
	}

	return assignments, nil
}

// PermissionsForUser returns the distinct union of permissions granted by
// every role the user holds in the library. Multiple roles are additive;
// overlapping grants collapse in the union.
func (r *Resolver) PermissionsForUser(userID, libraryID int64) ([]Permission, error) {
	assignments, err := r.RolesForUser(userID, libraryID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(assignments))
	roleIDs := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.RoleID]; ok {
			continue
		}
		seen[a.RoleID] = struct{}{}
		roleIDs = append(roleIDs, a.RoleID)
	}

	permissions, err := r.repo.PermissionsForRoles(roleIDs)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role permissions", err)
	}

	return permissions, nil
}

// HasPermission reports whether the user holds, through any role in the
// library, a permission with the given code. Denials surface as
// authorization errors, never as a bare false.
func (r *Resolver) HasPermission(userID, libraryID int64, code string) (bool, error) {
	permissions, err := r.PermissionsForUser(userID, libraryID)
	if err != nil {
		return false, err
	}
	if len(permissions) == 0 {
		return false, internal.NewAuthorizationError("no permissions for this library")
	}

	for _, p := range permissions {
		if p.Code == code {
			return true, nil
		}
	}

	return false, internal.NewAuthorizationError("permission denied for this library")
}
