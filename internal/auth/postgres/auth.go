package postgres

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
)

// Repository backs the auth service and permission resolver with the
// users, library_users, user_roles and role_permissions tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(usernameOrEmail string) (*auth.Credentials, error) {
	var creds auth.Credentials
	query := `SELECT id, username, password_hash FROM users WHERE username = ? OR email = ?`

	row := r.db.Raw(query, usernameOrEmail, usernameOrEmail).Row()
	if err := row.Scan(&creds.UserID, &creds.Username, &creds.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.NewNotFoundError("User", "", nil)
		}
		return nil, err
	}
	return &creds, nil
}

func (r *Repository) GetUserByUsername(username string) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, username, email FROM users WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&user.ID, &user.Username, &user.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.NewNotFoundError("User", "username", username)
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, username, email FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Username, &user.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.NewNotFoundError("User", "id", userID)
		}
		return nil, err
	}
	return &user, nil
}

// LibraryIDsForUser returns the user's membership libraries in a stable
// order so the gate's "first library" inference is deterministic.
func (r *Repository) LibraryIDsForUser(userID int64) ([]int64, error) {
	query := `SELECT library_id FROM library_users WHERE user_id = ? ORDER BY library_id`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserKnowsLibrary reports whether any membership or role assignment ties
// the user to the library.
func (r *Repository) UserKnowsLibrary(userID, libraryID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM (
	            SELECT library_id FROM library_users WHERE user_id = ? AND library_id = ?
	            UNION
	            SELECT library_id FROM user_roles WHERE user_id = ? AND library_id = ?
	          ) known`

	var count int64
	row := r.db.Raw(query, userID, libraryID, userID, libraryID).Row()
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) RoleAssignments(userID, libraryID int64) ([]auth.RoleAssignment, error) {
	query := `SELECT user_id, role_id, library_id FROM user_roles
	          WHERE user_id = ? AND library_id = ? ORDER BY role_id`

	rows, err := r.db.Raw(query, userID, libraryID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []auth.RoleAssignment
	for rows.Next() {
		var a auth.RoleAssignment
		if err := rows.Scan(&a.UserID, &a.RoleID, &a.LibraryID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *Repository) PermissionsForRoles(roleIDs []int64) ([]auth.Permission, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	query := `SELECT DISTINCT p.id, p.name, p.code, COALESCE(p.description, '')
	          FROM permissions p
	          JOIN role_permissions rp ON p.id = rp.permission_id
	          WHERE rp.role_id IN ?
	          ORDER BY p.id`

	rows, err := r.db.Raw(query, roleIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []auth.Permission
	for rows.Next() {
		var p auth.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}
