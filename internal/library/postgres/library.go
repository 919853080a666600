package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/library"
)

type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) library.Repository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) Create(l *library.Library) error {
	if err := r.db.Create(l).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Library", "name", l.Name)
		}
		return err
	}
	return nil
}

func (r *LibraryRepository) GetByID(id int64) (*library.Library, error) {
	var l library.Library
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Library", "id", id)
		}
		return nil, err
	}
	return &l, nil
}

func (r *LibraryRepository) GetByName(name string) (*library.Library, error) {
	var l library.Library
	err := r.db.Where("name = ?", name).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Library", "name", name)
		}
		return nil, err
	}
	return &l, nil
}

func (r *LibraryRepository) GetByAddress(address string) (*library.Library, error) {
	var l library.Library
	err := r.db.Where("address = ?", address).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Library", "address", address)
		}
		return nil, err
	}
	return &l, nil
}

func (r *LibraryRepository) Update(l *library.Library) error {
	if err := r.db.Save(l).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Library", "name", l.Name)
		}
		return err
	}
	return nil
}

// Delete removes the library and its scoped join rows. Inventory and other
// dependent rows cascade at the schema level; a remaining constraint
// violation is reported as a delete failure.
func (r *LibraryRepository) Delete(id int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("library_id = ?", id).Delete(&library.RoleAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("library_id = ?", id).Delete(&library.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&library.Library{}, id).Error
	})
	if err != nil {
		return internal.NewDeleteFailedError("library").WithCause(err)
	}
	return nil
}

func (r *LibraryRepository) Members(libraryID int64) ([]library.Member, error) {
	query := `SELECT u.id, u.username, u.email
	          FROM users u
	          JOIN library_users lu ON lu.user_id = u.id
	          WHERE lu.library_id = ?
	          ORDER BY u.id`

	rows, err := r.db.Raw(query, libraryID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []library.Member
	for rows.Next() {
		var m library.Member
		if err := rows.Scan(&m.ID, &m.Username, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *LibraryRepository) UserExists(userID int64) (bool, error) {
	var count int64
	if err := r.db.Table("users").Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LibraryRepository) RoleExists(roleID int64) (bool, error) {
	var count int64
	if err := r.db.Table("roles").Where("id = ?", roleID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LibraryRepository) GetMembership(libraryID, userID int64) (*library.Membership, error) {
	var m library.Membership
	err := r.db.Where("library_id = ? AND user_id = ?", libraryID, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("LibraryMembership", "user_id", userID)
		}
		return nil, err
	}
	return &m, nil
}

func (r *LibraryRepository) GetAssignment(userID, roleID, libraryID int64) (*library.RoleAssignment, error) {
	var a library.RoleAssignment
	err := r.db.Where("user_id = ? AND role_id = ? AND library_id = ?", userID, roleID, libraryID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("RoleAssignment", "role_id", roleID)
		}
		return nil, err
	}
	return &a, nil
}

func (r *LibraryRepository) CreateAssignment(a *library.RoleAssignment) error {
	if err := r.db.Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			// race loser on concurrent identical grants
			return internal.NewAlreadyExistsError("RoleAssignment", "role_id", a.RoleID)
		}
		return err
	}
	return nil
}

// CreateMembershipWithRole writes a first-join membership and its role
// assignment in one transaction so a failed assignment never leaves a
// dangling membership.
func (r *LibraryRepository) CreateMembershipWithRole(m *library.Membership, a *library.RoleAssignment) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Create(a).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("LibraryMembership", "user_id", m.UserID)
		}
		return err
	}
	return nil
}

// isUniqueViolation matches constraint errors across the pg driver and the
// sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
