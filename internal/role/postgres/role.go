package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/role"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.Repository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ro *role.Role) error {
	if err := r.db.Create(ro).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Role", "code", ro.Code)
		}
		return err
	}
	return nil
}

func (r *RoleRepository) GetByID(id int64) (*role.Role, error) {
	var ro role.Role
	err := r.db.Where("id = ?", id).First(&ro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Role", "id", id)
		}
		return nil, err
	}
	return &ro, nil
}

func (r *RoleRepository) GetByName(name string) (*role.Role, error) {
	var ro role.Role
	err := r.db.Where("name = ?", name).First(&ro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Role", "name", name)
		}
		return nil, err
	}
	return &ro, nil
}

func (r *RoleRepository) GetByCode(code string) (*role.Role, error) {
	var ro role.Role
	err := r.db.Where("code = ?", code).First(&ro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Role", "code", code)
		}
		return nil, err
	}
	return &ro, nil
}

func (r *RoleRepository) List() ([]role.Role, error) {
	var roles []role.Role
	if err := r.db.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepository) Update(ro *role.Role) error {
	if err := r.db.Save(ro).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Role", "code", ro.Code)
		}
		return err
	}
	return nil
}

// Delete removes the role and its permission grants. Role assignments
// referencing the role make the delete fail at the constraint level, which
// is reported as a delete failure rather than a raw storage error.
func (r *RoleRepository) Delete(id int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&role.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&role.Role{}, id).Error
	})
	if err != nil {
		return internal.NewDeleteFailedError("role").WithCause(err)
	}
	return nil
}

func (r *RoleRepository) CreatePermission(p *role.Permission) error {
	if err := r.db.Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Permission", "code", p.Code)
		}
		return err
	}
	return nil
}

func (r *RoleRepository) GetPermission(id int64) (*role.Permission, error) {
	var p role.Permission
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Permission", "id", id)
		}
		return nil, err
	}
	return &p, nil
}

func (r *RoleRepository) ListPermissions() ([]role.Permission, error) {
	var permissions []role.Permission
	if err := r.db.Order("id").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *RoleRepository) AttachPermission(roleID, permissionID int64) error {
	grant := role.RolePermission{RoleID: roleID, PermissionID: permissionID}
	if err := r.db.Create(&grant).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("RolePermission", "permission_id", permissionID)
		}
		return err
	}
	return nil
}

func (r *RoleRepository) DetachPermission(roleID, permissionID int64) error {
	result := r.db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&role.RolePermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.NewNotFoundError("RolePermission", "permission_id", permissionID)
	}
	return nil
}

func (r *RoleRepository) PermissionsForRole(roleID int64) ([]role.Permission, error) {
	query := `SELECT p.id, p.name, p.code, COALESCE(p.description, '')
	          FROM permissions p
	          JOIN role_permissions rp ON rp.permission_id = p.id
	          WHERE rp.role_id = ?
	          ORDER BY p.id`

	rows, err := r.db.Raw(query, roleID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []role.Permission
	for rows.Next() {
		var p role.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
