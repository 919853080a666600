package role

// Role is a named bundle of permissions. Definitions are global; the
// assignment of a role to a user is library-scoped and lives in the
// library package.
type Role struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Permission is one capability code from the global catalog.
type Permission struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
}

func (Permission) TableName() string {
	return "permissions"
}

// RolePermission links a role to a permission it grants. Editing a role's
// grants affects every library where any user holds that role.
type RolePermission struct {
	RoleID       int64 `json:"role_id" gorm:"primaryKey;autoIncrement:false"`
	PermissionID int64 `json:"permission_id" gorm:"primaryKey;autoIncrement:false"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

type Repository interface {
	Create(r *Role) error
	GetByID(id int64) (*Role, error)
	GetByName(name string) (*Role, error)
	GetByCode(code string) (*Role, error)
	List() ([]Role, error)
	Update(r *Role) error
	Delete(id int64) error

	CreatePermission(p *Permission) error
	GetPermission(id int64) (*Permission, error)
	ListPermissions() ([]Permission, error)

	AttachPermission(roleID, permissionID int64) error
	DetachPermission(roleID, permissionID int64) error
	PermissionsForRole(roleID int64) ([]Permission, error)
}
