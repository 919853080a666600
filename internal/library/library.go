package library

// OwnerRoleID is the catalog id of the owner role granted to a library's
// creator during bootstrap. Seeded by the migrations.
const OwnerRoleID int64 = 1

// Library is a tenant boundary: role assignments and inventory are scoped
// to exactly one library.
type Library struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Address string `json:"address" gorm:"uniqueIndex"`
}

func (Library) TableName() string {
	return "libraries"
}

// Membership records that a user belongs to a library, independent of any
// role. Composite key, no surrogate id.
type Membership struct {
	LibraryID int64 `json:"library_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
}

func (Membership) TableName() string {
	return "library_users"
}

// RoleAssignment is the grant of one role to one user within one library.
type RoleAssignment struct {
	UserID    int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	RoleID    int64 `json:"role_id" gorm:"primaryKey;autoIncrement:false"`
	LibraryID int64 `json:"library_id" gorm:"primaryKey;autoIncrement:false"`
}

func (RoleAssignment) TableName() string {
	return "user_roles"
}

// Member is the user view returned when listing a library's members.
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Repository is the persistence surface for libraries and their join
// tables. CreateMembershipWithRole must write both rows in one
// transaction: a user cannot be a member without at least one role.
type Repository interface {
	Create(l *Library) error
	GetByID(id int64) (*Library, error)
	GetByName(name string) (*Library, error)
	GetByAddress(address string) (*Library, error)
	Update(l *Library) error
	Delete(id int64) error

	Members(libraryID int64) ([]Member, error)
	UserExists(userID int64) (bool, error)
	RoleExists(roleID int64) (bool, error)

	GetMembership(libraryID, userID int64) (*Membership, error)
	GetAssignment(userID, roleID, libraryID int64) (*RoleAssignment, error)
	CreateAssignment(a *RoleAssignment) error
	CreateMembershipWithRole(m *Membership, a *RoleAssignment) error
}
