package user

// User is a registered account. PasswordHash never leaves the service
// boundary.
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

func (User) TableName() string {
	return "users"
}

// Library is the slim view of a library a user belongs to, enough for the
// membership listing without pulling in the library package.
type Library struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Repository is the persistence surface the user service needs.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	Libraries(userID int64) ([]Library, error)
}
