package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.NewAlreadyExistsError("User", "username", u.Username)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("User", "id", id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("User", "username", username)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("User", "email", email)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *user.User) error {
	if err := r.db.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.NewAlreadyExistsError("User", "username", u.Username)
		}
		return err
	}
	return nil
}

func (r *UserRepository) Libraries(userID int64) ([]user.Library, error) {
	query := `SELECT l.id, l.name, l.address
	          FROM libraries l
	          JOIN library_users lu ON lu.library_id = l.id
	          WHERE lu.user_id = ?
	          ORDER BY l.id`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var libraries []user.Library
	for rows.Next() {
		var l user.Library
		if err := rows.Scan(&l.ID, &l.Name, &l.Address); err != nil {
			return nil, err
		}
		libraries = append(libraries, l)
	}
	return libraries, rows.Err()
}
