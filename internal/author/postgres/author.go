package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/author"
)

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(a *author.Author) error {
	if err := r.db.Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Author", "name", a.Name)
		}
		return err
	}
	return nil
}

func (r *AuthorRepository) GetByID(id int64) (*author.Author, error) {
	var a author.Author
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Author", "id", id)
		}
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepository) GetByName(name string) (*author.Author, error) {
	var a author.Author
	err := r.db.Where("name = ?", name).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Author", "name", name)
		}
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepository) List(offset, limit int) ([]author.Author, int64, error) {
	var total int64
	if err := r.db.Model(&author.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("id").Offset(offset)
	if limit >= 0 {
		query = query.Limit(limit)
	}

	var authors []author.Author
	if err := query.Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

func (r *AuthorRepository) Update(a *author.Author) error {
	if err := r.db.Save(a).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Author", "name", a.Name)
		}
		return err
	}
	return nil
}

// Delete fails with a typed error when materials still reference the
// author.
func (r *AuthorRepository) Delete(id int64) error {
	var count int64
	if err := r.db.Table("materials").Where("author_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return internal.NewDeleteFailedError("author")
	}
	if err := r.db.Delete(&author.Author{}, id).Error; err != nil {
		return internal.NewDeleteFailedError("author").WithCause(err)
	}
	return nil
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
