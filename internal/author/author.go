package author

import (
	"github.com/avelasqz/library-management/internal"
)

// Author is a catalog author; materials reference it.
type Author struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Author) TableName() string {
	return "authors"
}

type Repository interface {
	Create(a *Author) error
	GetByID(id int64) (*Author, error)
	GetByName(name string) (*Author, error)
	List(offset, limit int) ([]Author, int64, error)
	Update(a *Author) error
	Delete(id int64) error
}

type CreateAuthorDTO struct {
	Name string `json:"name"`
}

func (dto CreateAuthorDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name", "name is required")
	}
	return nil
}

// AuthorPatch is a partial update: only non-nil fields are applied.
type AuthorPatch struct {
	Name *string `json:"name,omitempty"`
}

func (p AuthorPatch) Apply(a *Author) {
	if p.Name != nil {
		a.Name = *p.Name
	}
}

func (p AuthorPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return internal.NewValidationError("name", "name cannot be empty")
	}
	return nil
}
