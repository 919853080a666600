package section

import (
	"github.com/avelasqz/library-management/internal"
)

// Section is a physical shelf area with a capacity.
type Section struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	Capacity int    `json:"capacity" gorm:"not null"`
}

func (Section) TableName() string {
	return "sections"
}

type Repository interface {
	Create(s *Section) error
	GetByID(id int64) (*Section, error)
	List(offset, limit int) ([]Section, int64, error)
	Update(s *Section) error
	Delete(id int64) error
}

type CreateSectionDTO struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (dto CreateSectionDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name", "name is required")
	}
	if dto.Capacity < 0 {
		return internal.NewValidationError("capacity", "capacity cannot be negative")
	}
	return nil
}

// SectionPatch is a partial update: only non-nil fields are applied.
type SectionPatch struct {
	Name     *string `json:"name,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

func (p SectionPatch) Apply(s *Section) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Capacity != nil {
		s.Capacity = *p.Capacity
	}
}

func (p SectionPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return internal.NewValidationError("name", "name cannot be empty")
	}
	if p.Capacity != nil && *p.Capacity < 0 {
		return internal.NewValidationError("capacity", "capacity cannot be negative")
	}
	return nil
}
