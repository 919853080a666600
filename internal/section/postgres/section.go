package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/section"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) section.Repository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) Create(s *section.Section) error {
	return r.db.Create(s).Error
}

func (r *SectionRepository) GetByID(id int64) (*section.Section, error) {
	var s section.Section
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Section", "id", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) List(offset, limit int) ([]section.Section, int64, error) {
	var total int64
	if err := r.db.Model(&section.Section{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("id").Offset(offset)
	if limit >= 0 {
		query = query.Limit(limit)
	}

	var sections []section.Section
	if err := query.Find(&sections).Error; err != nil {
		return nil, 0, err
	}
	return sections, total, nil
}

func (r *SectionRepository) Update(s *section.Section) error {
	return r.db.Save(s).Error
}

// Delete fails with a typed error when materials still reference the
// section.
func (r *SectionRepository) Delete(id int64) error {
	var count int64
	if err := r.db.Table("materials").Where("section_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return internal.NewDeleteFailedError("section")
	}
	if err := r.db.Delete(&section.Section{}, id).Error; err != nil {
		return internal.NewDeleteFailedError("section").WithCause(err)
	}
	return nil
}
