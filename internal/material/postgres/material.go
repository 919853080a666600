package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/material"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) material.Repository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *material.Material) error {
	if err := r.db.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Material", "cod_ref", m.CodRef)
		}
		return err
	}
	return nil
}

func (r *MaterialRepository) GetByID(id int64) (*material.Material, error) {
	var m material.Material
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Material", "id", id)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) GetByCodRef(codRef string) (*material.Material, error) {
	var m material.Material
	err := r.db.Where("cod_ref = ?", codRef).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Material", "cod_ref", codRef)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) List(offset, limit int) ([]material.Material, int64, error) {
	var total int64
	if err := r.db.Model(&material.Material{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("id").Offset(offset)
	if limit >= 0 {
		query = query.Limit(limit)
	}

	var materials []material.Material
	if err := query.Find(&materials).Error; err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

func (r *MaterialRepository) Update(m *material.Material) error {
	if err := r.db.Save(m).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Material", "cod_ref", m.CodRef)
		}
		return err
	}
	return nil
}

func (r *MaterialRepository) Delete(id int64) error {
	if err := r.db.Delete(&material.Material{}, id).Error; err != nil {
		return internal.NewDeleteFailedError("material").WithCause(err)
	}
	return nil
}

func (r *MaterialRepository) AuthorExists(authorID int64) (bool, error) {
	var count int64
	if err := r.db.Table("authors").Where("id = ?", authorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MaterialRepository) SectionExists(sectionID int64) (bool, error) {
	var count int64
	if err := r.db.Table("sections").Where("id = ?", sectionID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
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
