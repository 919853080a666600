package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(inv *inventory.Inventory) error {
	if err := r.db.Create(inv).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewAlreadyExistsError("Inventory", "material_id", inv.MaterialID)
		}
		return err
	}
	return nil
}

func (r *InventoryRepository) GetByID(id int64) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	err := r.db.Where("id = ?", id).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Inventory", "id", id)
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepository) GetItem(libraryID, materialID int64) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	err := r.db.Where("library_id = ? AND material_id = ?", libraryID, materialID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("Inventory", "material_id", materialID)
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepository) ListForLibrary(libraryID int64, offset, limit int) ([]inventory.Inventory, int64, error) {
	var total int64
	if err := r.db.Model(&inventory.Inventory{}).Where("library_id = ?", libraryID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Where("library_id = ?", libraryID).Order("id").Offset(offset)
	if limit >= 0 {
		query = query.Limit(limit)
	}

	var items []inventory.Inventory
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *InventoryRepository) Update(inv *inventory.Inventory) error {
	return r.db.Save(inv).Error
}

func (r *InventoryRepository) Delete(id int64) error {
	if err := r.db.Delete(&inventory.Inventory{}, id).Error; err != nil {
		return internal.NewDeleteFailedError("inventory").WithCause(err)
	}
	return nil
}

func (r *InventoryRepository) MaterialExists(materialID int64) (bool, error) {
	var count int64
	if err := r.db.Table("materials").Where("id = ?", materialID).Count(&count).Error; err != nil {
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
