package inventory

import (
	"github.com/avelasqz/library-management/internal"
)

// Inventory is the stock record of one material within one library. At
// most one record exists per (library, material) pair.
type Inventory struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	Stock      int   `json:"stock" gorm:"not null;default:0"`
	MaterialID int64 `json:"material_id" gorm:"not null;uniqueIndex:unique_library_material,priority:2"`
	LibraryID  int64 `json:"library_id" gorm:"not null;uniqueIndex:unique_library_material,priority:1"`
}

func (Inventory) TableName() string {
	return "inventory"
}

type Repository interface {
	Create(inv *Inventory) error
	GetByID(id int64) (*Inventory, error)
	GetItem(libraryID, materialID int64) (*Inventory, error)
	ListForLibrary(libraryID int64, offset, limit int) ([]Inventory, int64, error)
	Update(inv *Inventory) error
	Delete(id int64) error
	MaterialExists(materialID int64) (bool, error)
}

type CreateInventoryDTO struct {
	LibraryID  int64 `json:"library_id"`
	MaterialID int64 `json:"material_id"`
	Stock      int   `json:"stock"`
}

func (dto CreateInventoryDTO) Validate() error {
	if dto.LibraryID <= 0 {
		return internal.NewValidationError("library_id", "library_id is required")
	}
	if dto.MaterialID <= 0 {
		return internal.NewValidationError("material_id", "material_id is required")
	}
	if dto.Stock < 0 {
		return internal.NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}

// InventoryPatch is a partial update: only non-nil fields are applied.
type InventoryPatch struct {
	Stock *int `json:"stock,omitempty"`
}

func (p InventoryPatch) Apply(inv *Inventory) {
	if p.Stock != nil {
		inv.Stock = *p.Stock
	}
}

func (p InventoryPatch) Validate() error {
	if p.Stock != nil && *p.Stock < 0 {
		return internal.NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}
