package inventory

import (
	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
)

type Gate interface {
	Require(user *auth.User, libraryID *int64, code string) error
	FirstLibrary(user *auth.User) (int64, error)
}

type Service struct {
	repo Repository
	gate Gate
}

func NewService(repo Repository, gate Gate) *Service {
	return &Service{
		repo: repo,
		gate: gate,
	}
}

// Add creates the stock record for a material in a library. Requires
// inventory:create in that library; at most one record may exist per
// (library, material) pair.
func (s *Service) Add(caller *auth.User, dto CreateInventoryDTO) (*Inventory, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.gate.Require(caller, &dto.LibraryID, "inventory:create"); err != nil {
		return nil, err
	}

	if ok, err := s.repo.MaterialExists(dto.MaterialID); err != nil {
		return nil, err
	} else if !ok {
		return nil, internal.NewNotFoundError("Material", "id", dto.MaterialID)
	}

	if existing, err := s.repo.GetItem(dto.LibraryID, dto.MaterialID); err == nil && existing != nil {
		return nil, internal.NewAlreadyExistsError("Inventory", "material_id", dto.MaterialID)
	} else if err != nil && !internal.IsNotFound(err) {
		return nil, err
	}

	inv := &Inventory{
		LibraryID:  dto.LibraryID,
		MaterialID: dto.MaterialID,
		Stock:      dto.Stock,
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetItem returns the stock record for a (library, material) pair.
// Requires inventory:read in that library.
func (s *Service) GetItem(caller *auth.User, libraryID, materialID int64) (*Inventory, error) {
	if err := s.gate.Require(caller, &libraryID, "inventory:read"); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetItem(libraryID, materialID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListForLibrary lists stock records. When no library is supplied the
// caller's first known library is used, mirroring the gate's inference.
func (s *Service) ListForLibrary(caller *auth.User, libraryID *int64, offset, limit int) ([]Inventory, int64, error) {
	if err := s.gate.Require(caller, libraryID, "inventory:read"); err != nil {
		return nil, 0, err
	}

	var library int64
	if libraryID != nil {
		library = *libraryID
	} else {
		// gate passed, so the caller has at least one library
		inferred, err := s.gate.FirstLibrary(caller)
		if err != nil {
			return nil, 0, err
		}
		library = inferred
	}

	return s.repo.ListForLibrary(library, offset, limit)
}

// Update patches a stock record. Requires inventory:update in the
// record's library.
func (s *Service) Update(caller *auth.User, id int64, patch InventoryPatch) (*Inventory, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Require(caller, &inv.LibraryID, "inventory:update"); err != nil {
		return nil, err
	}

	patch.Apply(inv)
	if err := s.repo.Update(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete removes a stock record. Requires inventory:delete in the
// record's library.
func (s *Service) Delete(caller *auth.User, id int64) error {
	inv, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.gate.Require(caller, &inv.LibraryID, "inventory:delete"); err != nil {
		return err
	}

	return s.repo.Delete(id)
}
