package material

import (
	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
)

type Gate interface {
	Require(user *auth.User, libraryID *int64, code string) error
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

// Create adds a catalog entry. Requires material:create; the catalog is
// global, so the caller's library context is inferred.
func (s *Service) Create(caller *auth.User, dto CreateMaterialDTO) (*Material, error) {
	if err := s.gate.Require(caller, nil, "material:create"); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCodRef(dto.CodRef); err == nil && existing != nil {
		return nil, internal.NewAlreadyExistsError("Material", "cod_ref", dto.CodRef)
	} else if err != nil && !internal.IsNotFound(err) {
		return nil, err
	}

	if ok, err := s.repo.AuthorExists(dto.AuthorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, internal.NewNotFoundError("Author", "id", dto.AuthorID)
	}
	if ok, err := s.repo.SectionExists(dto.SectionID); err != nil {
		return nil, err
	} else if !ok {
		return nil, internal.NewNotFoundError("Section", "id", dto.SectionID)
	}

	m := &Material{
		Type:        dto.Type,
		Title:       dto.Title,
		CodRef:      dto.CodRef,
		Price:       dto.Price,
		ISBN:        dto.ISBN,
		ISSN:        dto.ISSN,
		Description: dto.Description,
		AuthorID:    dto.AuthorID,
		SectionID:   dto.SectionID,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) GetByID(id int64) (*Material, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("material_id", "invalid id")
	}
	return s.repo.GetByID(id)
}

func (s *Service) List(offset, limit int) ([]Material, int64, error) {
	return s.repo.List(offset, limit)
}

// Update applies a partial patch. Requires material:update.
func (s *Service) Update(caller *auth.User, id int64, patch MaterialPatch) (*Material, error) {
	if err := s.gate.Require(caller, nil, "material:update"); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.CodRef != nil {
		if existing, err := s.repo.GetByCodRef(*patch.CodRef); err == nil && existing.ID != id {
			return nil, internal.NewAlreadyExistsError("Material", "cod_ref", *patch.CodRef)
		} else if err != nil && !internal.IsNotFound(err) {
			return nil, err
		}
	}
	if patch.AuthorID != nil {
		if ok, err := s.repo.AuthorExists(*patch.AuthorID); err != nil {
			return nil, err
		} else if !ok {
			return nil, internal.NewNotFoundError("Author", "id", *patch.AuthorID)
		}
	}
	if patch.SectionID != nil {
		if ok, err := s.repo.SectionExists(*patch.SectionID); err != nil {
			return nil, err
		} else if !ok {
			return nil, internal.NewNotFoundError("Section", "id", *patch.SectionID)
		}
	}

	patch.Apply(m)
	if err := s.repo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a catalog entry. Requires material:delete.
func (s *Service) Delete(caller *auth.User, id int64) error {
	if err := s.gate.Require(caller, nil, "material:delete"); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
