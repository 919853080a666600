package author

import (
	"github.com/avelasqz/library-management/internal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(dto CreateAuthorDTO) (*Author, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.NewAlreadyExistsError("Author", "name", dto.Name)
	} else if err != nil && !internal.IsNotFound(err) {
		return nil, err
	}

	a := &Author{Name: dto.Name}
	if err := s.repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetByID(id int64) (*Author, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("author_id", "invalid id")
	}
	return s.repo.GetByID(id)
}

func (s *Service) List(offset, limit int) ([]Author, int64, error) {
	return s.repo.List(offset, limit)
}

func (s *Service) Update(id int64, patch AuthorPatch) (*Author, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if existing, err := s.repo.GetByName(*patch.Name); err == nil && existing.ID != id {
			return nil, internal.NewAlreadyExistsError("Author", "name", *patch.Name)
		} else if err != nil && !internal.IsNotFound(err) {
			return nil, err
		}
	}

	patch.Apply(a)
	if err := s.repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
