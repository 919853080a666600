package section

import (
	"github.com/avelasqz/library-management/internal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(dto CreateSectionDTO) (*Section, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sec := &Section{
		Name:     dto.Name,
		Capacity: dto.Capacity,
	}
	if err := s.repo.Create(sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) GetByID(id int64) (*Section, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("section_id", "invalid id")
	}
	return s.repo.GetByID(id)
}

func (s *Service) List(offset, limit int) ([]Section, int64, error) {
	return s.repo.List(offset, limit)
}

func (s *Service) Update(id int64, patch SectionPatch) (*Section, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	sec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(sec)
	if err := s.repo.Update(sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
