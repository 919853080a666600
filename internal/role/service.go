package role

import (
	"github.com/avelasqz/library-management/internal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.NewAlreadyExistsError("Role", "name", dto.Name)
	} else if err != nil && !internal.IsNotFound(err) {
		return nil, err
	}
	if existing, err := s.repo.GetByCode(dto.Code); err == nil && existing != nil {
		return nil, internal.NewAlreadyExistsError("Role", "code", dto.Code)
	} else if err != nil && !internal.IsNotFound(err) {
		return nil, err
	}

	r := &Role{
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
	}
	if err := s.repo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetByID(id int64) (*Role, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("role_id", "invalid id")
	}
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]Role, error) {
	return s.repo.List()
}

func (s *Service) Update(id int64, patch RolePatch) (*Role, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if existing, err := s.repo.GetByName(*patch.Name); err == nil && existing.ID != id {
			return nil, internal.NewAlreadyExistsError("Role", "name", *patch.Name)
		} else if err != nil && !internal.IsNotFound(err) {
			return nil, err
		}
	}
	if patch.Code != nil {
		if existing, err := s.repo.GetByCode(*patch.Code); err == nil && existing.ID != id {
			return nil, internal.NewAlreadyExistsError("Role", "code", *patch.Code)
		} else if err != nil && !internal.IsNotFound(err) {
			return nil, err
		}
	}

	patch.Apply(r)
	if err := s.repo.Update(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) CreatePermission(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Permission{
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
	}
	if err := s.repo.CreatePermission(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPermissions() ([]Permission, error) {
	return s.repo.ListPermissions()
}

// AttachPermission grants a permission through a role. The grant is global:
// it takes effect in every library where the role is assigned.
func (s *Service) AttachPermission(roleID, permissionID int64) error {
	if _, err := s.repo.GetByID(roleID); err != nil {
		return err
	}
	if _, err := s.repo.GetPermission(permissionID); err != nil {
		return err
	}
	return s.repo.AttachPermission(roleID, permissionID)
}

func (s *Service) DetachPermission(roleID, permissionID int64) error {
	if _, err := s.repo.GetByID(roleID); err != nil {
		return err
	}
	return s.repo.DetachPermission(roleID, permissionID)
}

func (s *Service) PermissionsForRole(roleID int64) ([]Permission, error) {
	if _, err := s.repo.GetByID(roleID); err != nil {
		return nil, err
	}
	return s.repo.PermissionsForRole(roleID)
}
