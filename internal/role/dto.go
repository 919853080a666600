package role

import (
	"github.com/avelasqz/library-management/internal"
)

type CreateRoleDTO struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

func (dto CreateRoleDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name", "name is required")
	}
	if dto.Code == "" {
		return internal.NewValidationError("code", "code is required")
	}
	return nil
}

type CreatePermissionDTO struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

func (dto CreatePermissionDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name", "name is required")
	}
	if dto.Code == "" {
		return internal.NewValidationError("code", "code is required")
	}
	return nil
}

// RolePatch is a partial update: only non-nil fields are applied.
type RolePatch struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p RolePatch) Apply(r *Role) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Code != nil {
		r.Code = *p.Code
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
}

func (p RolePatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return internal.NewValidationError("name", "name cannot be empty")
	}
	if p.Code != nil && *p.Code == "" {
		return internal.NewValidationError("code", "code cannot be empty")
	}
	return nil
}
