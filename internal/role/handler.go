package role

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/avelasqz/library-management/internal/transport"
	"github.com/avelasqz/library-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateRoleDTO) (*Role, error)
	GetByID(id int64) (*Role, error)
	List() ([]Role, error)
	Update(id int64, patch RolePatch) (*Role, error)
	Delete(id int64) error
	CreatePermission(dto CreatePermissionDTO) (*Permission, error)
	ListPermissions() ([]Permission, error)
	AttachPermission(roleID, permissionID int64) error
	DetachPermission(roleID, permissionID int64) error
	PermissionsForRole(roleID int64) ([]Permission, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "role_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	found, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.List()
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "role_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch RolePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "role_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreatePermission(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.Service.ListPermissions()
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) RolePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "role_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	permissions, err := h.Service.PermissionsForRole(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) AttachPermission(w http.ResponseWriter, r *http.Request) {
	roleID, err := h.PathID(chi.URLParam(r, "role_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	permissionID, err := h.PathID(chi.URLParam(r, "permission_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	if err := h.Service.AttachPermission(roleID, permissionID); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, map[string]int64{"role_id": roleID, "permission_id": permissionID})
}

func (h *Handler) DetachPermission(w http.ResponseWriter, r *http.Request) {
	roleID, err := h.PathID(chi.URLParam(r, "role_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	permissionID, err := h.PathID(chi.URLParam(r, "permission_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	if err := h.Service.DetachPermission(roleID, permissionID); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"detached": true})
}
