package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/avelasqz/library-management/internal/auth"
	"github.com/avelasqz/library-management/internal/transport"
	"github.com/avelasqz/library-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateUserDTO) (*User, error)
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(id int64, patch UserPatch) (*User, error)
	Libraries(userID int64) ([]Library, error)
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

// Create handles POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, u)
}

// Get handles GET /users/{user_id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "user_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	u, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// GetByUsername handles GET /users/username/{username}.
func (h *Handler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByUsername(chi.URLParam(r, "username"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// GetByEmail handles GET /users/email/{email}.
func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByEmail(chi.URLParam(r, "email"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// Update handles PATCH /users/{user_id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "user_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Update(id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// MyLibraries handles GET /users/me/libraries.
func (h *Handler) MyLibraries(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	libraries, err := h.Service.Libraries(caller.ID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, libraries)
}
