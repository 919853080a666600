package library

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
	Create(dto CreateLibraryDTO, creatorID int64) (*Library, error)
	GetByID(id int64) (*Library, error)
	Members(libraryID int64) ([]Member, error)
	AddMemberAs(caller *auth.User, dto AddMemberDTO) (*Membership, error)
	Update(caller *auth.User, libraryID int64, patch LibraryPatch) (*Library, error)
	Delete(caller *auth.User, libraryID int64) error
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

// Create handles POST /libraries. The caller becomes the first member with
// the owner role.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLibraryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Create(dto, caller.ID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, l)
}

// Get handles GET /libraries/{library_id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "library_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	l, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

// Members handles GET /libraries/{library_id}/users.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "library_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	members, err := h.Service.Members(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, members)
}

// AddMember handles POST /libraries/member.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	var dto AddMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	membership, err := h.Service.AddMemberAs(caller, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, membership)
}

// Update handles PATCH /libraries/{library_id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	id, err := h.PathID(chi.URLParam(r, "library_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch LibraryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Update(caller, id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

// Delete handles DELETE /libraries/{library_id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	id, err := h.PathID(chi.URLParam(r, "library_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	if err := h.Service.Delete(caller, id); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
