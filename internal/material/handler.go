package material

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
	Create(caller *auth.User, dto CreateMaterialDTO) (*Material, error)
	GetByID(id int64) (*Material, error)
	List(offset, limit int) ([]Material, int64, error)
	Update(caller *auth.User, id int64, patch MaterialPatch) (*Material, error)
	Delete(caller *auth.User, id int64) error
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
	caller, _ := auth.UserFromContext(r.Context())

	var dto CreateMaterialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Create(caller, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "material_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	m, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := transport.ListParamsFromRequest(r)

	materials, total, err := h.Service.List(params.Offset, params.Limit)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	transport.WritePaginationHeaders(w, params, int(total))
	h.WriteJSON(w, http.StatusOK, materials)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	id, err := h.PathID(chi.URLParam(r, "material_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch MaterialPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Update(caller, id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	id, err := h.PathID(chi.URLParam(r, "material_id"))
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
