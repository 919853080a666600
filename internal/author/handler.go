package author

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/avelasqz/library-management/internal/transport"
	"github.com/avelasqz/library-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateAuthorDTO) (*Author, error)
	GetByID(id int64) (*Author, error)
	List(offset, limit int) ([]Author, int64, error)
	Update(id int64, patch AuthorPatch) (*Author, error)
	Delete(id int64) error
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
	var dto CreateAuthorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "author_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	a, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := transport.ListParamsFromRequest(r)

	authors, total, err := h.Service.List(params.Offset, params.Limit)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	transport.WritePaginationHeaders(w, params, int(total))
	h.WriteJSON(w, http.StatusOK, authors)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "author_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch AuthorPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "author_id"))
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
