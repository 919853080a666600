package section

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/avelasqz/library-management/internal/transport"
	"github.com/avelasqz/library-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateSectionDTO) (*Section, error)
	GetByID(id int64) (*Section, error)
	List(offset, limit int) ([]Section, int64, error)
	Update(id int64, patch SectionPatch) (*Section, error)
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
	var dto CreateSectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, sec)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "section_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	sec, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sec)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := transport.ListParamsFromRequest(r)

	sections, total, err := h.Service.List(params.Offset, params.Limit)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	transport.WritePaginationHeaders(w, params, int(total))
	h.WriteJSON(w, http.StatusOK, sections)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "section_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch SectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.Update(id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(chi.URLParam(r, "section_id"))
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
