package inventory

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
	Add(caller *auth.User, dto CreateInventoryDTO) (*Inventory, error)
	GetItem(caller *auth.User, libraryID, materialID int64) (*Inventory, error)
	ListForLibrary(caller *auth.User, libraryID *int64, offset, limit int) ([]Inventory, int64, error)
	Update(caller *auth.User, id int64, patch InventoryPatch) (*Inventory, error)
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

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	var dto CreateInventoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.Service.Add(caller, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, inv)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	libraryID, err := h.PathID(chi.URLParam(r, "library_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	materialID, err := h.PathID(chi.URLParam(r, "material_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	inv, err := h.Service.GetItem(caller, libraryID, materialID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, inv)
}

// List accepts an optional ?library_id= query param; without it the
// caller's first library is used.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())
	params := transport.ListParamsFromRequest(r)

	libraryID, err := h.QueryInt64(r, "library_id")
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	items, total, err := h.Service.ListForLibrary(caller, libraryID, params.Offset, params.Limit)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	transport.WritePaginationHeaders(w, params, int(total))
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	id, err := h.PathID(chi.URLParam(r, "inventory_id"))
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	var patch InventoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.Service.Update(caller, id, patch)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, inv)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserFromContext(r.Context())

	id, err := h.PathID(chi.URLParam(r, "inventory_id"))
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
