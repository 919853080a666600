package transport

import (
	"net/http"
	"strconv"
)

// ListParams are the common pagination controls for list endpoints.
type ListParams struct {
	Offset int
	Limit  int
}

const defaultLimit = 30

// ListParamsFromRequest reads offset/limit query parameters with sane
// fallbacks. A negative limit means "no limit".
func ListParamsFromRequest(r *http.Request) ListParams {
	params := ListParams{Offset: 0, Limit: defaultLimit}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			params.Offset = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			params.Limit = v
		}
	}

	return params
}

// WritePaginationHeaders exposes the page window on the response so clients
// can iterate without a wrapper body.
func WritePaginationHeaders(w http.ResponseWriter, params ListParams, total int) {
	limit := params.Limit
	if limit < 0 {
		limit = total
	}

	page := 1
	pages := 0
	if total > 0 && limit > 0 {
		page = (params.Offset + limit) / limit
		pages = (total + limit - 1) / limit
	} else if total > 0 {
		pages = 1
	}

	w.Header().Set("X-Total", strconv.Itoa(total))
	w.Header().Set("X-Pages", strconv.Itoa(pages))
	w.Header().Set("X-Page", strconv.Itoa(page))
	w.Header().Set("X-Limit", strconv.Itoa(limit))
	w.Header().Set("X-Offset", strconv.Itoa(params.Offset))
}
