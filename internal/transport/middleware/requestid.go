package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/avelasqz/library-management/pkg/logger"
)

// RequestID tags every request with a trace id, honoring one supplied by
// the caller so traces survive proxy hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.WithTrace(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
