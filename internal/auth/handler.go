package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/transport"
	"github.com/avelasqz/library-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Resolver *Resolver
}

func NewHandler(svc ServiceAPI, resolver *Resolver) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Resolver:    resolver,
	}
}

// Login handles POST /login (password grant, optional scopes).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "username", dto.Username)
		h.WriteDomainError(w, err)
		return
	}

	tokens.TokenType = "bearer"
	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout handles POST /logout. Tokens are stateless, so logout only
// verifies the presented token; expiry does the rest.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.CurrentUser(token); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// Me handles GET /users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.WriteJSON(w, http.StatusOK, user)
}

// MeRoles handles GET /users/me/roles?library_id=N.
func (h *Handler) MeRoles(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	libraryID, err := h.QueryInt64(r, "library_id")
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	if libraryID == nil {
		h.WriteDomainError(w, internal.NewValidationError("library_id", "library_id is required"))
		return
	}

	assignments, err := h.Resolver.RolesForUser(user.ID, *libraryID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, assignments)
}

// AuthMiddleware resolves the bearer token to a live user and stores it in
// the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := h.Service.CurrentUser(token)
		if err != nil {
			h.WriteDomainError(w, err)
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		ctx = logger.With(ctx, "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
