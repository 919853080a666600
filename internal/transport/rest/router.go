package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
	"github.com/avelasqz/library-management/internal/author"
	"github.com/avelasqz/library-management/internal/inventory"
	"github.com/avelasqz/library-management/internal/library"
	"github.com/avelasqz/library-management/internal/material"
	"github.com/avelasqz/library-management/internal/role"
	"github.com/avelasqz/library-management/internal/section"
	"github.com/avelasqz/library-management/internal/transport/middleware"
	"github.com/avelasqz/library-management/internal/transport/swagger"
	"github.com/avelasqz/library-management/internal/user"
)

// Handlers bundles everything the router mounts so RegisterAllRoutes does
// not grow a parameter per domain.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Library   *library.Handler
	Role      *role.Handler
	Material  *material.Handler
	Section   *section.Handler
	Author    *author.Handler
	Inventory *inventory.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, cfg internal.ServerConfig, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// credential endpoints are brute-force targets
		loginLimit := cfg.LoginRateLimit
		if loginLimit <= 0 {
			loginLimit = 10
		}
		r.Group(func(lr chi.Router) {
			lr.Use(httprate.LimitByIP(loginLimit, time.Minute))
			lr.Post("/login", h.Auth.Login)
		})

		// registration is open; everything else requires a token
		r.Post("/users", h.User.Create)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/logout", h.Auth.Logout)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", h.Auth.Me)
				ur.Get("/me/roles", h.Auth.MeRoles)
				ur.Get("/me/libraries", h.User.MyLibraries)
				ur.Get("/username/{username}", h.User.GetByUsername)
				ur.Get("/email/{email}", h.User.GetByEmail)
				ur.Get("/{user_id}", h.User.Get)
				ur.Patch("/{user_id}", h.User.Update)
			})

			pr.Route("/libraries", func(lr chi.Router) {
				lr.Post("/", h.Library.Create)
				lr.Get("/{library_id}", h.Library.Get)
				lr.Patch("/{library_id}", h.Library.Update)
				lr.Delete("/{library_id}", h.Library.Delete)
				lr.Get("/{library_id}/users", h.Library.Members)
				lr.Post("/{library_id}/users", h.Library.AddMember)
				lr.Get("/{library_id}/inventory/{material_id}", h.Inventory.GetItem)
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.Post("/", h.Role.Create)
				rr.Get("/", h.Role.List)
				rr.Get("/{role_id}", h.Role.Get)
				rr.Patch("/{role_id}", h.Role.Update)
				rr.Delete("/{role_id}", h.Role.Delete)
				rr.Get("/{role_id}/permissions", h.Role.RolePermissions)
				rr.Post("/{role_id}/permissions/{permission_id}", h.Role.AttachPermission)
				rr.Delete("/{role_id}/permissions/{permission_id}", h.Role.DetachPermission)
			})

			pr.Post("/permissions", h.Role.CreatePermission)
			pr.Get("/permissions", h.Role.ListPermissions)

			pr.Route("/materials", func(mr chi.Router) {
				mr.Post("/", h.Material.Create)
				mr.Get("/", h.Material.List)
				mr.Get("/{material_id}", h.Material.Get)
				mr.Patch("/{material_id}", h.Material.Update)
				mr.Delete("/{material_id}", h.Material.Delete)
			})

			pr.Route("/sections", func(sr chi.Router) {
				sr.Post("/", h.Section.Create)
				sr.Get("/", h.Section.List)
				sr.Get("/{section_id}", h.Section.Get)
				sr.Patch("/{section_id}", h.Section.Update)
				sr.Delete("/{section_id}", h.Section.Delete)
			})

			pr.Route("/authors", func(ar chi.Router) {
				ar.Post("/", h.Author.Create)
				ar.Get("/", h.Author.List)
				ar.Get("/{author_id}", h.Author.Get)
				ar.Patch("/{author_id}", h.Author.Update)
				ar.Delete("/{author_id}", h.Author.Delete)
			})

			pr.Route("/inventory", func(ir chi.Router) {
				ir.Post("/", h.Inventory.Add)
				ir.Get("/", h.Inventory.List)
				ir.Patch("/{inventory_id}", h.Inventory.Update)
				ir.Delete("/{inventory_id}", h.Inventory.Delete)
			})
		})
	})
}
