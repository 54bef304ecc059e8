package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ecore/roles/internal/api/handler"
	"github.com/ecore/roles/internal/api/middleware"
	"github.com/ecore/roles/internal/service"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Roles       *service.Roles
	Memberships *service.Memberships
	DBPinger    handler.DBPinger
	Version     string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	roleHandler := handler.NewRoleHandler(deps.Roles)
	membershipHandler := handler.NewMembershipHandler(deps.Memberships)

	r.Route("/v1/roles", func(r chi.Router) {
		r.Post("/", roleHandler.Create)
		r.Get("/", roleHandler.List)
		r.Post("/memberships", membershipHandler.Assign)
		r.Get("/{id}", roleHandler.GetByID)
		r.Get("/{id}/memberships", membershipHandler.ListByRole)
	})

	return r
}
