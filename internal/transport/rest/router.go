package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cash-pro/internal/admin"
	"github.com/frahmantamala/cash-pro/internal/auth"
	"github.com/frahmantamala/cash-pro/internal/company"
	"github.com/frahmantamala/cash-pro/internal/navigation"
	"github.com/frahmantamala/cash-pro/internal/rbac"
	"github.com/frahmantamala/cash-pro/internal/subscription"
	"github.com/frahmantamala/cash-pro/internal/transport/middleware"
	"github.com/frahmantamala/cash-pro/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Auth         *auth.Handler
	Company      *company.Handler
	Subscription *subscription.Handler
	RBAC         *rbac.Handler
	Admin        *admin.Handler
	Navigation   *navigation.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, redisClient *redis.Client, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redisClient)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/register", h.Auth.Register)
				sr.Post("/logout", h.Auth.Logout)

				sr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.AuthMiddleware)
					ar.Get("/me", h.Auth.Me)
					ar.Get("/context", h.Auth.Context)
					ar.Post("/switch-company", h.Auth.SwitchCompany)
				})
			})
		}

		// Public plan catalog (no auth required)
		if h.Subscription != nil {
			r.Get("/subscription/plans", h.Subscription.ListPlans)
		}

		// Navigation routes tolerate anonymous callers: the guard has to
		// decide login redirects for them too.
		if h.Navigation != nil && h.Auth != nil {
			r.Group(func(nr chi.Router) {
				nr.Use(h.Auth.OptionalAuthMiddleware)
				nr.Get("/navigation", h.Navigation.GetNavigation)
				nr.Get("/navigation/guard", h.Navigation.ResolveGuard)
			})
		}

		if h.Auth != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				if h.Company != nil {
					pr.Post("/company", h.Company.CreateCompany)
				}

				if h.Subscription != nil {
					pr.Route("/subscription", func(sr chi.Router) {
						sr.Post("/subscribe", h.Subscription.Subscribe)
						sr.Get("/current", h.Subscription.Current)
					})
				}

				if h.RBAC != nil {
					pr.Route("/rbac", func(rr chi.Router) {
						rr.Get("/roles", h.RBAC.ListRoles)
						rr.Post("/roles", h.RBAC.CreateRole)
						rr.Get("/permissions", h.RBAC.ListPermissions)
						rr.Post("/assign-role", h.RBAC.AssignRole)
					})
				}

				// Super-admin surface
				if h.Admin != nil {
					pr.Group(func(sr chi.Router) {
						sr.Use(h.Auth.RequireSuperAdmin)
						sr.Route("/admin", func(ar chi.Router) {
							ar.Get("/users", h.Admin.ListUsers)
							ar.Post("/users", h.Admin.CreateUser)
							ar.Get("/companies", h.Admin.ListCompanies)
						})
					})
				}
			})
		}
	})
}
