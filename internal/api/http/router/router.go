// Package router assembles the HTTP routing table and middleware chain.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fps-platform/fps-backend/internal/api/http/handler"
	"github.com/fps-platform/fps-backend/internal/api/http/middleware"
	"github.com/fps-platform/fps-backend/internal/logger"
	"github.com/fps-platform/fps-backend/internal/metrics"
)

// Deps bundles everything the router needs.
type Deps struct {
	Users     handler.UserService
	Tokens    handler.TokenService
	Identity  middleware.Identifier
	DB        handler.Pinger
	Collector *metrics.Collector
	Gatherer  prometheus.Gatherer
	RateLimit *middleware.RateLimit
	Logger    *logger.Logger
}

// skipAuthPrefixes lists the paths that never carry a bearer token worth
// resolving. Logout is deliberately absent: it runs authenticated.
var skipAuthPrefixes = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/refresh",
	"/health",
	"/metrics",
}

// New builds the router. Middleware order: logging, metrics, authenticate;
// the credential endpoints additionally sit behind the per-client rate limit.
func New(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewLogging(deps.Logger).Handler)
	r.Use(middleware.NewMetrics(deps.Collector).Handler)
	r.Use(middleware.NewAuthenticate(deps.Identity, deps.Logger, skipAuthPrefixes).Handler)

	authHandler := handler.NewAuth(deps.Users, deps.Tokens, deps.Collector, deps.Logger)
	userHandler := handler.NewUser()
	healthHandler := handler.NewHealth(deps.DB)

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimit.Handler)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})
		r.With(middleware.RequireAuth).Post("/logout", authHandler.Logout)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", userHandler.Me)
	})

	r.Get("/health", healthHandler.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	return r
}
