package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/bayshorevolley/league-data/internal/api/handler"
	"github.com/bayshorevolley/league-data/internal/config"
	"github.com/bayshorevolley/league-data/internal/db"
	"github.com/bayshorevolley/league-data/internal/reconcile"
	"github.com/bayshorevolley/league-data/internal/snapshot"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, snap *snapshot.Service, engine *reconcile.Engine, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS — the admin panel browses here cross-origin.
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, snap, engine, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/snapshot", h.HealthCheckSnapshot)
	})

	// Swagger UI, served from the generated docs package
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Read projections
		r.Get("/divisions", h.GetDivisions)
		r.Get("/standings/{division}", h.GetStandings)
		r.Get("/leaderboard/{division}", h.GetLeaderboard)
		r.Get("/roster/{division}", h.GetRoster)

		// Admin writes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/divisions", h.CreateDivision)
			r.Post("/teams", h.CreateTeam)
			r.Patch("/teams/{id}", h.UpdateTeam)
			r.Delete("/teams/{id}", h.DeleteTeam)
			r.Post("/players", h.CreatePlayer)
			r.Patch("/players/{id}", h.UpdatePlayer)
			r.Delete("/players/{id}", h.DeletePlayer)
		})
	})

	return r
}
