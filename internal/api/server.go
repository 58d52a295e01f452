package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/quitwise/quitwise-backend/internal/api/handler"
	"github.com/quitwise/quitwise-backend/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/store", h.HealthCheckStore)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/verify", h.VerifyToken)

		// User profiles
		r.Route("/users", func(r chi.Router) {
			r.Get("/{uid}", h.GetUser)
			r.Post("/{uid}", h.UpsertUser)
		})

		// Event logs
		r.Route("/logs", func(r chi.Router) {
			r.Get("/{uid}", h.ListLogs)
			r.Post("/{uid}", h.CreateLog)
		})

		// Analytics
		r.Get("/analytics/{uid}", h.GetAnalytics)

		// Notifications
		r.Route("/notifications", func(r chi.Router) {
			// POST for manual triggers, GET for externally scheduled cron.
			r.Post("/check-jitais", h.CheckJITAIs)
			r.Get("/check-jitais", h.CheckJITAIs)
			r.Get("/jitais/{uid}", h.ListJITAIs)
			r.Post("/schedule/{uid}", h.ScheduleJITAIs)
		})

		// Community feed
		r.Route("/community", func(r chi.Router) {
			r.Get("/posts", h.ListPosts)
			r.Post("/posts/{uid}", h.CreatePost)
			r.Post("/posts/{id}/like", h.LikePost)
		})
	})

	return r
}
