package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/runclub/runtrack/internal/api/handlers"
	"github.com/runclub/runtrack/internal/api/middleware"
	"github.com/runclub/runtrack/internal/config"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/metrics"
	"github.com/runclub/runtrack/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"Server is running"}`))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	recordHandler := handlers.NewRecordHandler(services.Record)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard)
	uploadHandler := handlers.NewUploadHandler(services.Upload)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public login
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/register", authHandler.Register)
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
			})
		})

		r.Route("/running", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Post("/records", recordHandler.Create)
			r.Get("/records", recordHandler.List)
			r.Get("/records/{id}", recordHandler.Get)
			r.Put("/records/{id}", recordHandler.Update)
			r.Delete("/records/{id}", recordHandler.Delete)
			r.Get("/stats", recordHandler.Stats)
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Get("/daily", leaderboardHandler.Top(domain.PeriodDaily))
			r.Get("/weekly", leaderboardHandler.Top(domain.PeriodWeekly))
			r.Get("/monthly", leaderboardHandler.Top(domain.PeriodMonthly))
			r.Get("/rank/{period}", leaderboardHandler.Rank)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/image", uploadHandler.Image)
		})
	})

	return r
}
