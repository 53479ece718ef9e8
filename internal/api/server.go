package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/accounts/internal/api/handler"
	mw "github.com/edvin/accounts/internal/api/middleware"
	"github.com/edvin/accounts/internal/config"
	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/render"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	cfg      *config.Config
	renderer *render.Renderer
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, mailer core.Mailer, cfg *config.Config) *Server {
	services := core.NewServices(pool, mailer, cfg.BaseURL, cfg.NonceSecret)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		pool:     pool,
		cfg:      cfg,
		renderer: render.NewRenderer(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Public flow pages
	activation := handler.NewActivation(s.services.Activation, s.services.Settings, s.services.Pages, s.services.Nonces, s.renderer)
	s.router.Get(core.ActivatePath, activation.Show)
	s.router.Post(core.ActivatePath, activation.Submit)

	reset := handler.NewPasswordReset(s.services.PasswordReset, s.services.Settings, s.services.Pages, s.services.Nonces, s.renderer)
	s.router.Get(core.PasswordResetPath, reset.Show)
	s.router.Post(core.PasswordResetPath, reset.Submit)

	// Old activation entry point, kept for emailed links in the wild.
	s.router.Get(core.LegacyActivate, handler.LegacyActivate)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		// Settings
		settings := handler.NewSettings(s.services.Settings)
		r.Get("/settings", settings.Get)
		r.Put("/settings", settings.Update)

		// Signups
		signup := handler.NewSignup(s.services.Users, s.services.Email)
		r.Post("/signups", signup.Create)

		// Pages
		page := handler.NewPage(s.services.Pages)
		r.Get("/pages/{id}", page.Get)

		// API keys
		apiKey := handler.NewAPIKey(s.services.APIKeys)
		r.Get("/api-keys", apiKey.List)
		r.Post("/api-keys", apiKey.Create)
		r.Delete("/api-keys/{id}", apiKey.Revoke)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
