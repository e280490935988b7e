package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appdiscovery "playbud-discovery/internal/app/discovery"
	"playbud-discovery/internal/booking"
	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/metrics"
	"playbud-discovery/internal/poller"
	"playbud-discovery/internal/session"
)

// Refresher is the slice of the poller the API needs: on-demand refresh and
// readiness reporting.
type Refresher interface {
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// RecordUpserter lets the join handler land a re-fetched record in the
// snapshot immediately instead of waiting for the next poll.
type RecordUpserter interface {
	UpsertGame(rec games.Record)
}

// Config carries the web layer's own settings.
type Config struct {
	LoginURL       string
	AllowedOrigins []string
}

// Handler serves the discovery and booking JSON API.
type Handler struct {
	cfg      Config
	svc      *appdiscovery.Service
	workflow *booking.Workflow
	sessions *session.Manager
	records  RecordUpserter
	poller   Refresher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	router   chi.Router
}

// New wires the router with middleware and routes.
func New(cfg Config, svc *appdiscovery.Service, workflow *booking.Workflow, sessions *session.Manager, records RecordUpserter, refresher Refresher, logger *slog.Logger, recorder *metrics.Recorder) *Handler {
	if cfg.LoginURL == "" {
		cfg.LoginURL = "/login"
	}
	h := &Handler{
		cfg:      cfg,
		svc:      svc,
		workflow: workflow,
		sessions: sessions,
		records:  records,
		poller:   refresher,
		logger:   logger,
		metrics:  recorder,
		router:   chi.NewRouter(),
	}
	h.setupMiddleware()
	h.setupRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) setupMiddleware() {
	h.router.Use(chimiddleware.Recoverer)
	h.router.Use(chimiddleware.Compress(5))
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	h.router.Use(h.requestID)
	h.router.Use(h.observe)
}

func (h *Handler) setupRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/reference-data", h.handleReferenceData)
		r.Get("/spots", h.handleSpots)
		r.Get("/spots/{spotID}", h.handleSpotByID)
		r.Post("/spots/{spotID}/join", h.handleJoin)
		r.Post("/refresh", h.handleRefresh)
	})

	h.router.Get("/health", h.handleHealth)
	h.router.Get("/ready", h.handleReady)
}

func (h *Handler) allowedOrigins() []string {
	if len(h.cfg.AllowedOrigins) > 0 {
		return h.cfg.AllowedOrigins
	}
	return []string{"http://localhost:3000"}
}
