package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/couchcryptid/nws-alerts/internal/presenter"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Looker runs one alert lookup and renders it to the given presenters.
type Looker interface {
	Lookup(ctx context.Context, raw string, views ...presenter.Presenter) (domain.Outcome, error)
}

// Server exposes the alerts page plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /alerts, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, lookups Looker, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withRecovery(mux, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /alerts", s.handleAlerts(lookups))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	setHTML(w)
	if err := presenter.NewHTMLPresenter(w).Blank(); err != nil {
		s.logger.Error("render index failed", "error", err)
	}
}

// handleAlerts answers 200 for failed lookups too: the page carries the
// failure in its error region.
func (s *Server) handleAlerts(lookups Looker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setHTML(w)
		view := presenter.NewHTMLPresenter(w)
		if _, err := lookups.Lookup(r.Context(), r.URL.Query().Get("area"), view); err != nil {
			s.logger.Error("render alerts page failed", "error", err)
		}
	}
}

func withRecovery(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("handler panic", "path", r.URL.Path, "panic", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func setHTML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
