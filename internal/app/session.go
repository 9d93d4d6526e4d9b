package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/nws-alerts/internal/observability"
	"github.com/couchcryptid/nws-alerts/internal/presenter"
)

// Session binds an interactive input source to one display surface. Lookups
// are serialized: while one is in flight further submissions are dropped,
// the way a form disables its button until the request settles.
type Session struct {
	svc      *Service
	view     presenter.Presenter
	inFlight atomic.Bool
	wg       sync.WaitGroup
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewSession creates a Session rendering to view.
func NewSession(svc *Service, view presenter.Presenter, logger *slog.Logger, metrics *observability.Metrics) *Session {
	return &Session{
		svc:     svc,
		view:    view,
		logger:  logger,
		metrics: metrics,
	}
}

// Submit starts a lookup for raw in the background. It returns false, doing
// nothing, when a previous lookup has not settled yet.
func (s *Session) Submit(ctx context.Context, raw string) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.BusyRejections.Inc()
		s.logger.Debug("submission dropped, lookup in flight", "input", raw)
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inFlight.Store(false)

		if _, err := s.svc.Lookup(ctx, raw, s.view); err != nil {
			s.logger.Error("render failed", "error", err)
		}
	}()
	return true
}

// Busy reports whether a lookup is in flight.
func (s *Session) Busy() bool { return s.inFlight.Load() }

// Wait blocks until the in-flight lookup, if any, has been rendered.
func (s *Session) Wait() { s.wg.Wait() }
