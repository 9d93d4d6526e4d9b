package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/couchcryptid/nws-alerts/internal/observability"
	"github.com/couchcryptid/nws-alerts/internal/presenter"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

var _ sharedobs.ReadinessChecker = (*Service)(nil)

// Service binds region input to the alert fetcher and fans each outcome out
// to presenters. It holds no per-lookup state and is safe for concurrent use.
type Service struct {
	fetcher domain.AlertFetcher
	sinks   []presenter.Presenter
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a Service. A positive timeout bounds each fetch; sinks
// receive every outcome after the caller's presenters.
func NewService(fetcher domain.AlertFetcher, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics, sinks ...presenter.Presenter) *Service {
	return &Service{
		fetcher: fetcher,
		sinks:   sinks,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Lookup normalizes raw input, fetches the region's alerts and renders the
// outcome to each view. Blank input is rejected without calling the API.
// The returned error reports a view that failed to render; sink failures are
// only logged.
func (s *Service) Lookup(ctx context.Context, raw string, views ...presenter.Presenter) (domain.Outcome, error) {
	region := domain.NormalizeRegion(raw)

	var outcome domain.Outcome
	if region.IsEmpty() {
		outcome = domain.Outcome{Err: domain.NewEmptyRegionError()}
	} else {
		showLoading(ctx, region, views, s.logger)
		outcome = s.fetch(ctx, region)
	}
	s.record(outcome)

	var renderErrs []error
	for _, v := range views {
		if err := v.Render(ctx, outcome); err != nil {
			renderErrs = append(renderErrs, err)
		}
	}

	// Sinks outlive the caller's deadline so a slow page does not drop the record.
	sinkCtx := context.WithoutCancel(ctx)
	for _, sink := range s.sinks {
		if err := sink.Render(sinkCtx, outcome); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Error("publish outcome failed", "region", region, "error", err)
		}
	}

	if len(renderErrs) > 0 {
		return outcome, fmt.Errorf("render outcome: %w", errors.Join(renderErrs...))
	}
	return outcome, nil
}

// CheckReadiness returns the first error reported by a sink that can check
// its own readiness.
func (s *Service) CheckReadiness(ctx context.Context) error {
	for _, sink := range s.sinks {
		rc, ok := sink.(sharedobs.ReadinessChecker)
		if !ok {
			continue
		}
		if err := rc.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, region domain.RegionCode) domain.Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	feed, err := s.fetcher.FetchAlerts(ctx, region)
	return domain.NewOutcome(region, feed, err)
}

func (s *Service) record(o domain.Outcome) {
	s.metrics.Lookups.WithLabelValues(o.Label()).Inc()
	if o.OK() {
		s.metrics.AlertsPerFeed.Observe(float64(o.Feed.Count()))
		s.logger.Info("alerts lookup succeeded", "region", o.Region, "count", o.Feed.Count())
		return
	}
	s.logger.Warn("alerts lookup failed",
		"region", o.Region,
		"outcome", o.Label(),
		"status", o.Err.StatusCode,
		"error", o.Err.Message,
	)
}

func showLoading(ctx context.Context, region domain.RegionCode, views []presenter.Presenter, logger *slog.Logger) {
	for _, v := range views {
		lp, ok := v.(presenter.LoadingPresenter)
		if !ok {
			continue
		}
		if err := lp.Loading(ctx, region); err != nil {
			logger.Warn("show loading failed", "region", region, "error", err)
		}
	}
}
