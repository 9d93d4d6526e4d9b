package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/couchcryptid/nws-alerts/internal/observability"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public NWS API root.
const DefaultBaseURL = "https://api.weather.gov"

const alertsPath = "/alerts/active"

// Client implements domain.AlertFetcher against the NWS active alerts endpoint.
// It sets no timeout and never retries; callers bound latency through ctx.
type Client struct {
	http    *resty.Client
	baseURL string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates an NWS alerts client rooted at baseURL.
func NewClient(baseURL string, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		http:    resty.New().SetLogger(restyLogger{logger}),
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchAlerts issues one GET for the region's active alerts.
func (c *Client) FetchAlerts(ctx context.Context, region domain.RegionCode) (domain.AlertFeed, error) {
	start := domain.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("area", region.String()).
		Get(c.baseURL + alertsPath)
	c.metrics.APIDuration.Observe(domain.Since(start).Seconds())

	if err != nil {
		c.logger.Debug("alerts request failed", "region", region, "error", err)
		return domain.AlertFeed{}, domain.NewTransportError(rootCause(err))
	}

	if !resp.IsSuccess() {
		c.logger.Debug("alerts request rejected", "region", region, "status", resp.StatusCode())
		return domain.AlertFeed{}, domain.NewHTTPError(resp.StatusCode())
	}

	var body response
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.logger.Debug("alerts response undecodable", "region", region, "error", err)
		return domain.AlertFeed{}, domain.NewParseError(err)
	}

	feed := body.toFeed()
	c.logger.Debug("alerts fetched", "region", region, "status", resp.StatusCode(), "count", feed.Count())
	return feed, nil
}

// rootCause strips the *url.Error envelope so the message names only what went wrong.
func rootCause(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}

// NWS API response types. Every field is optional.

type response struct {
	Title    *string   `json:"title"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties *properties `json:"properties"`
}

type properties struct {
	Headline *string `json:"headline"`
}

func (r response) toFeed() domain.AlertFeed {
	feed := domain.AlertFeed{
		Title:  domain.DefaultFeedTitle,
		Alerts: make([]domain.Alert, 0, len(r.Features)),
	}
	if r.Title != nil && *r.Title != "" {
		feed.Title = *r.Title
	}
	for _, f := range r.Features {
		var a domain.Alert
		if f.Properties != nil {
			a.Headline = f.Properties.Headline
		}
		feed.Alerts = append(feed.Alerts, a)
	}
	return feed
}

// restyLogger routes resty's internal messages to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error("resty", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn("resty", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug("resty", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}
