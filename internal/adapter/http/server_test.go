package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/couchcryptid/nws-alerts/internal/adapter/http"
	"github.com/couchcryptid/nws-alerts/internal/app"
	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/couchcryptid/nws-alerts/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type stubFetcher struct {
	feed domain.AlertFeed
	err  error
	seen []domain.RegionCode
}

func (f *stubFetcher) FetchAlerts(_ context.Context, region domain.RegionCode) (domain.AlertFeed, error) {
	f.seen = append(f.seen, region)
	return f.feed, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(f domain.AlertFetcher, readyErr error) *httpadapter.Server {
	svc := app.NewService(f, 0, discardLogger(), observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", svc, &mockReadiness{err: readyErr}, discardLogger())
}

func get(srv *httpadapter.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	rec := get(newTestServer(&stubFetcher{}, nil), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `id="state-input"`)
}

func TestUnknownPathIs404(t *testing.T) {
	rec := get(newTestServer(&stubFetcher{}, nil), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertsRendersFeed(t *testing.T) {
	f := &stubFetcher{feed: domain.AlertFeed{Title: "NWS alerts for CA", Alerts: []domain.Alert{}}}
	rec := get(newTestServer(f, nil), "/alerts?area=+ca+")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.RegionCode{"CA"}, f.seen)
	assert.Contains(t, rec.Body.String(), `<div class="summary">NWS alerts for CA: 0</div>`)
	assert.Contains(t, rec.Body.String(), "No active alerts for this state.")
}

func TestAlertsRendersFailureInErrorRegion(t *testing.T) {
	f := &stubFetcher{err: domain.NewHTTPError(500)}
	rec := get(newTestServer(f, nil), "/alerts?area=TX")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="error-message" class="show">Failed to fetch alerts. Status: 500</div>`)
	assert.NotContains(t, rec.Body.String(), `class="summary"`)
}

func TestAlertsRejectsBlankArea(t *testing.T) {
	f := &stubFetcher{}
	rec := get(newTestServer(f, nil), "/alerts?area=")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.seen)
	assert.Contains(t, rec.Body.String(), domain.EmptyRegionMessage)
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(newTestServer(&stubFetcher{}, nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(newTestServer(&stubFetcher{}, nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(newTestServer(&stubFetcher{}, fmt.Errorf("not ready yet")), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

type unreachableSink struct{}

func (unreachableSink) Render(context.Context, domain.Outcome) error { return nil }
func (unreachableSink) CheckReadiness(context.Context) error {
	return fmt.Errorf("kafka unreachable: dial tcp: connection refused")
}

func TestReadyzReflectsServiceSinks(t *testing.T) {
	svc := app.NewService(&stubFetcher{}, 0, discardLogger(), observability.NewMetricsForTesting(), unreachableSink{})
	srv := httpadapter.NewServer(":0", svc, svc, discardLogger())

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Contains(t, body["error"], "kafka unreachable")
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(&stubFetcher{}, nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
