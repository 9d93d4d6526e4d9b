//go:build nws

package nws

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real NWS API.
// Run with: go test -tags=nws ./internal/adapter/nws/ -v -count=1

func smokeClient() *Client {
	c := testClient(DefaultBaseURL)
	// api.weather.gov rejects requests without an identifying User-Agent.
	c.http.SetHeader("User-Agent", "nws-alerts-smoke-test (github.com/couchcryptid/nws-alerts)")
	return c
}

func smokeContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSmoke_FetchAlerts(t *testing.T) {
	feed, err := smokeClient().FetchAlerts(smokeContext(t), "TX")
	require.NoError(t, err)

	assert.NotEmpty(t, feed.Title)
	assert.NotNil(t, feed.Alerts)
}

func TestSmoke_FetchAlerts_UnknownArea(t *testing.T) {
	// The API answers unknown area codes with 400 Bad Request.
	_, err := smokeClient().FetchAlerts(smokeContext(t), "ZZ")

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, domain.KindHTTP, fe.Kind)
	assert.Equal(t, 400, fe.StatusCode)
}
