package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/nws-alerts/internal/config"
	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSerializeToMessage_Success(t *testing.T) {
	at := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	outcome := domain.Outcome{Region: "TX", Feed: domain.AlertFeed{
		Title:  "X",
		Alerts: []domain.Alert{{Headline: strPtr("Flood Warning")}, {}},
	}}

	msg, err := serializeToMessage(outcome, at)
	require.NoError(t, err)

	assert.Equal(t, []byte("TX"), msg.Key)
	assert.JSONEq(t, `{
		"region": "TX",
		"ok": true,
		"summary": "X: 2",
		"headlines": ["Flood Warning", "No headline available"],
		"published_at": "2024-04-26T15:10:00Z"
	}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "outcome", msg.Headers[0].Key)
	assert.Equal(t, []byte("success"), msg.Headers[0].Value)
	assert.Equal(t, "published_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(at.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_EmptyFeed(t *testing.T) {
	outcome := domain.Outcome{Region: "CA", Feed: domain.AlertFeed{Title: "NWS alerts for CA", Alerts: []domain.Alert{}}}

	msg, err := serializeToMessage(outcome, time.Unix(0, 0))
	require.NoError(t, err)

	var rec lookupRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec))
	assert.True(t, rec.NoAlerts)
	assert.Equal(t, "NWS alerts for CA: 0", rec.Summary)
	assert.Empty(t, rec.Headlines)
}

func TestSerializeToMessage_Failure(t *testing.T) {
	outcome := domain.NewOutcome("TX", domain.AlertFeed{}, domain.NewHTTPError(503))

	msg, err := serializeToMessage(outcome, time.Unix(0, 0))
	require.NoError(t, err)

	var rec lookupRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec))
	assert.False(t, rec.OK)
	assert.Equal(t, "Failed to fetch alerts. Status: 503", rec.Error)
	assert.Equal(t, 503, rec.StatusCode)
	assert.Empty(t, rec.Summary)
	assert.Equal(t, []byte("http_error"), msg.Headers[0].Value)
}

func TestPublisher_CheckReadiness_Unreachable(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "t"}
	p := NewPublisher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := p.CheckReadiness(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka unreachable")
}
