package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/nws-alerts/internal/config"
	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/couchcryptid/nws-alerts/internal/presenter"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces one message per lookup outcome.
// It implements presenter.Presenter so it can be attached as a sink.
type Publisher struct {
	writer  *kafkago.Writer
	brokers []string
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured outcome topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, brokers: cfg.KafkaBrokers, logger: logger}
}

// Render publishes the outcome. Messages are keyed by region so lookups for
// the same region land on the same partition in order.
func (p *Publisher) Render(ctx context.Context, outcome domain.Outcome) error {
	msg, err := serializeToMessage(outcome, domain.Now())
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish lookup outcome: %w", err)
	}
	p.logger.Debug("lookup outcome published", "region", outcome.Region, "outcome", outcome.Label())
	return nil
}

// CheckReadiness dials the first reachable broker.
func (p *Publisher) CheckReadiness(ctx context.Context) error {
	var lastErr error
	for _, b := range p.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", b)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		return errors.New("no kafka brokers configured")
	}
	return fmt.Errorf("kafka unreachable: %w", lastErr)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// lookupRecord is the message value written for each outcome.
type lookupRecord struct {
	Region      string    `json:"region"`
	OK          bool      `json:"ok"`
	Summary     string    `json:"summary,omitempty"`
	NoAlerts    bool      `json:"no_alerts,omitempty"`
	Headlines   []string  `json:"headlines,omitempty"`
	Error       string    `json:"error,omitempty"`
	StatusCode  int       `json:"status_code,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// serializeToMessage marshals an Outcome into a Kafka message.
func serializeToMessage(outcome domain.Outcome, at time.Time) (kafkago.Message, error) {
	v := presenter.BuildView(outcome)
	rec := lookupRecord{
		Region:      v.Region,
		OK:          outcome.OK(),
		Summary:     v.Summary,
		NoAlerts:    v.NoAlerts,
		Headlines:   v.Headlines,
		Error:       v.Error,
		PublishedAt: at.UTC(),
	}
	if !outcome.OK() {
		rec.StatusCode = outcome.Err.StatusCode
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize lookup outcome: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(outcome.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "outcome", Value: []byte(outcome.Label())},
			{Key: "published_at", Value: []byte(rec.PublishedAt.Format(time.RFC3339))},
		},
	}, nil
}
