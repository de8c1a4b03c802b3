package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/pkg/metrics"
)

const (
	// StreamName is the JetStream stream holding extraction events.
	StreamName = "MAPLINK_EXTRACTIONS"
	// SubjectPrefix is followed by the source surface (http, graphql, ws).
	SubjectPrefix = "maplink.extracted."
	// SubjectAll matches every extraction event.
	SubjectAll = SubjectPrefix + ">"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and makes sure the extraction stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := Connect(url)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStream(js); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	cfg := &nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectAll},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// PublishExtraction sends event on maplink.extracted.<source>.
func (p *Publisher) PublishExtraction(ctx context.Context, event *domain.ExtractionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	source := event.Source
	if source == "" {
		source = "unknown"
	}
	if _, err := p.js.Publish(SubjectPrefix+source, data, nats.Context(ctx)); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish extraction: %w", err)
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
	return nil
}

// Conn exposes the underlying connection (e.g. for the WebSocket relay).
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// Connect opens a plain NATS connection that keeps reconnecting.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("maplink"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}
