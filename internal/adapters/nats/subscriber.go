package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/maplink/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	durable string
	subs    []*nats.Subscription
}

// NewSubscriber connects to NATS; durable names the JetStream consumer so
// that restarts resume where the previous run stopped.
func NewSubscriber(url, durable string) (*Subscriber, error) {
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
	return &Subscriber{conn: conn, js: js, durable: durable}, nil
}

// SubscribeExtractions delivers every extraction event to handler. Events
// that cannot be decoded are terminated; handler errors are redelivered up
// to three times.
func (s *Subscriber) SubscribeExtractions(ctx context.Context, handler func(ctx context.Context, event *domain.ExtractionEvent) error) error {
	sub, err := s.js.Subscribe(SubjectAll, func(msg *nats.Msg) {
		event, err := decodeEvent(msg.Data)
		if err != nil {
			slog.Warn("dropping malformed extraction event", "subject", msg.Subject, "error", err)
			_ = msg.Term()
			return
		}
		if err := handler(ctx, event); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(s.durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}

func decodeEvent(data []byte) (*domain.ExtractionEvent, error) {
	var event domain.ExtractionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, fmt.Errorf("event has no id")
	}
	return &event, nil
}
