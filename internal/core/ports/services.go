package ports

import (
	"context"

	"github.com/samirrijal/maplink/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishExtraction(ctx context.Context, event *domain.ExtractionEvent) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeExtractions(ctx context.Context, handler func(ctx context.Context, event *domain.ExtractionEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
}
