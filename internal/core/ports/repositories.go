package ports

import (
	"context"

	"github.com/samirrijal/maplink/internal/core/domain"
)

// SampleRepository serves the canned input texts.
type SampleRepository interface {
	List(ctx context.Context) ([]domain.Sample, error)
	GetByID(ctx context.Context, id string) (*domain.Sample, error)
}
