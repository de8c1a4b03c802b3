package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/ports"
)

// SampleService exposes the canned input texts.
type SampleService struct {
	samples ports.SampleRepository
}

// NewSampleService creates a new SampleService.
func NewSampleService(samples ports.SampleRepository) *SampleService {
	return &SampleService{samples: samples}
}

// List returns all samples in their configured order.
func (s *SampleService) List(ctx context.Context) ([]domain.Sample, error) {
	return s.samples.List(ctx)
}

// Get returns a sample by ID.
func (s *SampleService) Get(ctx context.Context, id string) (*domain.Sample, error) {
	if id == "" {
		return nil, fmt.Errorf("sample id must not be empty")
	}
	sample, err := s.samples.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, fmt.Errorf("%w: %s", ErrSampleNotFound, id)
	}
	return sample, nil
}
