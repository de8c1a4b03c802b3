package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/usecases"
)

// --- Mock SampleRepository ---

type mockSampleRepo struct {
	samples []domain.Sample
}

func (m *mockSampleRepo) List(ctx context.Context) ([]domain.Sample, error) {
	return m.samples, nil
}

func (m *mockSampleRepo) GetByID(ctx context.Context, id string) (*domain.Sample, error) {
	for _, s := range m.samples {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func TestSampleService_Get(t *testing.T) {
	svc := usecases.NewSampleService(&mockSampleRepo{samples: []domain.Sample{{ID: "a", Title: "A"}}})

	s, err := svc.Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "A" {
		t.Errorf("expected A, got %s", s.Title)
	}

	_, err = svc.Get(context.Background(), "b")
	if !errors.Is(err, usecases.ErrSampleNotFound) {
		t.Errorf("expected ErrSampleNotFound, got %v", err)
	}

	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestSampleService_List(t *testing.T) {
	svc := usecases.NewSampleService(&mockSampleRepo{samples: []domain.Sample{{ID: "a"}, {ID: "b"}}})
	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(all))
	}
}
