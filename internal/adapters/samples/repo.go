// Package samples serves the built-in example texts from an embedded YAML
// document. It keeps no state beyond the parsed document.
package samples

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/samirrijal/maplink/internal/core/domain"
)

//go:embed samples.yaml
var builtin []byte

// Repo implements ports.SampleRepository over a fixed list.
type Repo struct {
	samples []domain.Sample
	byID    map[string]int
}

// NewBuiltinRepo parses the embedded sample document.
func NewBuiltinRepo() (*Repo, error) {
	return Parse(builtin)
}

// Parse builds a Repo from a YAML list of samples.
func Parse(data []byte) (*Repo, error) {
	var samples []domain.Sample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}

	byID := make(map[string]int, len(samples))
	for i, s := range samples {
		if s.ID == "" {
			return nil, fmt.Errorf("sample %d has no id", i)
		}
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate sample id %q", s.ID)
		}
		byID[s.ID] = i
	}
	return &Repo{samples: samples, byID: byID}, nil
}

// List returns a copy of all samples.
func (r *Repo) List(ctx context.Context) ([]domain.Sample, error) {
	out := make([]domain.Sample, len(r.samples))
	copy(out, r.samples)
	return out, nil
}

// GetByID returns the sample with the given ID, or nil if there is none.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Sample, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	s := r.samples[i]
	return &s, nil
}
