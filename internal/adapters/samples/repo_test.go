package samples_test

import (
	"context"
	"testing"

	"github.com/samirrijal/maplink/internal/adapters/samples"
	"github.com/samirrijal/maplink/internal/pkg/geospatial"
)

func TestBuiltinRepo(t *testing.T) {
	repo, err := samples.NewBuiltinRepo()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("expected at least 3 samples, got %d", len(all))
	}
	if all[0].ID != "greenwich-village" {
		t.Errorf("expected greenwich-village first, got %s", all[0].ID)
	}
}

func TestBuiltinRepo_SampleContents(t *testing.T) {
	repo, _ := samples.NewBuiltinRepo()
	want := map[string]int{
		"greenwich-village": 3,
		"bilbao-riverside":  3,
		"single-place":      1,
		"unbalanced":        0,
	}
	for id, n := range want {
		s, err := repo.GetByID(context.Background(), id)
		if err != nil || s == nil {
			t.Fatalf("sample %s: got %v, %v", id, s, err)
		}
		if got := len(geospatial.Extract(s.Text)); got != n {
			t.Errorf("sample %s: expected %d coordinates, got %d", id, n, got)
		}
	}
}

func TestBuiltinRepo_Unknown(t *testing.T) {
	repo, _ := samples.NewBuiltinRepo()
	s, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil sample, got %+v", s)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := samples.Parse([]byte("- id: a\n  text: x\n- id: a\n  text: y\n")); err == nil {
		t.Error("expected duplicate id error")
	}
	if _, err := samples.Parse([]byte("- title: no id\n")); err == nil {
		t.Error("expected missing id error")
	}
	if _, err := samples.Parse([]byte("{not a list")); err == nil {
		t.Error("expected yaml error")
	}
}
