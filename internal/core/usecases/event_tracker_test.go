package usecases_test

import (
	"context"
	"testing"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/usecases"
)

func TestEventTracker_Totals(t *testing.T) {
	tracker := usecases.NewEventTracker(0)
	ctx := context.Background()

	events := []*domain.ExtractionEvent{
		{ID: "e1", Count: 2, TotalMeters: 160, Source: "http"},
		{ID: "e2", Count: 3, TotalMeters: 900, Source: "ws"},
		{ID: "e3", Count: 1, Source: ""},
	}
	for _, e := range events {
		if err := tracker.Handle(ctx, e); err != nil {
			t.Fatalf("handle %s: %v", e.ID, err)
		}
	}

	stats := tracker.Stats()
	if stats.Events != 3 {
		t.Errorf("expected 3 events, got %d", stats.Events)
	}
	if stats.Coordinates != 6 {
		t.Errorf("expected 6 coordinates, got %d", stats.Coordinates)
	}
	if stats.TotalMeters != 1060 {
		t.Errorf("expected 1060 meters, got %f", stats.TotalMeters)
	}
	if stats.BySource["http"] != 1 || stats.BySource["ws"] != 1 || stats.BySource["unknown"] != 1 {
		t.Errorf("unexpected per-source counts %v", stats.BySource)
	}
}

func TestEventTracker_IgnoresRedelivery(t *testing.T) {
	tracker := usecases.NewEventTracker(0)
	ctx := context.Background()

	e := &domain.ExtractionEvent{ID: "dup", Count: 2, Source: "http"}
	_ = tracker.Handle(ctx, e)
	_ = tracker.Handle(ctx, e)

	if got := tracker.Stats().Events; got != 1 {
		t.Errorf("expected 1 event after redelivery, got %d", got)
	}
}

func TestEventTracker_StatsIsACopy(t *testing.T) {
	tracker := usecases.NewEventTracker(0)
	_ = tracker.Handle(context.Background(), &domain.ExtractionEvent{ID: "a", Count: 1, Source: "cli"})

	stats := tracker.Stats()
	stats.BySource["cli"] = 99

	if got := tracker.Stats().BySource["cli"]; got != 1 {
		t.Errorf("internal state mutated through snapshot: %d", got)
	}
}

func TestEventTracker_WindowEvictsOldestIDs(t *testing.T) {
	tracker := usecases.NewEventTracker(2)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "b", "c"} {
		_ = tracker.Handle(ctx, &domain.ExtractionEvent{ID: id, Count: 1, Source: "ws"})
	}
	if got := tracker.Stats().Events; got != 3 {
		t.Fatalf("expected 3 events, got %d", got)
	}

	// "c" is still in the window, "a" has been evicted.
	_ = tracker.Handle(ctx, &domain.ExtractionEvent{ID: "c", Count: 1, Source: "ws"})
	_ = tracker.Handle(ctx, &domain.ExtractionEvent{ID: "a", Count: 1, Source: "ws"})
	if got := tracker.Stats().Events; got != 4 {
		t.Errorf("expected 4 events, got %d", got)
	}
}
