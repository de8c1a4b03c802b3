package usecases

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/pkg/metrics"
)

// EventStats summarises the extraction events seen by an EventTracker.
type EventStats struct {
	Events      int            `json:"events"`
	Coordinates int            `json:"coordinates"`
	TotalMeters float64        `json:"total_meters"`
	BySource    map[string]int `json:"by_source"`
}

const defaultDedupWindow = 10000

// EventTracker consumes extraction events published by the API and keeps
// running totals.
type EventTracker struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string // ring of the IDs in seen, oldest at next
	next  int
	stats EventStats
}

// NewEventTracker creates an empty EventTracker that remembers the last
// window event IDs for redelivery checks. window <= 0 selects the default.
func NewEventTracker(window int) *EventTracker {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &EventTracker{
		seen:  make(map[string]struct{}, window),
		order: make([]string, 0, window),
		stats: EventStats{BySource: make(map[string]int)},
	}
}

// Handle records one event. A redelivered event (same ID) is counted once
// as long as its ID is still inside the dedup window.
func (t *EventTracker) Handle(ctx context.Context, event *domain.ExtractionEvent) error {
	t.mu.Lock()
	if _, dup := t.seen[event.ID]; dup {
		t.mu.Unlock()
		return nil
	}
	t.remember(event.ID)

	source := event.Source
	if source == "" {
		source = "unknown"
	}
	t.stats.Events++
	t.stats.Coordinates += event.Count
	t.stats.TotalMeters += event.TotalMeters
	t.stats.BySource[source]++
	t.mu.Unlock()

	metrics.WorkerEvents.WithLabelValues(source).Inc()
	metrics.WorkerCoordinates.Add(float64(event.Count))

	slog.InfoContext(ctx, "extraction event",
		"id", event.ID,
		"source", source,
		"coordinates", event.Count,
		"total_meters", event.TotalMeters,
		"google", event.Links.Google,
	)
	return nil
}

// remember adds id to the window, evicting the oldest ID once it is full.
// Callers hold t.mu.
func (t *EventTracker) remember(id string) {
	if len(t.order) < cap(t.order) {
		t.order = append(t.order, id)
	} else {
		delete(t.seen, t.order[t.next])
		t.order[t.next] = id
		t.next = (t.next + 1) % len(t.order)
	}
	t.seen[id] = struct{}{}
}

// Stats returns a copy of the current totals.
func (t *EventTracker) Stats() EventStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.stats
	out.BySource = make(map[string]int, len(t.stats.BySource))
	for k, v := range t.stats.BySource {
		out.BySource[k] = v
	}
	return out
}
