package usecases_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/usecases"
)

// --- Mock CacheService ---

type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]int
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return b, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttlSeconds
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.ExtractionEvent
	err    error
}

func (m *mockPublisher) PublishExtraction(ctx context.Context, event *domain.ExtractionEvent) error {
	m.events = append(m.events, event)
	return m.err
}

const parkText = "A park located at latitude: 40.7308 and longitude: -73.9973, near the NYU campus (latitude: 40.7295, longitude: -73.9965)"

// --- Tests ---

func TestLinkService_Analyze(t *testing.T) {
	svc := usecases.NewLinkService(nil, nil, usecases.Limits{})

	a, err := svc.Analyze(context.Background(), "test", parkText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Coordinates) != 2 {
		t.Fatalf("expected 2 coordinates, got %d", len(a.Coordinates))
	}
	if len(a.Legs) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(a.Legs))
	}
	if a.TotalMeters != a.Legs[0].Meters {
		t.Errorf("expected total %v to equal single leg %v", a.TotalMeters, a.Legs[0].Meters)
	}
	if want := "https://www.google.com/maps/dir/40.7308,-73.9973/40.7295,-73.9965"; a.Links.Google != want {
		t.Errorf("expected %s, got %s", want, a.Links.Google)
	}
	if want := "https://map.project-osrm.org/?loc=40.7308%2C-73.9973&loc=40.7295%2C-73.9965"; a.Links.OSRM != want {
		t.Errorf("expected %s, got %s", want, a.Links.OSRM)
	}
	if a.Kind() != "route" {
		t.Errorf("expected route, got %s", a.Kind())
	}
}

func TestLinkService_Analyze_Unbalanced(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewLinkService(nil, pub, usecases.Limits{})

	a, err := svc.Analyze(context.Background(), "test", "latitude: 40.7308 and longitude: -73.9973. Another at latitude: 40.7295")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Coordinates) != 0 || a.Links.Google != "" || a.Links.OSRM != "" {
		t.Errorf("expected empty analysis, got %+v", a)
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no event for empty analysis, got %d", len(pub.events))
	}
}

func TestLinkService_Analyze_EmptyText(t *testing.T) {
	svc := usecases.NewLinkService(nil, nil, usecases.Limits{})
	a, err := svc.Analyze(context.Background(), "test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind() != "empty" {
		t.Errorf("expected empty, got %s", a.Kind())
	}
}

func TestLinkService_Analyze_TooLarge(t *testing.T) {
	svc := usecases.NewLinkService(nil, nil, usecases.Limits{MaxTextBytes: 16})
	_, err := svc.Analyze(context.Background(), "test", strings.Repeat("x", 17))
	if !errors.Is(err, usecases.ErrTextTooLarge) {
		t.Fatalf("expected ErrTextTooLarge, got %v", err)
	}
}

func TestLinkService_Analyze_Cache(t *testing.T) {
	cache := newMockCache()
	svc := usecases.NewLinkService(cache, nil, usecases.Limits{CacheTTLSeconds: 42})

	first, err := svc.Analyze(context.Background(), "test", parkText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.data) != 1 {
		t.Fatalf("expected 1 cached entry, got %d", len(cache.data))
	}
	for _, ttl := range cache.ttls {
		if ttl != 42 {
			t.Errorf("expected ttl 42, got %d", ttl)
		}
	}

	second, err := svc.Analyze(context.Background(), "test", parkText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Links != first.Links || len(second.Coordinates) != len(first.Coordinates) {
		t.Errorf("cached analysis differs: %+v vs %+v", second, first)
	}
}

func TestLinkService_Analyze_CacheFailureIsIgnored(t *testing.T) {
	cache := newMockCache()
	cache.setErr = errors.New("down")
	svc := usecases.NewLinkService(cache, nil, usecases.Limits{})

	a, err := svc.Analyze(context.Background(), "test", parkText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Coordinates) != 2 {
		t.Errorf("expected 2 coordinates, got %d", len(a.Coordinates))
	}
}

func TestLinkService_Analyze_PublishesEvent(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := usecases.NewLinkService(nil, pub, usecases.Limits{})

	if _, err := svc.Analyze(context.Background(), "http", parkText); err != nil {
		t.Fatalf("publish failure must not fail analysis: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Count != 2 || ev.Source != "http" || ev.ID == "" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestLinkService_LinksAndDistance(t *testing.T) {
	svc := usecases.NewLinkService(nil, nil, usecases.Limits{})
	p := domain.Coordinate{Latitude: 40.7308, Longitude: -73.9973}

	links := svc.Links(context.Background(), []domain.Coordinate{p})
	if links.Google != "https://www.google.com/maps/place/40.7308,-73.9973/" {
		t.Errorf("unexpected google link %s", links.Google)
	}
	if links.OSRM != "https://www.openstreetmap.org/search?query=40.7308%2C+-73.9973" {
		t.Errorf("unexpected osm link %s", links.OSRM)
	}

	m, display := svc.Distance(context.Background(), p, p)
	if m != 0 || display != "0m" {
		t.Errorf("expected 0m, got %v %s", m, display)
	}
}

func TestLinkService_EvaluateDoesNotPublish(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewLinkService(nil, pub, usecases.Limits{})

	a, err := svc.Evaluate(context.Background(), parkText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Coordinates) != 2 {
		t.Fatalf("expected 2 coordinates, got %d", len(a.Coordinates))
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected no events, got %d", len(pub.events))
	}

	svc.Publish(context.Background(), "ws", a)
	if len(pub.events) != 1 || pub.events[0].Source != "ws" || pub.events[0].Count != 2 {
		t.Errorf("unexpected events %+v", pub.events)
	}
}

func TestLinkService_Evaluate_TooLarge(t *testing.T) {
	svc := usecases.NewLinkService(nil, nil, usecases.Limits{MaxTextBytes: 4})
	if _, err := svc.Evaluate(context.Background(), "latitude: 1"); !errors.Is(err, usecases.ErrTextTooLarge) {
		t.Fatalf("expected ErrTextTooLarge, got %v", err)
	}
}

func TestLinkService_Analyze_AntipodesAreCached(t *testing.T) {
	cache := newMockCache()
	svc := usecases.NewLinkService(cache, nil, usecases.Limits{})

	a, err := svc.Analyze(context.Background(), "test", "latitude: -89.26 longitude: -180 latitude: 89.26 longitude: 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(a.TotalMeters) {
		t.Fatal("expected finite total")
	}
	if len(cache.data) != 1 {
		t.Errorf("expected the analysis to be cached, got %d entries", len(cache.data))
	}
}
