package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/ports"
	"github.com/samirrijal/maplink/internal/pkg/geospatial"
	"github.com/samirrijal/maplink/internal/pkg/metrics"
)

const (
	defaultMaxTextBytes = 64 * 1024
	defaultCacheTTL     = 300
)

var tracer = otel.Tracer("github.com/samirrijal/maplink/internal/core/usecases")

// Limits bounds the work a single analysis may do.
type Limits struct {
	MaxTextBytes    int
	CacheTTLSeconds int
}

// LinkService turns free-form text into coordinates, distances and map links.
type LinkService struct {
	cache  ports.CacheService
	events ports.EventPublisher
	limits Limits
}

// NewLinkService creates a new LinkService. cache and events may be nil.
func NewLinkService(cache ports.CacheService, events ports.EventPublisher, limits Limits) *LinkService {
	if limits.MaxTextBytes <= 0 {
		limits.MaxTextBytes = defaultMaxTextBytes
	}
	if limits.CacheTTLSeconds <= 0 {
		limits.CacheTTLSeconds = defaultCacheTTL
	}
	return &LinkService{cache: cache, events: events, limits: limits}
}

// Analyze extracts the coordinates in text and derives legs and links from
// them. Text without markers, or with unbalanced markers, yields an empty
// analysis rather than an error. source names the calling surface and is
// only used for the published event.
func (s *LinkService) Analyze(ctx context.Context, source, text string) (*domain.Analysis, error) {
	ctx, span := tracer.Start(ctx, "LinkService.Analyze")
	defer span.End()

	analysis, err := s.evaluate(ctx, span, text)
	if err != nil {
		return nil, err
	}
	if len(analysis.Coordinates) > 0 {
		s.Publish(ctx, source, analysis)
	}
	return analysis, nil
}

// Evaluate is Analyze without the extraction event. Callers that see the
// same text many times, like the live WebSocket channel, decide for
// themselves when a result is worth publishing.
func (s *LinkService) Evaluate(ctx context.Context, text string) (*domain.Analysis, error) {
	ctx, span := tracer.Start(ctx, "LinkService.Evaluate")
	defer span.End()

	return s.evaluate(ctx, span, text)
}

func (s *LinkService) evaluate(ctx context.Context, span trace.Span, text string) (*domain.Analysis, error) {
	if len(text) > s.limits.MaxTextBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTextTooLarge, len(text), s.limits.MaxTextBytes)
	}

	sum := sha256.Sum256([]byte(text))
	cacheKey := "maplink:analysis:" + hex.EncodeToString(sum[:])

	analysis, hit := s.cached(ctx, cacheKey)
	if !hit {
		analysis = analyze(text)
		metrics.RecordExtraction(analysis.Kind(), len(analysis.Coordinates))
		s.store(ctx, cacheKey, analysis)
	}

	span.SetAttributes(
		attribute.Int("maplink.coordinates", len(analysis.Coordinates)),
		attribute.Bool("maplink.cache_hit", hit),
	)
	return analysis, nil
}

// Links generates the map URLs for an explicit coordinate list.
func (s *LinkService) Links(ctx context.Context, coords []domain.Coordinate) domain.Links {
	return geospatial.BuildLinks(coords)
}

// Distance returns the great-circle distance between a and b in meters
// together with its display form.
func (s *LinkService) Distance(ctx context.Context, a, b domain.Coordinate) (float64, string) {
	m := geospatial.Distance(a, b)
	return m, geospatial.FormatMeters(m)
}

func (s *LinkService) cached(ctx context.Context, key string) (*domain.Analysis, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.DebugContext(ctx, "analysis cache lookup missed", "error", err)
		metrics.CacheMisses.WithLabelValues("analysis").Inc()
		return nil, false
	}
	var a domain.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		metrics.CacheMisses.WithLabelValues("analysis").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("analysis").Inc()
	return &a, true
}

func (s *LinkService) store(ctx context.Context, key string, a *domain.Analysis) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		slog.WarnContext(ctx, "analysis not cacheable", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.limits.CacheTTLSeconds); err != nil {
		slog.WarnContext(ctx, "analysis cache set failed", "error", err)
	}
}

// Publish emits an extraction event for a. Failures are logged, never
// returned: analysis results do not depend on the broker.
func (s *LinkService) Publish(ctx context.Context, source string, a *domain.Analysis) {
	if s.events == nil {
		return
	}
	event := &domain.ExtractionEvent{
		ID:          uuid.NewString(),
		Count:       len(a.Coordinates),
		TotalMeters: a.TotalMeters,
		Links:       a.Links,
		Source:      source,
		At:          time.Now().UTC(),
	}
	if err := s.events.PublishExtraction(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish extraction event failed", "error", err, "source", source)
	}
}

func analyze(text string) *domain.Analysis {
	return AnalysisOf(geospatial.Extract(text))
}

// AnalysisOf derives legs, total length and links from an already
// extracted coordinate list.
func AnalysisOf(coords []domain.Coordinate) *domain.Analysis {
	if coords == nil {
		coords = []domain.Coordinate{}
	}
	return &domain.Analysis{
		Coordinates: coords,
		Legs:        geospatial.Legs(coords),
		TotalMeters: geospatial.PathLength(coords),
		Links:       geospatial.BuildLinks(coords),
	}
}
