package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maplink",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maplink",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Extraction metrics
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "extract",
		Name:      "extractions_total",
		Help:      "Total text analyses by outcome (empty, single, route)",
	}, []string{"outcome"})

	CoordinatesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "extract",
		Name:      "coordinates_extracted_total",
		Help:      "Total coordinates extracted from input texts",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Extraction events handed to the broker",
	}, []string{"result"})

	WorkerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "worker",
		Name:      "events_total",
		Help:      "Extraction events consumed by the worker",
	}, []string{"source"})

	WorkerCoordinates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "worker",
		Name:      "coordinates_total",
		Help:      "Coordinates carried by consumed extraction events",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "maplink",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maplink",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// RecordExtraction counts one analysis and the coordinates it produced.
func RecordExtraction(outcome string, coordinates int) {
	ExtractionsTotal.WithLabelValues(outcome).Inc()
	CoordinatesExtracted.Add(float64(coordinates))
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// Route pattern keeps label cardinality bounded (/v1/samples/:id).
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
