package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses unless the
// handler already did. Lookups under /v1 are pure functions of the URL and
// may be cached publicly. Analysis endpoints also publish an extraction
// event per request, so shared caches must revalidate them.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if existing := c.GetRespHeader(fiber.HeaderCacheControl); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "no-cache"

		case path == "/metrics" || path == "/ws":
			ttl = "no-store"

		case c.Response().StatusCode() != fiber.StatusOK:
			ttl = "no-cache"

		case path == "/v1/analyze" || (strings.HasPrefix(path, "/v1/samples/") && strings.HasSuffix(path, "/analysis")):
			ttl = "private, no-cache"

		case strings.HasPrefix(path, "/v1/samples"):
			ttl = "public, max-age=3600" // built into the binary

		case path == "/v1/distance":
			ttl = "public, max-age=86400" // depends only on the query

		case strings.HasPrefix(path, "/docs"):
			ttl = "public, max-age=600"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}

		return err
	}
}
