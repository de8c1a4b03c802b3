package http

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/maplink/internal/core/domain"
)

const maxLinkCoordinates = 1000

// analyzeRequest is the body of POST /v1/analyze.
type analyzeRequest struct {
	Text string `json:"text"`
}

// linksRequest is the body of POST /v1/links.
type linksRequest struct {
	Coordinates []domain.Coordinate `json:"coordinates"`
}

// DistanceResponse is returned by GET /v1/distance.
type DistanceResponse struct {
	From    domain.Coordinate `json:"from"`
	To      domain.Coordinate `json:"to"`
	Meters  float64           `json:"meters"`
	Display string            `json:"display"`
}

// AnalyzeHandler extracts coordinates from the posted text and returns the
// derived legs and map links.
func AnalyzeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req analyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		return respondAnalysis(c, deps, req.Text)
	}
}

// AnalyzeQueryHandler is the GET variant of AnalyzeHandler taking ?text=.
func AnalyzeQueryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respondAnalysis(c, deps, c.Query("text"))
	}
}

func respondAnalysis(c *fiber.Ctx, deps *Dependencies, text string) error {
	if text == "" {
		return errBadRequest(c, "text is required")
	}
	analysis, err := deps.Links.Analyze(c.UserContext(), "http", text)
	if err != nil {
		return errFromService(c, err)
	}
	c.Locals("coordinates", len(analysis.Coordinates))
	return sendJSON(c, analysis)
}

// LinksHandler builds map links for an explicit coordinate list.
func LinksHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req linksRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if len(req.Coordinates) > maxLinkCoordinates {
			return errBadRequest(c, fmt.Sprintf("too many coordinates (max %d)", maxLinkCoordinates))
		}
		c.Locals("coordinates", len(req.Coordinates))
		return sendJSON(c, deps.Links.Links(c.UserContext(), req.Coordinates))
	}
}

// DistanceHandler returns the great-circle distance between ?from=lat,lon
// and ?to=lat,lon.
func DistanceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := parseLatLon(c.Query("from"))
		if err != nil {
			return errBadRequest(c, "from: "+err.Error())
		}
		to, err := parseLatLon(c.Query("to"))
		if err != nil {
			return errBadRequest(c, "to: "+err.Error())
		}

		meters, display := deps.Links.Distance(c.UserContext(), from, to)
		return sendJSON(c, DistanceResponse{From: from, To: to, Meters: meters, Display: display})
	}
}

// ListSamplesHandler returns the built-in sample texts.
func ListSamplesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		samples, err := deps.Samples.List(c.UserContext())
		if err != nil {
			return errFromService(c, err)
		}

		page, pg := paginate(c, samples, 20, 100)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetSampleHandler returns a single sample by ID.
func GetSampleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sample, err := deps.Samples.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(sample)
	}
}

// SampleAnalysisHandler analyses a sample's text.
func SampleAnalysisHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sample, err := deps.Samples.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		return respondAnalysis(c, deps, sample.Text)
	}
}

// parseLatLon parses "lat,lon" in decimal degrees. As with extraction, no
// range check is applied.
func parseLatLon(s string) (domain.Coordinate, error) {
	if s == "" {
		return domain.Coordinate{}, fmt.Errorf("expected lat,lon")
	}
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || math.IsInf(lat, 0) || math.IsNaN(lat) {
		return domain.Coordinate{}, fmt.Errorf("invalid latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || math.IsInf(lon, 0) || math.IsNaN(lon) {
		return domain.Coordinate{}, fmt.Errorf("invalid longitude %q", lonStr)
	}
	return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
}
