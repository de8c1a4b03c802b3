package geospatial

import (
	"math"
	"strconv"
	"strings"

	"github.com/samirrijal/maplink/internal/core/domain"
)

const (
	googlePlaceBase = "https://www.google.com/maps/place/"
	googleDirBase   = "https://www.google.com/maps/dir/"
	osmSearchBase   = "https://www.openstreetmap.org/search?query="
	osrmBase        = "https://map.project-osrm.org/?"
)

// GoogleMapsURL returns a place link for a single coordinate and a
// directions link through every coordinate, in order, for two or more.
func GoogleMapsURL(coords []domain.Coordinate) string {
	switch len(coords) {
	case 0:
		return ""
	case 1:
		c := coords[0]
		return googlePlaceBase + formatDegrees(c.Latitude) + "," + formatDegrees(c.Longitude) + "/"
	}

	segments := make([]string, len(coords))
	for i, c := range coords {
		segments[i] = formatDegrees(c.Latitude) + "," + formatDegrees(c.Longitude)
	}
	return googleDirBase + strings.Join(segments, "/")
}

// OSRMURL returns an OpenStreetMap search link for a single coordinate and
// an OSRM demo route for two or more.
func OSRMURL(coords []domain.Coordinate) string {
	switch len(coords) {
	case 0:
		return ""
	case 1:
		c := coords[0]
		return osmSearchBase + formatDegrees(c.Latitude) + "%2C+" + formatDegrees(c.Longitude)
	}

	params := make([]string, len(coords))
	for i, c := range coords {
		params[i] = "loc=" + formatDegrees(c.Latitude) + "%2C" + formatDegrees(c.Longitude)
	}
	return osrmBase + strings.Join(params, "&")
}

// BuildLinks generates both map URLs for coords.
func BuildLinks(coords []domain.Coordinate) domain.Links {
	return domain.Links{
		Google: GoogleMapsURL(coords),
		OSRM:   OSRMURL(coords),
	}
}

// formatDegrees writes v in its shortest round-trip decimal form without an
// exponent, so 40.7308 stays "40.7308" and -74.006 stays "-74.006".
// Values past float64 range print as "Infinity" and "-Infinity".
func formatDegrees(v float64) string {
	switch {
	case v == 0:
		return "0" // also covers negative zero
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
