package geospatial

import (
	"fmt"
	"math"

	"github.com/samirrijal/maplink/internal/core/domain"
)

const earthRadiusMeters = 6371000.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRad(lat1)
	phi2 := toRad(lat2)
	dLat := phi2 - phi1
	dLon := toRad(lon2) - toRad(lon1)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h just past 1 for near-antipodal points.
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// Distance returns the great-circle distance in meters between a and b.
func Distance(a, b domain.Coordinate) float64 {
	return Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Legs returns the distances between each pair of consecutive coordinates.
func Legs(coords []domain.Coordinate) []domain.Leg {
	if len(coords) < 2 {
		return []domain.Leg{}
	}
	legs := make([]domain.Leg, 0, len(coords)-1)
	for i := 1; i < len(coords); i++ {
		m := Distance(coords[i-1], coords[i])
		legs = append(legs, domain.Leg{
			From:    i - 1,
			To:      i,
			Meters:  m,
			Display: FormatMeters(m),
		})
	}
	return legs
}

// PathLength sums the leg distances of coords in meters.
func PathLength(coords []domain.Coordinate) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += Distance(coords[i-1], coords[i])
	}
	return total
}

// FormatMeters renders a distance for display: anything under one meter
// is "0m", everything else is rounded to the nearest whole meter.
func FormatMeters(m float64) string {
	if !(m >= 1) {
		return "0m"
	}
	return fmt.Sprintf("%.0fm", math.Round(m))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
