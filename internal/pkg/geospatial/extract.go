package geospatial

import (
	"io"
	"regexp"
	"strconv"

	"github.com/samirrijal/maplink/internal/core/domain"
)

// markerSpace is any Unicode whitespace, not just the ASCII set \s covers.
// Text pasted from web pages often carries no-break spaces after the colon.
const markerSpace = `[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]*`

var (
	latitudeMarker  = regexp.MustCompile(`(?i)latitude:` + markerSpace + `([+-]?\d+(?:\.\d+)?)`)
	longitudeMarker = regexp.MustCompile(`(?i)longitude:` + markerSpace + `([+-]?\d+(?:\.\d+)?)`)
)

// Extract finds every "latitude: N" and "longitude: N" marker in text and
// pairs them by order of appearance. Latitudes and longitudes are scanned
// independently; when their counts differ nothing is paired and the result
// is empty. The returned slice is never nil.
func Extract(text string) []domain.Coordinate {
	if text == "" {
		return []domain.Coordinate{}
	}

	lats := scanMarker(latitudeMarker, text)
	lons := scanMarker(longitudeMarker, text)
	if len(lats) != len(lons) {
		return []domain.Coordinate{}
	}

	coords := make([]domain.Coordinate, len(lats))
	for i := range lats {
		coords[i] = domain.Coordinate{Latitude: lats[i], Longitude: lons[i]}
	}
	return coords
}

// ExtractReader reads r to the end and extracts coordinates from its content.
// A nil reader yields an empty result.
func ExtractReader(r io.Reader) ([]domain.Coordinate, error) {
	if r == nil {
		return []domain.Coordinate{}, nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Extract(string(b)), nil
}

func scanMarker(re *regexp.Regexp, text string) []float64 {
	matches := re.FindAllStringSubmatch(text, -1)
	values := make([]float64, 0, len(matches))
	for _, m := range matches {
		// The pattern only admits well-formed decimals; an out-of-range
		// literal still yields +-Inf, which is kept to preserve pairing.
		v, _ := strconv.ParseFloat(m[1], 64)
		values = append(values, v)
	}
	return values
}
