package geospatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/pkg/geospatial"
)

func TestGoogleMapsURL(t *testing.T) {
	tests := []struct {
		name   string
		coords []domain.Coordinate
		want   string
	}{
		{"empty", nil, ""},
		{"single point", []domain.Coordinate{washingtonSquare}, "https://www.google.com/maps/place/40.7308,-73.9973/"},
		{"two points", []domain.Coordinate{washingtonSquare, nyuCampus}, "https://www.google.com/maps/dir/40.7308,-73.9973/40.7295,-73.9965"},
		{
			"three points",
			[]domain.Coordinate{washingtonSquare, nyuCampus, {Latitude: 40.7128, Longitude: -74.006}},
			"https://www.google.com/maps/dir/40.7308,-73.9973/40.7295,-73.9965/40.7128,-74.006",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geospatial.GoogleMapsURL(tt.coords))
		})
	}
}

func TestOSRMURL(t *testing.T) {
	tests := []struct {
		name   string
		coords []domain.Coordinate
		want   string
	}{
		{"empty", []domain.Coordinate{}, ""},
		{"single point", []domain.Coordinate{washingtonSquare}, "https://www.openstreetmap.org/search?query=40.7308%2C+-73.9973"},
		{"two points", []domain.Coordinate{washingtonSquare, nyuCampus}, "https://map.project-osrm.org/?loc=40.7308%2C-73.9973&loc=40.7295%2C-73.9965"},
		{
			"three points",
			[]domain.Coordinate{washingtonSquare, nyuCampus, {Latitude: 40.7128, Longitude: -74.006}},
			"https://map.project-osrm.org/?loc=40.7308%2C-73.9973&loc=40.7295%2C-73.9965&loc=40.7128%2C-74.006",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geospatial.OSRMURL(tt.coords))
		})
	}
}

func TestURLs_NumberFormatting(t *testing.T) {
	coords := []domain.Coordinate{
		{Latitude: 1e-7, Longitude: 120},
		{Latitude: math.Copysign(0, -1), Longitude: -0.5},
	}
	assert.Equal(t, "https://www.google.com/maps/dir/0.0000001,120/0,-0.5", geospatial.GoogleMapsURL(coords))
	assert.Equal(t, "https://map.project-osrm.org/?loc=0.0000001%2C120&loc=0%2C-0.5", geospatial.OSRMURL(coords))
}

func TestURLs_InfinityFormatting(t *testing.T) {
	coords := []domain.Coordinate{
		{Latitude: math.Inf(1), Longitude: 2},
		{Latitude: 3, Longitude: math.Inf(-1)},
	}
	assert.Equal(t, "https://www.google.com/maps/dir/Infinity,2/3,-Infinity", geospatial.GoogleMapsURL(coords))
	assert.Equal(t, "https://map.project-osrm.org/?loc=Infinity%2C2&loc=3%2C-Infinity", geospatial.OSRMURL(coords))
}

func TestExtractToLinks_EndToEnd(t *testing.T) {
	text := "latitude: 40.7308 and longitude: -73.9973 ... latitude: 40.7295, longitude: -73.9965"
	coords := geospatial.Extract(text)
	assert.Equal(t, []domain.Coordinate{washingtonSquare, nyuCampus}, coords)

	links := geospatial.BuildLinks(coords)
	assert.Equal(t, "https://www.google.com/maps/dir/40.7308,-73.9973/40.7295,-73.9965", links.Google)
	assert.Equal(t, "https://map.project-osrm.org/?loc=40.7308%2C-73.9973&loc=40.7295%2C-73.9965", links.OSRM)
}
