package domain

// Coordinate represents a latitude/longitude pair in decimal degrees.
// Values are taken verbatim from the source text; no range check is applied.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Leg is the great-circle distance between two consecutive coordinates
// of an extracted list.
type Leg struct {
	From    int     `json:"from" yaml:"from"` // index into the coordinate list
	To      int     `json:"to" yaml:"to"`
	Meters  float64 `json:"meters" yaml:"meters"`
	Display string  `json:"display" yaml:"display"`
}

// Links holds the generated map-service URLs for one coordinate list.
// Both are empty when the list is empty.
type Links struct {
	Google string `json:"google" yaml:"google"`
	OSRM   string `json:"osrm" yaml:"osrm"`
}
