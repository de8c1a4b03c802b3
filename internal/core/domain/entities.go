package domain

import (
	"time"
)

// Analysis is everything derived from one input text.
type Analysis struct {
	Coordinates []Coordinate `json:"coordinates" yaml:"coordinates"`
	Legs        []Leg        `json:"legs" yaml:"legs"`
	TotalMeters float64      `json:"total_meters" yaml:"total_meters"`
	Links       Links        `json:"links" yaml:"links"`
}

// Kind classifies an analysis by how many points it found.
func (a *Analysis) Kind() string {
	switch len(a.Coordinates) {
	case 0:
		return "empty"
	case 1:
		return "single"
	default:
		return "route"
	}
}

// Sample is a canned input text offered to users who want to try the extractor.
type Sample struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// ExtractionEvent is published after a successful, non-empty extraction.
type ExtractionEvent struct {
	ID          string    `json:"id"`
	Count       int       `json:"count"`
	TotalMeters float64   `json:"total_meters"`
	Links       Links     `json:"links"`
	Source      string    `json:"source"` // http, graphql, ws
	At          time.Time `json:"at"`
}
