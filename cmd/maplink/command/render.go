package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/pkg/geospatial"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	colorAccent = lipgloss.Color("#bd93f9")
	colorMuted  = lipgloss.Color("#6272a4")
	colorLink   = lipgloss.Color("#8be9fd")
	colorWarn   = lipgloss.Color("#ffb86c")
)

func parseFormat(s string) (string, error) {
	switch strings.ToLower(s) {
	case formatText, "":
		return formatText, nil
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("--output must be text, json or yaml, got %q", s)
	}
}

// Render writes an analysis to w in the given format. The text form is
// styled only when w is a terminal.
func Render(w io.Writer, a *domain.Analysis, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, a)
	case formatYAML:
		return writeYAML(w, a)
	}

	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(colorAccent)
	label := r.NewStyle().Foreground(colorMuted).Width(13)
	link := r.NewStyle().Foreground(colorLink)
	warn := r.NewStyle().Foreground(colorWarn)

	if len(a.Coordinates) == 0 {
		_, err := fmt.Fprintln(w, warn.Render(
			"No coordinates found. Every \"latitude:\" marker needs a matching \"longitude:\" marker."))
		return err
	}

	var b strings.Builder
	noun := "coordinates"
	if len(a.Coordinates) == 1 {
		noun = "coordinate"
	}
	b.WriteString(heading.Render(fmt.Sprintf("%d %s", len(a.Coordinates), noun)))
	if len(a.Legs) > 0 {
		b.WriteString(fmt.Sprintf(" · %s total", geospatial.FormatMeters(a.TotalMeters)))
	}
	b.WriteString("\n")

	// The distance column shows the leg ending at each row.
	rows := make([][]string, 0, len(a.Coordinates))
	for i, c := range a.Coordinates {
		dist := ""
		if i > 0 && i-1 < len(a.Legs) {
			dist = a.Legs[i-1].Display
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(c.Latitude, 'f', -1, 64),
			strconv.FormatFloat(c.Longitude, 'f', -1, 64),
			dist,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(colorMuted)).
		Headers("#", "Latitude", "Longitude", "Distance").
		Rows(rows...)
	b.WriteString(t.String())
	b.WriteString("\n")

	b.WriteString(label.Render("Google Maps") + link.Render(a.Links.Google) + "\n")
	b.WriteString(label.Render("OSRM") + link.Render(a.Links.OSRM) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSamples writes the sample listing to w.
func RenderSamples(w io.Writer, list []domain.Sample, format string) error {
	rows := sampleRows(list)
	switch format {
	case formatJSON:
		return writeJSON(w, rows)
	case formatYAML:
		return writeYAML(w, rows)
	}

	r := lipgloss.NewRenderer(w)
	data := make([][]string, 0, len(rows))
	for _, s := range rows {
		data = append(data, []string{s.ID, s.Title, strconv.Itoa(s.Coordinates)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(colorMuted)).
		Headers("ID", "Title", "Points").
		Rows(data...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
