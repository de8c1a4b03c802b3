package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/pkg/geospatial"
)

func newSamplesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample texts",
		Long: `List the built-in sample texts together with the number of
coordinates each one yields. Analyse one with "maplink --sample <id>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(opts.output)
			if err != nil {
				return err
			}
			svc, err := sampleService()
			if err != nil {
				return err
			}
			list, err := svc.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list samples: %w", err)
			}
			return RenderSamples(cmd.OutOrStdout(), list, format)
		},
	}
}

// sampleRow is the listing form of a sample.
type sampleRow struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Coordinates int    `json:"coordinates" yaml:"coordinates"`
}

func sampleRows(list []domain.Sample) []sampleRow {
	rows := make([]sampleRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, sampleRow{
			ID:          s.ID,
			Title:       s.Title,
			Coordinates: len(geospatial.Extract(s.Text)),
		})
	}
	return rows
}
