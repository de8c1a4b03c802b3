// Package command implements the maplink command line tool.
//
//	maplink notes.txt                  # analyse a file
//	cat notes.txt | maplink            # analyse stdin
//	maplink --sample greenwich-village # analyse a built-in sample
//	maplink notes.txt -o json --copy google
//	maplink samples                    # list built-in samples
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/samirrijal/maplink/internal/adapters/samples"
	"github.com/samirrijal/maplink/internal/core/domain"
	"github.com/samirrijal/maplink/internal/core/usecases"
	"github.com/samirrijal/maplink/internal/pkg/geospatial"
	"github.com/samirrijal/maplink/internal/pkg/logging"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type options struct {
	output  string
	copy    string
	sample  string
	verbose bool
}

// NewRootCmd builds the maplink command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "maplink [file]",
		Short: "Turn latitude/longitude notes into map links",
		Long: `maplink scans free-form text for "latitude: N" and "longitude: N"
markers, pairs them in order of appearance and prints the points, the
distance of every leg and ready-to-open Google Maps and OSRM links.

Text is read from the named file, or from stdin when no file (or "-")
is given. When the number of latitude and longitude markers differs,
nothing is extracted.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logging.Setup(cmd.ErrOrStderr(), level, "text")
			_, err := parseFormat(opts.output)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")
	cmd.Flags().StringVar(&opts.copy, "copy", "", "copy a link to the clipboard: google or osrm")
	cmd.Flags().StringVarP(&opts.sample, "sample", "s", "", "analyse a built-in sample instead of a file")

	cmd.AddCommand(newSamplesCmd(opts))
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "maplink:", err)
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, opts *options, args []string) error {
	format, err := parseFormat(opts.output)
	if err != nil {
		return err
	}
	target, err := parseCopyTarget(opts.copy)
	if err != nil {
		return err
	}

	r, source, closeFn, err := openInput(cmd, opts, args)
	if err != nil {
		return err
	}
	defer closeFn()

	coords, err := geospatial.ExtractReader(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	analysis := usecases.AnalysisOf(coords)
	slog.Debug("analysed input", "source", source, "coordinates", len(coords), "kind", analysis.Kind())

	if err := Render(cmd.OutOrStdout(), analysis, format); err != nil {
		return err
	}

	if target != "" {
		link := pickLink(analysis.Links, target)
		if link == "" {
			return fmt.Errorf("no %s link to copy: no coordinates found", target)
		}
		if err := writeClipboard(link); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "copied %s link to clipboard\n", target)
	}
	return nil
}

// openInput resolves where the text comes from: a sample, a file or stdin.
func openInput(cmd *cobra.Command, opts *options, args []string) (io.Reader, string, func(), error) {
	noop := func() {}

	if opts.sample != "" {
		if len(args) > 0 {
			return nil, "", noop, fmt.Errorf("use either a file or --sample, not both")
		}
		svc, err := sampleService()
		if err != nil {
			return nil, "", noop, err
		}
		s, err := svc.Get(cmd.Context(), opts.sample)
		if err != nil {
			return nil, "", noop, err
		}
		return strings.NewReader(s.Text), "sample " + s.ID, noop, nil
	}

	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), "stdin", noop, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", noop, err
	}
	return f, args[0], func() { _ = f.Close() }, nil
}

func sampleService() (*usecases.SampleService, error) {
	repo, err := samples.NewBuiltinRepo()
	if err != nil {
		return nil, err
	}
	return usecases.NewSampleService(repo), nil
}

func parseCopyTarget(s string) (string, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "google":
		return "google", nil
	case "osrm", "osm":
		return "osrm", nil
	default:
		return "", fmt.Errorf("--copy must be google or osrm, got %q", s)
	}
}

func pickLink(l domain.Links, target string) string {
	if target == "google" {
		return l.Google
	}
	return l.OSRM
}
