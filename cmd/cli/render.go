package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/egandro/global-temperature-heatmap/pkg/config"
	"github.com/egandro/global-temperature-heatmap/pkg/svg"
)

func newRenderCmd(configFile *string) *cobra.Command {
	var output string
	var source string
	var paletteSpec string
	var page bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch the dataset and render the heat map",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(*configFile, source, paletteSpec)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			if output != "" {
				cfg.OutputFile = output
			}
			log := newLogger(cfg)

			var s *spinner.Spinner
			if !quiet && isTerminal(os.Stderr) {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
				s.Suffix = fmt.Sprintf(" Fetching %s...", cfg.SourceURL)
				s.Start()
			}

			h, err := renderHeatmap(cmd.Context(), cfg, log, page)

			if s != nil {
				s.Stop()
			}

			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s (%s)\n", cfg.OutputFile, h.Description())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default from config)")
	cmd.Flags().StringVar(&source, "source", "", "Dataset URL or file (default from config)")
	cmd.Flags().StringVar(&paletteSpec, "palette", "", "Palette name or comma separated hex colours")
	cmd.Flags().BoolVar(&page, "html", false, "Write a standalone HTML page instead of the SVG")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable progress spinner")
	return cmd
}

// renderHeatmap fetches the dataset and writes the map to cfg.OutputFile.
// Nothing is written when fetching or rendering fails.
func renderHeatmap(ctx context.Context, cfg *config.Config, log *slog.Logger, page bool) (*svg.Heatmap, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := renderOptions(cfg)
	if err != nil {
		return nil, err
	}

	ds, err := loadDataset(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	h, err := svg.New(ds, opts)
	if err != nil {
		log.Error("Failed to build heat map", "error", err)
		return nil, err
	}
	if err := writeHeatmap(h, cfg.OutputFile, page); err != nil {
		log.Error("Failed to write heat map", "file", cfg.OutputFile, "error", err)
		return nil, err
	}
	log.Debug("Heat map written", "file", cfg.OutputFile, "records", len(ds.MonthlyVariance))
	return h, nil
}
