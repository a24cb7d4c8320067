package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newThresholdsCmd(configFile *string) *cobra.Command {
	var source string
	var paletteSpec string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Print the colour buckets of the legend",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(*configFile, source, paletteSpec)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ds, err := loadDataset(ctx, cfg, newLogger(cfg))
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			legend, err := buildLegend(ds, cfg)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			if jsonOutput {
				_ = printJSON(os.Stdout, legend)
				return
			}
			printLegend(os.Stdout, legend)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Dataset URL or file (default from config)")
	cmd.Flags().StringVar(&paletteSpec, "palette", "", "Palette name or comma separated hex colours")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func printLegend(out io.Writer, legend *LegendResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "Bucket\tColor\tLower (℃)\tUpper (℃)")
	_, _ = fmt.Fprintln(w, "------\t-----\t---------\t---------")
	for _, b := range legend.Buckets {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\n", b.Index, b.Hex, b.Lower, b.Upper)
	}
	_ = w.Flush()
}
