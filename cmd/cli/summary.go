package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
)

func newSummaryCmd(configFile *string) *cobra.Command {
	var source string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a summary of the dataset",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(*configFile, source, "")
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

			summary, err := ds.Summarize(cfg.BaseTemperature)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			if jsonOutput {
				_ = printJSON(os.Stdout, summary)
				return
			}
			printSummary(os.Stdout, summary)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Dataset URL or file (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func printSummary(out io.Writer, s dataset.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintf(w, "Records:\t%d\n", s.Records)
	_, _ = fmt.Fprintf(w, "Years:\t%d - %d\n", s.FirstYear, s.LastYear)
	_, _ = fmt.Fprintf(w, "Base Temperature:\t%.2f ℃\n", s.BaseTemperature)
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Metric\tTemperature (℃)\tVariance")
	_, _ = fmt.Fprintln(w, "------\t---------------\t--------")
	_, _ = fmt.Fprintf(w, "Min\t%.2f\t%.2f\n", s.MinTemperature, s.MinVariance)
	_, _ = fmt.Fprintf(w, "Max\t%.2f\t%.2f\n", s.MaxTemperature, s.MaxVariance)
	_ = w.Flush()
}
