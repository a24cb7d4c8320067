package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/egandro/global-temperature-heatmap/pkg/config"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "global-temperature-heatmap-cli",
		Short: "CLI tool for the global temperature heat map",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.ConstantConfigFilename, "Path to configuration file")

	rootCmd.AddCommand(newRenderCmd(&configFile))
	rootCmd.AddCommand(newThresholdsCmd(&configFile))
	rootCmd.AddCommand(newSummaryCmd(&configFile))
	rootCmd.AddCommand(newStatusCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
