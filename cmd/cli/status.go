package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newStatusCmd(configFile *string) *cobra.Command {
	var serviceURL string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the status of the service",
		Run: func(cmd *cobra.Command, args []string) {
			target := resolveServiceURL(serviceURL, *configFile)

			var health map[string]string
			if err := getJSON(target, "/api/health", &health); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			if health["status"] != "ok" {
				fmt.Printf("Error: Service is not healthy (status=%s)\n", health["status"])
				os.Exit(1)
			}
			fmt.Printf("Service is running at %s\n", target)
		},
	}
	cmd.PersistentFlags().StringVar(&serviceURL, "url", "", "Base URL of the service (default from config)")
	cmd.AddCommand(newPingCmd(configFile, &serviceURL))
	cmd.AddCommand(newLegendCmd(configFile, &serviceURL))
	return cmd
}

func newPingCmd(configFile, serviceURL *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Ping the service",
		Run: func(cmd *cobra.Command, args []string) {
			target := resolveServiceURL(*serviceURL, *configFile)
			var health map[string]string
			if err := getJSON(target, "/api/health", &health); err != nil {
				fmt.Printf("Error: %v\n", err)
				fmt.Println("Hint: The global-temperature-heatmap-service might not be running.")
				os.Exit(1)
			}

			if jsonOutput {
				_ = printJSON(os.Stdout, health)
				return
			}
			fmt.Println(health["status"])
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newLegendCmd(configFile, serviceURL *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Get the legend of the currently served heat map",
		Run: func(cmd *cobra.Command, args []string) {
			target := resolveServiceURL(*serviceURL, *configFile)
			var legend LegendResponse
			if err := getJSON(target, "/api/legend", &legend); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			if jsonOutput {
				_ = printJSON(os.Stdout, legend)
				return
			}
			printLegend(os.Stdout, &legend)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}
