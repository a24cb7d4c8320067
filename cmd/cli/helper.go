package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/egandro/global-temperature-heatmap/pkg/config"
	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
	"github.com/egandro/global-temperature-heatmap/pkg/fetcher"
	"github.com/egandro/global-temperature-heatmap/pkg/logger"
	"github.com/egandro/global-temperature-heatmap/pkg/scale"
	"github.com/egandro/global-temperature-heatmap/pkg/svg"
)

// LegendResponse is the legend as returned by the service and printed by the CLI.
type LegendResponse struct {
	Thresholds []float64      `json:"thresholds"`
	Buckets    []scale.Bucket `json:"buckets"`
}

// ErrorResponse is the JSON error body of the service.
type ErrorResponse struct {
	Error string `json:"error"`
}

// loadConfig reads the config file and applies the command line overrides.
// A palette containing '#' is taken as a colour list, anything else as a name.
func loadConfig(configFile, source, paletteSpec string) (*config.Config, error) {
	cfg := config.Load(configFile)
	if source != "" {
		cfg.SourceURL = source
	}
	if paletteSpec != "" {
		if strings.Contains(paletteSpec, "#") {
			cfg.PaletteColors = paletteSpec
		} else {
			cfg.Palette = paletteSpec
			cfg.PaletteColors = ""
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	return slog.New(logger.New(os.Stderr, level))
}

func renderOptions(cfg *config.Config) (svg.Options, error) {
	p, err := cfg.ResolvePalette()
	if err != nil {
		return svg.Options{}, err
	}
	return svg.Options{
		Palette:         p,
		BaseTemperature: cfg.BaseTemperature,
		Width:           cfg.Width,
		Height:          cfg.Height,
		LegendWidth:     cfg.LegendWidth,
	}, nil
}

func loadDataset(ctx context.Context, cfg *config.Config, log *slog.Logger) (*dataset.Dataset, error) {
	return fetcher.New(cfg.SourceURL, cfg.FetchTimeoutDuration(), log).Fetch(ctx)
}

// buildLegend computes the threshold scale of ds without laying out the map.
func buildLegend(ds *dataset.Dataset, cfg *config.Config) (*LegendResponse, error) {
	p, err := cfg.ResolvePalette()
	if err != nil {
		return nil, err
	}
	lo, hi, err := ds.Extent(cfg.BaseTemperature)
	if err != nil {
		return nil, err
	}
	th, err := scale.NewThreshold(lo, hi, p)
	if err != nil {
		return nil, err
	}
	return &LegendResponse{Thresholds: th.Boundaries(), Buckets: th.Buckets()}, nil
}

// writeHeatmap writes the SVG, or the HTML page, to path.
func writeHeatmap(h *svg.Heatmap, path string, page bool) error {
	var doc string
	var err error
	if page {
		doc, err = h.GeneratePage()
	} else {
		doc, err = h.Generate()
	}
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".heatmap-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.WriteString(tmp, doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	// #nosec G302 -- the rendered map is meant to be world readable
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func resolveServiceURL(flagURL, configFile string) string {
	if flagURL != "" {
		return strings.TrimRight(flagURL, "/")
	}
	cfg := config.Load(configFile)
	host := cfg.ServiceHost
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.ServicePort))
}

func getJSON(baseURL, path string, out interface{}) error {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("service is not reachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("service returned %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("service returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
