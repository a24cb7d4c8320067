package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
	"github.com/egandro/global-temperature-heatmap/pkg/palette"
)

const (
	// Logging defaults
	ConstantLogDir      = "/var/log"
	ConstantLogFilename = "global-temperature-heatmap.log"
	ConstantLogFile     = ConstantLogDir + "/" + ConstantLogFilename

	ConstantConfigFilename = "/etc/default/global-temperature-heatmap"

	// DefaultSourceURL is the public monthly land-surface temperature document.
	DefaultSourceURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

	DefaultFetchTimeout    = 30 // in seconds
	DefaultBaseTemperature = dataset.DefaultBaseTemperature
	DefaultPalette         = palette.DefaultName

	// Layout defaults. Width and Height are the size of the cell grid, the
	// document itself is larger to leave room for axes and the legend.
	DefaultWidth       = 1300
	DefaultHeight      = 500
	DefaultLegendWidth = 400
	DefaultOutputFile  = "heatmap.svg"

	// Service defaults
	DefaultServicePort         = 8246
	DefaultServiceHost         = "127.0.0.1"
	DefaultInsecureAllowRemote = false
	DefaultCacheTTL            = 3600 // in seconds

	// logger
	DefaultLogLevel = "info"
)

type Config struct {
	SourceURL           string
	FetchTimeout        int // in seconds
	BaseTemperature     float64
	Palette             string
	PaletteColors       string
	Width               int
	Height              int
	LegendWidth         int
	OutputFile          string
	ServiceHost         string
	ServicePort         int
	InsecureAllowRemote bool
	CacheTTL            int // in seconds
	LogLevel            string
	LogFile             string
}

// Load reads the dotenv file (if present) and the GTH_* environment.
// The process environment wins over the file.
func Load(filename string) *Config {
	if filename == "" {
		filename = ConstantConfigFilename
	}
	_ = godotenv.Load(filename)

	return &Config{
		SourceURL:           getEnv("GTH_SOURCE_URL", DefaultSourceURL),
		FetchTimeout:        getEnvInt("GTH_FETCH_TIMEOUT", DefaultFetchTimeout),
		BaseTemperature:     getEnvFloat("GTH_BASE_TEMPERATURE", DefaultBaseTemperature),
		Palette:             getEnv("GTH_PALETTE", DefaultPalette),
		PaletteColors:       getEnv("GTH_PALETTE_COLORS", ""),
		Width:               getEnvInt("GTH_WIDTH", DefaultWidth),
		Height:              getEnvInt("GTH_HEIGHT", DefaultHeight),
		LegendWidth:         getEnvInt("GTH_LEGEND_WIDTH", DefaultLegendWidth),
		OutputFile:          getEnv("GTH_OUTPUT", DefaultOutputFile),
		ServiceHost:         getEnv("GTH_HOST", DefaultServiceHost),
		ServicePort:         getEnvInt("GTH_PORT", DefaultServicePort),
		InsecureAllowRemote: getEnvBool("GTH_INSECURE_ALLOW_REMOTE", DefaultInsecureAllowRemote),
		CacheTTL:            getEnvInt("GTH_CACHE_TTL", DefaultCacheTTL),
		LogLevel:            getEnv("GTH_LOG_LEVEL", DefaultLogLevel),
		LogFile:             getEnv("GTH_LOG_FILE", ConstantLogFile),
	}
}

// ResolvePalette returns the configured palette. An explicit colour list
// takes precedence over the palette name.
func (c *Config) ResolvePalette() (palette.Palette, error) {
	if strings.TrimSpace(c.PaletteColors) != "" {
		return palette.ParseList(c.PaletteColors)
	}
	p, ok := palette.Named(c.Palette)
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (available: %s, append _r to reverse)", c.Palette, strings.Join(palette.Names(), ", "))
	}
	return p, nil
}

// FetchTimeoutDuration returns FetchTimeout as a time.Duration.
func (c *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Validate checks the settings shared by the CLI and the service.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("source URL must not be empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive (got %dx%d)", c.Width, c.Height)
	}
	if c.LegendWidth <= 0 {
		return fmt.Errorf("legend width must be positive (got %d)", c.LegendWidth)
	}
	if math.IsNaN(c.BaseTemperature) || math.IsInf(c.BaseTemperature, 0) {
		return fmt.Errorf("base temperature must be a finite number")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive (got %d)", c.FetchTimeout)
	}
	if _, err := c.ResolvePalette(); err != nil {
		return err
	}
	return nil
}

// ValidateService additionally checks the bind address.
func (c *Config) ValidateService() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative (got %d)", c.CacheTTL)
	}
	if !isLocalhostAddr(c.ServiceHost) {
		if !c.InsecureAllowRemote {
			return fmt.Errorf(`binding to non-localhost address %q exposes the service to the network.

The service has no authentication and will fetch the upstream dataset on
behalf of any client.

If you understand the risks and want to proceed anyway, use:
    --insecure-allow-remote
    or set GTH_INSECURE_ALLOW_REMOTE=true`, c.ServiceHost)
		}
		fmt.Fprintf(os.Stderr, "WARNING: Binding to %q - the service will be network-accessible!\n", c.ServiceHost)
	}
	return nil
}

func isLocalhostAddr(host string) bool {
	switch host {
	case "127.0.0.1", "localhost", "::1", "":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return fallback
}
