package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/egandro/global-temperature-heatmap/pkg/config"
	"github.com/egandro/global-temperature-heatmap/pkg/fetcher"
	"github.com/egandro/global-temperature-heatmap/pkg/logger"
	"github.com/egandro/global-temperature-heatmap/pkg/service"
	"github.com/egandro/global-temperature-heatmap/pkg/svg"
)

// overrides holds the command line flags that take precedence over the config file.
type overrides struct {
	host                string
	port                int
	logFile             string
	logLevel            string
	source              string
	insecureAllowRemote bool
}

func applyOverrides(cfg *config.Config, o overrides) {
	if o.host != "" {
		cfg.ServiceHost = o.host
	}
	if o.port != 0 {
		cfg.ServicePort = o.port
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.source != "" {
		cfg.SourceURL = o.source
	}
	if o.insecureAllowRemote {
		cfg.InsecureAllowRemote = true
	}
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

func main() {
	var o overrides
	configFile := flag.String("config", config.ConstantConfigFilename, "Path to config file")
	flag.StringVar(&o.host, "host", "", "HTTP service host")
	flag.IntVar(&o.port, "port", 0, "HTTP service port")
	flag.StringVar(&o.logFile, "log-file", "", "Path to log file")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, notice, warn, error)")
	flag.StringVar(&o.source, "source", "", "Dataset URL or file")
	flag.BoolVar(&o.insecureAllowRemote, "insecure-allow-remote", false, "Allow binding to a non-localhost address")
	toStdout := flag.Bool("stdout", false, "Log to stdout")

	flag.Parse()

	cfg := config.Load(*configFile)
	applyOverrides(cfg, o)

	if err := cfg.ValidateService(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	var logF *logFile
	var output io.Writer = os.Stdout

	if !*toStdout {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v. Logging to stdout.\n", cfg.LogFile, err)
		} else {
			logF = f
			output = f
		}
	}

	// Configure slog level
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, defaulting to INFO\n", err)
	}

	slog.SetDefault(slog.New(logger.New(output, level)))

	opts, err := renderOptions(cfg)
	if err != nil {
		slog.Error("Failed to resolve palette", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	src := fetcher.New(cfg.SourceURL, cfg.FetchTimeoutDuration(), slog.Default())
	s := service.New(src, service.Options{
		Host:     cfg.ServiceHost,
		Port:     cfg.ServicePort,
		Render:   opts,
		CacheTTL: cfg.CacheTTLDuration(),
		Logger:   slog.Default(),
		Registry: registry,
	})

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("Service failed", "error", err)
			os.Exit(1)
		}
	}()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	for sig := range sigChan {
		switch sig {
		case syscall.SIGHUP:
			if logF != nil {
				if err := logF.Reopen(); err != nil {
					slog.Error("Failed to rotate log", "error", err)
				} else {
					slog.Log(context.Background(), logger.LevelNotice, "Log file rotated")
				}
			}
			s.Invalidate()
		case syscall.SIGINT, syscall.SIGTERM:
			slog.Info("Shutting down service...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Shutdown(ctx); err != nil {
				slog.Error("Shutdown error", "error", err)
			}
			cancel()
			if logF != nil {
				_ = logF.Close()
			}
			return
		}
	}
}
