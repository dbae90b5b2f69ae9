package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	StorePath          string
	CarrierAPIAddress  string
	LabelDir           string
	JWTSecret          string
	TrackPollInterval  time.Duration
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
	MaxShipmentsBatch  int
	CancellationWindow time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultStorePath          = "e_parsel_shipments.json"
	defaultLabelDir           = "labels"
	defaultJWTSecret          = "change-me-in-production"
	defaultTrackPollInterval  = 5 * time.Second
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultMaxShipmentsBatch  = 32
	defaultCancellationWindow = 24 * time.Hour
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		StorePath:          getString(lookup, "STORE_PATH", defaultStorePath),
		CarrierAPIAddress:  getString(lookup, "CARRIER_API_ADDRESS", ""),
		LabelDir:           getString(lookup, "LABEL_DIR", defaultLabelDir),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TrackPollInterval:  getDuration(lookup, "TRACK_POLL_INTERVAL", defaultTrackPollInterval),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxShipmentsBatch:  getInt(lookup, "POLL_BATCH_SIZE", defaultMaxShipmentsBatch),
		CancellationWindow: getDuration(lookup, "CANCELLATION_WINDOW", defaultCancellationWindow),
	}

	fs := flag.NewFlagSet("eparsel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr       = cfg.TrackPollInterval.String()
		shutdownTimeoutStr    = cfg.ShutdownTimeout.String()
		cancellationWindowStr = cfg.CancellationWindow.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (empty selects the file snapshot store)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "Snapshot slot file for the shipment store")
	fs.StringVar(&cfg.CarrierAPIAddress, "r", cfg.CarrierAPIAddress, "Carrier tracking API base URL")
	fs.StringVar(&cfg.LabelDir, "label-dir", cfg.LabelDir, "Directory for generated shipping labels")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent tracking workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between carrier tracking polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxShipmentsBatch, "poll-batch", cfg.MaxShipmentsBatch, "Maximum shipments per polling batch")
	fs.StringVar(&cancellationWindowStr, "cancellation-window", cancellationWindowStr, "Window after booking during which cancellation is allowed")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TrackPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.CancellationWindow, err = time.ParseDuration(cancellationWindowStr); err != nil {
		return nil, fmt.Errorf("invalid cancellation window: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxShipmentsBatch <= 0 {
		cfg.MaxShipmentsBatch = defaultMaxShipmentsBatch
	}

	if cfg.TrackPollInterval <= 0 {
		cfg.TrackPollInterval = defaultTrackPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.CancellationWindow <= 0 {
		cfg.CancellationWindow = defaultCancellationWindow
	}

	if cfg.StorePath == "" && cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("either a database URI or a store path must be provided")
	}

	if cfg.CarrierAPIAddress == "" {
		return nil, fmt.Errorf("carrier API address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
