// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for /metrics and /healthz.
	Addr string `koanf:"addr"`

	// BootstrapN sets the number of bootstrap draws used for the
	// advance-or-hold comparison.
	BootstrapN int `koanf:"bootstrap_n"`

	// ReportBootstrapN sets the number of draws averaged into the
	// reported score.
	ReportBootstrapN int `koanf:"report_bootstrap_n"`

	// BayesThreshold is the posterior-odds cutoff a submission must clear
	// to replace the current best.
	BayesThreshold float64 `koanf:"bayes_threshold"`

	// Metric names the score function used for a round, e.g. "pearson".
	Metric string `koanf:"metric"`

	// SubmissionQueueSize bounds the in-memory submission queue.
	SubmissionQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		BootstrapN:          10_000,
		ReportBootstrapN:    10,
		BayesThreshold:      3,
		Metric:              "pearson",
		SubmissionQueueSize: 10_000,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          100_000,
	}
	return c
}
