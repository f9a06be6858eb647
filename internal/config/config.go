// Package config defines service configuration structures and loading.
//
// Conventions follow the rest of the repo: defaults come from New, Load
// layers an optional YAML file and environment variables on top, and
// callers fail fast on invalid values.
package config

import "runtime"

// Config contains process configuration.
//
// The admission thresholds default to the constitutional values the
// pipeline was specified with; deployments may override them, the
// formulas themselves are fixed in code.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// NoiseFloor is the minimum per-record noise score admitted.
	NoiseFloor float64 `koanf:"noise_floor"`

	// SignalFloor is the minimum priority an aggregated signal needs.
	SignalFloor float64 `koanf:"signal_floor"`

	// ProposalFloor is the minimum priority a candidate signal needs to
	// become a proposal.
	ProposalFloor float64 `koanf:"proposal_floor"`

	// SelectionFraction is the top fraction of ranked signals considered.
	SelectionFraction float64 `koanf:"selection_fraction"`

	// CoolingOffHours is the mandatory wait between proposal creation
	// and approval.
	CoolingOffHours int `koanf:"cooling_off_hours"`

	// ScarcityCap is the maximum fraction of modules in the scarce tier.
	ScarcityCap float64 `koanf:"scarcity_cap"`

	// DupeWindowHours bounds the near-duplicate detection window.
	DupeWindowHours int `koanf:"dupe_window_hours"`

	// DupeSimilarity is the Jaccard similarity above which a submission
	// counts as a duplicate.
	DupeSimilarity float64 `koanf:"dupe_similarity"`

	// QueueSize bounds the in-memory execution queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of concurrent batch workers.
	WorkerCount int `koanf:"worker_count"`

	// ModuleRouting maps intake categories to owning module ids.
	ModuleRouting map[string]string `koanf:"module_routing"`
}

// New creates a Config with the default admission policy.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		NoiseFloor:        30,
		SignalFloor:       50,
		ProposalFloor:     70,
		SelectionFraction: 0.10,
		CoolingOffHours:   24,
		ScarcityCap:       0.10,
		DupeWindowHours:   24,
		DupeSimilarity:    0.8,
		QueueSize:         10_000,
		WorkerCount:       runtime.NumCPU(),
		ModuleRouting: map[string]string{
			"bug": "core",
		},
	}
}
