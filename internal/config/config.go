// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Fallback policy names for the recommendation orchestrator.
const (
	FallbackPermissive = "permissive"
	FallbackStrict     = "strict"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CandidatesPath and OpportunitiesPath point at the catalog CSV files.
	CandidatesPath    string `koanf:"candidates_path"`
	OpportunitiesPath string `koanf:"opportunities_path"`

	// TopKDefault is used when a request omits top_k.
	TopKDefault int `koanf:"top_k_default"`

	// MaxTopK caps the per-request top_k.
	MaxTopK int `koanf:"max_top_k"`

	// DomainBoost multiplies scores of opportunities whose domain exactly
	// matches the candidate's preference.
	DomainBoost float64 `koanf:"domain_boost"`

	// DomainPenalty multiplies scores when both domains are resolved and differ.
	DomainPenalty float64 `koanf:"domain_penalty"`

	// Regularization dampens all reported scores by (1 - value).
	Regularization float64 `koanf:"regularization"`

	// MaxFeatures caps the TF-IDF vocabulary size.
	MaxFeatures int `koanf:"max_features"`

	// MinDocFreq prunes terms appearing in fewer documents.
	MinDocFreq int `koanf:"min_doc_freq"`

	// MaxDocFreqRatio prunes terms appearing in more than this fraction of documents.
	MaxDocFreqRatio float64 `koanf:"max_doc_freq_ratio"`

	// FallbackPolicy selects "permissive" (slice of the catalog when all
	// filters empty out) or "strict" (empty result stays empty).
	FallbackPolicy string `koanf:"fallback_policy"`

	// FallbackSliceSize bounds the permissive fallback slice.
	FallbackSliceSize int `koanf:"fallback_slice_size"`

	// EnrollmentRule enables the enrollment/type compatibility filter variant.
	EnrollmentRule bool `koanf:"enrollment_rule"`

	// BatchWorkers sets the number of workers for batch recommendations.
	BatchWorkers int `koanf:"batch_workers"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		CandidatesPath:    "dataset/candidates.csv",
		OpportunitiesPath: "dataset/opportunities.csv",
		TopKDefault:       3,
		MaxTopK:           50,
		DomainBoost:       2.0,
		DomainPenalty:     0.3,
		Regularization:    0.05,
		MaxFeatures:       100,
		MinDocFreq:        2,
		MaxDocFreqRatio:   0.8,
		FallbackPolicy:    FallbackPermissive,
		FallbackSliceSize: 20,
		EnrollmentRule:    false,
		BatchWorkers:      runtime.NumCPU(),
	}
}
