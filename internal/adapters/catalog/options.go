package catalog

import (
	"internmatch/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithCandidateMapping replaces the candidate header mapping.
func WithCandidateMapping(m FieldMapping) Option {
	return func(l *Loader) {
		if m != nil {
			l.candidateMapping = m
		}
	}
}

// WithOpportunityMapping replaces the opportunity header mapping.
func WithOpportunityMapping(m FieldMapping) Option {
	return func(l *Loader) {
		if m != nil {
			l.opportunityMapping = m
		}
	}
}

// WithLogger sets the logger used for load reporting.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}
