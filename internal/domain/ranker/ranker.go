// Package ranker orders opportunities by cosine similarity with
// domain-preference re-weighting.
package ranker

import (
	"sort"

	"internmatch/internal/domain/taxonomy"
	"internmatch/internal/domain/vectorizer"
)

// Default re-weighting constants.
const (
	defaultDomainBoost    = 2.0
	defaultDomainPenalty  = 0.3
	defaultRegularization = 0.05
)

// Scored pairs a catalog index with its final score.
type Scored struct {
	Index int
	Score float64
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithDomainBoost sets the multiplier for exact domain matches.
func WithDomainBoost(b float64) Option {
	return func(r *Ranker) {
		if b > 0 {
			r.boost = b
		}
	}
}

// WithDomainPenalty sets the multiplier applied when both domains are
// resolved and differ.
func WithDomainPenalty(p float64) Option {
	return func(r *Ranker) {
		if p > 0 {
			r.penalty = p
		}
	}
}

// WithRegularization sets the global score dampening factor.
func WithRegularization(reg float64) Option {
	return func(r *Ranker) {
		if reg >= 0 && reg < 1 {
			r.regularization = reg
		}
	}
}

// Ranker computes final scores. Safe for concurrent use; it holds only
// immutable configuration.
type Ranker struct {
	boost          float64
	penalty        float64
	regularization float64
}

// New creates a Ranker with configuration options applied.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		boost:          defaultDomainBoost,
		penalty:        defaultDomainPenalty,
		regularization: defaultRegularization,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every opportunity vector against the candidate vector and
// returns indices sorted by descending score. The sort is stable, so
// equal scores keep catalog order. Scores may exceed 1 after boosting.
func (r *Ranker) Rank(candidate vectorizer.Vector, vectors []vectorizer.Vector, candidateDomain string, domains []string) []Scored {
	out := make([]Scored, len(vectors))
	for i, vec := range vectors {
		score := candidate.Dot(vec)

		if i < len(domains) {
			score = r.reweight(score, candidateDomain, domains[i])
		}

		// Display dampening only; does not change the ordering.
		score *= 1 - r.regularization

		out[i] = Scored{Index: i, Score: score}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// reweight applies the domain preference rules: exact match boosts,
// resolved-but-different penalizes, anything else passes unchanged.
func (r *Ranker) reweight(score float64, candidateDomain, opportunityDomain string) float64 {
	switch {
	case candidateDomain == opportunityDomain && taxonomy.Resolved(candidateDomain):
		return score * r.boost
	case taxonomy.Resolved(candidateDomain) && taxonomy.Resolved(opportunityDomain):
		return score * r.penalty
	default:
		return score
	}
}
