// Package filter implements the cascading rule pipeline that narrows the
// opportunity catalog before similarity ranking.
package filter

import (
	"context"

	"internmatch/internal/domain/model"
	"internmatch/pkg/logger"
	"internmatch/pkg/metrics"
)

// Filter represents a single filtering step applied to opportunities.
type Filter interface {
	Name() string
	Apply(candidate model.CandidateProfile, opportunities []model.Opportunity) []model.Opportunity
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name     string
	Initial  int
	Dropped  int
	Left     int
	Reverted bool
}

// Pipeline executes filters sequentially with cascading fallback: a step
// that would empty the working set is reverted and the pipeline continues
// with the pre-step set.
type Pipeline struct {
	filters []Filter
	log     logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-step reporting.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPipeline creates a Pipeline over the given filters, in order.
func NewPipeline(filters []Filter, opts ...Option) *Pipeline {
	p := &Pipeline{
		filters: filters,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Named("filter")
	}
	return p
}

// Run executes all steps for one candidate and returns the surviving
// opportunities plus per-step statistics. The result is never nil.
func (p *Pipeline) Run(ctx context.Context, candidate model.CandidateProfile, opportunities []model.Opportunity) ([]model.Opportunity, []Step) {
	current := opportunities
	steps := make([]Step, 0, len(p.filters))

	for _, f := range p.filters {
		initial := len(current)
		next := f.Apply(candidate, current)
		step := Step{
			Name:    f.Name(),
			Initial: initial,
			Dropped: initial - len(next),
			Left:    len(next),
		}

		if len(next) == 0 && initial > 0 {
			// Revert the step instead of starving downstream ranking.
			step.Reverted = true
			step.Dropped = 0
			step.Left = initial
			next = current
			metrics.RecordFilterReverted(f.Name())
		} else if step.Dropped > 0 {
			metrics.RecordFilterDropped(f.Name(), step.Dropped)
		}

		p.log.Debug(ctx, "filter step",
			logger.String("name", step.Name),
			logger.Int("initial", step.Initial),
			logger.Int("dropped", step.Dropped),
			logger.Int("left", step.Left),
			logger.Any("reverted", step.Reverted),
		)

		steps = append(steps, step)
		current = next
	}

	if current == nil {
		current = []model.Opportunity{}
	}
	return current, steps
}
