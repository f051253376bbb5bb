// Package app provides the recommendation service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"internmatch/internal/config"
	"internmatch/internal/domain/filter"
	"internmatch/internal/domain/model"
	"internmatch/internal/domain/ranker"
	"internmatch/internal/domain/reason"
	"internmatch/internal/domain/taxonomy"
	"internmatch/internal/domain/vectorizer"
	"internmatch/pkg/logger"
	"internmatch/pkg/metrics"
)

// snapshot is an immutable catalog view: entities, fitted vocabulary and
// precomputed vectors. Concurrent readers share it; a reload swaps in a
// whole new snapshot.
type snapshot struct {
	candidates    []model.CandidateProfile
	candidateByID map[int]int
	opportunities []model.Opportunity

	state       *vectorizer.State
	candVecs    []vectorizer.Vector
	oppVecs     []vectorizer.Vector
	candDomains []string
	oppDomains  []string

	loadedAt time.Time
}

// Service implements the API dependencies for the matching engine.
type Service struct {
	mu   sync.RWMutex
	snap *snapshot

	// Core components
	vec      *vectorizer.Vectorizer
	pipeline *filter.Pipeline
	rank     *ranker.Ranker

	// Configuration
	topKDefault       int
	maxTopK           int
	fallbackPolicy    string
	fallbackSliceSize int
	batchWorkers      int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithVectorizer sets the vectorizer used to fit catalog snapshots.
func WithVectorizer(v *vectorizer.Vectorizer) Option {
	return func(s *Service) {
		if v != nil {
			s.vec = v
		}
	}
}

// WithPipeline sets the filter pipeline.
func WithPipeline(p *filter.Pipeline) Option {
	return func(s *Service) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithRanker sets the similarity ranker.
func WithRanker(r *ranker.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.rank = r
		}
	}
}

// WithTopKDefault sets the top-k used when a request omits it.
func WithTopKDefault(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topKDefault = k
		}
	}
}

// WithMaxTopK caps the per-request top-k.
func WithMaxTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.maxTopK = k
		}
	}
}

// WithFallbackPolicy selects the behavior when the pipeline empties out:
// permissive serves a deterministic catalog slice, strict stays empty.
func WithFallbackPolicy(policy string, sliceSize int) Option {
	return func(s *Service) {
		if policy == config.FallbackPermissive || policy == config.FallbackStrict {
			s.fallbackPolicy = policy
		}
		if sliceSize > 0 {
			s.fallbackSliceSize = sliceSize
		}
	}
}

// WithBatchWorkers sets the worker count for batch recommendations.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		vec:               vectorizer.New(),
		rank:              ranker.New(),
		topKDefault:       3,
		maxTopK:           50,
		fallbackPolicy:    config.FallbackPermissive,
		fallbackSliceSize: 20,
		batchWorkers:      runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("app")
	}
	if s.pipeline == nil {
		s.pipeline = filter.NewPipeline(filter.Default(false), filter.WithLogger(s.logger))
	}

	return s
}

// Load fits a new snapshot over the given catalog and atomically swaps it
// in. Concurrent Recommend calls keep reading the previous snapshot until
// the swap completes.
func (s *Service) Load(ctx context.Context, candidates []model.CandidateProfile, opportunities []model.Opportunity) error {
	start := time.Now()

	corpus := make([]string, 0, len(candidates)+len(opportunities))
	for _, c := range candidates {
		corpus = append(corpus, c.FeatureText())
	}
	for _, o := range opportunities {
		corpus = append(corpus, o.FeatureText())
	}

	state, err := s.vec.Fit(corpus)
	if err != nil {
		return fmt.Errorf("fit catalog: %w", err)
	}

	snap := &snapshot{
		candidates:    candidates,
		candidateByID: make(map[int]int, len(candidates)),
		opportunities: opportunities,
		state:         state,
		candVecs:      make([]vectorizer.Vector, len(candidates)),
		oppVecs:       make([]vectorizer.Vector, len(opportunities)),
		candDomains:   make([]string, len(candidates)),
		oppDomains:    make([]string, len(opportunities)),
		loadedAt:      time.Now(),
	}
	for i, c := range candidates {
		snap.candidateByID[c.ID] = i
		snap.candVecs[i] = state.Transform(c.FeatureText())
		snap.candDomains[i] = taxonomy.Classify(c.PreferredDomain)
	}
	for i, o := range opportunities {
		snap.oppVecs[i] = state.Transform(o.FeatureText())
		snap.oppDomains[i] = resolveOpportunityDomain(o)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	metrics.UpdateCatalogCandidates(len(candidates))
	metrics.UpdateCatalogOpportunities(len(opportunities))
	metrics.UpdateVocabularySize(state.VocabularySize())
	metrics.RecordCatalogReload()

	s.logger.Info(ctx, "catalog snapshot loaded",
		logger.Int("candidates", len(candidates)),
		logger.Int("opportunities", len(opportunities)),
		logger.Int("vocabulary", state.VocabularySize()),
		logger.Float64("elapsed_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// resolveOpportunityDomain classifies the supplied domain text, falling
// back to the role title when the text is unclassifiable.
func resolveOpportunityDomain(o model.Opportunity) string {
	d := taxonomy.Classify(o.Domain)
	if !taxonomy.Resolved(d) {
		d = taxonomy.Classify(o.Role)
	}
	return d
}

// Recommend returns the top-k recommendations for a catalog candidate.
// An empty list is a valid success, distinct from ErrCandidateNotFound.
func (s *Service) Recommend(ctx context.Context, candidateID, topK int) ([]model.Recommendation, error) {
	snap := s.snapshot()
	if snap == nil {
		return nil, ErrNotLoaded
	}

	idx, ok := snap.candidateByID[candidateID]
	if !ok {
		metrics.RecordCandidateNotFound()
		return nil, fmt.Errorf("%w: %d", ErrCandidateNotFound, candidateID)
	}

	c := snap.candidates[idx]
	return s.recommend(ctx, snap, c, snap.candVecs[idx], snap.candDomains[idx], topK)
}

// RecommendProfile serves an ad-hoc profile without touching the shared
// snapshot: the profile is transformed with the fitted state and discarded.
func (s *Service) RecommendProfile(ctx context.Context, profile model.CandidateProfile, topK int) ([]model.Recommendation, error) {
	snap := s.snapshot()
	if snap == nil {
		return nil, ErrNotLoaded
	}

	vec := snap.state.Transform(profile.FeatureText())
	domain := taxonomy.Classify(profile.PreferredDomain)
	return s.recommend(ctx, snap, profile, vec, domain, topK)
}

// BatchResult carries one candidate's outcome inside a batch response.
type BatchResult struct {
	CandidateID     int
	Recommendations []model.Recommendation
	Err             error
}

// BatchRecommend processes candidates with a bounded worker pool. Each
// entry fails independently; one bad id never aborts the rest. Results
// keep the order of the requested ids.
func (s *Service) BatchRecommend(ctx context.Context, candidateIDs []int, topK int) []BatchResult {
	results := make([]BatchResult, len(candidateIDs))

	workers := s.batchWorkers
	if workers > len(candidateIDs) {
		workers = len(candidateIDs)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				recs, err := s.Recommend(ctx, candidateIDs[i], topK)
				results[i] = BatchResult{
					CandidateID:     candidateIDs[i],
					Recommendations: recs,
					Err:             err,
				}
				if err != nil {
					metrics.RecordBatchCandidateError()
				} else {
					metrics.RecordBatchCandidateProcessed()
				}
			}
		}()
	}
	for i := range candidateIDs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// recommend runs the shared pipeline: filter, rank, truncate, explain.
func (s *Service) recommend(ctx context.Context, snap *snapshot, c model.CandidateProfile, candVec vectorizer.Vector, candDomain string, topK int) ([]model.Recommendation, error) {
	if topK == 0 {
		topK = s.topKDefault
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	if topK > s.maxTopK {
		topK = s.maxTopK
	}

	start := time.Now()

	filtered, _ := s.pipeline.Run(ctx, c, snap.opportunities)
	if len(filtered) == 0 && s.fallbackPolicy == config.FallbackPermissive {
		// Deterministic catalog slice rather than an empty answer.
		n := s.fallbackSliceSize
		if n > len(snap.opportunities) {
			n = len(snap.opportunities)
		}
		filtered = snap.opportunities[:n]
	}

	if len(filtered) == 0 {
		metrics.RecordRecommendationEmpty()
		metrics.RecordRankingLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
		return []model.Recommendation{}, nil
	}

	out := s.rankPool(snap, c, candVec, candDomain, filtered, topK)

	// The hard filters never leave a short page: backfill from the
	// remainder of the catalog, ranked with the same domain penalty, so
	// off-domain opportunities sort after every filtered one.
	if len(out) < topK && len(filtered) < len(snap.opportunities) {
		served := make(map[int]bool, len(out))
		for _, rec := range out {
			served[rec.Opportunity.ID] = true
		}
		remainder := make([]model.Opportunity, 0, len(snap.opportunities)-len(out))
		for _, o := range snap.opportunities {
			if !served[o.ID] {
				remainder = append(remainder, o)
			}
		}
		out = append(out, s.rankPool(snap, c, candVec, candDomain, remainder, topK-len(out))...)
	}

	metrics.RecordRecommendationServed()
	metrics.RecordRankingLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	return out, nil
}

// rankPool scores a pool of opportunities against the candidate vector
// and returns the top entries with explanations, at most limit of them.
func (s *Service) rankPool(snap *snapshot, c model.CandidateProfile, candVec vectorizer.Vector, candDomain string, pool []model.Opportunity, limit int) []model.Recommendation {
	// Subset the precomputed vectors; ad-hoc entities fall back to a
	// request-scoped transform.
	vecs := make([]vectorizer.Vector, len(pool))
	domains := make([]string, len(pool))
	for i, o := range pool {
		if idx, ok := snap.indexOf(o.ID); ok {
			vecs[i] = snap.oppVecs[idx]
			domains[i] = snap.oppDomains[idx]
			continue
		}
		vecs[i] = snap.state.Transform(o.FeatureText())
		domains[i] = resolveOpportunityDomain(o)
	}

	scored := s.rank.Rank(candVec, vecs, candDomain, domains)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]model.Recommendation, len(scored))
	for i, sc := range scored {
		o := pool[sc.Index]
		out[i] = model.Recommendation{
			Opportunity: o,
			Score:       sc.Score,
			Reason:      reason.Explain(c, o),
		}
	}
	return out
}

// indexOf maps an opportunity id back to its catalog position.
func (sn *snapshot) indexOf(id int) (int, bool) {
	// Opportunity order is fixed per snapshot, so a linear scan on the
	// catalog scale here (tens to low hundreds) is cheaper than keeping
	// another map in sync.
	for i, o := range sn.opportunities {
		if o.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Service) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// CandidateInfo resolves a catalog candidate by id.
func (s *Service) CandidateInfo(id int) (model.CandidateProfile, error) {
	snap := s.snapshot()
	if snap == nil {
		return model.CandidateProfile{}, ErrNotLoaded
	}
	idx, ok := snap.candidateByID[id]
	if !ok {
		return model.CandidateProfile{}, fmt.Errorf("%w: %d", ErrCandidateNotFound, id)
	}
	return snap.candidates[idx], nil
}

// Candidates returns the loaded candidate catalog in insertion order.
func (s *Service) Candidates() []model.CandidateProfile {
	snap := s.snapshot()
	if snap == nil {
		return nil
	}
	return snap.candidates
}

// Opportunities returns the loaded opportunity catalog in insertion order.
func (s *Service) Opportunities() []model.Opportunity {
	snap := s.snapshot()
	if snap == nil {
		return nil
	}
	return snap.opportunities
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	snap := s.snapshot()

	stats := map[string]interface{}{
		"loaded":          snap != nil,
		"top_k_default":   s.topKDefault,
		"max_top_k":       s.maxTopK,
		"fallback_policy": s.fallbackPolicy,
		"batch_workers":   s.batchWorkers,
	}

	if snap != nil {
		stats["candidates"] = len(snap.candidates)
		stats["opportunities"] = len(snap.opportunities)
		stats["vocabulary_size"] = snap.state.VocabularySize()
		stats["loaded_at"] = snap.loadedAt.UTC().Format(time.RFC3339)
		stats["domains"] = domainBreakdown(snap.oppDomains)
	}

	return stats
}

// domainBreakdown counts opportunities per resolved domain.
func domainBreakdown(domains []string) map[string]int {
	out := make(map[string]int, len(taxonomy.Domains()))
	for _, d := range domains {
		out[d]++
	}
	return out
}
