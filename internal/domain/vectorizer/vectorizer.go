// Package vectorizer converts free text into sparse TF-IDF vectors over a
// vocabulary fitted once per catalog snapshot.
package vectorizer

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Default vectorizer configuration constants.
const (
	defaultMaxFeatures     = 100
	defaultMinDocFreq      = 2
	defaultMaxDocFreqRatio = 0.8
)

// Vector is a sparse TF-IDF vector keyed by vocabulary index. Vectors
// produced by Transform are L2-normalized, so Dot is cosine similarity.
type Vector map[int]float64

// Dot computes the dot product of two sparse vectors.
func (v Vector) Dot(other Vector) float64 {
	// Iterate the smaller map.
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for idx, val := range v {
		sum += val * other[idx]
	}
	return sum
}

// Option applies a configuration option to the Vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures caps the vocabulary size. Terms with the highest
// document frequency are kept, ties broken alphabetically.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.maxFeatures = n
		}
	}
}

// WithMinDocFreq prunes terms appearing in fewer than n documents.
func WithMinDocFreq(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.minDocFreq = n
		}
	}
}

// WithMaxDocFreqRatio prunes terms appearing in more than the given
// fraction of documents.
func WithMaxDocFreqRatio(r float64) Option {
	return func(v *Vectorizer) {
		if r > 0 && r <= 1 {
			v.maxDocFreqRatio = r
		}
	}
}

// WithStopwords replaces the default English stop-word list.
func WithStopwords(words []string) Option {
	return func(v *Vectorizer) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			m[strings.ToLower(w)] = struct{}{}
		}
		v.stopwords = m
	}
}

// Vectorizer tokenizes text into unigrams and bigrams and fits a
// TF-IDF vocabulary over a corpus.
type Vectorizer struct {
	maxFeatures     int
	minDocFreq      int
	maxDocFreqRatio float64
	tokenPattern    *regexp.Regexp
	stopwords       map[string]struct{}
}

// New creates a Vectorizer with configuration options applied.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxFeatures:     defaultMaxFeatures,
		minDocFreq:      defaultMinDocFreq,
		maxDocFreqRatio: defaultMaxDocFreqRatio,
		tokenPattern:    regexp.MustCompile(`[a-z0-9]{2,}`),
		stopwords:       defaultStopwords(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State is an immutable fitted vocabulary with IDF weights. A refit
// produces a new State; the old one stays valid for concurrent readers.
type State struct {
	vocabulary map[string]int
	idf        []float64
	vec        *Vectorizer
}

// Fit builds vocabulary and IDF values from the provided corpus.
// Vocabulary order is deterministic: document-frequency capped selection,
// then sorted terms.
func (v *Vectorizer) Fit(corpus []string) (*State, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrFit)
	}

	// Document frequencies over unigrams + bigrams.
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("%w: no terms found in corpus", ErrFit)
	}

	n := len(corpus)
	maxDF := int(v.maxDocFreqRatio * float64(n))
	pruned := make([]string, 0, len(df))
	for term, count := range df {
		if count < v.minDocFreq || count > maxDF {
			continue
		}
		pruned = append(pruned, term)
	}
	// Pruning can empty tiny corpora; fall back to the full term set
	// rather than failing the whole snapshot.
	if len(pruned) == 0 {
		for term := range df {
			pruned = append(pruned, term)
		}
	}

	// Cap by document frequency, ties alphabetical.
	if len(pruned) > v.maxFeatures {
		sort.Slice(pruned, func(i, j int) bool {
			if df[pruned[i]] != df[pruned[j]] {
				return df[pruned[i]] > df[pruned[j]]
			}
			return pruned[i] < pruned[j]
		})
		pruned = pruned[:v.maxFeatures]
	}
	sort.Strings(pruned)

	st := &State{
		vocabulary: make(map[string]int, len(pruned)),
		idf:        make([]float64, len(pruned)),
		vec:        v,
	}
	for i, term := range pruned {
		st.vocabulary[term] = i
		// Smoothed IDF.
		st.idf[i] = math.Log((1+float64(n))/(1+float64(df[term]))) + 1.0
	}
	return st, nil
}

// VocabularySize returns the number of fitted terms.
func (s *State) VocabularySize() int { return len(s.vocabulary) }

// Transform computes the sparse L2-normalized TF-IDF vector for text.
// Text sharing no terms with the vocabulary yields an empty vector.
func (s *State) Transform(text string) Vector {
	counts := make(map[int]int)
	total := 0
	for _, term := range s.vec.terms(text) {
		total++
		if idx, ok := s.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := make(Vector, len(counts))
	if total == 0 {
		return vec
	}
	var norm float64
	for idx, count := range counts {
		w := float64(count) / float64(total) * s.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// terms tokenizes text and expands it into unigrams plus bigrams of
// consecutive non-stop tokens.
func (v *Vectorizer) terms(text string) []string {
	lower := strings.ToLower(text)
	raw := v.tokenPattern.FindAllString(lower, -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		return nil
	}

	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
