package app

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrNotLoaded         = errors.New("catalog not loaded")
	ErrInvalidTopK       = errors.New("top_k must be >= 1")
)
