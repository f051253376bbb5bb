package vectorizer

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrFit = errors.New("vectorizer fit failed")
)
