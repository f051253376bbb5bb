package catalog

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrOpen          = errors.New("open catalog file failed")
	ErrParse         = errors.New("parse catalog failed")
	ErrMissingColumn = errors.New("required column missing")
	ErrDuplicateID   = errors.New("duplicate catalog id")
)
