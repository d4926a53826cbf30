package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyCorpus        = errors.New("empty corpus")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrDegenerateMarginal = errors.New("degenerate marginal")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
