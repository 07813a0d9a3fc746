package exchange

import "errors"

// Service errors
var (
	ErrInvalidRate   = errors.New("base rate must be positive")
	ErrInvalidMargin = errors.New("safety margin cannot be negative")
	ErrNoQuote       = errors.New("no exchange rate quote available")
)
