package tariff

import "errors"

// Service errors
var (
	ErrInvalidRule   = errors.New("invalid tariff rule")
	ErrNegativeBasis = errors.New("taxable basis cannot be negative")
	ErrNoRule        = errors.New("no tariff rule found")
)
