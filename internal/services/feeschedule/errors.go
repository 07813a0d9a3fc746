package feeschedule

import "errors"

// Service errors
var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidSchedule = errors.New("invalid fee schedule")
	ErrNoSchedule      = errors.New("no fee schedule found")
)
