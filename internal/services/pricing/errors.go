package pricing

import (
	"errors"
	"fmt"
)

// Solver errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNonConvergent = errors.New("solver did not converge")
)

// NonConvergentError reports a failed inverse solve with the last trial
// price and tier for diagnostics.
type NonConvergentError struct {
	TrialPrice float64
	Tier       int
	Iterations int
}

func (e *NonConvergentError) Error() string {
	return fmt.Sprintf("solver did not converge after %d iterations (last trial price %.4f in tier %d)",
		e.Iterations, e.TrialPrice, e.Tier)
}

// Unwrap lets callers match with errors.Is(err, ErrNonConvergent).
func (e *NonConvergentError) Unwrap() error {
	return ErrNonConvergent
}
