package quote

import "errors"

// Service errors
var (
	ErrMissingMarketplace  = errors.New("marketplace is required")
	ErrMissingJurisdiction = errors.New("jurisdiction is required")
	ErrMissingCurrency     = errors.New("currency is required")
)
