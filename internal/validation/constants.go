package validation

const (
	// Price limits (foreign currency)
	MaxListingPrice = 1000000.00

	// Margin limits: margins at or above 100% have no solution.
	MaxTargetMarginPercent = 99.0

	// String lengths
	MaxKeyLength = 100
)
