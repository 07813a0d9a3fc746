package exchange

import (
	"context"
	"time"
)

// Quote is a point-in-time exchange rate quote: domestic currency units per
// one unit of foreign currency, plus a safety margin the operator adds to
// cover rate movement between quoting and settlement. Quotes are never
// mutated; staleness is the caller's concern, surfaced as QuotedAt.
type Quote struct {
	Currency      string    `json:"currency"`
	BaseRate      float64   `json:"base_rate"`
	MarginPercent float64   `json:"margin_percent"`
	QuotedAt      time.Time `json:"quoted_at"`
}

// Effective returns the safe conversion rate for the quote.
func (q Quote) Effective() (float64, error) {
	return EffectiveRate(q.BaseRate, q.MarginPercent)
}

// Provider supplies an exchange rate quote for a foreign currency.
type Provider interface {
	GetQuote(ctx context.Context, currency string) (*Quote, error)
}
