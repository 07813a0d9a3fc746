package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"relist/internal/repositories"
)

// EffectiveRate applies the safety margin to a quoted base rate.
// A negative margin would mean the operator absorbs currency risk, which is
// disallowed.
func EffectiveRate(base, marginPercent float64) (float64, error) {
	if base <= 0 {
		return 0, ErrInvalidRate
	}
	if marginPercent < 0 {
		return 0, ErrInvalidMargin
	}
	return base * (1 + marginPercent/100), nil
}

// StaticProvider serves a fixed quote, typically loaded from configuration.
type StaticProvider struct {
	quote Quote
}

func NewStaticProvider(currency string, baseRate, marginPercent float64) *StaticProvider {
	return &StaticProvider{
		quote: Quote{
			Currency:      currency,
			BaseRate:      baseRate,
			MarginPercent: marginPercent,
			QuotedAt:      time.Now().UTC(),
		},
	}
}

func (p *StaticProvider) GetQuote(ctx context.Context, currency string) (*Quote, error) {
	if currency != "" && currency != p.quote.Currency {
		return nil, fmt.Errorf("%w for currency %s", ErrNoQuote, currency)
	}
	q := p.quote
	return &q, nil
}

// CachedProvider reads operator-published quotes from the cache and falls
// back to another provider on a miss.
type CachedProvider struct {
	cache    repositories.CacheRepository
	fallback Provider
}

func NewCachedProvider(cache repositories.CacheRepository, fallback Provider) *CachedProvider {
	if cache == nil {
		panic("cache is required")
	}
	return &CachedProvider{cache: cache, fallback: fallback}
}

func quoteCacheKey(currency string) string {
	return "fx:quote:" + currency
}

func (p *CachedProvider) GetQuote(ctx context.Context, currency string) (*Quote, error) {
	if raw, err := p.cache.GetString(ctx, quoteCacheKey(currency)); err == nil {
		var q Quote
		if err := json.Unmarshal([]byte(raw), &q); err == nil {
			return &q, nil
		}
	}

	if p.fallback == nil {
		return nil, ErrNoQuote
	}
	q, err := p.fallback.GetQuote(ctx, currency)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// PublishQuote stores a fresh quote for subsequent computations.
func (p *CachedProvider) PublishQuote(ctx context.Context, q Quote, ttl time.Duration) error {
	if _, err := EffectiveRate(q.BaseRate, q.MarginPercent); err != nil {
		return err
	}
	if q.QuotedAt.IsZero() {
		q.QuotedAt = time.Now().UTC()
	}
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	if err := p.cache.SetString(ctx, quoteCacheKey(q.Currency), string(data), ttl); err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}
	return nil
}
