package feeschedule

import (
	"context"
	"encoding/json"
	"math"
)

// Tier is one band of a marginal commission schedule. UpperBound is the
// exclusive upper end of the band; the last tier must be open-ended
// (UpperBound = +Inf).
type Tier struct {
	UpperBound float64 `json:"-"`
	Rate       float64 `json:"rate"`
}

type tierJSON struct {
	// UpperBound of 0 encodes the open-ended last tier, since JSON cannot
	// represent +Inf.
	UpperBound float64 `json:"upper_bound"`
	Rate       float64 `json:"rate"`
}

// MarshalJSON encodes the tier with +Inf mapped to 0.
func (t Tier) MarshalJSON() ([]byte, error) {
	upper := t.UpperBound
	if math.IsInf(upper, 1) {
		upper = 0
	}
	return json.Marshal(tierJSON{UpperBound: upper, Rate: t.Rate})
}

// UnmarshalJSON decodes the tier with 0 mapped back to +Inf.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var raw tierJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Rate = raw.Rate
	t.UpperBound = raw.UpperBound
	if raw.UpperBound == 0 {
		t.UpperBound = math.Inf(1)
	}
	return nil
}

// Schedule is the full fee configuration for a (marketplace, category) pair:
// ordered commission tiers, a fixed per-order fee, and the payment processor
// fee expressed as rate plus fixed fee per order.
type Schedule struct {
	Marketplace     string  `json:"marketplace"`
	Category        string  `json:"category"`
	Tiers           []Tier  `json:"tiers"`
	FixedPerOrder   float64 `json:"fixed_per_order"`
	PaymentRate     float64 `json:"payment_rate"`
	PaymentFixedFee float64 `json:"payment_fixed_fee"`
}

// Validate checks the tier table partitions [0, +Inf) with no gaps,
// overlaps, or negative rates.
func (s Schedule) Validate() error {
	if len(s.Tiers) == 0 {
		return ErrInvalidSchedule
	}
	prev := 0.0
	for i, t := range s.Tiers {
		if t.Rate < 0 {
			return ErrInvalidSchedule
		}
		if i == len(s.Tiers)-1 {
			if !math.IsInf(t.UpperBound, 1) {
				return ErrInvalidSchedule
			}
			break
		}
		if t.UpperBound <= prev {
			return ErrInvalidSchedule
		}
		prev = t.UpperBound
	}
	if s.FixedPerOrder < 0 || s.PaymentRate < 0 || s.PaymentFixedFee < 0 {
		return ErrInvalidSchedule
	}
	return nil
}

// TierIndex returns the index of the tier whose band contains price.
func (s Schedule) TierIndex(price float64) int {
	for i, t := range s.Tiers {
		if price < t.UpperBound {
			return i
		}
	}
	return len(s.Tiers) - 1
}

// TierLowerBound returns the inclusive lower end of tier i's band.
func (s Schedule) TierLowerBound(i int) float64 {
	if i == 0 {
		return 0
	}
	return s.Tiers[i-1].UpperBound
}

// Provider supplies the fee schedule for a (marketplace, category) key,
// falling back to a documented default schedule when no specific one exists.
type Provider interface {
	GetSchedule(ctx context.Context, marketplace, category string) (*Schedule, error)
}
