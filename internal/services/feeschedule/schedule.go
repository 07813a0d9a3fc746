package feeschedule

import "math"

// EvaluateCommission walks the ordered tiers and accumulates the marginal
// commission up to price: each band's rate applies only to the slice of the
// price inside that band, so the total is continuous across tier boundaries.
func EvaluateCommission(s Schedule, price float64) (float64, error) {
	if price < 0 {
		return 0, ErrNegativePrice
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}

	amount := 0.0
	lower := 0.0
	for _, t := range s.Tiers {
		upper := math.Min(t.UpperBound, price)
		if upper <= lower {
			break
		}
		amount += (upper - lower) * t.Rate
		lower = t.UpperBound
	}
	return amount, nil
}

// CommissionBelow returns the commission accumulated over all bands fully
// below tier i, i.e. the marginal commission at tier i's lower bound. The
// inverse solver uses it to linearize the schedule within one tier.
func CommissionBelow(s Schedule, i int) float64 {
	amount := 0.0
	lower := 0.0
	for j := 0; j < i; j++ {
		amount += (s.Tiers[j].UpperBound - lower) * s.Tiers[j].Rate
		lower = s.Tiers[j].UpperBound
	}
	return amount
}

// EvaluatePaymentFee computes the payment processor fee on revenue.
func EvaluatePaymentFee(s Schedule, revenue float64) (float64, error) {
	if revenue < 0 {
		return 0, ErrNegativePrice
	}
	return revenue*s.PaymentRate + s.PaymentFixedFee, nil
}

// TotalFees computes commission + payment fee + fixed per-order fee at price.
func TotalFees(s Schedule, price float64) (float64, error) {
	commission, err := EvaluateCommission(s, price)
	if err != nil {
		return 0, err
	}
	payment, err := EvaluatePaymentFee(s, price)
	if err != nil {
		return 0, err
	}
	return commission + payment + s.FixedPerOrder, nil
}
