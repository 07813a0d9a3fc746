package pricing

import (
	"fmt"

	"relist/internal/services/feeschedule"
	"relist/internal/services/tariff"
)

// MaxSolveIterations caps the inverse solver's tier-matching loop.
const MaxSolveIterations = 10

// Evaluate projects the realized economics of selling at price with the
// given shipping charge. Under DDP the full revenue forms the taxable basis;
// under DDU the buyer settles duty and tax at import and they do not appear
// as seller costs.
func Evaluate(
	econ ItemEconomics,
	price, shippingPrice float64,
	schedule feeschedule.Schedule,
	effective tariff.Effective,
	exchangeRate float64,
	dutiesIncluded bool,
) (*PriceQuote, error) {
	if err := econ.Validate(); err != nil {
		return nil, err
	}
	if price < 0 || shippingPrice < 0 || exchangeRate <= 0 {
		return nil, ErrInvalidInput
	}

	revenue := price + shippingPrice

	taxableBasis := 0.0
	if dutiesIncluded {
		taxableBasis = revenue
	}
	duty, tax, err := tariff.ComputeDutyAndTax(effective, taxableBasis)
	if err != nil {
		return nil, err
	}

	commission, err := feeschedule.EvaluateCommission(schedule, revenue)
	if err != nil {
		return nil, err
	}
	paymentFee, err := feeschedule.EvaluatePaymentFee(schedule, revenue)
	if err != nil {
		return nil, err
	}
	totalFees := commission + paymentFee + schedule.FixedPerOrder

	netForeign := revenue - duty - tax - totalFees
	netDomestic := netForeign * exchangeRate
	costDomestic := econ.TotalCost()
	profitDomestic := netDomestic - costDomestic

	marginPercent := 0.0
	if netDomestic > 0 {
		marginPercent = profitDomestic / netDomestic * 100
	}
	roiPercent := 0.0
	if costDomestic > 0 {
		roiPercent = profitDomestic / costDomestic * 100
	}

	quote := &PriceQuote{
		SellPrice:      price,
		ShippingPrice:  shippingPrice,
		Revenue:        revenue,
		Duty:           duty,
		Tax:            tax,
		Commission:     commission,
		PaymentFee:     paymentFee,
		TotalFees:      totalFees,
		NetForeign:     netForeign,
		NetDomestic:    netDomestic,
		CostDomestic:   costDomestic,
		ProfitDomestic: profitDomestic,
		ProfitForeign:  profitDomestic / exchangeRate,
		MarginPercent:  marginPercent,
		ROIPercent:     roiPercent,
		DutiesIncluded: dutiesIncluded,
		ExchangeRate:   exchangeRate,
	}
	quote.Breakdown = buildBreakdown(quote, econ, effective)
	return quote, nil
}

func buildBreakdown(q *PriceQuote, econ ItemEconomics, effective tariff.Effective) []BreakdownLine {
	return []BreakdownLine{
		{
			Label:   "revenue",
			Amount:  q.Revenue,
			Formula: fmt.Sprintf("%.4f + %.4f", q.SellPrice, q.ShippingPrice),
		},
		{
			Label:  "duty",
			Amount: q.Duty,
			Formula: fmt.Sprintf("max(0, basis %.4f - threshold %.4f) * %.4f",
				taxableBasisOf(q), effective.DutyFreeThreshold, effective.DutyRate),
		},
		{
			Label:  "tax",
			Amount: q.Tax,
			Formula: fmt.Sprintf("(taxable + duty %.4f) * %.4f",
				q.Duty, effective.TaxRate),
		},
		{
			Label:  "fees",
			Amount: q.TotalFees,
			Formula: fmt.Sprintf("commission %.4f + payment %.4f + fixed %.4f",
				q.Commission, q.PaymentFee, q.TotalFees-q.Commission-q.PaymentFee),
		},
		{
			Label:  "net foreign",
			Amount: q.NetForeign,
			Formula: fmt.Sprintf("%.4f - %.4f - %.4f - %.4f",
				q.Revenue, q.Duty, q.Tax, q.TotalFees),
		},
		{
			Label:   "net domestic",
			Amount:  q.NetDomestic,
			Formula: fmt.Sprintf("%.4f * %.4f", q.NetForeign, q.ExchangeRate),
		},
		{
			Label:  "cost",
			Amount: q.CostDomestic,
			Formula: fmt.Sprintf("%.2f + %.2f + %.2f + %.2f + %.2f",
				econ.PurchaseCost, econ.OutsourceFee, econ.PackagingFee,
				econ.DomesticShipping, econ.HubShipping),
		},
		{
			Label:   "profit",
			Amount:  q.ProfitDomestic,
			Formula: fmt.Sprintf("%.4f - %.2f", q.NetDomestic, q.CostDomestic),
		},
	}
}

func taxableBasisOf(q *PriceQuote) float64 {
	if q.DutiesIncluded {
		return q.Revenue
	}
	return 0
}

// SolveForTargetMargin finds the listing price whose evaluation hits the
// target margin. Commission is piecewise-linear in price, so a closed-form
// inversion only holds inside one tier: the solver assumes a tier,
// linearizes the schedule there (accumulated commission below the tier plus
// the tier's marginal rate), solves, and checks which tier the trial price
// actually lands in. On a mismatch it re-derives in the landed tier and
// repeats until assumed and landed tiers agree or the iteration cap is hit.
// Solving with only the lowest tier's rate systematically under-prices once
// the true price crosses a tier boundary.
func SolveForTargetMargin(
	econ ItemEconomics,
	targetMarginPercent float64,
	schedule feeschedule.Schedule,
	effective tariff.Effective,
	exchangeRate float64,
	dutiesIncluded bool,
) (float64, error) {
	if err := econ.Validate(); err != nil {
		return 0, err
	}
	if targetMarginPercent < 0 || targetMarginPercent >= 100 || exchangeRate <= 0 {
		return 0, ErrInvalidInput
	}
	if err := schedule.Validate(); err != nil {
		return 0, err
	}

	// Required net revenue in foreign currency: margin m means
	// netDomestic = cost / (1 - m/100).
	netTarget := econ.TotalCost() / (exchangeRate * (1 - targetMarginPercent/100))

	tier := 0
	price := 0.0
	for iter := 0; iter < MaxSolveIterations; iter++ {
		trial, err := solveInTier(netTarget, schedule, effective, dutiesIncluded, tier)
		if err != nil {
			if nc, ok := err.(*NonConvergentError); ok {
				nc.TrialPrice = price
				nc.Iterations = iter + 1
			}
			return 0, err
		}
		price = trial

		landed := schedule.TierIndex(price)
		if landed == tier {
			return price, nil
		}
		tier = landed
	}
	return 0, &NonConvergentError{TrialPrice: price, Tier: tier, Iterations: MaxSolveIterations}
}

// solveInTier solves the linear pricing equation under the assumption that
// the price lands in the given tier. Within a tier the commission is
// base + rate*(price - lower), so
//
//	price*(1 - rate - paymentRate - dutyTax) =
//	    netTarget + base - rate*lower + fixedFees - dutyTax*threshold
//
// where dutyTax is the combined marginal duty+tax rate when duties are part
// of the listing price, zero otherwise.
func solveInTier(
	netTarget float64,
	schedule feeschedule.Schedule,
	effective tariff.Effective,
	dutiesIncluded bool,
	tier int,
) (float64, error) {
	rate := schedule.Tiers[tier].Rate
	lower := schedule.TierLowerBound(tier)
	base := feeschedule.CommissionBelow(schedule, tier)

	dutyTax := 0.0
	threshold := 0.0
	if dutiesIncluded {
		dutyTax = effective.CombinedRate()
		threshold = effective.DutyFreeThreshold
	}

	denom := 1 - rate - schedule.PaymentRate - dutyTax
	if denom <= 0 {
		return 0, &NonConvergentError{Tier: tier}
	}

	numer := netTarget + base - rate*lower +
		schedule.PaymentFixedFee + schedule.FixedPerOrder - dutyTax*threshold
	price := numer / denom

	// If the solution sits under the duty-free threshold no duty or tax is
	// actually owed; re-solve the duty-free form of the equation.
	if dutiesIncluded && price <= threshold {
		denom = 1 - rate - schedule.PaymentRate
		if denom <= 0 {
			return 0, &NonConvergentError{Tier: tier}
		}
		price = (netTarget + base - rate*lower +
			schedule.PaymentFixedFee + schedule.FixedPerOrder) / denom
		if price > threshold {
			price = threshold
		}
	}

	if price < 0 {
		price = 0
	}
	return price, nil
}
