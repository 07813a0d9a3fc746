package pricing

import (
	"errors"
	"math"
	"testing"

	"relist/internal/services/feeschedule"
	"relist/internal/services/tariff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ebaySchedule() feeschedule.Schedule {
	return feeschedule.Schedule{
		Marketplace:     "ebay",
		Category:        "electronics",
		Tiers:           []feeschedule.Tier{{UpperBound: math.Inf(1), Rate: 0.129}},
		FixedPerOrder:   0,
		PaymentRate:     0.0349,
		PaymentFixedFee: 0.49,
	}
}

func cameraEconomics() ItemEconomics {
	return ItemEconomics{
		PurchaseCost:     80000,
		OutsourceFee:     500,
		PackagingFee:     200,
		DomesticShipping: 500,
	}
}

// Used camera listed on eBay US at 800 USD plus 25 shipping, bought for
// 80000 JPY with 1200 JPY of handling, at 157.5 JPY/USD effective rate.
func TestEvaluate_DDP(t *testing.T) {
	econ := ItemEconomics{PurchaseCost: 80000, OutsourceFee: 500, PackagingFee: 200, HubShipping: 500}
	effective := tariff.Effective{DutyRate: 0.075}

	q, err := Evaluate(econ, 800, 25, ebaySchedule(), effective, 157.5, true)
	require.NoError(t, err)

	assert.InDelta(t, 825, q.Revenue, 1e-9)
	assert.InDelta(t, 61.875, q.Duty, 1e-9)
	assert.InDelta(t, 0, q.Tax, 1e-9)
	assert.InDelta(t, 106.425, q.Commission, 1e-9)
	assert.InDelta(t, 29.2825, q.PaymentFee, 1e-9)
	assert.InDelta(t, 135.7075, q.TotalFees, 1e-9)
	assert.InDelta(t, 627.4175, q.NetForeign, 1e-9)
	assert.InDelta(t, 98818.25625, q.NetDomestic, 1e-6)
	assert.InDelta(t, 81200, q.CostDomestic, 1e-9)
	assert.InDelta(t, 17618.25625, q.ProfitDomestic, 1e-6)
	assert.InDelta(t, 17.83, q.MarginPercent, 0.01)
	assert.InDelta(t, 21.70, q.ROIPercent, 0.01)
	assert.True(t, q.DutiesIncluded)
	assert.NotEmpty(t, q.Breakdown)
}

func TestEvaluate_DDU(t *testing.T) {
	econ := cameraEconomics()
	effective := tariff.Effective{DutyRate: 0.075}

	q, err := Evaluate(econ, 800, 25, ebaySchedule(), effective, 157.5, false)
	require.NoError(t, err)

	// Buyer settles duty at import; it never touches the seller's net.
	assert.InDelta(t, 0, q.Duty, 1e-9)
	assert.InDelta(t, 0, q.Tax, 1e-9)
	assert.InDelta(t, 689.2925, q.NetForeign, 1e-9)
	assert.False(t, q.DutiesIncluded)
}

func TestEvaluate_TaxOnDutyInclusiveAmount(t *testing.T) {
	econ := ItemEconomics{PurchaseCost: 10000}
	effective := tariff.Effective{DutyRate: 0.10, TaxRate: 0.20}
	schedule := feeschedule.Schedule{
		Tiers: []feeschedule.Tier{{UpperBound: math.Inf(1), Rate: 0}},
	}

	q, err := Evaluate(econ, 1000, 0, schedule, effective, 100, true)
	require.NoError(t, err)
	assert.InDelta(t, 100, q.Duty, 1e-9)
	assert.InDelta(t, 220, q.Tax, 1e-9)
}

func TestEvaluate_DegenerateCases(t *testing.T) {
	t.Run("non-positive net revenue yields zero margin", func(t *testing.T) {
		q, err := Evaluate(cameraEconomics(), 0, 0, ebaySchedule(), tariff.Effective{}, 157.5, true)
		require.NoError(t, err)
		assert.Negative(t, q.NetForeign)
		assert.Equal(t, 0.0, q.MarginPercent)
	})

	t.Run("zero cost yields zero roi", func(t *testing.T) {
		q, err := Evaluate(ItemEconomics{}, 100, 0, ebaySchedule(), tariff.Effective{}, 157.5, true)
		require.NoError(t, err)
		assert.Equal(t, 0.0, q.ROIPercent)
		assert.Positive(t, q.ProfitDomestic)
	})
}

func TestEvaluate_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		econ     ItemEconomics
		price    float64
		shipping float64
		rate     float64
	}{
		{"negative price", cameraEconomics(), -1, 0, 157.5},
		{"negative shipping", cameraEconomics(), 100, -1, 157.5},
		{"zero exchange rate", cameraEconomics(), 100, 0, 0},
		{"negative cost", ItemEconomics{PurchaseCost: -1}, 100, 0, 157.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.econ, tt.price, tt.shipping, ebaySchedule(), tariff.Effective{}, tt.rate, true)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSolveForTargetMargin_RoundTrip(t *testing.T) {
	tiered := feeschedule.Schedule{
		Tiers: []feeschedule.Tier{
			{UpperBound: 1000, Rate: 0.05},
			{UpperBound: 5000, Rate: 0.12},
			{UpperBound: math.Inf(1), Rate: 0.15},
		},
		FixedPerOrder:   0.30,
		PaymentRate:     0.03,
		PaymentFixedFee: 0.30,
	}

	tests := []struct {
		name           string
		econ           ItemEconomics
		target         float64
		schedule       feeschedule.Schedule
		effective      tariff.Effective
		rate           float64
		dutiesIncluded bool
	}{
		{
			name:      "flat schedule ddp",
			econ:      cameraEconomics(),
			target:    15,
			schedule:  ebaySchedule(),
			effective: tariff.Effective{DutyRate: 0.075},
			rate:      157.5, dutiesIncluded: true,
		},
		{
			name:      "flat schedule ddu",
			econ:      cameraEconomics(),
			target:    15,
			schedule:  ebaySchedule(),
			effective: tariff.Effective{DutyRate: 0.075},
			rate:      157.5, dutiesIncluded: false,
		},
		{
			name:      "tiered schedule crosses boundary",
			econ:      ItemEconomics{PurchaseCost: 120000},
			target:    20,
			schedule:  tiered,
			effective: tariff.Effective{},
			rate:      100, dutiesIncluded: true,
		},
		{
			name:      "tiered schedule with duty and tax",
			econ:      ItemEconomics{PurchaseCost: 250000},
			target:    25,
			schedule:  tiered,
			effective: tariff.Effective{DutyRate: 0.10, TaxRate: 0.20},
			rate:      100, dutiesIncluded: true,
		},
		{
			name:      "zero target margin",
			econ:      cameraEconomics(),
			target:    0,
			schedule:  ebaySchedule(),
			effective: tariff.Effective{DutyRate: 0.075},
			rate:      157.5, dutiesIncluded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := SolveForTargetMargin(tt.econ, tt.target, tt.schedule, tt.effective, tt.rate, tt.dutiesIncluded)
			require.NoError(t, err)
			require.Positive(t, price)

			q, err := Evaluate(tt.econ, price, 0, tt.schedule, tt.effective, tt.rate, tt.dutiesIncluded)
			require.NoError(t, err)
			assert.InDelta(t, tt.target, q.MarginPercent, 0.01,
				"price %.4f evaluated to margin %.4f", price, q.MarginPercent)
		})
	}
}

// With rates that rise across tiers, pretending the whole price pays the
// lowest tier's rate under-prices the listing.
func TestSolveForTargetMargin_TierCrossing(t *testing.T) {
	schedule := feeschedule.Schedule{
		Tiers: []feeschedule.Tier{
			{UpperBound: 1000, Rate: 0.05},
			{UpperBound: math.Inf(1), Rate: 0.12},
		},
		FixedPerOrder:   0.30,
		PaymentRate:     0.03,
		PaymentFixedFee: 0.30,
	}
	econ := ItemEconomics{PurchaseCost: 120000}

	price, err := SolveForTargetMargin(econ, 20, schedule, tariff.Effective{}, 100, false)
	require.NoError(t, err)
	assert.Greater(t, price, 1000.0, "expected the solution above the tier boundary")

	netTarget := econ.TotalCost() / (100 * 0.80)
	naive := (netTarget + schedule.PaymentFixedFee + schedule.FixedPerOrder) /
		(1 - schedule.Tiers[0].Rate - schedule.PaymentRate)
	assert.Greater(t, price, naive)

	q, err := Evaluate(econ, price, 0, schedule, tariff.Effective{}, 100, false)
	require.NoError(t, err)
	assert.InDelta(t, 20, q.MarginPercent, 0.01)
}

func TestSolveForTargetMargin_DutyFreeThreshold(t *testing.T) {
	schedule := feeschedule.Schedule{
		Tiers:       []feeschedule.Tier{{UpperBound: math.Inf(1), Rate: 0.10}},
		PaymentRate: 0.03,
	}
	effective := tariff.Effective{DutyRate: 0.10, TaxRate: 0.20, DutyFreeThreshold: 10000}
	econ := ItemEconomics{PurchaseCost: 80}

	price, err := SolveForTargetMargin(econ, 20, schedule, effective, 1, true)
	require.NoError(t, err)
	assert.Less(t, price, effective.DutyFreeThreshold)

	q, err := Evaluate(econ, price, 0, schedule, effective, 1, true)
	require.NoError(t, err)
	assert.Zero(t, q.Duty)
	assert.Zero(t, q.Tax)
	assert.InDelta(t, 20, q.MarginPercent, 0.01)
}

func TestSolveForTargetMargin_NonConvergent(t *testing.T) {
	confiscatory := feeschedule.Schedule{
		Tiers:       []feeschedule.Tier{{UpperBound: math.Inf(1), Rate: 0.97}},
		PaymentRate: 0.05,
	}

	_, err := SolveForTargetMargin(cameraEconomics(), 15, confiscatory, tariff.Effective{}, 157.5, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonConvergent)

	var nc *NonConvergentError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, 0, nc.Tier)
}

func TestSolveForTargetMargin_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		rate   float64
	}{
		{"negative target", -5, 157.5},
		{"target at hundred", 100, 157.5},
		{"zero exchange rate", 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveForTargetMargin(cameraEconomics(), tt.target, ebaySchedule(), tariff.Effective{}, tt.rate, true)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
