package pricing

// ItemEconomics is the immutable domestic cost side of one item: what it
// cost to acquire and move to the export hub, all in the domestic currency.
type ItemEconomics struct {
	PurchaseCost     float64 `json:"purchase_cost"`
	OutsourceFee     float64 `json:"outsource_fee"`
	PackagingFee     float64 `json:"packaging_fee"`
	DomesticShipping float64 `json:"domestic_shipping"`
	HubShipping      float64 `json:"hub_shipping"`
}

// TotalCost sums every domestic cost field.
func (e ItemEconomics) TotalCost() float64 {
	return e.PurchaseCost + e.OutsourceFee + e.PackagingFee + e.DomesticShipping + e.HubShipping
}

// Validate checks all cost fields are non-negative.
func (e ItemEconomics) Validate() error {
	if e.PurchaseCost < 0 || e.OutsourceFee < 0 || e.PackagingFee < 0 ||
		e.DomesticShipping < 0 || e.HubShipping < 0 {
		return ErrInvalidInput
	}
	return nil
}

// BreakdownLine is one labeled line of a quote with the formula that
// produced it, kept for auditability.
type BreakdownLine struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Formula string  `json:"formula"`
}

// PriceQuote is the full projection for one (item, price) evaluation.
// Foreign-currency amounts unless suffixed Domestic. Immutable once
// returned; every evaluation produces a fresh value.
type PriceQuote struct {
	SellPrice      float64 `json:"sell_price"`
	ShippingPrice  float64 `json:"shipping_price"`
	Revenue        float64 `json:"revenue"`
	Duty           float64 `json:"duty"`
	Tax            float64 `json:"tax"`
	Commission     float64 `json:"commission"`
	PaymentFee     float64 `json:"payment_fee"`
	TotalFees      float64 `json:"total_fees"`
	NetForeign     float64 `json:"net_foreign"`
	NetDomestic    float64 `json:"net_domestic"`
	CostDomestic   float64 `json:"cost_domestic"`
	ProfitDomestic float64 `json:"profit_domestic"`
	ProfitForeign  float64 `json:"profit_foreign"`
	MarginPercent  float64 `json:"margin_percent"`
	ROIPercent     float64 `json:"roi_percent"`
	DutiesIncluded bool    `json:"duties_included"`
	ExchangeRate   float64 `json:"exchange_rate"`

	Breakdown []BreakdownLine `json:"breakdown"`
}
