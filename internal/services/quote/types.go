package quote

import (
	"relist/internal/services/pricing"
)

// Competitiveness classifies how far a duties-paid listing price sits above
// the duties-unpaid one.
type Competitiveness string

const (
	CompetitivenessExcellent Competitiveness = "EXCELLENT"
	CompetitivenessGood      Competitiveness = "GOOD"
	CompetitivenessFair      Competitiveness = "FAIR"
	CompetitivenessPoor      Competitiveness = "POOR"
)

// Coupon strategy types
const (
	CouponNotRecommended = "not_recommended"
	CouponPercentage     = "percentage_discount"
	CouponReEvaluate     = "re_evaluate"
)

// CouponStrategy is the recommendation for closing the DDP/DDU price gap
// with a marketplace coupon.
type CouponStrategy struct {
	Type            string   `json:"type"`
	DiscountPercent float64  `json:"discount_percent,omitempty"`
	TargetMarkets   []string `json:"target_markets,omitempty"`
	Reason          string   `json:"reason"`
}

// Request carries the lookup keys and economics shared by every entry point.
type Request struct {
	Economics      pricing.ItemEconomics `json:"economics"`
	Marketplace    string                `json:"marketplace"`
	Category       string                `json:"category"`
	Jurisdiction   string                `json:"jurisdiction"`
	Classification string                `json:"classification"`
	OriginCountry  string                `json:"origin_country"`
	Currency       string                `json:"currency"`
}

// QuoteRequest asks for a forward evaluation at a given price.
type QuoteRequest struct {
	Request
	Price          float64 `json:"price"`
	ShippingPrice  float64 `json:"shipping_price"`
	DutiesIncluded bool    `json:"duties_included"`
}

// RecommendRequest asks for the inverse-solved price for a target margin.
type RecommendRequest struct {
	Request
	TargetMarginPercent float64 `json:"target_margin_percent"`
	DutiesIncluded      bool    `json:"duties_included"`
}

// RecommendResult pairs the solved price with its forward evaluation.
type RecommendResult struct {
	Price float64             `json:"price"`
	Quote *pricing.PriceQuote `json:"quote"`
}

// CompareRequest asks for the DDU/DDP comparison at a target margin.
// ShippingEstimate is the expected outbound shipping charge in the foreign
// currency; it is capped by the jurisdiction's declared-shipping ceiling.
type CompareRequest struct {
	Request
	TargetMarginPercent float64 `json:"target_margin_percent"`
	ShippingEstimate    float64 `json:"shipping_estimate"`
	Persist             bool    `json:"persist"`
}

// DualRegimeResult pairs the two regime quotes for the same item with the
// price gap classification and coupon recommendation.
type DualRegimeResult struct {
	DDU *pricing.PriceQuote `json:"ddu"`
	DDP *pricing.PriceQuote `json:"ddp"`

	DDUPrice        float64         `json:"ddu_price"`
	DDPPrice        float64         `json:"ddp_price"`
	PriceDelta      float64         `json:"price_delta"`
	DeltaPercent    float64         `json:"delta_percent"`
	Competitiveness Competitiveness `json:"competitiveness"`
	Coupon          CouponStrategy  `json:"coupon"`

	RecordID string `json:"record_id,omitempty"`
}

// Config holds the business heuristics of the comparison. The thresholds
// and the coupon formula are operator-tunable, not invariants.
type Config struct {
	ExcellentMaxDeltaPercent float64
	GoodMaxDeltaPercent      float64
	FairMaxDeltaPercent      float64
	MaxCouponPercent         float64
	DDUTargetMarkets         []string
}
