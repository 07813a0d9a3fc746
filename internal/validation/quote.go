package validation

import (
	"relist/internal/services/quote"
)

func (v *Validator) request(req *quote.Request) {
	v.Required("marketplace", req.Marketplace)
	v.Required("jurisdiction", req.Jurisdiction)
	v.Required("currency", req.Currency)
	v.Check(len(req.Marketplace) <= MaxKeyLength, "marketplace", "is too long")
	v.Check(len(req.Jurisdiction) <= MaxKeyLength, "jurisdiction", "is too long")

	v.NonNegative("economics.purchase_cost", req.Economics.PurchaseCost)
	v.NonNegative("economics.outsource_fee", req.Economics.OutsourceFee)
	v.NonNegative("economics.packaging_fee", req.Economics.PackagingFee)
	v.NonNegative("economics.domestic_shipping", req.Economics.DomesticShipping)
	v.NonNegative("economics.hub_shipping", req.Economics.HubShipping)
}

// Quote validates a forward evaluation request
func (v *Validator) Quote(req *quote.QuoteRequest) {
	v.request(&req.Request)
	v.Range("price", req.Price, 0, MaxListingPrice)
	v.NonNegative("shipping_price", req.ShippingPrice)
}

// Recommend validates an inverse-solve request
func (v *Validator) Recommend(req *quote.RecommendRequest) {
	v.request(&req.Request)
	v.Range("target_margin_percent", req.TargetMarginPercent, 0, MaxTargetMarginPercent)
}

// Compare validates a dual-regime comparison request
func (v *Validator) Compare(req *quote.CompareRequest) {
	v.request(&req.Request)
	v.Range("target_margin_percent", req.TargetMarginPercent, 0, MaxTargetMarginPercent)
	v.NonNegative("shipping_estimate", req.ShippingEstimate)
}
