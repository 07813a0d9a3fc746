package validation

import (
	"testing"

	"relist/internal/services/pricing"
	"relist/internal/services/quote"

	"github.com/stretchr/testify/assert"
)

func validRequest() quote.Request {
	return quote.Request{
		Economics:    pricing.ItemEconomics{PurchaseCost: 80000},
		Marketplace:  "ebay",
		Category:     "electronics",
		Jurisdiction: "US",
		Currency:     "USD",
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*quote.QuoteRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *quote.QuoteRequest) {}},
		{
			name:      "missing marketplace",
			mutate:    func(r *quote.QuoteRequest) { r.Marketplace = "" },
			wantField: "marketplace",
		},
		{
			name:      "missing currency",
			mutate:    func(r *quote.QuoteRequest) { r.Currency = "" },
			wantField: "currency",
		},
		{
			name:      "negative price",
			mutate:    func(r *quote.QuoteRequest) { r.Price = -1 },
			wantField: "price",
		},
		{
			name:      "price above cap",
			mutate:    func(r *quote.QuoteRequest) { r.Price = MaxListingPrice + 1 },
			wantField: "price",
		},
		{
			name:      "negative shipping",
			mutate:    func(r *quote.QuoteRequest) { r.ShippingPrice = -1 },
			wantField: "shipping_price",
		},
		{
			name:      "negative purchase cost",
			mutate:    func(r *quote.QuoteRequest) { r.Economics.PurchaseCost = -1 },
			wantField: "economics.purchase_cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := quote.QuoteRequest{Request: validRequest(), Price: 800}
			tt.mutate(&req)

			v := New()
			v.Quote(&req)
			if tt.wantField == "" {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
			} else {
				assert.False(t, v.Valid())
				assert.Contains(t, v.Errors, tt.wantField)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	req := quote.RecommendRequest{Request: validRequest(), TargetMarginPercent: 15}
	v := New()
	v.Recommend(&req)
	assert.True(t, v.Valid())

	req.TargetMarginPercent = MaxTargetMarginPercent + 1
	v = New()
	v.Recommend(&req)
	assert.Contains(t, v.Errors, "target_margin_percent")
}

func TestCompare(t *testing.T) {
	req := quote.CompareRequest{Request: validRequest(), TargetMarginPercent: 15, ShippingEstimate: 25}
	v := New()
	v.Compare(&req)
	assert.True(t, v.Valid())

	req.ShippingEstimate = -1
	v = New()
	v.Compare(&req)
	assert.Contains(t, v.Errors, "shipping_estimate")
}

func TestAddError_KeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("field", "first")
	v.AddError("field", "second")
	assert.Equal(t, "first", v.Errors["field"])
}
