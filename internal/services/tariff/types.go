package tariff

import "context"

// Rule holds the import duty and consumption tax settings for a
// (jurisdiction, classification) pair, plus an optional trade-agreement duty
// reduction contingent on the declared country of origin. ShippingCap is the
// jurisdiction's declared-shipping ceiling for listings (0 means no cap).
type Rule struct {
	Jurisdiction       string  `json:"jurisdiction"`
	Classification     string  `json:"classification"`
	DutyRate           float64 `json:"duty_rate"`
	TaxRate            float64 `json:"tax_rate"`
	DutyFreeThreshold  float64 `json:"duty_free_threshold"`
	AgreementOrigin    string  `json:"agreement_origin,omitempty"`
	AgreementReduction float64 `json:"agreement_reduction,omitempty"`
	ShippingCap        float64 `json:"shipping_cap,omitempty"`
}

// Validate checks all rates are within [0, 1] and amounts non-negative.
func (r Rule) Validate() error {
	if r.DutyRate < 0 || r.DutyRate > 1 ||
		r.TaxRate < 0 || r.TaxRate > 1 ||
		r.AgreementReduction < 0 || r.AgreementReduction > 1 {
		return ErrInvalidRule
	}
	if r.DutyFreeThreshold < 0 || r.ShippingCap < 0 {
		return ErrInvalidRule
	}
	return nil
}

// Effective is the resolved tariff for one computation: the duty rate after
// any trade-agreement reduction, the tax rate, the duty-free threshold, and
// the declared-shipping cap carried through for listing adjustment.
type Effective struct {
	DutyRate          float64 `json:"duty_rate"`
	TaxRate           float64 `json:"tax_rate"`
	DutyFreeThreshold float64 `json:"duty_free_threshold"`
	ShippingCap       float64 `json:"shipping_cap,omitempty"`
}

// CombinedRate is the marginal duty+tax burden per unit of taxable basis
// above the threshold, with tax charged on the duty-inclusive amount.
func (e Effective) CombinedRate() float64 {
	return e.DutyRate + e.TaxRate + e.DutyRate*e.TaxRate
}

// Provider supplies the tariff rule for a (jurisdiction, classification)
// key, resolving through the fallback chain when no specific rule exists.
type Provider interface {
	GetRule(ctx context.Context, jurisdiction, classification string) (*Rule, error)
}
