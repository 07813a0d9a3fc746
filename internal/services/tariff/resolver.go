package tariff

import "math"

// Resolve applies the trade-agreement reduction when the declared origin
// matches the rule's agreement origin. The effective duty rate is clamped at
// zero; tax rate and threshold pass through unchanged.
func Resolve(rule Rule, originCountry string) (Effective, error) {
	if err := rule.Validate(); err != nil {
		return Effective{}, err
	}

	dutyRate := rule.DutyRate
	if rule.AgreementOrigin != "" && rule.AgreementOrigin == originCountry {
		dutyRate = math.Max(0, rule.DutyRate-rule.AgreementReduction)
	}

	return Effective{
		DutyRate:          dutyRate,
		TaxRate:           rule.TaxRate,
		DutyFreeThreshold: rule.DutyFreeThreshold,
		ShippingCap:       rule.ShippingCap,
	}, nil
}

// ComputeDutyAndTax computes the import duty and consumption tax on a
// taxable basis. Below the duty-free threshold both are zero. Tax is charged
// on the duty-inclusive amount; that ordering is part of the contract.
func ComputeDutyAndTax(effective Effective, taxableBasis float64) (duty, tax float64, err error) {
	if taxableBasis < 0 {
		return 0, 0, ErrNegativeBasis
	}

	taxableAmount := math.Max(0, taxableBasis-effective.DutyFreeThreshold)
	duty = taxableAmount * effective.DutyRate
	tax = (taxableAmount + duty) * effective.TaxRate
	return duty, tax, nil
}
