package models

import (
	"time"
)

// DefaultClassification matches any classification within a jurisdiction.
const DefaultClassification = "*"

// TariffRule stores import duty and consumption tax settings for a
// (jurisdiction, classification) pair. Classification "*" is the
// jurisdiction-wide default used by the fallback chain.
type TariffRule struct {
	ID                 uint   `gorm:"primarykey"`
	Jurisdiction       string `gorm:"not null;index:idx_tariff_rule_key,unique"`
	Classification     string `gorm:"not null;index:idx_tariff_rule_key,unique"`
	DutyRate           float64
	TaxRate            float64
	DutyFreeThreshold  float64
	AgreementOrigin    string
	AgreementReduction float64
	ShippingCap        float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
