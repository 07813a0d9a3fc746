package models

import (
	"time"
)

// Marketplace identifiers used as schedule keys
const (
	MarketplaceEbay    = "ebay"
	MarketplaceAmazon  = "amazon"
	MarketplaceMercari = "mercari"
)

// FeeSchedule stores the commission and payment fee configuration for a
// (marketplace, category) pair. Tiers are ordered by upper bound; the last
// tier is open-ended (UpperBound stored as 0 means +Inf).
type FeeSchedule struct {
	ID              uint   `gorm:"primarykey"`
	Marketplace     string `gorm:"not null;index:idx_fee_schedule_key,unique"`
	Category        string `gorm:"not null;index:idx_fee_schedule_key,unique"`
	FixedPerOrder   float64
	PaymentRate     float64
	PaymentFixedFee float64
	Tiers           []CommissionTier `gorm:"foreignKey:FeeScheduleID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CommissionTier is one band of a marginal commission schedule.
type CommissionTier struct {
	ID            uint `gorm:"primarykey"`
	FeeScheduleID uint `gorm:"not null;index"`
	Position      int  `gorm:"not null"`
	UpperBound    float64
	Rate          float64
}
