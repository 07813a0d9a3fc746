package models

import (
	"time"
)

// Calculation kinds
const (
	CalculationKindQuote     = "quote"
	CalculationKindRecommend = "recommend"
	CalculationKindCompare   = "compare"
)

// CalculationRecord is an append-only snapshot of a completed computation.
// Rows are never updated after creation.
type CalculationRecord struct {
	ID           string `gorm:"primarykey;type:uuid"`
	Kind         string `gorm:"not null;index"`
	Marketplace  string `gorm:"index"`
	Category     string
	Jurisdiction string `gorm:"index"`
	Origin       string
	Currency     string
	Inputs       JSON `gorm:"type:jsonb"`
	Result       JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
}
