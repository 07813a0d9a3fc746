package feeschedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"relist/internal/models"
	"relist/internal/repositories"
)

// DefaultSchedule is the documented fallback applied when no schedule exists
// for a (marketplace, category) key. It mirrors a generic eBay-style fee
// structure and is not an error to resolve.
var DefaultSchedule = Schedule{
	Marketplace:     "default",
	Category:        "default",
	Tiers:           []Tier{{UpperBound: math.Inf(1), Rate: 0.129}},
	FixedPerOrder:   0.30,
	PaymentRate:     0.0349,
	PaymentFixedFee: 0.49,
}

const cacheTTL = 10 * time.Minute

type provider struct {
	repo  repositories.FeeScheduleRepository
	cache repositories.CacheRepository
}

// NewProvider creates a schedule provider backed by the database with a
// cache in front. The cache is optional.
func NewProvider(repo repositories.FeeScheduleRepository, cache repositories.CacheRepository) Provider {
	if repo == nil {
		panic("repo is required")
	}
	return &provider{repo: repo, cache: cache}
}

func scheduleCacheKey(marketplace, category string) string {
	return fmt.Sprintf("fees:schedule:%s:%s", marketplace, category)
}

func (p *provider) GetSchedule(ctx context.Context, marketplace, category string) (*Schedule, error) {
	key := scheduleCacheKey(marketplace, category)
	if p.cache != nil {
		if raw, err := p.cache.GetString(ctx, key); err == nil {
			var s Schedule
			if err := json.Unmarshal([]byte(raw), &s); err == nil {
				return &s, nil
			}
		}
	}

	row, err := p.repo.GetByKey(ctx, marketplace, category)
	if err != nil {
		if err == repositories.ErrFeeScheduleNotFound {
			log.Printf("no fee schedule for %s/%s, using default", marketplace, category)
			s := DefaultSchedule
			s.Marketplace = marketplace
			s.Category = category
			return &s, nil
		}
		return nil, fmt.Errorf("failed to get fee schedule: %w", err)
	}

	s := FromModel(row)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("stored schedule %s/%s: %w", marketplace, category, err)
	}

	if p.cache != nil {
		if data, err := json.Marshal(s); err == nil {
			if err := p.cache.SetString(ctx, key, string(data), cacheTTL); err != nil {
				log.Printf("failed to cache fee schedule %s/%s: %v", marketplace, category, err)
			}
		}
	}
	return &s, nil
}

// FromModel converts a stored schedule row. An upper bound of 0 marks the
// open-ended last tier.
func FromModel(row *models.FeeSchedule) Schedule {
	s := Schedule{
		Marketplace:     row.Marketplace,
		Category:        row.Category,
		FixedPerOrder:   row.FixedPerOrder,
		PaymentRate:     row.PaymentRate,
		PaymentFixedFee: row.PaymentFixedFee,
	}
	for _, t := range row.Tiers {
		upper := t.UpperBound
		if upper == 0 {
			upper = math.Inf(1)
		}
		s.Tiers = append(s.Tiers, Tier{UpperBound: upper, Rate: t.Rate})
	}
	return s
}

// ToModel converts a schedule into its storage row. +Inf upper bounds are
// stored as 0.
func ToModel(s Schedule) *models.FeeSchedule {
	row := &models.FeeSchedule{
		Marketplace:     s.Marketplace,
		Category:        s.Category,
		FixedPerOrder:   s.FixedPerOrder,
		PaymentRate:     s.PaymentRate,
		PaymentFixedFee: s.PaymentFixedFee,
	}
	for i, t := range s.Tiers {
		upper := t.UpperBound
		if math.IsInf(upper, 1) {
			upper = 0
		}
		row.Tiers = append(row.Tiers, models.CommissionTier{
			Position:   i,
			UpperBound: upper,
			Rate:       t.Rate,
		})
	}
	return row
}
