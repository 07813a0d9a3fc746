package tariff

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"relist/internal/models"
	"relist/internal/repositories"
)

// GlobalDefaultRule is the last link of the fallback chain, applied when a
// jurisdiction has neither a classification rule nor a jurisdiction default.
var GlobalDefaultRule = Rule{
	Jurisdiction:   "default",
	Classification: models.DefaultClassification,
	DutyRate:       0.05,
	TaxRate:        0.10,
}

const cacheTTL = 10 * time.Minute

type provider struct {
	repo  repositories.TariffRuleRepository
	cache repositories.CacheRepository
}

// NewProvider creates a tariff rule provider backed by the database with a
// cache in front. The cache is optional.
func NewProvider(repo repositories.TariffRuleRepository, cache repositories.CacheRepository) Provider {
	if repo == nil {
		panic("repo is required")
	}
	return &provider{repo: repo, cache: cache}
}

func ruleCacheKey(jurisdiction, classification string) string {
	return fmt.Sprintf("tariff:rule:%s:%s", jurisdiction, classification)
}

// GetRule resolves through the chain: classification rule, then the
// jurisdiction default ("*" classification), then the global default.
// Resolving a fallback is logged but is not an error.
func (p *provider) GetRule(ctx context.Context, jurisdiction, classification string) (*Rule, error) {
	key := ruleCacheKey(jurisdiction, classification)
	if p.cache != nil {
		if raw, err := p.cache.GetString(ctx, key); err == nil {
			var r Rule
			if err := json.Unmarshal([]byte(raw), &r); err == nil {
				return &r, nil
			}
		}
	}

	rule, err := p.lookup(ctx, jurisdiction, classification)
	if err != nil {
		return nil, err
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("stored rule %s/%s: %w", jurisdiction, classification, err)
	}

	if p.cache != nil {
		if data, err := json.Marshal(rule); err == nil {
			if err := p.cache.SetString(ctx, key, string(data), cacheTTL); err != nil {
				log.Printf("failed to cache tariff rule %s/%s: %v", jurisdiction, classification, err)
			}
		}
	}
	return rule, nil
}

func (p *provider) lookup(ctx context.Context, jurisdiction, classification string) (*Rule, error) {
	row, err := p.repo.GetByKey(ctx, jurisdiction, classification)
	if err == nil {
		r := FromModel(row)
		return &r, nil
	}
	if err != repositories.ErrTariffRuleNotFound {
		return nil, fmt.Errorf("failed to get tariff rule: %w", err)
	}

	row, err = p.repo.GetByKey(ctx, jurisdiction, models.DefaultClassification)
	if err == nil {
		log.Printf("no tariff rule for %s/%s, using jurisdiction default", jurisdiction, classification)
		r := FromModel(row)
		r.Classification = classification
		return &r, nil
	}
	if err != repositories.ErrTariffRuleNotFound {
		return nil, fmt.Errorf("failed to get tariff rule: %w", err)
	}

	log.Printf("no tariff rule for jurisdiction %s, using global default", jurisdiction)
	r := GlobalDefaultRule
	r.Jurisdiction = jurisdiction
	r.Classification = classification
	return &r, nil
}

// FromModel converts a stored tariff rule row.
func FromModel(row *models.TariffRule) Rule {
	return Rule{
		Jurisdiction:       row.Jurisdiction,
		Classification:     row.Classification,
		DutyRate:           row.DutyRate,
		TaxRate:            row.TaxRate,
		DutyFreeThreshold:  row.DutyFreeThreshold,
		AgreementOrigin:    row.AgreementOrigin,
		AgreementReduction: row.AgreementReduction,
		ShippingCap:        row.ShippingCap,
	}
}

// ToModel converts a rule into its storage row.
func ToModel(r Rule) *models.TariffRule {
	return &models.TariffRule{
		Jurisdiction:       r.Jurisdiction,
		Classification:     r.Classification,
		DutyRate:           r.DutyRate,
		TaxRate:            r.TaxRate,
		DutyFreeThreshold:  r.DutyFreeThreshold,
		AgreementOrigin:    r.AgreementOrigin,
		AgreementReduction: r.AgreementReduction,
		ShippingCap:        r.ShippingCap,
	}
}
