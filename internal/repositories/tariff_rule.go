package repositories

import (
	"context"
	"fmt"

	"relist/internal/models"

	"gorm.io/gorm"
)

// TariffRuleRepository defines storage operations for tariff rules.
type TariffRuleRepository interface {
	GetByKey(ctx context.Context, jurisdiction, classification string) (*models.TariffRule, error)
	Upsert(ctx context.Context, rule *models.TariffRule) error
	List(ctx context.Context, jurisdiction string) ([]models.TariffRule, error)
}

type tariffRuleRepository struct {
	db *gorm.DB
}

func NewTariffRuleRepository(db *gorm.DB) TariffRuleRepository {
	return &tariffRuleRepository{db: db}
}

func (r *tariffRuleRepository) GetByKey(ctx context.Context, jurisdiction, classification string) (*models.TariffRule, error) {
	var rule models.TariffRule
	err := r.db.WithContext(ctx).
		Where("jurisdiction = ? AND classification = ?", jurisdiction, classification).
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTariffRuleNotFound
		}
		return nil, fmt.Errorf("failed to get tariff rule: %w", err)
	}
	return &rule, nil
}

func (r *tariffRuleRepository) Upsert(ctx context.Context, rule *models.TariffRule) error {
	var existing models.TariffRule
	err := r.db.WithContext(ctx).
		Where("jurisdiction = ? AND classification = ?", rule.Jurisdiction, rule.Classification).
		First(&existing).Error
	if err == nil {
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to upsert tariff rule: %w", err)
	}
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to upsert tariff rule: %w", err)
	}
	return nil
}

func (r *tariffRuleRepository) List(ctx context.Context, jurisdiction string) ([]models.TariffRule, error) {
	var rules []models.TariffRule
	query := r.db.WithContext(ctx)
	if jurisdiction != "" {
		query = query.Where("jurisdiction = ?", jurisdiction)
	}
	if err := query.Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list tariff rules: %w", err)
	}
	return rules, nil
}
