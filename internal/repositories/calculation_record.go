package repositories

import (
	"context"
	"fmt"
	"time"

	"relist/internal/models"

	"gorm.io/gorm"
)

// RecordFilter narrows record listings for reporting.
type RecordFilter struct {
	Kind         string
	Marketplace  string
	Jurisdiction string
	From         time.Time
	To           time.Time
}

// CalculationRecordRepository defines storage operations for calculation
// records. Records are append-only: there is no update.
type CalculationRecordRepository interface {
	Create(ctx context.Context, record *models.CalculationRecord) error
	GetByID(ctx context.Context, id string) (*models.CalculationRecord, error)
	List(ctx context.Context, filter RecordFilter, limit, offset int) ([]models.CalculationRecord, int64, error)
}

type calculationRecordRepository struct {
	db *gorm.DB
}

func NewCalculationRecordRepository(db *gorm.DB) CalculationRecordRepository {
	return &calculationRecordRepository{db: db}
}

func (r *calculationRecordRepository) Create(ctx context.Context, record *models.CalculationRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create calculation record: %w", err)
	}
	return nil
}

func (r *calculationRecordRepository) GetByID(ctx context.Context, id string) (*models.CalculationRecord, error) {
	var record models.CalculationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get calculation record: %w", err)
	}
	return &record, nil
}

func (r *calculationRecordRepository) List(ctx context.Context, filter RecordFilter, limit, offset int) ([]models.CalculationRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CalculationRecord{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Marketplace != "" {
		query = query.Where("marketplace = ?", filter.Marketplace)
	}
	if filter.Jurisdiction != "" {
		query = query.Where("jurisdiction = ?", filter.Jurisdiction)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count calculation records: %w", err)
	}

	var records []models.CalculationRecord
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list calculation records: %w", err)
	}
	return records, total, nil
}
