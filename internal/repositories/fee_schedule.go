package repositories

import (
	"context"
	"fmt"

	"relist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeeScheduleRepository defines storage operations for fee schedules.
type FeeScheduleRepository interface {
	GetByKey(ctx context.Context, marketplace, category string) (*models.FeeSchedule, error)
	Upsert(ctx context.Context, schedule *models.FeeSchedule) error
	List(ctx context.Context, marketplace string) ([]models.FeeSchedule, error)
}

type feeScheduleRepository struct {
	db *gorm.DB
}

func NewFeeScheduleRepository(db *gorm.DB) FeeScheduleRepository {
	return &feeScheduleRepository{db: db}
}

func (r *feeScheduleRepository) GetByKey(ctx context.Context, marketplace, category string) (*models.FeeSchedule, error) {
	var schedule models.FeeSchedule
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("marketplace = ? AND category = ?", marketplace, category).
		First(&schedule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFeeScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get fee schedule: %w", err)
	}
	return &schedule, nil
}

// Upsert replaces the schedule and its tiers for the (marketplace, category)
// key in a single transaction.
func (r *feeScheduleRepository) Upsert(ctx context.Context, schedule *models.FeeSchedule) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FeeSchedule
		err := tx.Where("marketplace = ? AND category = ?", schedule.Marketplace, schedule.Category).
			First(&existing).Error
		if err == nil {
			if err := tx.Where("fee_schedule_id = ?", existing.ID).
				Delete(&models.CommissionTier{}).Error; err != nil {
				return err
			}
			schedule.ID = existing.ID
			for i := range schedule.Tiers {
				schedule.Tiers[i].FeeScheduleID = existing.ID
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(schedule).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(schedule).Error
	})
	if err != nil {
		return fmt.Errorf("failed to upsert fee schedule: %w", err)
	}
	return nil
}

func (r *feeScheduleRepository) List(ctx context.Context, marketplace string) ([]models.FeeSchedule, error) {
	var schedules []models.FeeSchedule
	query := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
	if marketplace != "" {
		query = query.Where("marketplace = ?", marketplace)
	}
	if err := query.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list fee schedules: %w", err)
	}
	return schedules, nil
}
