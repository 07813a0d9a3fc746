// Package record persists completed computations as append-only rows for
// later aggregate reporting.
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"relist/internal/models"
	"relist/internal/repositories"
	"relist/internal/services/quote"

	"github.com/google/uuid"
)

// Page is one page of records with the listing total.
type Page struct {
	Records []models.CalculationRecord `json:"records"`
	Total   int64                      `json:"total"`
}

// Service stores and lists calculation records.
type Service interface {
	quote.Recorder
	Get(ctx context.Context, id string) (*models.CalculationRecord, error)
	List(ctx context.Context, filter repositories.RecordFilter, limit, offset int) (*Page, error)
}

type service struct {
	repo repositories.CalculationRecordRepository
}

func NewService(repo repositories.CalculationRecordRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// SaveComparison snapshots the request and result of a dual-regime
// comparison. Every call creates a new record.
func (s *service) SaveComparison(ctx context.Context, req quote.CompareRequest, result *quote.DualRegimeResult) (string, error) {
	inputs, err := toJSON(req)
	if err != nil {
		return "", err
	}
	snapshot, err := toJSON(result)
	if err != nil {
		return "", err
	}

	rec := &models.CalculationRecord{
		ID:           uuid.NewString(),
		Kind:         models.CalculationKindCompare,
		Marketplace:  req.Marketplace,
		Category:     req.Category,
		Jurisdiction: req.Jurisdiction,
		Origin:       req.OriginCountry,
		Currency:     req.Currency,
		Inputs:       inputs,
		Result:       snapshot,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.CalculationRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter repositories.RecordFilter, limit, offset int) (*Page, error) {
	records, total, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Page{Records: records, Total: total}, nil
}

func toJSON(v interface{}) (models.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot value: %w", err)
	}
	var m models.JSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to snapshot value: %w", err)
	}
	return m, nil
}
