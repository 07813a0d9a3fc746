package handlers

import (
	"fmt"
	"time"

	"relist/internal/repositories"
	"relist/internal/services/exchange"
	"relist/internal/services/feeschedule"
	"relist/internal/services/tariff"
	"relist/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler manages the rule tables the engine computes from.
type AdminHandler struct {
	feeRepo    repositories.FeeScheduleRepository
	tariffRepo repositories.TariffRuleRepository
	cache      repositories.CacheRepository
	rates      *exchange.CachedProvider
}

func NewAdminHandler(
	feeRepo repositories.FeeScheduleRepository,
	tariffRepo repositories.TariffRuleRepository,
	cache repositories.CacheRepository,
	rates *exchange.CachedProvider,
) *AdminHandler {
	return &AdminHandler{
		feeRepo:    feeRepo,
		tariffRepo: tariffRepo,
		cache:      cache,
		rates:      rates,
	}
}

// UpsertFeeSchedule stores a fee schedule and invalidates its cache entry.
func (h *AdminHandler) UpsertFeeSchedule(c *fiber.Ctx) error {
	var s feeschedule.Schedule
	if err := c.BodyParser(&s); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if s.Marketplace == "" || s.Category == "" {
		return response.BadRequest(c, "marketplace and category are required")
	}
	if err := s.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.feeRepo.Upsert(c.Context(), feeschedule.ToModel(s)); err != nil {
		return response.ServerError(c, err.Error())
	}
	if h.cache != nil {
		// Failed invalidations age out on their own TTL.
		key := fmt.Sprintf("fees:schedule:%s:%s", s.Marketplace, s.Category)
		_ = h.cache.Delete(c.Context(), key)
	}
	return response.Success(c, "Fee schedule saved", s)
}

// UpsertTariffRule stores a tariff rule and invalidates its cache entry.
func (h *AdminHandler) UpsertTariffRule(c *fiber.Ctx) error {
	var r tariff.Rule
	if err := c.BodyParser(&r); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if r.Jurisdiction == "" || r.Classification == "" {
		return response.BadRequest(c, "jurisdiction and classification are required")
	}
	if err := r.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.tariffRepo.Upsert(c.Context(), tariff.ToModel(r)); err != nil {
		return response.ServerError(c, err.Error())
	}
	if h.cache != nil {
		key := fmt.Sprintf("tariff:rule:%s:%s", r.Jurisdiction, r.Classification)
		_ = h.cache.Delete(c.Context(), key)
	}
	return response.Success(c, "Tariff rule saved", r)
}

// PublishExchangeQuote stores a fresh operator-quoted exchange rate.
func (h *AdminHandler) PublishExchangeQuote(c *fiber.Ctx) error {
	var q exchange.Quote
	if err := c.BodyParser(&q); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if q.Currency == "" {
		return response.BadRequest(c, "currency is required")
	}

	if err := h.rates.PublishQuote(c.Context(), q, time.Hour); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "Exchange quote published", q)
}
