package handlers

import (
	"errors"
	"math"

	"relist/internal/services/exchange"
	"relist/internal/services/feeschedule"
	"relist/internal/services/pricing"
	"relist/internal/services/quote"
	"relist/internal/services/tariff"
	"relist/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// round2 rounds to display precision for money. Rounding happens only here
// at the presentation boundary, never inside the engine.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// engineError maps engine errors onto HTTP statuses.
func engineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, feeschedule.ErrNegativePrice),
		errors.Is(err, feeschedule.ErrInvalidSchedule),
		errors.Is(err, tariff.ErrInvalidRule),
		errors.Is(err, tariff.ErrNegativeBasis),
		errors.Is(err, exchange.ErrInvalidRate),
		errors.Is(err, exchange.ErrInvalidMargin),
		errors.Is(err, quote.ErrMissingMarketplace),
		errors.Is(err, quote.ErrMissingJurisdiction),
		errors.Is(err, quote.ErrMissingCurrency):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, pricing.ErrNonConvergent):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, feeschedule.ErrNoSchedule),
		errors.Is(err, tariff.ErrNoRule),
		errors.Is(err, exchange.ErrNoQuote):
		return response.NotFound(c, err.Error())
	default:
		return response.ServerError(c, err.Error())
	}
}
