package handlers

import (
	"relist/internal/services/quote"
	"relist/internal/utils/response"
	"relist/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	quoteService quote.Service
}

func NewQuoteHandler(quoteSvc quote.Service) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteSvc,
	}
}

// ComputeQuote projects realized profit for a given listing price.
func (h *QuoteHandler) ComputeQuote(c *fiber.Ctx) error {
	var req quote.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Quote(&req)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": v.Errors,
		})
	}

	result, err := h.quoteService.ComputeQuote(c.Context(), req)
	if err != nil {
		return engineError(c, err)
	}

	return response.Success(c, "Quote computed", fiber.Map{
		"quote": result,
		"summary": fiber.Map{
			"profit_domestic": round2(result.ProfitDomestic),
			"margin_percent":  round2(result.MarginPercent),
			"roi_percent":     round2(result.ROIPercent),
		},
	})
}

// RecommendPrice inverse-solves the listing price for a target margin.
func (h *QuoteHandler) RecommendPrice(c *fiber.Ctx) error {
	var req quote.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Recommend(&req)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": v.Errors,
		})
	}

	result, err := h.quoteService.RecommendPrice(c.Context(), req)
	if err != nil {
		return engineError(c, err)
	}

	return response.Success(c, "Price recommended", fiber.Map{
		"price": result.Price,
		"quote": result.Quote,
		"summary": fiber.Map{
			"price":          round2(result.Price),
			"margin_percent": round2(result.Quote.MarginPercent),
		},
	})
}

// CompareRegimes prices the item under both duty regimes and recommends a
// coupon strategy for the gap.
func (h *QuoteHandler) CompareRegimes(c *fiber.Ctx) error {
	var req quote.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Compare(&req)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": v.Errors,
		})
	}

	result, err := h.quoteService.CompareRegimes(c.Context(), req)
	if err != nil {
		return engineError(c, err)
	}

	return response.Success(c, "Regimes compared", fiber.Map{
		"comparison": result,
		"summary": fiber.Map{
			"ddu_price":       round2(result.DDUPrice),
			"ddp_price":       round2(result.DDPPrice),
			"delta_percent":   round1(result.DeltaPercent),
			"competitiveness": result.Competitiveness,
			"coupon":          result.Coupon.Type,
		},
	})
}
