package handlers

import (
	"time"

	"relist/internal/repositories"
	"relist/internal/services/record"
	"relist/internal/utils/pagination"
	"relist/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RecordHandler struct {
	recordService record.Service
}

func NewRecordHandler(recordSvc record.Service) *RecordHandler {
	return &RecordHandler{
		recordService: recordSvc,
	}
}

// ListRecords returns a paginated record listing for reporting.
func (h *RecordHandler) ListRecords(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	filter := repositories.RecordFilter{
		Kind:         c.Query("kind"),
		Marketplace:  c.Query("marketplace"),
		Jurisdiction: c.Query("jurisdiction"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t
		}
	}

	page, err := h.recordService.List(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	p.Total = page.Total
	return c.JSON(pagination.Response(p, page.Records))
}

// GetRecord returns one stored calculation record.
func (h *RecordHandler) GetRecord(c *fiber.Ctx) error {
	rec, err := h.recordService.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == repositories.ErrRecordNotFound {
			return response.NotFound(c, "record not found")
		}
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "Record found", rec)
}
