package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/service"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
)

type exportService interface {
	ExportDay(ctx context.Context, date, format string) (*service.ExportResult, error)
}

// ExportHandler exposes schedule export downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Download the booking schedule for a date
// @Tags Bookings
// @Produce text/csv,application/pdf
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "Format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Router /admin/bookings/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	format := c.DefaultQuery("format", "csv")

	result, err := h.service.ExportDay(c.Request.Context(), date, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Content)
}
