package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
)

type availabilityService interface {
	DayAvailability(ctx context.Context, barberID, date string) (*models.DayAvailability, error)
}

// AvailabilityHandler exposes the slot calendar.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler builds a new handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Slots godoc
// @Summary List a barber's slots for a date
// @Tags Availability
// @Produce json
// @Param id path string true "Barber ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /barbers/{id}/slots [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}

	availability, err := h.service.DayAvailability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}
