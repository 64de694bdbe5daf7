package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
)

type openDayService interface {
	List(ctx context.Context) ([]models.OpenDay, error)
	Enable(ctx context.Context, req models.OpenDayRequest) (*models.OpenDay, error)
	Disable(ctx context.Context, date string) error
	AvailableTimes(ctx context.Context, date string) ([]string, error)
}

// OpenDayHandler exposes open day endpoints.
type OpenDayHandler struct {
	service openDayService
}

// NewOpenDayHandler builds a new handler.
func NewOpenDayHandler(service openDayService) *OpenDayHandler {
	return &OpenDayHandler{service: service}
}

// List godoc
// @Summary List upcoming open days
// @Tags OpenDays
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /open-days [get]
func (h *OpenDayHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Times godoc
// @Summary List free times on an open day
// @Tags OpenDays
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /open-days/{date}/times [get]
func (h *OpenDayHandler) Times(c *gin.Context) {
	times, err := h.service.AvailableTimes(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, times, nil)
}

// Enable godoc
// @Summary Open a day for booking
// @Tags OpenDays
// @Accept json
// @Produce json
// @Param payload body models.OpenDayRequest true "Open day payload"
// @Success 201 {object} response.Envelope
// @Router /admin/open-days [post]
func (h *OpenDayHandler) Enable(c *gin.Context) {
	var req models.OpenDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid open day payload"))
		return
	}

	day, err := h.service.Enable(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, day)
}

// Disable godoc
// @Summary Close a day for booking
// @Tags OpenDays
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204
// @Router /admin/open-days/{date} [delete]
func (h *OpenDayHandler) Disable(c *gin.Context) {
	if err := h.service.Disable(c.Request.Context(), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
