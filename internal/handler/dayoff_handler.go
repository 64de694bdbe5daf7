package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
)

type dayOffService interface {
	List(ctx context.Context, date string) ([]models.DayOff, error)
	Create(ctx context.Context, req models.CreateDayOffRequest) (*models.DayOff, error)
	Delete(ctx context.Context, id string) error
}

// DayOffHandler exposes day off endpoints.
type DayOffHandler struct {
	service dayOffService
}

// NewDayOffHandler builds a new handler.
func NewDayOffHandler(service dayOffService) *DayOffHandler {
	return &DayOffHandler{service: service}
}

// List godoc
// @Summary List day offs
// @Tags DayOffs
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /dayoffs [get]
func (h *DayOffHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Block a day for booking
// @Tags DayOffs
// @Accept json
// @Produce json
// @Param payload body models.CreateDayOffRequest true "Day off payload"
// @Success 201 {object} response.Envelope
// @Router /admin/dayoffs [post]
func (h *DayOffHandler) Create(c *gin.Context) {
	var req models.CreateDayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid day off payload"))
		return
	}

	dayOff, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dayOff)
}

// Delete godoc
// @Summary Remove a day off block
// @Tags DayOffs
// @Param id path string true "Day off ID"
// @Success 204
// @Router /admin/dayoffs/{id} [delete]
func (h *DayOffHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
