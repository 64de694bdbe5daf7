package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
)

type barberService interface {
	List(ctx context.Context) ([]models.Barber, error)
	Get(ctx context.Context, id string) (*models.Barber, error)
	UpdateWorkHours(ctx context.Context, id string, req models.WorkHoursRequest) (*models.Barber, error)
}

// BarberHandler exposes barber endpoints.
type BarberHandler struct {
	service barberService
}

// NewBarberHandler builds a new handler.
func NewBarberHandler(service barberService) *BarberHandler {
	return &BarberHandler{service: service}
}

// List godoc
// @Summary List barbers
// @Tags Barbers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /barbers [get]
func (h *BarberHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get a barber
// @Tags Barbers
// @Produce json
// @Param id path string true "Barber ID"
// @Success 200 {object} response.Envelope
// @Router /barbers/{id} [get]
func (h *BarberHandler) Get(c *gin.Context) {
	barber, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, barber, nil)
}

// UpdateWorkHours godoc
// @Summary Replace a barber's working-hours policy
// @Tags Barbers
// @Accept json
// @Produce json
// @Param id path string true "Barber ID"
// @Param payload body models.WorkHoursRequest true "Work hours payload"
// @Success 200 {object} response.Envelope
// @Router /admin/barbers/{id}/work-hours [put]
func (h *BarberHandler) UpdateWorkHours(c *gin.Context) {
	var req models.WorkHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid work hours payload"))
		return
	}

	barber, err := h.service.UpdateWorkHours(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, barber, nil)
}
