package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
)

type bookingService interface {
	Submit(ctx context.Context, req models.CreateBookingRequest, userID *string) (*models.Booking, error)
	SubmitManual(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Approve(ctx context.Context, id string) (*models.Booking, error)
	Reject(ctx context.Context, id string, req models.RejectBookingRequest) (*models.Booking, error)
	Reschedule(ctx context.Context, id string, req models.RescheduleBookingRequest) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}

// BookingHandler exposes booking endpoints.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler builds a new handler.
func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create godoc
// @Summary Submit a booking request
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body models.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	var userID *string
	if claims := claimsFromContext(c); claims != nil && claims.UserID != "" {
		userID = &claims.UserID
	}

	booking, err := h.service.Submit(c.Request.Context(), req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// CreateManual godoc
// @Summary Create a booking on behalf of a customer
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body models.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /admin/bookings/manual [post]
func (h *BookingHandler) CreateManual(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	booking, err := h.service.SubmitManual(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// List godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Param status query string false "Filter by status"
// @Param barberId query string false "Filter by barber"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /admin/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	filter := models.BookingFilter{
		Status:   models.BookingStatus(c.Query("status")),
		BarberID: c.Query("barberId"),
		Date:     c.Query("date"),
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get a booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Router /admin/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Approve godoc
// @Summary Approve a pending booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Router /admin/bookings/{id}/approve [patch]
func (h *BookingHandler) Approve(c *gin.Context) {
	booking, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Reject godoc
// @Summary Reject a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param payload body models.RejectBookingRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Router /admin/bookings/{id}/reject [patch]
func (h *BookingHandler) Reject(c *gin.Context) {
	var req models.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rejection payload"))
		return
	}

	booking, err := h.service.Reject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Reschedule godoc
// @Summary Move a booking to a new slot
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param payload body models.RescheduleBookingRequest true "Reschedule payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/bookings/{id}/reschedule [patch]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req models.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reschedule payload"))
		return
	}

	booking, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Delete godoc
// @Summary Delete a booking
// @Tags Bookings
// @Param id path string true "Booking ID"
// @Success 204
// @Router /admin/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
