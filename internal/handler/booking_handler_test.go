package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type bookingServiceMock struct {
	submitResp *models.Booking
	submitErr  error
	listResp   []models.Booking
	getResp    *models.Booking
	getErr     error
}

func (m *bookingServiceMock) Submit(ctx context.Context, req models.CreateBookingRequest, userID *string) (*models.Booking, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submitResp, nil
}

func (m *bookingServiceMock) SubmitManual(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	return m.submitResp, m.submitErr
}

func (m *bookingServiceMock) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	return m.listResp, nil
}

func (m *bookingServiceMock) Get(ctx context.Context, id string) (*models.Booking, error) {
	return m.getResp, m.getErr
}

func (m *bookingServiceMock) Approve(ctx context.Context, id string) (*models.Booking, error) {
	return m.getResp, m.getErr
}

func (m *bookingServiceMock) Reject(ctx context.Context, id string, req models.RejectBookingRequest) (*models.Booking, error) {
	return m.getResp, m.getErr
}

func (m *bookingServiceMock) Reschedule(ctx context.Context, id string, req models.RescheduleBookingRequest) (*models.Booking, error) {
	return m.getResp, m.getErr
}

func (m *bookingServiceMock) Delete(ctx context.Context, id string) error {
	return m.getErr
}

func TestBookingHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &bookingServiceMock{submitResp: &models.Booking{ID: "booking-1", Status: models.BookingStatusPending}}
	handler := NewBookingHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.CreateBookingRequest{
		Date: "2026-03-12", Time: "09:15",
		FullName: "Ivan", Email: "ivan@example.com", Phone: "+15550001", Service: "haircut",
	})
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(&bookingServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerCreateSlotConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(&bookingServiceMock{submitErr: appErrors.ErrSlotConflict})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(models.CreateBookingRequest{
		Date: "2026-03-12", Time: "09:15",
		FullName: "Ivan", Email: "ivan@example.com", Phone: "+15550001", Service: "haircut",
	})
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(&bookingServiceMock{getErr: appErrors.ErrNotFound})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/bookings/booking-99", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "booking-99"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
