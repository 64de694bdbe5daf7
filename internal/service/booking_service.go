package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
	"github.com/gentlemens13/booking-api/internal/repository"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type bookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (bool, error)
	Reject(ctx context.Context, id, reason string) (bool, error)
	Reschedule(ctx context.Context, id, date, clock string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetPhotoURL(ctx context.Context, id, photoURL string) (bool, error)
}

type bookingBarberReader interface {
	FindByID(ctx context.Context, id string) (*models.Barber, error)
}

type slotChecker interface {
	IsOffered(ctx context.Context, barberID *string, date, clock string) (bool, string, error)
	InvalidateAvailability(ctx context.Context, barberID string)
}

type bookingNotifier interface {
	BookingReceived(b *models.Booking)
	BookingApproved(b *models.Booking)
	BookingRejected(b *models.Booking, reason string, alternatives []models.SlotAlternative)
	BookingRescheduled(b *models.Booking)
}

// BookingService implements booking admission and lifecycle transitions.
type BookingService struct {
	repo      bookingRepository
	barbers   bookingBarberReader
	schedule  slotChecker
	notifier  bookingNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(repo bookingRepository, barbers bookingBarberReader, schedule slotChecker, notifier bookingNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		repo:      repo,
		barbers:   barbers,
		schedule:  schedule,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Submit admits an online booking request as pending. The slot must be
// offered by the schedule; the unique index settles races on insert.
func (s *BookingService) Submit(ctx context.Context, req models.CreateBookingRequest, userID *string) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	if req.BarberID != nil {
		barber, err := s.barbers.FindByID(ctx, *req.BarberID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load barber")
		}
		if barber == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
		}
		if !barber.AcceptsOnlineBooking {
			return nil, appErrors.Clone(appErrors.ErrPolicyBlocked, "barber does not accept online booking")
		}
	}

	booking, err := s.admit(ctx, req, userID, models.BookingStatusPending)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBookingCreated("online")
	if s.notifier != nil {
		s.notifier.BookingReceived(booking)
	}
	return booking, nil
}

// SubmitManual admits an admin-entered booking directly as approved.
func (s *BookingService) SubmitManual(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	booking, err := s.admit(ctx, req, nil, models.BookingStatusApproved)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBookingCreated("manual")
	if s.notifier != nil {
		s.notifier.BookingApproved(booking)
	}
	return booking, nil
}

func (s *BookingService) admit(ctx context.Context, req models.CreateBookingRequest, userID *string, status models.BookingStatus) (*models.Booking, error) {
	offered, reason, err := s.schedule.IsOffered(ctx, req.BarberID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, appErrors.Clone(appErrors.ErrPolicyBlocked, reason)
	}

	sendReminder := true
	if req.SendReminder != nil {
		sendReminder = *req.SendReminder
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:           uuid.NewString(),
		UserID:       userID,
		BarberID:     req.BarberID,
		Date:         req.Date,
		Time:         req.Time,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Service:      req.Service,
		Comment:      req.Comment,
		SendReminder: sendReminder,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.metrics.RecordSlotConflict()
			return nil, appErrors.ErrSlotConflict
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}

	s.invalidate(ctx, booking.BarberID)
	return booking, nil
}

// List returns bookings matching the filter.
func (s *BookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	return items, nil
}

// Get fetches one booking.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get booking")
	}
	if booking == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
	}
	return booking, nil
}

// Approve transitions a pending booking to approved.
func (s *BookingService) Approve(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only pending bookings can be approved")
	}

	if _, err := s.repo.UpdateStatus(ctx, id, models.BookingStatusApproved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve booking")
	}
	booking.Status = models.BookingStatusApproved

	if s.notifier != nil {
		s.notifier.BookingApproved(booking)
	}
	return booking, nil
}

// Reject transitions a booking to rejected, recording the reason. The
// alternatives are informational only and reserve nothing.
func (s *BookingService) Reject(ctx context.Context, id string, req models.RejectBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rejection payload")
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only active bookings can be rejected")
	}

	if _, err := s.repo.Reject(ctx, id, req.Reason); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject booking")
	}
	booking.Status = models.BookingStatusRejected
	booking.Comment = req.Reason

	s.invalidate(ctx, booking.BarberID)
	if s.notifier != nil {
		s.notifier.BookingRejected(booking, req.Reason, req.Alternatives)
	}
	return booking, nil
}

// Reschedule moves a booking to a new offered slot and confirms it as
// approved. Rejected bookings may be revived this way, which is how an admin
// follows up a rejection whose alternatives the customer accepted.
func (s *BookingService) Reschedule(ctx context.Context, id string, req models.RescheduleBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule payload")
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, appErrors.Clone(appErrors.ErrConflict, "completed bookings cannot be rescheduled")
	}

	offered, reason, err := s.schedule.IsOffered(ctx, booking.BarberID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, appErrors.Clone(appErrors.ErrPolicyBlocked, reason)
	}

	if _, err := s.repo.Reschedule(ctx, id, req.Date, req.Time); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.metrics.RecordSlotConflict()
			return nil, appErrors.ErrSlotConflict
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reschedule booking")
	}
	booking.Date = req.Date
	booking.Time = req.Time
	booking.Status = models.BookingStatusApproved

	s.invalidate(ctx, booking.BarberID)
	if s.notifier != nil {
		s.notifier.BookingRescheduled(booking)
	}
	return booking, nil
}

// Delete removes a booking entirely.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete booking")
	}
	s.invalidate(ctx, booking.BarberID)
	return nil
}

// AttachPhoto links an uploaded photo key to a booking.
func (s *BookingService) AttachPhoto(ctx context.Context, id, photoKey string) (*models.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.SetPhotoURL(ctx, id, photoKey); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to attach photo")
	}
	booking.PhotoURL = &photoKey
	return booking, nil
}

func (s *BookingService) invalidate(ctx context.Context, barberID *string) {
	if s.schedule == nil {
		return
	}
	id := ""
	if barberID != nil {
		id = *barberID
	}
	s.schedule.InvalidateAvailability(ctx, id)
}
