package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlemens13/booking-api/internal/models"
	"github.com/gentlemens13/booking-api/internal/repository"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type bookingRepoStub struct {
	bookings  map[string]models.Booking
	createErr error
	reschErr  error
}

func (s *bookingRepoStub) Create(ctx context.Context, b *models.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.bookings == nil {
		s.bookings = make(map[string]models.Booking)
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if b, ok := s.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *bookingRepoStub) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	var result []models.Booking
	for _, b := range s.bookings {
		result = append(result, b)
	}
	return result, nil
}

func (s *bookingRepoStub) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (bool, error) {
	b, ok := s.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = status
	s.bookings[id] = b
	return true, nil
}

func (s *bookingRepoStub) Reject(ctx context.Context, id, reason string) (bool, error) {
	b, ok := s.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = models.BookingStatusRejected
	b.Comment = reason
	s.bookings[id] = b
	return true, nil
}

func (s *bookingRepoStub) Reschedule(ctx context.Context, id, date, clock string) (bool, error) {
	if s.reschErr != nil {
		return false, s.reschErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return false, nil
	}
	b.Date = date
	b.Time = clock
	b.Status = models.BookingStatusApproved
	s.bookings[id] = b
	return true, nil
}

func (s *bookingRepoStub) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.bookings[id]; !ok {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}

func (s *bookingRepoStub) SetPhotoURL(ctx context.Context, id, photoURL string) (bool, error) {
	b, ok := s.bookings[id]
	if !ok {
		return false, nil
	}
	b.PhotoURL = &photoURL
	s.bookings[id] = b
	return true, nil
}

type slotCheckerStub struct {
	offered     bool
	reason      string
	invalidated []string
}

func (s *slotCheckerStub) IsOffered(ctx context.Context, barberID *string, date, clock string) (bool, string, error) {
	return s.offered, s.reason, nil
}

func (s *slotCheckerStub) InvalidateAvailability(ctx context.Context, barberID string) {
	s.invalidated = append(s.invalidated, barberID)
}

type notifierStub struct {
	received    []string
	approved    []string
	rejected    []string
	rescheduled []string
	reminders   []string
}

func (n *notifierStub) BookingReceived(b *models.Booking)  { n.received = append(n.received, b.ID) }
func (n *notifierStub) BookingApproved(b *models.Booking)  { n.approved = append(n.approved, b.ID) }
func (n *notifierStub) BookingRejected(b *models.Booking, reason string, alternatives []models.SlotAlternative) {
	n.rejected = append(n.rejected, b.ID)
}
func (n *notifierStub) BookingRescheduled(b *models.Booking) {
	n.rescheduled = append(n.rescheduled, b.ID)
}
func (n *notifierStub) BookingReminder(b *models.Booking) { n.reminders = append(n.reminders, b.ID) }

func validBookingRequest() models.CreateBookingRequest {
	id := "barber-1"
	return models.CreateBookingRequest{
		BarberID: &id,
		Date:     "2026-03-12",
		Time:     "09:15",
		FullName: "Ivan",
		Email:    "ivan@example.com",
		Phone:    "+15550001",
		Service:  "haircut",
	}
}

func newBookingService(repo *bookingRepoStub, barbers *barberReaderStub, checker *slotCheckerStub, notifier *notifierStub) *BookingService {
	if repo == nil {
		repo = &bookingRepoStub{}
	}
	if barbers == nil {
		barbers = &barberReaderStub{barbers: map[string]models.Barber{"barber-1": testBarber()}}
	}
	if checker == nil {
		checker = &slotCheckerStub{offered: true}
	}
	var n bookingNotifier
	if notifier != nil {
		n = notifier
	}
	return NewBookingService(repo, barbers, checker, n, nil, validator.New(), nil)
}

func TestBookingSubmitPending(t *testing.T) {
	repo := &bookingRepoStub{}
	checker := &slotCheckerStub{offered: true}
	notifier := &notifierStub{}
	svc := newBookingService(repo, nil, checker, notifier)

	booking, err := svc.Submit(context.Background(), validBookingRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.True(t, booking.SendReminder)
	assert.Len(t, notifier.received, 1)
	assert.Equal(t, []string{"barber-1"}, checker.invalidated)
}

func TestBookingSubmitSlotConflict(t *testing.T) {
	repo := &bookingRepoStub{createErr: repository.ErrSlotTaken}
	svc := newBookingService(repo, nil, nil, nil)

	_, err := svc.Submit(context.Background(), validBookingRequest(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotConflict.Code, appErrors.FromError(err).Code)
}

func TestBookingSubmitPolicyBlocked(t *testing.T) {
	checker := &slotCheckerStub{offered: false, reason: "closed on Sundays"}
	svc := newBookingService(nil, nil, checker, nil)

	_, err := svc.Submit(context.Background(), validBookingRequest(), nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPolicyBlocked.Code, appErr.Code)
	assert.Equal(t, "closed on Sundays", appErr.Message)
}

func TestBookingSubmitOnlineBookingDisabled(t *testing.T) {
	barber := testBarber()
	barber.AcceptsOnlineBooking = false
	barbers := &barberReaderStub{barbers: map[string]models.Barber{"barber-1": barber}}
	svc := newBookingService(nil, barbers, nil, nil)

	_, err := svc.Submit(context.Background(), validBookingRequest(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPolicyBlocked.Code, appErrors.FromError(err).Code)
}

func TestBookingSubmitUnknownBarber(t *testing.T) {
	barbers := &barberReaderStub{barbers: map[string]models.Barber{}}
	svc := newBookingService(nil, barbers, nil, nil)

	_, err := svc.Submit(context.Background(), validBookingRequest(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBookingSubmitManualApproved(t *testing.T) {
	repo := &bookingRepoStub{}
	notifier := &notifierStub{}
	svc := newBookingService(repo, nil, nil, notifier)

	booking, err := svc.SubmitManual(context.Background(), validBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, booking.Status)
	assert.Len(t, notifier.approved, 1)
	assert.Empty(t, notifier.received)
}

func TestBookingApproveOnlyPending(t *testing.T) {
	repo := &bookingRepoStub{bookings: map[string]models.Booking{
		"booking-1": {ID: "booking-1", Status: models.BookingStatusPending, Email: "a@b.c"},
		"booking-2": {ID: "booking-2", Status: models.BookingStatusRejected},
	}}
	notifier := &notifierStub{}
	svc := newBookingService(repo, nil, nil, notifier)

	booking, err := svc.Approve(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, booking.Status)
	assert.Len(t, notifier.approved, 1)

	_, err = svc.Approve(context.Background(), "booking-2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestBookingRejectStoresReason(t *testing.T) {
	repo := &bookingRepoStub{bookings: map[string]models.Booking{
		"booking-1": {ID: "booking-1", Status: models.BookingStatusPending},
	}}
	notifier := &notifierStub{}
	svc := newBookingService(repo, nil, nil, notifier)

	booking, err := svc.Reject(context.Background(), "booking-1", models.RejectBookingRequest{
		Reason:       "fully booked",
		Alternatives: []models.SlotAlternative{{Date: "2026-03-13", Time: "10:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, booking.Status)
	assert.Equal(t, "fully booked", booking.Comment)
	assert.Len(t, notifier.rejected, 1)
}

func TestBookingRescheduleConflict(t *testing.T) {
	repo := &bookingRepoStub{
		bookings: map[string]models.Booking{
			"booking-1": {ID: "booking-1", Status: models.BookingStatusApproved},
		},
		reschErr: repository.ErrSlotTaken,
	}
	svc := newBookingService(repo, nil, nil, nil)

	_, err := svc.Reschedule(context.Background(), "booking-1", models.RescheduleBookingRequest{
		Date: "2026-03-13",
		Time: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotConflict.Code, appErrors.FromError(err).Code)
}

func TestBookingRescheduleConfirmsPending(t *testing.T) {
	repo := &bookingRepoStub{bookings: map[string]models.Booking{
		"booking-1": {ID: "booking-1", Status: models.BookingStatusPending},
	}}
	notifier := &notifierStub{}
	svc := newBookingService(repo, nil, nil, notifier)

	booking, err := svc.Reschedule(context.Background(), "booking-1", models.RescheduleBookingRequest{
		Date: "2026-03-13",
		Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, booking.Status)
	assert.Equal(t, models.BookingStatusApproved, repo.bookings["booking-1"].Status)
	assert.Len(t, notifier.rescheduled, 1)
}

func TestBookingRescheduleRevivesRejected(t *testing.T) {
	repo := &bookingRepoStub{bookings: map[string]models.Booking{
		"booking-1": {ID: "booking-1", Status: models.BookingStatusRejected, Comment: "fully booked"},
	}}
	svc := newBookingService(repo, nil, nil, nil)

	booking, err := svc.Reschedule(context.Background(), "booking-1", models.RescheduleBookingRequest{
		Date: "2026-03-14",
		Time: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, booking.Status)
	assert.Equal(t, "2026-03-14", repo.bookings["booking-1"].Date)
	assert.Equal(t, models.BookingStatusApproved, repo.bookings["booking-1"].Status)
}

func TestBookingRescheduleCompletedRejected(t *testing.T) {
	repo := &bookingRepoStub{bookings: map[string]models.Booking{
		"booking-1": {ID: "booking-1", Status: models.BookingStatusCompleted},
	}}
	svc := newBookingService(repo, nil, nil, nil)

	_, err := svc.Reschedule(context.Background(), "booking-1", models.RescheduleBookingRequest{
		Date: "2026-03-14",
		Time: "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestBookingGetNotFound(t *testing.T) {
	svc := newBookingService(&bookingRepoStub{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "booking-99")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
