package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlemens13/booking-api/internal/models"
)

type sweeperRepoStub struct {
	completed    int64
	completeErr  error
	due          []models.Booking
	markedOnce   map[string]bool
	completeArgs []time.Time
	windowFrom   time.Time
	windowTo     time.Time
}

func (s *sweeperRepoStub) CompletePast(ctx context.Context, cutoff time.Time) (int64, error) {
	s.completeArgs = append(s.completeArgs, cutoff)
	if s.completeErr != nil {
		return 0, s.completeErr
	}
	return s.completed, nil
}

func (s *sweeperRepoStub) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	s.windowFrom = from
	s.windowTo = to
	return s.due, nil
}

func (s *sweeperRepoStub) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	if s.markedOnce == nil {
		s.markedOnce = make(map[string]bool)
	}
	if s.markedOnce[id] {
		return false, nil
	}
	s.markedOnce[id] = true
	return true, nil
}

func newSweeper(repo *sweeperRepoStub, notifier *notifierStub, now time.Time) *SweeperService {
	var n reminderNotifier
	if notifier != nil {
		n = notifier
	}
	svc := NewSweeperService(repo, n, nil, nil, 15*time.Minute, 2)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSweepCompletesPastBookings(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)
	repo := &sweeperRepoStub{completed: 2}
	svc := newSweeper(repo, nil, now)

	svc.Sweep(context.Background())

	require.Len(t, repo.completeArgs, 1)
	assert.Equal(t, now, repo.completeArgs[0])
}

func TestSweepReminderWindow(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)
	repo := &sweeperRepoStub{}
	svc := newSweeper(repo, nil, now)

	svc.Sweep(context.Background())

	assert.Equal(t, now, repo.windowFrom)
	assert.Equal(t, now.Add(2*time.Hour), repo.windowTo)
}

func TestSweepSendsReminders(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)
	repo := &sweeperRepoStub{due: []models.Booking{
		{ID: "booking-1", Date: "2026-03-12", Time: "16:00", Email: "a@b.c"},
		{ID: "booking-2", Date: "2026-03-12", Time: "15:00", Email: "d@e.f"},
	}}
	notifier := &notifierStub{}
	svc := newSweeper(repo, notifier, now)

	svc.Sweep(context.Background())

	assert.ElementsMatch(t, []string{"booking-1", "booking-2"}, notifier.reminders)
}

func TestSweepReminderOneShot(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)
	repo := &sweeperRepoStub{due: []models.Booking{
		{ID: "booking-1", Date: "2026-03-12", Time: "16:00", Email: "a@b.c"},
	}}
	notifier := &notifierStub{}
	svc := newSweeper(repo, notifier, now)

	svc.Sweep(context.Background())
	svc.Sweep(context.Background())

	assert.Len(t, notifier.reminders, 1)
}

func TestSweepContinuesAfterCompleteError(t *testing.T) {
	now := time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC)
	repo := &sweeperRepoStub{
		completeErr: assert.AnError,
		due: []models.Booking{
			{ID: "booking-1", Date: "2026-03-12", Time: "16:00", Email: "a@b.c"},
		},
	}
	notifier := &notifierStub{}
	svc := newSweeper(repo, notifier, now)

	svc.Sweep(context.Background())

	assert.Len(t, notifier.reminders, 1)
}
