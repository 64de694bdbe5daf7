package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
)

type sweeperBookingRepository interface {
	CompletePast(ctx context.Context, cutoff time.Time) (int64, error)
	ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	MarkReminderSent(ctx context.Context, id string) (bool, error)
}

type reminderNotifier interface {
	BookingReminder(b *models.Booking)
}

// SweeperService runs the periodic booking lifecycle pass: auto-completing
// past approved bookings and dispatching upcoming-appointment reminders.
type SweeperService struct {
	repo     sweeperBookingRepository
	notifier reminderNotifier
	metrics  *MetricsService
	logger   *zap.Logger

	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

// NewSweeperService constructs a SweeperService. reminderHours bounds the
// look-ahead window for reminders.
func NewSweeperService(repo sweeperBookingRepository, notifier reminderNotifier, metrics *MetricsService, logger *zap.Logger, interval time.Duration, reminderHours float64) *SweeperService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if reminderHours <= 0 {
		reminderHours = 2
	}
	return &SweeperService{
		repo:     repo,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		window:   time.Duration(reminderHours * float64(time.Hour)),
		now:      time.Now,
	}
}

// Start runs one pass immediately, then on every tick until the context is
// cancelled.
func (s *SweeperService) Start(ctx context.Context) {
	go func() {
		s.Sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Sweep executes a single lifecycle pass.
func (s *SweeperService) Sweep(ctx context.Context) {
	start := s.now()

	completed, err := s.repo.CompletePast(ctx, start)
	if err != nil {
		s.logger.Error("sweeper failed to complete past bookings", zap.Error(err))
	} else if completed > 0 {
		s.logger.Info("auto-completed past bookings", zap.Int64("count", completed))
	}

	sent := s.sendReminders(ctx, start)
	if sent > 0 {
		s.logger.Info("dispatched booking reminders", zap.Int("count", sent))
	}

	s.metrics.RecordSweep(completed, time.Since(start))
}

// sendReminders dispatches one-shot reminders for approved bookings starting
// within the look-ahead window. The reminder_sent guard in the repository
// keeps overlapping sweeps from double-sending.
func (s *SweeperService) sendReminders(ctx context.Context, now time.Time) int {
	due, err := s.repo.ListDueReminders(ctx, now, now.Add(s.window))
	if err != nil {
		s.logger.Error("sweeper failed to list due reminders", zap.Error(err))
		return 0
	}

	sent := 0
	for i := range due {
		booking := due[i]
		ok, err := s.repo.MarkReminderSent(ctx, booking.ID)
		if err != nil {
			s.logger.Error("sweeper failed to mark reminder",
				zap.String("booking_id", booking.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if s.notifier != nil {
			s.notifier.BookingReminder(&booking)
		}
		sent++
	}
	return sent
}
