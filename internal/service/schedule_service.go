package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type scheduleBarberReader interface {
	FindByID(ctx context.Context, id string) (*models.Barber, error)
}

type scheduleDayOffReader interface {
	FindForDate(ctx context.Context, date string, barberID *string) ([]models.DayOff, error)
}

type scheduleBookingReader interface {
	ListActiveTimes(ctx context.Context, barberID *string, date string) ([]string, error)
}

type scheduleOpenDayReader interface {
	FindByDate(ctx context.Context, date string) (*models.OpenDay, error)
}

// ScheduleService resolves working-hours policies into concrete offerable
// slots and their occupancy.
type ScheduleService struct {
	barbers  scheduleBarberReader
	dayOffs  scheduleDayOffReader
	bookings scheduleBookingReader
	openDays scheduleOpenDayReader
	cache    *CacheService
	logger   *zap.Logger
	location *time.Location
}

// NewScheduleService constructs a ScheduleService. A nil location defaults
// to the process-local timezone.
func NewScheduleService(barbers scheduleBarberReader, dayOffs scheduleDayOffReader, bookings scheduleBookingReader, openDays scheduleOpenDayReader, cache *CacheService, logger *zap.Logger, location *time.Location) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &ScheduleService{
		barbers:  barbers,
		dayOffs:  dayOffs,
		bookings: bookings,
		openDays: openDays,
		cache:    cache,
		logger:   logger,
		location: location,
	}
}

// ResolvePolicy computes the effective working-hours rule set for one barber
// on one date. Sundays are always blocked; day offs block the whole day; a
// Wednesday override shifts the start hour and suspends the lunch break.
func (s *ScheduleService) ResolvePolicy(ctx context.Context, barber *models.Barber, date string) (models.EffectivePolicy, error) {
	day, err := time.ParseInLocation(models.DateFormat, date, s.location)
	if err != nil {
		return models.EffectivePolicy{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	if day.Weekday() == time.Sunday {
		return models.EffectivePolicy{Blocked: true, BlockReason: "closed on Sundays"}, nil
	}

	var barberID *string
	if barber != nil {
		barberID = &barber.ID
	}
	offs, err := s.dayOffs.FindForDate(ctx, date, barberID)
	if err != nil {
		return models.EffectivePolicy{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check day offs")
	}
	for i := range offs {
		if offs[i].AppliesTo(barberID) {
			reason := offs[i].Reason
			if reason == "" {
				reason = "day off"
			}
			return models.EffectivePolicy{Blocked: true, BlockReason: reason}, nil
		}
	}

	startHour := models.DefaultStartHour
	endHour := models.DefaultEndHour
	interval := models.DefaultIntervalMinutes
	lunch := true
	if barber != nil {
		startHour = barber.StartHour
		endHour = barber.EndHour
		interval = barber.Interval()
		lunch = barber.LunchBreak
	}

	if day.Weekday() == time.Wednesday && barber != nil && barber.WednesdayStart != nil {
		startHour = *barber.WednesdayStart
		lunch = false
	}

	return models.EffectivePolicy{
		StartMinute:     startHour * 60,
		EndMinute:       endHour * 60,
		IntervalMinutes: interval,
		LunchBreak:      lunch,
	}, nil
}

// GenerateSlots expands a policy into its ordered HH:MM time points. The end
// bound is exclusive and the lunch hour is skipped when the break applies.
func (s *ScheduleService) GenerateSlots(policy models.EffectivePolicy) []string {
	if policy.Blocked || policy.IntervalMinutes <= 0 {
		return nil
	}

	var slots []string
	for m := policy.StartMinute; m < policy.EndMinute; m += policy.IntervalMinutes {
		if policy.LunchBreak && m/60 == models.LunchHour {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// DayAvailability returns the occupancy-annotated slot calendar for one
// barber and date. Results are cached briefly when caching is enabled.
func (s *ScheduleService) DayAvailability(ctx context.Context, barberID, date string) (*models.DayAvailability, error) {
	cacheKey := fmt.Sprintf("availability:%s:%s", barberID, date)
	var cached models.DayAvailability
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	barber, err := s.barbers.FindByID(ctx, barberID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load barber")
	}
	if barber == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
	}

	policy, err := s.ResolvePolicy(ctx, barber, date)
	if err != nil {
		return nil, err
	}

	availability := &models.DayAvailability{
		BarberID: barberID,
		Date:     date,
		Blocked:  policy.Blocked,
		Reason:   policy.BlockReason,
	}
	if policy.Blocked {
		return availability, nil
	}

	occupied, err := s.bookings.ListActiveTimes(ctx, &barberID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load occupancy")
	}
	taken := make(map[string]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t] = struct{}{}
	}

	times := s.GenerateSlots(policy)
	availability.Slots = make([]models.Slot, 0, len(times))
	for _, t := range times {
		_, isTaken := taken[t]
		availability.Slots = append(availability.Slots, models.Slot{Time: t, Occupied: isTaken})
	}

	if err := s.cache.Set(ctx, cacheKey, availability, 0); err != nil {
		s.logger.Debug("availability cache write failed", zap.Error(err))
	}
	return availability, nil
}

// IsOffered reports whether the (date, time) pair is a bookable slot for the
// given resource. A nil barberID targets the open-day calendar instead of a
// working-hours policy.
func (s *ScheduleService) IsOffered(ctx context.Context, barberID *string, date, clock string) (bool, string, error) {
	if barberID == nil {
		openDay, err := s.openDays.FindByDate(ctx, date)
		if err != nil {
			return false, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load open day")
		}
		if openDay == nil {
			return false, "day is not open for booking", nil
		}

		offs, err := s.dayOffs.FindForDate(ctx, date, nil)
		if err != nil {
			return false, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check day offs")
		}
		for i := range offs {
			if offs[i].AppliesTo(nil) {
				return false, "day is blocked", nil
			}
		}

		for _, t := range openDay.Times {
			if t == clock {
				return true, "", nil
			}
		}
		return false, "time is not offered on this day", nil
	}

	barber, err := s.barbers.FindByID(ctx, *barberID)
	if err != nil {
		return false, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load barber")
	}
	if barber == nil {
		return false, "barber not found", nil
	}

	policy, err := s.ResolvePolicy(ctx, barber, date)
	if err != nil {
		return false, "", err
	}
	if policy.Blocked {
		return false, policy.BlockReason, nil
	}
	for _, t := range s.GenerateSlots(policy) {
		if t == clock {
			return true, "", nil
		}
	}
	return false, "time is outside working hours", nil
}

// InvalidateAvailability drops cached calendars for one barber, or for all
// barbers when barberID is empty.
func (s *ScheduleService) InvalidateAvailability(ctx context.Context, barberID string) {
	pattern := "availability:*"
	if barberID != "" {
		pattern = fmt.Sprintf("availability:%s:*", barberID)
	}
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.logger.Debug("availability cache invalidate failed", zap.Error(err))
	}
}
