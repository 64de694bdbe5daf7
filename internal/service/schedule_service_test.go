package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlemens13/booking-api/internal/models"
)

type barberReaderStub struct {
	barbers map[string]models.Barber
	err     error
}

func (s *barberReaderStub) FindByID(ctx context.Context, id string) (*models.Barber, error) {
	if s.err != nil {
		return nil, s.err
	}
	if b, ok := s.barbers[id]; ok {
		return &b, nil
	}
	return nil, nil
}

type dayOffReaderStub struct {
	offs []models.DayOff
	err  error
}

func (s *dayOffReaderStub) FindForDate(ctx context.Context, date string, barberID *string) ([]models.DayOff, error) {
	if s.err != nil {
		return nil, s.err
	}
	var result []models.DayOff
	for _, off := range s.offs {
		if off.Date == date {
			result = append(result, off)
		}
	}
	return result, nil
}

type bookingTimesStub struct {
	times map[string][]string
}

func (s *bookingTimesStub) ListActiveTimes(ctx context.Context, barberID *string, date string) ([]string, error) {
	return s.times[date], nil
}

type openDayReaderStub struct {
	days map[string]models.OpenDay
}

func (s *openDayReaderStub) FindByDate(ctx context.Context, date string) (*models.OpenDay, error) {
	if d, ok := s.days[date]; ok {
		return &d, nil
	}
	return nil, nil
}

func newScheduleService(barbers *barberReaderStub, offs *dayOffReaderStub, bookings *bookingTimesStub, openDays *openDayReaderStub) *ScheduleService {
	if barbers == nil {
		barbers = &barberReaderStub{}
	}
	if offs == nil {
		offs = &dayOffReaderStub{}
	}
	if bookings == nil {
		bookings = &bookingTimesStub{}
	}
	if openDays == nil {
		openDays = &openDayReaderStub{}
	}
	return NewScheduleService(barbers, offs, bookings, openDays, nil, nil, time.UTC)
}

func testBarber() models.Barber {
	return models.Barber{
		ID:                   "barber-1",
		Name:                 "Alex",
		StartHour:            8,
		EndHour:              20,
		LunchBreak:           true,
		SlotIntervalMinutes:  15,
		AcceptsOnlineBooking: true,
	}
}

func TestResolvePolicySundayBlocked(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)
	barber := testBarber()

	// 2026-03-15 is a Sunday.
	policy, err := svc.ResolvePolicy(context.Background(), &barber, "2026-03-15")
	require.NoError(t, err)
	assert.True(t, policy.Blocked)
	assert.Contains(t, policy.BlockReason, "Sunday")
}

func TestResolvePolicyDayOffBlocked(t *testing.T) {
	offs := &dayOffReaderStub{offs: []models.DayOff{
		{ID: "off-1", Date: "2026-03-11", Reason: "renovation"},
	}}
	svc := newScheduleService(nil, offs, nil, nil)
	barber := testBarber()

	policy, err := svc.ResolvePolicy(context.Background(), &barber, "2026-03-11")
	require.NoError(t, err)
	assert.True(t, policy.Blocked)
	assert.Equal(t, "renovation", policy.BlockReason)
}

func TestResolvePolicyDayOffOtherBarberIgnored(t *testing.T) {
	other := "barber-2"
	offs := &dayOffReaderStub{offs: []models.DayOff{
		{ID: "off-1", Date: "2026-03-11", BarberID: &other},
	}}
	svc := newScheduleService(nil, offs, nil, nil)
	barber := testBarber()

	policy, err := svc.ResolvePolicy(context.Background(), &barber, "2026-03-11")
	require.NoError(t, err)
	assert.False(t, policy.Blocked)
}

func TestResolvePolicyWednesdayOverride(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)
	barber := testBarber()
	wednesdayStart := 12
	barber.WednesdayStart = &wednesdayStart

	// 2026-03-11 is a Wednesday.
	policy, err := svc.ResolvePolicy(context.Background(), &barber, "2026-03-11")
	require.NoError(t, err)
	assert.False(t, policy.Blocked)
	assert.Equal(t, 12*60, policy.StartMinute)
	assert.False(t, policy.LunchBreak)
}

func TestResolvePolicyInvalidDate(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)
	barber := testBarber()

	_, err := svc.ResolvePolicy(context.Background(), &barber, "11.03.2026")
	require.Error(t, err)
}

func TestGenerateSlotsSkipsLunchHour(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)

	slots := svc.GenerateSlots(models.EffectivePolicy{
		StartMinute:     12 * 60,
		EndMinute:       15 * 60,
		IntervalMinutes: 30,
		LunchBreak:      true,
	})

	assert.Equal(t, []string{"12:00", "12:30", "14:00", "14:30"}, slots)
}

func TestGenerateSlotsEndExclusive(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)

	slots := svc.GenerateSlots(models.EffectivePolicy{
		StartMinute:     19 * 60,
		EndMinute:       20 * 60,
		IntervalMinutes: 15,
	})

	assert.Equal(t, []string{"19:00", "19:15", "19:30", "19:45"}, slots)
}

func TestGenerateSlotsBlockedPolicy(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)
	assert.Nil(t, svc.GenerateSlots(models.EffectivePolicy{Blocked: true}))
}

func TestDayAvailabilityAnnotatesOccupancy(t *testing.T) {
	barbers := &barberReaderStub{barbers: map[string]models.Barber{"barber-1": testBarber()}}
	bookings := &bookingTimesStub{times: map[string][]string{
		"2026-03-12": {"08:15", "09:00"},
	}}
	svc := newScheduleService(barbers, nil, bookings, nil)

	availability, err := svc.DayAvailability(context.Background(), "barber-1", "2026-03-12")
	require.NoError(t, err)
	assert.False(t, availability.Blocked)

	occupied := map[string]bool{}
	for _, slot := range availability.Slots {
		occupied[slot.Time] = slot.Occupied
	}
	assert.True(t, occupied["08:15"])
	assert.True(t, occupied["09:00"])
	assert.False(t, occupied["08:00"])
}

func TestDayAvailabilityUnknownBarber(t *testing.T) {
	svc := newScheduleService(nil, nil, nil, nil)

	_, err := svc.DayAvailability(context.Background(), "barber-99", "2026-03-12")
	require.Error(t, err)
}

func TestIsOfferedBarberSlot(t *testing.T) {
	barbers := &barberReaderStub{barbers: map[string]models.Barber{"barber-1": testBarber()}}
	svc := newScheduleService(barbers, nil, nil, nil)
	id := "barber-1"

	ok, _, err := svc.IsOffered(context.Background(), &id, "2026-03-12", "09:15")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, reason, err := svc.IsOffered(context.Background(), &id, "2026-03-12", "13:00")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestIsOfferedOpenDayPath(t *testing.T) {
	openDays := &openDayReaderStub{days: map[string]models.OpenDay{
		"2026-03-12": {ID: "day-1", Date: "2026-03-12", Times: []string{"08:00", "09:00"}},
	}}
	svc := newScheduleService(nil, nil, nil, openDays)

	ok, _, err := svc.IsOffered(context.Background(), nil, "2026-03-12", "09:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, reason, err := svc.IsOffered(context.Background(), nil, "2026-03-12", "09:30")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, reason, err = svc.IsOffered(context.Background(), nil, "2026-03-13", "09:00")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, reason, "not open")
}
