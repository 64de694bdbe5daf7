package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type openDayRepoStub struct {
	days map[string]models.OpenDay
}

func (s *openDayRepoStub) List(ctx context.Context, fromDate string) ([]models.OpenDay, error) {
	var result []models.OpenDay
	for _, d := range s.days {
		if d.Date >= fromDate {
			result = append(result, d)
		}
	}
	return result, nil
}

func (s *openDayRepoStub) FindByDate(ctx context.Context, date string) (*models.OpenDay, error) {
	if d, ok := s.days[date]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *openDayRepoStub) Upsert(ctx context.Context, d *models.OpenDay) error {
	if s.days == nil {
		s.days = make(map[string]models.OpenDay)
	}
	s.days[d.Date] = *d
	return nil
}

func (s *openDayRepoStub) DeleteByDate(ctx context.Context, date string) (bool, error) {
	if _, ok := s.days[date]; !ok {
		return false, nil
	}
	delete(s.days, date)
	return true, nil
}

func newOpenDayService(repo *openDayRepoStub, bookings *bookingTimesStub, dayOffs *dayOffReaderStub) *OpenDayService {
	if repo == nil {
		repo = &openDayRepoStub{}
	}
	if bookings == nil {
		bookings = &bookingTimesStub{}
	}
	if dayOffs == nil {
		dayOffs = &dayOffReaderStub{}
	}
	return NewOpenDayService(repo, bookings, dayOffs, validator.New(), nil, time.UTC)
}

func TestOpenDayEnableSeedsDefaults(t *testing.T) {
	repo := &openDayRepoStub{}
	svc := newOpenDayService(repo, nil, nil)

	day, err := svc.Enable(context.Background(), models.OpenDayRequest{Date: "2026-03-12"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultOpenDayTimes(), []string(day.Times))
	assert.Len(t, day.Times, 11)
}

func TestOpenDayEnableCustomTimes(t *testing.T) {
	repo := &openDayRepoStub{}
	svc := newOpenDayService(repo, nil, nil)

	day, err := svc.Enable(context.Background(), models.OpenDayRequest{
		Date:  "2026-03-12",
		Times: []string{"10:00", "08:00", "10:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "10:00"}, []string(day.Times))
}

func TestOpenDayEnableSundayRejected(t *testing.T) {
	svc := newOpenDayService(nil, nil, nil)

	// 2026-03-15 is a Sunday.
	_, err := svc.Enable(context.Background(), models.OpenDayRequest{Date: "2026-03-15"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPolicyBlocked.Code, appErrors.FromError(err).Code)
}

func TestOpenDayEnableReplacesTimes(t *testing.T) {
	repo := &openDayRepoStub{days: map[string]models.OpenDay{
		"2026-03-12": {ID: "day-1", Date: "2026-03-12", Times: []string{"08:00"}},
	}}
	svc := newOpenDayService(repo, nil, nil)

	day, err := svc.Enable(context.Background(), models.OpenDayRequest{
		Date:  "2026-03-12",
		Times: []string{"12:00", "13:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00", "13:00"}, []string(day.Times))
}

func TestOpenDayDisableUnknown(t *testing.T) {
	svc := newOpenDayService(nil, nil, nil)

	err := svc.Disable(context.Background(), "2026-03-12")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestOpenDayAvailableTimesSubtractsOccupied(t *testing.T) {
	repo := &openDayRepoStub{days: map[string]models.OpenDay{
		"2026-03-12": {ID: "day-1", Date: "2026-03-12", Times: []string{"08:00", "09:00", "10:00"}},
	}}
	bookings := &bookingTimesStub{times: map[string][]string{
		"2026-03-12": {"09:00"},
	}}
	svc := newOpenDayService(repo, bookings, nil)

	free, err := svc.AvailableTimes(context.Background(), "2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "10:00"}, free)
}

func TestOpenDayAvailableTimesBlockedByDayOff(t *testing.T) {
	repo := &openDayRepoStub{days: map[string]models.OpenDay{
		"2026-03-12": {ID: "day-1", Date: "2026-03-12", Times: []string{"08:00", "09:00"}},
	}}
	dayOffs := &dayOffReaderStub{offs: []models.DayOff{
		{ID: "off-1", Date: "2026-03-12", Reason: "inventory"},
	}}
	svc := newOpenDayService(repo, nil, dayOffs)

	free, err := svc.AvailableTimes(context.Background(), "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestOpenDayAvailableTimesClosedDay(t *testing.T) {
	svc := newOpenDayService(nil, nil, nil)

	_, err := svc.AvailableTimes(context.Background(), "2026-03-12")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
