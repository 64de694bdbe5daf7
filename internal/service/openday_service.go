package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type openDayRepository interface {
	List(ctx context.Context, fromDate string) ([]models.OpenDay, error)
	FindByDate(ctx context.Context, date string) (*models.OpenDay, error)
	Upsert(ctx context.Context, d *models.OpenDay) error
	DeleteByDate(ctx context.Context, date string) (bool, error)
}

type openDayBookingReader interface {
	ListActiveTimes(ctx context.Context, barberID *string, date string) ([]string, error)
}

type openDayDayOffReader interface {
	FindForDate(ctx context.Context, date string, barberID *string) ([]models.DayOff, error)
}

// OpenDayService manages the explicit per-date slot calendar used by the
// barberless booking variant.
type OpenDayService struct {
	repo      openDayRepository
	bookings  openDayBookingReader
	dayOffs   openDayDayOffReader
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
}

// NewOpenDayService constructs an OpenDayService.
func NewOpenDayService(repo openDayRepository, bookings openDayBookingReader, dayOffs openDayDayOffReader, validate *validator.Validate, logger *zap.Logger, location *time.Location) *OpenDayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &OpenDayService{repo: repo, bookings: bookings, dayOffs: dayOffs, validator: validate, logger: logger, location: location}
}

// List returns open days from today onward.
func (s *OpenDayService) List(ctx context.Context) ([]models.OpenDay, error) {
	today := time.Now().In(s.location).Format(models.DateFormat)
	items, err := s.repo.List(ctx, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list open days")
	}
	return items, nil
}

// Enable opens a day for booking. Without explicit times the default hourly
// grid is seeded. Sundays cannot be opened.
func (s *OpenDayService) Enable(ctx context.Context, req models.OpenDayRequest) (*models.OpenDay, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid open day payload")
	}

	day, err := time.ParseInLocation(models.DateFormat, req.Date, s.location)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if day.Weekday() == time.Sunday {
		return nil, appErrors.Clone(appErrors.ErrPolicyBlocked, "Sundays cannot be opened for booking")
	}

	times := req.Times
	if len(times) == 0 {
		times = models.DefaultOpenDayTimes()
	} else {
		times = dedupeSorted(times)
	}

	now := time.Now().UTC()
	openDay := &models.OpenDay{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Times:     times,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, openDay); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open day")
	}
	return openDay, nil
}

// Disable closes a day for booking.
func (s *OpenDayService) Disable(ctx context.Context, date string) error {
	ok, err := s.repo.DeleteByDate(ctx, date)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close day")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "day is not open")
	}
	return nil
}

// AvailableTimes returns the day's offered times minus occupied slots. A
// global day off empties the list even when the day was opened.
func (s *OpenDayService) AvailableTimes(ctx context.Context, date string) ([]string, error) {
	openDay, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load open day")
	}
	if openDay == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "day is not open for booking")
	}

	offs, err := s.dayOffs.FindForDate(ctx, date, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check day offs")
	}
	for i := range offs {
		if offs[i].AppliesTo(nil) {
			return []string{}, nil
		}
	}

	occupied, err := s.bookings.ListActiveTimes(ctx, nil, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load occupancy")
	}
	taken := make(map[string]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t] = struct{}{}
	}

	free := make([]string, 0, len(openDay.Times))
	for _, t := range openDay.Times {
		if _, ok := taken[t]; !ok {
			free = append(free, t)
		}
	}
	return free, nil
}

func dedupeSorted(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
