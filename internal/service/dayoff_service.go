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

type dayOffRepository interface {
	List(ctx context.Context, date string) ([]models.DayOff, error)
	Create(ctx context.Context, d *models.DayOff) error
	Delete(ctx context.Context, id string) (bool, error)
}

type dayOffBarberReader interface {
	FindByID(ctx context.Context, id string) (*models.Barber, error)
}

type availabilityInvalidator interface {
	InvalidateAvailability(ctx context.Context, barberID string)
}

// DayOffService manages full-day booking blocks.
type DayOffService struct {
	repo      dayOffRepository
	barbers   dayOffBarberReader
	schedule  availabilityInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDayOffService constructs a DayOffService.
func NewDayOffService(repo dayOffRepository, barbers dayOffBarberReader, schedule availabilityInvalidator, validate *validator.Validate, logger *zap.Logger) *DayOffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DayOffService{repo: repo, barbers: barbers, schedule: schedule, validator: validate, logger: logger}
}

// List returns day offs, optionally only those on one date.
func (s *DayOffService) List(ctx context.Context, date string) ([]models.DayOff, error) {
	items, err := s.repo.List(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list day offs")
	}
	return items, nil
}

// Create blocks a day. A nil BarberID blocks every barber.
func (s *DayOffService) Create(ctx context.Context, req models.CreateDayOffRequest) (*models.DayOff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day off payload")
	}

	if req.BarberID != nil {
		barber, err := s.barbers.FindByID(ctx, *req.BarberID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load barber")
		}
		if barber == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
		}
	}

	dayOff := &models.DayOff{
		ID:        uuid.NewString(),
		Date:      req.Date,
		BarberID:  req.BarberID,
		Reason:    req.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, dayOff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "day off already exists for this date")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create day off")
	}

	s.invalidate(ctx, req.BarberID)
	return dayOff, nil
}

// Delete removes a day off block.
func (s *DayOffService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete day off")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "day off not found")
	}
	s.invalidate(ctx, nil)
	return nil
}

func (s *DayOffService) invalidate(ctx context.Context, barberID *string) {
	if s.schedule == nil {
		return
	}
	id := ""
	if barberID != nil {
		id = *barberID
	}
	s.schedule.InvalidateAvailability(ctx, id)
}
