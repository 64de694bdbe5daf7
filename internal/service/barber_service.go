package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gentlemens13/booking-api/internal/models"
	"github.com/gentlemens13/booking-api/internal/repository"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
)

type barberRepository interface {
	List(ctx context.Context) ([]models.Barber, error)
	FindByID(ctx context.Context, id string) (*models.Barber, error)
	UpdateWorkHours(ctx context.Context, id string, params repository.WorkHoursParams) (bool, error)
}

// BarberService manages barbers and their working-hours policies.
type BarberService struct {
	repo      barberRepository
	schedule  availabilityInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBarberService constructs a BarberService.
func NewBarberService(repo barberRepository, schedule availabilityInvalidator, validate *validator.Validate, logger *zap.Logger) *BarberService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BarberService{repo: repo, schedule: schedule, validator: validate, logger: logger}
}

// List returns all barbers.
func (s *BarberService) List(ctx context.Context) ([]models.Barber, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list barbers")
	}
	return items, nil
}

// Get fetches one barber.
func (s *BarberService) Get(ctx context.Context, id string) (*models.Barber, error) {
	barber, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get barber")
	}
	if barber == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
	}
	return barber, nil
}

// UpdateWorkHours replaces a barber's working-hours policy and drops their
// cached availability.
func (s *BarberService) UpdateWorkHours(ctx context.Context, id string, req models.WorkHoursRequest) (*models.Barber, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid work hours payload")
	}

	ok, err := s.repo.UpdateWorkHours(ctx, id, repository.WorkHoursParams{
		StartHour:            req.StartHour,
		EndHour:              req.EndHour,
		WednesdayStart:       req.WednesdayStart,
		LunchBreak:           req.LunchBreak,
		SlotIntervalMinutes:  req.SlotIntervalMinutes,
		AcceptsOnlineBooking: req.AcceptsOnlineBooking,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update work hours")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
	}

	if s.schedule != nil {
		s.schedule.InvalidateAvailability(ctx, id)
	}
	return s.Get(ctx, id)
}
