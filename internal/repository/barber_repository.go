package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gentlemens13/booking-api/internal/models"
)

// BarberRepository provides persistence for barbers and their
// working-hours policies.
type BarberRepository struct {
	db *sqlx.DB
}

// NewBarberRepository constructs the repository.
func NewBarberRepository(db *sqlx.DB) *BarberRepository {
	return &BarberRepository{db: db}
}

const barberColumns = `id, name, title, image, start_hour, end_hour, wednesday_start, lunch_break, slot_interval_minutes, accepts_online_booking, created_at, updated_at`

// List returns all barbers ordered by name.
func (r *BarberRepository) List(ctx context.Context) ([]models.Barber, error) {
	query := fmt.Sprintf(`SELECT %s FROM barbers ORDER BY name ASC`, barberColumns)

	var items []models.Barber
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	return items, nil
}

// FindByID fetches a barber, returning nil when it does not exist.
func (r *BarberRepository) FindByID(ctx context.Context, id string) (*models.Barber, error) {
	query := fmt.Sprintf(`SELECT %s FROM barbers WHERE id = $1`, barberColumns)

	var b models.Barber
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get barber: %w", err)
	}
	return &b, nil
}

// WorkHoursParams holds the editable working-hours policy of a barber.
type WorkHoursParams struct {
	StartHour            int
	EndHour              int
	WednesdayStart       *int
	LunchBreak           bool
	SlotIntervalMinutes  int
	AcceptsOnlineBooking bool
}

// UpdateWorkHours replaces a barber's working-hours policy. Returns false
// when the barber does not exist.
func (r *BarberRepository) UpdateWorkHours(ctx context.Context, id string, params WorkHoursParams) (bool, error) {
	const query = `
UPDATE barbers
SET start_hour = $1,
	end_hour = $2,
	wednesday_start = $3,
	lunch_break = $4,
	slot_interval_minutes = $5,
	accepts_online_booking = $6,
	updated_at = NOW()
WHERE id = $7`

	res, err := r.db.ExecContext(ctx, query,
		params.StartHour, params.EndHour, params.WednesdayStart,
		params.LunchBreak, params.SlotIntervalMinutes, params.AcceptsOnlineBooking,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("update barber work hours: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update barber work hours: %w", err)
	}
	return n > 0, nil
}
