package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gentlemens13/booking-api/internal/models"
)

// DayOffRepository provides persistence for full-day blocks.
type DayOffRepository struct {
	db *sqlx.DB
}

// NewDayOffRepository constructs the repository.
func NewDayOffRepository(db *sqlx.DB) *DayOffRepository {
	return &DayOffRepository{db: db}
}

// List returns day offs ordered by date, optionally narrowed to one date.
func (r *DayOffRepository) List(ctx context.Context, date string) ([]models.DayOff, error) {
	query := `SELECT id, date, barber_id, reason, created_at FROM day_offs`
	args := []interface{}{}
	if date != "" {
		query += ` WHERE date = $1`
		args = append(args, date)
	}
	query += ` ORDER BY date ASC`

	var items []models.DayOff
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list day offs: %w", err)
	}
	return items, nil
}

// FindForDate returns the day offs affecting one date: global rows plus rows
// targeting the given barber.
func (r *DayOffRepository) FindForDate(ctx context.Context, date string, barberID *string) ([]models.DayOff, error) {
	const query = `
SELECT id, date, barber_id, reason, created_at
FROM day_offs
WHERE date = $1 AND (barber_id IS NULL OR barber_id = $2)`

	var items []models.DayOff
	if err := r.db.SelectContext(ctx, &items, query, date, barberID); err != nil {
		return nil, fmt.Errorf("find day offs for date: %w", err)
	}
	return items, nil
}

// Create inserts a day off. A second block for the same date and barber is
// reported as ErrDuplicate.
func (r *DayOffRepository) Create(ctx context.Context, d *models.DayOff) error {
	const query = `
INSERT INTO day_offs (id, date, barber_id, reason, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.Date, d.BarberID, d.Reason, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicate
		}
		return fmt.Errorf("insert day off: %w", err)
	}
	return nil
}

// Delete removes a day off. Returns false when it does not exist.
func (r *DayOffRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM day_offs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete day off: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete day off: %w", err)
	}
	return n > 0, nil
}
