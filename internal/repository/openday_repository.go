package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gentlemens13/booking-api/internal/models"
)

// OpenDayRepository provides persistence for explicitly opened booking days.
type OpenDayRepository struct {
	db *sqlx.DB
}

// NewOpenDayRepository constructs the repository.
func NewOpenDayRepository(db *sqlx.DB) *OpenDayRepository {
	return &OpenDayRepository{db: db}
}

// List returns open days from the given date onward, ordered by date.
func (r *OpenDayRepository) List(ctx context.Context, fromDate string) ([]models.OpenDay, error) {
	const query = `
SELECT id, date, times, created_at, updated_at
FROM open_days
WHERE date >= $1
ORDER BY date ASC`

	var items []models.OpenDay
	if err := r.db.SelectContext(ctx, &items, query, fromDate); err != nil {
		return nil, fmt.Errorf("list open days: %w", err)
	}
	return items, nil
}

// FindByDate fetches the open day record for a date, nil when the day is
// not opened.
func (r *OpenDayRepository) FindByDate(ctx context.Context, date string) (*models.OpenDay, error) {
	const query = `SELECT id, date, times, created_at, updated_at FROM open_days WHERE date = $1`

	var d models.OpenDay
	if err := r.db.GetContext(ctx, &d, query, date); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get open day: %w", err)
	}
	return &d, nil
}

// Upsert opens a day or replaces its offered times.
func (r *OpenDayRepository) Upsert(ctx context.Context, d *models.OpenDay) error {
	const query = `
INSERT INTO open_days (id, date, times, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (date) DO UPDATE SET times = EXCLUDED.times, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.Date, pq.Array([]string(d.Times)), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert open day: %w", err)
	}
	return nil
}

// DeleteByDate closes a day. Returns false when the date was not open.
func (r *OpenDayRepository) DeleteByDate(ctx context.Context, date string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM open_days WHERE date = $1`, date)
	if err != nil {
		return false, fmt.Errorf("delete open day: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete open day: %w", err)
	}
	return n > 0, nil
}
