package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gentlemens13/booking-api/internal/models"
)

const slotIndexName = "bookings_active_slot_idx"

// BookingRepository provides persistence for appointment bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, barber_id, date, time, full_name, email, phone, service, comment, photo_url, send_reminder, reminder_sent, status, created_at, updated_at`

// Create inserts a booking. A violation of the active-slot unique index is
// reported as ErrSlotTaken.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	const query = `
INSERT INTO bookings (id, user_id, barber_id, date, time, full_name, email, phone, service, comment, photo_url, send_reminder, reminder_sent, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.BarberID, b.Date, b.Time,
		b.FullName, b.Email, b.Phone, b.Service, b.Comment,
		b.PhotoURL, b.SendReminder, b.ReminderSent, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, slotIndexName) {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID fetches a booking, returning nil when it does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	var b models.Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// List returns bookings matching the filter, newest date first.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, `SELECT %s FROM bookings WHERE 1=1`, bookingColumns)

	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&query, " AND status = $%d", len(args))
	}
	if filter.BarberID != "" {
		args = append(args, filter.BarberID)
		fmt.Fprintf(&query, " AND barber_id = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		fmt.Fprintf(&query, " AND date = $%d", len(args))
	}
	query.WriteString(" ORDER BY date DESC, time DESC")

	var items []models.Booking
	if err := r.db.SelectContext(ctx, &items, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return items, nil
}

// ListActiveTimes returns the occupied times for a barber on a date. A nil
// barberID targets the barberless resource.
func (r *BookingRepository) ListActiveTimes(ctx context.Context, barberID *string, date string) ([]string, error) {
	const query = `
SELECT time FROM bookings
WHERE COALESCE(barber_id, '') = COALESCE($1, '')
	AND date = $2
	AND status IN ('pending', 'approved')`

	var times []string
	if err := r.db.SelectContext(ctx, &times, query, barberID, date); err != nil {
		return nil, fmt.Errorf("list active times: %w", err)
	}
	return times, nil
}

// ListByDate returns every booking on a date, ordered by time.
func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE date = $1 ORDER BY time ASC`, bookingColumns)

	var items []models.Booking
	if err := r.db.SelectContext(ctx, &items, query, date); err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	return items, nil
}

// UpdateStatus transitions a booking to the given status. Returns false when
// the booking does not exist.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (bool, error) {
	const query = `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}
	return n > 0, nil
}

// Reject marks a booking rejected and stores the reason in the comment field.
func (r *BookingRepository) Reject(ctx context.Context, id, reason string) (bool, error) {
	const query = `
UPDATE bookings
SET status = 'rejected', comment = $1, updated_at = NOW()
WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, reason, id)
	if err != nil {
		return false, fmt.Errorf("reject booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reject booking: %w", err)
	}
	return n > 0, nil
}

// Reschedule moves a booking to a new slot and confirms it as approved, which
// also puts a previously rejected row back under the active-slot unique index.
// A violation on the target slot is reported as ErrSlotTaken.
func (r *BookingRepository) Reschedule(ctx context.Context, id, date, clock string) (bool, error) {
	const query = `UPDATE bookings SET date = $1, time = $2, status = 'approved', updated_at = NOW() WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, date, clock, id)
	if err != nil {
		if isUniqueViolation(err, slotIndexName) {
			return false, ErrSlotTaken
		}
		return false, fmt.Errorf("reschedule booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reschedule booking: %w", err)
	}
	return n > 0, nil
}

// Delete removes a booking row entirely.
func (r *BookingRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return n > 0, nil
}

// SetPhotoURL attaches an uploaded photo to a booking.
func (r *BookingRepository) SetPhotoURL(ctx context.Context, id, photoURL string) (bool, error) {
	const query = `UPDATE bookings SET photo_url = $1, updated_at = NOW() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, photoURL, id)
	if err != nil {
		return false, fmt.Errorf("set booking photo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set booking photo: %w", err)
	}
	return n > 0, nil
}

// CompletePast transitions approved bookings whose start time is strictly
// before the cutoff to completed, returning how many rows changed. The cutoff
// is split into its date and clock parts so the comparison works on the stored
// text columns.
func (r *BookingRepository) CompletePast(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
UPDATE bookings
SET status = 'completed', updated_at = NOW()
WHERE status = 'approved'
	AND (date < $1 OR (date = $1 AND time < $2))`

	res, err := r.db.ExecContext(ctx, query,
		cutoff.Format(models.DateFormat),
		cutoff.Format(models.TimeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	return n, nil
}

// ListDueReminders returns approved bookings that want a reminder, have not
// received one, and start between from and to inclusive. The window is
// expected to span at most one midnight.
func (r *BookingRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	fromDate := from.Format(models.DateFormat)
	fromTime := from.Format(models.TimeFormat)
	toDate := to.Format(models.DateFormat)
	toTime := to.Format(models.TimeFormat)

	query := fmt.Sprintf(`
SELECT %s FROM bookings
WHERE status = 'approved'
	AND send_reminder = TRUE
	AND reminder_sent = FALSE
	AND ((date = $1 AND time >= $2) OR date > $1)
	AND ((date = $3 AND time <= $4) OR date < $3)
ORDER BY date ASC, time ASC`, bookingColumns)

	var items []models.Booking
	if err := r.db.SelectContext(ctx, &items, query, fromDate, fromTime, toDate, toTime); err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return items, nil
}

// MarkReminderSent flips the reminder flag. The reminder_sent guard keeps the
// operation one-shot even when sweeps overlap.
func (r *BookingRepository) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	const query = `
UPDATE bookings
SET reminder_sent = TRUE, updated_at = NOW()
WHERE id = $1 AND reminder_sent = FALSE`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark reminder sent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark reminder sent: %w", err)
	}
	return n > 0, nil
}
