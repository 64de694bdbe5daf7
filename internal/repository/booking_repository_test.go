package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlemens13/booking-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func strPtr(s string) *string { return &s }

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:           "booking-1",
		BarberID:     strPtr("barber-1"),
		Date:         "2026-03-11",
		Time:         "09:30",
		FullName:     "Ivan",
		Email:        "ivan@example.com",
		Phone:        "+15550001",
		Service:      "haircut",
		SendReminder: true,
		Status:       models.BookingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs("booking-1", nil, "barber-1", "2026-03-11", "09:30",
			"Ivan", "ivan@example.com", "+15550001", "haircut", "",
			nil, true, false, models.BookingStatusPending, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), booking)
	require.NoError(t, err)
}

func TestBookingRepositoryCreateSlotTaken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_idx"})

	err := repo.Create(context.Background(), &models.Booking{ID: "booking-1"})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookingRepositoryGetByIDNone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("booking-99").
		WillReturnError(sql.ErrNoRows)

	booking, err := repo.GetByID(context.Background(), "booking-99")
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestBookingRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	rows := sqlmock.NewRows([]string{"id", "date", "time", "status"}).
		AddRow("booking-1", "2026-03-11", "09:30", "pending")

	mock.ExpectQuery(regexp.QuoteMeta("AND status = $1 AND barber_id = $2 AND date = $3")).
		WithArgs(models.BookingStatusPending, "barber-1", "2026-03-11").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.BookingFilter{
		Status:   models.BookingStatusPending,
		BarberID: "barber-1",
		Date:     "2026-03-11",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "booking-1", items[0].ID)
}

func TestBookingRepositoryListActiveTimes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	rows := sqlmock.NewRows([]string{"time"}).AddRow("09:30").AddRow("10:00")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE COALESCE(barber_id, '') = COALESCE($1, '')")).
		WithArgs("barber-1", "2026-03-11").
		WillReturnRows(rows)

	times, err := repo.ListActiveTimes(context.Background(), strPtr("barber-1"), "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "10:00"}, times)
}

func TestBookingRepositoryRescheduleApproves(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET date = $1, time = $2, status = 'approved'")).
		WithArgs("2026-03-12", "10:00", "booking-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Reschedule(context.Background(), "booking-1", "2026-03-12", "10:00")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBookingRepositoryRescheduleConflict(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET date = $1, time = $2")).
		WithArgs("2026-03-12", "10:00", "booking-1").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_idx"})

	_, err := repo.Reschedule(context.Background(), "booking-1", "2026-03-12", "10:00")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookingRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1")).
		WithArgs(models.BookingStatusApproved, "booking-99").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateStatus(context.Background(), "booking-99", models.BookingStatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookingRepositoryCompletePast(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	cutoff := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("AND (date < $1 OR (date = $1 AND time < $2))")).
		WithArgs("2026-03-11", "14:30").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.CompletePast(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestBookingRepositoryListDueReminders(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	rows := sqlmock.NewRows([]string{"id", "date", "time", "status", "send_reminder", "reminder_sent"}).
		AddRow("booking-1", "2026-03-11", "16:00", "approved", true, false)

	mock.ExpectQuery(regexp.QuoteMeta("AND reminder_sent = FALSE")).
		WithArgs("2026-03-11", "14:30", "2026-03-11", "16:30").
		WillReturnRows(rows)

	from := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 16, 30, 0, 0, time.UTC)

	items, err := repo.ListDueReminders(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "booking-1", items[0].ID)
}

func TestBookingRepositoryMarkReminderSentOnce(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND reminder_sent = FALSE")).
		WithArgs("booking-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND reminder_sent = FALSE")).
		WithArgs("booking-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.MarkReminderSent(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkReminderSent(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
