package models

import (
	"fmt"
	"time"
)

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

// Date and clock formats used across the API. Dates carry no timezone
// component; times are local clock strings.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Booking represents a customer appointment request. BarberID is nil for the
// tire-service variant, which books against a single implicit resource.
type Booking struct {
	ID           string        `db:"id" json:"id"`
	UserID       *string       `db:"user_id" json:"user_id,omitempty"`
	BarberID     *string       `db:"barber_id" json:"barber_id,omitempty"`
	Date         string        `db:"date" json:"date"`
	Time         string        `db:"time" json:"time"`
	FullName     string        `db:"full_name" json:"full_name"`
	Email        string        `db:"email" json:"email"`
	Phone        string        `db:"phone" json:"phone"`
	Service      string        `db:"service" json:"service"`
	Comment      string        `db:"comment" json:"comment"`
	PhotoURL     *string       `db:"photo_url" json:"photo_url,omitempty"`
	SendReminder bool          `db:"send_reminder" json:"send_reminder"`
	ReminderSent bool          `db:"reminder_sent" json:"reminder_sent"`
	Status       BookingStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the booking currently holds its slot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}

// StartsAt combines the date and time columns into a wall-clock instant in
// the provided location.
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return ParseDateTime(b.Date, b.Time, loc)
}

// ParseDateTime parses a (YYYY-MM-DD, HH:MM) pair into a time.Time.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateFormat+" "+TimeFormat, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse booking datetime %q %q: %w", date, clock, err)
	}
	return t, nil
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status   BookingStatus
	BarberID string
	Date     string
}

// SlotAlternative is an informational (date, time) suggestion attached to a
// rejection notice. It reserves nothing.
type SlotAlternative struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}
