package models

import "time"

// Default working-hours policy applied to barbers without explicit
// configuration, mirroring the shop's house rules.
const (
	DefaultStartHour       = 8
	DefaultEndHour         = 20
	DefaultIntervalMinutes = 15
	LunchHour              = 13
)

// Barber is a bookable service provider.
type Barber struct {
	ID                   string    `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Title                string    `db:"title" json:"title"`
	Image                *string   `db:"image" json:"image,omitempty"`
	StartHour            int       `db:"start_hour" json:"start_hour"`
	EndHour              int       `db:"end_hour" json:"end_hour"`
	WednesdayStart       *int      `db:"wednesday_start" json:"wednesday_start,omitempty"`
	LunchBreak           bool      `db:"lunch_break" json:"lunch_break"`
	SlotIntervalMinutes  int       `db:"slot_interval_minutes" json:"slot_interval_minutes"`
	AcceptsOnlineBooking bool      `db:"accepts_online_booking" json:"accepts_online_booking"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Interval returns the barber's slot granularity in minutes.
func (b *Barber) Interval() int {
	if b.SlotIntervalMinutes <= 0 {
		return DefaultIntervalMinutes
	}
	return b.SlotIntervalMinutes
}
