package models

import (
	"time"

	"github.com/lib/pq"
)

// OpenDay is the tire-service availability record: a calendar day the admin
// has explicitly opened for booking, with its offerable times enumerated
// rather than derived from a working-hours policy.
type OpenDay struct {
	ID        string         `db:"id" json:"id"`
	Date      string         `db:"date" json:"date"`
	Times     pq.StringArray `db:"times" json:"times"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// DefaultOpenDayTimes returns the hourly times seeded when an admin opens a
// day: 08:00 through 18:00.
func DefaultOpenDayTimes() []string {
	return []string{
		"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
		"14:00", "15:00", "16:00", "17:00", "18:00",
	}
}
