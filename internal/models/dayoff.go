package models

import "time"

// DayOff blocks a full calendar day. A nil BarberID blocks every barber.
type DayOff struct {
	ID        string    `db:"id" json:"id"`
	Date      string    `db:"date" json:"date"`
	BarberID  *string   `db:"barber_id" json:"barber_id,omitempty"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AppliesTo reports whether the day off blocks the given barber. The
// barberless tire-service resource is only blocked by global day offs.
func (d *DayOff) AppliesTo(barberID *string) bool {
	if d.BarberID == nil {
		return true
	}
	return barberID != nil && *d.BarberID == *barberID
}
