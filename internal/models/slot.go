package models

// EffectivePolicy is the working-hours rule set that applies to one barber on
// one calendar date, after day offs, the Sunday rule and weekday overrides
// have been resolved.
type EffectivePolicy struct {
	StartMinute     int    `json:"start_minute"`
	EndMinute       int    `json:"end_minute"`
	IntervalMinutes int    `json:"interval_minutes"`
	LunchBreak      bool   `json:"lunch_break"`
	Blocked         bool   `json:"blocked"`
	BlockReason     string `json:"block_reason,omitempty"`
}

// Slot is a single offerable time point annotated with its occupancy.
type Slot struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

// DayAvailability is the availability calendar for one barber and date.
type DayAvailability struct {
	BarberID string `json:"barber_id"`
	Date     string `json:"date"`
	Blocked  bool   `json:"blocked"`
	Reason   string `json:"reason,omitempty"`
	Slots    []Slot `json:"slots"`
}
