package models

// CreateBookingRequest is the payload for submitting an appointment. A nil
// BarberID books the barberless open-day resource.
type CreateBookingRequest struct {
	BarberID     *string `json:"barber_id"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string  `json:"time" validate:"required,datetime=15:04"`
	FullName     string  `json:"full_name" validate:"required,max=120"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"required,max=32"`
	Service      string  `json:"service" validate:"required,max=120"`
	Comment      string  `json:"comment" validate:"max=1000"`
	SendReminder *bool   `json:"send_reminder"`
}

// RejectBookingRequest carries the rejection reason and optional
// informational alternative slots.
type RejectBookingRequest struct {
	Reason       string            `json:"reason" validate:"required,max=500"`
	Alternatives []SlotAlternative `json:"alternatives" validate:"dive"`
}

// RescheduleBookingRequest moves a booking to a new slot.
type RescheduleBookingRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// WorkHoursRequest replaces a barber's working-hours policy.
type WorkHoursRequest struct {
	StartHour            int  `json:"start_hour" validate:"min=0,max=23"`
	EndHour              int  `json:"end_hour" validate:"min=1,max=24,gtfield=StartHour"`
	WednesdayStart       *int `json:"wednesday_start" validate:"omitempty,min=0,max=23"`
	LunchBreak           bool `json:"lunch_break"`
	SlotIntervalMinutes  int  `json:"slot_interval_minutes" validate:"min=5,max=120"`
	AcceptsOnlineBooking bool `json:"accepts_online_booking"`
}

// CreateDayOffRequest blocks a full calendar day, optionally for one barber.
type CreateDayOffRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	BarberID *string `json:"barber_id"`
	Reason   string  `json:"reason" validate:"max=500"`
}

// OpenDayRequest opens a day for booking, optionally overriding the default
// hourly times.
type OpenDayRequest struct {
	Date  string   `json:"date" validate:"required,datetime=2006-01-02"`
	Times []string `json:"times" validate:"omitempty,dive,datetime=15:04"`
}
