package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by repositories so services can translate them
// into the API error taxonomy.
var (
	// ErrSlotTaken signals a violation of the one-active-booking-per-slot
	// unique index.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrDuplicate signals any other unique-constraint violation.
	ErrDuplicate = errors.New("duplicate row")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
