package errs

import "errors"

// Cross-cutting sentinel errors shared by the usecase layers. Component
// packages keep their own sentinels for failures that only they raise.
var (
	// Lookup errors
	ErrRateNotFound     = errors.New("rate not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// Save-time validation
	ErrValidation = errors.New("validation error")

	// Illegal lifecycle transitions (e.g. editing a non-editable rate)
	ErrStateViolation = errors.New("state violation")

	// Reservation-time failures
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrStayViolation         = errors.New("stay violation")
	ErrRestrictionViolation  = errors.New("restriction violation")

	// Distribution halted for a target
	ErrConflictUnresolved = errors.New("conflict unresolved")

	// Persistence contention or timeout; retried with bounded attempts
	// before it surfaces.
	ErrTransient = errors.New("transient failure")
)
