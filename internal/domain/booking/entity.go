// Package booking is the consumer-side record of a stay held against the
// inventory ledger.
package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStayDates  = errors.New("check-out must be after check-in")
	ErrNoRooms           = errors.New("at least one room is required")
	ErrNoGuests          = errors.New("at least one adult is required")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrMissingExternalID = errors.New("channel bookings need an external booking id")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

type GuestDetails struct {
	Adults   int
	Children int
	Country  string
}

// Amounts keeps our quoted figure and the channel-reported figure side by
// side; neither is trusted as the other.
type Amounts struct {
	Quoted   *decimal.Decimal
	Reported *decimal.Decimal
	Currency string
}

type Booking struct {
	id               uuid.UUID
	propertyID       uuid.UUID
	roomTypeID       uuid.UUID
	rateID           *uuid.UUID
	checkIn          time.Time
	checkOut         time.Time
	rooms            int
	guests           GuestDetails
	source           string
	externalID       string
	confirmationCode string
	specialRequests  string
	amounts          Amounts
	status           Status
	createdAt        time.Time
	updatedAt        time.Time
	cancelledAt      *time.Time
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type NewBookingParams struct {
	PropertyID       uuid.UUID
	RoomTypeID       uuid.UUID
	RateID           *uuid.UUID
	CheckIn          time.Time
	CheckOut         time.Time
	Rooms            int
	Guests           GuestDetails
	Source           string
	ExternalID       string
	ConfirmationCode string
	SpecialRequests  string
	Amounts          Amounts
}

func New(p NewBookingParams, now time.Time) (*Booking, error) {
	checkIn, checkOut := day(p.CheckIn), day(p.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidStayDates
	}
	if p.Rooms < 1 {
		return nil, ErrNoRooms
	}
	if p.Guests.Adults < 1 {
		return nil, ErrNoGuests
	}
	if p.Source != "direct" && p.ExternalID == "" {
		return nil, ErrMissingExternalID
	}
	return &Booking{
		id:               uuid.New(),
		propertyID:       p.PropertyID,
		roomTypeID:       p.RoomTypeID,
		rateID:           p.RateID,
		checkIn:          checkIn,
		checkOut:         checkOut,
		rooms:            p.Rooms,
		guests:           p.Guests,
		source:           p.Source,
		externalID:       p.ExternalID,
		confirmationCode: p.ConfirmationCode,
		specialRequests:  p.SpecialRequests,
		amounts:          p.Amounts,
		status:           StatusConfirmed,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func Reconstruct(
	id, propertyID, roomTypeID uuid.UUID,
	rateID *uuid.UUID,
	checkIn, checkOut time.Time,
	rooms int,
	guests GuestDetails,
	source, externalID, confirmationCode, specialRequests string,
	amounts Amounts,
	status Status,
	createdAt, updatedAt time.Time,
	cancelledAt *time.Time,
) *Booking {
	return &Booking{
		id:               id,
		propertyID:       propertyID,
		roomTypeID:       roomTypeID,
		rateID:           rateID,
		checkIn:          checkIn,
		checkOut:         checkOut,
		rooms:            rooms,
		guests:           guests,
		source:           source,
		externalID:       externalID,
		confirmationCode: confirmationCode,
		specialRequests:  specialRequests,
		amounts:          amounts,
		status:           status,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		cancelledAt:      cancelledAt,
	}
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) PropertyID() uuid.UUID    { return b.propertyID }
func (b *Booking) RoomTypeID() uuid.UUID    { return b.roomTypeID }
func (b *Booking) RateID() *uuid.UUID       { return b.rateID }
func (b *Booking) CheckIn() time.Time       { return b.checkIn }
func (b *Booking) CheckOut() time.Time      { return b.checkOut }
func (b *Booking) Rooms() int               { return b.rooms }
func (b *Booking) Guests() GuestDetails     { return b.guests }
func (b *Booking) Source() string           { return b.source }
func (b *Booking) ExternalID() string       { return b.externalID }
func (b *Booking) ConfirmationCode() string { return b.confirmationCode }
func (b *Booking) SpecialRequests() string  { return b.specialRequests }
func (b *Booking) Amounts() Amounts         { return b.amounts }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
func (b *Booking) CancelledAt() *time.Time  { return b.cancelledAt }

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) Nights() int {
	return int(b.checkOut.Sub(b.checkIn) / (24 * time.Hour))
}

// Cancel flips the booking to cancelled; the caller releases inventory.
func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	t := now
	b.cancelledAt = &t
	b.updatedAt = now
	return nil
}

// Reschedule applies a channel modification: new stay shape and reported
// amounts. The caller re-reserves inventory under the same transaction.
func (b *Booking) Reschedule(checkIn, checkOut time.Time, rooms int, amounts Amounts, now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	ci, co := day(checkIn), day(checkOut)
	if !co.After(ci) {
		return ErrInvalidStayDates
	}
	if rooms < 1 {
		return ErrNoRooms
	}
	b.checkIn = ci
	b.checkOut = co
	b.rooms = rooms
	b.amounts = amounts
	b.updatedAt = now
	return nil
}
