// Package inventory holds the per-(property, room type, date) availability
// record. All arithmetic keeps the conservation identity
// total = available + sold + blocked - overbooked.
package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeRooms    = errors.New("room count cannot be negative")
	ErrNegativeRate     = errors.New("rate cannot be negative")
	ErrInvalidCurrency  = errors.New("currency must be a three-letter code")
	ErrInvalidStayBound = errors.New("minimum stay must not exceed maximum stay")
)

type FailureReason string

const (
	ReasonInsufficientRooms FailureReason = "InsufficientRooms"
	ReasonOverbookLimit     FailureReason = "OverbookLimitReached"
	ReasonStopSell          FailureReason = "StopSell"
	ReasonClosedToArrival   FailureReason = "ClosedToArrival"
	ReasonClosedToDeparture FailureReason = "ClosedToDeparture"
	ReasonBelowMinStay      FailureReason = "BelowMinStay"
	ReasonAboveMaxStay      FailureReason = "AboveMaxStay"
)

// UnavailableError carries the offending date and reason for a refused
// ledger mutation.
type UnavailableError struct {
	Reason FailureReason
	Date   time.Time
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s on %s", e.Reason, e.Date.Format("2006-01-02"))
}

// IsStayViolation separates stay-shape failures from inventory and
// restriction failures for the caller's error taxonomy.
func (e *UnavailableError) IsStayViolation() bool {
	return e.Reason == ReasonBelowMinStay || e.Reason == ReasonAboveMaxStay
}

func (e *UnavailableError) IsRestriction() bool {
	switch e.Reason {
	case ReasonStopSell, ReasonClosedToArrival, ReasonClosedToDeparture:
		return true
	default:
		return false
	}
}

// OverbookPolicy is the property-level opt-in carried into reserve calls.
// Only direct-source reservations may overbook.
type OverbookPolicy struct {
	Allowed bool
	Limit   int
}

// SourceDirect marks reservations entering through the internal flow rather
// than a sales channel.
const SourceDirect = "direct"

// ReservationLine ties sold rooms back to the booking that holds them.
type ReservationLine struct {
	BookingID  uuid.UUID
	Rooms      int
	Source     string
	ReservedAt time.Time
}

// ChannelCount is the last availability figure pushed to one channel.
type ChannelCount struct {
	Channel   string
	Available int
	PushedAt  time.Time
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return day(a).Equal(day(b))
}

// Record is one ledger row. Exactly one exists per key; it is created by
// materialization and mutated under per-key serialization by the store.
type Record struct {
	propertyID      uuid.UUID
	roomTypeID      uuid.UUID
	date            time.Time
	totalRooms      int
	soldRooms       int
	blockedRooms    int
	overbookedRooms int
	baseRate        decimal.Decimal
	sellingRate     decimal.Decimal
	currency        string
	stopSell        bool
	closedToArrival bool
	closedToDep     bool
	minStay         int
	maxStay         int
	needsSync       bool
	reservations    []ReservationLine
	channelCounts   []ChannelCount
	version         int64
	updatedAt       time.Time
}

// NewRecord materializes a fresh row from room-type defaults. New rows are
// sync-dirty so channels learn about the opened dates.
func NewRecord(propertyID, roomTypeID uuid.UUID, date time.Time, totalRooms int, baseRate decimal.Decimal, currency string, now time.Time) (*Record, error) {
	if totalRooms < 0 {
		return nil, ErrNegativeRooms
	}
	if baseRate.IsNegative() {
		return nil, ErrNegativeRate
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	return &Record{
		propertyID:  propertyID,
		roomTypeID:  roomTypeID,
		date:        day(date),
		totalRooms:  totalRooms,
		baseRate:    baseRate,
		sellingRate: baseRate,
		currency:    currency,
		minStay:     1,
		needsSync:   true,
		version:     1,
		updatedAt:   now,
	}, nil
}

type Snapshot struct {
	PropertyID        uuid.UUID
	RoomTypeID        uuid.UUID
	Date              time.Time
	TotalRooms        int
	SoldRooms         int
	BlockedRooms      int
	OverbookedRooms   int
	AvailableRooms    int
	BaseRate          decimal.Decimal
	SellingRate       decimal.Decimal
	Currency          string
	StopSell          bool
	ClosedToArrival   bool
	ClosedToDeparture bool
	MinStay           int
	MaxStay           int
	NeedsSync         bool
	Reservations      []ReservationLine
	ChannelCounts     []ChannelCount
	Version           int64
	UpdatedAt         time.Time
}

func Reconstruct(s Snapshot) *Record {
	return &Record{
		propertyID:      s.PropertyID,
		roomTypeID:      s.RoomTypeID,
		date:            day(s.Date),
		totalRooms:      s.TotalRooms,
		soldRooms:       s.SoldRooms,
		blockedRooms:    s.BlockedRooms,
		overbookedRooms: s.OverbookedRooms,
		baseRate:        s.BaseRate,
		sellingRate:     s.SellingRate,
		currency:        s.Currency,
		stopSell:        s.StopSell,
		closedToArrival: s.ClosedToArrival,
		closedToDep:     s.ClosedToDeparture,
		minStay:         s.MinStay,
		maxStay:         s.MaxStay,
		needsSync:       s.NeedsSync,
		reservations:    s.Reservations,
		channelCounts:   s.ChannelCounts,
		version:         s.Version,
		updatedAt:       s.UpdatedAt,
	}
}

func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		PropertyID:        r.propertyID,
		RoomTypeID:        r.roomTypeID,
		Date:              r.date,
		TotalRooms:        r.totalRooms,
		SoldRooms:         r.soldRooms,
		BlockedRooms:      r.blockedRooms,
		OverbookedRooms:   r.overbookedRooms,
		AvailableRooms:    r.Available(),
		BaseRate:          r.baseRate,
		SellingRate:       r.sellingRate,
		Currency:          r.currency,
		StopSell:          r.stopSell,
		ClosedToArrival:   r.closedToArrival,
		ClosedToDeparture: r.closedToDep,
		MinStay:           r.minStay,
		MaxStay:           r.maxStay,
		NeedsSync:         r.needsSync,
		Reservations:      r.reservations,
		ChannelCounts:     r.channelCounts,
		Version:           r.version,
		UpdatedAt:         r.updatedAt,
	}
}

func (r *Record) PropertyID() uuid.UUID          { return r.propertyID }
func (r *Record) RoomTypeID() uuid.UUID          { return r.roomTypeID }
func (r *Record) Date() time.Time                { return r.date }
func (r *Record) TotalRooms() int                { return r.totalRooms }
func (r *Record) SoldRooms() int                 { return r.soldRooms }
func (r *Record) BlockedRooms() int              { return r.blockedRooms }
func (r *Record) OverbookedRooms() int           { return r.overbookedRooms }
func (r *Record) BaseRate() decimal.Decimal      { return r.baseRate }
func (r *Record) SellingRate() decimal.Decimal   { return r.sellingRate }
func (r *Record) Currency() string               { return r.currency }
func (r *Record) StopSell() bool                 { return r.stopSell }
func (r *Record) ClosedToArrival() bool          { return r.closedToArrival }
func (r *Record) ClosedToDeparture() bool        { return r.closedToDep }
func (r *Record) MinStay() int                   { return r.minStay }
func (r *Record) MaxStay() int                   { return r.maxStay }
func (r *Record) NeedsSync() bool                { return r.needsSync }
func (r *Record) Reservations() []ReservationLine { return r.reservations }
func (r *Record) ChannelCounts() []ChannelCount  { return r.channelCounts }
func (r *Record) Version() int64                 { return r.version }
func (r *Record) UpdatedAt() time.Time           { return r.updatedAt }

// Available never goes negative; oversell shows up in OverbookedRooms
// instead so the conservation identity holds.
func (r *Record) Available() int {
	avail := r.totalRooms - r.soldRooms - r.blockedRooms + r.overbookedRooms
	if avail < 0 {
		return 0
	}
	return avail
}

func (r *Record) recomputeOverbooked() {
	over := r.soldRooms + r.blockedRooms - r.totalRooms
	if over < 0 {
		over = 0
	}
	r.overbookedRooms = over
}

func (r *Record) touch(now time.Time) {
	r.needsSync = true
	r.updatedAt = now
}

// ValidateStay checks the stay shape against this record's bounds; callers
// evaluate it on the check-in date's record.
func (r *Record) ValidateStay(nights int) *UnavailableError {
	if nights < r.minStay {
		return &UnavailableError{Reason: ReasonBelowMinStay, Date: r.date}
	}
	if r.maxStay > 0 && nights > r.maxStay {
		return &UnavailableError{Reason: ReasonAboveMaxStay, Date: r.date}
	}
	return nil
}

// CanReserve answers whether the given rooms fit on this date. Overbooking
// applies only when the policy allows it, the oversell stays within the
// limit, and the reservation is direct.
func (r *Record) CanReserve(rooms int, checkIn time.Time, source string, policy OverbookPolicy) *UnavailableError {
	if rooms <= 0 {
		return &UnavailableError{Reason: ReasonInsufficientRooms, Date: r.date}
	}
	if r.stopSell {
		return &UnavailableError{Reason: ReasonStopSell, Date: r.date}
	}
	if r.closedToArrival && sameDay(r.date, checkIn) {
		return &UnavailableError{Reason: ReasonClosedToArrival, Date: r.date}
	}
	if rooms <= r.Available() {
		return nil
	}
	if !policy.Allowed || source != SourceDirect {
		return &UnavailableError{Reason: ReasonInsufficientRooms, Date: r.date}
	}
	oversell := r.soldRooms + rooms + r.blockedRooms - r.totalRooms
	if oversell > policy.Limit {
		return &UnavailableError{Reason: ReasonOverbookLimit, Date: r.date}
	}
	return nil
}

// Reserve applies the sale after CanReserve passed.
func (r *Record) Reserve(bookingID uuid.UUID, rooms int, source string, checkIn, now time.Time, policy OverbookPolicy) *UnavailableError {
	if ue := r.CanReserve(rooms, checkIn, source, policy); ue != nil {
		return ue
	}
	r.soldRooms += rooms
	r.recomputeOverbooked()
	r.reservations = append(r.reservations, ReservationLine{
		BookingID:  bookingID,
		Rooms:      rooms,
		Source:     source,
		ReservedAt: now,
	})
	r.touch(now)
	return nil
}

// Release undoes the booking's hold on this date. Releasing a booking that
// holds nothing here is a no-op, which makes cancellation idempotent.
func (r *Record) Release(bookingID uuid.UUID, now time.Time) (released int, changed bool) {
	kept := r.reservations[:0]
	for _, line := range r.reservations {
		if line.BookingID == bookingID {
			released += line.Rooms
			continue
		}
		kept = append(kept, line)
	}
	if released == 0 {
		return 0, false
	}
	r.reservations = kept
	r.soldRooms -= released
	if r.soldRooms < 0 {
		r.soldRooms = 0
	}
	r.recomputeOverbooked()
	r.touch(now)
	return released, true
}

// Block moves rooms out of sale. Blocks never overbook.
func (r *Record) Block(rooms int, now time.Time) *UnavailableError {
	if rooms <= 0 || rooms > r.Available() {
		return &UnavailableError{Reason: ReasonInsufficientRooms, Date: r.date}
	}
	r.blockedRooms += rooms
	r.recomputeOverbooked()
	r.touch(now)
	return nil
}

// SetRates overwrites the selling figures for this date.
func (r *Record) SetRates(base, selling decimal.Decimal, currency string, now time.Time) error {
	if base.IsNegative() || selling.IsNegative() {
		return ErrNegativeRate
	}
	if len(currency) != 3 {
		return ErrInvalidCurrency
	}
	r.baseRate = base
	r.sellingRate = selling
	r.currency = currency
	r.touch(now)
	return nil
}

// SetRestrictions applies distribution-sourced selling rules.
func (r *Record) SetRestrictions(stopSell, cta, ctd bool, minStay, maxStay int, now time.Time) error {
	if minStay < 0 || maxStay < 0 || (maxStay > 0 && minStay > maxStay) {
		return ErrInvalidStayBound
	}
	r.stopSell = stopSell
	r.closedToArrival = cta
	r.closedToDep = ctd
	r.minStay = minStay
	r.maxStay = maxStay
	r.touch(now)
	return nil
}

// ClearDirty acknowledges a successful outbound push for one channel and
// records what that channel now believes.
func (r *Record) ClearDirty(channel string, now time.Time) {
	count := ChannelCount{Channel: channel, Available: r.Available(), PushedAt: now}
	for i := range r.channelCounts {
		if r.channelCounts[i].Channel == channel {
			r.channelCounts[i] = count
			r.needsSync = false
			r.updatedAt = now
			return
		}
	}
	r.channelCounts = append(r.channelCounts, count)
	r.needsSync = false
	r.updatedAt = now
}
