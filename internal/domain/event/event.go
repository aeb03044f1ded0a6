// Package event defines the domain events the core emits on state
// transitions. Construction is pure; delivery belongs to infra.
package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindRateCreated       Kind = "rate.created"
	KindRateStatusChanged Kind = "rate.status_changed"
	KindRateDistributed   Kind = "rate.distributed"
	KindConflictDetected  Kind = "rate.conflict_detected"
	KindConflictResolved  Kind = "rate.conflict_resolved"
	KindInventoryReserved Kind = "inventory.reserved"
	KindInventoryReleased Kind = "inventory.released"
	KindInventoryBlocked  Kind = "inventory.blocked"
	KindRatesUpdated      Kind = "inventory.rates_updated"
	KindBookingCreated    Kind = "booking.created"
	KindBookingModified   Kind = "booking.modified"
	KindBookingCancelled  Kind = "booking.cancelled"
)

type Event struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	AggregateID uuid.UUID `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload"`
}

func New(kind Kind, aggregateID uuid.UUID, at time.Time, payload any) Event {
	return Event{
		ID:          uuid.New(),
		Kind:        kind,
		AggregateID: aggregateID,
		OccurredAt:  at,
		Payload:     payload,
	}
}

type RateCreatedPayload struct {
	RateID   uuid.UUID `json:"rateId"`
	GroupID  uuid.UUID `json:"groupId"`
	RateType string    `json:"rateType"`
	Name     string    `json:"name"`
}

type StatusChangedPayload struct {
	RateID  uuid.UUID `json:"rateId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Version int64     `json:"version"`
}

type DistributedPayload struct {
	RateID  uuid.UUID   `json:"rateId"`
	Synced  []uuid.UUID `json:"synced"`
	Failed  []uuid.UUID `json:"failed"`
	Overall string      `json:"overall"`
}

type ConflictPayload struct {
	RateID       uuid.UUID  `json:"rateId"`
	OtherRateID  uuid.UUID  `json:"otherRateId"`
	Kind         string     `json:"kind"`
	OverlapStart time.Time  `json:"overlapStart"`
	OverlapEnd   time.Time  `json:"overlapEnd"`
	Resolution   string     `json:"resolution,omitempty"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

type InventoryPayload struct {
	PropertyID uuid.UUID `json:"propertyId"`
	RoomTypeID uuid.UUID `json:"roomTypeId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Rooms      int       `json:"rooms"`
	BookingID  uuid.UUID `json:"bookingId,omitempty"`
	Source     string    `json:"source,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

type RatesUpdatedPayload struct {
	PropertyID  uuid.UUID       `json:"propertyId"`
	RoomTypeID  uuid.UUID       `json:"roomTypeId"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	BaseRate    decimal.Decimal `json:"baseRate"`
	SellingRate decimal.Decimal `json:"sellingRate"`
	Currency    string          `json:"currency"`
}

type BookingPayload struct {
	BookingID  uuid.UUID `json:"bookingId"`
	PropertyID uuid.UUID `json:"propertyId"`
	RoomTypeID uuid.UUID `json:"roomTypeId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Rooms      int       `json:"rooms"`
	Source     string    `json:"source"`
	ExternalID string    `json:"externalId,omitempty"`
}
