package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger mutation inputs. Request DTOs convert into these so the write side
// never depends on the transport layer.

type ReserveInput struct {
	PropertyID uuid.UUID
	RoomTypeID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Rooms      int
	BookingID  uuid.UUID
	Source     string
}

type BlockInput struct {
	PropertyID uuid.UUID
	RoomTypeID uuid.UUID
	From       time.Time
	To         time.Time
	Rooms      int
	Reason     string
}

type SetRatesInput struct {
	PropertyID uuid.UUID
	RoomTypeID uuid.UUID
	From       time.Time
	To         time.Time
	BaseRate   decimal.Decimal
	Selling    decimal.Decimal
	Currency   string
}

type MaterializeInput struct {
	PropertyID  uuid.UUID
	RoomTypeID  uuid.UUID
	FromDate    time.Time
	HorizonDays int
}

type ClearDirtyInput struct {
	PropertyID uuid.UUID
	RoomTypeID uuid.UUID
	Date       time.Time
	Channel    string
}
