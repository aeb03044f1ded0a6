//go:build unit || e2e

package builder

import (
	"time"

	dominv "rategrid/internal/domain/inventory"
	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryBuilder struct {
	PropertyID        uuid.UUID
	RoomTypeID        uuid.UUID
	Date              time.Time
	TotalRooms        int
	SoldRooms         int
	BlockedRooms      int
	OverbookedRooms   int
	BaseRate          decimal.Decimal
	SellingRate       decimal.Decimal
	Currency          string
	StopSell          bool
	ClosedToArrival   bool
	ClosedToDeparture bool
	MinStay           int
	MaxStay           int
	NeedsSync         bool
	Reservations      []dominv.ReservationLine
	Version           int64
	UpdatedAt         time.Time
}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{
		PropertyID:  uuid.New(),
		RoomTypeID:  uuid.New(),
		Date:        time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
		TotalRooms:  20,
		BaseRate:    decimal.NewFromInt(120),
		SellingRate: decimal.NewFromInt(120),
		Currency:    "EUR",
		MinStay:     1,
		Version:     1,
		UpdatedAt:   time.Now(),
	}
}

func (i *InventoryBuilder) With(mutate func(*InventoryBuilder)) *InventoryBuilder {
	mutate(i)
	return i
}

// Build methods
func (i *InventoryBuilder) BuildDomain() (*dominv.Record, error) {
	return dominv.NewRecord(i.PropertyID, i.RoomTypeID, i.Date, i.TotalRooms, i.BaseRate, i.Currency, i.UpdatedAt)
}

func (i *InventoryBuilder) BuildSnapshot() dominv.Snapshot {
	available := i.TotalRooms - i.SoldRooms - i.BlockedRooms + i.OverbookedRooms
	if available < 0 {
		available = 0
	}
	return dominv.Snapshot{
		PropertyID:        i.PropertyID,
		RoomTypeID:        i.RoomTypeID,
		Date:              i.Date,
		TotalRooms:        i.TotalRooms,
		SoldRooms:         i.SoldRooms,
		BlockedRooms:      i.BlockedRooms,
		OverbookedRooms:   i.OverbookedRooms,
		AvailableRooms:    available,
		BaseRate:          i.BaseRate,
		SellingRate:       i.SellingRate,
		Currency:          i.Currency,
		StopSell:          i.StopSell,
		ClosedToArrival:   i.ClosedToArrival,
		ClosedToDeparture: i.ClosedToDeparture,
		MinStay:           i.MinStay,
		MaxStay:           i.MaxStay,
		NeedsSync:         i.NeedsSync,
		Reservations:      i.Reservations,
		Version:           i.Version,
		UpdatedAt:         i.UpdatedAt,
	}
}

// BuildReconstructed rehydrates a record with sold and blocked counts in
// place, skipping the reserve calls that would normally produce them.
func (i *InventoryBuilder) BuildReconstructed() *dominv.Record {
	return dominv.Reconstruct(i.BuildSnapshot())
}

func (i *InventoryBuilder) BuildCalendarDay() *queries.CalendarDay {
	available := i.TotalRooms - i.SoldRooms - i.BlockedRooms + i.OverbookedRooms
	if available < 0 {
		available = 0
	}
	return &queries.CalendarDay{
		Date:            i.Date,
		TotalRooms:      i.TotalRooms,
		Available:       available,
		Sold:            i.SoldRooms,
		Blocked:         i.BlockedRooms,
		Overbooked:      i.OverbookedRooms,
		BaseRate:        i.BaseRate,
		SellingRate:     i.SellingRate,
		Currency:        i.Currency,
		StopSell:        i.StopSell,
		ClosedToArrival: i.ClosedToArrival,
		ClosedToDep:     i.ClosedToDeparture,
		MinStay:         i.MinStay,
		MaxStay:         i.MaxStay,
		NeedsSync:       i.NeedsSync,
	}
}

func (i *InventoryBuilder) BuildSyncRecord() *queries.SyncRecord {
	available := i.TotalRooms - i.SoldRooms - i.BlockedRooms + i.OverbookedRooms
	if available < 0 {
		available = 0
	}
	return &queries.SyncRecord{
		RowID:           uuid.New(),
		PropertyID:      i.PropertyID,
		RoomTypeID:      i.RoomTypeID,
		Date:            i.Date,
		Available:       available,
		SellingRate:     i.SellingRate,
		Currency:        i.Currency,
		StopSell:        i.StopSell,
		ClosedToArrival: i.ClosedToArrival,
		ClosedToDep:     i.ClosedToDeparture,
		MinStay:         i.MinStay,
		MaxStay:         i.MaxStay,
		Version:         i.Version,
		UpdatedAt:       i.UpdatedAt,
	}
}

// Fluent builder methods
func (i *InventoryBuilder) WithPropertyID(propertyID uuid.UUID) *InventoryBuilder {
	i.PropertyID = propertyID
	return i
}

func (i *InventoryBuilder) WithRoomTypeID(roomTypeID uuid.UUID) *InventoryBuilder {
	i.RoomTypeID = roomTypeID
	return i
}

func (i *InventoryBuilder) WithDate(date time.Time) *InventoryBuilder {
	i.Date = date
	return i
}

func (i *InventoryBuilder) WithTotalRooms(total int) *InventoryBuilder {
	i.TotalRooms = total
	return i
}

func (i *InventoryBuilder) WithSold(sold int) *InventoryBuilder {
	i.SoldRooms = sold
	return i
}

func (i *InventoryBuilder) WithBlocked(blocked int) *InventoryBuilder {
	i.BlockedRooms = blocked
	return i
}

func (i *InventoryBuilder) WithRates(base, selling decimal.Decimal) *InventoryBuilder {
	i.BaseRate = base
	i.SellingRate = selling
	return i
}

func (i *InventoryBuilder) WithStayBounds(minStay, maxStay int) *InventoryBuilder {
	i.MinStay = minStay
	i.MaxStay = maxStay
	return i
}

func (i *InventoryBuilder) WithReservation(bookingID uuid.UUID, rooms int, source string) *InventoryBuilder {
	i.Reservations = append(i.Reservations, dominv.ReservationLine{
		BookingID:  bookingID,
		Rooms:      rooms,
		Source:     source,
		ReservedAt: i.UpdatedAt,
	})
	i.SoldRooms += rooms
	return i
}

func (i *InventoryBuilder) AsStopSell() *InventoryBuilder {
	i.StopSell = true
	return i
}

func (i *InventoryBuilder) AsSoldOut() *InventoryBuilder {
	i.SoldRooms = i.TotalRooms
	return i
}

func (i *InventoryBuilder) AsDirty() *InventoryBuilder {
	i.NeedsSync = true
	return i
}
