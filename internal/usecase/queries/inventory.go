package queries

import (
	"context"
	"time"

	"rategrid/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidCalendarRange = errs.New("calendar range end precedes start")

type CalendarDay struct {
	Date            time.Time       `json:"date"`
	TotalRooms      int             `json:"totalRooms"`
	Available       int             `json:"available"`
	Sold            int             `json:"sold"`
	Blocked         int             `json:"blocked"`
	Overbooked      int             `json:"overbooked"`
	BaseRate        decimal.Decimal `json:"baseRate"`
	SellingRate     decimal.Decimal `json:"sellingRate"`
	Currency        string          `json:"currency"`
	StopSell        bool            `json:"stopSell"`
	ClosedToArrival bool            `json:"closedToArrival"`
	ClosedToDep     bool            `json:"closedToDeparture"`
	MinStay         int             `json:"minStay"`
	MaxStay         int             `json:"maxStay"`
	NeedsSync       bool            `json:"needsSync"`
}

// SyncRecord is one dirty ledger row shaped for an outbound channel push.
// RowID exists only to key the cursor; it is not a domain identifier.
type SyncRecord struct {
	RowID           uuid.UUID       `json:"rowId"`
	PropertyID      uuid.UUID       `json:"propertyId"`
	RoomTypeID      uuid.UUID       `json:"roomTypeId"`
	Date            time.Time       `json:"date"`
	Available       int             `json:"available"`
	SellingRate     decimal.Decimal `json:"sellingRate"`
	Currency        string          `json:"currency"`
	StopSell        bool            `json:"stopSell"`
	ClosedToArrival bool            `json:"closedToArrival"`
	ClosedToDep     bool            `json:"closedToDeparture"`
	MinStay         int             `json:"minStay"`
	MaxStay         int             `json:"maxStay"`
	Version         int64           `json:"version"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type InventoryReadStore interface {
	FindCalendar(ctx context.Context, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]*CalendarDay, error)
	FindDirtyFirstPage(ctx context.Context, propertyID *uuid.UUID, limit int32) ([]*SyncRecord, error)
	FindDirtyKeyset(ctx context.Context, propertyID *uuid.UUID, lastUpdatedAt time.Time, lastRowID uuid.UUID, limit int32) ([]*SyncRecord, error)
}

type InventoryQueries interface {
	Calendar(ctx context.Context, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]*CalendarDay, error)
	// SnapshotForSync pages through needs-sync rows for the outbound adapter.
	SnapshotForSync(ctx context.Context, propertyID *uuid.UUID, cursor *Cursor, limit int) ([]*SyncRecord, *Cursor, error)
}

type inventoryQueriesImpl struct {
	repo InventoryReadStore
}

func NewInventoryQueries(repo InventoryReadStore) InventoryQueries {
	return &inventoryQueriesImpl{repo: repo}
}

func (q *inventoryQueriesImpl) Calendar(ctx context.Context, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]*CalendarDay, error) {
	if to.Before(from) {
		return nil, errs.Mark(ErrInvalidCalendarRange, errs.ErrValidation)
	}
	return q.repo.FindCalendar(ctx, propertyID, roomTypeID, from, to)
}

func (q *inventoryQueriesImpl) SnapshotForSync(ctx context.Context, propertyID *uuid.UUID, cursor *Cursor, limit int) ([]*SyncRecord, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*SyncRecord
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindDirtyFirstPage(ctx, propertyID, int32(limit+1))
	} else {
		lastUpdatedAt, lastRowID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindDirtyKeyset(ctx, propertyID, lastUpdatedAt, lastRowID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.UpdatedAt, last.RowID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
