package readstore

import (
	"context"
	"time"

	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/pkg/pgconv"
	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type InventoryReadStore struct {
	db db.DBTX
}

func NewInventoryReadStore(dbx db.DBTX) *InventoryReadStore {
	return &InventoryReadStore{db: dbx}
}

const findCalendarQuery = `
SELECT
	date, total_rooms,
	GREATEST(total_rooms - sold_rooms - blocked_rooms + overbooked_rooms, 0),
	sold_rooms, blocked_rooms, overbooked_rooms, base_rate, selling_rate,
	currency, stop_sell, closed_to_arrival, closed_to_departure, min_stay,
	max_stay, needs_sync
FROM inventory_records
WHERE property_id = $1 AND room_type_id = $2 AND date >= $3 AND date <= $4
ORDER BY date
`

const dirtyColumns = `
	id, property_id, room_type_id, date,
	GREATEST(total_rooms - sold_rooms - blocked_rooms + overbooked_rooms, 0),
	selling_rate, currency, stop_sell, closed_to_arrival, closed_to_departure,
	min_stay, max_stay, version, updated_at
`

const findDirtyFirstPageQuery = `
SELECT` + dirtyColumns + `
FROM inventory_records
WHERE needs_sync AND ($1::uuid IS NULL OR property_id = $1)
ORDER BY updated_at, id
LIMIT $2
`

const findDirtyKeysetQuery = `
SELECT` + dirtyColumns + `
FROM inventory_records
WHERE needs_sync AND ($1::uuid IS NULL OR property_id = $1)
	AND (updated_at, id) > ($2, $3)
ORDER BY updated_at, id
LIMIT $4
`

func (r *InventoryReadStore) FindCalendar(ctx context.Context, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]*queries.CalendarDay, error) {
	rows, err := r.db.Query(ctx, findCalendarQuery, propertyID, roomTypeID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query calendar", err)
	}
	defer rows.Close()

	var days []*queries.CalendarDay
	for rows.Next() {
		var (
			day         queries.CalendarDay
			date        pgtype.Date
			baseRate    pgtype.Numeric
			sellingRate pgtype.Numeric
		)
		err := rows.Scan(
			&date, &day.TotalRooms, &day.Available, &day.Sold, &day.Blocked,
			&day.Overbooked, &baseRate, &sellingRate, &day.Currency,
			&day.StopSell, &day.ClosedToArrival, &day.ClosedToDep,
			&day.MinStay, &day.MaxStay, &day.NeedsSync,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan calendar day", err)
		}
		day.Date = pgconv.DateFromPgtype(date)
		if day.BaseRate, err = pgconv.DecimalFromPgtype(baseRate); err != nil {
			return nil, infra.WrapRepoErr("failed to decode base rate", err)
		}
		if day.SellingRate, err = pgconv.DecimalFromPgtype(sellingRate); err != nil {
			return nil, infra.WrapRepoErr("failed to decode selling rate", err)
		}
		days = append(days, &day)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read calendar", err)
	}
	return days, nil
}

func (r *InventoryReadStore) FindDirtyFirstPage(ctx context.Context, propertyID *uuid.UUID, limit int32) ([]*queries.SyncRecord, error) {
	return r.queryDirty(ctx, findDirtyFirstPageQuery, pgconv.UUIDPtrToPgtype(propertyID), limit)
}

func (r *InventoryReadStore) FindDirtyKeyset(ctx context.Context, propertyID *uuid.UUID, lastUpdatedAt time.Time, lastRowID uuid.UUID, limit int32) ([]*queries.SyncRecord, error) {
	return r.queryDirty(ctx, findDirtyKeysetQuery, pgconv.UUIDPtrToPgtype(propertyID), pgconv.TimeToPgtype(lastUpdatedAt), lastRowID, limit)
}

func (r *InventoryReadStore) queryDirty(ctx context.Context, query string, args ...any) ([]*queries.SyncRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query dirty inventory", err)
	}
	defer rows.Close()

	var records []*queries.SyncRecord
	for rows.Next() {
		rec, err := scanSyncRecord(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan dirty inventory row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read dirty inventory rows", err)
	}
	return records, nil
}

func scanSyncRecord(row pgx.Row) (*queries.SyncRecord, error) {
	var (
		rec         queries.SyncRecord
		date        pgtype.Date
		sellingRate pgtype.Numeric
		updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&rec.RowID, &rec.PropertyID, &rec.RoomTypeID, &date, &rec.Available,
		&sellingRate, &rec.Currency, &rec.StopSell, &rec.ClosedToArrival,
		&rec.ClosedToDep, &rec.MinStay, &rec.MaxStay, &rec.Version, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Date = pgconv.DateFromPgtype(date)
	if rec.SellingRate, err = pgconv.DecimalFromPgtype(sellingRate); err != nil {
		return nil, err
	}
	rec.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &rec, nil
}
