package repository

import (
	"context"
	"time"

	"rategrid/internal/domain/inventory"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/infra/repository/converter"
	"rategrid/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// InventoryRepository persists one ledger row per (property, roomType, date).
// Every write bumps the row version; writers carry the version they loaded so
// a concurrent bump fails the statement instead of silently losing counts.
type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

const inventoryColumns = `
	property_id, room_type_id, date, total_rooms, sold_rooms, blocked_rooms,
	overbooked_rooms, GREATEST(total_rooms - sold_rooms - blocked_rooms + overbooked_rooms, 0),
	base_rate, selling_rate, currency, stop_sell, closed_to_arrival,
	closed_to_departure, min_stay, max_stay, needs_sync, reservations,
	channel_counts, version, updated_at
`

const findSpanForUpdateQuery = `
SELECT` + inventoryColumns + `
FROM inventory_records
WHERE property_id = $1 AND room_type_id = $2 AND date >= $3 AND date < $4
ORDER BY date
FOR UPDATE
`

const findOneInventoryQuery = `
SELECT` + inventoryColumns + `
FROM inventory_records
WHERE property_id = $1 AND room_type_id = $2 AND date = $3
`

const findByBookingForUpdateQuery = `
SELECT` + inventoryColumns + `
FROM inventory_records
WHERE reservations @> jsonb_build_array(jsonb_build_object('bookingId', $1::text))
ORDER BY date
FOR UPDATE
`

const saveInventoryQuery = `
UPDATE inventory_records SET
	total_rooms = $4, sold_rooms = $5, blocked_rooms = $6, overbooked_rooms = $7,
	base_rate = $8, selling_rate = $9, currency = $10, stop_sell = $11,
	closed_to_arrival = $12, closed_to_departure = $13, min_stay = $14,
	max_stay = $15, needs_sync = $16, reservations = $17, channel_counts = $18,
	version = version + 1, updated_at = $19
WHERE property_id = $1 AND room_type_id = $2 AND date = $3 AND version = $20
`

const insertMissingInventoryQuery = `
INSERT INTO inventory_records (
	property_id, room_type_id, date, total_rooms, sold_rooms, blocked_rooms,
	overbooked_rooms, base_rate, selling_rate, currency, stop_sell,
	closed_to_arrival, closed_to_departure, min_stay, max_stay, needs_sync,
	reservations, channel_counts, version, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
ON CONFLICT (property_id, room_type_id, date) DO NOTHING
`

func (r *InventoryRepository) FindSpanForUpdate(ctx context.Context, tx db.DBTX, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]inventory.Snapshot, error) {
	return r.findMany(ctx, tx, findSpanForUpdateQuery, propertyID, roomTypeID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
}

func (r *InventoryRepository) FindOne(ctx context.Context, dbx db.DBTX, propertyID, roomTypeID uuid.UUID, date time.Time) (*inventory.Snapshot, error) {
	snap, err := scanInventory(dbx.QueryRow(ctx, findOneInventoryQuery, propertyID, roomTypeID, pgconv.DateToPgtype(date)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("inventory record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find inventory record", err)
	}
	return snap, nil
}

func (r *InventoryRepository) FindByBookingForUpdate(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) ([]inventory.Snapshot, error) {
	return r.findMany(ctx, tx, findByBookingForUpdateQuery, bookingID)
}

func (r *InventoryRepository) findMany(ctx context.Context, dbx db.DBTX, query string, args ...any) ([]inventory.Snapshot, error) {
	rows, err := dbx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query inventory records", err)
	}
	defer rows.Close()

	var snaps []inventory.Snapshot
	for rows.Next() {
		snap, err := scanInventory(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan inventory record", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read inventory records", err)
	}
	return snaps, nil
}

func (r *InventoryRepository) Save(ctx context.Context, tx db.DBTX, snap inventory.Snapshot) error {
	reservations, err := converter.MarshalReservationLines(snap.Reservations)
	if err != nil {
		return infra.WrapRepoErr("failed to encode reservations", err)
	}
	channelCounts, err := converter.MarshalChannelCounts(snap.ChannelCounts)
	if err != nil {
		return infra.WrapRepoErr("failed to encode channel counts", err)
	}
	tag, err := tx.Exec(ctx, saveInventoryQuery,
		snap.PropertyID, snap.RoomTypeID, pgconv.DateToPgtype(snap.Date),
		snap.TotalRooms, snap.SoldRooms, snap.BlockedRooms, snap.OverbookedRooms,
		pgconv.DecimalToPgtype(snap.BaseRate), pgconv.DecimalToPgtype(snap.SellingRate),
		snap.Currency, snap.StopSell, snap.ClosedToArrival, snap.ClosedToDeparture,
		snap.MinStay, snap.MaxStay, snap.NeedsSync, reservations, channelCounts,
		pgconv.TimeToPgtype(snap.UpdatedAt), snap.Version,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save inventory record", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("inventory record version changed", nil, infra.KindConflict)
	}
	return nil
}

func (r *InventoryRepository) InsertMissing(ctx context.Context, tx db.DBTX, snaps []inventory.Snapshot) (int, error) {
	created := 0
	for _, snap := range snaps {
		reservations, err := converter.MarshalReservationLines(snap.Reservations)
		if err != nil {
			return created, infra.WrapRepoErr("failed to encode reservations", err)
		}
		channelCounts, err := converter.MarshalChannelCounts(snap.ChannelCounts)
		if err != nil {
			return created, infra.WrapRepoErr("failed to encode channel counts", err)
		}
		tag, err := tx.Exec(ctx, insertMissingInventoryQuery,
			snap.PropertyID, snap.RoomTypeID, pgconv.DateToPgtype(snap.Date),
			snap.TotalRooms, snap.SoldRooms, snap.BlockedRooms, snap.OverbookedRooms,
			pgconv.DecimalToPgtype(snap.BaseRate), pgconv.DecimalToPgtype(snap.SellingRate),
			snap.Currency, snap.StopSell, snap.ClosedToArrival, snap.ClosedToDeparture,
			snap.MinStay, snap.MaxStay, snap.NeedsSync, reservations, channelCounts,
			snap.Version, pgconv.TimeToPgtype(snap.UpdatedAt),
		)
		if err != nil {
			return created, infra.WrapRepoErr("failed to insert inventory record", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func scanInventory(row pgx.Row) (*inventory.Snapshot, error) {
	var (
		snap          inventory.Snapshot
		date          pgtype.Date
		baseRate      pgtype.Numeric
		sellingRate   pgtype.Numeric
		reservations  []byte
		channelCounts []byte
		updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&snap.PropertyID, &snap.RoomTypeID, &date, &snap.TotalRooms,
		&snap.SoldRooms, &snap.BlockedRooms, &snap.OverbookedRooms,
		&snap.AvailableRooms, &baseRate, &sellingRate, &snap.Currency,
		&snap.StopSell, &snap.ClosedToArrival, &snap.ClosedToDeparture,
		&snap.MinStay, &snap.MaxStay, &snap.NeedsSync, &reservations,
		&channelCounts, &snap.Version, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Date = pgconv.DateFromPgtype(date)
	if snap.BaseRate, err = pgconv.DecimalFromPgtype(baseRate); err != nil {
		return nil, err
	}
	if snap.SellingRate, err = pgconv.DecimalFromPgtype(sellingRate); err != nil {
		return nil, err
	}
	if snap.Reservations, err = converter.UnmarshalReservationLines(reservations); err != nil {
		return nil, err
	}
	if snap.ChannelCounts, err = converter.UnmarshalChannelCounts(channelCounts); err != nil {
		return nil, err
	}
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &snap, nil
}
