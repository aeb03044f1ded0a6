package repository

import (
	"context"

	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/pkg/pgconv"
	"rategrid/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PropertyRepository reads the property topology: groups, their member
// properties, room types and channel code mappings. The topology is managed
// out of band, so this side only ever reads it.
type PropertyRepository struct{}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{}
}

const findPropertyQuery = `
SELECT id, name, timezone, currency, allow_overbooking, overbooking_limit
FROM properties
WHERE id = $1
`

const findChannelMappingsQuery = `
SELECT channel, external_code, room_type_id
FROM channel_mappings
WHERE property_id = $1
ORDER BY channel, external_code
`

const findGroupQuery = `
SELECT id, name
FROM property_groups
WHERE id = $1
`

const findGroupPropertyIDsQuery = `
SELECT id
FROM properties
WHERE group_id = $1
ORDER BY id
`

const roomTypeColumns = `
	id, property_id, code, name, max_occupancy, base_rate, currency,
	total_rooms, category
`

const findRoomTypeQuery = `
SELECT` + roomTypeColumns + `
FROM room_types
WHERE id = $1
`

const findRoomTypesByGroupQuery = `
SELECT` + roomTypeColumns + `
FROM room_types
WHERE property_id IN (SELECT id FROM properties WHERE group_id = $1)
ORDER BY property_id, code
`

const findRoomTypesByPropertyQuery = `
SELECT` + roomTypeColumns + `
FROM room_types
WHERE property_id = $1
ORDER BY code
`

func (r *PropertyRepository) FindProperty(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.PropertySnapshot, error) {
	var prop commands.PropertySnapshot
	err := dbx.QueryRow(ctx, findPropertyQuery, id).Scan(
		&prop.ID, &prop.Name, &prop.Timezone, &prop.Currency,
		&prop.AllowOverbooking, &prop.OverbookingLimit,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}

	rows, err := dbx.Query(ctx, findChannelMappingsQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query channel mappings", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m commands.ChannelMappingSnapshot
		if err := rows.Scan(&m.Channel, &m.ExternalCode, &m.RoomTypeID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan channel mapping", err)
		}
		prop.ChannelMappings = append(prop.ChannelMappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read channel mappings", err)
	}
	return &prop, nil
}

func (r *PropertyRepository) FindGroup(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.GroupSnapshot, error) {
	var group commands.GroupSnapshot
	err := dbx.QueryRow(ctx, findGroupQuery, id).Scan(&group.ID, &group.Name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property group not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property group", err)
	}

	rows, err := dbx.Query(ctx, findGroupPropertyIDsQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query group properties", err)
	}
	defer rows.Close()
	for rows.Next() {
		var propertyID uuid.UUID
		if err := rows.Scan(&propertyID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan group property", err)
		}
		group.PropertyIDs = append(group.PropertyIDs, propertyID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read group properties", err)
	}
	return &group, nil
}

func (r *PropertyRepository) FindRoomType(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*commands.RoomTypeSnapshot, error) {
	rt, err := scanRoomType(dbx.QueryRow(ctx, findRoomTypeQuery, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room type", err)
	}
	return rt, nil
}

func (r *PropertyRepository) FindRoomTypesByGroup(ctx context.Context, dbx db.DBTX, groupID uuid.UUID) ([]commands.RoomTypeSnapshot, error) {
	return r.findRoomTypes(ctx, dbx, findRoomTypesByGroupQuery, groupID)
}

func (r *PropertyRepository) FindRoomTypesByProperty(ctx context.Context, dbx db.DBTX, propertyID uuid.UUID) ([]commands.RoomTypeSnapshot, error) {
	return r.findRoomTypes(ctx, dbx, findRoomTypesByPropertyQuery, propertyID)
}

func (r *PropertyRepository) findRoomTypes(ctx context.Context, dbx db.DBTX, query string, id uuid.UUID) ([]commands.RoomTypeSnapshot, error) {
	rows, err := dbx.Query(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query room types", err)
	}
	defer rows.Close()

	var roomTypes []commands.RoomTypeSnapshot
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room type", err)
		}
		roomTypes = append(roomTypes, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room types", err)
	}
	return roomTypes, nil
}

func scanRoomType(row pgx.Row) (*commands.RoomTypeSnapshot, error) {
	var (
		rt       commands.RoomTypeSnapshot
		baseRate pgtype.Numeric
	)
	err := row.Scan(
		&rt.ID, &rt.PropertyID, &rt.Code, &rt.Name, &rt.MaxOccupancy,
		&baseRate, &rt.Currency, &rt.TotalRooms, &rt.Category,
	)
	if err != nil {
		return nil, err
	}
	if rt.BaseRate, err = pgconv.DecimalFromPgtype(baseRate); err != nil {
		return nil, err
	}
	return &rt, nil
}
