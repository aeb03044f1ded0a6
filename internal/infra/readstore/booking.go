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

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbx}
}

const findBookingViewQuery = `
SELECT
	id, property_id, room_type_id, status, source, external_id, check_in,
	check_out, rooms, adults, children, guest_country, quoted_amount,
	reported_amount, currency, rate_id, cancelled_at, created_at, updated_at
FROM bookings
WHERE id = $1
`

const bookingListColumns = `
	id, property_id, room_type_id, status, source, check_in, check_out,
	rooms, created_at
`

const findBookingsFirstPageQuery = `
SELECT` + bookingListColumns + `
FROM bookings
WHERE property_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

const findBookingsKeysetQuery = `
SELECT` + bookingListColumns + `
FROM bookings
WHERE property_id = $1 AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		externalID  string
		checkIn     pgtype.Date
		checkOut    pgtype.Date
		quoted      pgtype.Numeric
		reported    pgtype.Numeric
		rateID      pgtype.UUID
		cancelledAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBookingViewQuery, id).Scan(
		&view.ID, &view.PropertyID, &view.RoomTypeID, &view.Status,
		&view.Source, &externalID, &checkIn, &checkOut, &view.Rooms,
		&view.Adults, &view.Children, &view.GuestCountry, &quoted, &reported,
		&view.Currency, &rateID, &cancelledAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	if externalID != "" {
		view.ExternalID = &externalID
	}
	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	if view.QuotedAmount, err = pgconv.DecimalPtrFromPgtype(quoted); err != nil {
		return nil, infra.WrapRepoErr("failed to decode quoted amount", err)
	}
	if view.ReportedAmount, err = pgconv.DecimalPtrFromPgtype(reported); err != nil {
		return nil, infra.WrapRepoErr("failed to decode reported amount", err)
	}
	view.RateID = pgconv.UUIDPtrFromPgtype(rateID)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func (r *BookingReadStore) FindByPropertyFirstPage(ctx context.Context, propertyID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.queryList(ctx, findBookingsFirstPageQuery, propertyID, limit)
}

func (r *BookingReadStore) FindByPropertyKeyset(ctx context.Context, propertyID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.queryList(ctx, findBookingsKeysetQuery, propertyID, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
}

func (r *BookingReadStore) queryList(ctx context.Context, query string, args ...any) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		item, err := scanBookingListItem(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}

func scanBookingListItem(row pgx.Row) (*queries.BookingListItem, error) {
	var (
		item      queries.BookingListItem
		checkIn   pgtype.Date
		checkOut  pgtype.Date
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&item.ID, &item.PropertyID, &item.RoomTypeID, &item.Status,
		&item.Source, &checkIn, &checkOut, &item.Rooms, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	item.CheckIn = pgconv.DateFromPgtype(checkIn)
	item.CheckOut = pgconv.DateFromPgtype(checkOut)
	item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &item, nil
}
