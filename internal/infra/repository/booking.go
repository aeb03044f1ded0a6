package repository

import (
	"context"

	"rategrid/internal/domain/booking"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const bookingColumns = `
	id, property_id, room_type_id, rate_id, check_in, check_out, rooms,
	adults, children, guest_country, source, external_id, confirmation_code,
	special_requests, quoted_amount, reported_amount, currency, status,
	created_at, updated_at, cancelled_at
`

const createBookingQuery = `
INSERT INTO bookings (
	id, property_id, room_type_id, rate_id, check_in, check_out, rooms,
	adults, children, guest_country, source, external_id, confirmation_code,
	special_requests, quoted_amount, reported_amount, currency, status,
	created_at, updated_at, cancelled_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
`

const updateBookingQuery = `
UPDATE bookings SET
	check_in = $2, check_out = $3, rooms = $4, quoted_amount = $5,
	reported_amount = $6, currency = $7, status = $8, updated_at = $9,
	cancelled_at = $10
WHERE id = $1
`

const findBookingQuery = `
SELECT` + bookingColumns + `
FROM bookings
WHERE id = $1
`

const findBookingForUpdateQuery = findBookingQuery + `FOR UPDATE
`

const findBookingByExternalForUpdateQuery = `
SELECT` + bookingColumns + `
FROM bookings
WHERE source = $1 AND external_id = $2
FOR UPDATE
`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	amounts := b.Amounts()
	guests := b.Guests()
	_, err := tx.Exec(ctx, createBookingQuery,
		b.ID(), b.PropertyID(), b.RoomTypeID(), pgconv.UUIDPtrToPgtype(b.RateID()),
		pgconv.DateToPgtype(b.CheckIn()), pgconv.DateToPgtype(b.CheckOut()), b.Rooms(),
		guests.Adults, guests.Children, guests.Country,
		b.Source(), b.ExternalID(), b.ConfirmationCode(), b.SpecialRequests(),
		pgconv.DecimalPtrToPgtype(amounts.Quoted), pgconv.DecimalPtrToPgtype(amounts.Reported),
		amounts.Currency, string(b.Status()),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	amounts := b.Amounts()
	tag, err := tx.Exec(ctx, updateBookingQuery,
		b.ID(),
		pgconv.DateToPgtype(b.CheckIn()), pgconv.DateToPgtype(b.CheckOut()), b.Rooms(),
		pgconv.DecimalPtrToPgtype(amounts.Quoted), pgconv.DecimalPtrToPgtype(amounts.Reported),
		amounts.Currency, string(b.Status()),
		pgconv.TimeToPgtype(b.UpdatedAt()), pgconv.TimePtrToPgtype(b.CancelledAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, dbx, findBookingQuery, id)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, tx, findBookingForUpdateQuery, id)
}

func (r *BookingRepository) FindByExternalForUpdate(ctx context.Context, tx db.DBTX, source, externalID string) (*booking.Booking, error) {
	return r.findOne(ctx, tx, findBookingByExternalForUpdateQuery, source, externalID)
}

func (r *BookingRepository) findOne(ctx context.Context, dbx db.DBTX, query string, args ...any) (*booking.Booking, error) {
	b, err := scanBooking(dbx.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, propertyID, roomTypeID uuid.UUID
		rateID                     pgtype.UUID
		checkIn, checkOut          pgtype.Date
		rooms, adults, children    int
		guestCountry, source       string
		externalID                 string
		confirmationCode           string
		specialRequests            string
		quoted, reported           pgtype.Numeric
		currency, status           string
		createdAt, updatedAt       pgtype.Timestamptz
		cancelledAt                pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &propertyID, &roomTypeID, &rateID, &checkIn, &checkOut, &rooms,
		&adults, &children, &guestCountry, &source, &externalID,
		&confirmationCode, &specialRequests, &quoted, &reported, &currency,
		&status, &createdAt, &updatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}
	quotedAmount, err := pgconv.DecimalPtrFromPgtype(quoted)
	if err != nil {
		return nil, err
	}
	reportedAmount, err := pgconv.DecimalPtrFromPgtype(reported)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(
		id, propertyID, roomTypeID,
		pgconv.UUIDPtrFromPgtype(rateID),
		pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut),
		rooms,
		booking.GuestDetails{Adults: adults, Children: children, Country: guestCountry},
		source, externalID, confirmationCode, specialRequests,
		booking.Amounts{Quoted: quotedAmount, Reported: reportedAmount, Currency: currency},
		booking.Status(status),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
		pgconv.TimePtrFromPgtype(cancelledAt),
	), nil
}
