package queries

import (
	"context"
	"time"

	"rategrid/internal/infra"
	"rategrid/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingView struct {
	ID             uuid.UUID        `json:"id"`
	PropertyID     uuid.UUID        `json:"propertyId"`
	RoomTypeID     uuid.UUID        `json:"roomTypeId"`
	Status         string           `json:"status"`
	Source         string           `json:"source"`
	ExternalID     *string          `json:"externalId,omitempty"`
	CheckIn        time.Time        `json:"checkIn"`
	CheckOut       time.Time        `json:"checkOut"`
	Rooms          int              `json:"rooms"`
	Adults         int              `json:"adults"`
	Children       int              `json:"children"`
	GuestCountry   string           `json:"guestCountry,omitempty"`
	QuotedAmount   *decimal.Decimal `json:"quotedAmount,omitempty"`
	ReportedAmount *decimal.Decimal `json:"reportedAmount,omitempty"`
	Currency       string           `json:"currency"`
	RateID         *uuid.UUID       `json:"rateId,omitempty"`
	CancelledAt    *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	RoomTypeID uuid.UUID `json:"roomTypeId"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Rooms      int       `json:"rooms"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByPropertyFirstPage(ctx context.Context, propertyID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByPropertyKeyset(ctx context.Context, propertyID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	repo BookingReadStore
}

func NewBookingQueries(repo BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByProperty(ctx context.Context, propertyID uuid.UUID, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*BookingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByPropertyFirstPage(ctx, propertyID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByPropertyKeyset(ctx, propertyID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
