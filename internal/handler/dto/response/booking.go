package response

import (
	"time"

	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
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

type BookingListItemResponse struct {
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

type BookingListResponse struct {
	Bookings   []BookingListItemResponse `json:"bookings"`
	NextCursor string                    `json:"nextCursor,omitempty"`
}

func FromBookingView(view *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) (*BookingListResponse, error) {
	resp := &BookingListResponse{Bookings: make([]BookingListItemResponse, 0, len(items))}
	if err := copier.Copy(&resp.Bookings, &items); err != nil {
		return nil, err
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp, nil
}
