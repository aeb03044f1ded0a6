package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	PropertyID   uuid.UUID        `json:"propertyId" binding:"required"`
	RoomTypeID   uuid.UUID        `json:"roomTypeId" binding:"required"`
	RateID       *uuid.UUID       `json:"rateId,omitempty"`
	CheckIn      string           `json:"checkIn" binding:"required"`
	CheckOut     string           `json:"checkOut" binding:"required"`
	Rooms        int              `json:"rooms" binding:"required,min=1"`
	Adults       int              `json:"adults" binding:"required,min=1"`
	Children     int              `json:"children" binding:"omitempty,min=0"`
	GuestCountry string           `json:"guestCountry,omitempty" binding:"omitempty,len=2"`
	Channel      string           `json:"channel,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Currency     string           `json:"currency,omitempty" binding:"omitempty,len=3"`
}

func (r CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = parseDate(r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = parseDate(r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

// ChannelEventRequest is the normalized webhook body external channels post.
// EventType discriminates; modification reuses the booking fields. The
// channel adapter translates its own hotel code to our propertyId before
// posting.
type ChannelEventRequest struct {
	EventType         string           `json:"eventType" binding:"required,oneof=new_booking modification cancellation"`
	ExternalBookingID string           `json:"externalBookingId" binding:"required,max=128"`
	PropertyID        uuid.UUID        `json:"propertyId" binding:"required"`
	ExternalRoomCode  string           `json:"externalRoomCode,omitempty"`
	RateID            *uuid.UUID       `json:"rateId,omitempty"`
	CheckIn           string           `json:"checkIn,omitempty"`
	CheckOut          string           `json:"checkOut,omitempty"`
	Rooms             int              `json:"rooms,omitempty" binding:"omitempty,min=1"`
	Adults            int              `json:"adults,omitempty" binding:"omitempty,min=1"`
	Children          int              `json:"children,omitempty" binding:"omitempty,min=0"`
	GuestCountry      string           `json:"guestCountry,omitempty" binding:"omitempty,len=2"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	Currency          string           `json:"currency,omitempty" binding:"omitempty,len=3"`
	OccurredAt        *time.Time       `json:"occurredAt,omitempty"`
}

func (r ChannelEventRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = parseDate(r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = parseDate(r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}
