package request

import (
	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	RateID     uuid.UUID `json:"rateId" binding:"required"`
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	RoomTypeID uuid.UUID `json:"roomTypeId" binding:"required"`
	CheckIn    string    `json:"checkIn" binding:"required"`
	CheckOut   string    `json:"checkOut" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
	Channel    string    `json:"channel" binding:"required"`
}

func (r QuoteRequest) ToQuery() (queries.QuoteRequest, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return queries.QuoteRequest{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return queries.QuoteRequest{}, err
	}
	return queries.QuoteRequest{
		RateID:     r.RateID,
		PropertyID: r.PropertyID,
		RoomTypeID: r.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     r.Guests,
		Channel:    r.Channel,
	}, nil
}
