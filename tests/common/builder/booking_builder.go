//go:build unit || e2e

package builder

import (
	"time"

	dombooking "rategrid/internal/domain/booking"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	PropertyID   uuid.UUID
	RoomTypeID   uuid.UUID
	RateID       *uuid.UUID
	CheckIn      time.Time
	CheckOut     time.Time
	Rooms        int
	Adults       int
	Children     int
	GuestCountry string
	Source       string
	ExternalID   string
	Amount       *decimal.Decimal
	Currency     string
	Status       dombooking.Status
	CreatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		PropertyID:   uuid.New(),
		RoomTypeID:   uuid.New(),
		CheckIn:      time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC),
		Rooms:        1,
		Adults:       2,
		GuestCountry: "DE",
		Source:       "direct",
		Currency:     "EUR",
		Status:       dombooking.StatusConfirmed,
		CreatedAt:    time.Now(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.New(dombooking.NewBookingParams{
		PropertyID: b.PropertyID,
		RoomTypeID: b.RoomTypeID,
		RateID:     b.RateID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Rooms:      b.Rooms,
		Guests: dombooking.GuestDetails{
			Adults:   b.Adults,
			Children: b.Children,
			Country:  b.GuestCountry,
		},
		Source:     b.Source,
		ExternalID: b.ExternalID,
		Amounts: dombooking.Amounts{
			Quoted:   b.Amount,
			Currency: b.Currency,
		},
	}, b.CreatedAt)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID:   b.PropertyID,
		RoomTypeID:   b.RoomTypeID,
		RateID:       b.RateID,
		CheckIn:      b.CheckIn.Format(dateLayout),
		CheckOut:     b.CheckOut.Format(dateLayout),
		Rooms:        b.Rooms,
		Adults:       b.Adults,
		Children:     b.Children,
		GuestCountry: b.GuestCountry,
		Currency:     b.Currency,
	}
}

func (b *BookingBuilder) BuildChannelEventDTO(eventType string) reqdto.ChannelEventRequest {
	externalID := b.ExternalID
	if externalID == "" {
		externalID = "EXT-1001"
	}
	return reqdto.ChannelEventRequest{
		EventType:         eventType,
		ExternalBookingID: externalID,
		PropertyID:        b.PropertyID,
		ExternalRoomCode:  "BDC-STD",
		RateID:            b.RateID,
		CheckIn:           b.CheckIn.Format(dateLayout),
		CheckOut:          b.CheckOut.Format(dateLayout),
		Rooms:             b.Rooms,
		Adults:            b.Adults,
		Children:          b.Children,
		GuestCountry:      b.GuestCountry,
		Amount:            b.Amount,
		Currency:          b.Currency,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	id := uuid.New()
	var externalID *string
	if b.ExternalID != "" {
		e := b.ExternalID
		externalID = &e
	}
	return &queries.BookingView{
		ID:           id,
		PropertyID:   b.PropertyID,
		RoomTypeID:   b.RoomTypeID,
		Status:       b.Status.String(),
		Source:       b.Source,
		ExternalID:   externalID,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Rooms:        b.Rooms,
		Adults:       b.Adults,
		Children:     b.Children,
		GuestCountry: b.GuestCountry,
		QuotedAmount: b.Amount,
		Currency:     b.Currency,
		RateID:       b.RateID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	id := uuid.New()
	return &queries.BookingListItem{
		ID:         id,
		PropertyID: b.PropertyID,
		RoomTypeID: b.RoomTypeID,
		Status:     b.Status.String(),
		Source:     b.Source,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Rooms:      b.Rooms,
		CreatedAt:  b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithPropertyID(propertyID uuid.UUID) *BookingBuilder {
	b.PropertyID = propertyID
	return b
}

func (b *BookingBuilder) WithRoomTypeID(roomTypeID uuid.UUID) *BookingBuilder {
	b.RoomTypeID = roomTypeID
	return b
}

func (b *BookingBuilder) WithRateID(rateID uuid.UUID) *BookingBuilder {
	b.RateID = &rateID
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithRooms(rooms int) *BookingBuilder {
	b.Rooms = rooms
	return b
}

func (b *BookingBuilder) WithGuests(adults, children int) *BookingBuilder {
	b.Adults = adults
	b.Children = children
	return b
}

func (b *BookingBuilder) WithAmount(amount decimal.Decimal, currency string) *BookingBuilder {
	b.Amount = &amount
	b.Currency = currency
	return b
}

func (b *BookingBuilder) WithCreatedAt(createdAt time.Time) *BookingBuilder {
	b.CreatedAt = createdAt
	return b
}

func (b *BookingBuilder) AsChannelBooking(source, externalID string) *BookingBuilder {
	b.Source = source
	b.ExternalID = externalID
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = dombooking.StatusCancelled
	return b
}
