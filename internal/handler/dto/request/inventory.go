package request

import (
	"rategrid/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReserveRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	RoomTypeID uuid.UUID `json:"roomTypeId" binding:"required"`
	CheckIn    string    `json:"checkIn" binding:"required"`
	CheckOut   string    `json:"checkOut" binding:"required"`
	Rooms      int       `json:"rooms" binding:"required,min=1"`
	BookingID  uuid.UUID `json:"bookingId" binding:"required"`
	Source     string    `json:"source,omitempty"`
}

func (r ReserveRequest) ToInput() (inventory.ReserveInput, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return inventory.ReserveInput{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return inventory.ReserveInput{}, err
	}
	return inventory.ReserveInput{
		PropertyID: r.PropertyID,
		RoomTypeID: r.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Rooms:      r.Rooms,
		BookingID:  r.BookingID,
		Source:     r.Source,
	}, nil
}

type ReleaseRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

type BlockRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	RoomTypeID uuid.UUID `json:"roomTypeId" binding:"required"`
	From       string    `json:"from" binding:"required"`
	To         string    `json:"to" binding:"required"`
	Rooms      int       `json:"rooms" binding:"required,min=1"`
	Reason     string    `json:"reason,omitempty" binding:"omitempty,max=500"`
}

func (r BlockRequest) ToInput() (inventory.BlockInput, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return inventory.BlockInput{}, err
	}
	to, err := parseDate(r.To)
	if err != nil {
		return inventory.BlockInput{}, err
	}
	return inventory.BlockInput{
		PropertyID: r.PropertyID,
		RoomTypeID: r.RoomTypeID,
		From:       from,
		To:         to,
		Rooms:      r.Rooms,
		Reason:     r.Reason,
	}, nil
}

type SetInventoryRatesRequest struct {
	PropertyID uuid.UUID       `json:"propertyId" binding:"required"`
	RoomTypeID uuid.UUID       `json:"roomTypeId" binding:"required"`
	From       string          `json:"from" binding:"required"`
	To         string          `json:"to" binding:"required"`
	BaseRate   decimal.Decimal `json:"baseRate" binding:"required"`
	Selling    decimal.Decimal `json:"sellingRate" binding:"required"`
	Currency   string          `json:"currency" binding:"required,len=3"`
}

func (r SetInventoryRatesRequest) ToInput() (inventory.SetRatesInput, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return inventory.SetRatesInput{}, err
	}
	to, err := parseDate(r.To)
	if err != nil {
		return inventory.SetRatesInput{}, err
	}
	return inventory.SetRatesInput{
		PropertyID: r.PropertyID,
		RoomTypeID: r.RoomTypeID,
		From:       from,
		To:         to,
		BaseRate:   r.BaseRate,
		Selling:    r.Selling,
		Currency:   r.Currency,
	}, nil
}

type MaterializeRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" binding:"required"`
	RoomTypeID  uuid.UUID `json:"roomTypeId" binding:"required"`
	FromDate    string    `json:"fromDate" binding:"required"`
	HorizonDays int       `json:"horizonDays" binding:"omitempty,min=1,max=1095"`
}

func (r MaterializeRequest) ToInput() (inventory.MaterializeInput, error) {
	from, err := parseDate(r.FromDate)
	if err != nil {
		return inventory.MaterializeInput{}, err
	}
	return inventory.MaterializeInput{
		PropertyID:  r.PropertyID,
		RoomTypeID:  r.RoomTypeID,
		FromDate:    from,
		HorizonDays: r.HorizonDays,
	}, nil
}

type ChannelAckRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	RoomTypeID uuid.UUID `json:"roomTypeId" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Channel    string    `json:"channel" binding:"required"`
}

func (r ChannelAckRequest) ToInput() (inventory.ClearDirtyInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return inventory.ClearDirtyInput{}, err
	}
	return inventory.ClearDirtyInput{
		PropertyID: r.PropertyID,
		RoomTypeID: r.RoomTypeID,
		Date:       date,
		Channel:    r.Channel,
	}, nil
}
