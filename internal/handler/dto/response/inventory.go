package response

import (
	"time"

	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type CalendarDayResponse struct {
	Date            time.Time       `json:"date"`
	TotalRooms      int             `json:"totalRooms"`
	Available       int             `json:"available"`
	Sold            int             `json:"sold"`
	Blocked         int             `json:"blocked"`
	Overbooked      int             `json:"overbooked"`
	BaseRate        decimal.Decimal `json:"baseRate"`
	SellingRate     decimal.Decimal `json:"sellingRate"`
	Currency        string          `json:"currency"`
	StopSell        bool            `json:"stopSell"`
	ClosedToArrival bool            `json:"closedToArrival"`
	ClosedToDep     bool            `json:"closedToDeparture"`
	MinStay         int             `json:"minStay"`
	MaxStay         int             `json:"maxStay"`
	NeedsSync       bool            `json:"needsSync"`
}

type CalendarResponse struct {
	PropertyID uuid.UUID             `json:"propertyId"`
	RoomTypeID uuid.UUID             `json:"roomTypeId"`
	Days       []CalendarDayResponse `json:"days"`
}

type SyncRecordResponse struct {
	PropertyID      uuid.UUID       `json:"propertyId"`
	RoomTypeID      uuid.UUID       `json:"roomTypeId"`
	Date            time.Time       `json:"date"`
	Available       int             `json:"available"`
	SellingRate     decimal.Decimal `json:"sellingRate"`
	Currency        string          `json:"currency"`
	StopSell        bool            `json:"stopSell"`
	ClosedToArrival bool            `json:"closedToArrival"`
	ClosedToDep     bool            `json:"closedToDeparture"`
	MinStay         int             `json:"minStay"`
	MaxStay         int             `json:"maxStay"`
	Version         int64           `json:"version"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type ChannelSnapshotResponse struct {
	Records    []SyncRecordResponse `json:"records"`
	NextCursor string               `json:"nextCursor,omitempty"`
}

func FromCalendar(propertyID, roomTypeID uuid.UUID, days []*queries.CalendarDay) (*CalendarResponse, error) {
	resp := &CalendarResponse{
		PropertyID: propertyID,
		RoomTypeID: roomTypeID,
		Days:       make([]CalendarDayResponse, 0, len(days)),
	}
	if err := copier.Copy(&resp.Days, &days); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromSyncRecords(records []*queries.SyncRecord, next *queries.Cursor) (*ChannelSnapshotResponse, error) {
	resp := &ChannelSnapshotResponse{Records: make([]SyncRecordResponse, 0, len(records))}
	if err := copier.Copy(&resp.Records, &records); err != nil {
		return nil, err
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp, nil
}
