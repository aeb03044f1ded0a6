package response

import (
	"time"

	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type DateRangeResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AdjustmentResponse struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type PricingResponse struct {
	BasePrice        decimal.Decimal `json:"basePrice"`
	Currency         string          `json:"currency"`
	IncludeTaxes     bool            `json:"includeTaxes"`
	IncludeBreakfast bool            `json:"includeBreakfast"`
}

type RoomTypeRateResponse struct {
	RoomTypeID  uuid.UUID           `json:"roomTypeId"`
	BaseRate    decimal.Decimal     `json:"baseRate"`
	Adjustment  *AdjustmentResponse `json:"adjustment,omitempty"`
	IsAvailable bool                `json:"isAvailable"`
	Allotment   int                 `json:"allotment"`
	StopSale    bool                `json:"stopSale"`
}

type ValidityResponse struct {
	Start    time.Time           `json:"start"`
	End      time.Time           `json:"end"`
	Timezone string              `json:"timezone"`
	Weekdays []time.Weekday      `json:"weekdays,omitempty"`
	Excluded []DateRangeResponse `json:"excluded,omitempty"`
}

type BookingWindowResponse struct {
	MinAdvanceDays int    `json:"minAdvanceDays"`
	MaxAdvanceDays int    `json:"maxAdvanceDays"`
	CutoffTime     string `json:"cutoffTime,omitempty"`
}

type StayResponse struct {
	MinStay            int                 `json:"minStay"`
	MaxStay            int                 `json:"maxStay"`
	ClosedToArrival    []time.Time         `json:"closedToArrival,omitempty"`
	ClosedToDeparture  []time.Time         `json:"closedToDeparture,omitempty"`
	StayThroughWindows []DateRangeResponse `json:"stayThroughWindows,omitempty"`
}

type CancellationResponse struct {
	Name            string          `json:"name,omitempty"`
	FreeBeforeHours int             `json:"freeBeforeHours"`
	PenaltyNights   int             `json:"penaltyNights"`
	PenaltyPercent  decimal.Decimal `json:"penaltyPercent"`
	NonRefundable   bool            `json:"nonRefundable"`
}

type ChannelResponse struct {
	Channel    string             `json:"channel"`
	Markup     AdjustmentResponse `json:"markup"`
	Commission decimal.Decimal    `json:"commission"`
	Active     bool               `json:"active"`
}

type PropertyRateResponse struct {
	PropertyID    uuid.UUID              `json:"propertyId"`
	BasePrice     *decimal.Decimal       `json:"basePrice,omitempty"`
	Adjustment    *AdjustmentResponse    `json:"adjustment,omitempty"`
	Stay          *StayResponse          `json:"stay,omitempty"`
	BookingWindow *BookingWindowResponse `json:"bookingWindow,omitempty"`
	IsOverride    bool                   `json:"isOverride"`
	SyncState     string                 `json:"syncState"`
	LastSyncAt    *time.Time             `json:"lastSyncAt,omitempty"`
	SyncError     string                 `json:"syncError,omitempty"`
}

type ConflictResponse struct {
	OtherRateID uuid.UUID         `json:"otherRateId"`
	Kind        string            `json:"kind"`
	Action      string            `json:"action"`
	Overlap     DateRangeResponse `json:"overlap"`
	DetectedAt  time.Time         `json:"detectedAt"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty"`
	Resolution  string            `json:"resolution,omitempty"`
}

type RateResponse struct {
	ID             uuid.UUID              `json:"id"`
	GroupID        uuid.UUID              `json:"groupId"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
	RateType       string                 `json:"rateType"`
	Priority       int                    `json:"priority"`
	Pricing        PricingResponse        `json:"pricing"`
	RoomTypes      []RoomTypeRateResponse `json:"roomTypes"`
	Validity       ValidityResponse       `json:"validity"`
	BookingWindow  *BookingWindowResponse `json:"bookingWindow,omitempty"`
	Stay           *StayResponse          `json:"stay,omitempty"`
	Cancellation   *CancellationResponse  `json:"cancellation,omitempty"`
	Channels       []ChannelResponse      `json:"channels,omitempty"`
	Properties     []PropertyRateResponse `json:"properties,omitempty"`
	Conflicts      []ConflictResponse     `json:"conflicts,omitempty"`
	ApprovalStatus string                 `json:"approvalStatus"`
	SyncState      string                 `json:"syncState"`
	Version        int64                  `json:"version"`
	CreatedBy      uuid.UUID              `json:"createdBy"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

type RateListItemResponse struct {
	ID             uuid.UUID `json:"id"`
	GroupID        uuid.UUID `json:"groupId"`
	Name           string    `json:"name"`
	RateType       string    `json:"rateType"`
	Priority       int       `json:"priority"`
	ApprovalStatus string    `json:"approvalStatus"`
	SyncState      string    `json:"syncState"`
	ValidFrom      time.Time `json:"validFrom"`
	ValidTo        time.Time `json:"validTo"`
	Version        int64     `json:"version"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type RateListResponse struct {
	Rates      []RateListItemResponse `json:"rates"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

type HistoryEntryResponse struct {
	At          time.Time `json:"at"`
	Actor       uuid.UUID `json:"actor"`
	Action      string    `json:"action"`
	Detail      string    `json:"detail,omitempty"`
	FromVersion int64     `json:"fromVersion"`
	ToVersion   int64     `json:"toVersion"`
}

type RateHistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

func FromRateView(view *queries.RateView) (*RateResponse, error) {
	var resp RateResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromRateList(items []*queries.RateListItem, next *queries.Cursor) (*RateListResponse, error) {
	resp := &RateListResponse{Rates: make([]RateListItemResponse, 0, len(items))}
	if err := copier.Copy(&resp.Rates, &items); err != nil {
		return nil, err
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp, nil
}

func FromRateHistory(entries []*queries.HistoryEntry) (*RateHistoryResponse, error) {
	resp := &RateHistoryResponse{Entries: make([]HistoryEntryResponse, 0, len(entries))}
	if err := copier.Copy(&resp.Entries, &entries); err != nil {
		return nil, err
	}
	return resp, nil
}
