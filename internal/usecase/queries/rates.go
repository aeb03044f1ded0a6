package queries

import (
	"context"
	"time"

	"rategrid/internal/infra"
	"rategrid/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidCursor = errs.New("invalid cursor")

type DateRangeView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AdjustmentView struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type PricingView struct {
	BasePrice        decimal.Decimal `json:"basePrice"`
	Currency         string          `json:"currency"`
	IncludeTaxes     bool            `json:"includeTaxes"`
	IncludeBreakfast bool            `json:"includeBreakfast"`
}

type RoomTypeRateView struct {
	RoomTypeID  uuid.UUID       `json:"roomTypeId"`
	BaseRate    decimal.Decimal `json:"baseRate"`
	Adjustment  *AdjustmentView `json:"adjustment,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
	Allotment   int             `json:"allotment"`
	StopSale    bool            `json:"stopSale"`
}

type ValidityView struct {
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Timezone string          `json:"timezone"`
	Weekdays []time.Weekday  `json:"weekdays,omitempty"`
	Excluded []DateRangeView `json:"excluded,omitempty"`
}

type BookingWindowView struct {
	MinAdvanceDays int    `json:"minAdvanceDays"`
	MaxAdvanceDays int    `json:"maxAdvanceDays"`
	CutoffTime     string `json:"cutoffTime,omitempty"`
}

type StayView struct {
	MinStay            int             `json:"minStay"`
	MaxStay            int             `json:"maxStay"`
	ClosedToArrival    []time.Time     `json:"closedToArrival,omitempty"`
	ClosedToDeparture  []time.Time     `json:"closedToDeparture,omitempty"`
	StayThroughWindows []DateRangeView `json:"stayThroughWindows,omitempty"`
}

type CancellationView struct {
	Name            string          `json:"name,omitempty"`
	FreeBeforeHours int             `json:"freeBeforeHours"`
	PenaltyNights   int             `json:"penaltyNights"`
	PenaltyPercent  decimal.Decimal `json:"penaltyPercent"`
	NonRefundable   bool            `json:"nonRefundable"`
}

type ChannelView struct {
	Channel    string          `json:"channel"`
	Markup     AdjustmentView  `json:"markup"`
	Commission decimal.Decimal `json:"commission"`
	Active     bool            `json:"active"`
}

type PropertyRateView struct {
	PropertyID    uuid.UUID          `json:"propertyId"`
	BasePrice     *decimal.Decimal   `json:"basePrice,omitempty"`
	Adjustment    *AdjustmentView    `json:"adjustment,omitempty"`
	Stay          *StayView          `json:"stay,omitempty"`
	BookingWindow *BookingWindowView `json:"bookingWindow,omitempty"`
	IsOverride    bool               `json:"isOverride"`
	SyncState     string             `json:"syncState"`
	LastSyncAt    *time.Time         `json:"lastSyncAt,omitempty"`
	SyncError     string             `json:"syncError,omitempty"`
}

type ConflictView struct {
	OtherRateID uuid.UUID     `json:"otherRateId"`
	Kind        string        `json:"kind"`
	Action      string        `json:"action"`
	Overlap     DateRangeView `json:"overlap"`
	DetectedAt  time.Time     `json:"detectedAt"`
	ResolvedAt  *time.Time    `json:"resolvedAt,omitempty"`
	Resolution  string        `json:"resolution,omitempty"`
}

type RateView struct {
	ID             uuid.UUID          `json:"id"`
	GroupID        uuid.UUID          `json:"groupId"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
	RateType       string             `json:"rateType"`
	Priority       int                `json:"priority"`
	Pricing        PricingView        `json:"pricing"`
	RoomTypes      []RoomTypeRateView `json:"roomTypes"`
	Validity       ValidityView       `json:"validity"`
	BookingWindow  *BookingWindowView `json:"bookingWindow,omitempty"`
	Stay           *StayView          `json:"stay,omitempty"`
	Cancellation   *CancellationView  `json:"cancellation,omitempty"`
	Channels       []ChannelView      `json:"channels,omitempty"`
	Properties     []PropertyRateView `json:"properties,omitempty"`
	Conflicts      []ConflictView     `json:"conflicts,omitempty"`
	ApprovalStatus string             `json:"approvalStatus"`
	SyncState      string             `json:"syncState"`
	Version        int64              `json:"version"`
	CreatedBy      uuid.UUID          `json:"createdBy"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type RateListItem struct {
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

type HistoryEntry struct {
	At          time.Time `json:"at"`
	Actor       uuid.UUID `json:"actor"`
	Action      string    `json:"action"`
	Detail      string    `json:"detail,omitempty"`
	FromVersion int64     `json:"fromVersion"`
	ToVersion   int64     `json:"toVersion"`
}

type RateListFilter struct {
	GroupID    *uuid.UUID
	PropertyID *uuid.UUID
	Status     *string
	RateType   *string
	ActiveOn   *time.Time
}

type RateReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RateView, error)
	FindFirstPage(ctx context.Context, filter RateListFilter, limit int32) ([]*RateListItem, error)
	FindKeyset(ctx context.Context, filter RateListFilter, lastUpdatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RateListItem, error)
	FindHistory(ctx context.Context, id uuid.UUID) ([]*HistoryEntry, error)
}

type RateQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RateView, error)
	List(ctx context.Context, filter RateListFilter, cursor *Cursor, limit int) ([]*RateListItem, *Cursor, error)
	History(ctx context.Context, id uuid.UUID) ([]*HistoryEntry, error)
}

type rateQueriesImpl struct {
	repo RateReadStore
}

func NewRateQueries(repo RateReadStore) RateQueries {
	return &rateQueriesImpl{repo: repo}
}

func (q *rateQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RateView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRateNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *rateQueriesImpl) List(ctx context.Context, filter RateListFilter, cursor *Cursor, limit int) ([]*RateListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*RateListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, filter, int32(limit+1))
	} else {
		lastUpdatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindKeyset(ctx, filter, lastUpdatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.UpdatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *rateQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]*HistoryEntry, error) {
	entries, err := q.repo.FindHistory(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRateNotFound)
		}
		return nil, err
	}
	return entries, nil
}
