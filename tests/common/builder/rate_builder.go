//go:build unit || e2e

package builder

import (
	"time"

	domrate "rategrid/internal/domain/rate"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type RateBuilder struct {
	GroupID        uuid.UUID
	Name           string
	Description    string
	Tags           []string
	RateType       domrate.RateType
	Priority       int
	BasePrice      decimal.Decimal
	Currency       string
	RoomTypeID     uuid.UUID
	RoomBaseRate   decimal.Decimal
	RoomAdjustment *domrate.Adjustment
	ValidFrom      time.Time
	ValidTo        time.Time
	Timezone       string
	Weekdays       []time.Weekday
	MinStay        int
	MaxStay        int
	Window         domrate.BookingWindow
	Channels       []domrate.ChannelConfig
	PropertyRates  []domrate.PropertyRate
	ConflictLinks  []domrate.ConflictLink
	Status         domrate.ApprovalStatus
	SyncState      domrate.SyncState
	Version        int64
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewRateBuilder() *RateBuilder {
	now := time.Now()
	return &RateBuilder{
		GroupID:      uuid.New(),
		Name:         "Summer BAR",
		Description:  "Best available rate for the summer season",
		RateType:     domrate.TypeBAR,
		Priority:     5,
		BasePrice:    decimal.NewFromInt(120),
		Currency:     "EUR",
		RoomTypeID:   uuid.New(),
		RoomBaseRate: decimal.NewFromInt(120),
		ValidFrom:    time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:      time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		Timezone:     "UTC",
		MinStay:      1,
		Status:       domrate.StatusDraft,
		SyncState:    domrate.SyncPending,
		Version:      1,
		CreatedBy:    uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (r *RateBuilder) With(mutate func(*RateBuilder)) *RateBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RateBuilder) BuildDefinition() domrate.Definition {
	return domrate.Definition{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		RateType:    r.RateType,
		Priority:    r.Priority,
		Pricing: domrate.BasePricing{
			BasePrice: r.BasePrice,
			Currency:  r.Currency,
		},
		RoomTypes: []domrate.RoomTypeRate{{
			RoomTypeID:  r.RoomTypeID,
			BaseRate:    r.RoomBaseRate,
			Adjustment:  r.RoomAdjustment,
			IsAvailable: true,
		}},
		Validity: domrate.Validity{
			Start:    r.ValidFrom,
			End:      r.ValidTo,
			Timezone: r.Timezone,
			Weekdays: r.Weekdays,
		},
		Window:   r.Window,
		Stay:     domrate.StayRestrictions{MinStay: r.MinStay, MaxStay: r.MaxStay},
		Channels: r.Channels,
	}
}

func (r *RateBuilder) BuildDomain() (*domrate.Rate, error) {
	return domrate.New(r.GroupID, r.BuildDefinition(), r.CreatedBy, r.CreatedAt)
}

func (r *RateBuilder) BuildSnapshot() domrate.Snapshot {
	return domrate.Snapshot{
		ID:             uuid.New(),
		GroupID:        r.GroupID,
		Definition:     r.BuildDefinition(),
		PropertyRates:  r.PropertyRates,
		ConflictLinks:  r.ConflictLinks,
		ApprovalStatus: r.Status,
		SyncStatus:     r.SyncState,
		Version:        r.Version,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// BuildReconstructed rehydrates an aggregate in whatever status the builder
// holds, skipping the draft-first lifecycle.
func (r *RateBuilder) BuildReconstructed() *domrate.Rate {
	return domrate.Reconstruct(r.BuildSnapshot())
}

func (r *RateBuilder) BuildCreateRequestDTO() reqdto.CreateRateRequest {
	return reqdto.CreateRateRequest{
		GroupID:     r.GroupID,
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		RateType:    r.RateType.String(),
		Priority:    r.Priority,
		Pricing: reqdto.PricingRequest{
			BasePrice: r.BasePrice,
			Currency:  r.Currency,
		},
		RoomTypes: []reqdto.RoomTypeRateRequest{{
			RoomTypeID: r.RoomTypeID,
			BaseRate:   r.RoomBaseRate,
		}},
		Validity: reqdto.ValidityRequest{
			Start:    r.ValidFrom.Format(dateLayout),
			End:      r.ValidTo.Format(dateLayout),
			Timezone: r.Timezone,
			Weekdays: weekdaysToInts(r.Weekdays),
		},
		Stay:     &reqdto.StayRequest{MinStay: r.MinStay, MaxStay: r.MaxStay},
		Channels: channelsToDTO(r.Channels),
	}
}

func (r *RateBuilder) BuildUpdateRequestDTO() reqdto.UpdateRateRequest {
	name := r.Name
	description := r.Description
	priority := r.Priority
	return reqdto.UpdateRateRequest{
		Name:        &name,
		Description: &description,
		Priority:    &priority,
	}
}

func (r *RateBuilder) BuildViewQuery() *queries.RateView {
	id := uuid.New()
	return &queries.RateView{
		ID:          id,
		GroupID:     r.GroupID,
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		RateType:    r.RateType.String(),
		Priority:    r.Priority,
		Pricing: queries.PricingView{
			BasePrice: r.BasePrice,
			Currency:  r.Currency,
		},
		RoomTypes: []queries.RoomTypeRateView{{
			RoomTypeID:  r.RoomTypeID,
			BaseRate:    r.RoomBaseRate,
			IsAvailable: true,
		}},
		Validity: queries.ValidityView{
			Start:    r.ValidFrom,
			End:      r.ValidTo,
			Timezone: r.Timezone,
			Weekdays: r.Weekdays,
		},
		ApprovalStatus: r.Status.String(),
		SyncState:      r.SyncState.String(),
		Version:        r.Version,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (r *RateBuilder) BuildListItem() *queries.RateListItem {
	id := uuid.New()
	return &queries.RateListItem{
		ID:             id,
		GroupID:        r.GroupID,
		Name:           r.Name,
		RateType:       r.RateType.String(),
		Priority:       r.Priority,
		ApprovalStatus: r.Status.String(),
		SyncState:      r.SyncState.String(),
		ValidFrom:      r.ValidFrom,
		ValidTo:        r.ValidTo,
		Version:        r.Version,
		UpdatedAt:      r.UpdatedAt,
	}
}

func weekdaysToInts(in []time.Weekday) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, w := range in {
		out[i] = int(w)
	}
	return out
}

func channelsToDTO(in []domrate.ChannelConfig) []reqdto.ChannelConfigRequest {
	if len(in) == 0 {
		return nil
	}
	out := make([]reqdto.ChannelConfigRequest, len(in))
	for i, cc := range in {
		active := cc.Active
		out[i] = reqdto.ChannelConfigRequest{
			Channel: cc.Channel.String(),
			Markup: reqdto.AdjustmentRequest{
				Type:  string(cc.Markup.Type),
				Value: cc.Markup.Value,
			},
			Commission: cc.Commission,
			Active:     &active,
		}
	}
	return out
}

// Fluent builder methods
func (r *RateBuilder) WithGroupID(groupID uuid.UUID) *RateBuilder {
	r.GroupID = groupID
	return r
}

func (r *RateBuilder) WithName(name string) *RateBuilder {
	r.Name = name
	return r
}

func (r *RateBuilder) WithRateType(rateType domrate.RateType) *RateBuilder {
	r.RateType = rateType
	return r
}

func (r *RateBuilder) WithPriority(priority int) *RateBuilder {
	r.Priority = priority
	return r
}

func (r *RateBuilder) WithBasePrice(price decimal.Decimal) *RateBuilder {
	r.BasePrice = price
	return r
}

func (r *RateBuilder) WithCurrency(currency string) *RateBuilder {
	r.Currency = currency
	return r
}

func (r *RateBuilder) WithRoomTypeID(roomTypeID uuid.UUID) *RateBuilder {
	r.RoomTypeID = roomTypeID
	return r
}

func (r *RateBuilder) WithRoomAdjustment(adj domrate.Adjustment) *RateBuilder {
	r.RoomAdjustment = &adj
	return r
}

func (r *RateBuilder) WithValidity(from, to time.Time) *RateBuilder {
	r.ValidFrom = from
	r.ValidTo = to
	return r
}

func (r *RateBuilder) WithWeekdays(weekdays ...time.Weekday) *RateBuilder {
	r.Weekdays = weekdays
	return r
}

func (r *RateBuilder) WithStay(minStay, maxStay int) *RateBuilder {
	r.MinStay = minStay
	r.MaxStay = maxStay
	return r
}

func (r *RateBuilder) WithWindow(minAdvance, maxAdvance int, cutoff string) *RateBuilder {
	r.Window = domrate.BookingWindow{
		MinAdvanceDays: minAdvance,
		MaxAdvanceDays: maxAdvance,
		CutoffTime:     cutoff,
	}
	return r
}

func (r *RateBuilder) WithChannel(channel domrate.Channel, markup domrate.Adjustment) *RateBuilder {
	r.Channels = append(r.Channels, domrate.ChannelConfig{
		Channel: channel,
		Markup:  markup,
		Active:  true,
	})
	return r
}

func (r *RateBuilder) WithInactiveChannel(channel domrate.Channel, markup domrate.Adjustment) *RateBuilder {
	r.Channels = append(r.Channels, domrate.ChannelConfig{
		Channel: channel,
		Markup:  markup,
		Active:  false,
	})
	return r
}

func (r *RateBuilder) WithPropertyRate(pr domrate.PropertyRate) *RateBuilder {
	r.PropertyRates = append(r.PropertyRates, pr)
	return r
}

func (r *RateBuilder) WithConflictLink(link domrate.ConflictLink) *RateBuilder {
	r.ConflictLinks = append(r.ConflictLinks, link)
	return r
}

func (r *RateBuilder) WithStatus(status domrate.ApprovalStatus) *RateBuilder {
	r.Status = status
	return r
}

func (r *RateBuilder) WithVersion(version int64) *RateBuilder {
	r.Version = version
	return r
}

func (r *RateBuilder) WithCreatedBy(createdBy uuid.UUID) *RateBuilder {
	r.CreatedBy = createdBy
	return r
}

func (r *RateBuilder) WithCreatedAt(createdAt time.Time) *RateBuilder {
	r.CreatedAt = createdAt
	r.UpdatedAt = createdAt
	return r
}

func (r *RateBuilder) AsApproved() *RateBuilder {
	r.Status = domrate.StatusApproved
	return r
}

func (r *RateBuilder) AsCorporate() *RateBuilder {
	r.RateType = domrate.TypeCorporate
	r.Name = "Corporate Negotiated"
	return r
}
