package request

import (
	"time"

	"rategrid/internal/domain/rate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseDates(ss []string) ([]time.Time, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		d, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

type DateRangeRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (r DateRangeRequest) toDomain() (rate.DateRange, error) {
	start, err := parseDate(r.Start)
	if err != nil {
		return rate.DateRange{}, err
	}
	end, err := parseDate(r.End)
	if err != nil {
		return rate.DateRange{}, err
	}
	return rate.NewDateRange(start, end)
}

func dateRangesToDomain(rrs []DateRangeRequest) ([]rate.DateRange, error) {
	if len(rrs) == 0 {
		return nil, nil
	}
	out := make([]rate.DateRange, len(rrs))
	for i, rr := range rrs {
		dr, err := rr.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = dr
	}
	return out, nil
}

type AdjustmentRequest struct {
	Type  string          `json:"type" binding:"required,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value"`
}

func (r AdjustmentRequest) toDomain() (rate.Adjustment, error) {
	return rate.NewAdjustment(rate.AdjustmentType(r.Type), r.Value)
}

func adjustmentPtrToDomain(r *AdjustmentRequest) (*rate.Adjustment, error) {
	if r == nil {
		return nil, nil
	}
	adj, err := r.toDomain()
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

type PricingRequest struct {
	BasePrice        decimal.Decimal `json:"basePrice" binding:"required"`
	Currency         string          `json:"currency" binding:"required,len=3"`
	IncludeTaxes     bool            `json:"includeTaxes"`
	IncludeBreakfast bool            `json:"includeBreakfast"`
}

func (r PricingRequest) toDomain() (rate.BasePricing, error) {
	return rate.NewBasePricing(r.BasePrice, r.Currency, r.IncludeTaxes, r.IncludeBreakfast)
}

type RoomTypeRateRequest struct {
	RoomTypeID  uuid.UUID          `json:"roomTypeId" binding:"required"`
	BaseRate    decimal.Decimal    `json:"baseRate"`
	Adjustment  *AdjustmentRequest `json:"adjustment,omitempty"`
	IsAvailable *bool              `json:"isAvailable,omitempty"`
	Allotment   int                `json:"allotment" binding:"omitempty,min=0"`
	StopSale    bool               `json:"stopSale"`
}

func (r RoomTypeRateRequest) toDomain() (rate.RoomTypeRate, error) {
	adj, err := adjustmentPtrToDomain(r.Adjustment)
	if err != nil {
		return rate.RoomTypeRate{}, err
	}
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return rate.NewRoomTypeRate(r.RoomTypeID, r.BaseRate, adj, available, r.Allotment, r.StopSale)
}

func roomTypesToDomain(rrs []RoomTypeRateRequest) ([]rate.RoomTypeRate, error) {
	out := make([]rate.RoomTypeRate, len(rrs))
	for i, rr := range rrs {
		rt, err := rr.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = rt
	}
	return out, nil
}

type ValidityRequest struct {
	Start    string             `json:"start" binding:"required"`
	End      string             `json:"end" binding:"required"`
	Timezone string             `json:"timezone,omitempty"`
	Weekdays []int              `json:"weekdays,omitempty" binding:"omitempty,dive,min=0,max=6"`
	Excluded []DateRangeRequest `json:"excluded,omitempty"`
}

func (r ValidityRequest) toDomain() (rate.Validity, error) {
	start, err := parseDate(r.Start)
	if err != nil {
		return rate.Validity{}, err
	}
	end, err := parseDate(r.End)
	if err != nil {
		return rate.Validity{}, err
	}
	var weekdays []time.Weekday
	for _, w := range r.Weekdays {
		weekdays = append(weekdays, time.Weekday(w))
	}
	validity, err := rate.NewValidity(start, end, r.Timezone, weekdays)
	if err != nil {
		return rate.Validity{}, err
	}
	excluded, err := dateRangesToDomain(r.Excluded)
	if err != nil {
		return rate.Validity{}, err
	}
	validity.Excluded = excluded
	return validity, nil
}

type BookingWindowRequest struct {
	MinAdvanceDays int    `json:"minAdvanceDays" binding:"omitempty,min=0"`
	MaxAdvanceDays int    `json:"maxAdvanceDays" binding:"omitempty,min=0"`
	CutoffTime     string `json:"cutoffTime,omitempty"`
}

func (r BookingWindowRequest) toDomain() (rate.BookingWindow, error) {
	return rate.NewBookingWindow(r.MinAdvanceDays, r.MaxAdvanceDays, r.CutoffTime)
}

type StayRequest struct {
	MinStay            int                `json:"minStay" binding:"omitempty,min=0"`
	MaxStay            int                `json:"maxStay" binding:"omitempty,min=0"`
	ClosedToArrival    []string           `json:"closedToArrival,omitempty"`
	ClosedToDeparture  []string           `json:"closedToDeparture,omitempty"`
	StayThroughWindows []DateRangeRequest `json:"stayThroughWindows,omitempty"`
}

func (r StayRequest) toDomain() (rate.StayRestrictions, error) {
	cta, err := parseDates(r.ClosedToArrival)
	if err != nil {
		return rate.StayRestrictions{}, err
	}
	ctd, err := parseDates(r.ClosedToDeparture)
	if err != nil {
		return rate.StayRestrictions{}, err
	}
	through, err := dateRangesToDomain(r.StayThroughWindows)
	if err != nil {
		return rate.StayRestrictions{}, err
	}
	return rate.NewStayRestrictions(r.MinStay, r.MaxStay, cta, ctd, through)
}

type CancellationRequest struct {
	Name            string          `json:"name,omitempty"`
	FreeBeforeHours int             `json:"freeBeforeHours" binding:"omitempty,min=0"`
	PenaltyNights   int             `json:"penaltyNights" binding:"omitempty,min=0"`
	PenaltyPercent  decimal.Decimal `json:"penaltyPercent"`
	NonRefundable   bool            `json:"nonRefundable"`
}

func (r CancellationRequest) toDomain() (rate.CancellationPolicy, error) {
	return rate.NewCancellationPolicy(r.Name, r.FreeBeforeHours, r.PenaltyNights, r.PenaltyPercent, r.NonRefundable)
}

type ChannelConfigRequest struct {
	Channel    string            `json:"channel" binding:"required,oneof=direct web booking.com expedia agoda gds"`
	Markup     AdjustmentRequest `json:"markup" binding:"required"`
	Commission decimal.Decimal   `json:"commission"`
	Active     *bool             `json:"active,omitempty"`
}

func (r ChannelConfigRequest) toDomain() (rate.ChannelConfig, error) {
	markup, err := r.Markup.toDomain()
	if err != nil {
		return rate.ChannelConfig{}, err
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return rate.NewChannelConfig(rate.Channel(r.Channel), markup, r.Commission, active)
}

func channelsToDomain(rrs []ChannelConfigRequest) ([]rate.ChannelConfig, error) {
	if len(rrs) == 0 {
		return nil, nil
	}
	out := make([]rate.ChannelConfig, len(rrs))
	for i, rr := range rrs {
		cc, err := rr.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = cc
	}
	return out, nil
}

type CreateRateRequest struct {
	GroupID      uuid.UUID              `json:"groupId" binding:"required"`
	Name         string                 `json:"name" binding:"required,max=200"`
	Description  string                 `json:"description,omitempty" binding:"omitempty,max=2000"`
	Tags         []string               `json:"tags,omitempty"`
	RateType     string                 `json:"rateType" binding:"required"`
	Priority     int                    `json:"priority" binding:"required,min=1,max=10"`
	Pricing      PricingRequest         `json:"pricing" binding:"required"`
	RoomTypes    []RoomTypeRateRequest  `json:"roomTypes" binding:"required,min=1,dive"`
	Validity     ValidityRequest        `json:"validity" binding:"required"`
	Window       *BookingWindowRequest  `json:"bookingWindow,omitempty"`
	Stay         *StayRequest           `json:"stayRestrictions,omitempty"`
	Cancellation *CancellationRequest   `json:"cancellation,omitempty"`
	Channels     []ChannelConfigRequest `json:"channels,omitempty" binding:"omitempty,dive"`
}

func (r CreateRateRequest) ToDomain() (rate.Definition, error) {
	pricing, err := r.Pricing.toDomain()
	if err != nil {
		return rate.Definition{}, err
	}
	roomTypes, err := roomTypesToDomain(r.RoomTypes)
	if err != nil {
		return rate.Definition{}, err
	}
	validity, err := r.Validity.toDomain()
	if err != nil {
		return rate.Definition{}, err
	}
	def := rate.Definition{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		RateType:    rate.RateType(r.RateType),
		Priority:    r.Priority,
		Pricing:     pricing,
		RoomTypes:   roomTypes,
		Validity:    validity,
	}
	if r.Window != nil {
		if def.Window, err = r.Window.toDomain(); err != nil {
			return rate.Definition{}, err
		}
	}
	if r.Stay != nil {
		if def.Stay, err = r.Stay.toDomain(); err != nil {
			return rate.Definition{}, err
		}
	} else {
		def.Stay.MinStay = 1
	}
	if r.Cancellation != nil {
		if def.Cancellation, err = r.Cancellation.toDomain(); err != nil {
			return rate.Definition{}, err
		}
	}
	if def.Channels, err = channelsToDomain(r.Channels); err != nil {
		return rate.Definition{}, err
	}
	return def, nil
}

type UpdateRateRequest struct {
	Name         *string                 `json:"name,omitempty" binding:"omitempty,max=200"`
	Description  *string                 `json:"description,omitempty" binding:"omitempty,max=2000"`
	Tags         *[]string               `json:"tags,omitempty"`
	Priority     *int                    `json:"priority,omitempty" binding:"omitempty,min=1,max=10"`
	Pricing      *PricingRequest         `json:"pricing,omitempty"`
	RoomTypes    *[]RoomTypeRateRequest  `json:"roomTypes,omitempty" binding:"omitempty,min=1,dive"`
	Validity     *ValidityRequest        `json:"validity,omitempty"`
	Window       *BookingWindowRequest   `json:"bookingWindow,omitempty"`
	Stay         *StayRequest            `json:"stayRestrictions,omitempty"`
	Cancellation *CancellationRequest    `json:"cancellation,omitempty"`
	Channels     *[]ChannelConfigRequest `json:"channels,omitempty" binding:"omitempty,dive"`
}

func (r UpdateRateRequest) ToDomain() (rate.Update, error) {
	upd := rate.Update{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		Priority:    r.Priority,
	}
	if r.Pricing != nil {
		pricing, err := r.Pricing.toDomain()
		if err != nil {
			return rate.Update{}, err
		}
		upd.Pricing = &pricing
	}
	if r.RoomTypes != nil {
		roomTypes, err := roomTypesToDomain(*r.RoomTypes)
		if err != nil {
			return rate.Update{}, err
		}
		upd.RoomTypes = &roomTypes
	}
	if r.Validity != nil {
		validity, err := r.Validity.toDomain()
		if err != nil {
			return rate.Update{}, err
		}
		upd.Validity = &validity
	}
	if r.Window != nil {
		window, err := r.Window.toDomain()
		if err != nil {
			return rate.Update{}, err
		}
		upd.Window = &window
	}
	if r.Stay != nil {
		stay, err := r.Stay.toDomain()
		if err != nil {
			return rate.Update{}, err
		}
		upd.Stay = &stay
	}
	if r.Cancellation != nil {
		cancellation, err := r.Cancellation.toDomain()
		if err != nil {
			return rate.Update{}, err
		}
		upd.Cancellation = &cancellation
	}
	if r.Channels != nil {
		channels, err := channelsToDomain(*r.Channels)
		if err != nil {
			return rate.Update{}, err
		}
		upd.Channels = &channels
	}
	return upd, nil
}

type TransitionRateRequest struct {
	Action string `json:"action" binding:"required,oneof=submit approve reject expire"`
	Reason string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

type DuplicateRateRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type DistributeRequest struct {
	Mode           string      `json:"mode" binding:"required,oneof=broadcast selective inheritance override"`
	Targets        []uuid.UUID `json:"targets,omitempty"`
	Exclusions     []uuid.UUID `json:"exclusions,omitempty"`
	Force          bool        `json:"force"`
	FailOnConflict bool        `json:"failOnConflict"`
	AutoResolve    bool        `json:"autoResolve"`
}

type ResolveConflictRequest struct {
	RateID      uuid.UUID  `json:"rateId" binding:"required"`
	OtherRateID uuid.UUID  `json:"otherRateId" binding:"required"`
	Resolution  string     `json:"resolution" binding:"required,oneof=accept_centralized accept_property create_exception"`
	PropertyID  *uuid.UUID `json:"propertyId,omitempty"`
}

type SyncGroupRequest struct {
	Force bool `json:"force"`
}
