package rate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RejectReason string

const (
	RejectOutsideValidity     RejectReason = "OutsideValidity"
	RejectBelowMinAdvance     RejectReason = "BelowMinAdvance"
	RejectAboveMaxAdvance     RejectReason = "AboveMaxAdvance"
	RejectPastCutoff          RejectReason = "PastCutoff"
	RejectBelowMinStay        RejectReason = "BelowMinStay"
	RejectAboveMaxStay        RejectReason = "AboveMaxStay"
	RejectClosedToArrival     RejectReason = "ClosedToArrival"
	RejectClosedToDeparture   RejectReason = "ClosedToDeparture"
	RejectRoomTypeStopSale    RejectReason = "RoomTypeStopSale"
	RejectRoomTypeNotOffered  RejectReason = "RoomTypeNotOffered"
	RejectStayThroughRequired RejectReason = "StayThroughRequired"
)

// QuoteInput is one pricing question. Now is supplied by the caller so the
// same inputs always produce the same answer.
type QuoteInput struct {
	PropertyID uuid.UUID
	RoomTypeID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	Channel    Channel
	Now        time.Time
}

// AppliedAdjustment documents one pricing layer for the caller.
type AppliedAdjustment struct {
	Layer  string
	Type   AdjustmentType
	Value  decimal.Decimal
	Result decimal.Decimal
}

type Priced struct {
	PerNightRate       decimal.Decimal
	TotalBeforeTax     decimal.Decimal
	Currency           string
	Nights             int
	BreakfastIncluded  bool
	TaxIncluded        bool
	AppliedAdjustments []AppliedAdjustment
}

type Unavailable struct {
	Reason RejectReason
	Date   time.Time
}

// QuoteResult is a tagged variant: exactly one side is set.
type QuoteResult struct {
	Priced      *Priced
	Unavailable *Unavailable
}

func priced(p Priced) QuoteResult {
	return QuoteResult{Priced: &p}
}

func unavailable(reason RejectReason, date time.Time) QuoteResult {
	return QuoteResult{Unavailable: &Unavailable{Reason: reason, Date: day(date)}}
}

const (
	layerRoomType = "room_type"
	layerProperty = "property_override"
	layerChannel  = "channel_markup"
)

// Quote prices a stay against this rate. Pure: no persistence, no clock
// reads, no inventory checks. Checks run in a fixed order and the first
// rejection wins.
func (r *Rate) Quote(in QuoteInput) QuoteResult {
	checkIn, checkOut := day(in.CheckIn), day(in.CheckOut)
	nights := daysBetween(checkIn, checkOut)
	propRate, hasPropRate := r.PropertyRateFor(in.PropertyID)

	// 1. Validity window and recurrence, evaluated on the check-in date.
	if !r.def.Validity.EffectiveOn(checkIn) {
		return unavailable(RejectOutsideValidity, checkIn)
	}

	// 2. Booking window relative to the caller's now.
	window := r.def.Window
	if hasPropRate && propRate.BookingWindow != nil {
		window = *propRate.BookingWindow
	}
	advance := daysBetween(in.Now, checkIn)
	if advance < window.MinAdvanceDays {
		return unavailable(RejectBelowMinAdvance, checkIn)
	}
	if window.MaxAdvanceDays > 0 && advance > window.MaxAdvanceDays {
		return unavailable(RejectAboveMaxAdvance, checkIn)
	}
	if advance == 0 && window.CutoffTime != "" {
		if pastCutoff(in.Now, window.CutoffTime, r.def.Validity.Location()) {
			return unavailable(RejectPastCutoff, checkIn)
		}
	}

	// 3. Stay restrictions.
	stay := r.def.Stay
	if hasPropRate && propRate.Stay != nil {
		stay = *propRate.Stay
	}
	if nights < 1 || nights < stay.MinStay {
		return unavailable(RejectBelowMinStay, checkIn)
	}
	if stay.MaxStay > 0 && nights > stay.MaxStay {
		return unavailable(RejectAboveMaxStay, checkIn)
	}
	if stay.IsClosedToArrival(checkIn) {
		return unavailable(RejectClosedToArrival, checkIn)
	}
	if stay.IsClosedToDeparture(checkOut) {
		return unavailable(RejectClosedToDeparture, checkOut)
	}
	stayRange := DateRange{Start: checkIn, End: checkOut.AddDate(0, 0, -1)}
	for _, through := range stay.StayThrough {
		if stayRange.Overlaps(through) && !coversRange(stayRange, through) {
			return unavailable(RejectStayThroughRequired, through.Start)
		}
	}

	// 4. Room type availability on this rate.
	rt, ok := r.RoomTypeRateFor(in.RoomTypeID)
	if !ok || !rt.IsAvailable {
		return unavailable(RejectRoomTypeNotOffered, checkIn)
	}
	if rt.StopSale {
		return unavailable(RejectRoomTypeStopSale, checkIn)
	}

	// 5. Pricing composition: base, room-type adjustment, property override,
	// channel markup. Each layer result is rounded half to even to two
	// decimals; the final per-night value rounds to whole currency units.
	running := r.def.Pricing.BasePrice
	applied := []AppliedAdjustment{}

	if rt.Adjustment != nil {
		running = rt.Adjustment.Apply(running).RoundBank(2)
		applied = append(applied, AppliedAdjustment{
			Layer: layerRoomType, Type: rt.Adjustment.Type, Value: rt.Adjustment.Value, Result: running,
		})
	}

	if hasPropRate {
		switch {
		case propRate.BasePrice != nil:
			// A full base-price override replaces the running value.
			running = propRate.BasePrice.RoundBank(2)
			applied = append(applied, AppliedAdjustment{
				Layer: layerProperty, Type: AdjustFixed, Value: *propRate.BasePrice, Result: running,
			})
		case propRate.Adjustment != nil:
			running = propRate.Adjustment.Apply(running).RoundBank(2)
			applied = append(applied, AppliedAdjustment{
				Layer: layerProperty, Type: propRate.Adjustment.Type, Value: propRate.Adjustment.Value, Result: running,
			})
		}
	}

	if cc, ok := r.ChannelConfigFor(in.Channel); ok && cc.Active {
		running = cc.Markup.Apply(running).RoundBank(2)
		applied = append(applied, AppliedAdjustment{
			Layer: layerChannel, Type: cc.Markup.Type, Value: cc.Markup.Value, Result: running,
		})
	}

	perNight := running.RoundBank(0)
	if perNight.IsNegative() {
		perNight = decimal.Zero
	}

	return priced(Priced{
		PerNightRate:       perNight,
		TotalBeforeTax:     perNight.Mul(decimal.NewFromInt(int64(nights))),
		Currency:           r.def.Pricing.Currency,
		Nights:             nights,
		BreakfastIncluded:  r.def.Pricing.IncludeBreakfast,
		TaxIncluded:        r.def.Pricing.IncludeTaxes,
		AppliedAdjustments: applied,
	})
}

// coversRange reports whether stay fully contains the stay-through window.
func coversRange(stay, through DateRange) bool {
	return !stay.Start.After(through.Start) && !stay.End.Before(through.End)
}

// pastCutoff compares the caller's now against a same-day sales cutoff in
// the rate's timezone.
func pastCutoff(now time.Time, cutoff string, loc *time.Location) bool {
	t, err := time.Parse("15:04", cutoff)
	if err != nil {
		return false
	}
	local := now.In(loc)
	deadline := time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	return local.After(deadline)
}
