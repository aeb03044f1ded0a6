package rate

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyValidity      = errors.New("validity end must be after start")
	ErrUnknownTimezone    = errors.New("unknown timezone")
	ErrInvalidAdjustment  = errors.New("invalid adjustment")
	ErrNegativeBasePrice  = errors.New("base price cannot be negative")
	ErrInvalidCurrency    = errors.New("currency must be a three-letter code")
	ErrInvalidWindow      = errors.New("booking window min must not exceed max")
	ErrInvalidStayBounds  = errors.New("minimum stay must not exceed maximum stay")
	ErrInvalidPriority    = errors.New("priority out of range")
	ErrDuplicateChannel   = errors.New("channel configured twice")
	ErrInvalidDateRange   = errors.New("date range end must not precede start")
	ErrNegativeDerived    = errors.New("adjustment drives derived rate negative")
	ErrInvalidCutoff      = errors.New("cutoff time must be HH:MM")
	ErrUnknownAdjustKind  = errors.New("unknown adjustment type")
	ErrInvalidAllotment   = errors.New("allotment cannot be negative")
	ErrInvalidCommission  = errors.New("commission must be between 0 and 100")
	ErrNoRoomTypes        = errors.New("at least one room type rate is required")
	ErrDuplicateRoomType  = errors.New("room type rated twice")
	ErrDuplicateProperty  = errors.New("property listed twice")
	ErrUnknownRoomType    = errors.New("room type does not belong to the group")
	ErrInvalidCancelTerms = errors.New("invalid cancellation terms")
)

// day strips the clock component; stay dates are calendar dates.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(day(to).Sub(day(from)) / (24 * time.Hour))
}

func sameDay(a, b time.Time) bool {
	return day(a).Equal(day(b))
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := day(start), day(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{Start: s, End: e}, nil
}

func (r DateRange) Contains(d time.Time) bool {
	t := day(d)
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	start, end := r.Start, r.End
	if other.Start.After(start) {
		start = other.Start
	}
	if other.End.Before(end) {
		end = other.End
	}
	return DateRange{Start: start, End: end}, true
}

// Days returns the number of calendar days in the range, inclusive.
func (r DateRange) Days() int {
	return daysBetween(r.Start, r.End) + 1
}

// Validity is the bookable window of a rate. Weekdays is a recurrence mask
// evaluated against the check-in date; empty means every day. Excluded holds
// carve-outs produced by conflict resolutions.
type Validity struct {
	Start    time.Time
	End      time.Time
	Timezone string
	Weekdays []time.Weekday
	Excluded []DateRange
}

func NewValidity(start, end time.Time, timezone string, weekdays []time.Weekday) (Validity, error) {
	s, e := day(start), day(end)
	if !e.After(s) {
		return Validity{}, ErrEmptyValidity
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return Validity{}, ErrUnknownTimezone
	}
	return Validity{Start: s, End: e, Timezone: timezone, Weekdays: weekdays}, nil
}

func (v Validity) Location() *time.Location {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (v Validity) matchesWeekday(d time.Time) bool {
	if len(v.Weekdays) == 0 {
		return true
	}
	wd := day(d).Weekday()
	for _, w := range v.Weekdays {
		if w == wd {
			return true
		}
	}
	return false
}

// EffectiveOn reports whether the rate is live for the given check-in date.
func (v Validity) EffectiveOn(d time.Time) bool {
	t := day(d)
	if t.Before(v.Start) || t.After(v.End) {
		return false
	}
	if !v.matchesWeekday(t) {
		return false
	}
	for _, ex := range v.Excluded {
		if ex.Contains(t) {
			return false
		}
	}
	return true
}

func (v Validity) Window() DateRange {
	return DateRange{Start: v.Start, End: v.End}
}

// Carve excludes the given range from the validity, merging with any
// exclusions it touches. The window itself is left intact so the remaining
// effective spans stay addressable.
func (v Validity) Carve(r DateRange) Validity {
	clipped, ok := r.Intersect(v.Window())
	if !ok {
		return v
	}
	merged := append([]DateRange{}, v.Excluded...)
	merged = append(merged, clipped)
	sort.Slice(merged, func(i, j int) bool { return merged[i].Start.Before(merged[j].Start) })

	out := merged[:1]
	for _, next := range merged[1:] {
		last := &out[len(out)-1]
		if !next.Start.After(last.End.AddDate(0, 0, 1)) {
			if next.End.After(last.End) {
				last.End = next.End
			}
			continue
		}
		out = append(out, next)
	}

	carved := v
	carved.Excluded = out
	return carved
}

// EffectiveSpans returns the validity window minus exclusions, oldest first.
func (v Validity) EffectiveSpans() []DateRange {
	spans := []DateRange{}
	cursor := v.Start
	for _, ex := range v.Excluded {
		if ex.Start.After(cursor) {
			spans = append(spans, DateRange{Start: cursor, End: ex.Start.AddDate(0, 0, -1)})
		}
		if next := ex.End.AddDate(0, 0, 1); next.After(cursor) {
			cursor = next
		}
	}
	if !cursor.After(v.End) {
		spans = append(spans, DateRange{Start: cursor, End: v.End})
	}
	return spans
}

// BasePricing is the group-level starting price before any adjustment.
type BasePricing struct {
	BasePrice        decimal.Decimal
	Currency         string
	IncludeTaxes     bool
	IncludeBreakfast bool
}

func NewBasePricing(basePrice decimal.Decimal, currency string, includeTaxes, includeBreakfast bool) (BasePricing, error) {
	if basePrice.IsNegative() {
		return BasePricing{}, ErrNegativeBasePrice
	}
	if len(currency) != 3 {
		return BasePricing{}, ErrInvalidCurrency
	}
	return BasePricing{
		BasePrice:        basePrice,
		Currency:         currency,
		IncludeTaxes:     includeTaxes,
		IncludeBreakfast: includeBreakfast,
	}, nil
}

// Adjustment is a single pricing modifier. Exactly one kind applies per
// entry; percentage values are expressed in percent points.
type Adjustment struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

func NewAdjustment(kind AdjustmentType, value decimal.Decimal) (Adjustment, error) {
	if !kind.IsValid() {
		return Adjustment{}, ErrUnknownAdjustKind
	}
	return Adjustment{Type: kind, Value: value}, nil
}

var hundred = decimal.NewFromInt(100)

// Apply returns the raw adjusted amount; callers own rounding.
func (a Adjustment) Apply(base decimal.Decimal) decimal.Decimal {
	switch a.Type {
	case AdjustPercentage:
		return base.Mul(hundred.Add(a.Value)).Div(hundred)
	case AdjustFixed:
		return base.Add(a.Value)
	default:
		return base
	}
}

func (a Adjustment) Equal(other Adjustment) bool {
	return a.Type == other.Type && a.Value.Equal(other.Value)
}

// RoomTypeRate binds a room type to the rate. BaseRate is authoring metadata
// used when materializing inventory; quoting composes from the group base
// price plus Adjustment.
type RoomTypeRate struct {
	RoomTypeID  uuid.UUID
	BaseRate    decimal.Decimal
	Adjustment  *Adjustment
	IsAvailable bool
	Allotment   int
	StopSale    bool
}

func NewRoomTypeRate(roomTypeID uuid.UUID, baseRate decimal.Decimal, adj *Adjustment, isAvailable bool, allotment int, stopSale bool) (RoomTypeRate, error) {
	if baseRate.IsNegative() {
		return RoomTypeRate{}, ErrNegativeBasePrice
	}
	if allotment < 0 {
		return RoomTypeRate{}, ErrInvalidAllotment
	}
	return RoomTypeRate{
		RoomTypeID:  roomTypeID,
		BaseRate:    baseRate,
		Adjustment:  adj,
		IsAvailable: isAvailable,
		Allotment:   allotment,
		StopSale:    stopSale,
	}, nil
}

// SyncStatus is the distribution bookkeeping for one property row.
type SyncStatus struct {
	State      SyncState
	LastSyncAt *time.Time
	Error      string
}

// PropertyRate is the per-property row a distribution maintains. Overrides
// are optional; a nil BasePrice means the group pricing flows through.
type PropertyRate struct {
	PropertyID    uuid.UUID
	BasePrice     *decimal.Decimal
	Adjustment    *Adjustment
	Stay          *StayRestrictions
	BookingWindow *BookingWindow
	IsOverride    bool
	Sync          SyncStatus
}

func NewPropertyRate(propertyID uuid.UUID) PropertyRate {
	return PropertyRate{
		PropertyID: propertyID,
		Sync:       SyncStatus{State: SyncPending},
	}
}

func (p PropertyRate) HasOverride() bool {
	return p.IsOverride || p.BasePrice != nil || p.Adjustment != nil || p.Stay != nil || p.BookingWindow != nil
}

// BookingWindow bounds how far ahead of arrival a stay may be sold.
// MaxAdvanceDays zero means unbounded; CutoffTime ("HH:MM", rate timezone)
// applies to same-day arrivals only.
type BookingWindow struct {
	MinAdvanceDays int
	MaxAdvanceDays int
	CutoffTime     string
}

func NewBookingWindow(minAdvance, maxAdvance int, cutoff string) (BookingWindow, error) {
	if minAdvance < 0 || maxAdvance < 0 {
		return BookingWindow{}, ErrInvalidWindow
	}
	if maxAdvance > 0 && minAdvance > maxAdvance {
		return BookingWindow{}, ErrInvalidWindow
	}
	if cutoff != "" {
		if _, err := time.Parse("15:04", cutoff); err != nil {
			return BookingWindow{}, ErrInvalidCutoff
		}
	}
	return BookingWindow{MinAdvanceDays: minAdvance, MaxAdvanceDays: maxAdvance, CutoffTime: cutoff}, nil
}

// StayRestrictions constrain stay shape. MaxStay zero means unbounded.
// StayThrough windows must be fully covered by any stay that touches them.
type StayRestrictions struct {
	MinStay           int
	MaxStay           int
	ClosedToArrival   []time.Time
	ClosedToDeparture []time.Time
	StayThrough       []DateRange
}

func NewStayRestrictions(minStay, maxStay int, cta, ctd []time.Time, stayThrough []DateRange) (StayRestrictions, error) {
	if minStay < 0 || maxStay < 0 {
		return StayRestrictions{}, ErrInvalidStayBounds
	}
	if maxStay > 0 && minStay > maxStay {
		return StayRestrictions{}, ErrInvalidStayBounds
	}
	norm := func(in []time.Time) []time.Time {
		out := make([]time.Time, len(in))
		for i, t := range in {
			out[i] = day(t)
		}
		return out
	}
	return StayRestrictions{
		MinStay:           minStay,
		MaxStay:           maxStay,
		ClosedToArrival:   norm(cta),
		ClosedToDeparture: norm(ctd),
		StayThrough:       stayThrough,
	}, nil
}

func (s StayRestrictions) IsClosedToArrival(d time.Time) bool {
	return containsDay(s.ClosedToArrival, d)
}

func (s StayRestrictions) IsClosedToDeparture(d time.Time) bool {
	return containsDay(s.ClosedToDeparture, d)
}

func containsDay(dates []time.Time, d time.Time) bool {
	for _, t := range dates {
		if sameDay(t, d) {
			return true
		}
	}
	return false
}

// CancellationPolicy is carried on the rate and echoed to channels; the core
// does not compute penalties.
type CancellationPolicy struct {
	Name            string
	FreeBeforeHours int
	PenaltyNights   int
	PenaltyPercent  decimal.Decimal
	NonRefundable   bool
}

func NewCancellationPolicy(name string, freeBeforeHours, penaltyNights int, penaltyPercent decimal.Decimal, nonRefundable bool) (CancellationPolicy, error) {
	if freeBeforeHours < 0 || penaltyNights < 0 || penaltyPercent.IsNegative() || penaltyPercent.GreaterThan(hundred) {
		return CancellationPolicy{}, ErrInvalidCancelTerms
	}
	return CancellationPolicy{
		Name:            name,
		FreeBeforeHours: freeBeforeHours,
		PenaltyNights:   penaltyNights,
		PenaltyPercent:  penaltyPercent,
		NonRefundable:   nonRefundable,
	}, nil
}

// ChannelConfig holds per-channel selling terms. Markup feeds the quote;
// commission is bookkeeping for settlement and never changes the price.
type ChannelConfig struct {
	Channel    Channel
	Markup     Adjustment
	Commission decimal.Decimal
	Active     bool
}

func NewChannelConfig(channel Channel, markup Adjustment, commission decimal.Decimal, active bool) (ChannelConfig, error) {
	if !channel.IsValid() {
		return ChannelConfig{}, ErrInvalidAdjustment
	}
	if commission.IsNegative() || commission.GreaterThan(hundred) {
		return ChannelConfig{}, ErrInvalidCommission
	}
	return ChannelConfig{Channel: channel, Markup: markup, Commission: commission, Active: active}, nil
}

// ConflictLink records a detected conflict against another rate and its
// standing disposition.
type ConflictLink struct {
	OtherRateID uuid.UUID
	Kind        ConflictKind
	Action      ConflictAction
	Overlap     DateRange
	DetectedAt  time.Time
	ResolvedAt  *time.Time
	Resolution  *Resolution
}

// ChangeEntry is one audit line; exactly one is appended per persisted
// mutation.
type ChangeEntry struct {
	At          time.Time
	Actor       uuid.UUID
	Action      string
	Detail      string
	FromVersion int64
	ToVersion   int64
}
