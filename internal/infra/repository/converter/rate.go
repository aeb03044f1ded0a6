package converter

import (
	"encoding/json"
	"time"

	"rategrid/internal/domain/rate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateColumns carries the indexed columns the rate document does not
// duplicate. The document plus these columns rebuilds the full snapshot.
type RateColumns struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	Version   int64
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type rateDoc struct {
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	RateType       string            `json:"rateType"`
	Priority       int               `json:"priority"`
	Pricing        pricingDoc        `json:"pricing"`
	RoomTypes      []roomTypeRateDoc `json:"roomTypes"`
	Validity       validityDoc       `json:"validity"`
	Window         windowDoc         `json:"bookingWindow"`
	Stay           stayDoc           `json:"stayRestrictions"`
	Cancellation   cancellationDoc   `json:"cancellation"`
	Channels       []channelDoc      `json:"channels,omitempty"`
	Properties     []propertyRateDoc `json:"properties,omitempty"`
	Conflicts      []conflictLinkDoc `json:"conflicts,omitempty"`
	ApprovalStatus string            `json:"approvalStatus"`
	SyncStatus     string            `json:"syncStatus"`
	ChangeLog      []changeEntryDoc  `json:"changeLog,omitempty"`
}

type pricingDoc struct {
	BasePrice        decimal.Decimal `json:"basePrice"`
	Currency         string          `json:"currency"`
	IncludeTaxes     bool            `json:"includeTaxes"`
	IncludeBreakfast bool            `json:"includeBreakfast"`
}

type adjustmentDoc struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type roomTypeRateDoc struct {
	RoomTypeID  uuid.UUID       `json:"roomTypeId"`
	BaseRate    decimal.Decimal `json:"baseRate"`
	Adjustment  *adjustmentDoc  `json:"adjustment,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
	Allotment   int             `json:"allotment"`
	StopSale    bool            `json:"stopSale"`
}

type dateRangeDoc struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type validityDoc struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Timezone string         `json:"timezone"`
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
	Excluded []dateRangeDoc `json:"excluded,omitempty"`
}

type windowDoc struct {
	MinAdvanceDays int    `json:"minAdvanceDays"`
	MaxAdvanceDays int    `json:"maxAdvanceDays"`
	CutoffTime     string `json:"cutoffTime,omitempty"`
}

type stayDoc struct {
	MinStay           int            `json:"minStay"`
	MaxStay           int            `json:"maxStay"`
	ClosedToArrival   []time.Time    `json:"closedToArrival,omitempty"`
	ClosedToDeparture []time.Time    `json:"closedToDeparture,omitempty"`
	StayThrough       []dateRangeDoc `json:"stayThrough,omitempty"`
}

type cancellationDoc struct {
	Name            string          `json:"name,omitempty"`
	FreeBeforeHours int             `json:"freeBeforeHours"`
	PenaltyNights   int             `json:"penaltyNights"`
	PenaltyPercent  decimal.Decimal `json:"penaltyPercent"`
	NonRefundable   bool            `json:"nonRefundable"`
}

type channelDoc struct {
	Channel    string          `json:"channel"`
	Markup     adjustmentDoc   `json:"markup"`
	Commission decimal.Decimal `json:"commission"`
	Active     bool            `json:"active"`
}

type syncStatusDoc struct {
	State      string     `json:"state"`
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type propertyRateDoc struct {
	PropertyID uuid.UUID        `json:"propertyId"`
	BasePrice  *decimal.Decimal `json:"basePrice,omitempty"`
	Adjustment *adjustmentDoc   `json:"adjustment,omitempty"`
	Stay       *stayDoc         `json:"stay,omitempty"`
	Window     *windowDoc       `json:"bookingWindow,omitempty"`
	IsOverride bool             `json:"isOverride"`
	Sync       syncStatusDoc    `json:"sync"`
}

type conflictLinkDoc struct {
	OtherRateID uuid.UUID    `json:"otherRateId"`
	Kind        string       `json:"kind"`
	Action      string       `json:"action"`
	Overlap     dateRangeDoc `json:"overlap"`
	DetectedAt  time.Time    `json:"detectedAt"`
	ResolvedAt  *time.Time   `json:"resolvedAt,omitempty"`
	Resolution  *string      `json:"resolution,omitempty"`
}

type changeEntryDoc struct {
	At          time.Time `json:"at"`
	Actor       uuid.UUID `json:"actor"`
	Action      string    `json:"action"`
	Detail      string    `json:"detail,omitempty"`
	FromVersion int64     `json:"fromVersion"`
	ToVersion   int64     `json:"toVersion"`
}

func MarshalRateDocument(s rate.Snapshot) ([]byte, error) {
	doc := rateDoc{
		Name:           s.Name,
		Description:    s.Description,
		Tags:           s.Tags,
		RateType:       s.RateType.String(),
		Priority:       s.Priority,
		Pricing:        pricingDoc(s.Pricing),
		RoomTypes:      roomTypesToDoc(s.RoomTypes),
		Validity:       validityToDoc(s.Validity),
		Window:         windowDoc(s.Window),
		Stay:           stayToDoc(s.Stay),
		Cancellation:   cancellationDoc(s.Cancellation),
		Channels:       channelsToDoc(s.Channels),
		Properties:     propertyRatesToDoc(s.PropertyRates),
		Conflicts:      conflictLinksToDoc(s.ConflictLinks),
		ApprovalStatus: s.ApprovalStatus.String(),
		SyncStatus:     s.SyncStatus.String(),
		ChangeLog:      changeLogToDoc(s.ChangeLog),
	}
	return json.Marshal(doc)
}

func UnmarshalRateDocument(data []byte, cols RateColumns) (rate.Snapshot, error) {
	var doc rateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return rate.Snapshot{}, err
	}
	return rate.Snapshot{
		ID:      cols.ID,
		GroupID: cols.GroupID,
		Definition: rate.Definition{
			Name:         doc.Name,
			Description:  doc.Description,
			Tags:         doc.Tags,
			RateType:     rate.RateType(doc.RateType),
			Priority:     doc.Priority,
			Pricing:      rate.BasePricing(doc.Pricing),
			RoomTypes:    roomTypesFromDoc(doc.RoomTypes),
			Validity:     validityFromDoc(doc.Validity),
			Window:       rate.BookingWindow(doc.Window),
			Stay:         stayFromDoc(doc.Stay),
			Cancellation: rate.CancellationPolicy(doc.Cancellation),
			Channels:     channelsFromDoc(doc.Channels),
		},
		PropertyRates:  propertyRatesFromDoc(doc.Properties),
		ConflictLinks:  conflictLinksFromDoc(doc.Conflicts),
		ApprovalStatus: rate.ApprovalStatus(doc.ApprovalStatus),
		SyncStatus:     rate.SyncState(doc.SyncStatus),
		Version:        cols.Version,
		ChangeLog:      changeLogFromDoc(doc.ChangeLog),
		CreatedBy:      cols.CreatedBy,
		CreatedAt:      cols.CreatedAt,
		UpdatedAt:      cols.UpdatedAt,
	}, nil
}

func adjustmentToDoc(a *rate.Adjustment) *adjustmentDoc {
	if a == nil {
		return nil
	}
	return &adjustmentDoc{Type: string(a.Type), Value: a.Value}
}

func adjustmentFromDoc(d *adjustmentDoc) *rate.Adjustment {
	if d == nil {
		return nil
	}
	return &rate.Adjustment{Type: rate.AdjustmentType(d.Type), Value: d.Value}
}

func roomTypesToDoc(in []rate.RoomTypeRate) []roomTypeRateDoc {
	out := make([]roomTypeRateDoc, len(in))
	for i, rt := range in {
		out[i] = roomTypeRateDoc{
			RoomTypeID:  rt.RoomTypeID,
			BaseRate:    rt.BaseRate,
			Adjustment:  adjustmentToDoc(rt.Adjustment),
			IsAvailable: rt.IsAvailable,
			Allotment:   rt.Allotment,
			StopSale:    rt.StopSale,
		}
	}
	return out
}

func roomTypesFromDoc(in []roomTypeRateDoc) []rate.RoomTypeRate {
	out := make([]rate.RoomTypeRate, len(in))
	for i, d := range in {
		out[i] = rate.RoomTypeRate{
			RoomTypeID:  d.RoomTypeID,
			BaseRate:    d.BaseRate,
			Adjustment:  adjustmentFromDoc(d.Adjustment),
			IsAvailable: d.IsAvailable,
			Allotment:   d.Allotment,
			StopSale:    d.StopSale,
		}
	}
	return out
}

func rangesToDoc(in []rate.DateRange) []dateRangeDoc {
	if len(in) == 0 {
		return nil
	}
	out := make([]dateRangeDoc, len(in))
	for i, r := range in {
		out[i] = dateRangeDoc(r)
	}
	return out
}

func rangesFromDoc(in []dateRangeDoc) []rate.DateRange {
	if len(in) == 0 {
		return nil
	}
	out := make([]rate.DateRange, len(in))
	for i, d := range in {
		out[i] = rate.DateRange(d)
	}
	return out
}

func validityToDoc(v rate.Validity) validityDoc {
	return validityDoc{
		Start:    v.Start,
		End:      v.End,
		Timezone: v.Timezone,
		Weekdays: v.Weekdays,
		Excluded: rangesToDoc(v.Excluded),
	}
}

func validityFromDoc(d validityDoc) rate.Validity {
	return rate.Validity{
		Start:    d.Start,
		End:      d.End,
		Timezone: d.Timezone,
		Weekdays: d.Weekdays,
		Excluded: rangesFromDoc(d.Excluded),
	}
}

func stayToDoc(s rate.StayRestrictions) stayDoc {
	return stayDoc{
		MinStay:           s.MinStay,
		MaxStay:           s.MaxStay,
		ClosedToArrival:   s.ClosedToArrival,
		ClosedToDeparture: s.ClosedToDeparture,
		StayThrough:       rangesToDoc(s.StayThrough),
	}
}

func stayFromDoc(d stayDoc) rate.StayRestrictions {
	return rate.StayRestrictions{
		MinStay:           d.MinStay,
		MaxStay:           d.MaxStay,
		ClosedToArrival:   d.ClosedToArrival,
		ClosedToDeparture: d.ClosedToDeparture,
		StayThrough:       rangesFromDoc(d.StayThrough),
	}
}

func stayPtrToDoc(s *rate.StayRestrictions) *stayDoc {
	if s == nil {
		return nil
	}
	d := stayToDoc(*s)
	return &d
}

func stayPtrFromDoc(d *stayDoc) *rate.StayRestrictions {
	if d == nil {
		return nil
	}
	s := stayFromDoc(*d)
	return &s
}

func channelsToDoc(in []rate.ChannelConfig) []channelDoc {
	if len(in) == 0 {
		return nil
	}
	out := make([]channelDoc, len(in))
	for i, c := range in {
		out[i] = channelDoc{
			Channel:    c.Channel.String(),
			Markup:     adjustmentDoc{Type: string(c.Markup.Type), Value: c.Markup.Value},
			Commission: c.Commission,
			Active:     c.Active,
		}
	}
	return out
}

func channelsFromDoc(in []channelDoc) []rate.ChannelConfig {
	if len(in) == 0 {
		return nil
	}
	out := make([]rate.ChannelConfig, len(in))
	for i, d := range in {
		out[i] = rate.ChannelConfig{
			Channel:    rate.Channel(d.Channel),
			Markup:     rate.Adjustment{Type: rate.AdjustmentType(d.Markup.Type), Value: d.Markup.Value},
			Commission: d.Commission,
			Active:     d.Active,
		}
	}
	return out
}

func propertyRatesToDoc(in []rate.PropertyRate) []propertyRateDoc {
	if len(in) == 0 {
		return nil
	}
	out := make([]propertyRateDoc, len(in))
	for i, p := range in {
		var window *windowDoc
		if p.BookingWindow != nil {
			w := windowDoc(*p.BookingWindow)
			window = &w
		}
		out[i] = propertyRateDoc{
			PropertyID: p.PropertyID,
			BasePrice:  p.BasePrice,
			Adjustment: adjustmentToDoc(p.Adjustment),
			Stay:       stayPtrToDoc(p.Stay),
			Window:     window,
			IsOverride: p.IsOverride,
			Sync: syncStatusDoc{
				State:      p.Sync.State.String(),
				LastSyncAt: p.Sync.LastSyncAt,
				Error:      p.Sync.Error,
			},
		}
	}
	return out
}

func propertyRatesFromDoc(in []propertyRateDoc) []rate.PropertyRate {
	if len(in) == 0 {
		return nil
	}
	out := make([]rate.PropertyRate, len(in))
	for i, d := range in {
		var window *rate.BookingWindow
		if d.Window != nil {
			w := rate.BookingWindow(*d.Window)
			window = &w
		}
		out[i] = rate.PropertyRate{
			PropertyID:    d.PropertyID,
			BasePrice:     d.BasePrice,
			Adjustment:    adjustmentFromDoc(d.Adjustment),
			Stay:          stayPtrFromDoc(d.Stay),
			BookingWindow: window,
			IsOverride:    d.IsOverride,
			Sync: rate.SyncStatus{
				State:      rate.SyncState(d.Sync.State),
				LastSyncAt: d.Sync.LastSyncAt,
				Error:      d.Sync.Error,
			},
		}
	}
	return out
}

func conflictLinksToDoc(in []rate.ConflictLink) []conflictLinkDoc {
	if len(in) == 0 {
		return nil
	}
	out := make([]conflictLinkDoc, len(in))
	for i, l := range in {
		var resolution *string
		if l.Resolution != nil {
			s := string(*l.Resolution)
			resolution = &s
		}
		out[i] = conflictLinkDoc{
			OtherRateID: l.OtherRateID,
			Kind:        string(l.Kind),
			Action:      string(l.Action),
			Overlap:     dateRangeDoc(l.Overlap),
			DetectedAt:  l.DetectedAt,
			ResolvedAt:  l.ResolvedAt,
			Resolution:  resolution,
		}
	}
	return out
}

func conflictLinksFromDoc(in []conflictLinkDoc) []rate.ConflictLink {
	if len(in) == 0 {
		return nil
	}
	out := make([]rate.ConflictLink, len(in))
	for i, d := range in {
		var resolution *rate.Resolution
		if d.Resolution != nil {
			r := rate.Resolution(*d.Resolution)
			resolution = &r
		}
		out[i] = rate.ConflictLink{
			OtherRateID: d.OtherRateID,
			Kind:        rate.ConflictKind(d.Kind),
			Action:      rate.ConflictAction(d.Action),
			Overlap:     rate.DateRange(d.Overlap),
			DetectedAt:  d.DetectedAt,
			ResolvedAt:  d.ResolvedAt,
			Resolution:  resolution,
		}
	}
	return out
}

func changeLogToDoc(in []rate.ChangeEntry) []changeEntryDoc {
	if len(in) == 0 {
		return nil
	}
	out := make([]changeEntryDoc, len(in))
	for i, e := range in {
		out[i] = changeEntryDoc(e)
	}
	return out
}

func changeLogFromDoc(in []changeEntryDoc) []rate.ChangeEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]rate.ChangeEntry, len(in))
	for i, d := range in {
		out[i] = rate.ChangeEntry(d)
	}
	return out
}
