package rate

import (
	"time"

	"github.com/google/uuid"
)

// Conflict is a derived pairing of two rates competing for the same stays.
type Conflict struct {
	RateID      uuid.UUID
	OtherRateID uuid.UUID
	Kind        ConflictKind
	Overlap     DateRange
}

// Detect examines a candidate pair. Conflicts only arise between approved
// rates of the same group and rate type whose validity windows share at
// least one effective day and whose room-type sets intersect within the
// property's room types (pass nil to intersect globally).
func Detect(r, other *Rate, propertyRoomTypes map[uuid.UUID]struct{}) (Conflict, bool) {
	if r.ID() == other.ID() {
		return Conflict{}, false
	}
	if r.GroupID() != other.GroupID() || r.RateType() != other.RateType() {
		return Conflict{}, false
	}
	if !r.IsApproved() || !other.IsApproved() {
		return Conflict{}, false
	}
	overlap, ok := effectiveOverlap(r.Validity(), other.Validity())
	if !ok {
		return Conflict{}, false
	}
	if !roomTypesIntersect(r, other, propertyRoomTypes) {
		return Conflict{}, false
	}

	return Conflict{
		RateID:      r.ID(),
		OtherRateID: other.ID(),
		Kind:        classify(r, other),
		Overlap:     overlap,
	}, true
}

// classify orders the checks: material duplicates first, then equal-priority
// standoffs, everything else is a plain overlap.
func classify(r, other *Rate) ConflictKind {
	if sameBasePricing(r, other) && sameStayRules(r, other) && sameChannelTerms(r, other) {
		return ConflictDuplicate
	}
	if r.Priority() == other.Priority() {
		return ConflictPriority
	}
	return ConflictOverlap
}

// Winner picks the surviving side: higher priority number, ties broken by
// the newer rate.
func Winner(a, b *Rate) (winner, loser *Rate) {
	switch {
	case a.Priority() > b.Priority():
		return a, b
	case b.Priority() > a.Priority():
		return b, a
	case a.CreatedAt().After(b.CreatedAt()):
		return a, b
	default:
		return b, a
	}
}

// effectiveOverlap intersects the raw windows, then confirms at least one
// day in the intersection is live on both sides (weekday masks and
// carve-outs can empty a raw overlap).
func effectiveOverlap(a, b Validity) (DateRange, bool) {
	raw, ok := a.Window().Intersect(b.Window())
	if !ok {
		return DateRange{}, false
	}
	for d := raw.Start; !d.After(raw.End); d = d.AddDate(0, 0, 1) {
		if a.EffectiveOn(d) && b.EffectiveOn(d) {
			return raw, true
		}
	}
	return DateRange{}, false
}

func roomTypesIntersect(r, other *Rate, propertyRoomTypes map[uuid.UUID]struct{}) bool {
	inProperty := func(id uuid.UUID) bool {
		if propertyRoomTypes == nil {
			return true
		}
		_, ok := propertyRoomTypes[id]
		return ok
	}
	otherSet := make(map[uuid.UUID]struct{}, len(other.RoomTypes()))
	for _, rt := range other.RoomTypes() {
		if inProperty(rt.RoomTypeID) {
			otherSet[rt.RoomTypeID] = struct{}{}
		}
	}
	for _, rt := range r.RoomTypes() {
		if !inProperty(rt.RoomTypeID) {
			continue
		}
		if _, ok := otherSet[rt.RoomTypeID]; ok {
			return true
		}
	}
	return false
}

func sameBasePricing(r, other *Rate) bool {
	a, b := r.Pricing(), other.Pricing()
	return a.BasePrice.Equal(b.BasePrice) && a.Currency == b.Currency
}

func sameStayRules(r, other *Rate) bool {
	a, b := r.Stay(), other.Stay()
	if a.MinStay != b.MinStay || a.MaxStay != b.MaxStay {
		return false
	}
	return sameDaySet(a.ClosedToArrival, b.ClosedToArrival) &&
		sameDaySet(a.ClosedToDeparture, b.ClosedToDeparture)
}

func sameDaySet(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for _, d := range a {
		if !containsDay(b, d) {
			return false
		}
	}
	return true
}

func sameChannelTerms(r, other *Rate) bool {
	a, b := r.Channels(), other.Channels()
	if len(a) != len(b) {
		return false
	}
	byChannel := make(map[Channel]ChannelConfig, len(b))
	for _, cc := range b {
		byChannel[cc.Channel] = cc
	}
	for _, cc := range a {
		match, ok := byChannel[cc.Channel]
		if !ok || match.Active != cc.Active || !match.Markup.Equal(cc.Markup) {
			return false
		}
	}
	return true
}
