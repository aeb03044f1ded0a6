package queries

import (
	"context"
	"time"

	"rategrid/internal/domain/rate"
	"rategrid/internal/infra"
	"rategrid/internal/infra/observability"
	"rategrid/internal/pkg/clock"
	"rategrid/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	ErrRateNotQuotable = errs.New("rate is not approved for quoting")
	ErrInvalidStay     = errs.New("check-out must be after check-in")
	ErrInvalidGuests   = errs.New("guests must be positive")
	ErrUnknownChannel  = errs.New("unknown channel")
)

// RateSnapshotRepo loads the write-side document for quoting. Quotes price
// against the full aggregate, not the flattened list projection.
type RateSnapshotRepo interface {
	FindSnapshotByID(ctx context.Context, id uuid.UUID) (*rate.Snapshot, error)
}

// RateSnapshotCache fronts the snapshot repo. Misses are not errors.
type RateSnapshotCache interface {
	Get(ctx context.Context, id uuid.UUID) (*rate.Snapshot, bool, error)
	Set(ctx context.Context, snap *rate.Snapshot) error
}

type QuoteRequest struct {
	RateID     uuid.UUID `json:"rateId"`
	PropertyID uuid.UUID `json:"propertyId"`
	RoomTypeID uuid.UUID `json:"roomTypeId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Guests     int       `json:"guests"`
	Channel    string    `json:"channel"`
}

type AppliedAdjustmentView struct {
	Layer  string          `json:"layer"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Result decimal.Decimal `json:"result"`
}

type PricedView struct {
	PerNightRate       decimal.Decimal         `json:"perNightRate"`
	TotalBeforeTax     decimal.Decimal         `json:"totalBeforeTax"`
	Currency           string                  `json:"currency"`
	Nights             int                     `json:"nights"`
	BreakfastIncluded  bool                    `json:"breakfastIncluded"`
	TaxIncluded        bool                    `json:"taxIncluded"`
	AppliedAdjustments []AppliedAdjustmentView `json:"appliedAdjustments"`
}

type UnavailableView struct {
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// QuoteView carries exactly one of the two outcomes.
type QuoteView struct {
	RateID      uuid.UUID        `json:"rateId"`
	Priced      *PricedView      `json:"priced,omitempty"`
	Unavailable *UnavailableView `json:"unavailable,omitempty"`
}

type QuoteQueries interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
}

type quoteQueriesImpl struct {
	repo  RateSnapshotRepo
	cache RateSnapshotCache
	clock clock.Clock
	group singleflight.Group
}

func NewQuoteQueries(repo RateSnapshotRepo, cache RateSnapshotCache, clk clock.Clock) QuoteQueries {
	return &quoteQueriesImpl{repo: repo, cache: cache, clock: clk}
}

func (q *quoteQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	if req.Guests < 1 {
		return nil, errs.Mark(ErrInvalidGuests, errs.ErrValidation)
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, errs.Mark(ErrInvalidStay, errs.ErrValidation)
	}
	channel := rate.Channel(req.Channel)
	if !channel.IsValid() {
		return nil, errs.Mark(ErrUnknownChannel, errs.ErrValidation)
	}

	snap, err := q.loadSnapshot(ctx, req.RateID)
	if err != nil {
		return nil, err
	}
	if snap.ApprovalStatus != rate.StatusApproved {
		observability.ObserveQuote("rejected")
		return nil, errs.Mark(ErrRateNotQuotable, errs.ErrStateViolation)
	}

	r := rate.Reconstruct(*snap)
	result := r.Quote(rate.QuoteInput{
		PropertyID: req.PropertyID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		Channel:    channel,
		Now:        q.clock.Now(),
	})
	if result.Unavailable != nil {
		observability.ObserveQuote("unavailable")
	} else {
		observability.ObserveQuote("priced")
	}
	return toQuoteView(req.RateID, result), nil
}

// loadSnapshot goes cache first; concurrent misses for the same rate coalesce
// into one store read.
func (q *quoteQueriesImpl) loadSnapshot(ctx context.Context, id uuid.UUID) (*rate.Snapshot, error) {
	if q.cache != nil {
		if snap, ok, err := q.cache.Get(ctx, id); err == nil && ok {
			return snap, nil
		}
	}

	v, err, _ := q.group.Do(id.String(), func() (any, error) {
		snap, err := q.repo.FindSnapshotByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if q.cache != nil {
			_ = q.cache.Set(ctx, snap)
		}
		return snap, nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRateNotFound)
		}
		return nil, err
	}
	return v.(*rate.Snapshot), nil
}

func toQuoteView(rateID uuid.UUID, result rate.QuoteResult) *QuoteView {
	view := &QuoteView{RateID: rateID}
	if result.Unavailable != nil {
		view.Unavailable = &UnavailableView{
			Reason: string(result.Unavailable.Reason),
			Date:   result.Unavailable.Date,
		}
		return view
	}

	p := result.Priced
	adjustments := make([]AppliedAdjustmentView, len(p.AppliedAdjustments))
	for i, a := range p.AppliedAdjustments {
		adjustments[i] = AppliedAdjustmentView{
			Layer:  a.Layer,
			Type:   string(a.Type),
			Value:  a.Value,
			Result: a.Result,
		}
	}
	view.Priced = &PricedView{
		PerNightRate:       p.PerNightRate,
		TotalBeforeTax:     p.TotalBeforeTax,
		Currency:           p.Currency,
		Nights:             p.Nights,
		BreakfastIncluded:  p.BreakfastIncluded,
		TaxIncluded:        p.TaxIncluded,
		AppliedAdjustments: adjustments,
	}
	return view
}
