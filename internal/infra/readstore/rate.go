package readstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rategrid/internal/domain/rate"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/infra/repository/converter"
	"rategrid/internal/pkg/pgconv"
	"rategrid/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// RateReadStore serves the rate query surface. Single-rate reads rebuild the
// aggregate from its document; list reads touch only the indexed columns.
type RateReadStore struct {
	db db.DBTX
}

func NewRateReadStore(dbx db.DBTX) *RateReadStore {
	return &RateReadStore{db: dbx}
}

const findRateViewQuery = `
SELECT id, group_id, version, created_by, created_at, updated_at, document
FROM rates
WHERE id = $1
`

const findRateHistoryQuery = `
SELECT COALESCE(document->'changeLog', '[]'::jsonb)
FROM rates
WHERE id = $1
`

const rateListColumns = `
	id, group_id, name, rate_type, priority, approval_status, sync_status,
	valid_from, valid_to, version, updated_at
`

func (r *RateReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RateView, error) {
	var (
		cols      converter.RateColumns
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		doc       []byte
	)
	err := r.db.QueryRow(ctx, findRateViewQuery, id).Scan(
		&cols.ID, &cols.GroupID, &cols.Version, &cols.CreatedBy, &createdAt, &updatedAt, &doc,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rate not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rate", err)
	}
	cols.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	cols.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	snap, err := converter.UnmarshalRateDocument(doc, cols)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode rate document", err)
	}
	return rateViewFromSnapshot(snap), nil
}

func (r *RateReadStore) FindHistory(ctx context.Context, id uuid.UUID) ([]*queries.HistoryEntry, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, findRateHistoryQuery, id).Scan(&raw); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rate not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rate history", err)
	}
	var entries []*queries.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, infra.WrapRepoErr("failed to decode rate history", err)
	}
	return entries, nil
}

func (r *RateReadStore) FindFirstPage(ctx context.Context, filter queries.RateListFilter, limit int32) ([]*queries.RateListItem, error) {
	where, args := rateListFilterSQL(filter)
	args = append(args, limit)
	query := fmt.Sprintf(`
SELECT%s
FROM rates
%s
ORDER BY updated_at DESC, id DESC
LIMIT $%d
`, rateListColumns, where, len(args))
	return r.queryList(ctx, query, args)
}

func (r *RateReadStore) FindKeyset(ctx context.Context, filter queries.RateListFilter, lastUpdatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RateListItem, error) {
	where, args := rateListFilterSQL(filter)
	args = append(args, pgconv.TimeToPgtype(lastUpdatedAt), lastID)
	keyset := fmt.Sprintf("(updated_at, id) < ($%d, $%d)", len(args)-1, len(args))
	if where == "" {
		where = "WHERE " + keyset
	} else {
		where += " AND " + keyset
	}
	args = append(args, limit)
	query := fmt.Sprintf(`
SELECT%s
FROM rates
%s
ORDER BY updated_at DESC, id DESC
LIMIT $%d
`, rateListColumns, where, len(args))
	return r.queryList(ctx, query, args)
}

func (r *RateReadStore) queryList(ctx context.Context, query string, args []any) ([]*queries.RateListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query rates", err)
	}
	defer rows.Close()

	var items []*queries.RateListItem
	for rows.Next() {
		item, err := scanRateListItem(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rate rows", err)
	}
	return items, nil
}

// rateListFilterSQL renders the optional filters into a WHERE clause. The
// property filter matches against the document since property rows live
// inside it.
func rateListFilterSQL(filter queries.RateListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conds = append(conds, fmt.Sprintf("group_id = $%d", len(args)))
	}
	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		conds = append(conds, fmt.Sprintf("document->'properties' @> jsonb_build_array(jsonb_build_object('propertyId', $%d::text))", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("approval_status = $%d", len(args)))
	}
	if filter.RateType != nil {
		args = append(args, *filter.RateType)
		conds = append(conds, fmt.Sprintf("rate_type = $%d", len(args)))
	}
	if filter.ActiveOn != nil {
		args = append(args, pgconv.DateToPgtype(*filter.ActiveOn))
		conds = append(conds, fmt.Sprintf("valid_from <= $%d AND valid_to >= $%d", len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanRateListItem(row pgx.Row) (*queries.RateListItem, error) {
	var (
		item      queries.RateListItem
		validFrom pgtype.Date
		validTo   pgtype.Date
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&item.ID, &item.GroupID, &item.Name, &item.RateType, &item.Priority,
		&item.ApprovalStatus, &item.SyncState, &validFrom, &validTo,
		&item.Version, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.ValidFrom = pgconv.DateFromPgtype(validFrom)
	item.ValidTo = pgconv.DateFromPgtype(validTo)
	item.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &item, nil
}

func rateViewFromSnapshot(s rate.Snapshot) *queries.RateView {
	view := &queries.RateView{
		ID:          s.ID,
		GroupID:     s.GroupID,
		Name:        s.Name,
		Description: s.Description,
		Tags:        s.Tags,
		RateType:    s.RateType.String(),
		Priority:    s.Priority,
		Pricing: queries.PricingView{
			BasePrice:        s.Pricing.BasePrice,
			Currency:         s.Pricing.Currency,
			IncludeTaxes:     s.Pricing.IncludeTaxes,
			IncludeBreakfast: s.Pricing.IncludeBreakfast,
		},
		RoomTypes:      roomTypeViews(s.RoomTypes),
		Validity:       validityView(s.Validity),
		BookingWindow:  windowView(s.Window),
		Stay:           stayView(s.Stay),
		Cancellation:   cancellationView(s.Cancellation),
		Channels:       channelViews(s.Channels),
		Properties:     propertyRateViews(s.PropertyRates),
		Conflicts:      conflictViews(s.ConflictLinks),
		ApprovalStatus: s.ApprovalStatus.String(),
		SyncState:      s.SyncStatus.String(),
		Version:        s.Version,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	return view
}

func adjustmentView(a *rate.Adjustment) *queries.AdjustmentView {
	if a == nil {
		return nil
	}
	return &queries.AdjustmentView{Type: string(a.Type), Value: a.Value}
}

func roomTypeViews(in []rate.RoomTypeRate) []queries.RoomTypeRateView {
	out := make([]queries.RoomTypeRateView, len(in))
	for i, rt := range in {
		out[i] = queries.RoomTypeRateView{
			RoomTypeID:  rt.RoomTypeID,
			BaseRate:    rt.BaseRate,
			Adjustment:  adjustmentView(rt.Adjustment),
			IsAvailable: rt.IsAvailable,
			Allotment:   rt.Allotment,
			StopSale:    rt.StopSale,
		}
	}
	return out
}

func rangeViews(in []rate.DateRange) []queries.DateRangeView {
	if len(in) == 0 {
		return nil
	}
	out := make([]queries.DateRangeView, len(in))
	for i, r := range in {
		out[i] = queries.DateRangeView{Start: r.Start, End: r.End}
	}
	return out
}

func validityView(v rate.Validity) queries.ValidityView {
	return queries.ValidityView{
		Start:    v.Start,
		End:      v.End,
		Timezone: v.Timezone,
		Weekdays: v.Weekdays,
		Excluded: rangeViews(v.Excluded),
	}
}

func windowView(w rate.BookingWindow) *queries.BookingWindowView {
	if w == (rate.BookingWindow{}) {
		return nil
	}
	return &queries.BookingWindowView{
		MinAdvanceDays: w.MinAdvanceDays,
		MaxAdvanceDays: w.MaxAdvanceDays,
		CutoffTime:     w.CutoffTime,
	}
}

func stayView(s rate.StayRestrictions) *queries.StayView {
	if s.MinStay == 0 && s.MaxStay == 0 && len(s.ClosedToArrival) == 0 && len(s.ClosedToDeparture) == 0 && len(s.StayThrough) == 0 {
		return nil
	}
	return &queries.StayView{
		MinStay:            s.MinStay,
		MaxStay:            s.MaxStay,
		ClosedToArrival:    s.ClosedToArrival,
		ClosedToDeparture:  s.ClosedToDeparture,
		StayThroughWindows: rangeViews(s.StayThrough),
	}
}

func stayViewPtr(s *rate.StayRestrictions) *queries.StayView {
	if s == nil {
		return nil
	}
	return stayView(*s)
}

func cancellationView(c rate.CancellationPolicy) *queries.CancellationView {
	if c.Name == "" && c.FreeBeforeHours == 0 && c.PenaltyNights == 0 && c.PenaltyPercent.IsZero() && !c.NonRefundable {
		return nil
	}
	return &queries.CancellationView{
		Name:            c.Name,
		FreeBeforeHours: c.FreeBeforeHours,
		PenaltyNights:   c.PenaltyNights,
		PenaltyPercent:  c.PenaltyPercent,
		NonRefundable:   c.NonRefundable,
	}
}

func channelViews(in []rate.ChannelConfig) []queries.ChannelView {
	if len(in) == 0 {
		return nil
	}
	out := make([]queries.ChannelView, len(in))
	for i, c := range in {
		out[i] = queries.ChannelView{
			Channel:    c.Channel.String(),
			Markup:     queries.AdjustmentView{Type: string(c.Markup.Type), Value: c.Markup.Value},
			Commission: c.Commission,
			Active:     c.Active,
		}
	}
	return out
}

func propertyRateViews(in []rate.PropertyRate) []queries.PropertyRateView {
	if len(in) == 0 {
		return nil
	}
	out := make([]queries.PropertyRateView, len(in))
	for i, p := range in {
		var window *queries.BookingWindowView
		if p.BookingWindow != nil {
			window = windowView(*p.BookingWindow)
		}
		out[i] = queries.PropertyRateView{
			PropertyID:    p.PropertyID,
			BasePrice:     p.BasePrice,
			Adjustment:    adjustmentView(p.Adjustment),
			Stay:          stayViewPtr(p.Stay),
			BookingWindow: window,
			IsOverride:    p.IsOverride,
			SyncState:     p.Sync.State.String(),
			LastSyncAt:    p.Sync.LastSyncAt,
			SyncError:     p.Sync.Error,
		}
	}
	return out
}

func conflictViews(in []rate.ConflictLink) []queries.ConflictView {
	if len(in) == 0 {
		return nil
	}
	out := make([]queries.ConflictView, len(in))
	for i, l := range in {
		view := queries.ConflictView{
			OtherRateID: l.OtherRateID,
			Kind:        string(l.Kind),
			Action:      string(l.Action),
			Overlap:     queries.DateRangeView{Start: l.Overlap.Start, End: l.Overlap.End},
			DetectedAt:  l.DetectedAt,
			ResolvedAt:  l.ResolvedAt,
		}
		if l.Resolution != nil {
			view.Resolution = string(*l.Resolution)
		}
		out[i] = view
	}
	return out
}
