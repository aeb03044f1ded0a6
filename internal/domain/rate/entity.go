package rate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rategrid/internal/pkg/patch"
)

var (
	ErrInvalidTransition    = errors.New("transition not allowed from current status")
	ErrNotEditable          = errors.New("rate is not editable in its current status")
	ErrNotDeletable         = errors.New("only draft or rejected rates can be deleted")
	ErrNotApproved          = errors.New("rate is not approved")
	ErrUnknownProperty      = errors.New("property has no entry on this rate")
	ErrConflictLinkMissing  = errors.New("no conflict link for the given rate")
	ErrEmptyName            = errors.New("rate name is required")
	ErrUnknownRateType      = errors.New("unknown rate type")
	ErrCarveOutsideValidity = errors.New("carve range does not touch the validity window")
)

// Definition is the authored content of a rate; identity and lifecycle
// bookkeeping live on the entity itself.
type Definition struct {
	Name         string
	Description  string
	Tags         []string
	RateType     RateType
	Priority     int
	Pricing      BasePricing
	RoomTypes    []RoomTypeRate
	Validity     Validity
	Window       BookingWindow
	Stay         StayRestrictions
	Cancellation CancellationPolicy
	Channels     []ChannelConfig
}

func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !d.RateType.IsValid() {
		return ErrUnknownRateType
	}
	if d.Priority < MinPriority || d.Priority > MaxPriority {
		return ErrInvalidPriority
	}
	if !d.Validity.End.After(d.Validity.Start) {
		return ErrEmptyValidity
	}
	if d.Window.MaxAdvanceDays > 0 && d.Window.MinAdvanceDays > d.Window.MaxAdvanceDays {
		return ErrInvalidWindow
	}
	if d.Stay.MaxStay > 0 && d.Stay.MinStay > d.Stay.MaxStay {
		return ErrInvalidStayBounds
	}
	if len(d.RoomTypes) == 0 {
		return ErrNoRoomTypes
	}
	seenRT := make(map[uuid.UUID]struct{}, len(d.RoomTypes))
	for _, rt := range d.RoomTypes {
		if _, dup := seenRT[rt.RoomTypeID]; dup {
			return ErrDuplicateRoomType
		}
		seenRT[rt.RoomTypeID] = struct{}{}
		if rt.Adjustment != nil && rt.Adjustment.Apply(d.Pricing.BasePrice).IsNegative() {
			return ErrNegativeDerived
		}
	}
	seenCh := make(map[Channel]struct{}, len(d.Channels))
	for _, cc := range d.Channels {
		if !cc.Channel.IsValid() {
			return ErrInvalidAdjustment
		}
		if _, dup := seenCh[cc.Channel]; dup {
			return ErrDuplicateChannel
		}
		seenCh[cc.Channel] = struct{}{}
	}
	return nil
}

// ValidateRoomTypes checks every referenced room type against the set of
// room types the group's properties actually have.
func (d Definition) ValidateRoomTypes(known map[uuid.UUID]struct{}) error {
	for _, rt := range d.RoomTypes {
		if _, ok := known[rt.RoomTypeID]; !ok {
			return ErrUnknownRoomType
		}
	}
	return nil
}

// Update is a partial edit; nil fields are left untouched.
type Update struct {
	Name         *string
	Description  *string
	Tags         *[]string
	Priority     *int
	Pricing      *BasePricing
	RoomTypes    *[]RoomTypeRate
	Validity     *Validity
	Window       *BookingWindow
	Stay         *StayRestrictions
	Cancellation *CancellationPolicy
	Channels     *[]ChannelConfig
}

// Material reports whether the edit touches pricing, validity, stay rules,
// the room-type set, or channel terms. Material edits to an approved rate
// send it back through approval.
func (u Update) Material() bool {
	return u.Pricing != nil || u.Validity != nil || u.Window != nil ||
		u.Stay != nil || u.RoomTypes != nil || u.Channels != nil
}

func (u Update) changedFields() []string {
	fields := []string{}
	if u.Name != nil {
		fields = append(fields, "name")
	}
	if u.Description != nil {
		fields = append(fields, "description")
	}
	if u.Tags != nil {
		fields = append(fields, "tags")
	}
	if u.Priority != nil {
		fields = append(fields, "priority")
	}
	if u.Pricing != nil {
		fields = append(fields, "pricing")
	}
	if u.RoomTypes != nil {
		fields = append(fields, "roomTypes")
	}
	if u.Validity != nil {
		fields = append(fields, "validity")
	}
	if u.Window != nil {
		fields = append(fields, "bookingWindow")
	}
	if u.Stay != nil {
		fields = append(fields, "stayRestrictions")
	}
	if u.Cancellation != nil {
		fields = append(fields, "cancellationPolicy")
	}
	if u.Channels != nil {
		fields = append(fields, "channels")
	}
	return fields
}

// Rate is the centralized rate aggregate. Every persisted mutation bumps the
// version by exactly one and appends exactly one change-log entry.
type Rate struct {
	id             uuid.UUID
	groupID        uuid.UUID
	def            Definition
	propertyRates  []PropertyRate
	conflictLinks  []ConflictLink
	approvalStatus ApprovalStatus
	syncStatus     SyncState
	version        int64
	changeLog      []ChangeEntry
	createdBy      uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

func New(groupID uuid.UUID, def Definition, createdBy uuid.UUID, now time.Time) (*Rate, error) {
	return newRate(groupID, def, createdBy, now, "created", "")
}

func newRate(groupID uuid.UUID, def Definition, createdBy uuid.UUID, now time.Time, action, detail string) (*Rate, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	r := &Rate{
		id:             uuid.New(),
		groupID:        groupID,
		def:            def,
		approvalStatus: StatusDraft,
		syncStatus:     SyncPending,
		version:        0,
		createdBy:      createdBy,
		createdAt:      now,
		updatedAt:      now,
	}
	r.record(action, detail, now, createdBy)
	return r, nil
}

// Snapshot carries the full aggregate state across the persistence boundary.
type Snapshot struct {
	ID      uuid.UUID
	GroupID uuid.UUID
	Definition
	PropertyRates  []PropertyRate
	ConflictLinks  []ConflictLink
	ApprovalStatus ApprovalStatus
	SyncStatus     SyncState
	Version        int64
	ChangeLog      []ChangeEntry
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(s Snapshot) *Rate {
	return &Rate{
		id:             s.ID,
		groupID:        s.GroupID,
		def:            s.Definition,
		propertyRates:  s.PropertyRates,
		conflictLinks:  s.ConflictLinks,
		approvalStatus: s.ApprovalStatus,
		syncStatus:     s.SyncStatus,
		version:        s.Version,
		changeLog:      s.ChangeLog,
		createdBy:      s.CreatedBy,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

func (r *Rate) Snapshot() Snapshot {
	return Snapshot{
		ID:             r.id,
		GroupID:        r.groupID,
		Definition:     r.def,
		PropertyRates:  r.propertyRates,
		ConflictLinks:  r.conflictLinks,
		ApprovalStatus: r.approvalStatus,
		SyncStatus:     r.syncStatus,
		Version:        r.version,
		ChangeLog:      r.changeLog,
		CreatedBy:      r.createdBy,
		CreatedAt:      r.createdAt,
		UpdatedAt:      r.updatedAt,
	}
}

func (r *Rate) ID() uuid.UUID                    { return r.id }
func (r *Rate) GroupID() uuid.UUID               { return r.groupID }
func (r *Rate) Name() string                     { return r.def.Name }
func (r *Rate) Description() string              { return r.def.Description }
func (r *Rate) Tags() []string                   { return r.def.Tags }
func (r *Rate) RateType() RateType               { return r.def.RateType }
func (r *Rate) Priority() int                    { return r.def.Priority }
func (r *Rate) Pricing() BasePricing             { return r.def.Pricing }
func (r *Rate) RoomTypes() []RoomTypeRate        { return r.def.RoomTypes }
func (r *Rate) Validity() Validity               { return r.def.Validity }
func (r *Rate) Window() BookingWindow            { return r.def.Window }
func (r *Rate) Stay() StayRestrictions           { return r.def.Stay }
func (r *Rate) Cancellation() CancellationPolicy { return r.def.Cancellation }
func (r *Rate) Channels() []ChannelConfig        { return r.def.Channels }
func (r *Rate) PropertyRates() []PropertyRate    { return r.propertyRates }
func (r *Rate) ConflictLinks() []ConflictLink    { return r.conflictLinks }
func (r *Rate) Status() ApprovalStatus           { return r.approvalStatus }
func (r *Rate) SyncStatus() SyncState            { return r.syncStatus }
func (r *Rate) Version() int64                   { return r.version }
func (r *Rate) ChangeLog() []ChangeEntry         { return r.changeLog }
func (r *Rate) CreatedBy() uuid.UUID             { return r.createdBy }
func (r *Rate) CreatedAt() time.Time             { return r.createdAt }
func (r *Rate) UpdatedAt() time.Time             { return r.updatedAt }

func (r *Rate) IsApproved() bool  { return r.approvalStatus == StatusApproved }
func (r *Rate) IsDeletable() bool { return r.approvalStatus.IsDeletable() }

func (r *Rate) RoomTypeRateFor(roomTypeID uuid.UUID) (RoomTypeRate, bool) {
	for _, rt := range r.def.RoomTypes {
		if rt.RoomTypeID == roomTypeID {
			return rt, true
		}
	}
	return RoomTypeRate{}, false
}

func (r *Rate) ChannelConfigFor(ch Channel) (ChannelConfig, bool) {
	for _, cc := range r.def.Channels {
		if cc.Channel == ch {
			return cc, true
		}
	}
	return ChannelConfig{}, false
}

func (r *Rate) PropertyRateFor(propertyID uuid.UUID) (PropertyRate, bool) {
	for _, pr := range r.propertyRates {
		if pr.PropertyID == propertyID {
			return pr, true
		}
	}
	return PropertyRate{}, false
}

// RoomTypeIDs returns the room types the rate offers, in authored order.
func (r *Rate) RoomTypeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.def.RoomTypes))
	for i, rt := range r.def.RoomTypes {
		ids[i] = rt.RoomTypeID
	}
	return ids
}

// record bumps the version and appends the single audit line for this
// mutation.
func (r *Rate) record(action, detail string, now time.Time, actor uuid.UUID) {
	entry := ChangeEntry{
		At:          now,
		Actor:       actor,
		Action:      action,
		Detail:      detail,
		FromVersion: r.version,
		ToVersion:   r.version + 1,
	}
	r.version++
	r.changeLog = append(r.changeLog, entry)
	r.updatedAt = now
}

// Transition applies one approval state-machine step. A non-empty reason
// lands in the audit detail, which matters mostly for rejections.
func (r *Rate) Transition(action TransitionAction, reason string, now time.Time, actor uuid.UUID) error {
	var next ApprovalStatus
	switch action {
	case ActionSubmit:
		if r.approvalStatus != StatusDraft {
			return ErrInvalidTransition
		}
		next = StatusPending
	case ActionApprove:
		if r.approvalStatus != StatusPending {
			return ErrInvalidTransition
		}
		next = StatusApproved
	case ActionReject:
		if r.approvalStatus != StatusPending {
			return ErrInvalidTransition
		}
		next = StatusRejected
	case ActionExpire:
		if r.approvalStatus != StatusApproved {
			return ErrInvalidTransition
		}
		next = StatusExpired
	default:
		return ErrInvalidTransition
	}
	prev := r.approvalStatus
	r.approvalStatus = next
	detail := fmt.Sprintf("%s -> %s", prev, next)
	if reason != "" {
		detail += ": " + reason
	}
	r.record("status_changed", detail, now, actor)
	return nil
}

// ApplyUpdate merges a partial edit. Material edits to an approved rate
// revert it to pending; description-level edits keep the approval.
func (r *Rate) ApplyUpdate(u Update, now time.Time, actor uuid.UUID) error {
	switch r.approvalStatus {
	case StatusDraft, StatusPending, StatusApproved:
	default:
		return ErrNotEditable
	}

	next := r.def
	next.Name = patch.Coalesce(u.Name, next.Name)
	next.Description = patch.Coalesce(u.Description, next.Description)
	next.Tags = patch.Coalesce(u.Tags, next.Tags)
	next.Priority = patch.Coalesce(u.Priority, next.Priority)
	next.Pricing = patch.Coalesce(u.Pricing, next.Pricing)
	next.RoomTypes = patch.Coalesce(u.RoomTypes, next.RoomTypes)
	next.Validity = patch.Coalesce(u.Validity, next.Validity)
	next.Window = patch.Coalesce(u.Window, next.Window)
	next.Stay = patch.Coalesce(u.Stay, next.Stay)
	next.Cancellation = patch.Coalesce(u.Cancellation, next.Cancellation)
	next.Channels = patch.Coalesce(u.Channels, next.Channels)
	if err := next.Validate(); err != nil {
		return err
	}

	detail := strings.Join(u.changedFields(), ", ")
	if u.Material() && r.approvalStatus == StatusApproved {
		r.approvalStatus = StatusPending
		detail += " (re-approval required)"
	}
	r.def = next
	r.record("updated", detail, now, actor)
	return nil
}

// Duplicate copies the authored definition into a fresh draft. Distribution
// bookkeeping, conflicts and audit history do not carry over.
func (r *Rate) Duplicate(name string, createdBy uuid.UUID, now time.Time) (*Rate, error) {
	def := r.def
	if name != "" {
		def.Name = name
	} else {
		def.Name = r.def.Name + " (copy)"
	}
	def.RoomTypes = append([]RoomTypeRate(nil), r.def.RoomTypes...)
	def.Channels = append([]ChannelConfig(nil), r.def.Channels...)
	def.Tags = append([]string(nil), r.def.Tags...)

	return newRate(r.groupID, def, createdBy, now, "duplicated", fmt.Sprintf("from %s", r.id))
}

// EnsurePropertyEntry guarantees a per-property row exists for the target.
// It reports whether a new row was created; callers fold this into their own
// mutation, so no version bump happens here.
func (r *Rate) EnsurePropertyEntry(propertyID uuid.UUID) bool {
	if _, ok := r.PropertyRateFor(propertyID); ok {
		return false
	}
	r.propertyRates = append(r.propertyRates, NewPropertyRate(propertyID))
	return true
}

func (r *Rate) SetPropertyOverride(propertyID uuid.UUID, pr PropertyRate, now time.Time, actor uuid.UUID) error {
	for i := range r.propertyRates {
		if r.propertyRates[i].PropertyID == propertyID {
			pr.PropertyID = propertyID
			pr.Sync = r.propertyRates[i].Sync
			pr.IsOverride = true
			r.propertyRates[i] = pr
			r.record("property_override", propertyID.String(), now, actor)
			return nil
		}
	}
	return ErrUnknownProperty
}

// setPropertySync updates one row's distribution outcome in place.
func (r *Rate) setPropertySync(propertyID uuid.UUID, state SyncState, errMsg string, at time.Time) bool {
	for i := range r.propertyRates {
		if r.propertyRates[i].PropertyID != propertyID {
			continue
		}
		t := at
		r.propertyRates[i].Sync = SyncStatus{State: state, LastSyncAt: &t, Error: errMsg}
		return true
	}
	return false
}

// BeginDistribution flips the aggregate into syncing and resets the targeted
// rows to pending. One mutation, one audit line.
func (r *Rate) BeginDistribution(targets []uuid.UUID, now time.Time, actor uuid.UUID) error {
	if !r.IsApproved() {
		return ErrNotApproved
	}
	for _, pid := range targets {
		r.EnsurePropertyEntry(pid)
	}
	r.syncStatus = SyncSyncing
	r.record("distribution_started", fmt.Sprintf("%d targets", len(targets)), now, actor)
	return nil
}

// TargetOutcome is one property's distribution result.
type TargetOutcome struct {
	PropertyID uuid.UUID
	State      SyncState
	Error      string
}

// RecordDistribution applies per-target outcomes and derives the aggregate
// sync status: synced when every row is synced, failed when nothing
// succeeded, partial otherwise.
func (r *Rate) RecordDistribution(outcomes []TargetOutcome, now time.Time, actor uuid.UUID) SyncState {
	succeeded, failed := 0, 0
	for _, o := range outcomes {
		r.setPropertySync(o.PropertyID, o.State, o.Error, now)
		if o.State == SyncSynced {
			succeeded++
		} else {
			failed++
		}
	}

	overall := SyncSynced
	switch {
	case failed == 0:
		overall = SyncSynced
	case succeeded == 0:
		overall = SyncFailed
	default:
		overall = SyncPartial
	}
	r.syncStatus = overall
	r.record("distributed", fmt.Sprintf("%d synced, %d failed", succeeded, failed), now, actor)
	return overall
}

// FullySynced reports whether every property row has already been synced.
func (r *Rate) FullySynced() bool {
	if len(r.propertyRates) == 0 {
		return false
	}
	for _, pr := range r.propertyRates {
		if pr.Sync.State != SyncSynced {
			return false
		}
	}
	return r.syncStatus == SyncSynced
}

// PendingProperties lists rows still awaiting a successful sync.
func (r *Rate) PendingProperties() []uuid.UUID {
	ids := []uuid.UUID{}
	for _, pr := range r.propertyRates {
		if pr.Sync.State != SyncSynced {
			ids = append(ids, pr.PropertyID)
		}
	}
	return ids
}

// UpsertConflictLink records a detected conflict; an existing link against
// the same rate is refreshed rather than duplicated. Part of a larger
// mutation, so no version bump here.
func (r *Rate) UpsertConflictLink(link ConflictLink) {
	for i := range r.conflictLinks {
		if r.conflictLinks[i].OtherRateID == link.OtherRateID && r.conflictLinks[i].ResolvedAt == nil {
			r.conflictLinks[i].Kind = link.Kind
			r.conflictLinks[i].Action = link.Action
			r.conflictLinks[i].Overlap = link.Overlap
			r.conflictLinks[i].DetectedAt = link.DetectedAt
			return
		}
	}
	r.conflictLinks = append(r.conflictLinks, link)
}

// RecordConflicts upserts a batch of detected links as a single audited
// mutation, one version bump regardless of how many links landed.
func (r *Rate) RecordConflicts(links []ConflictLink, now time.Time, actor uuid.UUID) {
	if len(links) == 0 {
		return
	}
	for _, l := range links {
		r.UpsertConflictLink(l)
	}
	r.record("conflicts_detected", fmt.Sprintf("%d conflicting rates", len(links)), now, actor)
}

// ResolveConflictLink closes the open link against the other rate.
func (r *Rate) ResolveConflictLink(otherRateID uuid.UUID, res Resolution, action ConflictAction, now time.Time, actor uuid.UUID) error {
	for i := range r.conflictLinks {
		if r.conflictLinks[i].OtherRateID != otherRateID || r.conflictLinks[i].ResolvedAt != nil {
			continue
		}
		t := now
		r.conflictLinks[i].ResolvedAt = &t
		r.conflictLinks[i].Resolution = &res
		r.conflictLinks[i].Action = action
		r.record("conflict_resolved", fmt.Sprintf("%s vs %s", res, otherRateID), now, actor)
		return nil
	}
	return ErrConflictLinkMissing
}

// CarveException removes the given date range from the validity window,
// leaving the remaining spans bookable.
func (r *Rate) CarveException(overlap DateRange, now time.Time, actor uuid.UUID) error {
	if _, ok := overlap.Intersect(r.def.Validity.Window()); !ok {
		return ErrCarveOutsideValidity
	}
	r.def.Validity = r.def.Validity.Carve(overlap)
	r.record("exception_created", fmt.Sprintf("%s..%s excluded",
		overlap.Start.Format("2006-01-02"), overlap.End.Format("2006-01-02")), now, actor)
	return nil
}
