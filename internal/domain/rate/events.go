package rate

import (
	"time"

	"rategrid/internal/domain/event"

	"github.com/google/uuid"
)

// ChangeEvents derives the events a persisted mutation implies from the
// before and after states. Pure: callers decide when to publish. A nil
// before means the rate was just created.
func ChangeEvents(before *Snapshot, after Snapshot, at time.Time) []event.Event {
	if before == nil {
		return []event.Event{event.New(event.KindRateCreated, after.ID, at, event.RateCreatedPayload{
			RateID:   after.ID,
			GroupID:  after.GroupID,
			RateType: after.RateType.String(),
			Name:     after.Name,
		})}
	}

	events := []event.Event{}

	if before.ApprovalStatus != after.ApprovalStatus {
		events = append(events, event.New(event.KindRateStatusChanged, after.ID, at, event.StatusChangedPayload{
			RateID:  after.ID,
			From:    before.ApprovalStatus.String(),
			To:      after.ApprovalStatus.String(),
			Version: after.Version,
		}))
	}

	if syncOutcomeChanged(before, after) {
		synced, failed := []uuid.UUID{}, []uuid.UUID{}
		for _, pr := range after.PropertyRates {
			switch pr.Sync.State {
			case SyncSynced:
				synced = append(synced, pr.PropertyID)
			case SyncFailed:
				failed = append(failed, pr.PropertyID)
			}
		}
		events = append(events, event.New(event.KindRateDistributed, after.ID, at, event.DistributedPayload{
			RateID:  after.ID,
			Synced:  synced,
			Failed:  failed,
			Overall: after.SyncStatus.String(),
		}))
	}

	prior := linkIndex(before.ConflictLinks)
	for _, link := range after.ConflictLinks {
		old, seen := prior[link.OtherRateID]
		if !seen {
			events = append(events, conflictEvent(event.KindConflictDetected, after.ID, link, at))
			continue
		}
		if old.ResolvedAt == nil && link.ResolvedAt != nil {
			events = append(events, conflictEvent(event.KindConflictResolved, after.ID, link, at))
		}
	}

	return events
}

func syncOutcomeChanged(before *Snapshot, after Snapshot) bool {
	if after.SyncStatus == SyncSyncing || before.SyncStatus == after.SyncStatus {
		return sawRowChange(before, after) && after.SyncStatus != SyncSyncing
	}
	return after.SyncStatus == SyncSynced || after.SyncStatus == SyncPartial || after.SyncStatus == SyncFailed
}

func sawRowChange(before *Snapshot, after Snapshot) bool {
	prev := make(map[uuid.UUID]SyncState, len(before.PropertyRates))
	for _, pr := range before.PropertyRates {
		prev[pr.PropertyID] = pr.Sync.State
	}
	for _, pr := range after.PropertyRates {
		if prev[pr.PropertyID] != pr.Sync.State {
			return true
		}
	}
	return false
}

func linkIndex(links []ConflictLink) map[uuid.UUID]ConflictLink {
	idx := make(map[uuid.UUID]ConflictLink, len(links))
	for _, l := range links {
		idx[l.OtherRateID] = l
	}
	return idx
}

func conflictEvent(kind event.Kind, rateID uuid.UUID, link ConflictLink, at time.Time) event.Event {
	payload := event.ConflictPayload{
		RateID:       rateID,
		OtherRateID:  link.OtherRateID,
		Kind:         string(link.Kind),
		OverlapStart: link.Overlap.Start,
		OverlapEnd:   link.Overlap.End,
		ResolvedAt:   link.ResolvedAt,
	}
	if link.Resolution != nil {
		payload.Resolution = string(*link.Resolution)
	}
	return event.New(kind, rateID, at, payload)
}
