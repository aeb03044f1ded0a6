package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"rategrid/internal/domain/rate"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/infra/observability"
	"rategrid/internal/pkg/clock"
	"rategrid/internal/pkg/config"
	"rategrid/internal/pkg/errs"
	"rategrid/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNoTargets           = errs.New("distribution resolved no target properties")
	ErrTargetOutsideGroup  = errs.New("target property does not belong to the rate's group")
	ErrDuplicateSuperseded = errs.New("a duplicate rate with higher precedence supersedes this one")
	ErrNoConflict          = errs.New("rates have no conflict to resolve")
	ErrUnknownMode         = errs.New("unknown distribution mode")
	ErrUnknownResolution   = errs.New("unknown conflict resolution")
	ErrPropertyRequired    = errs.New("accept_property needs a property id")
)

// PropertyGateway delivers one rate snapshot to one property's local
// system. Implementations mark retryable failures with errs.ErrTransient.
type PropertyGateway interface {
	PushRate(ctx context.Context, propertyID uuid.UUID, snap rate.Snapshot) error
}

type DistributionCommands interface {
	Distribute(ctx context.Context, rateID uuid.UUID, req reqdto.DistributeRequest, actor uuid.UUID) (*DistributionResult, error)
	Preview(ctx context.Context, rateID uuid.UUID, req reqdto.DistributeRequest) (*DistributionResult, error)
	SyncGroupRates(ctx context.Context, groupID uuid.UUID, req reqdto.SyncGroupRequest, actor uuid.UUID) ([]DistributionResult, error)
	ResolveConflict(ctx context.Context, req reqdto.ResolveConflictRequest, actor uuid.UUID) (*ConflictSummary, error)
}

type distributionUseCaseImpl struct {
	rateRepo  RateRepository
	propRepo  PropertyRepository
	gateway   PropertyGateway
	cache     RateCache
	publisher EventPublisher
	pool      *pgxpool.Pool
	cfg       config.DistributionConfig
	clock     clock.Clock
	group     singleflight.Group
}

func NewDistributionUseCase(
	rateRepo RateRepository,
	propRepo PropertyRepository,
	gateway PropertyGateway,
	cache RateCache,
	publisher EventPublisher,
	pool *pgxpool.Pool,
	cfg config.DistributionConfig,
	clk clock.Clock,
) DistributionCommands {
	return &distributionUseCaseImpl{
		rateRepo:  rateRepo,
		propRepo:  propRepo,
		gateway:   gateway,
		cache:     cache,
		publisher: publisher,
		pool:      pool,
		cfg:       cfg,
		clock:     clk,
	}
}

// Distribute coalesces concurrent calls for the same rate; the late caller
// receives the in-flight run's result instead of starting a second push.
func (u *distributionUseCaseImpl) Distribute(ctx context.Context, rateID uuid.UUID, req reqdto.DistributeRequest, actor uuid.UUID) (*DistributionResult, error) {
	v, err, _ := u.group.Do(rateID.String(), func() (any, error) {
		return u.distribute(ctx, rateID, req, actor)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DistributionResult), nil
}

// distribute runs in three phases. Phase one plans under row locks: it
// resolves targets, scans the group for conflicts and marks the rate
// syncing. Phase two fans out to the property gateways without holding any
// lock. Phase three records the per-target outcomes under a fresh lock.
func (u *distributionUseCaseImpl) distribute(ctx context.Context, rateID uuid.UUID, req reqdto.DistributeRequest, actor uuid.UUID) (*DistributionResult, error) {
	startedAt := u.clock.Now()

	plan, err := u.plan(ctx, rateID, req, actor)
	if err != nil {
		return nil, err
	}

	if plan.noop {
		observability.ObserveDistribution("noop")
		return &DistributionResult{
			RateID:     rateID,
			Mode:       req.Mode,
			Overall:    plan.before.SyncStatus,
			Success:    plan.targets,
			Failed:     []TargetFailure{},
			Conflicts:  plan.conflicts,
			StartedAt:  startedAt,
			FinishedAt: u.clock.Now(),
		}, nil
	}

	if plan.blocked {
		u.afterDistribution(ctx, plan.before, plan.after)
		failed := make([]TargetFailure, 0, len(plan.targets))
		for _, pid := range plan.targets {
			observability.ObserveDistributionTarget("skipped")
			failed = append(failed, TargetFailure{PropertyID: pid, Reason: "conflict_unresolved"})
		}
		observability.ObserveDistribution("blocked")
		return &DistributionResult{
			RateID:     rateID,
			Mode:       req.Mode,
			Overall:    rate.SyncFailed,
			Success:    []uuid.UUID{},
			Failed:     failed,
			Conflicts:  plan.conflicts,
			StartedAt:  startedAt,
			FinishedAt: u.clock.Now(),
		}, nil
	}

	outcomes := u.fanOut(ctx, plan.targets, plan.after)

	recorded, overall, err := u.record(ctx, rateID, outcomes, actor)
	if err != nil {
		return nil, err
	}
	u.afterDistribution(ctx, plan.before, recorded)
	observability.ObserveDistribution(string(overall))

	success := make([]uuid.UUID, 0, len(outcomes))
	failed := make([]TargetFailure, 0)
	for _, o := range outcomes {
		if o.State == rate.SyncSynced {
			success = append(success, o.PropertyID)
			continue
		}
		failed = append(failed, TargetFailure{PropertyID: o.PropertyID, Reason: "push_failed", Error: o.Error})
	}

	return &DistributionResult{
		RateID:     rateID,
		Mode:       req.Mode,
		Overall:    overall,
		Success:    success,
		Failed:     failed,
		Conflicts:  plan.conflicts,
		StartedAt:  startedAt,
		FinishedAt: u.clock.Now(),
	}, nil
}

// Preview computes targets and conflicts without persisting anything.
func (u *distributionUseCaseImpl) Preview(ctx context.Context, rateID uuid.UUID, req reqdto.DistributeRequest) (*DistributionResult, error) {
	now := u.clock.Now()

	snap, err := u.rateRepo.FindByID(ctx, u.pool, rateID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRateNotFound
		}
		return nil, err
	}
	r := rate.Reconstruct(*snap)
	if !r.IsApproved() {
		return nil, errs.Mark(rate.ErrNotApproved, errs.ErrStateViolation)
	}

	group, err := u.propRepo.FindGroup(ctx, u.pool, snap.GroupID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	targets, err := resolveTargets(r, group, req)
	if err != nil {
		return nil, err
	}

	siblings, err := u.rateRepo.FindApprovedByGroup(ctx, u.pool, snap.GroupID)
	if err != nil {
		return nil, err
	}
	scope, err := u.targetScope(ctx, u.pool, targets)
	if err != nil {
		return nil, err
	}
	scan, err := scanConflicts(r, reconstructOthers(siblings, rateID), scope, req.AutoResolve, now)
	if err != nil {
		return nil, err
	}

	return &DistributionResult{
		RateID:     rateID,
		Mode:       req.Mode,
		Overall:    r.SyncStatus(),
		Success:    targets,
		Failed:     []TargetFailure{},
		Conflicts:  scan.summaries,
		StartedAt:  now,
		FinishedAt: u.clock.Now(),
	}, nil
}

// SyncGroupRates re-broadcasts every approved rate of the group in turn.
// A failing rate is reported in its slot and does not stop the others.
func (u *distributionUseCaseImpl) SyncGroupRates(ctx context.Context, groupID uuid.UUID, req reqdto.SyncGroupRequest, actor uuid.UUID) ([]DistributionResult, error) {
	if _, err := u.propRepo.FindGroup(ctx, u.pool, groupID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	snaps, err := u.rateRepo.FindApprovedByGroup(ctx, u.pool, groupID)
	if err != nil {
		return nil, err
	}

	results := make([]DistributionResult, 0, len(snaps))
	for _, snap := range snaps {
		res, err := u.Distribute(ctx, snap.ID, reqdto.DistributeRequest{
			Mode:  string(rate.ModeBroadcast),
			Force: req.Force,
		}, actor)
		if err != nil {
			slog.Warn("group sync skipped rate", "group_id", groupID, "rate_id", snap.ID, "error", err)
			results = append(results, DistributionResult{
				RateID:  snap.ID,
				Mode:    string(rate.ModeBroadcast),
				Overall: rate.SyncFailed,
				Success: []uuid.UUID{},
				Failed:  []TargetFailure{{Reason: "distribute_failed", Error: err.Error()}},
			})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

// ResolveConflict settles an open conflict between two rates. Both sides
// are locked in ascending id order and both carry the resolution in their
// audit trails.
func (u *distributionUseCaseImpl) ResolveConflict(ctx context.Context, req reqdto.ResolveConflictRequest, actor uuid.UUID) (*ConflictSummary, error) {
	resolution := rate.Resolution(req.Resolution)
	if !resolution.IsValid() {
		return nil, errs.Mark(ErrUnknownResolution, errs.ErrValidation)
	}
	if req.RateID == req.OtherRateID {
		return nil, errs.Mark(ErrNoConflict, errs.ErrValidation)
	}
	if resolution == rate.ResolveAcceptProperty && req.PropertyID == nil {
		return nil, errs.Mark(ErrPropertyRequired, errs.ErrValidation)
	}

	scope, err := u.roomTypeScope(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	type resolved struct {
		summary      ConflictSummary
		beforeR      rate.Snapshot
		afterR       rate.Snapshot
		beforeO      rate.Snapshot
		afterO       rate.Snapshot
		otherMutated bool
	}
	out, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (resolved, error) {
		now := u.clock.Now()

		rSnap, oSnap, err := u.lockPair(ctx, tx, req.RateID, req.OtherRateID)
		if err != nil {
			return resolved{}, err
		}
		r, other := rate.Reconstruct(*rSnap), rate.Reconstruct(*oSnap)

		conflict, live := rate.Detect(r, other, scope)
		action := resolutionAction(resolution)

		summary := ConflictSummary{
			OtherRateID: req.OtherRateID,
			Action:      string(action),
		}
		if live {
			summary.Kind = string(conflict.Kind)
			summary.Overlap = OverlapWindow{Start: conflict.Overlap.Start, End: conflict.Overlap.End}
		}

		if resolution == rate.ResolveCreateException {
			if !live {
				return resolved{}, errs.Mark(ErrNoConflict, errs.ErrValidation)
			}
			_, loser := rate.Winner(r, other)
			if err := loser.CarveException(conflict.Overlap, now, actor); err != nil {
				return resolved{}, errs.Mark(err, errs.ErrValidation)
			}
		}

		// The property keeps its local rate: flag the centralized side's
		// per-property row as an override so inheritance pushes skip it.
		if resolution == rate.ResolveAcceptProperty {
			r.EnsurePropertyEntry(*req.PropertyID)
			pr, _ := r.PropertyRateFor(*req.PropertyID)
			if err := r.SetPropertyOverride(*req.PropertyID, pr, now, actor); err != nil {
				return resolved{}, errs.Mark(err, errs.ErrValidation)
			}
		}

		if live {
			r.UpsertConflictLink(rate.ConflictLink{OtherRateID: other.ID(), Kind: conflict.Kind, Action: rate.ConflictAlert, Overlap: conflict.Overlap, DetectedAt: now})
			other.UpsertConflictLink(rate.ConflictLink{OtherRateID: r.ID(), Kind: conflict.Kind, Action: rate.ConflictAlert, Overlap: conflict.Overlap, DetectedAt: now})
		}

		// Historical links may be one-sided; resolving whichever side
		// holds one is enough. Both missing means nothing to settle.
		errR := r.ResolveConflictLink(other.ID(), resolution, action, now, actor)
		errO := other.ResolveConflictLink(r.ID(), resolution, action, now, actor)
		if errR != nil && errO != nil {
			return resolved{}, errs.Mark(ErrNoConflict, errs.ErrValidation)
		}
		if summary.Kind == "" {
			if link, ok := openOrLatestLink(rSnap.ConflictLinks, other.ID()); ok {
				summary.Kind = string(link.Kind)
				summary.Overlap = OverlapWindow{Start: link.Overlap.Start, End: link.Overlap.End}
			} else if link, ok := openOrLatestLink(oSnap.ConflictLinks, r.ID()); ok {
				summary.Kind = string(link.Kind)
				summary.Overlap = OverlapWindow{Start: link.Overlap.Start, End: link.Overlap.End}
			}
		}

		rMutated := errR == nil || resolution == rate.ResolveAcceptProperty
		res := resolved{summary: summary, beforeR: *rSnap, beforeO: *oSnap, otherMutated: errO == nil}
		res.afterR = r.Snapshot()
		if rMutated {
			if err := u.rateRepo.Update(ctx, tx, res.afterR, rSnap.Version); err != nil {
				return resolved{}, markUpdateErr(err)
			}
		}
		res.afterO = other.Snapshot()
		if res.otherMutated {
			if err := u.rateRepo.Update(ctx, tx, res.afterO, oSnap.Version); err != nil {
				return resolved{}, markUpdateErr(err)
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	u.afterDistribution(ctx, out.beforeR, out.afterR)
	if out.otherMutated {
		u.afterDistribution(ctx, out.beforeO, out.afterO)
	}
	return &out.summary, nil
}

// distributionPlan is phase one's output: the snapshots around the planning
// mutation plus everything phase two needs.
type distributionPlan struct {
	before    rate.Snapshot
	after     rate.Snapshot
	targets   []uuid.UUID
	conflicts []ConflictSummary
	noop      bool
	blocked   bool
}

func (u *distributionUseCaseImpl) plan(ctx context.Context, rateID uuid.UUID, req reqdto.DistributeRequest, actor uuid.UUID) (*distributionPlan, error) {
	return shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*distributionPlan, error) {
		now := u.clock.Now()

		peek, err := u.rateRepo.FindByID(ctx, tx, rateID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrRateNotFound
			}
			return nil, err
		}

		// Locking the whole approved set in id order keeps concurrent
		// distributions within a group from deadlocking on each other.
		siblings, err := u.rateRepo.FindApprovedByGroupForUpdate(ctx, tx, peek.GroupID)
		if err != nil {
			return nil, err
		}
		var snap *rate.Snapshot
		for i := range siblings {
			if siblings[i].ID == rateID {
				snap = &siblings[i]
				break
			}
		}
		if snap == nil {
			return nil, errs.Mark(rate.ErrNotApproved, errs.ErrStateViolation)
		}
		r := rate.Reconstruct(*snap)

		group, err := u.propRepo.FindGroup(ctx, tx, snap.GroupID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}

		targets, err := resolveTargets(r, group, req)
		if err != nil {
			return nil, err
		}

		if !req.Force && allTargetsSynced(r, targets) {
			return &distributionPlan{before: *snap, targets: targets, conflicts: []ConflictSummary{}, noop: true}, nil
		}

		scope, err := u.targetScope(ctx, tx, targets)
		if err != nil {
			return nil, err
		}
		scan, err := scanConflicts(r, reconstructOthers(siblings, rateID), scope, req.AutoResolve, now)
		if err != nil {
			return nil, err
		}

		for otherID, overlap := range scan.otherCarves {
			if err := u.carveSibling(ctx, tx, siblings, otherID, overlap, now, actor); err != nil {
				return nil, err
			}
		}
		for _, overlap := range scan.selfCarves {
			if err := r.CarveException(overlap, now, actor); err != nil {
				return nil, err
			}
		}
		r.RecordConflicts(scan.links, now, actor)

		if req.FailOnConflict && scan.unresolved {
			outcomes := make([]rate.TargetOutcome, 0, len(targets))
			for _, pid := range targets {
				r.EnsurePropertyEntry(pid)
				outcomes = append(outcomes, rate.TargetOutcome{PropertyID: pid, State: rate.SyncFailed, Error: "conflict unresolved"})
			}
			r.RecordDistribution(outcomes, now, actor)
			after := r.Snapshot()
			if err := u.rateRepo.Update(ctx, tx, after, snap.Version); err != nil {
				return nil, markUpdateErr(err)
			}
			return &distributionPlan{before: *snap, after: after, targets: targets, conflicts: scan.summaries, blocked: true}, nil
		}

		if err := r.BeginDistribution(targets, now, actor); err != nil {
			return nil, errs.Mark(err, errs.ErrStateViolation)
		}
		after := r.Snapshot()
		if err := u.rateRepo.Update(ctx, tx, after, snap.Version); err != nil {
			return nil, markUpdateErr(err)
		}
		return &distributionPlan{before: *snap, after: after, targets: targets, conflicts: scan.summaries}, nil
	})
}

func (u *distributionUseCaseImpl) carveSibling(ctx context.Context, tx db.DBTX, siblings []rate.Snapshot, otherID uuid.UUID, overlap rate.DateRange, now time.Time, actor uuid.UUID) error {
	for i := range siblings {
		if siblings[i].ID != otherID {
			continue
		}
		other := rate.Reconstruct(siblings[i])
		if err := other.CarveException(overlap, now, actor); err != nil {
			return err
		}
		if err := u.rateRepo.Update(ctx, tx, other.Snapshot(), siblings[i].Version); err != nil {
			return markUpdateErr(err)
		}
		return nil
	}
	return errs.ErrRateNotFound
}

// fanOut pushes the snapshot to every target with bounded concurrency.
// Push errors become per-target outcomes, never a batch failure.
func (u *distributionUseCaseImpl) fanOut(ctx context.Context, targets []uuid.UUID, snap rate.Snapshot) []rate.TargetOutcome {
	outcomes := make([]rate.TargetOutcome, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.cfg.MaxConcurrency)
	for i, pid := range targets {
		g.Go(func() error {
			if err := u.pushWithRetry(gctx, pid, snap); err != nil {
				outcomes[i] = rate.TargetOutcome{PropertyID: pid, State: rate.SyncFailed, Error: err.Error()}
				observability.ObserveDistributionTarget("failed")
				return nil
			}
			outcomes[i] = rate.TargetOutcome{PropertyID: pid, State: rate.SyncSynced}
			observability.ObserveDistributionTarget("synced")
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (u *distributionUseCaseImpl) pushWithRetry(ctx context.Context, propertyID uuid.UUID, snap rate.Snapshot) error {
	var lastErr error
	for attempt := 0; attempt <= u.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(u.cfg.RetryBackoff << (attempt - 1)):
			}
		}

		pushCtx, cancel := context.WithTimeout(ctx, u.cfg.TargetTimeout)
		err := u.gateway.PushRate(pushCtx, propertyID, snap)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !errors.Is(err, errs.ErrTransient) {
			return err
		}
	}
	return lastErr
}

func (u *distributionUseCaseImpl) record(ctx context.Context, rateID uuid.UUID, outcomes []rate.TargetOutcome, actor uuid.UUID) (rate.Snapshot, rate.SyncState, error) {
	type recorded struct {
		after   rate.Snapshot
		overall rate.SyncState
	}
	res, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (recorded, error) {
		snap, err := u.rateRepo.FindByIDForUpdate(ctx, tx, rateID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return recorded{}, errs.ErrRateNotFound
			}
			return recorded{}, err
		}
		r := rate.Reconstruct(*snap)
		overall := r.RecordDistribution(outcomes, u.clock.Now(), actor)
		after := r.Snapshot()
		if err := u.rateRepo.Update(ctx, tx, after, snap.Version); err != nil {
			return recorded{}, markUpdateErr(err)
		}
		return recorded{after: after, overall: overall}, nil
	})
	if err != nil {
		return rate.Snapshot{}, "", err
	}
	return res.after, res.overall, nil
}

func (u *distributionUseCaseImpl) lockPair(ctx context.Context, tx db.DBTX, rateID, otherID uuid.UUID) (*rate.Snapshot, *rate.Snapshot, error) {
	first, second := rateID, otherID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}
	a, err := u.rateRepo.FindByIDForUpdate(ctx, tx, first)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrRateNotFound
		}
		return nil, nil, err
	}
	b, err := u.rateRepo.FindByIDForUpdate(ctx, tx, second)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrRateNotFound
		}
		return nil, nil, err
	}
	if a.ID == rateID {
		return a, b, nil
	}
	return b, a, nil
}

// targetScope unions the room types sold at the target properties so the
// conflict scan only engages rates the push can actually collide with.
func (u *distributionUseCaseImpl) targetScope(ctx context.Context, dbx db.DBTX, targets []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	scope := make(map[uuid.UUID]struct{})
	for _, pid := range targets {
		roomTypes, err := u.propRepo.FindRoomTypesByProperty(ctx, dbx, pid)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrPropertyNotFound
			}
			return nil, err
		}
		for _, rt := range roomTypes {
			scope[rt.ID] = struct{}{}
		}
	}
	return scope, nil
}

func (u *distributionUseCaseImpl) roomTypeScope(ctx context.Context, propertyID *uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if propertyID == nil {
		return nil, nil
	}
	roomTypes, err := u.propRepo.FindRoomTypesByProperty(ctx, u.pool, *propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPropertyNotFound
		}
		return nil, err
	}
	scope := make(map[uuid.UUID]struct{}, len(roomTypes))
	for _, rt := range roomTypes {
		scope[rt.ID] = struct{}{}
	}
	return scope, nil
}

// afterDistribution handles the commit side effects: cache invalidation
// and event publication, both best-effort.
func (u *distributionUseCaseImpl) afterDistribution(ctx context.Context, before, after rate.Snapshot) {
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, after.ID); err != nil {
			slog.Warn("failed to invalidate rate cache", "rate_id", after.ID, "error", err)
		}
	}
	events := rate.ChangeEvents(&before, after, u.clock.Now())
	if u.publisher == nil || len(events) == 0 {
		return
	}
	if err := u.publisher.Publish(ctx, events...); err != nil {
		slog.Warn("failed to publish distribution events", "rate_id", after.ID, "count", len(events), "error", err)
	}
}

// resolveTargets maps the requested mode onto concrete group properties,
// then strips exclusions and duplicates.
func resolveTargets(r *rate.Rate, group *GroupSnapshot, req reqdto.DistributeRequest) ([]uuid.UUID, error) {
	mode := rate.DistributionMode(req.Mode)
	if !mode.IsValid() {
		return nil, errs.Mark(ErrUnknownMode, errs.ErrValidation)
	}

	member := make(map[uuid.UUID]struct{}, len(group.PropertyIDs))
	for _, pid := range group.PropertyIDs {
		member[pid] = struct{}{}
	}

	var candidates []uuid.UUID
	switch mode {
	case rate.ModeBroadcast:
		candidates = group.PropertyIDs
	case rate.ModeSelective:
		if len(req.Targets) == 0 {
			return nil, errs.Mark(ErrNoTargets, errs.ErrValidation)
		}
		for _, pid := range req.Targets {
			if _, ok := member[pid]; !ok {
				return nil, errs.Mark(ErrTargetOutsideGroup, errs.ErrValidation)
			}
		}
		candidates = req.Targets
	case rate.ModeInheritance:
		for _, pid := range group.PropertyIDs {
			if pr, ok := r.PropertyRateFor(pid); !ok || !pr.IsOverride {
				candidates = append(candidates, pid)
			}
		}
	case rate.ModeOverride:
		for _, pid := range group.PropertyIDs {
			if pr, ok := r.PropertyRateFor(pid); ok && pr.IsOverride {
				candidates = append(candidates, pid)
			}
		}
	}

	excluded := make(map[uuid.UUID]struct{}, len(req.Exclusions))
	for _, pid := range req.Exclusions {
		excluded[pid] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(candidates))
	targets := make([]uuid.UUID, 0, len(candidates))
	for _, pid := range candidates {
		if _, ok := excluded[pid]; ok {
			continue
		}
		if _, ok := seen[pid]; ok {
			continue
		}
		seen[pid] = struct{}{}
		targets = append(targets, pid)
	}
	if len(targets) == 0 {
		return nil, errs.Mark(ErrNoTargets, errs.ErrValidation)
	}
	return targets, nil
}

func allTargetsSynced(r *rate.Rate, targets []uuid.UUID) bool {
	for _, pid := range targets {
		pr, ok := r.PropertyRateFor(pid)
		if !ok || pr.Sync.State != rate.SyncSynced {
			return false
		}
	}
	return true
}

// scanOutcome collects what the conflict scan decided: links to record on
// the distributing rate, carves to apply and the summaries for the caller.
type scanOutcome struct {
	summaries   []ConflictSummary
	links       []rate.ConflictLink
	selfCarves  []rate.DateRange
	otherCarves map[uuid.UUID]rate.DateRange
	unresolved  bool
}

// scanConflicts compares the distributing rate against its approved
// siblings. Duplicates pick a winner outright; overlaps carve the loser
// when auto-resolution is on; equal-priority standoffs always wait for an
// operator. Pairs with a previously settled link are skipped so repeated
// distributions do not pile up links.
func scanConflicts(r *rate.Rate, others []*rate.Rate, scope map[uuid.UUID]struct{}, autoResolve bool, now time.Time) (scanOutcome, error) {
	out := scanOutcome{
		summaries:   []ConflictSummary{},
		otherCarves: map[uuid.UUID]rate.DateRange{},
	}

	for _, other := range others {
		c, ok := rate.Detect(r, other, scope)
		if !ok || hasSettledLink(r, other.ID()) {
			continue
		}

		summary := ConflictSummary{
			OtherRateID: other.ID(),
			Kind:        string(c.Kind),
			Overlap:     OverlapWindow{Start: c.Overlap.Start, End: c.Overlap.End},
		}

		switch c.Kind {
		case rate.ConflictDuplicate:
			winner, _ := rate.Winner(r, other)
			if winner != r {
				return scanOutcome{}, errs.Mark(ErrDuplicateSuperseded, errs.ErrStateViolation)
			}
			res := rate.ResolveAcceptCentralized
			resolvedAt := now
			out.links = append(out.links, rate.ConflictLink{
				OtherRateID: other.ID(),
				Kind:        c.Kind,
				Action:      rate.ConflictOverride,
				Overlap:     c.Overlap,
				DetectedAt:  now,
				ResolvedAt:  &resolvedAt,
				Resolution:  &res,
			})
			summary.AutoResolved = true
			summary.Action = string(rate.ConflictOverride)

		case rate.ConflictOverlap:
			if !autoResolve {
				out.links = append(out.links, rate.ConflictLink{OtherRateID: other.ID(), Kind: c.Kind, Action: rate.ConflictAlert, Overlap: c.Overlap, DetectedAt: now})
				out.unresolved = true
				summary.Action = string(rate.ConflictAlert)
				break
			}
			_, loser := rate.Winner(r, other)
			if loser == r {
				out.selfCarves = append(out.selfCarves, c.Overlap)
			} else {
				out.otherCarves[other.ID()] = c.Overlap
			}
			res := rate.ResolveCreateException
			resolvedAt := now
			out.links = append(out.links, rate.ConflictLink{
				OtherRateID: other.ID(),
				Kind:        c.Kind,
				Action:      rate.ConflictMerge,
				Overlap:     c.Overlap,
				DetectedAt:  now,
				ResolvedAt:  &resolvedAt,
				Resolution:  &res,
			})
			summary.AutoResolved = true
			summary.Action = string(rate.ConflictMerge)

		case rate.ConflictPriority:
			out.links = append(out.links, rate.ConflictLink{OtherRateID: other.ID(), Kind: c.Kind, Action: rate.ConflictAlert, Overlap: c.Overlap, DetectedAt: now})
			out.unresolved = true
			summary.Action = string(rate.ConflictAlert)
		}

		out.summaries = append(out.summaries, summary)
	}

	return out, nil
}

func hasSettledLink(r *rate.Rate, otherID uuid.UUID) bool {
	for _, link := range r.ConflictLinks() {
		if link.OtherRateID == otherID && link.ResolvedAt != nil {
			return true
		}
	}
	return false
}

func openOrLatestLink(links []rate.ConflictLink, otherID uuid.UUID) (rate.ConflictLink, bool) {
	var latest *rate.ConflictLink
	for i := range links {
		if links[i].OtherRateID != otherID {
			continue
		}
		if links[i].ResolvedAt == nil {
			return links[i], true
		}
		if latest == nil || links[i].DetectedAt.After(latest.DetectedAt) {
			latest = &links[i]
		}
	}
	if latest != nil {
		return *latest, true
	}
	return rate.ConflictLink{}, false
}

func reconstructOthers(snaps []rate.Snapshot, excludeID uuid.UUID) []*rate.Rate {
	others := make([]*rate.Rate, 0, len(snaps))
	for i := range snaps {
		if snaps[i].ID == excludeID {
			continue
		}
		others = append(others, rate.Reconstruct(snaps[i]))
	}
	return others
}

func resolutionAction(res rate.Resolution) rate.ConflictAction {
	switch res {
	case rate.ResolveAcceptCentralized:
		return rate.ConflictOverride
	case rate.ResolveAcceptProperty:
		return rate.ConflictIgnore
	default:
		return rate.ConflictMerge
	}
}

func markUpdateErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(ErrRateVersionConflict, errs.ErrTransient)
	}
	return err
}
