package commands

import (
	"context"
	"errors"
	"log/slog"

	"rategrid/internal/domain/event"
	"rategrid/internal/domain/rate"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/pkg/clock"
	"rategrid/internal/pkg/errs"
	"rategrid/internal/usecase/queries"
	"rategrid/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrGroupNotFound       = errs.New("rate group not found")
	ErrUnknownAction       = errs.New("unknown transition action")
	ErrRateVersionConflict = errs.New("rate was modified concurrently")
)

type RateRepository interface {
	Create(ctx context.Context, tx db.DBTX, snap rate.Snapshot) error
	// Update compare-and-sets on expectedVersion, the version the aggregate
	// was loaded at before the mutation bumped it.
	Update(ctx context.Context, tx db.DBTX, snap rate.Snapshot, expectedVersion int64) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*rate.Snapshot, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*rate.Snapshot, error)
	FindApprovedByGroup(ctx context.Context, dbx db.DBTX, groupID uuid.UUID) ([]rate.Snapshot, error)
	// FindApprovedByGroupForUpdate locks the group's approved rates in id
	// order so concurrent distributions acquire row locks consistently.
	FindApprovedByGroupForUpdate(ctx context.Context, tx db.DBTX, groupID uuid.UUID) ([]rate.Snapshot, error)
}

type RateCommands interface {
	Create(ctx context.Context, req reqdto.CreateRateRequest, actor uuid.UUID) (*queries.RateView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateRateRequest, actor uuid.UUID) (*queries.RateView, error)
	Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID, req reqdto.DuplicateRateRequest, actor uuid.UUID) (*queries.RateView, error)
	Transition(ctx context.Context, id uuid.UUID, req reqdto.TransitionRateRequest, actor uuid.UUID) (*queries.RateView, error)
}

type rateUseCaseImpl struct {
	rateRepo    RateRepository
	propRepo    PropertyRepository
	rateQueries queries.RateQueries
	cache       RateCache
	publisher   EventPublisher
	pool        *pgxpool.Pool
	clock       clock.Clock
}

func NewRateUseCase(
	rateRepo RateRepository,
	propRepo PropertyRepository,
	rateQueries queries.RateQueries,
	cache RateCache,
	publisher EventPublisher,
	pool *pgxpool.Pool,
	clk clock.Clock,
) RateCommands {
	return &rateUseCaseImpl{
		rateRepo:    rateRepo,
		propRepo:    propRepo,
		rateQueries: rateQueries,
		cache:       cache,
		publisher:   publisher,
		pool:        pool,
		clock:       clk,
	}
}

func (u *rateUseCaseImpl) Create(ctx context.Context, req reqdto.CreateRateRequest, actor uuid.UUID) (*queries.RateView, error) {
	def, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if err := u.validateGroupRoomTypes(ctx, req.GroupID, def); err != nil {
		return nil, err
	}

	r, err := rate.New(req.GroupID, def, actor, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	snap := r.Snapshot()
	_, err = shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, u.rateRepo.Create(ctx, tx, snap)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		return nil, err
	}

	u.afterMutation(ctx, nil, snap)
	return u.rateQueries.GetByID(ctx, r.ID())
}

func (u *rateUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateRateRequest, actor uuid.UUID) (*queries.RateView, error) {
	upd, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	before, after, err := u.mutate(ctx, id, func(r *rate.Rate) error {
		if err := r.ApplyUpdate(upd, u.clock.Now(), actor); err != nil {
			switch {
			case errors.Is(err, rate.ErrNotEditable):
				return errs.Mark(err, errs.ErrStateViolation)
			default:
				return errs.Mark(err, errs.ErrValidation)
			}
		}
		if upd.RoomTypes != nil {
			return u.validateGroupRoomTypes(ctx, r.GroupID(), rate.Definition{RoomTypes: *upd.RoomTypes})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.afterMutation(ctx, &before, after)
	return u.rateQueries.GetByID(ctx, id)
}

func (u *rateUseCaseImpl) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	_, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		snap, err := u.rateRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, errs.ErrRateNotFound
			}
			return struct{}{}, err
		}
		r := rate.Reconstruct(*snap)
		if !r.IsDeletable() {
			return struct{}{}, errs.Mark(rate.ErrNotDeletable, errs.ErrStateViolation)
		}
		return struct{}{}, u.rateRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	u.invalidate(ctx, id)
	return nil
}

func (u *rateUseCaseImpl) Duplicate(ctx context.Context, id uuid.UUID, req reqdto.DuplicateRateRequest, actor uuid.UUID) (*queries.RateView, error) {
	snap, err := u.rateRepo.FindByID(ctx, u.pool, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRateNotFound
		}
		return nil, err
	}

	source := rate.Reconstruct(*snap)
	dup, err := source.Duplicate(req.Name, actor, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	dupSnap := dup.Snapshot()
	_, err = shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, u.rateRepo.Create(ctx, tx, dupSnap)
	})
	if err != nil {
		return nil, err
	}

	u.afterMutation(ctx, nil, dupSnap)
	return u.rateQueries.GetByID(ctx, dup.ID())
}

func (u *rateUseCaseImpl) Transition(ctx context.Context, id uuid.UUID, req reqdto.TransitionRateRequest, actor uuid.UUID) (*queries.RateView, error) {
	action := rate.TransitionAction(req.Action)
	if !action.IsValid() {
		return nil, errs.Mark(ErrUnknownAction, errs.ErrValidation)
	}

	before, after, err := u.mutate(ctx, id, func(r *rate.Rate) error {
		if err := r.Transition(action, req.Reason, u.clock.Now(), actor); err != nil {
			return errs.Mark(err, errs.ErrStateViolation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.afterMutation(ctx, &before, after)
	return u.rateQueries.GetByID(ctx, id)
}

// mutate runs one load-modify-store cycle under a row lock and returns the
// before and after snapshots for event derivation.
func (u *rateUseCaseImpl) mutate(ctx context.Context, id uuid.UUID, fn func(r *rate.Rate) error) (rate.Snapshot, rate.Snapshot, error) {
	type pair struct {
		before rate.Snapshot
		after  rate.Snapshot
	}
	result, err := shared.RunInTx(ctx, u.pool, func(tx db.DBTX) (pair, error) {
		snap, err := u.rateRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return pair{}, errs.ErrRateNotFound
			}
			return pair{}, err
		}
		r := rate.Reconstruct(*snap)
		if err := fn(r); err != nil {
			return pair{}, err
		}
		after := r.Snapshot()
		if err := u.rateRepo.Update(ctx, tx, after, snap.Version); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return pair{}, errs.Mark(ErrRateVersionConflict, errs.ErrTransient)
			}
			return pair{}, err
		}
		return pair{before: *snap, after: after}, nil
	})
	if err != nil {
		return rate.Snapshot{}, rate.Snapshot{}, err
	}
	return result.before, result.after, nil
}

func (u *rateUseCaseImpl) validateGroupRoomTypes(ctx context.Context, groupID uuid.UUID, def rate.Definition) error {
	if _, err := u.propRepo.FindGroup(ctx, u.pool, groupID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	roomTypes, err := u.propRepo.FindRoomTypesByGroup(ctx, u.pool, groupID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]struct{}, len(roomTypes))
	for _, rt := range roomTypes {
		known[rt.ID] = struct{}{}
	}
	if err := def.ValidateRoomTypes(known); err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	return nil
}

// afterMutation handles the commit side effects shared by every rate write:
// cache invalidation and event publication. Both are best-effort.
func (u *rateUseCaseImpl) afterMutation(ctx context.Context, before *rate.Snapshot, after rate.Snapshot) {
	u.invalidate(ctx, after.ID)
	u.publishEvents(ctx, rate.ChangeEvents(before, after, u.clock.Now()))
}

func (u *rateUseCaseImpl) invalidate(ctx context.Context, id uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx, id); err != nil {
		slog.Warn("failed to invalidate rate cache", "rate_id", id, "error", err)
	}
}

func (u *rateUseCaseImpl) publishEvents(ctx context.Context, events []event.Event) {
	if u.publisher == nil || len(events) == 0 {
		return
	}
	if err := u.publisher.Publish(ctx, events...); err != nil {
		slog.Warn("failed to publish rate events", "count", len(events), "error", err)
	}
}
