package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rategrid/internal/domain/event"
	"rategrid/internal/domain/inventory"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/pkg/clock"
	"rategrid/internal/pkg/config"
	"rategrid/internal/pkg/errs"
	"rategrid/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidSpan         = errs.New("check-out must be after check-in")
	ErrInvalidRange        = errs.New("range end must not precede range start")
	ErrInvalidRoomCount    = errs.New("rooms must be positive")
	ErrSpanNotMaterialized = errs.New("inventory records missing for part of the span")
)

type InventoryRepository interface {
	// FindSpanForUpdate locks the [from, to) rows in date order.
	FindSpanForUpdate(ctx context.Context, tx db.DBTX, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]inventory.Snapshot, error)
	FindOne(ctx context.Context, dbx db.DBTX, propertyID, roomTypeID uuid.UUID, date time.Time) (*inventory.Snapshot, error)
	// FindByBookingForUpdate locks every row holding rooms for the booking.
	FindByBookingForUpdate(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) ([]inventory.Snapshot, error)
	// Save compare-and-sets on the snapshot's version.
	Save(ctx context.Context, tx db.DBTX, snap inventory.Snapshot) error
	// InsertMissing creates absent rows and leaves existing ones untouched.
	InsertMissing(ctx context.Context, tx db.DBTX, snaps []inventory.Snapshot) (int, error)
}

type PropertyRepository interface {
	FindProperty(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*PropertySnapshot, error)
	FindGroup(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*GroupSnapshot, error)
	FindRoomType(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*RoomTypeSnapshot, error)
	FindRoomTypesByGroup(ctx context.Context, dbx db.DBTX, groupID uuid.UUID) ([]RoomTypeSnapshot, error)
	FindRoomTypesByProperty(ctx context.Context, dbx db.DBTX, propertyID uuid.UUID) ([]RoomTypeSnapshot, error)
}

type DateAvailability struct {
	Date      time.Time `json:"date"`
	Available int       `json:"available"`
	Sold      int       `json:"sold"`
}

type ReserveResult struct {
	BookingID uuid.UUID          `json:"bookingId"`
	Rooms     int                `json:"rooms"`
	Dates     []DateAvailability `json:"dates"`
}

type ReleaseResult struct {
	BookingID     uuid.UUID   `json:"bookingId"`
	RoomsReleased int         `json:"roomsReleased"`
	Dates         []time.Time `json:"dates"`
	Changed       bool        `json:"changed"`
}

type BlockResult struct {
	Dates []DateAvailability `json:"dates"`
}

type SetRatesResult struct {
	DatesUpdated int `json:"datesUpdated"`
}

type MaterializeResult struct {
	Created int `json:"created"`
	Horizon int `json:"horizon"`
}

type InventoryCommands interface {
	Reserve(ctx context.Context, in inventory.ReserveInput) (*ReserveResult, error)
	Release(ctx context.Context, bookingID uuid.UUID) (*ReleaseResult, error)
	Block(ctx context.Context, in inventory.BlockInput) (*BlockResult, error)
	SetRates(ctx context.Context, in inventory.SetRatesInput) (*SetRatesResult, error)
	Materialize(ctx context.Context, in inventory.MaterializeInput) (*MaterializeResult, error)
	ClearDirty(ctx context.Context, in inventory.ClearDirtyInput) error
}

type inventoryUseCaseImpl struct {
	ledger    *ledgerService
	pool      *pgxpool.Pool
	cfg       config.InventoryConfig
	clock     clock.Clock
	publisher EventPublisher
}

func NewInventoryUseCase(
	invRepo InventoryRepository,
	propRepo PropertyRepository,
	pool *pgxpool.Pool,
	cfg config.InventoryConfig,
	clk clock.Clock,
	publisher EventPublisher,
) InventoryCommands {
	return &inventoryUseCaseImpl{
		ledger:    newLedgerService(invRepo, propRepo, clk),
		pool:      pool,
		cfg:       cfg,
		clock:     clk,
		publisher: publisher,
	}
}

func (u *inventoryUseCaseImpl) Reserve(ctx context.Context, in inventory.ReserveInput) (*ReserveResult, error) {
	if in.Source == "" {
		in.Source = inventory.SourceDirect
	}
	result, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*ReserveResult, error) {
		return u.ledger.reserveSpan(ctx, tx, in)
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	u.publish(ctx, event.New(event.KindInventoryReserved, in.BookingID, u.clock.Now(), event.InventoryPayload{
		PropertyID: in.PropertyID,
		RoomTypeID: in.RoomTypeID,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Rooms:      in.Rooms,
		BookingID:  in.BookingID,
		Source:     in.Source,
	}))
	return result, nil
}

func (u *inventoryUseCaseImpl) Release(ctx context.Context, bookingID uuid.UUID) (*ReleaseResult, error) {
	result, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*ReleaseResult, error) {
		return u.ledger.releaseBooking(ctx, tx, bookingID)
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	if result.Changed {
		u.publish(ctx, event.New(event.KindInventoryReleased, bookingID, u.clock.Now(), event.InventoryPayload{
			BookingID: bookingID,
			Rooms:     result.RoomsReleased,
		}))
	}
	return result, nil
}

func (u *inventoryUseCaseImpl) Block(ctx context.Context, in inventory.BlockInput) (*BlockResult, error) {
	if in.Rooms < 1 {
		return nil, errs.Mark(ErrInvalidRoomCount, errs.ErrValidation)
	}
	if in.To.Before(in.From) {
		return nil, errs.Mark(ErrInvalidRange, errs.ErrValidation)
	}

	now := u.clock.Now()
	result, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*BlockResult, error) {
		// Inclusive range: lock [from, to+1).
		snaps, err := u.ledger.lockSpan(ctx, tx, in.PropertyID, in.RoomTypeID, in.From, in.To.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		out := &BlockResult{Dates: make([]DateAvailability, 0, len(snaps))}
		for _, snap := range snaps {
			rec := inventory.Reconstruct(snap)
			if ue := rec.Block(in.Rooms, now); ue != nil {
				return nil, ue
			}
			if err := u.ledger.invRepo.Save(ctx, tx, rec.Snapshot()); err != nil {
				return nil, err
			}
			out.Dates = append(out.Dates, DateAvailability{Date: rec.Date(), Available: rec.Available(), Sold: rec.SoldRooms()})
		}
		return out, nil
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	u.publish(ctx, event.New(event.KindInventoryBlocked, in.PropertyID, now, event.InventoryPayload{
		PropertyID: in.PropertyID,
		RoomTypeID: in.RoomTypeID,
		CheckIn:    in.From,
		CheckOut:   in.To,
		Rooms:      in.Rooms,
		Reason:     in.Reason,
	}))
	return result, nil
}

func (u *inventoryUseCaseImpl) SetRates(ctx context.Context, in inventory.SetRatesInput) (*SetRatesResult, error) {
	if in.To.Before(in.From) {
		return nil, errs.Mark(ErrInvalidRange, errs.ErrValidation)
	}

	now := u.clock.Now()
	result, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*SetRatesResult, error) {
		snaps, err := u.ledger.lockSpan(ctx, tx, in.PropertyID, in.RoomTypeID, in.From, in.To.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		for _, snap := range snaps {
			rec := inventory.Reconstruct(snap)
			if err := rec.SetRates(in.BaseRate, in.Selling, in.Currency, now); err != nil {
				return nil, errs.Mark(err, errs.ErrValidation)
			}
			if err := u.ledger.invRepo.Save(ctx, tx, rec.Snapshot()); err != nil {
				return nil, err
			}
		}
		return &SetRatesResult{DatesUpdated: len(snaps)}, nil
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	u.publish(ctx, event.New(event.KindRatesUpdated, in.PropertyID, now, event.RatesUpdatedPayload{
		PropertyID:  in.PropertyID,
		RoomTypeID:  in.RoomTypeID,
		Start:       in.From,
		End:         in.To,
		BaseRate:    in.BaseRate,
		SellingRate: in.Selling,
		Currency:    in.Currency,
	}))
	return result, nil
}

// Materialize idempotently creates missing date rows from room-type
// defaults; rows that already exist are left untouched.
func (u *inventoryUseCaseImpl) Materialize(ctx context.Context, in inventory.MaterializeInput) (*MaterializeResult, error) {
	horizon := in.HorizonDays
	if horizon <= 0 {
		horizon = u.cfg.HorizonDays
	}

	now := u.clock.Now()
	result, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*MaterializeResult, error) {
		rt, err := u.ledger.propRepo.FindRoomType(ctx, tx, in.RoomTypeID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrRoomTypeNotFound
			}
			return nil, err
		}
		if rt.PropertyID != in.PropertyID {
			return nil, errs.ErrRoomTypeNotFound
		}

		snaps := make([]inventory.Snapshot, 0, horizon)
		for i := 0; i < horizon; i++ {
			rec, err := inventory.NewRecord(in.PropertyID, in.RoomTypeID, in.FromDate.AddDate(0, 0, i), rt.TotalRooms, rt.BaseRate, rt.Currency, now)
			if err != nil {
				return nil, errs.Mark(err, errs.ErrValidation)
			}
			snaps = append(snaps, rec.Snapshot())
		}
		created, err := u.ledger.invRepo.InsertMissing(ctx, tx, snaps)
		if err != nil {
			return nil, err
		}
		return &MaterializeResult{Created: created, Horizon: horizon}, nil
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}
	return result, nil
}

func (u *inventoryUseCaseImpl) ClearDirty(ctx context.Context, in inventory.ClearDirtyInput) error {
	now := u.clock.Now()
	_, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (struct{}, error) {
		snaps, err := u.ledger.lockSpan(ctx, tx, in.PropertyID, in.RoomTypeID, in.Date, in.Date.AddDate(0, 0, 1))
		if err != nil {
			return struct{}{}, err
		}
		rec := inventory.Reconstruct(snaps[0])
		rec.ClearDirty(in.Channel, now)
		return struct{}{}, u.ledger.invRepo.Save(ctx, tx, rec.Snapshot())
	})
	return mapLedgerErr(err)
}

func (u *inventoryUseCaseImpl) publish(ctx context.Context, ev event.Event) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish inventory event", "kind", ev.Kind, "error", err)
	}
}

// ledgerService holds the span arithmetic shared between the inventory
// commands and the booking consumer, which runs the same mutations inside
// its own transaction.
type ledgerService struct {
	invRepo  InventoryRepository
	propRepo PropertyRepository
	clock    clock.Clock
}

func newLedgerService(invRepo InventoryRepository, propRepo PropertyRepository, clk clock.Clock) *ledgerService {
	return &ledgerService{invRepo: invRepo, propRepo: propRepo, clock: clk}
}

// lockSpan loads [from, to) in date order under FOR UPDATE and verifies the
// span is fully materialized.
func (s *ledgerService) lockSpan(ctx context.Context, tx db.DBTX, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]inventory.Snapshot, error) {
	snaps, err := s.invRepo.FindSpanForUpdate(ctx, tx, propertyID, roomTypeID, from, to)
	if err != nil {
		return nil, err
	}
	nights := int(to.Sub(from).Hours() / 24)
	if len(snaps) < nights {
		return nil, errs.Mark(ErrSpanNotMaterialized, errs.ErrInsufficientInventory)
	}
	return snaps, nil
}

// reserveSpan applies one reservation to every night of the stay. The whole
// span is validated before any row is written, so a failing date leaves the
// ledger untouched when the surrounding transaction rolls back.
func (s *ledgerService) reserveSpan(ctx context.Context, tx db.DBTX, in inventory.ReserveInput) (*ReserveResult, error) {
	if in.Rooms < 1 {
		return nil, errs.Mark(ErrInvalidRoomCount, errs.ErrValidation)
	}
	if !in.CheckOut.After(in.CheckIn) {
		return nil, errs.Mark(ErrInvalidSpan, errs.ErrValidation)
	}

	prop, err := s.propRepo.FindProperty(ctx, tx, in.PropertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPropertyNotFound
		}
		return nil, err
	}
	policy := inventory.OverbookPolicy{Allowed: prop.AllowOverbooking, Limit: prop.OverbookingLimit}

	snaps, err := s.lockSpan(ctx, tx, in.PropertyID, in.RoomTypeID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	records := make([]*inventory.Record, len(snaps))
	for i, snap := range snaps {
		records[i] = inventory.Reconstruct(snap)
	}

	// Stay-length bounds come from the check-in date's record.
	nights := len(records)
	if ue := records[0].ValidateStay(nights); ue != nil {
		return nil, ue
	}

	// Validate every night before mutating any of them.
	for _, rec := range records {
		if ue := rec.CanReserve(in.Rooms, in.CheckIn, in.Source, policy); ue != nil {
			return nil, ue
		}
	}

	// Departure-date restriction lives on the check-out date's record, which
	// the stay itself does not consume. A missing record means no restriction.
	out, err := s.invRepo.FindOne(ctx, tx, in.PropertyID, in.RoomTypeID, in.CheckOut)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	if out != nil && out.ClosedToDeparture {
		return nil, &inventory.UnavailableError{Reason: inventory.ReasonClosedToDeparture, Date: out.Date}
	}

	now := s.clock.Now()
	result := &ReserveResult{BookingID: in.BookingID, Rooms: in.Rooms, Dates: make([]DateAvailability, 0, len(records))}
	for _, rec := range records {
		if ue := rec.Reserve(in.BookingID, in.Rooms, in.Source, in.CheckIn, now, policy); ue != nil {
			return nil, ue
		}
		if err := s.invRepo.Save(ctx, tx, rec.Snapshot()); err != nil {
			return nil, err
		}
		result.Dates = append(result.Dates, DateAvailability{Date: rec.Date(), Available: rec.Available(), Sold: rec.SoldRooms()})
	}
	return result, nil
}

// releaseBooking undoes a booking's holds. A booking that holds nothing is
// a successful no-op, so releasing twice equals releasing once.
func (s *ledgerService) releaseBooking(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (*ReleaseResult, error) {
	snaps, err := s.invRepo.FindByBookingForUpdate(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	result := &ReleaseResult{BookingID: bookingID}
	now := s.clock.Now()
	for _, snap := range snaps {
		rec := inventory.Reconstruct(snap)
		released, changed := rec.Release(bookingID, now)
		if !changed {
			continue
		}
		if err := s.invRepo.Save(ctx, tx, rec.Snapshot()); err != nil {
			return nil, err
		}
		result.RoomsReleased = released
		result.Dates = append(result.Dates, rec.Date())
		result.Changed = true
	}
	return result, nil
}

// mapLedgerErr translates domain and transaction failures into the shared
// error taxonomy without losing the offending date carried by the cause.
func mapLedgerErr(err error) error {
	if err == nil {
		return nil
	}
	var ue *inventory.UnavailableError
	if errors.As(err, &ue) {
		switch {
		case ue.IsStayViolation():
			return errs.Mark(err, errs.ErrStayViolation)
		case ue.IsRestriction():
			return errs.Mark(err, errs.ErrRestrictionViolation)
		default:
			return errs.Mark(err, errs.ErrInsufficientInventory)
		}
	}
	if errors.Is(err, shared.ErrMaxRetriesExceeded) || infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, errs.ErrTransient)
	}
	return err
}
