package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"rategrid/internal/domain/booking"
	"rategrid/internal/domain/event"
	"rategrid/internal/domain/inventory"
	"rategrid/internal/domain/rate"
	reqdto "rategrid/internal/handler/dto/request"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/infra/observability"
	"rategrid/internal/pkg/clock"
	"rategrid/internal/pkg/config"
	"rategrid/internal/pkg/errs"
	"rategrid/internal/usecase/queries"
	"rategrid/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownChannel         = errs.New("unknown booking channel")
	ErrUnknownEventType       = errs.New("unknown channel event type")
	ErrUnknownRoomCode        = errs.New("no room type mapped for the channel room code")
	ErrRateUnavailableForStay = errs.New("the referenced rate cannot price this stay")
)

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// FindByExternalForUpdate locks the booking a channel previously created,
	// keyed by (source, externalBookingId).
	FindByExternalForUpdate(ctx context.Context, tx db.DBTX, source, externalID string) (*booking.Booking, error)
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

// ChannelEventResult reports how a webhook event landed. Outcome is
// "processed" when state changed and "replayed" when the event had already
// been applied.
type ChannelEventResult struct {
	BookingID uuid.UUID `json:"bookingId"`
	EventType string    `json:"eventType"`
	Outcome   string    `json:"outcome"`
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	HandleChannelEvent(ctx context.Context, channel string, req reqdto.ChannelEventRequest) (*ChannelEventResult, error)
}

type bookingUseCaseImpl struct {
	bookingRepo    BookingRepository
	ledger         *ledgerService
	bookingQueries queries.BookingQueries
	quoteQueries   queries.QuoteQueries
	publisher      EventPublisher
	pool           *pgxpool.Pool
	cfg            config.InventoryConfig
	clock          clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	invRepo InventoryRepository,
	propRepo PropertyRepository,
	bookingQueries queries.BookingQueries,
	quoteQueries queries.QuoteQueries,
	publisher EventPublisher,
	pool *pgxpool.Pool,
	cfg config.InventoryConfig,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		bookingRepo:    bookingRepo,
		ledger:         newLedgerService(invRepo, propRepo, clk),
		bookingQueries: bookingQueries,
		quoteQueries:   quoteQueries,
		publisher:      publisher,
		pool:           pool,
		cfg:            cfg,
		clock:          clk,
	}
}

// CreateBooking takes a direct reservation: quote the referenced rate when
// one is given, insert the booking and hold inventory, all in one
// transaction so a failing night leaves nothing behind.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest) (*queries.BookingView, error) {
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	amounts := booking.Amounts{Reported: req.Amount, Currency: req.Currency}
	if req.RateID != nil {
		quoted, currency, err := u.quoteStay(ctx, *req.RateID, req.PropertyID, req.RoomTypeID, checkIn, checkOut, req.Adults+req.Children, quoteChannel(req.Channel))
		if err != nil {
			observability.ObserveReservation(inventory.SourceDirect, "rejected")
			return nil, err
		}
		amounts.Quoted = quoted
		if amounts.Currency == "" {
			amounts.Currency = currency
		}
	}

	b, err := booking.New(booking.NewBookingParams{
		PropertyID:       req.PropertyID,
		RoomTypeID:       req.RoomTypeID,
		RateID:           req.RateID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Rooms:            req.Rooms,
		Guests:           booking.GuestDetails{Adults: req.Adults, Children: req.Children, Country: req.GuestCountry},
		Source:           inventory.SourceDirect,
		ConfirmationCode: newConfirmationCode(),
		Amounts:          amounts,
	}, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	_, err = shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (struct{}, error) {
		if err := u.bookingRepo.Create(ctx, tx, b); err != nil {
			return struct{}{}, err
		}
		_, err := u.ledger.reserveSpan(ctx, tx, inventory.ReserveInput{
			PropertyID: b.PropertyID(),
			RoomTypeID: b.RoomTypeID(),
			CheckIn:    b.CheckIn(),
			CheckOut:   b.CheckOut(),
			Rooms:      b.Rooms(),
			BookingID:  b.ID(),
			Source:     inventory.SourceDirect,
		})
		return struct{}{}, err
	})
	if err != nil {
		err = mapLedgerErr(err)
		observability.ObserveReservation(inventory.SourceDirect, reservationOutcome(err))
		return nil, err
	}

	observability.ObserveReservation(inventory.SourceDirect, "ok")
	u.publishBooking(ctx, event.KindBookingCreated, b)
	return u.bookingQueries.GetByID(ctx, b.ID())
}

// CancelBooking releases the booking's holds. Cancelling twice equals
// cancelling once; the second call returns the stored state unchanged.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	type outcome struct {
		b       *booking.Booking
		changed bool
	}
	res, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (outcome, error) {
		b, err := u.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return outcome{}, errs.ErrBookingNotFound
			}
			return outcome{}, err
		}
		if b.IsCancelled() {
			return outcome{b: b}, nil
		}
		if err := b.Cancel(u.clock.Now()); err != nil {
			return outcome{}, errs.Mark(err, errs.ErrStateViolation)
		}
		if err := u.bookingRepo.Update(ctx, tx, b); err != nil {
			return outcome{}, err
		}
		if _, err := u.ledger.releaseBooking(ctx, tx, id); err != nil {
			return outcome{}, err
		}
		return outcome{b: b, changed: true}, nil
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	if res.changed {
		u.publishBooking(ctx, event.KindBookingCancelled, res.b)
	}
	return u.bookingQueries.GetByID(ctx, id)
}

// HandleChannelEvent applies one normalized webhook event. Replays keyed by
// (channel, externalBookingId) return the stored outcome without touching
// the ledger.
func (u *bookingUseCaseImpl) HandleChannelEvent(ctx context.Context, channel string, req reqdto.ChannelEventRequest) (*ChannelEventResult, error) {
	ch := rate.Channel(channel)
	if !ch.IsValid() || ch == rate.ChannelDirect {
		observability.ObserveWebhook(channel, req.EventType, "rejected")
		return nil, errs.Mark(ErrUnknownChannel, errs.ErrValidation)
	}

	var (
		result *ChannelEventResult
		err    error
	)
	switch req.EventType {
	case "new_booking":
		result, err = u.channelNewBooking(ctx, channel, req)
	case "modification":
		result, err = u.channelModification(ctx, channel, req)
	case "cancellation":
		result, err = u.channelCancellation(ctx, channel, req)
	default:
		err = errs.Mark(ErrUnknownEventType, errs.ErrValidation)
	}
	if err != nil {
		observability.ObserveWebhook(channel, req.EventType, webhookOutcome(err))
		return nil, err
	}

	observability.ObserveWebhook(channel, req.EventType, result.Outcome)
	return result, nil
}

func (u *bookingUseCaseImpl) channelNewBooking(ctx context.Context, channel string, req reqdto.ChannelEventRequest) (*ChannelEventResult, error) {
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	prop, err := u.ledger.propRepo.FindProperty(ctx, u.pool, req.PropertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPropertyNotFound
		}
		return nil, err
	}
	roomTypeID, ok := resolveRoomType(prop, channel, req.ExternalRoomCode)
	if !ok {
		return nil, errs.Mark(ErrUnknownRoomCode, errs.ErrValidation)
	}

	// The guest already holds this booking on the channel side, so a failed
	// quote downgrades to an unquoted booking instead of a rejection.
	amounts := booking.Amounts{Reported: req.Amount, Currency: req.Currency}
	if req.RateID != nil {
		quoted, currency, err := u.quoteStay(ctx, *req.RateID, req.PropertyID, roomTypeID, checkIn, checkOut, req.Adults+req.Children, channel)
		if err != nil {
			slog.Warn("channel booking arrived unquotable", "channel", channel, "external_id", req.ExternalBookingID, "rate_id", *req.RateID, "error", err)
		} else {
			amounts.Quoted = quoted
			if amounts.Currency == "" {
				amounts.Currency = currency
			}
		}
	}

	b, err := booking.New(booking.NewBookingParams{
		PropertyID: req.PropertyID,
		RoomTypeID: roomTypeID,
		RateID:     req.RateID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Rooms:      req.Rooms,
		Guests:     booking.GuestDetails{Adults: req.Adults, Children: req.Children, Country: req.GuestCountry},
		Source:     channel,
		ExternalID: req.ExternalBookingID,
		Amounts:    amounts,
	}, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	result, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (*ChannelEventResult, error) {
		existing, err := u.findExternal(ctx, tx, channel, req.ExternalBookingID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ChannelEventResult{BookingID: existing.ID(), EventType: req.EventType, Outcome: "replayed"}, nil
		}

		if err := u.bookingRepo.Create(ctx, tx, b); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				// A racing delivery of the same event committed first.
				return nil, errs.Mark(err, errs.ErrTransient)
			}
			return nil, err
		}
		if _, err := u.ledger.reserveSpan(ctx, tx, inventory.ReserveInput{
			PropertyID: req.PropertyID,
			RoomTypeID: roomTypeID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Rooms:      req.Rooms,
			BookingID:  b.ID(),
			Source:     channel,
		}); err != nil {
			return nil, err
		}
		return &ChannelEventResult{BookingID: b.ID(), EventType: req.EventType, Outcome: "processed"}, nil
	})
	if err != nil {
		err = mapLedgerErr(err)
		observability.ObserveReservation(channel, reservationOutcome(err))
		return nil, err
	}

	if result.Outcome == "processed" {
		observability.ObserveReservation(channel, "ok")
		u.publishBooking(ctx, event.KindBookingCreated, b)
	}
	return result, nil
}

// channelModification swaps the booking's holds for the new stay shape.
// Release and re-reserve share the transaction, so an unavailable new span
// keeps the old one intact.
func (u *bookingUseCaseImpl) channelModification(ctx context.Context, channel string, req reqdto.ChannelEventRequest) (*ChannelEventResult, error) {
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	type outcome struct {
		result *ChannelEventResult
		b      *booking.Booking
	}
	res, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (outcome, error) {
		b, err := u.findExternal(ctx, tx, channel, req.ExternalBookingID)
		if err != nil {
			return outcome{}, err
		}
		if b == nil {
			return outcome{}, errs.ErrBookingNotFound
		}

		rooms := req.Rooms
		if rooms == 0 {
			rooms = b.Rooms()
		}
		amounts := b.Amounts()
		if req.Amount != nil {
			amounts.Reported = req.Amount
		}
		if req.Currency != "" {
			amounts.Currency = req.Currency
		}

		if _, err := u.ledger.releaseBooking(ctx, tx, b.ID()); err != nil {
			return outcome{}, err
		}
		if err := b.Reschedule(checkIn, checkOut, rooms, amounts, u.clock.Now()); err != nil {
			if errors.Is(err, booking.ErrAlreadyCancelled) {
				return outcome{}, errs.Mark(err, errs.ErrStateViolation)
			}
			return outcome{}, errs.Mark(err, errs.ErrValidation)
		}
		if err := u.bookingRepo.Update(ctx, tx, b); err != nil {
			return outcome{}, err
		}
		if _, err := u.ledger.reserveSpan(ctx, tx, inventory.ReserveInput{
			PropertyID: b.PropertyID(),
			RoomTypeID: b.RoomTypeID(),
			CheckIn:    b.CheckIn(),
			CheckOut:   b.CheckOut(),
			Rooms:      b.Rooms(),
			BookingID:  b.ID(),
			Source:     channel,
		}); err != nil {
			return outcome{}, err
		}
		return outcome{
			result: &ChannelEventResult{BookingID: b.ID(), EventType: req.EventType, Outcome: "processed"},
			b:      b,
		}, nil
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	u.publishBooking(ctx, event.KindBookingModified, res.b)
	return res.result, nil
}

func (u *bookingUseCaseImpl) channelCancellation(ctx context.Context, channel string, req reqdto.ChannelEventRequest) (*ChannelEventResult, error) {
	type outcome struct {
		result *ChannelEventResult
		b      *booking.Booking
	}
	res, err := shared.RunInTxWithRetry(ctx, u.pool, u.cfg.TxRetries, func(tx db.DBTX) (outcome, error) {
		b, err := u.findExternal(ctx, tx, channel, req.ExternalBookingID)
		if err != nil {
			return outcome{}, err
		}
		if b == nil {
			return outcome{}, errs.ErrBookingNotFound
		}
		if b.IsCancelled() {
			return outcome{result: &ChannelEventResult{BookingID: b.ID(), EventType: req.EventType, Outcome: "replayed"}}, nil
		}

		if err := b.Cancel(u.clock.Now()); err != nil {
			return outcome{}, errs.Mark(err, errs.ErrStateViolation)
		}
		if err := u.bookingRepo.Update(ctx, tx, b); err != nil {
			return outcome{}, err
		}
		if _, err := u.ledger.releaseBooking(ctx, tx, b.ID()); err != nil {
			return outcome{}, err
		}
		return outcome{
			result: &ChannelEventResult{BookingID: b.ID(), EventType: req.EventType, Outcome: "processed"},
			b:      b,
		}, nil
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	if res.result.Outcome == "processed" {
		u.publishBooking(ctx, event.KindBookingCancelled, res.b)
	}
	return res.result, nil
}

func (u *bookingUseCaseImpl) findExternal(ctx context.Context, tx db.DBTX, source, externalID string) (*booking.Booking, error) {
	b, err := u.bookingRepo.FindByExternalForUpdate(ctx, tx, source, externalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// quoteStay prices the stay against an approved rate and returns the total
// for the whole stay in the rate's currency.
func (u *bookingUseCaseImpl) quoteStay(ctx context.Context, rateID, propertyID, roomTypeID uuid.UUID, checkIn, checkOut time.Time, guests int, channel string) (*decimal.Decimal, string, error) {
	view, err := u.quoteQueries.Quote(ctx, queries.QuoteRequest{
		RateID:     rateID,
		PropertyID: propertyID,
		RoomTypeID: roomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		Channel:    channel,
	})
	if err != nil {
		return nil, "", err
	}
	if view.Priced == nil {
		return nil, "", errs.Mark(ErrRateUnavailableForStay, errs.ErrRestrictionViolation)
	}
	total := view.Priced.TotalBeforeTax
	return &total, view.Priced.Currency, nil
}

func (u *bookingUseCaseImpl) publishBooking(ctx context.Context, kind event.Kind, b *booking.Booking) {
	if u.publisher == nil {
		return
	}
	ev := event.New(kind, b.ID(), u.clock.Now(), event.BookingPayload{
		BookingID:  b.ID(),
		PropertyID: b.PropertyID(),
		RoomTypeID: b.RoomTypeID(),
		CheckIn:    b.CheckIn(),
		CheckOut:   b.CheckOut(),
		Rooms:      b.Rooms(),
		Source:     b.Source(),
		ExternalID: b.ExternalID(),
	})
	if err := u.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish booking event", "kind", kind, "booking_id", b.ID(), "error", err)
	}
}

func resolveRoomType(prop *PropertySnapshot, channel, code string) (uuid.UUID, bool) {
	if code == "" {
		return uuid.Nil, false
	}
	for _, m := range prop.ChannelMappings {
		if m.Channel == channel && m.ExternalCode == code {
			return m.RoomTypeID, true
		}
	}
	return uuid.Nil, false
}

func quoteChannel(channel string) string {
	if channel == "" {
		return string(rate.ChannelDirect)
	}
	return channel
}

func newConfirmationCode() string {
	return "RG-" + strings.ToUpper(uuid.NewString()[:8])
}

func reservationOutcome(err error) string {
	switch {
	case errors.Is(err, errs.ErrInsufficientInventory),
		errors.Is(err, errs.ErrStayViolation),
		errors.Is(err, errs.ErrRestrictionViolation),
		errors.Is(err, errs.ErrStateViolation),
		errors.Is(err, errs.ErrRateNotFound),
		errors.Is(err, errs.ErrValidation):
		return "rejected"
	default:
		return "error"
	}
}

func webhookOutcome(err error) string {
	if errors.Is(err, errs.ErrValidation) || errors.Is(err, errs.ErrBookingNotFound) {
		return "rejected"
	}
	return reservationOutcome(err)
}
