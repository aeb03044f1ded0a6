//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rategrid/internal/domain/booking"
	"rategrid/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("direct booking", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, booking.StatusConfirmed, bk.Status())
		assert.Equal(t, 3, bk.Nights())
		assert.Equal(t, "direct", bk.Source())
		assert.False(t, bk.IsCancelled())
		assert.Nil(t, bk.CancelledAt())
		assert.Equal(t, bk.CreatedAt(), bk.UpdatedAt())
	})

	t.Run("channel booking carries its external reference", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().
			AsChannelBooking("booking.com", "BDC-99341").
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "booking.com", bk.Source())
		assert.Equal(t, "BDC-99341", bk.ExternalID())
	})

	t.Run("input validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.BookingBuilder)
			errIs  error
		}{
			{
				name: "check-out before check-in",
				mutate: func(b *builder.BookingBuilder) {
					b.WithStay(time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC),
						time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC))
				},
				errIs: booking.ErrInvalidStayDates,
			},
			{
				name: "zero-night stay",
				mutate: func(b *builder.BookingBuilder) {
					b.WithStay(time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
						time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC))
				},
				errIs: booking.ErrInvalidStayDates,
			},
			{
				name:   "zero rooms",
				mutate: func(b *builder.BookingBuilder) { b.WithRooms(0) },
				errIs:  booking.ErrNoRooms,
			},
			{
				name:   "no adults",
				mutate: func(b *builder.BookingBuilder) { b.WithGuests(0, 2) },
				errIs:  booking.ErrNoGuests,
			},
			{
				name: "channel source without an external id",
				mutate: func(b *builder.BookingBuilder) {
					b.Source = "expedia"
					b.ExternalID = ""
				},
				errIs: booking.ErrMissingExternalID,
			},
			{
				name:   "children without adults still needs an adult",
				mutate: func(b *builder.BookingBuilder) { b.WithGuests(0, 0) },
				errIs:  booking.ErrNoGuests,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := builder.NewBookingBuilder().With(tc.mutate).BuildDomain()
				require.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("stay dates are day-truncated", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().
			WithStay(time.Date(2026, time.June, 10, 15, 0, 0, 0, time.UTC),
				time.Date(2026, time.June, 13, 11, 30, 0, 0, time.UTC)).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), bk.CheckIn())
		assert.Equal(t, time.Date(2026, time.June, 13, 0, 0, 0, 0, time.UTC), bk.CheckOut())
		assert.Equal(t, 3, bk.Nights())
	})
}

func TestCancel(t *testing.T) {
	cancelAt := time.Date(2026, time.May, 20, 9, 0, 0, 0, time.UTC)

	t.Run("cancel stamps the booking", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, bk.Cancel(cancelAt))
		assert.True(t, bk.IsCancelled())
		assert.Equal(t, booking.StatusCancelled, bk.Status())
		require.NotNil(t, bk.CancelledAt())
		assert.Equal(t, cancelAt, *bk.CancelledAt())
		assert.Equal(t, cancelAt, bk.UpdatedAt())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, bk.Cancel(cancelAt))

		err = bk.Cancel(cancelAt.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrAlreadyCancelled)
		assert.Equal(t, cancelAt, *bk.CancelledAt())
	})
}

func TestReschedule(t *testing.T) {
	moveAt := time.Date(2026, time.May, 22, 10, 0, 0, 0, time.UTC)
	newIn := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	newOut := time.Date(2026, time.June, 17, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(280)

	t.Run("moves the stay and the amounts", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		err = bk.Reschedule(newIn, newOut, 2, booking.Amounts{Quoted: &amount, Currency: "EUR"}, moveAt)
		require.NoError(t, err)
		assert.Equal(t, newIn, bk.CheckIn())
		assert.Equal(t, newOut, bk.CheckOut())
		assert.Equal(t, 2, bk.Rooms())
		assert.Equal(t, 2, bk.Nights())
		require.NotNil(t, bk.Amounts().Quoted)
		assert.Equal(t, "280", bk.Amounts().Quoted.String())
		assert.Equal(t, moveAt, bk.UpdatedAt())
	})

	t.Run("validates the new stay", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		err = bk.Reschedule(newOut, newIn, 1, bk.Amounts(), moveAt)
		require.ErrorIs(t, err, booking.ErrInvalidStayDates)

		err = bk.Reschedule(newIn, newOut, 0, bk.Amounts(), moveAt)
		require.ErrorIs(t, err, booking.ErrNoRooms)
	})

	t.Run("cancelled bookings cannot move", func(t *testing.T) {
		bk, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, bk.Cancel(moveAt))

		err = bk.Reschedule(newIn, newOut, 1, bk.Amounts(), moveAt)
		require.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})
}
