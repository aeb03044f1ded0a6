//go:build unit

package rate_test

import (
	"testing"
	"time"

	"rategrid/internal/domain/rate"
	"rategrid/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// quotableRate pairs an approved rate with an input that prices cleanly
// against it: a three-night stay Wed 2026-06-10 to Sat 2026-06-13, booked
// well in advance.
func quotableRate(mutate func(*builder.RateBuilder)) (*rate.Rate, rate.QuoteInput) {
	b := builder.NewRateBuilder()
	if mutate != nil {
		mutate(b)
	}
	r := b.AsApproved().BuildReconstructed()
	in := rate.QuoteInput{
		PropertyID: uuid.New(),
		RoomTypeID: b.RoomTypeID,
		CheckIn:    date(2026, time.June, 10),
		CheckOut:   date(2026, time.June, 13),
		Guests:     2,
		Channel:    rate.ChannelDirect,
		Now:        time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
	}
	return r, in
}

func requirePriced(t *testing.T, res rate.QuoteResult) *rate.Priced {
	t.Helper()
	require.Nil(t, res.Unavailable)
	require.NotNil(t, res.Priced)
	return res.Priced
}

func requireRejected(t *testing.T, res rate.QuoteResult, reason rate.RejectReason) *rate.Unavailable {
	t.Helper()
	require.Nil(t, res.Priced)
	require.NotNil(t, res.Unavailable)
	assert.Equal(t, reason, res.Unavailable.Reason)
	return res.Unavailable
}

func TestQuote(t *testing.T) {
	t.Run("base price flows through untouched", func(t *testing.T) {
		r, in := quotableRate(nil)

		p := requirePriced(t, r.Quote(in))
		assert.Equal(t, "120", p.PerNightRate.String())
		assert.Equal(t, "360", p.TotalBeforeTax.String())
		assert.Equal(t, 3, p.Nights)
		assert.Equal(t, "EUR", p.Currency)
		assert.Empty(t, p.AppliedAdjustments)
	})

	t.Run("same inputs always produce the same answer", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithRoomAdjustment(rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.RequireFromString("7.77")})
		})

		first := requirePriced(t, r.Quote(in))
		second := requirePriced(t, r.Quote(in))
		assert.Equal(t, first, second)
	})
}

func TestQuoteRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*builder.RateBuilder)
		input  func(*rate.QuoteInput)
		reason rate.RejectReason
	}{
		{
			name: "check-in before the validity window",
			input: func(in *rate.QuoteInput) {
				in.CheckIn = date(2026, time.May, 20)
				in.CheckOut = date(2026, time.May, 22)
			},
			reason: rate.RejectOutsideValidity,
		},
		{
			name: "check-in after the validity window",
			input: func(in *rate.QuoteInput) {
				in.CheckIn = date(2026, time.September, 10)
				in.CheckOut = date(2026, time.September, 12)
			},
			reason: rate.RejectOutsideValidity,
		},
		{
			name:   "weekday mask misses the check-in day",
			mutate: func(b *builder.RateBuilder) { b.WithWeekdays(time.Friday, time.Saturday) },
			reason: rate.RejectOutsideValidity,
		},
		{
			name:   "too little advance notice",
			mutate: func(b *builder.RateBuilder) { b.WithWindow(7, 0, "") },
			input: func(in *rate.QuoteInput) {
				in.Now = time.Date(2026, time.June, 8, 9, 0, 0, 0, time.UTC)
			},
			reason: rate.RejectBelowMinAdvance,
		},
		{
			name:   "booked too far ahead",
			mutate: func(b *builder.RateBuilder) { b.WithWindow(0, 30, "") },
			input: func(in *rate.QuoteInput) {
				in.Now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
			},
			reason: rate.RejectAboveMaxAdvance,
		},
		{
			name:   "same-day booking past the cutoff",
			mutate: func(b *builder.RateBuilder) { b.WithWindow(0, 0, "18:00") },
			input: func(in *rate.QuoteInput) {
				in.Now = time.Date(2026, time.June, 10, 19, 30, 0, 0, time.UTC)
			},
			reason: rate.RejectPastCutoff,
		},
		{
			name:   "stay shorter than the minimum",
			mutate: func(b *builder.RateBuilder) { b.WithStay(4, 0) },
			reason: rate.RejectBelowMinStay,
		},
		{
			name:   "stay longer than the maximum",
			mutate: func(b *builder.RateBuilder) { b.WithStay(1, 2) },
			reason: rate.RejectAboveMaxStay,
		},
		{
			name: "room type not offered on this rate",
			input: func(in *rate.QuoteInput) {
				in.RoomTypeID = uuid.New()
			},
			reason: rate.RejectRoomTypeNotOffered,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, in := quotableRate(tc.mutate)
			if tc.input != nil {
				tc.input(&in)
			}
			requireRejected(t, r.Quote(in), tc.reason)
		})
	}

	t.Run("same-day booking before the cutoff still sells", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) { b.WithWindow(0, 0, "18:00") })
		in.Now = time.Date(2026, time.June, 10, 10, 0, 0, 0, time.UTC)
		requirePriced(t, r.Quote(in))
	})

	t.Run("weekday mask admits a matching check-in", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) { b.WithWeekdays(time.Friday, time.Saturday) })
		in.CheckIn = date(2026, time.June, 12) // a Friday
		in.CheckOut = date(2026, time.June, 14)
		requirePriced(t, r.Quote(in))
	})

	t.Run("carved-out dates stop quoting", func(t *testing.T) {
		r, in := quotableRate(nil)
		carve := rate.DateRange{Start: date(2026, time.June, 9), End: date(2026, time.June, 11)}
		require.NoError(t, r.CarveException(carve, time.Now(), uuid.New()))

		u := requireRejected(t, r.Quote(in), rate.RejectOutsideValidity)
		assert.Equal(t, date(2026, time.June, 10), u.Date)

		in.CheckIn = date(2026, time.June, 12)
		in.CheckOut = date(2026, time.June, 15)
		requirePriced(t, r.Quote(in))
	})

	t.Run("closed to arrival rejects the check-in date only", func(t *testing.T) {
		b := builder.NewRateBuilder().AsApproved()
		snap := b.BuildSnapshot()
		snap.Stay.ClosedToArrival = []time.Time{date(2026, time.June, 10)}
		r := rate.Reconstruct(snap)

		in := rate.QuoteInput{
			PropertyID: uuid.New(),
			RoomTypeID: b.RoomTypeID,
			CheckIn:    date(2026, time.June, 10),
			CheckOut:   date(2026, time.June, 13),
			Guests:     2,
			Channel:    rate.ChannelDirect,
			Now:        time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
		}
		requireRejected(t, r.Quote(in), rate.RejectClosedToArrival)

		// Arriving a day earlier stays across the closed date without issue.
		in.CheckIn = date(2026, time.June, 9)
		requirePriced(t, r.Quote(in))
	})

	t.Run("closed to departure rejects the check-out date", func(t *testing.T) {
		b := builder.NewRateBuilder().AsApproved()
		snap := b.BuildSnapshot()
		snap.Stay.ClosedToDeparture = []time.Time{date(2026, time.June, 13)}
		r := rate.Reconstruct(snap)

		in := rate.QuoteInput{
			PropertyID: uuid.New(),
			RoomTypeID: b.RoomTypeID,
			CheckIn:    date(2026, time.June, 10),
			CheckOut:   date(2026, time.June, 13),
			Guests:     2,
			Channel:    rate.ChannelDirect,
			Now:        time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
		}
		u := requireRejected(t, r.Quote(in), rate.RejectClosedToDeparture)
		assert.Equal(t, date(2026, time.June, 13), u.Date)
	})

	t.Run("stay-through window must be fully covered", func(t *testing.T) {
		b := builder.NewRateBuilder().AsApproved()
		snap := b.BuildSnapshot()
		snap.Stay.StayThrough = []rate.DateRange{{
			Start: date(2026, time.June, 12),
			End:   date(2026, time.June, 14),
		}}
		r := rate.Reconstruct(snap)

		in := rate.QuoteInput{
			PropertyID: uuid.New(),
			RoomTypeID: b.RoomTypeID,
			CheckIn:    date(2026, time.June, 10),
			CheckOut:   date(2026, time.June, 13),
			Guests:     2,
			Channel:    rate.ChannelDirect,
			Now:        time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
		}
		u := requireRejected(t, r.Quote(in), rate.RejectStayThroughRequired)
		assert.Equal(t, date(2026, time.June, 12), u.Date)

		// Extending the stay to span the whole window clears the check.
		in.CheckIn = date(2026, time.June, 11)
		in.CheckOut = date(2026, time.June, 16)
		requirePriced(t, r.Quote(in))
	})

	t.Run("stop sale on the room type", func(t *testing.T) {
		b := builder.NewRateBuilder().AsApproved()
		snap := b.BuildSnapshot()
		snap.RoomTypes[0].StopSale = true
		r := rate.Reconstruct(snap)

		in := rate.QuoteInput{
			PropertyID: uuid.New(),
			RoomTypeID: b.RoomTypeID,
			CheckIn:    date(2026, time.June, 10),
			CheckOut:   date(2026, time.June, 13),
			Guests:     2,
			Channel:    rate.ChannelDirect,
			Now:        time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
		}
		requireRejected(t, r.Quote(in), rate.RejectRoomTypeStopSale)
	})

	t.Run("validity is checked before the room type", func(t *testing.T) {
		r, in := quotableRate(nil)
		in.CheckIn = date(2026, time.May, 20)
		in.CheckOut = date(2026, time.May, 22)
		in.RoomTypeID = uuid.New()

		requireRejected(t, r.Quote(in), rate.RejectOutsideValidity)
	})

	t.Run("booking window is checked before stay restrictions", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithWindow(7, 0, "").WithStay(4, 0)
		})
		in.Now = time.Date(2026, time.June, 8, 9, 0, 0, 0, time.UTC)

		requireRejected(t, r.Quote(in), rate.RejectBelowMinAdvance)
	})
}

func TestQuotePricing(t *testing.T) {
	t.Run("room type adjustment", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithRoomAdjustment(rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(10)})
		})

		p := requirePriced(t, r.Quote(in))
		assert.Equal(t, "132", p.PerNightRate.String())
		assert.Equal(t, "396", p.TotalBeforeTax.String())

		require.Len(t, p.AppliedAdjustments, 1)
		assert.Equal(t, "room_type", p.AppliedAdjustments[0].Layer)
		assert.Equal(t, "132", p.AppliedAdjustments[0].Result.String())
	})

	t.Run("property base-price override replaces the running value", func(t *testing.T) {
		propID := uuid.New()
		override := decimal.RequireFromString("85.5")
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithRoomAdjustment(rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(10)}).
				WithPropertyRate(rate.PropertyRate{PropertyID: propID, BasePrice: &override, IsOverride: true})
		})
		in.PropertyID = propID

		p := requirePriced(t, r.Quote(in))
		// 85.5 rounds half to even at whole units: 86.
		assert.Equal(t, "86", p.PerNightRate.String())

		require.Len(t, p.AppliedAdjustments, 2)
		assert.Equal(t, "property_override", p.AppliedAdjustments[1].Layer)
		assert.Equal(t, "85.5", p.AppliedAdjustments[1].Result.String())
	})

	t.Run("property adjustment applies to the running value", func(t *testing.T) {
		propID := uuid.New()
		adj := rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(-10)}
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithPropertyRate(rate.PropertyRate{PropertyID: propID, Adjustment: &adj, IsOverride: true})
		})
		in.PropertyID = propID

		p := requirePriced(t, r.Quote(in))
		assert.Equal(t, "108", p.PerNightRate.String())
	})

	t.Run("channel markup applies last", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithChannel(rate.ChannelWeb, rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(15)})
		})
		in.Channel = rate.ChannelWeb

		p := requirePriced(t, r.Quote(in))
		assert.Equal(t, "138", p.PerNightRate.String())
		require.Len(t, p.AppliedAdjustments, 1)
		assert.Equal(t, "channel_markup", p.AppliedAdjustments[0].Layer)
	})

	t.Run("inactive channel contributes nothing", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithInactiveChannel(rate.ChannelWeb, rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(15)})
		})
		in.Channel = rate.ChannelWeb

		p := requirePriced(t, r.Quote(in))
		assert.Equal(t, "120", p.PerNightRate.String())
		assert.Empty(t, p.AppliedAdjustments)
	})

	t.Run("each layer rounds before the next applies", func(t *testing.T) {
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithBasePrice(decimal.RequireFromString("99.99")).
				WithRoomAdjustment(rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(5)}).
				WithChannel(rate.ChannelWeb, rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.RequireFromString("2.5")})
		})
		in.Channel = rate.ChannelWeb

		p := requirePriced(t, r.Quote(in))
		// 99.99 * 1.05 = 104.9895, rounded to 104.99 before the markup;
		// 104.99 * 1.025 = 107.61475, rounded to 107.61, then to 108.
		require.Len(t, p.AppliedAdjustments, 2)
		assert.Equal(t, "104.99", p.AppliedAdjustments[0].Result.String())
		assert.Equal(t, "107.61", p.AppliedAdjustments[1].Result.String())
		assert.Equal(t, "108", p.PerNightRate.String())
		assert.Equal(t, "324", p.TotalBeforeTax.String())
	})

	t.Run("final rounding is half to even", func(t *testing.T) {
		cases := []struct {
			adjust string
			want   string
		}{
			{adjust: "0.5", want: "120"},  // 120.5 -> 120
			{adjust: "1.5", want: "122"},  // 121.5 -> 122
			{adjust: "2.5", want: "122"},  // 122.5 -> 122
			{adjust: "3.51", want: "124"}, // 123.51 -> 124
		}
		for _, tc := range cases {
			r, in := quotableRate(func(b *builder.RateBuilder) {
				b.WithRoomAdjustment(rate.Adjustment{Type: rate.AdjustFixed, Value: decimal.RequireFromString(tc.adjust)})
			})
			p := requirePriced(t, r.Quote(in))
			assert.Equal(t, tc.want, p.PerNightRate.String(), "base 120 + %s", tc.adjust)
		}
	})

	t.Run("negative composition clamps to zero", func(t *testing.T) {
		propID := uuid.New()
		adj := rate.Adjustment{Type: rate.AdjustFixed, Value: decimal.NewFromInt(-200)}
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithPropertyRate(rate.PropertyRate{PropertyID: propID, Adjustment: &adj, IsOverride: true})
		})
		in.PropertyID = propID

		p := requirePriced(t, r.Quote(in))
		assert.Equal(t, "0", p.PerNightRate.String())
		assert.Equal(t, "0", p.TotalBeforeTax.String())
	})

	t.Run("property booking window override governs the stay", func(t *testing.T) {
		propID := uuid.New()
		window := rate.BookingWindow{MinAdvanceDays: 30}
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithPropertyRate(rate.PropertyRate{PropertyID: propID, BookingWindow: &window, IsOverride: true})
		})
		in.PropertyID = propID
		in.Now = time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

		requireRejected(t, r.Quote(in), rate.RejectBelowMinAdvance)

		// Other properties keep the rate-level window.
		in.PropertyID = uuid.New()
		requirePriced(t, r.Quote(in))
	})

	t.Run("property stay override governs the stay", func(t *testing.T) {
		propID := uuid.New()
		stay := rate.StayRestrictions{MinStay: 5}
		r, in := quotableRate(func(b *builder.RateBuilder) {
			b.WithPropertyRate(rate.PropertyRate{PropertyID: propID, Stay: &stay, IsOverride: true})
		})
		in.PropertyID = propID

		requireRejected(t, r.Quote(in), rate.RejectBelowMinStay)
	})
}
