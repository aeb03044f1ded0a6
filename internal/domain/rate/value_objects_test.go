//go:build unit

package rate_test

import (
	"testing"
	"time"

	"rategrid/internal/domain/rate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := rate.NewDateRange(date(2026, time.June, 10), date(2026, time.June, 9))
		require.ErrorIs(t, err, rate.ErrInvalidDateRange)
	})

	t.Run("single-day range counts one day", func(t *testing.T) {
		r, err := rate.NewDateRange(date(2026, time.June, 10), date(2026, time.June, 10))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
		assert.True(t, r.Contains(date(2026, time.June, 10)))
	})

	t.Run("days are counted inclusively", func(t *testing.T) {
		r, err := rate.NewDateRange(date(2026, time.June, 10), date(2026, time.June, 12))
		require.NoError(t, err)
		assert.Equal(t, 3, r.Days())
	})

	t.Run("clock components are stripped", func(t *testing.T) {
		r, err := rate.NewDateRange(
			time.Date(2026, time.June, 10, 15, 30, 0, 0, time.UTC),
			time.Date(2026, time.June, 12, 2, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.June, 10), r.Start)
		assert.Equal(t, date(2026, time.June, 12), r.End)
	})

	t.Run("intersection", func(t *testing.T) {
		a := rate.DateRange{Start: date(2026, time.June, 1), End: date(2026, time.June, 20)}
		b := rate.DateRange{Start: date(2026, time.June, 15), End: date(2026, time.June, 30)}

		got, ok := a.Intersect(b)
		require.True(t, ok)
		assert.Equal(t, date(2026, time.June, 15), got.Start)
		assert.Equal(t, date(2026, time.June, 20), got.End)

		c := rate.DateRange{Start: date(2026, time.July, 1), End: date(2026, time.July, 5)}
		_, ok = a.Intersect(c)
		assert.False(t, ok)
	})

	t.Run("touching ranges overlap on the shared day", func(t *testing.T) {
		a := rate.DateRange{Start: date(2026, time.June, 1), End: date(2026, time.June, 10)}
		b := rate.DateRange{Start: date(2026, time.June, 10), End: date(2026, time.June, 20)}
		assert.True(t, a.Overlaps(b))
	})
}

func TestValidity(t *testing.T) {
	newValidity := func(t *testing.T) rate.Validity {
		t.Helper()
		v, err := rate.NewValidity(date(2026, time.June, 1), date(2026, time.June, 30), "UTC", nil)
		require.NoError(t, err)
		return v
	}

	t.Run("unknown timezone is rejected", func(t *testing.T) {
		_, err := rate.NewValidity(date(2026, time.June, 1), date(2026, time.June, 30), "Mars/Olympus", nil)
		require.ErrorIs(t, err, rate.ErrUnknownTimezone)
	})

	t.Run("empty timezone defaults to UTC", func(t *testing.T) {
		v, err := rate.NewValidity(date(2026, time.June, 1), date(2026, time.June, 30), "", nil)
		require.NoError(t, err)
		assert.Equal(t, "UTC", v.Timezone)
	})

	t.Run("carve clips to the window", func(t *testing.T) {
		v := newValidity(t)
		carved := v.Carve(rate.DateRange{Start: date(2026, time.May, 20), End: date(2026, time.June, 5)})

		require.Len(t, carved.Excluded, 1)
		assert.Equal(t, date(2026, time.June, 1), carved.Excluded[0].Start)
		assert.Equal(t, date(2026, time.June, 5), carved.Excluded[0].End)
	})

	t.Run("carve outside the window changes nothing", func(t *testing.T) {
		v := newValidity(t)
		carved := v.Carve(rate.DateRange{Start: date(2026, time.August, 1), End: date(2026, time.August, 5)})
		assert.Empty(t, carved.Excluded)
	})

	t.Run("overlapping carves merge", func(t *testing.T) {
		v := newValidity(t)
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 5), End: date(2026, time.June, 10)})
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 8), End: date(2026, time.June, 14)})

		require.Len(t, v.Excluded, 1)
		assert.Equal(t, date(2026, time.June, 5), v.Excluded[0].Start)
		assert.Equal(t, date(2026, time.June, 14), v.Excluded[0].End)
	})

	t.Run("adjacent carves merge", func(t *testing.T) {
		v := newValidity(t)
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 5), End: date(2026, time.June, 10)})
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 11), End: date(2026, time.June, 14)})

		require.Len(t, v.Excluded, 1)
		assert.Equal(t, date(2026, time.June, 5), v.Excluded[0].Start)
		assert.Equal(t, date(2026, time.June, 14), v.Excluded[0].End)
	})

	t.Run("separated carves stay apart", func(t *testing.T) {
		v := newValidity(t)
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 20), End: date(2026, time.June, 22)})
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 5), End: date(2026, time.June, 8)})

		require.Len(t, v.Excluded, 2)
		assert.Equal(t, date(2026, time.June, 5), v.Excluded[0].Start)
		assert.Equal(t, date(2026, time.June, 20), v.Excluded[1].Start)
	})

	t.Run("effective spans skip exclusions", func(t *testing.T) {
		v := newValidity(t)
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 10), End: date(2026, time.June, 12)})

		spans := v.EffectiveSpans()
		require.Len(t, spans, 2)
		assert.Equal(t, date(2026, time.June, 1), spans[0].Start)
		assert.Equal(t, date(2026, time.June, 9), spans[0].End)
		assert.Equal(t, date(2026, time.June, 13), spans[1].Start)
		assert.Equal(t, date(2026, time.June, 30), spans[1].End)
	})

	t.Run("exclusion at the window start leaves one span", func(t *testing.T) {
		v := newValidity(t)
		v = v.Carve(rate.DateRange{Start: date(2026, time.June, 1), End: date(2026, time.June, 5)})

		spans := v.EffectiveSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, date(2026, time.June, 6), spans[0].Start)
		assert.Equal(t, date(2026, time.June, 30), spans[0].End)
	})
}

func TestAdjustment(t *testing.T) {
	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := rate.NewAdjustment("multiplier", decimal.NewFromInt(2))
		require.ErrorIs(t, err, rate.ErrUnknownAdjustKind)
	})

	t.Run("percentage applies in percent points", func(t *testing.T) {
		adj, err := rate.NewAdjustment(rate.AdjustPercentage, decimal.NewFromInt(-15))
		require.NoError(t, err)
		assert.Equal(t, "102", adj.Apply(decimal.NewFromInt(120)).String())
	})

	t.Run("fixed applies as an offset", func(t *testing.T) {
		adj, err := rate.NewAdjustment(rate.AdjustFixed, decimal.RequireFromString("12.5"))
		require.NoError(t, err)
		assert.Equal(t, "132.5", adj.Apply(decimal.NewFromInt(120)).String())
	})
}

func TestBookingWindow(t *testing.T) {
	t.Run("malformed cutoff is rejected", func(t *testing.T) {
		_, err := rate.NewBookingWindow(0, 0, "25:99")
		require.ErrorIs(t, err, rate.ErrInvalidCutoff)
	})

	t.Run("unbounded max advance accepts any min", func(t *testing.T) {
		w, err := rate.NewBookingWindow(30, 0, "")
		require.NoError(t, err)
		assert.Equal(t, 30, w.MinAdvanceDays)
	})
}

func TestStayRestrictions(t *testing.T) {
	t.Run("closed dates are day-normalized", func(t *testing.T) {
		s, err := rate.NewStayRestrictions(1, 0,
			[]time.Time{time.Date(2026, time.June, 10, 18, 30, 0, 0, time.UTC)}, nil, nil)
		require.NoError(t, err)
		assert.True(t, s.IsClosedToArrival(date(2026, time.June, 10)))
		assert.False(t, s.IsClosedToArrival(date(2026, time.June, 11)))
	})
}
