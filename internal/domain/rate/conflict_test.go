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

// conflictPair builds two approved rates in the same group selling the same
// room type over the same window, which is the minimal conflicting setup.
func conflictPair() (*builder.RateBuilder, *builder.RateBuilder) {
	groupID, roomTypeID := uuid.New(), uuid.New()
	a := builder.NewRateBuilder().WithGroupID(groupID).WithRoomTypeID(roomTypeID).AsApproved()
	b := builder.NewRateBuilder().WithGroupID(groupID).WithRoomTypeID(roomTypeID).AsApproved().WithName("Summer BAR B")
	return a, b
}

func TestDetect(t *testing.T) {
	t.Run("identical approved rates collide as duplicates", func(t *testing.T) {
		ab, bb := conflictPair()
		a, b := ab.BuildReconstructed(), bb.BuildReconstructed()

		c, ok := rate.Detect(a, b, nil)
		require.True(t, ok)
		assert.Equal(t, a.ID(), c.RateID)
		assert.Equal(t, b.ID(), c.OtherRateID)
		assert.Equal(t, rate.ConflictDuplicate, c.Kind)
		assert.Equal(t, a.Validity().Start, c.Overlap.Start)
		assert.Equal(t, a.Validity().End, c.Overlap.End)
	})

	t.Run("overlap is the window intersection", func(t *testing.T) {
		ab, bb := conflictPair()
		bb.WithValidity(date(2026, time.August, 1), date(2026, time.October, 31))
		a, b := ab.BuildReconstructed(), bb.BuildReconstructed()

		c, ok := rate.Detect(a, b, nil)
		require.True(t, ok)
		assert.Equal(t, date(2026, time.August, 1), c.Overlap.Start)
		assert.Equal(t, date(2026, time.August, 31), c.Overlap.End)
	})

	t.Run("no conflict cases", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(a, b *builder.RateBuilder)
		}{
			{
				name:   "different groups",
				mutate: func(_, b *builder.RateBuilder) { b.WithGroupID(uuid.New()) },
			},
			{
				name:   "different rate types",
				mutate: func(_, b *builder.RateBuilder) { b.WithRateType(rate.TypeCorporate) },
			},
			{
				name:   "one side still pending",
				mutate: func(_, b *builder.RateBuilder) { b.WithStatus(rate.StatusPending) },
			},
			{
				name: "disjoint validity windows",
				mutate: func(_, b *builder.RateBuilder) {
					b.WithValidity(date(2026, time.September, 1), date(2026, time.October, 31))
				},
			},
			{
				name: "weekday masks never share a live day",
				mutate: func(a, b *builder.RateBuilder) {
					a.WithWeekdays(time.Friday)
					b.WithWeekdays(time.Monday)
				},
			},
			{
				name:   "disjoint room types",
				mutate: func(_, b *builder.RateBuilder) { b.WithRoomTypeID(uuid.New()) },
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ab, bb := conflictPair()
				tc.mutate(ab, bb)

				_, ok := rate.Detect(ab.BuildReconstructed(), bb.BuildReconstructed(), nil)
				assert.False(t, ok)
			})
		}
	})

	t.Run("a rate never conflicts with itself", func(t *testing.T) {
		ab, _ := conflictPair()
		a := ab.BuildReconstructed()

		_, ok := rate.Detect(a, a, nil)
		assert.False(t, ok)
	})

	t.Run("carve-outs can empty a raw overlap", func(t *testing.T) {
		ab, bb := conflictPair()
		a, b := ab.BuildReconstructed(), bb.BuildReconstructed()
		whole := rate.DateRange{Start: b.Validity().Start, End: b.Validity().End}
		require.NoError(t, b.CarveException(whole, time.Now(), uuid.New()))

		_, ok := rate.Detect(a, b, nil)
		assert.False(t, ok)
	})

	t.Run("property room types scope the intersection", func(t *testing.T) {
		ab, bb := conflictPair()
		a, b := ab.BuildReconstructed(), bb.BuildReconstructed()
		shared := a.RoomTypes()[0].RoomTypeID

		_, ok := rate.Detect(a, b, map[uuid.UUID]struct{}{shared: {}})
		assert.True(t, ok)

		_, ok = rate.Detect(a, b, map[uuid.UUID]struct{}{uuid.New(): {}})
		assert.False(t, ok)
	})
}

func TestClassify(t *testing.T) {
	t.Run("same priority with different pricing is a standoff", func(t *testing.T) {
		ab, bb := conflictPair()
		bb.WithBasePrice(decimal.NewFromInt(150))

		c, ok := rate.Detect(ab.BuildReconstructed(), bb.BuildReconstructed(), nil)
		require.True(t, ok)
		assert.Equal(t, rate.ConflictPriority, c.Kind)
	})

	t.Run("different priority with different pricing is an overlap", func(t *testing.T) {
		ab, bb := conflictPair()
		bb.WithBasePrice(decimal.NewFromInt(150)).WithPriority(8)

		c, ok := rate.Detect(ab.BuildReconstructed(), bb.BuildReconstructed(), nil)
		require.True(t, ok)
		assert.Equal(t, rate.ConflictOverlap, c.Kind)
	})

	t.Run("diverging channel terms break a duplicate", func(t *testing.T) {
		ab, bb := conflictPair()
		bb.WithChannel(rate.ChannelWeb, rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(10)})

		c, ok := rate.Detect(ab.BuildReconstructed(), bb.BuildReconstructed(), nil)
		require.True(t, ok)
		assert.Equal(t, rate.ConflictPriority, c.Kind)
	})

	t.Run("diverging stay rules break a duplicate", func(t *testing.T) {
		ab, bb := conflictPair()
		bb.WithStay(3, 0)

		c, ok := rate.Detect(ab.BuildReconstructed(), bb.BuildReconstructed(), nil)
		require.True(t, ok)
		assert.Equal(t, rate.ConflictPriority, c.Kind)
	})
}

func TestWinner(t *testing.T) {
	t0 := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("higher priority wins regardless of age", func(t *testing.T) {
		ab, bb := conflictPair()
		a := ab.WithPriority(8).WithCreatedAt(t0).BuildReconstructed()
		b := bb.WithPriority(3).WithCreatedAt(t0.Add(time.Hour)).BuildReconstructed()

		winner, loser := rate.Winner(a, b)
		assert.Equal(t, a.ID(), winner.ID())
		assert.Equal(t, b.ID(), loser.ID())

		winner, loser = rate.Winner(b, a)
		assert.Equal(t, a.ID(), winner.ID())
		assert.Equal(t, b.ID(), loser.ID())
	})

	t.Run("priority ties go to the newer rate", func(t *testing.T) {
		ab, bb := conflictPair()
		older := ab.WithCreatedAt(t0).BuildReconstructed()
		newer := bb.WithCreatedAt(t0.Add(time.Hour)).BuildReconstructed()

		winner, loser := rate.Winner(older, newer)
		assert.Equal(t, newer.ID(), winner.ID())
		assert.Equal(t, older.ID(), loser.ID())
	})
}
