//go:build unit

package converter_test

import (
	"testing"
	"time"

	"rategrid/internal/domain/rate"
	"rategrid/internal/infra/repository/converter"
	"rategrid/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func columnsFor(s rate.Snapshot) converter.RateColumns {
	return converter.RateColumns{
		ID:        s.ID,
		GroupID:   s.GroupID,
		Version:   s.Version,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func TestRateDocumentRoundTrip(t *testing.T) {
	t.Run("full snapshot survives the document codec", func(t *testing.T) {
		detectedAt := time.Date(2026, time.May, 20, 9, 30, 0, 0, time.UTC)
		resolvedAt := detectedAt.Add(48 * time.Hour)
		resolution := rate.ResolveAcceptCentralized
		overridePrice := decimal.NewFromInt(99)

		snap := builder.NewRateBuilder().
			AsApproved().
			WithWeekdays(time.Friday, time.Saturday).
			WithWindow(2, 90, "18:00").
			WithChannel(rate.ChannelWeb, rate.Adjustment{Type: rate.AdjustPercentage, Value: decimal.NewFromInt(5)}).
			WithRoomAdjustment(rate.Adjustment{Type: rate.AdjustFixed, Value: decimal.NewFromInt(-10)}).
			WithPropertyRate(rate.PropertyRate{
				PropertyID: uuid.New(),
				BasePrice:  &overridePrice,
				IsOverride: true,
				Sync:       rate.SyncStatus{State: rate.SyncSynced, LastSyncAt: &detectedAt},
			}).
			WithConflictLink(rate.ConflictLink{
				OtherRateID: uuid.New(),
				Kind:        rate.ConflictOverlap,
				Action:      rate.ConflictOverride,
				Overlap: rate.DateRange{
					Start: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
				},
				DetectedAt: detectedAt,
				ResolvedAt: &resolvedAt,
				Resolution: &resolution,
			}).
			BuildSnapshot()
		snap.Definition.Tags = []string{"summer", "flexible"}
		snap.Definition.Validity.Excluded = []rate.DateRange{
			{
				Start: time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC),
			},
		}
		snap.Definition.Stay.ClosedToArrival = []time.Time{
			time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		}
		snap.Definition.Stay.StayThrough = []rate.DateRange{
			{
				Start: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.August, 7, 0, 0, 0, 0, time.UTC),
			},
		}
		snap.Definition.Cancellation = rate.CancellationPolicy{
			Name:            "flex48",
			FreeBeforeHours: 48,
			PenaltyNights:   1,
			PenaltyPercent:  decimal.NewFromInt(100),
		}
		snap.ChangeLog = []rate.ChangeEntry{
			{At: detectedAt, Actor: snap.CreatedBy, Action: "created", FromVersion: 0, ToVersion: 1},
			{At: resolvedAt, Actor: snap.CreatedBy, Action: "transitioned", Detail: "approve", FromVersion: 1, ToVersion: 2},
		}

		doc, err := converter.MarshalRateDocument(snap)
		require.NoError(t, err)

		got, err := converter.UnmarshalRateDocument(doc, columnsFor(snap))
		require.NoError(t, err)

		if diff := cmp.Diff(snap, got); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bare draft keeps empty collections empty", func(t *testing.T) {
		snap := builder.NewRateBuilder().BuildSnapshot()

		doc, err := converter.MarshalRateDocument(snap)
		require.NoError(t, err)

		got, err := converter.UnmarshalRateDocument(doc, columnsFor(snap))
		require.NoError(t, err)

		require.Nil(t, got.Definition.Channels)
		require.Nil(t, got.PropertyRates)
		require.Nil(t, got.ConflictLinks)
		require.Nil(t, got.ChangeLog)
		if diff := cmp.Diff(snap, got); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("identity columns come from the row, not the document", func(t *testing.T) {
		snap := builder.NewRateBuilder().WithVersion(7).BuildSnapshot()

		doc, err := converter.MarshalRateDocument(snap)
		require.NoError(t, err)

		cols := columnsFor(snap)
		cols.Version = 8
		cols.UpdatedAt = snap.UpdatedAt.Add(time.Minute)

		got, err := converter.UnmarshalRateDocument(doc, cols)
		require.NoError(t, err)
		require.Equal(t, int64(8), got.Version)
		require.True(t, got.UpdatedAt.Equal(snap.UpdatedAt.Add(time.Minute)))
	})

	t.Run("malformed document fails the decode", func(t *testing.T) {
		_, err := converter.UnmarshalRateDocument([]byte("{not json"), converter.RateColumns{})
		require.Error(t, err)
	})
}
