//go:build unit

package converter_test

import (
	"testing"
	"time"

	"rategrid/internal/domain/inventory"
	"rategrid/internal/infra/repository/converter"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReservationLinesRoundTrip(t *testing.T) {
	t.Run("lines survive the codec", func(t *testing.T) {
		lines := []inventory.ReservationLine{
			{
				BookingID:  uuid.New(),
				Rooms:      2,
				Source:     "direct",
				ReservedAt: time.Date(2026, time.June, 1, 14, 30, 0, 0, time.UTC),
			},
			{
				BookingID:  uuid.New(),
				Rooms:      1,
				Source:     "booking.com",
				ReservedAt: time.Date(2026, time.June, 2, 9, 15, 0, 0, time.UTC),
			},
		}

		data, err := converter.MarshalReservationLines(lines)
		require.NoError(t, err)

		got, err := converter.UnmarshalReservationLines(data)
		require.NoError(t, err)

		if diff := cmp.Diff(lines, got); diff != "" {
			t.Errorf("lines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty set collapses to nil", func(t *testing.T) {
		data, err := converter.MarshalReservationLines(nil)
		require.NoError(t, err)

		got, err := converter.UnmarshalReservationLines(data)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("malformed payload fails the decode", func(t *testing.T) {
		_, err := converter.UnmarshalReservationLines([]byte("{not an array"))
		require.Error(t, err)
	})
}

func TestChannelCountsRoundTrip(t *testing.T) {
	t.Run("counts survive the codec", func(t *testing.T) {
		counts := []inventory.ChannelCount{
			{
				Channel:   "booking.com",
				Available: 12,
				PushedAt:  time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC),
			},
			{
				Channel:   "expedia",
				Available: 9,
				PushedAt:  time.Date(2026, time.June, 1, 8, 5, 0, 0, time.UTC),
			},
		}

		data, err := converter.MarshalChannelCounts(counts)
		require.NoError(t, err)

		got, err := converter.UnmarshalChannelCounts(data)
		require.NoError(t, err)

		if diff := cmp.Diff(counts, got); diff != "" {
			t.Errorf("counts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty set collapses to nil", func(t *testing.T) {
		data, err := converter.MarshalChannelCounts(nil)
		require.NoError(t, err)

		got, err := converter.UnmarshalChannelCounts(data)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}
