//go:build unit

package request_test

import (
	"testing"

	"rategrid/internal/domain/inventory"
	"rategrid/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveRequestToInput(t *testing.T) {
	propertyID, roomTypeID, bookingID := uuid.New(), uuid.New(), uuid.New()

	t.Run("converts into a domain input", func(t *testing.T) {
		req := request.ReserveRequest{
			PropertyID: propertyID,
			RoomTypeID: roomTypeID,
			CheckIn:    "2026-07-01",
			CheckOut:   "2026-07-04",
			Rooms:      2,
			BookingID:  bookingID,
			Source:     "booking.com",
		}

		in, err := req.ToInput()
		require.NoError(t, err)
		assert.Equal(t, inventory.ReserveInput{
			PropertyID: propertyID,
			RoomTypeID: roomTypeID,
			CheckIn:    in.CheckIn,
			CheckOut:   in.CheckOut,
			Rooms:      2,
			BookingID:  bookingID,
			Source:     "booking.com",
		}, in)
		assert.Equal(t, "2026-07-01", in.CheckIn.Format("2006-01-02"))
		assert.Equal(t, "2026-07-04", in.CheckOut.Format("2006-01-02"))
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		req := request.ReserveRequest{CheckIn: "07/01/2026", CheckOut: "2026-07-04"}
		_, err := req.ToInput()
		assert.Error(t, err)
	})
}

func TestBlockRequestToInput(t *testing.T) {
	req := request.BlockRequest{
		PropertyID: uuid.New(),
		RoomTypeID: uuid.New(),
		From:       "2026-07-10",
		To:         "2026-07-12",
		Rooms:      3,
		Reason:     "lobby renovation",
	}

	in, err := req.ToInput()
	require.NoError(t, err)
	assert.Equal(t, req.PropertyID, in.PropertyID)
	assert.Equal(t, 3, in.Rooms)
	assert.Equal(t, "lobby renovation", in.Reason)
	assert.True(t, in.To.After(in.From))
}
