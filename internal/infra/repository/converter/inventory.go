package converter

import (
	"encoding/json"
	"time"

	"rategrid/internal/domain/inventory"

	"github.com/google/uuid"
)

type reservationLineDoc struct {
	BookingID  uuid.UUID `json:"bookingId"`
	Rooms      int       `json:"rooms"`
	Source     string    `json:"source"`
	ReservedAt time.Time `json:"reservedAt"`
}

type channelCountDoc struct {
	Channel   string    `json:"channel"`
	Available int       `json:"available"`
	PushedAt  time.Time `json:"pushedAt"`
}

func MarshalReservationLines(lines []inventory.ReservationLine) ([]byte, error) {
	docs := make([]reservationLineDoc, len(lines))
	for i, l := range lines {
		docs[i] = reservationLineDoc(l)
	}
	return json.Marshal(docs)
}

func UnmarshalReservationLines(data []byte) ([]inventory.ReservationLine, error) {
	var docs []reservationLineDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	lines := make([]inventory.ReservationLine, len(docs))
	for i, d := range docs {
		lines[i] = inventory.ReservationLine(d)
	}
	return lines, nil
}

func MarshalChannelCounts(counts []inventory.ChannelCount) ([]byte, error) {
	docs := make([]channelCountDoc, len(counts))
	for i, c := range counts {
		docs[i] = channelCountDoc(c)
	}
	return json.Marshal(docs)
}

func UnmarshalChannelCounts(data []byte) ([]inventory.ChannelCount, error) {
	var docs []channelCountDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	counts := make([]inventory.ChannelCount, len(docs))
	for i, d := range docs {
		counts[i] = inventory.ChannelCount(d)
	}
	return counts, nil
}
