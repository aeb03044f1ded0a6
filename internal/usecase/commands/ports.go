package commands

import (
	"context"
	"time"

	"rategrid/internal/domain/event"
	"rategrid/internal/domain/rate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher delivers domain events after a mutation commits. Delivery
// failures are the publisher's problem; commands log and move on.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.Event) error
}

// RateCache invalidation happens on every rate mutation; the read side
// repopulates lazily.
type RateCache interface {
	Invalidate(ctx context.Context, rateID uuid.UUID) error
}

// Write-side snapshots prevent dependency on read-side query types.
type GroupSnapshot struct {
	ID          uuid.UUID
	Name        string
	PropertyIDs []uuid.UUID
}

type PropertySnapshot struct {
	ID               uuid.UUID
	Name             string
	Timezone         string
	Currency         string
	AllowOverbooking bool
	OverbookingLimit int
	ChannelMappings  []ChannelMappingSnapshot
}

type ChannelMappingSnapshot struct {
	Channel      string
	ExternalCode string
	RoomTypeID   uuid.UUID
}

type RoomTypeSnapshot struct {
	ID           uuid.UUID
	PropertyID   uuid.UUID
	Code         string
	Name         string
	MaxOccupancy int
	BaseRate     decimal.Decimal
	Currency     string
	TotalRooms   int
	Category     string
}

// TargetFailure is one property's terminal distribution error.
type TargetFailure struct {
	PropertyID uuid.UUID `json:"propertyId"`
	Reason     string    `json:"reason"`
	Error      string    `json:"error,omitempty"`
}

// DistributionResult is the batch payload a distribute call returns.
// Per-target failures live here instead of failing the whole call.
type DistributionResult struct {
	RateID     uuid.UUID         `json:"rateId"`
	Mode       string            `json:"mode"`
	Overall    rate.SyncState    `json:"overall"`
	Success    []uuid.UUID       `json:"success"`
	Failed     []TargetFailure   `json:"failed"`
	Conflicts  []ConflictSummary `json:"conflicts,omitempty"`
	StartedAt  time.Time         `json:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt"`
}

type ConflictSummary struct {
	OtherRateID  uuid.UUID     `json:"otherRateId"`
	Kind         string        `json:"kind"`
	Overlap      OverlapWindow `json:"overlap"`
	AutoResolved bool          `json:"autoResolved"`
	Action       string        `json:"action"`
}

type OverlapWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
