// Package property holds the reference data rates and inventory hang off:
// properties with their overbooking policy and channel mappings, room types,
// and the property groups rates are authored against.
package property

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyPropertyName    = errors.New("property name cannot be empty")
	ErrNegativeLimit        = errors.New("overbooking limit cannot be negative")
	ErrEmptyRoomTypeCode    = errors.New("room type code cannot be empty")
	ErrNegativeOccupancy    = errors.New("max occupancy must be positive")
	ErrNegativeRoomCount    = errors.New("total rooms cannot be negative")
	ErrNegativeBaseRate     = errors.New("base rate cannot be negative")
	ErrDuplicateMapping     = errors.New("channel mapping already exists")
	ErrMappingNotFound      = errors.New("no room type mapped for this channel code")
	ErrEmptyGroup           = errors.New("group must contain at least one property")
	ErrDuplicateGroupMember = errors.New("property listed in group twice")
)

// ChannelMapping ties a channel's external room-type code to an internal
// room type. (Channel, ExternalCode) pairs are unique per property.
type ChannelMapping struct {
	Channel      string
	ExternalCode string
	RoomTypeID   uuid.UUID
}

type Property struct {
	id               uuid.UUID
	name             string
	timezone         string
	currency         string
	allowOverbooking bool
	overbookingLimit int
	channelMappings  []ChannelMapping
	createdAt        time.Time
}

func NewProperty(id uuid.UUID, name, timezone, currency string, allowOverbooking bool, overbookingLimit int, mappings []ChannelMapping) (*Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyPropertyName
	}
	if overbookingLimit < 0 {
		return nil, ErrNegativeLimit
	}
	seen := make(map[string]struct{}, len(mappings))
	for _, m := range mappings {
		key := m.Channel + "\x00" + m.ExternalCode
		if _, dup := seen[key]; dup {
			return nil, ErrDuplicateMapping
		}
		seen[key] = struct{}{}
	}
	return &Property{
		id:               id,
		name:             name,
		timezone:         timezone,
		currency:         currency,
		allowOverbooking: allowOverbooking,
		overbookingLimit: overbookingLimit,
		channelMappings:  mappings,
	}, nil
}

func (p *Property) ID() uuid.UUID                     { return p.id }
func (p *Property) Name() string                      { return p.name }
func (p *Property) Timezone() string                  { return p.timezone }
func (p *Property) Currency() string                  { return p.currency }
func (p *Property) AllowOverbooking() bool            { return p.allowOverbooking }
func (p *Property) OverbookingLimit() int             { return p.overbookingLimit }
func (p *Property) ChannelMappings() []ChannelMapping { return p.channelMappings }
func (p *Property) CreatedAt() time.Time              { return p.createdAt }

// ResolveRoomType maps a channel's external room-type code to the internal
// room type.
func (p *Property) ResolveRoomType(channel, externalCode string) (uuid.UUID, error) {
	for _, m := range p.channelMappings {
		if m.Channel == channel && m.ExternalCode == externalCode {
			return m.RoomTypeID, nil
		}
	}
	return uuid.Nil, ErrMappingNotFound
}

type RoomType struct {
	id           uuid.UUID
	propertyID   uuid.UUID
	code         string
	name         string
	maxOccupancy int
	baseRate     decimal.Decimal
	currency     string
	totalRooms   int
	category     string
}

func NewRoomType(id, propertyID uuid.UUID, code, name string, maxOccupancy int, baseRate decimal.Decimal, currency string, totalRooms int, category string) (*RoomType, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyRoomTypeCode
	}
	if maxOccupancy <= 0 {
		return nil, ErrNegativeOccupancy
	}
	if totalRooms < 0 {
		return nil, ErrNegativeRoomCount
	}
	if baseRate.IsNegative() {
		return nil, ErrNegativeBaseRate
	}
	return &RoomType{
		id:           id,
		propertyID:   propertyID,
		code:         code,
		name:         name,
		maxOccupancy: maxOccupancy,
		baseRate:     baseRate,
		currency:     currency,
		totalRooms:   totalRooms,
		category:     category,
	}, nil
}

func (rt *RoomType) ID() uuid.UUID             { return rt.id }
func (rt *RoomType) PropertyID() uuid.UUID     { return rt.propertyID }
func (rt *RoomType) Code() string              { return rt.code }
func (rt *RoomType) Name() string              { return rt.name }
func (rt *RoomType) MaxOccupancy() int         { return rt.maxOccupancy }
func (rt *RoomType) BaseRate() decimal.Decimal { return rt.baseRate }
func (rt *RoomType) Currency() string          { return rt.currency }
func (rt *RoomType) TotalRooms() int           { return rt.totalRooms }
func (rt *RoomType) Category() string          { return rt.category }

// Group is the authorship scope of a centralized rate.
type Group struct {
	id          uuid.UUID
	name        string
	propertyIDs []uuid.UUID
}

func NewGroup(id uuid.UUID, name string, propertyIDs []uuid.UUID) (*Group, error) {
	if len(propertyIDs) == 0 {
		return nil, ErrEmptyGroup
	}
	seen := make(map[uuid.UUID]struct{}, len(propertyIDs))
	for _, pid := range propertyIDs {
		if _, dup := seen[pid]; dup {
			return nil, ErrDuplicateGroupMember
		}
		seen[pid] = struct{}{}
	}
	return &Group{id: id, name: name, propertyIDs: propertyIDs}, nil
}

func (g *Group) ID() uuid.UUID            { return g.id }
func (g *Group) Name() string             { return g.name }
func (g *Group) PropertyIDs() []uuid.UUID { return g.propertyIDs }

func (g *Group) Contains(propertyID uuid.UUID) bool {
	for _, pid := range g.propertyIDs {
		if pid == propertyID {
			return true
		}
	}
	return false
}
