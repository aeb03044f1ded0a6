package rate

type RateType string

const (
	TypeBAR         RateType = "bar"
	TypeCorporate   RateType = "corporate"
	TypePromotional RateType = "promotional"
	TypePackage     RateType = "package"
	TypeGroup       RateType = "group"
	TypeMember      RateType = "member"
	TypeGovernment  RateType = "government"
	TypeNegotiated  RateType = "negotiated"
)

func (t RateType) String() string {
	return string(t)
}

func (t RateType) IsValid() bool {
	switch t {
	case TypeBAR, TypeCorporate, TypePromotional, TypePackage,
		TypeGroup, TypeMember, TypeGovernment, TypeNegotiated:
		return true
	default:
		return false
	}
}

type ApprovalStatus string

const (
	StatusDraft    ApprovalStatus = "draft"
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
	StatusExpired  ApprovalStatus = "expired"
)

func (s ApprovalStatus) String() string {
	return string(s)
}

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// IsDeletable reports whether a rate in this status may be removed.
func (s ApprovalStatus) IsDeletable() bool {
	return s == StatusDraft || s == StatusRejected
}

type TransitionAction string

const (
	ActionSubmit  TransitionAction = "submit"
	ActionApprove TransitionAction = "approve"
	ActionReject  TransitionAction = "reject"
	ActionExpire  TransitionAction = "expire"
)

func (a TransitionAction) IsValid() bool {
	switch a {
	case ActionSubmit, ActionApprove, ActionReject, ActionExpire:
		return true
	default:
		return false
	}
}

type Channel string

const (
	ChannelDirect     Channel = "direct"
	ChannelWeb        Channel = "web"
	ChannelBookingCom Channel = "booking.com"
	ChannelExpedia    Channel = "expedia"
	ChannelAgoda      Channel = "agoda"
	ChannelGDS        Channel = "gds"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelDirect, ChannelWeb, ChannelBookingCom, ChannelExpedia, ChannelAgoda, ChannelGDS:
		return true
	default:
		return false
	}
}

type AdjustmentType string

const (
	AdjustPercentage AdjustmentType = "percentage"
	AdjustFixed      AdjustmentType = "fixed"
)

func (t AdjustmentType) IsValid() bool {
	return t == AdjustPercentage || t == AdjustFixed
}

type DistributionMode string

const (
	ModeBroadcast   DistributionMode = "broadcast"
	ModeSelective   DistributionMode = "selective"
	ModeInheritance DistributionMode = "inheritance"
	ModeOverride    DistributionMode = "override"
)

func (m DistributionMode) IsValid() bool {
	switch m {
	case ModeBroadcast, ModeSelective, ModeInheritance, ModeOverride:
		return true
	default:
		return false
	}
}

// SyncState tracks distribution progress, both per property row and for the
// rate as a whole. Per-property rows only ever hold pending/synced/failed;
// syncing and partial describe the aggregate.
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSyncing SyncState = "syncing"
	SyncSynced  SyncState = "synced"
	SyncPartial SyncState = "partial"
	SyncFailed  SyncState = "failed"
)

func (s SyncState) String() string {
	return string(s)
}

type ConflictKind string

const (
	ConflictDuplicate ConflictKind = "duplicate"
	ConflictOverlap   ConflictKind = "overlap"
	ConflictPriority  ConflictKind = "priority"
)

// ConflictAction is the standing disposition stored on a conflict link.
type ConflictAction string

const (
	ConflictIgnore   ConflictAction = "ignore"
	ConflictOverride ConflictAction = "override"
	ConflictMerge    ConflictAction = "merge"
	ConflictAlert    ConflictAction = "alert"
)

// Resolution is an operator decision applied to a detected conflict.
type Resolution string

const (
	ResolveAcceptCentralized Resolution = "accept_centralized"
	ResolveAcceptProperty    Resolution = "accept_property"
	ResolveCreateException   Resolution = "create_exception"
)

func (r Resolution) IsValid() bool {
	switch r {
	case ResolveAcceptCentralized, ResolveAcceptProperty, ResolveCreateException:
		return true
	default:
		return false
	}
}

const (
	MinPriority = 1
	MaxPriority = 10
)
