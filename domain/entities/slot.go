package entities

// SlotState is the lifecycle state of a single outstanding-request slot.
// Each slot goes IDLE -> AWAITING -> IDLE on resolution; a request arriving
// while one is pending displaces the old one, which is force-resolved
// negatively before the slot is reused.
type SlotState int

const (
	SlotIdle SlotState = iota
	SlotAwaiting
)

// String returns the human-readable name of the slot state.
func (s SlotState) String() string {
	switch s {
	case SlotIdle:
		return "idle"
	case SlotAwaiting:
		return "awaiting"
	default:
		return "unknown"
	}
}

// PermissionOwner tags which flow an outstanding consent prompt belongs to,
// so a prompt result is routed back to whichever flow was pending instead of
// being inferred from null-checks.
type PermissionOwner int

const (
	// OwnerNone: no prompt outstanding.
	OwnerNone PermissionOwner = iota

	// OwnerPage: page script requested the capability directly.
	OwnerPage

	// OwnerChooser: implicit camera check on behalf of a file-chooser flow.
	OwnerChooser
)

// String returns the human-readable name of the owner tag.
func (o PermissionOwner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerPage:
		return "page"
	case OwnerChooser:
		return "chooser"
	default:
		return "unknown"
	}
}
