package ports

import "github.com/hostview-dev/hostview-sdk/domain/entities"

// GrantObserver is notified of grant decisions. Implementations can log,
// collect metrics, or take other actions. Auto-grants of unguarded
// capabilities are reported too, so the least-friction default stays
// observable.
type GrantObserver interface {
	// OnGrant is called when a capability request is granted.
	// auto is true when no prompt was shown.
	OnGrant(req entities.PermissionRequest, auto bool)

	// OnDenial is called when a capability request is denied.
	OnDenial(req entities.PermissionRequest, reason string)
}
