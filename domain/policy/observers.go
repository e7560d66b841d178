package policy

import (
	"log/slog"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// Ensure implementations satisfy the interface.
var _ ports.GrantObserver = (*SlogObserver)(nil)
var _ ports.GrantObserver = (*NopObserver)(nil)

// SlogObserver logs grant decisions through slog.
type SlogObserver struct{}

func (o *SlogObserver) OnGrant(req entities.PermissionRequest, auto bool) {
	slog.Info("capability granted",
		"origin", req.Origin,
		"capabilities", capabilityNames(req.Capabilities),
		"auto", auto,
	)
}

func (o *SlogObserver) OnDenial(req entities.PermissionRequest, reason string) {
	slog.Warn("capability denied",
		"origin", req.Origin,
		"capabilities", capabilityNames(req.Capabilities),
		"reason", reason,
	)
}

// NopObserver does nothing.
type NopObserver struct{}

func (o *NopObserver) OnGrant(entities.PermissionRequest, bool) {}

func (o *NopObserver) OnDenial(entities.PermissionRequest, string) {}

func capabilityNames(caps []entities.Capability) []string {
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = string(c)
	}
	return names
}
