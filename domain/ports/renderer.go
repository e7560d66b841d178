package ports

import (
	"context"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
)

// ChooserHandle is the one-shot completion handle for a pending file-chooser
// request. Resolve must be invoked exactly once; an empty locator list
// signals that no selection was made. Invoking it more than once, or never,
// is a contract violation.
type ChooserHandle interface {
	Resolve(locators []entities.Locator)
}

// GrantHandle is the one-shot completion handle for a pending permission
// request. Exactly one of Grant or Deny must be invoked, exactly once.
type GrantHandle interface {
	Grant(caps []entities.Capability)
	Deny()
}

// RendererEvents receives page-originated events from a Renderer. The bridge
// controller implements this. Implementations may be called from any
// goroutine; the controller serializes internally.
type RendererEvents interface {
	// OnChooserRequested is raised when the page needs user-supplied file
	// contents. The return value reports whether the event was consumed;
	// the controller always consumes it.
	OnChooserRequested(h ChooserHandle, req entities.ChooserRequest) bool

	// OnCapabilityRequested is raised when page script invokes a
	// permission-gated API.
	OnCapabilityRequested(h GrantHandle, req entities.PermissionRequest)
}

// Renderer is the embedded component executing the hosted web application.
// It loads a single fixed address at startup; no further navigation policy
// is enforced by the bridge.
type Renderer interface {
	// Start loads the application and begins delivering events to sink.
	// It returns once the initial navigation has been issued.
	Start(ctx context.Context, sink RendererEvents) error

	// CanGoBack reports whether the renderer has navigable history behind
	// the current entry.
	CanGoBack() bool

	// GoBack steps back one history entry.
	GoBack() error

	// Close tears down the renderer.
	Close() error
}
