package bridge

import (
	"log/slog"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	domerrors "github.com/hostview-dev/hostview-sdk/domain/errors"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// oneShotChooser guards a ChooserHandle against double resolution. All use
// is on the dispatcher goroutine, so a plain bool suffices. A second resolve
// is a contract violation: it is dropped and logged, never forwarded.
type oneShotChooser struct {
	inner     ports.ChooserHandle
	requestID string
	log       *slog.Logger
	resolved  bool
}

func newOneShotChooser(inner ports.ChooserHandle, requestID string, log *slog.Logger) *oneShotChooser {
	return &oneShotChooser{inner: inner, requestID: requestID, log: log}
}

func (h *oneShotChooser) Resolve(locators []entities.Locator) {
	if h.resolved {
		err := &domerrors.ContractError{Handle: "chooser", RequestID: h.requestID, Violation: "double-resolve"}
		h.log.Error("dropping repeated resolution", "err", err)
		return
	}
	h.resolved = true
	h.inner.Resolve(locators)
}

// oneShotGrant guards a GrantHandle the same way.
type oneShotGrant struct {
	inner     ports.GrantHandle
	requestID string
	log       *slog.Logger
	resolved  bool
}

func newOneShotGrant(inner ports.GrantHandle, requestID string, log *slog.Logger) *oneShotGrant {
	return &oneShotGrant{inner: inner, requestID: requestID, log: log}
}

func (h *oneShotGrant) Grant(caps []entities.Capability) {
	if !h.arm() {
		return
	}
	h.inner.Grant(caps)
}

func (h *oneShotGrant) Deny() {
	if !h.arm() {
		return
	}
	h.inner.Deny()
}

func (h *oneShotGrant) arm() bool {
	if h.resolved {
		err := &domerrors.ContractError{Handle: "grant", RequestID: h.requestID, Violation: "double-resolve"}
		h.log.Error("dropping repeated resolution", "err", err)
		return false
	}
	h.resolved = true
	return true
}
