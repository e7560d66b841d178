package bridge

import (
	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// chooserSlot holds at most one outstanding file-chooser request as a tagged
// state value. Transitions are pure so the supersede rule is testable
// without any renderer or picker in the loop.
type chooserSlot struct {
	state  entities.SlotState
	handle ports.ChooserHandle
	req    entities.ChooserRequest
}

// take stores a new pending request. When a request was already pending it
// is displaced and returned; the caller must resolve the displaced handle
// with an empty result before proceeding.
func (s *chooserSlot) take(h ports.ChooserHandle, req entities.ChooserRequest) (displaced ports.ChooserHandle, displacedReq entities.ChooserRequest, had bool) {
	if s.state == entities.SlotAwaiting {
		displaced, displacedReq, had = s.handle, s.req, true
	}
	s.state = entities.SlotAwaiting
	s.handle = h
	s.req = req
	return displaced, displacedReq, had
}

// clear returns the slot to idle, handing back the pending handle. ok is
// false when nothing was pending.
func (s *chooserSlot) clear() (h ports.ChooserHandle, req entities.ChooserRequest, ok bool) {
	if s.state != entities.SlotAwaiting {
		return nil, entities.ChooserRequest{}, false
	}
	h, req = s.handle, s.req
	s.state = entities.SlotIdle
	s.handle = nil
	s.req = entities.ChooserRequest{}
	return h, req, true
}

// pending reports the slot state without transitioning it.
func (s *chooserSlot) pending() bool {
	return s.state == entities.SlotAwaiting
}

// permissionSlot holds at most one outstanding consent prompt, tagged with
// the flow that owns it. A page-originated request carries a grant handle;
// a chooser-originated implicit check does not, its outcome feeds the
// chooser flow instead.
type permissionSlot struct {
	state  entities.SlotState
	owner  entities.PermissionOwner
	handle ports.GrantHandle
	req    entities.PermissionRequest
}

// takePage stores a page-originated request, displacing any pending one.
// A displaced page request must be denied by the caller.
func (s *permissionSlot) takePage(h ports.GrantHandle, req entities.PermissionRequest) (displaced ports.GrantHandle, displacedReq entities.PermissionRequest, had bool) {
	displaced, displacedReq, had = s.displace()
	s.state = entities.SlotAwaiting
	s.owner = entities.OwnerPage
	s.handle = h
	s.req = req
	return displaced, displacedReq, had
}

// takeChooser stores a chooser-originated implicit check, displacing any
// pending page request.
func (s *permissionSlot) takeChooser(req entities.PermissionRequest) (displaced ports.GrantHandle, displacedReq entities.PermissionRequest, had bool) {
	displaced, displacedReq, had = s.displace()
	s.state = entities.SlotAwaiting
	s.owner = entities.OwnerChooser
	s.handle = nil
	s.req = req
	return displaced, displacedReq, had
}

// retargetChooser re-binds an outstanding chooser-owned check to a new
// request from the same origin. The dialog already on screen asks the right
// question; its answer settles the new request instead.
func (s *permissionSlot) retargetChooser(req entities.PermissionRequest) bool {
	if s.state != entities.SlotAwaiting || s.owner != entities.OwnerChooser || s.req.Origin != req.Origin {
		return false
	}
	s.req = req
	return true
}

func (s *permissionSlot) displace() (ports.GrantHandle, entities.PermissionRequest, bool) {
	if s.state != entities.SlotAwaiting || s.handle == nil {
		return nil, entities.PermissionRequest{}, false
	}
	return s.handle, s.req, true
}

// clear returns the slot to idle, handing back the owner tag, handle, and
// request. ok is false when nothing was pending.
func (s *permissionSlot) clear() (owner entities.PermissionOwner, h ports.GrantHandle, req entities.PermissionRequest, ok bool) {
	if s.state != entities.SlotAwaiting {
		return entities.OwnerNone, nil, entities.PermissionRequest{}, false
	}
	owner, h, req = s.owner, s.handle, s.req
	s.state = entities.SlotIdle
	s.owner = entities.OwnerNone
	s.handle = nil
	s.req = entities.PermissionRequest{}
	return owner, h, req, true
}

// currentOwner reports the owner tag without transitioning the slot.
func (s *permissionSlot) currentOwner() entities.PermissionOwner {
	if s.state != entities.SlotAwaiting {
		return entities.OwnerNone
	}
	return s.owner
}
