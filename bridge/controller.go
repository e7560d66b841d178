package bridge

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	domerrors "github.com/hostview-dev/hostview-sdk/domain/errors"
	"github.com/hostview-dev/hostview-sdk/domain/policy"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// controllerConfig holds configuration for the Controller.
type controllerConfig struct {
	logger      *slog.Logger
	policy      *policy.Policy
	dispatcher  *Dispatcher
	captureExt  string
	acceptTypes []string
}

func defaultControllerConfig() controllerConfig {
	return controllerConfig{
		logger:      slog.Default(),
		policy:      policy.New(),
		dispatcher:  nil, // created in NewController unless injected
		captureExt:  ".jpg",
		acceptTypes: []string{"image/*"},
	}
}

// Option configures the Controller.
type Option func(*controllerConfig)

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *controllerConfig) {
		c.logger = l
	}
}

// WithPolicy sets the grant policy engine.
func WithPolicy(p *policy.Policy) Option {
	return func(c *controllerConfig) {
		c.policy = p
	}
}

// WithDispatcher injects a dispatcher shared with the infrastructure
// adapters, so their result callbacks land on the controller goroutine.
func WithDispatcher(d *Dispatcher) Option {
	return func(c *controllerConfig) {
		c.dispatcher = d
	}
}

// WithCaptureExt sets the file extension for pre-created capture targets.
func WithCaptureExt(ext string) Option {
	return func(c *controllerConfig) {
		c.captureExt = ext
	}
}

// WithAcceptTypes sets the content-picker MIME restriction used when the
// page does not supply one.
func WithAcceptTypes(types []string) Option {
	return func(c *controllerConfig) {
		c.acceptTypes = types
	}
}

// Deps are the controller's external collaborators. Renderer may be nil for
// embedded use where events are fed directly; everything else is required.
type Deps struct {
	Renderer ports.Renderer
	Prompter ports.Prompter
	Picker   ports.Picker
	Share    ports.ShareProvider
	Store    ports.GrantStore
	Notifier ports.Notifier
}

// Controller is the single point of contact between the hosted page and the
// host's asynchronous capability subsystems. All state below the dispatcher
// is touched only from the dispatcher goroutine.
type Controller struct {
	cfg        controllerConfig
	deps       Deps
	log        *slog.Logger
	dispatcher *Dispatcher

	// dispatcher-goroutine state
	chooser    chooserSlot
	permission permissionSlot
	capture    *entities.CaptureTarget
	grants     *entities.GrantSet
}

var _ ports.RendererEvents = (*Controller)(nil)

// NewController creates a Controller.
func NewController(deps Deps, opts ...Option) *Controller {
	cfg := defaultControllerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.dispatcher == nil {
		cfg.dispatcher = NewDispatcher()
	}
	if deps.Notifier == nil {
		deps.Notifier = &SlogNotifier{}
	}
	return &Controller{
		cfg:        cfg,
		deps:       deps,
		log:        cfg.logger.With("component", "bridge"),
		dispatcher: cfg.dispatcher,
		grants:     &entities.GrantSet{},
	}
}

// Dispatcher returns the controller's dispatcher, for adapters that post
// result callbacks.
func (c *Controller) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Run loads persisted grants, starts the renderer against the fixed
// application address, and processes events until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	// FIFO ordering makes the grant load run before any renderer event.
	c.dispatcher.Post(c.reloadGrants)
	if c.deps.Renderer != nil {
		if err := c.deps.Renderer.Start(ctx, c); err != nil {
			return &domerrors.RendererError{Operation: "start", Err: err}
		}
		defer func() {
			if err := c.deps.Renderer.Close(); err != nil {
				c.log.Warn("renderer close failed", "err", err)
			}
		}()
	}
	c.dispatcher.Run(ctx)
	return nil
}

func (c *Controller) reloadGrants() {
	grants, err := c.deps.Store.Load()
	if err != nil {
		c.log.Warn("grant store load failed, starting empty", "err", err)
		grants = &entities.GrantSet{}
	}
	c.grants = grants
}

// OnChooserRequested implements ports.RendererEvents. It always reports the
// event as handled; the renderer's default chooser behavior is never used.
func (c *Controller) OnChooserRequested(h ports.ChooserHandle, req entities.ChooserRequest) bool {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	c.dispatcher.Post(func() {
		c.handleChooserRequested(newOneShotChooser(h, req.ID, c.log), req)
	})
	return true
}

// OnCapabilityRequested implements ports.RendererEvents.
func (c *Controller) OnCapabilityRequested(h ports.GrantHandle, req entities.PermissionRequest) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	c.dispatcher.Post(func() {
		c.handleCapabilityRequested(newOneShotGrant(h, req.ID, c.log), req)
	})
}

// OnBackRequested steps the renderer back one history entry when possible.
// It reports whether the event was consumed; an unconsumed event closes the
// host.
func (c *Controller) OnBackRequested() bool {
	r := c.deps.Renderer
	if r == nil || !r.CanGoBack() {
		return false
	}
	if err := r.GoBack(); err != nil {
		c.log.Warn("history step-back failed", "err", err)
	}
	return true
}

func (c *Controller) handleChooserRequested(h ports.ChooserHandle, req entities.ChooserRequest) {
	c.log.Info("file chooser requested", "request", req.ID, "origin", req.Origin, "capture_hint", req.CaptureHint)

	// A second chooser arriving while one is pending is a renderer protocol
	// violation; the stale handle is resolved empty so the page never hangs.
	if displaced, displacedReq, had := c.chooser.take(h, req); had {
		c.log.Warn("superseding unresolved chooser request", "stale", displacedReq.ID, "new", req.ID)
		displaced.Resolve(nil)
	}

	permReq := entities.PermissionRequest{
		ID:           req.ID,
		Origin:       req.Origin,
		Capabilities: []entities.Capability{entities.CapabilityVideoCapture},
	}
	if c.cfg.policy.Decide(permReq, c.grants) == policy.DecisionGrant {
		c.launchChooser()
		return
	}

	if c.permission.retargetChooser(permReq) {
		c.log.Info("reusing outstanding camera prompt", "request", req.ID)
		return
	}
	if displaced, displacedReq, had := c.permission.takeChooser(permReq); had {
		c.log.Warn("superseding unresolved permission request", "stale", displacedReq.ID, "new", req.ID)
		displaced.Deny()
		c.cfg.policy.RecordDenial(displacedReq, "superseded")
	}
	c.deps.Prompter.Prompt(permReq, c.handlePromptResult)
}

func (c *Controller) handleCapabilityRequested(h ports.GrantHandle, req entities.PermissionRequest) {
	c.log.Info("capability requested", "request", req.ID, "origin", req.Origin, "risk", entities.AssessRequest(req).String())

	if c.cfg.policy.Decide(req, c.grants) == policy.DecisionGrant {
		h.Grant(req.Capabilities)
		c.cfg.policy.RecordGrant(req, true)
		return
	}

	if displaced, displacedReq, had := c.permission.takePage(h, req); had {
		c.log.Warn("superseding unresolved permission request", "stale", displacedReq.ID, "new", req.ID)
		displaced.Deny()
		c.cfg.policy.RecordDenial(displacedReq, "superseded")
	}
	c.deps.Prompter.Prompt(req, c.handlePromptResult)
}

// handlePromptResult runs once per consent prompt dismissal and routes the
// outcome to whichever flow owns the pending slot.
func (c *Controller) handlePromptResult(res entities.PromptResult) {
	owner, h, req, ok := c.permission.clear()
	if !ok {
		err := &domerrors.ContractError{Handle: "grant", Violation: "stray-result"}
		c.log.Error("prompt result with no pending request", "err", err)
		return
	}

	if res.Granted && res.Always {
		c.persistGrant(req)
	}

	switch owner {
	case entities.OwnerPage:
		if res.Granted {
			h.Grant(req.Capabilities)
			c.cfg.policy.RecordGrant(req, false)
			return
		}
		h.Deny()
		c.cfg.policy.RecordDenial(req, "user denied")
		c.deps.Notifier.Notify("Permission denied")

	case entities.OwnerChooser:
		if res.Granted {
			c.cfg.policy.RecordGrant(req, false)
			c.launchChooser()
			return
		}
		c.cfg.policy.RecordDenial(req, "user denied")
		c.deps.Notifier.Notify("Camera permission denied")
		// The implicit check belonged to a waiting chooser; resolve it empty
		// instead of leaving the page promise hanging.
		if ch, chReq, had := c.chooser.clear(); had {
			c.log.Info("resolving chooser empty after denied camera check", "request", chReq.ID)
			ch.Resolve(nil)
		}
	}
}

// launchChooser pre-creates the capture destination and presents the
// composite dialog: camera and content picker as equally weighted
// alternatives. On destination failure the camera option is omitted and the
// gallery alternative remains available.
func (c *Controller) launchChooser() {
	if !c.chooser.pending() {
		c.log.Warn("chooser launch with no pending request")
		return
	}
	req := c.chooser.req

	target, err := c.deps.Share.CreateCaptureTarget(c.cfg.captureExt)
	if err != nil {
		cerr := &domerrors.ChooserError{Stage: "capture-target", Err: err}
		c.log.Warn("capture destination unavailable, offering picker only", "err", cerr)
		c.deps.Notifier.Notify("Camera unavailable")
		target = nil
	}
	c.capture = target

	accept := req.AcceptTypes
	if len(accept) == 0 {
		accept = c.cfg.acceptTypes
	}
	c.deps.Picker.Launch(ports.ChooserSpec{
		Request:     req,
		Capture:     target,
		AcceptTypes: accept,
	}, func(res entities.PickerResult) {
		c.handlePickerResult(req.ID, res)
	})
}

// handlePickerResult runs once per composite chooser completion. requestID
// binds the result to the launch that produced it; a dialog abandoned by a
// superseding request cannot settle the request that displaced it.
func (c *Controller) handlePickerResult(requestID string, res entities.PickerResult) {
	if c.chooser.pending() && c.chooser.req.ID != requestID {
		c.log.Warn("dropping result from superseded chooser dialog", "request", requestID, "pending", c.chooser.req.ID)
		return
	}

	target := c.capture
	c.capture = nil

	h, req, ok := c.chooser.clear()
	if !ok {
		err := &domerrors.ContractError{Handle: "chooser", Violation: "stray-result"}
		c.log.Error("picker result with no pending request", "err", err)
		return
	}
	c.log.Info("chooser completed", "request", req.ID, "code", res.Code.String())

	switch {
	case res.Code == entities.PickerCancelled:
		h.Resolve(nil)
	case res.Data != "":
		h.Resolve([]entities.Locator{res.Data})
	case target != nil:
		// Non-cancelled result without a data payload: the camera wrote the
		// pre-created destination.
		h.Resolve([]entities.Locator{target.Locator})
	default:
		h.Resolve(nil)
	}
}

func (c *Controller) persistGrant(req entities.PermissionRequest) {
	guarded := req.Guarded()
	if len(guarded) == 0 {
		return
	}
	c.grants.Add(req.Origin, guarded...)
	if err := c.deps.Store.Save(c.grants); err != nil {
		c.log.Warn("grant persistence failed", "path", c.deps.Store.ConfigPath(), "err", err)
	}
}

// Snapshot is a point-in-time view of the controller's request slots, for
// the introspection API.
type Snapshot struct {
	ChooserState    string `json:"chooser_state"`
	ChooserID       string `json:"chooser_id,omitempty"`
	PermissionState string `json:"permission_state"`
	PermissionOwner string `json:"permission_owner"`
	CapturePending  bool   `json:"capture_pending"`
}

// Snapshot reads the controller state through the dispatcher, so it is
// consistent with respect to in-flight handlers.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.dispatcher.call(ctx, func() {
		snap = Snapshot{
			ChooserState:    c.chooser.state.String(),
			ChooserID:       c.chooser.req.ID,
			PermissionState: c.permission.state.String(),
			PermissionOwner: c.permission.currentOwner().String(),
			CapturePending:  c.capture != nil,
		}
	})
	return snap, err
}

// Grants returns a copy of the controller's effective grant set.
func (c *Controller) Grants(ctx context.Context) (*entities.GrantSet, error) {
	var grants *entities.GrantSet
	err := c.dispatcher.call(ctx, func() {
		grants = c.grants.Clone()
	})
	return grants, err
}
