// Package cdprender implements the renderer port over the Chrome DevTools
// Protocol: a browser process loads the fixed application address, file
// chooser dialogs are intercepted, and an injected getUserMedia shim routes
// permission requests through a host binding.
package cdprender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

const permissionBinding = "__hostviewPermission"

// rendererConfig holds configuration for the Renderer.
type rendererConfig struct {
	logger      *slog.Logger
	userDataDir string
	headless    bool
}

func defaultRendererConfig() rendererConfig {
	return rendererConfig{
		logger:   slog.Default(),
		headless: true,
	}
}

// Option configures a Renderer instance.
type Option func(*rendererConfig)

// WithLogger sets the renderer logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *rendererConfig) {
		c.logger = l
	}
}

// WithUserDataDir sets the browser profile directory.
func WithUserDataDir(dir string) Option {
	return func(c *rendererConfig) {
		c.userDataDir = dir
	}
}

// WithHeadless controls headless mode. Default is headless.
func WithHeadless(headless bool) Option {
	return func(c *rendererConfig) {
		c.headless = headless
	}
}

// Renderer implements ports.Renderer over a CDP-driven browser.
type Renderer struct {
	cfg    rendererConfig
	appURL string
	origin string
	share  ports.ShareProvider
	log    *slog.Logger

	sink        ports.RendererEvents
	browserCtx  context.Context
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
}

var _ ports.Renderer = (*Renderer)(nil)

// New creates a Renderer for the fixed application address. share resolves
// locators handed back by the bridge to local file paths for the intercepted
// chooser.
func New(appURL string, share ports.ShareProvider, opts ...Option) (*Renderer, error) {
	cfg := defaultRendererConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	u, err := url.Parse(appURL)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("invalid application url %q", appURL)
	}
	return &Renderer{
		cfg:    cfg,
		appURL: appURL,
		origin: u.Scheme + "://" + u.Host,
		share:  share,
		log:    cfg.logger.With("component", "cdprender"),
	}, nil
}

// Start implements ports.Renderer.
func (r *Renderer) Start(ctx context.Context, sink ports.RendererEvents) error {
	r.sink = sink

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !r.cfg.headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if r.cfg.userDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(r.cfg.userDataDir))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)
	r.browserCtx = browserCtx
	r.allocCancel = allocCancel
	r.ctxCancel = ctxCancel

	chromedp.ListenTarget(browserCtx, r.handleEvent)

	if err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			if err := page.SetInterceptFileChooserDialog(true).Do(ctx); err != nil {
				return fmt.Errorf("intercept file chooser: %w", err)
			}
			if _, err := page.AddScriptToEvaluateOnNewDocument(mediaShim).Do(ctx); err != nil {
				return fmt.Errorf("install media shim: %w", err)
			}
			return cdpruntime.AddBinding(permissionBinding).Do(ctx)
		}),
		chromedp.Navigate(r.appURL),
	); err != nil {
		r.Close()
		return err
	}
	r.log.Info("application loaded", "url", r.appURL)
	return nil
}

// handleEvent translates CDP events into renderer events. Callbacks run on
// chromedp's event goroutine; the bridge serializes internally.
func (r *Renderer) handleEvent(ev interface{}) {
	switch ev := ev.(type) {
	case *page.EventFileChooserOpened:
		req := entities.ChooserRequest{
			ID:     uuid.NewString(),
			Origin: r.origin,
			// CDP exposes neither the input's accept list nor a capture
			// attribute; the bridge applies its defaults.
			CaptureHint: false,
		}
		h := &chooserHandle{r: r, backendNodeID: ev.BackendNodeID}
		go r.sink.OnChooserRequested(h, req)

	case *cdpruntime.EventBindingCalled:
		if ev.Name != permissionBinding {
			return
		}
		var payload struct {
			ID           string   `json:"id"`
			Origin       string   `json:"origin"`
			Capabilities []string `json:"capabilities"`
		}
		if err := json.Unmarshal([]byte(ev.Payload), &payload); err != nil {
			r.log.Warn("malformed permission payload", "err", err)
			return
		}
		req := entities.PermissionRequest{
			ID:     payload.ID,
			Origin: payload.Origin,
		}
		for _, c := range payload.Capabilities {
			req.Capabilities = append(req.Capabilities, entities.Capability(c))
		}
		h := &grantHandle{r: r, id: payload.ID, origin: payload.Origin}
		go r.sink.OnCapabilityRequested(h, req)
	}
}

// CanGoBack implements ports.Renderer.
func (r *Renderer) CanGoBack() bool {
	if r.browserCtx == nil {
		return false
	}
	var index int64
	err := chromedp.Run(r.browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			index, _, err = page.GetNavigationHistory().Do(ctx)
			return err
		}),
	)
	if err != nil {
		r.log.Warn("navigation history query failed", "err", err)
		return false
	}
	return index > 0
}

// GoBack implements ports.Renderer.
func (r *Renderer) GoBack() error {
	return chromedp.Run(r.browserCtx, chromedp.NavigateBack())
}

// Close implements ports.Renderer.
func (r *Renderer) Close() error {
	if r.ctxCancel != nil {
		r.ctxCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}
