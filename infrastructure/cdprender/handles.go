package cdprender

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// chooserHandle resolves an intercepted file chooser by assigning local
// files to the originating input element.
type chooserHandle struct {
	r             *Renderer
	backendNodeID cdp.BackendNodeID
}

var _ ports.ChooserHandle = (*chooserHandle)(nil)

func (h *chooserHandle) Resolve(locators []entities.Locator) {
	files := h.r.localPaths(locators)
	err := chromedp.Run(h.r.browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			// An empty file list clears the input, the CDP equivalent of a
			// cancelled dialog.
			return dom.SetFileInputFiles(files).
				WithBackendNodeID(h.backendNodeID).
				Do(ctx)
		}),
	)
	if err != nil {
		h.r.log.Warn("file chooser resolution failed", "err", err)
	}
}

// localPaths maps share locators to filesystem paths. Locators the share
// provider does not recognize are skipped; the browser can only be handed
// local files.
func (r *Renderer) localPaths(locators []entities.Locator) []string {
	files := make([]string, 0, len(locators))
	for _, loc := range locators {
		path, err := r.share.PathFor(loc)
		if err != nil {
			r.log.Warn("unresolvable locator", "locator", string(loc), "err", err)
			continue
		}
		files = append(files, path)
	}
	return files
}

// grantHandle answers an injected-shim permission request: granted
// capabilities are applied at the browser level, then the shim promise is
// settled.
type grantHandle struct {
	r      *Renderer
	id     string
	origin string
}

var _ ports.GrantHandle = (*grantHandle)(nil)

func (h *grantHandle) Grant(caps []entities.Capability) {
	perms := browserPermissions(caps)
	err := chromedp.Run(h.r.browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(perms) > 0 {
				if err := browser.GrantPermissions(perms).WithOrigin(h.origin).Do(ctx); err != nil {
					return err
				}
			}
			return nil
		}),
		chromedp.Evaluate(h.settleExpr(true), nil),
	)
	if err != nil {
		h.r.log.Warn("permission grant failed", "request", h.id, "err", err)
	}
}

func (h *grantHandle) Deny() {
	if err := chromedp.Run(h.r.browserCtx, chromedp.Evaluate(h.settleExpr(false), nil)); err != nil {
		h.r.log.Warn("permission denial delivery failed", "request", h.id, "err", err)
	}
}

func (h *grantHandle) settleExpr(granted bool) string {
	return fmt.Sprintf("window.__hostviewSettle(%q, %t)", h.id, granted)
}

func browserPermissions(caps []entities.Capability) []browser.PermissionType {
	var perms []browser.PermissionType
	for _, c := range caps {
		switch c {
		case entities.CapabilityVideoCapture:
			perms = append(perms, browser.PermissionTypeVideoCapture)
		case entities.CapabilityAudioCapture:
			perms = append(perms, browser.PermissionTypeAudioCapture)
		case entities.CapabilityMIDI:
			perms = append(perms, browser.PermissionTypeMidi)
		case entities.CapabilityProtectedMedia:
			perms = append(perms, browser.PermissionTypeProtectedMediaIdentifier)
		}
	}
	return perms
}
