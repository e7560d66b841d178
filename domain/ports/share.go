package ports

import "github.com/hostview-dev/hostview-sdk/domain/entities"

// ShareProvider derives shareable locators for files under a pre-declared
// root, enforcing that every shared path lies inside that root.
type ShareProvider interface {
	// CreateCaptureTarget pre-creates an empty destination file for one
	// camera round-trip and returns its path and shareable locator.
	CreateCaptureTarget(ext string) (*entities.CaptureTarget, error)

	// Import copies an external file under the share root and returns its
	// shareable locator. Used by content pickers handing out host files.
	Import(srcPath string) (entities.Locator, error)

	// LocatorFor converts a path under the share root to a shareable
	// locator. Paths outside the root are rejected.
	LocatorFor(path string) (entities.Locator, error)

	// PathFor resolves a locator produced by this provider back to its
	// filesystem path.
	PathFor(loc entities.Locator) (string, error)

	// Root returns the pre-declared share root.
	Root() string
}
