// Package sharedir implements the share provider over a pre-declared root
// directory. Every shareable locator maps to a file under that root; paths
// escaping it are rejected.
package sharedir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	domerrors "github.com/hostview-dev/hostview-sdk/domain/errors"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

const (
	locatorScheme = "share://"

	capturesSubdir = "captures"
	importsSubdir  = "imports"
)

// providerConfig holds configuration for the Provider.
type providerConfig struct {
	root     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func defaultProviderConfig() providerConfig {
	return providerConfig{
		root:     filepath.Join(os.Getenv("HOME"), ".hostview", "shared"),
		dirPerm:  0o755,
		filePerm: 0o600,
	}
}

// Option configures a Provider instance.
type Option func(*providerConfig)

// WithRoot sets the pre-declared share root.
func WithRoot(root string) Option {
	return func(c *providerConfig) {
		c.root = root
	}
}

// WithFilePermissions sets the permissions for created files.
func WithFilePermissions(perm os.FileMode) Option {
	return func(c *providerConfig) {
		c.filePerm = perm
	}
}

// Provider implements ports.ShareProvider.
type Provider struct {
	config providerConfig
	root   string // absolute, cleaned
}

var _ ports.ShareProvider = (*Provider)(nil)

// New creates a Provider, creating the share root if needed.
func New(opts ...Option) (*Provider, error) {
	cfg := defaultProviderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	root, err := filepath.Abs(cfg.root)
	if err != nil {
		return nil, &domerrors.ShareError{Path: cfg.root, Err: err}
	}
	for _, dir := range []string{root, filepath.Join(root, capturesSubdir), filepath.Join(root, importsSubdir)} {
		if err := os.MkdirAll(dir, cfg.dirPerm); err != nil {
			return nil, &domerrors.ShareError{Path: dir, Err: err}
		}
	}
	return &Provider{config: cfg, root: root}, nil
}

// Root returns the pre-declared share root.
func (p *Provider) Root() string {
	return p.root
}

// CreateCaptureTarget pre-creates an empty destination file for one camera
// round-trip. Targets the camera never writes are orphaned, not cleaned up.
func (p *Provider) CreateCaptureTarget(ext string) (*entities.CaptureTarget, error) {
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(p.root, capturesSubdir, "capture-"+uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, p.config.filePerm)
	if err != nil {
		return nil, &domerrors.ShareError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &domerrors.ShareError{Path: path, Err: err}
	}
	loc, err := p.LocatorFor(path)
	if err != nil {
		return nil, err
	}
	return &entities.CaptureTarget{Path: path, Locator: loc}, nil
}

// Import copies an external file under the share root and returns its
// locator.
func (p *Provider) Import(srcPath string) (entities.Locator, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", &domerrors.ShareError{Path: srcPath, Err: err}
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(srcPath)
	dstPath := filepath.Join(p.root, importsSubdir, name)
	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, p.config.filePerm)
	if err != nil {
		return "", &domerrors.ShareError{Path: dstPath, Err: err}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", &domerrors.ShareError{Path: dstPath, Err: err}
	}
	return p.LocatorFor(dstPath)
}

// LocatorFor converts a path under the share root to a shareable locator.
func (p *Provider) LocatorFor(path string) (entities.Locator, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &domerrors.ShareError{Path: path, Err: err}
	}
	rel, err := filepath.Rel(p.root, abs)
	if err != nil {
		return "", &domerrors.ShareError{Path: path, Err: err}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &domerrors.ShareError{Path: path, Err: fmt.Errorf("path escapes share root %s", p.root)}
	}
	return entities.Locator(locatorScheme + filepath.ToSlash(rel)), nil
}

// PathFor resolves a locator produced by this provider back to a filesystem
// path under the root.
func (p *Provider) PathFor(loc entities.Locator) (string, error) {
	s := string(loc)
	if !strings.HasPrefix(s, locatorScheme) {
		return "", &domerrors.ShareError{Path: s, Err: fmt.Errorf("not a share locator")}
	}
	rel := filepath.FromSlash(strings.TrimPrefix(s, locatorScheme))
	path := filepath.Join(p.root, rel)
	// Join cleans the path; re-check containment to reject ".." segments
	// smuggled into the locator.
	if _, err := p.LocatorFor(path); err != nil {
		return "", err
	}
	return path, nil
}
