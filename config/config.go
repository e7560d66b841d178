// Package config provides host configuration and the hosted-app manifest.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/hostview-dev/hostview-sdk/domain/errors"
)

// Config holds the host daemon settings, loaded from HOSTVIEW_* environment
// variables.
type Config struct {
	// AppURL is the fixed address of the hosted web application. May be
	// empty when ManifestPath is set; the manifest's url takes over.
	AppURL string `validate:"required_without=ManifestPath,omitempty,url"`

	// ListenAddr is the status API bind address.
	ListenAddr string `validate:"required"`

	// StateDir is the base directory for host state.
	StateDir string `validate:"required"`

	// ShareDir is the pre-declared share root. Defaults under StateDir.
	ShareDir string `validate:"required"`

	// GrantsPath is the grant store file. Defaults under StateDir.
	GrantsPath string `validate:"required"`

	// MediaDir is the directory the content picker offers files from.
	MediaDir string `validate:"required"`

	// ManifestPath optionally points at a hosted-app manifest overriding
	// AppURL and pre-declared origins.
	ManifestPath string

	// CapturePlugin optionally points at a WASM capture plugin acting as
	// the camera device.
	CapturePlugin string

	// Headless controls the renderer's headless mode.
	Headless bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FromEnv loads the configuration from the environment, applying defaults
// for everything but the application address.
func FromEnv() (*Config, error) {
	stateDir := envOr("HOSTVIEW_STATE_DIR", filepath.Join(homeDir(), ".hostview"))
	cfg := &Config{
		AppURL:        os.Getenv("HOSTVIEW_APP_URL"),
		ListenAddr:    envOr("HOSTVIEW_LISTEN", "127.0.0.1:18900"),
		StateDir:      stateDir,
		ShareDir:      envOr("HOSTVIEW_SHARE_DIR", filepath.Join(stateDir, "shared")),
		GrantsPath:    envOr("HOSTVIEW_GRANTS", filepath.Join(stateDir, "grants.yaml")),
		MediaDir:      envOr("HOSTVIEW_MEDIA_DIR", filepath.Join(homeDir(), "Pictures")),
		ManifestPath:  os.Getenv("HOSTVIEW_MANIFEST"),
		CapturePlugin: os.Getenv("HOSTVIEW_CAPTURE_PLUGIN"),
		Headless:      os.Getenv("HOSTVIEW_HEADLESS") != "false",
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &domerrors.ConfigError{Field: errs[0].Field(), Err: err}
		}
		return &domerrors.ConfigError{Err: err}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
