package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	domerrors "github.com/hostview-dev/hostview-sdk/domain/errors"
)

// Manifest describes a hosted web application: where it lives and which
// capabilities it is expected to ask for. Pre-granted origins let an
// operator ship a kiosk deployment without first-run prompts.
type Manifest struct {
	Name string `json:"name" yaml:"name" validate:"required" jsonschema:"required"`
	URL  string `json:"url" yaml:"url" validate:"required,url" jsonschema:"required"`

	// Capabilities the application is expected to request; informational.
	Capabilities []entities.Capability `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`

	// Grants are pre-granted capability rules merged into the grant set at
	// startup.
	Grants []entities.GrantRule `json:"grants,omitempty" yaml:"grants,omitempty"`
}

// LoadManifest reads and validates a manifest yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates manifest yaml.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &domerrors.ConfigError{Field: "manifest", Err: err}
	}
	if err := validate.Struct(&m); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return nil, &domerrors.ConfigError{Field: errs[0].Field(), Err: err}
		}
		return nil, &domerrors.ConfigError{Field: "manifest", Err: err}
	}
	return &m, nil
}

// GrantSet returns the manifest's pre-granted rules as a GrantSet.
func (m *Manifest) GrantSet() *entities.GrantSet {
	if len(m.Grants) == 0 {
		return &entities.GrantSet{}
	}
	return &entities.GrantSet{Rules: append([]entities.GrantRule(nil), m.Grants...)}
}
