// Package schema provides JSON schema generation and document validation for
// the hosted-app manifest.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	jsvalidate "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/hostview-dev/hostview-sdk/config"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // expand struct definitions inline
	}
	s := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}

// ManifestSchema returns the JSON schema for the hosted-app manifest.
func ManifestSchema() ([]byte, error) {
	return GenerateSchema(&config.Manifest{})
}

// ValidateManifest checks a raw manifest yaml document against the generated
// schema, catching shape errors before struct-level validation runs.
func ValidateManifest(raw []byte) error {
	schemaBytes, err := ManifestSchema()
	if err != nil {
		return err
	}

	compiler := jsvalidate.NewCompiler()
	if err := compiler.AddResource("manifest.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("failed to add manifest schema: %w", err)
	}
	sch, err := compiler.Compile("manifest.json")
	if err != nil {
		return fmt.Errorf("invalid manifest schema: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	// Round-trip through JSON so the document uses JSON-compatible types.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to normalize manifest: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		return fmt.Errorf("failed to normalize manifest: %w", err)
	}

	if err := sch.Validate(normalized); err != nil {
		return fmt.Errorf("manifest does not match schema: %w", err)
	}
	return nil
}
