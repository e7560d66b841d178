// Package errors provides domain-specific error types for the bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert
// themselves to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// CapabilityError represents a denied or unsatisfiable capability request.
type CapabilityError struct {
	Capability entities.Capability
	Origin     string
}

func (e *CapabilityError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("capability %s denied for %s", e.Capability, e.Origin)
	}
	return fmt.Sprintf("capability %s denied", e.Capability)
}

// ToErrorDetail implements DetailedError.
func (e *CapabilityError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "capability", Code: string(e.Capability)}
}

// ChooserError represents a failure during a file-chooser round-trip.
type ChooserError struct {
	Err   error
	Stage string // "capture-target", "launch", "resolve"
}

func (e *ChooserError) Error() string {
	return fmt.Sprintf("file chooser %s failed: %v", e.Stage, e.Err)
}

func (e *ChooserError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ChooserError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "chooser", Code: e.Stage}
}

// ShareError represents a share-provider failure, including paths that
// escape the pre-declared share root.
type ShareError struct {
	Err  error
	Path string
}

func (e *ShareError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("share provider failed for %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("share provider failed: %v", e.Err)
}

func (e *ShareError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ShareError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "share"}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// ContractError represents a violated completion-handle contract: a handle
// that was resolved more than once, or a result arriving with no pending
// request to own it.
type ContractError struct {
	Handle    string // "chooser", "grant"
	RequestID string
	Violation string // "double-resolve", "stray-result"
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s handle contract violation (%s) for request %s", e.Handle, e.Violation, e.RequestID)
}

// ToErrorDetail implements DetailedError.
func (e *ContractError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "contract", Code: e.Violation}
}

// RendererError represents a failure in the embedded renderer.
type RendererError struct {
	Err       error
	Operation string
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer %s failed: %v", e.Operation, e.Err)
}

func (e *RendererError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RendererError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "renderer", Code: e.Operation}
}
