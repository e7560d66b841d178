package entities

import "fmt"

// ErrorDetail carries structured error information across package boundaries.
// Error Types: "capability", "chooser", "share", "config", "contract",
// "renderer", "internal".
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s/%s)", e.Message, e.Type, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Type)
}
