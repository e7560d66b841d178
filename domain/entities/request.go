package entities

// ChooserRequest describes a page request for user-supplied file contents,
// raised when the hosted application activates a file input.
type ChooserRequest struct {
	// ID correlates the request across log lines and introspection output.
	ID string

	// Origin is the requesting page origin (e.g., "https://app.example.com").
	Origin string

	// AcceptTypes lists the MIME types the file input accepts. Empty means
	// unrestricted; the composite chooser defaults to images.
	AcceptTypes []string

	// CaptureHint is true when the page asked specifically for camera capture.
	CaptureHint bool
}

// PermissionRequest describes a page request for one or more capabilities,
// raised when page script invokes a permission-gated API.
type PermissionRequest struct {
	ID           string
	Origin       string
	Capabilities []Capability
}

// Guarded returns the subset of requested capabilities that require consent.
func (r PermissionRequest) Guarded() []Capability {
	return GuardedSubset(r.Capabilities)
}
