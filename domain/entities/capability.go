package entities

// Capability represents a guarded device feature the hosted page can request.
// Capabilities use stable string identifiers (e.g., "video-capture") so they
// can round-trip through grant files and renderer payloads unchanged.
type Capability string

const (
	// CapabilityVideoCapture is camera access. It is the only capability
	// gated behind a consent prompt.
	CapabilityVideoCapture Capability = "video-capture"

	// CapabilityAudioCapture is microphone access.
	CapabilityAudioCapture Capability = "audio-capture"

	// CapabilityProtectedMedia is protected (DRM) media playback.
	CapabilityProtectedMedia Capability = "protected-media"

	// CapabilityMIDI is MIDI device access.
	CapabilityMIDI Capability = "midi"
)

// String returns the capability identifier.
func (c Capability) String() string {
	return string(c)
}

// Guarded reports whether the capability requires explicit user consent.
// Everything except video capture is granted without a prompt. This is a
// least-friction default, not a security boundary.
func (c Capability) Guarded() bool {
	return c == CapabilityVideoCapture
}

// GuardedSubset returns the capabilities in caps that require consent.
func GuardedSubset(caps []Capability) []Capability {
	var guarded []Capability
	for _, c := range caps {
		if c.Guarded() {
			guarded = append(guarded, c)
		}
	}
	return guarded
}
