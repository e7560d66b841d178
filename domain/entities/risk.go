package entities

// RiskLevel represents the sensitivity of a requested capability, used for
// consent prompt messaging.
type RiskLevel int

const (
	RiskLevelLow    RiskLevel = iota // ambient features, auto-granted
	RiskLevelMedium                  // microphone
	RiskLevelHigh                    // camera
)

// String returns the human-readable name of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLevelLow:
		return "Low"
	case RiskLevelMedium:
		return "Medium"
	case RiskLevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// AssessCapability returns the risk level of a single capability.
func AssessCapability(c Capability) RiskLevel {
	switch c {
	case CapabilityVideoCapture:
		return RiskLevelHigh
	case CapabilityAudioCapture:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// AssessRequest returns the highest risk level among the requested
// capabilities.
func AssessRequest(r PermissionRequest) RiskLevel {
	highest := RiskLevelLow
	for _, c := range r.Capabilities {
		if level := AssessCapability(c); level > highest {
			highest = level
		}
	}
	return highest
}

// DescribeCapability returns a one-line description for prompt output.
func DescribeCapability(c Capability) string {
	switch c {
	case CapabilityVideoCapture:
		return "Record video with the camera"
	case CapabilityAudioCapture:
		return "Record audio with the microphone"
	case CapabilityProtectedMedia:
		return "Play protected media"
	case CapabilityMIDI:
		return "Access MIDI devices"
	default:
		return "Use feature " + string(c)
	}
}
