package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapability_Guarded(t *testing.T) {
	assert.True(t, CapabilityVideoCapture.Guarded())
	assert.False(t, CapabilityAudioCapture.Guarded())
	assert.False(t, CapabilityProtectedMedia.Guarded())
	assert.False(t, CapabilityMIDI.Guarded())
}

func TestGuardedSubset(t *testing.T) {
	assert.Nil(t, GuardedSubset(nil))
	assert.Nil(t, GuardedSubset([]Capability{CapabilityAudioCapture, CapabilityMIDI}))
	assert.Equal(t,
		[]Capability{CapabilityVideoCapture},
		GuardedSubset([]Capability{CapabilityAudioCapture, CapabilityVideoCapture, CapabilityMIDI}),
	)
}

func TestAssessRequest(t *testing.T) {
	tests := []struct {
		name string
		caps []Capability
		want RiskLevel
	}{
		{"empty", nil, RiskLevelLow},
		{"ambient only", []Capability{CapabilityMIDI, CapabilityProtectedMedia}, RiskLevelLow},
		{"microphone", []Capability{CapabilityAudioCapture}, RiskLevelMedium},
		{"camera dominates", []Capability{CapabilityAudioCapture, CapabilityVideoCapture}, RiskLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessRequest(PermissionRequest{Capabilities: tt.caps})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "Low", RiskLevelLow.String())
	assert.Equal(t, "Medium", RiskLevelMedium.String())
	assert.Equal(t, "High", RiskLevelHigh.String())
}
