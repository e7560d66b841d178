package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/policy"
)

func TestPolicy_HasGrant(t *testing.T) {
	p := policy.New(policy.WithObserver(&policy.NopObserver{}))

	grants := &entities.GrantSet{
		Rules: []entities.GrantRule{
			{
				Capabilities: []entities.Capability{entities.CapabilityVideoCapture},
				Origins:      []string{"https://app.example.com", "https://*.trusted.example"},
			},
		},
	}

	tests := []struct {
		name   string
		cap    entities.Capability
		origin string
		want   bool
	}{
		{"exact origin", entities.CapabilityVideoCapture, "https://app.example.com", true},
		{"wildcard origin", entities.CapabilityVideoCapture, "https://sub.trusted.example", true},
		{"uncovered origin", entities.CapabilityVideoCapture, "https://other.example.com", false},
		{"unguarded always covered", entities.CapabilityAudioCapture, "https://anywhere.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.HasGrant(tt.cap, tt.origin, grants))
		})
	}
}

func TestPolicy_HasGrant_EmptySet(t *testing.T) {
	p := policy.New(policy.WithObserver(&policy.NopObserver{}))

	assert.False(t, p.HasGrant(entities.CapabilityVideoCapture, "https://app.example.com", &entities.GrantSet{}))
	assert.False(t, p.HasGrant(entities.CapabilityVideoCapture, "https://app.example.com", nil))
	assert.True(t, p.HasGrant(entities.CapabilityMIDI, "https://app.example.com", nil))
}

func TestPolicy_HasGrant_MalformedPattern(t *testing.T) {
	p := policy.New(policy.WithObserver(&policy.NopObserver{}))
	grants := &entities.GrantSet{
		Rules: []entities.GrantRule{
			{
				Capabilities: []entities.Capability{entities.CapabilityVideoCapture},
				Origins:      []string{"https://[invalid"},
			},
		},
	}

	// A malformed pattern in the grant file must never widen access.
	assert.False(t, p.HasGrant(entities.CapabilityVideoCapture, "https://app.example.com", grants))
}

func TestPolicy_HasGrant_CapabilityMismatch(t *testing.T) {
	p := policy.New(policy.WithObserver(&policy.NopObserver{}))
	grants := &entities.GrantSet{
		Rules: []entities.GrantRule{
			{
				Capabilities: []entities.Capability{entities.CapabilityProtectedMedia},
				Origins:      []string{"https://app.example.com"},
			},
		},
	}

	assert.False(t, p.HasGrant(entities.CapabilityVideoCapture, "https://app.example.com", grants))
}

func TestPolicy_Decide(t *testing.T) {
	p := policy.New(policy.WithObserver(&policy.NopObserver{}))
	grants := &entities.GrantSet{
		Rules: []entities.GrantRule{
			{
				Capabilities: []entities.Capability{entities.CapabilityVideoCapture},
				Origins:      []string{"https://app.example.com"},
			},
		},
	}

	tests := []struct {
		name string
		req  entities.PermissionRequest
		want policy.Decision
	}{
		{
			"covered guarded capability",
			entities.PermissionRequest{Origin: "https://app.example.com", Capabilities: []entities.Capability{entities.CapabilityVideoCapture}},
			policy.DecisionGrant,
		},
		{
			"uncovered guarded capability",
			entities.PermissionRequest{Origin: "https://other.example.com", Capabilities: []entities.Capability{entities.CapabilityVideoCapture}},
			policy.DecisionPrompt,
		},
		{
			"unguarded only",
			entities.PermissionRequest{Origin: "https://other.example.com", Capabilities: []entities.Capability{entities.CapabilityAudioCapture, entities.CapabilityMIDI}},
			policy.DecisionGrant,
		},
		{
			"mixed, guarded part covered",
			entities.PermissionRequest{Origin: "https://app.example.com", Capabilities: []entities.Capability{entities.CapabilityAudioCapture, entities.CapabilityVideoCapture}},
			policy.DecisionGrant,
		},
		{
			"mixed, guarded part uncovered",
			entities.PermissionRequest{Origin: "https://other.example.com", Capabilities: []entities.Capability{entities.CapabilityAudioCapture, entities.CapabilityVideoCapture}},
			policy.DecisionPrompt,
		},
		{
			"no capabilities",
			entities.PermissionRequest{Origin: "https://other.example.com"},
			policy.DecisionGrant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Decide(tt.req, grants))
		})
	}
}
