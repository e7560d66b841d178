package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantSet_IsEmpty(t *testing.T) {
	var nilSet *GrantSet
	assert.True(t, nilSet.IsEmpty())
	assert.True(t, (&GrantSet{}).IsEmpty())

	set := &GrantSet{}
	set.Add("https://app.example.com", CapabilityVideoCapture)
	assert.False(t, set.IsEmpty())
}

func TestGrantSet_Add(t *testing.T) {
	t.Run("records one rule per call", func(t *testing.T) {
		set := &GrantSet{}
		set.Add("https://app.example.com", CapabilityVideoCapture)
		set.Add("https://other.example.com", CapabilityVideoCapture, CapabilityAudioCapture)

		require.Len(t, set.Rules, 2)
		assert.Equal(t, []string{"https://app.example.com"}, set.Rules[0].Origins)
		assert.Equal(t, []Capability{CapabilityVideoCapture, CapabilityAudioCapture}, set.Rules[1].Capabilities)
	})

	t.Run("ignores degenerate input", func(t *testing.T) {
		set := &GrantSet{}
		set.Add("", CapabilityVideoCapture)
		set.Add("https://app.example.com")
		assert.True(t, set.IsEmpty())
	})

	t.Run("copies the capability slice", func(t *testing.T) {
		caps := []Capability{CapabilityVideoCapture}
		set := &GrantSet{}
		set.Add("https://app.example.com", caps...)

		caps[0] = CapabilityMIDI
		assert.Equal(t, CapabilityVideoCapture, set.Rules[0].Capabilities[0])
	})
}

func TestGrantSet_Merge(t *testing.T) {
	set := &GrantSet{}
	set.Add("https://app.example.com", CapabilityVideoCapture)

	other := &GrantSet{}
	other.Add("https://other.example.com", CapabilityAudioCapture)

	set.Merge(other)
	assert.Len(t, set.Rules, 2)

	set.Merge(nil)
	assert.Len(t, set.Rules, 2)
}

func TestGrantSet_Clone(t *testing.T) {
	var nilSet *GrantSet
	assert.Nil(t, nilSet.Clone())

	set := &GrantSet{}
	set.Add("https://app.example.com", CapabilityVideoCapture)

	clone := set.Clone()
	require.Len(t, clone.Rules, 1)

	clone.Rules[0].Origins[0] = "https://evil.example.com"
	clone.Add("https://more.example.com", CapabilityMIDI)

	assert.Equal(t, "https://app.example.com", set.Rules[0].Origins[0])
	assert.Len(t, set.Rules, 1)
}
