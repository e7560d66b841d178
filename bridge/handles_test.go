package bridge

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
)

type countingChooser struct {
	calls int
	last  []entities.Locator
}

func (c *countingChooser) Resolve(locators []entities.Locator) {
	c.calls++
	c.last = locators
}

type countingGrant struct {
	grants  int
	denials int
}

func (c *countingGrant) Grant([]entities.Capability) { c.grants++ }
func (c *countingGrant) Deny()                       { c.denials++ }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOneShotChooser(t *testing.T) {
	inner := &countingChooser{}
	h := newOneShotChooser(inner, "c1", testLogger())

	h.Resolve([]entities.Locator{"share://captures/a.jpg"})
	h.Resolve(nil)
	h.Resolve([]entities.Locator{"share://captures/b.jpg"})

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, []entities.Locator{"share://captures/a.jpg"}, inner.last)
}

func TestOneShotGrant(t *testing.T) {
	t.Run("repeated grant dropped", func(t *testing.T) {
		inner := &countingGrant{}
		h := newOneShotGrant(inner, "p1", testLogger())

		h.Grant([]entities.Capability{entities.CapabilityVideoCapture})
		h.Grant([]entities.Capability{entities.CapabilityVideoCapture})

		assert.Equal(t, 1, inner.grants)
		assert.Equal(t, 0, inner.denials)
	})

	t.Run("deny after grant dropped", func(t *testing.T) {
		inner := &countingGrant{}
		h := newOneShotGrant(inner, "p1", testLogger())

		h.Grant([]entities.Capability{entities.CapabilityVideoCapture})
		h.Deny()

		assert.Equal(t, 1, inner.grants)
		assert.Equal(t, 0, inner.denials)
	})

	t.Run("grant after deny dropped", func(t *testing.T) {
		inner := &countingGrant{}
		h := newOneShotGrant(inner, "p1", testLogger())

		h.Deny()
		h.Grant([]entities.Capability{entities.CapabilityVideoCapture})

		assert.Equal(t, 1, inner.denials)
		assert.Equal(t, 0, inner.grants)
	})
}
