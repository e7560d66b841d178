package sharedir_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostview-dev/hostview-sdk/infrastructure/sharedir"
)

func newProvider(t *testing.T) *sharedir.Provider {
	t.Helper()
	p, err := sharedir.New(sharedir.WithRoot(filepath.Join(t.TempDir(), "shared")))
	require.NoError(t, err)
	return p
}

func TestProvider_CreateCaptureTarget(t *testing.T) {
	p := newProvider(t)

	target, err := p.CreateCaptureTarget(".jpg")
	require.NoError(t, err)

	info, err := os.Stat(target.Path)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "destination must be pre-created empty")
	assert.True(t, strings.HasSuffix(target.Path, ".jpg"))
	assert.True(t, strings.HasPrefix(string(target.Locator), "share://captures/"))

	// Each round-trip gets its own destination.
	second, err := p.CreateCaptureTarget(".jpg")
	require.NoError(t, err)
	assert.NotEqual(t, target.Path, second.Path)
}

func TestProvider_Import(t *testing.T) {
	p := newProvider(t)

	src := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o600))

	loc, err := p.Import(src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(loc), "share://imports/"))

	path, err := p.PathFor(loc)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestProvider_Import_MissingSource(t *testing.T) {
	p := newProvider(t)
	_, err := p.Import(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestProvider_LocatorRoundTrip(t *testing.T) {
	p := newProvider(t)

	target, err := p.CreateCaptureTarget(".jpg")
	require.NoError(t, err)

	path, err := p.PathFor(target.Locator)
	require.NoError(t, err)
	assert.Equal(t, target.Path, path)
}

func TestProvider_RejectsEscapes(t *testing.T) {
	p := newProvider(t)

	t.Run("path outside root", func(t *testing.T) {
		_, err := p.LocatorFor("/etc/passwd")
		assert.Error(t, err)
	})

	t.Run("sibling prefix", func(t *testing.T) {
		_, err := p.LocatorFor(p.Root() + "-evil/file")
		assert.Error(t, err)
	})

	t.Run("traversal in locator", func(t *testing.T) {
		_, err := p.PathFor("share://../../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("foreign scheme", func(t *testing.T) {
		_, err := p.PathFor("file:///etc/passwd")
		assert.Error(t, err)
	})
}
