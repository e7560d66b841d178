// Package testutil provides channel assertions for results that arrive
// through the bridge dispatcher.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Receive waits for a value on ch, failing the test after timeout. Used for
// results posted back through the bridge dispatcher.
func Receive[T any](t *testing.T, ch <-chan T, timeout time.Duration, msgAndArgs ...interface{}) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		require.FailNow(t, "timed out waiting on channel", msgAndArgs...)
		panic("unreachable")
	}
}

// ExpectSilence asserts that no value arrives on ch within d.
func ExpectSilence[T any](t *testing.T, ch <-chan T, d time.Duration, msgAndArgs ...interface{}) {
	t.Helper()
	select {
	case <-ch:
		require.FailNow(t, "unexpected value on channel", msgAndArgs...)
	case <-time.After(d):
	}
}
