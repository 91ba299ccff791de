package sidecar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureStartedIdempotent(t *testing.T) {
	s := New("echo", []string{"hello"})
	defer s.Close()

	require.NoError(t, s.EnsureStarted())
	require.True(t, s.Held())
	first := s.PID()

	// Second call must be a no-op even though echo exits immediately.
	require.NoError(t, s.EnsureStarted())
	assert.Equal(t, first, s.PID())
}

func TestEnsureStartedSpawnFailure(t *testing.T) {
	s := New("kilozed-no-such-binary", nil)

	err := s.EnsureStarted()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting sidecar")
	assert.False(t, s.Held(), "failed spawn must not leave a handle behind")
	assert.Equal(t, -1, s.PID())
}

func TestCloseDiscardsHandle(t *testing.T) {
	s := New("sleep", []string{"30"})
	require.NoError(t, s.EnsureStarted())
	require.True(t, s.Held())

	require.NoError(t, s.Close())
	assert.False(t, s.Held())

	// Close is safe to repeat and safe on a sidecar that never started.
	require.NoError(t, s.Close())
	require.NoError(t, New("echo", nil).Close())
}

func TestCloseAfterChildExit(t *testing.T) {
	s := New("echo", []string{"done"})
	require.NoError(t, s.EnsureStarted())

	// Termination failure against an already-reaped child is swallowed.
	require.NoError(t, s.Close())
	assert.False(t, s.Held())
}
