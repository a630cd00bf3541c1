package lock

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNamedLock_AcquireRelease(t *testing.T) {
	t.Run("acquires and releases", func(t *testing.T) {
		lk := New(filepath.Join(t.TempDir(), "test.lock"))
		require.NoError(t, lk.Acquire())
		require.NoError(t, lk.Release())
		require.NoError(t, lk.Close())
	})

	t.Run("reacquires after release", func(t *testing.T) {
		lk := New(filepath.Join(t.TempDir(), "test.lock"))
		require.NoError(t, lk.Acquire())
		require.NoError(t, lk.Release())
		require.NoError(t, lk.Acquire())
		require.NoError(t, lk.Close())
	})

	t.Run("creates missing lock directory", func(t *testing.T) {
		lk := New(filepath.Join(t.TempDir(), "lock", "nested", "test.lock"))
		require.NoError(t, lk.Acquire())
		require.NoError(t, lk.Close())
	})

	t.Run("release without acquire is a no-op", func(t *testing.T) {
		lk := New(filepath.Join(t.TempDir(), "test.lock"))
		require.NoError(t, lk.Release())
		require.NoError(t, lk.Close())
	})
}

func TestNamedLock_Excludes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	first := New(path)
	require.NoError(t, first.Acquire())

	acquired := make(chan struct{})
	second := New(path)
	go func() {
		if err := second.Acquire(); err == nil {
			close(acquired)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second handle acquired the lock while the first held it")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, first.Release())

	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second handle never acquired the lock after release")
	}

	require.NoError(t, second.Close())
	require.NoError(t, first.Close())
}
