package link

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ifprefix/ifprefix/internal/hwaddr"
	"github.com/ifprefix/ifprefix/internal/lock"
	"github.com/ifprefix/ifprefix/internal/netdev"
)

func newTestLock(t *testing.T) *lock.NamedLock {
	t.Helper()
	lk := lock.New(filepath.Join(t.TempDir(), "naming.lock"))
	t.Cleanup(func() { lk.Close() })
	return lk
}

func TestEnsureName(t *testing.T) {
	t.Run("allocates the first name and writes its record", func(t *testing.T) {
		dir := t.TempDir()
		devices := netdev.NewMockEnumerator()
		devices.Add("eth0", "device", "52:54:00:52:1f:93")

		name, err := EnsureName(devices, newTestLock(t), dir, "net", "eth0", testLogger())
		require.NoError(t, err)
		require.Equal(t, "net0", name)

		data, err := os.ReadFile(filepath.Join(dir, "71-net-ifnames-prefix-net0.link"))
		require.NoError(t, err)
		require.Equal(t, "[Match]\nMACAddress=52:54:00:52:1F:93\n\n[Link]\nName=net0\n", string(data))
	})

	t.Run("continues the sequence for a new device", func(t *testing.T) {
		dir := t.TempDir()
		writeRecordFile(t, dir, "net1", "AA:AA:AA:AA:AA:01")
		writeRecordFile(t, dir, "net2", "AA:AA:AA:AA:AA:02")
		writeRecordFile(t, dir, "net3", "AA:AA:AA:AA:AA:03")
		devices := netdev.NewMockEnumerator()
		devices.Add("eth0", "device", "cc:cc:cc:cc:cc:cc")

		name, err := EnsureName(devices, newTestLock(t), dir, "net", "eth0", testLogger())
		require.NoError(t, err)
		require.Equal(t, "net4", name)
	})

	t.Run("returns the recorded name without writing", func(t *testing.T) {
		dir := t.TempDir()
		writeRecordFile(t, dir, "net5", "52:54:00:52:1F:93")
		devices := netdev.NewMockEnumerator()
		devices.Add("eth0", "device", "52-54-00-52-1f-93")

		name, err := EnsureName(devices, newTestLock(t), dir, "net", "eth0", testLogger())
		require.NoError(t, err)
		require.Equal(t, "net5", name)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("fails when the device has no address", func(t *testing.T) {
		devices := netdev.NewMockEnumerator()
		_, err := EnsureName(devices, newTestLock(t), t.TempDir(), "net", "eth0", testLogger())
		require.ErrorIs(t, err, netdev.ErrDeviceAttribute)
	})

	t.Run("fails on an unparseable device address", func(t *testing.T) {
		devices := netdev.NewMockEnumerator()
		devices.Add("eth0", "device", "garbage")

		_, err := EnsureName(devices, newTestLock(t), t.TempDir(), "net", "eth0", testLogger())
		require.ErrorIs(t, err, hwaddr.ErrInvalidAddress)
	})

	t.Run("releases the lock on failure", func(t *testing.T) {
		lk := newTestLock(t)
		devices := netdev.NewMockEnumerator()

		_, err := EnsureName(devices, lk, t.TempDir(), "net", "eth0", testLogger())
		require.Error(t, err)

		require.NoError(t, lk.Acquire())
		require.NoError(t, lk.Release())
	})
}

func TestEnsureName_Concurrent(t *testing.T) {
	const writers = 8

	dir := t.TempDir()
	lockPath := filepath.Join(t.TempDir(), "naming.lock")

	devices := netdev.NewMockEnumerator()
	for i := 0; i < writers; i++ {
		devices.Add(fmt.Sprintf("eth%d", i), "device", fmt.Sprintf("aa:bb:cc:dd:ee:%02x", i))
	}

	names := make([]string, writers)
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		i := i
		g.Go(func() error {
			lk := lock.New(lockPath)
			defer lk.Close()

			name, err := EnsureName(devices, lk, dir, "net", fmt.Sprintf("eth%d", i), testLogger())
			names[i] = name
			return err
		})
	}
	require.NoError(t, g.Wait())

	slices.Sort(names)
	want := make([]string, writers)
	for i := range want {
		want[i] = fmt.Sprintf("net%d", i)
	}
	require.Equal(t, want, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, writers)
}
