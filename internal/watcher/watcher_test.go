package watcher

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ricekit/ricekit/internal/logger"
)

func newTestWatcher(t *testing.T, dir string, fired *atomic.Int32) *ThemesWatcher {
	t.Helper()

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	w := New(dir, log, func() { fired.Add(1) }, WithDebounce(50*time.Millisecond))
	t.Cleanup(w.Stop)
	return w
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcherSignalsOnNewTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var fired atomic.Int32

	w := newTestWatcher(t, dir, &fired)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nord.yaml"), []byte("accent: '#88c0d0'"), 0o644))
	require.True(t, waitFor(t, 3*time.Second, func() bool { return fired.Load() >= 1 }))
}

func TestWatcherCoalescesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var fired atomic.Int32

	w := newTestWatcher(t, dir, &fired)
	require.NoError(t, w.Start())

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "theme"+string(rune('a'+i))+".yaml")
		require.NoError(t, os.WriteFile(name, []byte("x: 1"), 0o644))
	}

	require.True(t, waitFor(t, 3*time.Second, func() bool { return fired.Load() >= 1 }))
	time.Sleep(200 * time.Millisecond)
	require.LessOrEqual(t, fired.Load(), int32(2), "burst must coalesce into few signals")
}

func TestWatcherSignalsOnRemoval(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	theme := filepath.Join(dir, "nord.yaml")
	require.NoError(t, os.WriteFile(theme, []byte("x: 1"), 0o644))

	var fired atomic.Int32
	w := newTestWatcher(t, dir, &fired)
	require.NoError(t, w.Start())

	require.NoError(t, os.Remove(theme))
	require.True(t, waitFor(t, 3*time.Second, func() bool { return fired.Load() >= 1 }))
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var fired atomic.Int32

	w := newTestWatcher(t, dir, &fired)
	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.yaml"), []byte("x: 1"), 0o644))
	time.Sleep(200 * time.Millisecond)
	require.Zero(t, fired.Load())
}

func TestWatcherMissingDirFails(t *testing.T) {
	t.Parallel()

	var fired atomic.Int32
	w := newTestWatcher(t, filepath.Join(t.TempDir(), "nope"), &fired)
	require.Error(t, w.Start())
}
