package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the watcher:
// - A .py write fires the callback with the changed file after debounce
// - Rapid writes are batched into one callback
// - Non-Python files never fire the callback
// - Stop is idempotent and safe before Start
// - Creating the watcher on a missing directory fails

func collectChanges(t *testing.T, dir string, debounce time.Duration) (*Watcher, chan []string) {
	t.Helper()

	w, err := New([]string{dir}, debounce)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changes := make(chan []string, 10)
	require.NoError(t, w.Start(context.Background(), func(files []string) {
		changes <- files
	}))

	return w, changes
}

func TestWatcher_ReportsPythonChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, changes := collectChanges(t, dir, 50*time.Millisecond)

	target := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(target, []byte("x = 1\n"), 0644))

	select {
	case files := <-changes:
		assert.Contains(t, files, target)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcher_BatchesRapidWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, changes := collectChanges(t, dir, 100*time.Millisecond)

	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("y = 2\n"), 0644))

	select {
	case files := <-changes:
		assert.Contains(t, files, a)
		assert.Contains(t, files, b)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcher_IgnoresNonPythonFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, changes := collectChanges(t, dir, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

	select {
	case files := <-changes:
		t.Fatalf("unexpected callback for non-Python change: %v", files)
	case <-time.After(300 * time.Millisecond):
		// No callback fired, as expected.
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	t.Parallel()

	w, err := New([]string{t.TempDir()}, 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background(), func([]string) {}))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	t.Parallel()

	w, err := New([]string{t.TempDir()}, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"/no/such/directory"}, 50*time.Millisecond)
	require.Error(t, err)
}
