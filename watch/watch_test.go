package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.xsd")
	require.NoError(t, os.WriteFile(path, []byte("<schema/>"), 0o644))
	return path
}

func TestWatcherFiresOnWrite(t *testing.T) {
	path := tempInput(t)

	var fired atomic.Int32
	w, err := New([]string{path}, 50*time.Millisecond, func() { fired.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Stop()

	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("<schema></schema>"), 0o644))

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		2*time.Second, 10*time.Millisecond, "callback never fired after write")
}

func TestWatcherDebouncesBursts(t *testing.T) {
	path := tempInput(t)

	var fired atomic.Int32
	w, err := New([]string{path}, 150*time.Millisecond, func() { fired.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Stop()

	w.Start()

	// A burst of writes inside the debounce window collapses to one run
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("<schema/>"), 0o644))
	}

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		2*time.Second, 10*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "burst should coalesce into a single callback")
}

func TestWatcherMultiplePaths(t *testing.T) {
	dir := t.TempDir()
	xsdPath := filepath.Join(dir, "schema.xsd")
	profilePath := filepath.Join(dir, "profile.toml")
	require.NoError(t, os.WriteFile(xsdPath, []byte("<schema/>"), 0o644))
	require.NoError(t, os.WriteFile(profilePath, []byte("[schema]"), 0o644))

	var fired atomic.Int32
	w, err := New([]string{xsdPath, profilePath, "", xsdPath}, 50*time.Millisecond, func() { fired.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Stop()

	w.Start()

	require.NoError(t, os.WriteFile(profilePath, []byte("[schema]\nname = \"x\""), 0o644))

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		2*time.Second, 10*time.Millisecond, "profile change should trigger the callback")
}

func TestWatcherRejectsMissingPath(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "absent.xsd")}, 0, func() {}, nil)
	require.Error(t, err)
}

func TestWatcherRequiresPaths(t *testing.T) {
	_, err := New([]string{"", ""}, 0, func() {}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no paths")
}

func TestWatcherRequiresCallback(t *testing.T) {
	_, err := New([]string{tempInput(t)}, 0, nil, nil)
	require.Error(t, err)
}

func TestWatcherStop(t *testing.T) {
	w, err := New([]string{tempInput(t)}, 0, func() {}, nil)
	require.NoError(t, err)
	w.Start()
	assert.NoError(t, w.Stop())
}
