package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := DefaultConfig()
			require.NoError(t, Save(cfg, path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg.Rings, loaded.Rings)
			assert.Equal(t, cfg.Updates, loaded.Updates)
			assert.Equal(t, cfg.Window, loaded.Window)
			assert.NoError(t, loaded.Validate())
		})
	}
}

func TestLoaderLoadValidates(t *testing.T) {
	path := writeFile(t, "config.toml", `
[[ring]]
size = 0
thickness = 2
background_color = "#000000"
percentage_color = "#ffffff"
`)

	l := NewLoader(path, nil)
	_, err := l.Load()
	require.Error(t, err)
	assert.Nil(t, l.Config())
}

func TestLoaderWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(DefaultConfig(), path))

	l := NewLoader(path, nil)
	l.debounce = 10 * time.Millisecond
	_, err := l.Load()
	require.NoError(t, err)

	changed := make(chan *Config, 4)
	l.OnChange(func(c *Config) { changed <- c })
	require.NoError(t, l.Watch())
	defer l.Close()

	cfg := DefaultConfig()
	cfg.Rings = cfg.Rings[:2]
	cfg.Updates = []UpdateAction{{Ring: 2, Value: 10}}
	require.NoError(t, Save(cfg, path))

	select {
	case got := <-changed:
		assert.Len(t, got.Rings, 2)
		assert.Len(t, l.Config().Rings, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestLoaderCloseWithoutWatch(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "config.toml"), nil)
	assert.NoError(t, l.Close())
}

func TestLoaderPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rings.json")
	assert.Equal(t, path, NewLoader(path, nil).Path())

	t.Setenv("PROGRESSRING_CONFIG", "/tmp/other.toml")
	assert.Equal(t, "/tmp/other.toml", NewLoader("", nil).Path())
}

func TestLoaderWatchReportsInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(DefaultConfig(), path))

	l := NewLoader(path, nil)
	l.debounce = 10 * time.Millisecond
	_, err := l.Load()
	require.NoError(t, err)
	require.NoError(t, l.Watch())
	defer l.Close()

	require.NoError(t, os.WriteFile(path, []byte("[[ring]]\nsize = 0\n"), 0o644))

	select {
	case err := <-l.Errors():
		assert.ErrorContains(t, err, "reload config")
		assert.Len(t, l.Config().Rings, 5, "previous config kept")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestLoaderCallbacksDoNotOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(DefaultConfig(), path))

	l := NewLoader(path, nil)
	l.debounce = 5 * time.Millisecond
	_, err := l.Load()
	require.NoError(t, err)

	var active, overlaps, calls atomic.Int32
	l.OnChange(func(*Config) {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(50 * time.Millisecond)
		active.Add(-1)
		calls.Add(1)
	})
	require.NoError(t, l.Watch())

	// writes spaced past the debounce but inside the slow callback
	for range 4 {
		require.NoError(t, Save(DefaultConfig(), path))
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() > 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, l.Close())
	assert.Zero(t, overlaps.Load())
}
