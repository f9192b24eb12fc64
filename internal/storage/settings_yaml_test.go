package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlewatch/internal/settings"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "idlewatch", "settings.yaml")

	loaded, err := LoadSettingsFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), loaded)
}

func TestSettingsRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "idlewatch", "settings.yaml")

	saved := settings.Settings{
		PollInterval: 2 * time.Second,
		IdleAfter:    90 * time.Second,
		RegistryUnit: time.Nanosecond,
		Autostart:    true,
		Tray:         true,
		LogLevel:     "debug",
	}
	require.NoError(t, SaveSettingsFile(configPath, saved))

	loaded, err := LoadSettingsFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsFileIgnoresInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	content := []byte("poll_interval_seconds: -3\nidle_after_seconds: 0\nlog_level: \"\"\n")
	require.NoError(t, os.WriteFile(configPath, content, 0o644))

	loaded, err := LoadSettingsFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, settings.Default().PollInterval, loaded.PollInterval)
	assert.Equal(t, settings.Default().IdleAfter, loaded.IdleAfter)
	assert.Equal(t, settings.Default().LogLevel, loaded.LogLevel)
}

func TestLoadSettingsFileRejectsMalformedYaml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{not yaml"), 0o644))

	_, err := LoadSettingsFile(configPath)
	assert.Error(t, err)
}

func TestWatchSettingsFileSeesFileCreatedAfterWatch(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "settings.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The file does not exist yet; only the directory does.
	updates, err := WatchSettingsFile(ctx, configPath)
	require.NoError(t, err)

	created := settings.Default()
	created.PollInterval = 7 * time.Second
	require.NoError(t, SaveSettingsFile(configPath, created))

	select {
	case reloaded := <-updates:
		assert.Equal(t, 7*time.Second, reloaded.PollInterval)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for newly created settings file")
	}
}

func TestWatchSettingsFileDeliversReload(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, SaveSettingsFile(configPath, settings.Default()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := WatchSettingsFile(ctx, configPath)
	require.NoError(t, err)

	changed := settings.Default()
	changed.IdleAfter = 42 * time.Second
	require.NoError(t, SaveSettingsFile(configPath, changed))

	select {
	case reloaded := <-updates:
		assert.Equal(t, 42*time.Second, reloaded.IdleAfter)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for settings reload")
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel not closed after cancel")
		}
	}
}
