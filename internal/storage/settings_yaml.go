// Package storage persists daemon settings as YAML in the user config
// directory and watches the file for live changes.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"idlewatch/internal/settings"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	IdleAfterSeconds    int    `yaml:"idle_after_seconds"`
	RegistryUnitNanos   int64  `yaml:"registry_unit_nanos"`
	Autostart           bool   `yaml:"autostart"`
	Tray                bool   `yaml:"tray"`
	LogLevel            string `yaml:"log_level"`
}

// SettingsPath returns the settings file location for the app.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads daemon settings from the user config directory.
// If the file does not exist, defaults are returned.
func LoadSettings(appName string) (settings.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return settings.Default(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads daemon settings from an explicit path.
func LoadSettingsFile(configPath string) (settings.Settings, error) {
	loaded := settings.Default()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loaded, nil
		}
		return loaded, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return loaded, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&loaded, fileData)
	return loaded, nil
}

// SaveSettings writes daemon settings to the user config directory.
func SaveSettings(appName string, current settings.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, current)
}

// SaveSettingsFile writes daemon settings to an explicit path.
func SaveSettingsFile(configPath string, current settings.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		PollIntervalSeconds: int(current.PollInterval / time.Second),
		IdleAfterSeconds:    int(current.IdleAfter / time.Second),
		RegistryUnitNanos:   int64(current.RegistryUnit),
		Autostart:           current.Autostart,
		Tray:                current.Tray,
		LogLevel:            current.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(loaded *settings.Settings, fileData yamlSettings) {
	if fileData.PollIntervalSeconds > 0 {
		loaded.PollInterval = time.Duration(fileData.PollIntervalSeconds) * time.Second
	}
	if fileData.IdleAfterSeconds > 0 {
		loaded.IdleAfter = time.Duration(fileData.IdleAfterSeconds) * time.Second
	}
	if fileData.RegistryUnitNanos > 0 {
		loaded.RegistryUnit = time.Duration(fileData.RegistryUnitNanos)
	}
	if fileData.LogLevel != "" {
		loaded.LogLevel = fileData.LogLevel
	}

	loaded.Autostart = fileData.Autostart
	loaded.Tray = fileData.Tray
}
