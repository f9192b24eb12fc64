// Package settings defines the user-editable daemon configuration.
package settings

import (
	"time"

	"idlewatch/internal/core/model"
	"idlewatch/internal/idle"
)

// Settings defines editable daemon preferences.
type Settings struct {
	// PollInterval is how often the idle handle is queried.
	PollInterval time.Duration
	// IdleAfter is the inactivity threshold for the idle state.
	IdleAfter time.Duration
	// RegistryUnit converts raw registry counts to a duration on
	// platforms that report a unitless counter.
	RegistryUnit time.Duration

	Autostart bool
	Tray      bool
	LogLevel  string
}

// Default returns the default daemon settings.
func Default() Settings {
	return Settings{
		PollInterval: 5 * time.Second,
		IdleAfter:    5 * time.Minute,
		RegistryUnit: time.Nanosecond,
		Autostart:    false,
		Tray:         false,
		LogLevel:     "info",
	}
}

// MonitorConfig converts settings to the monitor configuration.
func (settings Settings) MonitorConfig() model.MonitorConfig {
	return model.MonitorConfig{
		PollInterval: settings.PollInterval,
		IdleAfter:    settings.IdleAfter,
	}
}

// IdleConfig converts settings to the idle handle configuration.
func (settings Settings) IdleConfig() idle.Config {
	return idle.Config{RegistryUnit: settings.RegistryUnit}
}
