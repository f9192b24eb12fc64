//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func enableAutostart(appName, execPath string) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("enable autostart: resolve config dir: %w", err)
	}

	autostartDir := filepath.Join(configDir, "autostart")
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}

	desktopFilePath := filepath.Join(autostartDir, desktopFileName(appName))
	entry := buildDesktopEntry(appName, execPath)
	if err := os.WriteFile(desktopFilePath, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}

	return nil
}

func disableAutostart(appName string) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("disable autostart: resolve config dir: %w", err)
	}

	desktopFilePath := filepath.Join(configDir, "autostart", desktopFileName(appName))
	if err := os.Remove(desktopFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}

	return nil
}
