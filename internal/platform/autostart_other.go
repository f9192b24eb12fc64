//go:build !darwin && !linux && !windows

package platform

import "fmt"

func enableAutostart(appName, execPath string) error {
	return fmt.Errorf("enable autostart: unsupported platform")
}

func disableAutostart(appName string) error {
	return fmt.Errorf("disable autostart: unsupported platform")
}
