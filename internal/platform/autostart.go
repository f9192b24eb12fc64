package platform

import "fmt"

// EnableAutostart registers the executable to start at login using the
// OS-native mechanism (launchd agent, XDG autostart entry, registry
// Run key).
func EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	return enableAutostart(appName, execPath)
}

// DisableAutostart removes the login registration. Removing an entry
// that does not exist is not an error.
func DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}
	return disableAutostart(appName)
}
