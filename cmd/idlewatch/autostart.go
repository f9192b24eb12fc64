package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idlewatch/internal/platform"
	"idlewatch/internal/storage"
)

func newAutostartCommand() *cobra.Command {
	autostart := &cobra.Command{
		Use:   "autostart",
		Short: "Manage the start-at-login registration",
	}

	autostart.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Start the daemon at login",
			RunE: func(cmd *cobra.Command, args []string) error {
				execPath, err := os.Executable()
				if err != nil {
					return fmt.Errorf("resolve executable path: %w", err)
				}
				if err := platform.EnableAutostart(appName, execPath); err != nil {
					return err
				}
				return rememberAutostart(true)
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting the daemon at login",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := platform.DisableAutostart(appName); err != nil {
					return err
				}
				return rememberAutostart(false)
			},
		},
	)
	return autostart
}

func rememberAutostart(enabled bool) error {
	loaded, err := storage.LoadSettings(appName)
	if err != nil {
		return err
	}
	loaded.Autostart = enabled
	return storage.SaveSettings(appName, loaded)
}
