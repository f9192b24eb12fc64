package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"idlewatch/internal/idle"
	"idlewatch/internal/storage"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current system idle time",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := storage.LoadSettings(appName)
			if err != nil {
				return err
			}

			handle, err := idle.Acquire(loaded.IdleConfig())
			if err != nil {
				return err
			}
			defer func() {
				_ = handle.Close()
			}()

			seconds, err := handle.IdleSeconds()
			if err != nil {
				if errors.Is(err, idle.ErrUnavailable) {
					fmt.Fprintln(cmd.OutOrStdout(), "idle time: unknown")
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "idle for %ds\n", seconds)
			return nil
		},
	}
}
