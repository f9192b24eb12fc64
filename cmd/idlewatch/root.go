package main

import (
	"github.com/spf13/cobra"
)

const appName = "idlewatch"

const version = "0.1.0"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Query and monitor system idle time",
		Long:         "idlewatch reports how long the system has been without user input\nand can run as a daemon that classifies the machine active or idle.",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCommand(),
		newStatusCommand(),
		newAutostartCommand(),
	)
	return root
}
