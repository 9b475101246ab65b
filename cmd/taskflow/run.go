package main

import (
	"github.com/aretw0/taskflow/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive task assistant",
	Long:  `Loads the task board from the configured store and opens the main menu.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSession(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// 'run' is the default command.
	rootCmd.RunE = runCmd.RunE
}
