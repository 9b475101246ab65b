package main

import (
	"fmt"
	"os"

	"github.com/aretw0/taskflow/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	cfgErr  error
	rootCmd = &cobra.Command{
		Use:   "taskflow",
		Short: "taskflow is a smart to-do assistant for the terminal",
		Long: `taskflow captures tasks from a menu, asks a local LLM to break them into
micro-steps, parses deadlines in plain language and keeps the board in a file,
Redis or SQLite.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			return cfg.Validate()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cfg, cfgErr = config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}
	cfg.BindFlags(rootCmd.PersistentFlags())
}
