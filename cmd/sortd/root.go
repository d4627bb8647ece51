package main

import (
	"github.com/spf13/cobra"

	"sortd/internal/classify"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var jsonLogFlag bool

	ctx := newCommandContext(&configFlag, &logLevelFlag, &jsonLogFlag)

	rootCmd := &cobra.Command{
		Use:           "sortd",
		Short:         "Organize the files in a directory by extension, size, date, or duplicate content",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().BoolVar(&jsonLogFlag, "json-log", false, "Emit JSON log records")

	rootCmd.AddCommand(newModeCommand(ctx, classify.ModeExtension, "extension [path]",
		"Move files into folders named after their extensions"))
	rootCmd.AddCommand(newModeCommand(ctx, classify.ModeSize, "size [path]",
		"Move files into light/medium/heavy folders by size"))
	rootCmd.AddCommand(newDateCommand(ctx))
	rootCmd.AddCommand(newDuplicatesCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
