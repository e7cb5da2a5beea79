package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adeval",
		Short: "adeval - evaluate aortic dissection detection from segmentation volumes",
		Long: `adeval evaluates how well false lumen and membrane volumes, measured on
aortic segmentations, detect aortic dissection.

It sweeps the ROC decision threshold from the Youden-optimal point, reports
confusion metrics at every position and, when ground truth is available,
evaluates the Stanford type A/B classification among detected dissections.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
