package main

import (
	"github.com/dkfz-mic/adeval/internal/reporting"
	"github.com/dkfz-mic/adeval/internal/results"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var (
		format    string
		interpret bool
	)

	cmd := &cobra.Command{
		Use:   "report <result.json>",
		Short: "Render a stored evaluation result",
		Long: `Render a result document written by "adeval evaluate" as a text table,
Markdown or a standalone HTML page. Compressed documents (.gz, .zst) are
read transparently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := reporting.ParseFormat(format)
			if err != nil {
				return err
			}
			res, err := results.Read(args[0])
			if err != nil {
				return err
			}
			return reporting.Render(cmd.OutOrStdout(), res, f, interpret)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown or html")
	cmd.Flags().BoolVar(&interpret, "interpret", true, "Append a plain-language interpretation to text reports")

	return cmd
}
