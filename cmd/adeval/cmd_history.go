package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dkfz-mic/adeval/internal/reporting"
	"github.com/dkfz-mic/adeval/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var (
		dbPath string
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluation runs",
		Long: `List evaluation runs recorded with "adeval evaluate --db" or with the run
history enabled in .adeval.yaml, newest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}
			if !cmd.Flags().Changed("db") {
				pc, err := loadProjectConfig()
				if err != nil {
					return err
				}
				dbPath = pc.Store.Path
			}

			s, err := store.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck

			runs, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				data, err := json.MarshalIndent(runs, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			printHistoryTable(out, runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "History database (default from .adeval.yaml)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list, 0 for all")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func printHistoryTable(w io.Writer, runs []*store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.") //nolint:errcheck
		return
	}

	const (
		colID    = 10
		colTime  = 21
		colCases = 8
		colAUC   = 9
		colRate  = 9
	)
	fmt.Fprintf(w, "%s%s%s%s%s%s%s\n", //nolint:errcheck
		reporting.PadRight("Run", colID),
		reporting.PadRight("Created", colTime),
		reporting.PadRight("Cases", colCases),
		reporting.PadRight("AUC", colAUC),
		reporting.PadRight("Sens", colRate),
		reporting.PadRight("Spec", colRate),
		"Input")
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", colID+colTime+colCases+colAUC+2*colRate+5)) //nolint:errcheck

	for _, r := range runs {
		id := r.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		input := r.SegmentationCSV
		if r.GroundTruthCSV != "" {
			input += " + " + r.GroundTruthCSV
		}
		fmt.Fprintf(w, "%s%s%s%s%s%s%s\n", //nolint:errcheck
			reporting.PadRight(id, colID),
			reporting.PadRight(r.Created().Local().Format(time.DateTime), colTime),
			reporting.PadRight(fmt.Sprintf("%d", r.Cases), colCases),
			reporting.PadRight(fmt.Sprintf("%.4f", r.AUC), colAUC),
			reporting.PadRight(r.Sensitivity.String(), colRate),
			reporting.PadRight(r.Specificity.String(), colRate),
			input)
	}
}
