package main

import (
	"fmt"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var segmentationCSV, groundTruthCSV string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check input tables without evaluating",
		Long: `Validate the volume table and, optionally, the ground-truth table.

Reports every missing value, invalid label, negative volume and identifier
mismatch in one pass. Exits with status 1 when the input is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(segmentationCSV, groundTruthCSV)
			if err != nil {
				return err
			}
			positives := metrics.CountPositives(table.Labels())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s: %d cases (%d AD, %d non-AD)\n", //nolint:errcheck
				segmentationCSV, table.Len(), positives, table.Len()-positives)
			if table.HasGroundTruth {
				fmt.Fprintf(out, "✓ ground truth available for all cases\n") //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&segmentationCSV, "segmentation-csv", "s", "", "CSV of per-case volumes and is_AD labels (required)")
	cmd.Flags().StringVarP(&groundTruthCSV, "ground-truth-csv", "g", "", "CSV of ground-truth volumes")
	_ = cmd.MarkFlagRequired("segmentation-csv")

	return cmd
}
