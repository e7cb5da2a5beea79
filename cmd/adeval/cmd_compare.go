package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/dkfz-mic/adeval/internal/reporting"
	"github.com/dkfz-mic/adeval/internal/results"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <result1.json> <result2.json> [result3.json ...]",
		Short: "Compare multiple evaluation result files",
		Long: `Compare results from multiple evaluation runs side by side.

Loads two or more result documents and reports ROC AUC, the Youden-optimal
threshold and the sensitivity and specificity at that threshold, with deltas
between the last and the first file.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			loaded := make([]*models.EvaluationResult, 0, len(args))
			for _, path := range args {
				res, err := results.Read(path)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				loaded = append(loaded, res)
			}

			report := buildComparisonReport(args, loaded)
			if format == "json" {
				return printComparisonJSON(cmd.OutOrStdout(), report)
			}
			printComparisonTable(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

// resultSummary holds the compared values of one result file.
type resultSummary struct {
	File            string       `json:"file"`
	Cases           int          `json:"cases"`
	AUC             float64      `json:"roc_auc"`
	YoudenThreshold *float64     `json:"youden_threshold"`
	Sensitivity     metrics.Rate `json:"sensitivity"`
	Specificity     metrics.Rate `json:"specificity"`
	SweepPositions  int          `json:"sweep_positions"`
	HasStanford     bool         `json:"has_stanford"`
}

// comparisonReport is the full comparison output.
type comparisonReport struct {
	Results          []resultSummary `json:"results"`
	AUCDelta         float64         `json:"roc_auc_delta"`
	SensitivityDelta metrics.Rate    `json:"sensitivity_delta"`
	SpecificityDelta metrics.Rate    `json:"specificity_delta"`
}

func buildComparisonReport(files []string, loaded []*models.EvaluationResult) *comparisonReport {
	report := &comparisonReport{}
	for i, res := range loaded {
		s := resultSummary{
			File:           files[i],
			Cases:          res.CaseCount(),
			AUC:            res.ROC.AUC,
			SweepPositions: len(res.Detection),
			HasStanford:    res.HasStanford(),
		}
		if p := res.YoudenPoint(); p != nil {
			threshold := p.Threshold
			s.YoudenThreshold = &threshold
			s.Sensitivity = p.Performance.Sensitivity
			s.Specificity = p.Performance.Specificity
		}
		report.Results = append(report.Results, s)
	}

	first, last := report.Results[0], report.Results[len(report.Results)-1]
	report.AUCDelta = last.AUC - first.AUC
	report.SensitivityDelta = rateDelta(first.Sensitivity, last.Sensitivity)
	report.SpecificityDelta = rateDelta(first.Specificity, last.Specificity)
	return report
}

// rateDelta returns b-a, undefined when either rate is undefined.
func rateDelta(a, b metrics.Rate) metrics.Rate {
	av, aok := a.Value()
	bv, bok := b.Value()
	if !aok || !bok {
		return metrics.Undefined
	}
	return metrics.Defined(bv - av)
}

func printComparisonJSON(w io.Writer, r *comparisonReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printComparisonTable(w io.Writer, r *comparisonReport) {
	const (
		colFile   = 32
		colNum    = 12
		colSweeps = 8
	)
	fmt.Fprintf(w, "%s%s%s%s%s%s%s\n", //nolint:errcheck
		reporting.PadRight("File", colFile),
		reporting.PadRight("Cases", colNum),
		reporting.PadRight("AUC", colNum),
		reporting.PadRight("Threshold", colNum),
		reporting.PadRight("Sens", colNum),
		reporting.PadRight("Spec", colNum),
		"Sweep")
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", colFile+5*colNum+colSweeps)) //nolint:errcheck

	for _, s := range r.Results {
		threshold := "-"
		if s.YoudenThreshold != nil {
			threshold = fmt.Sprintf("%.4g", *s.YoudenThreshold)
		}
		fmt.Fprintf(w, "%s%s%s%s%s%s%d\n", //nolint:errcheck
			reporting.PadRight(truncateName(s.File, colFile-1), colFile),
			reporting.PadRight(fmt.Sprintf("%d", s.Cases), colNum),
			reporting.PadRight(fmt.Sprintf("%.4f", s.AUC), colNum),
			reporting.PadRight(threshold, colNum),
			reporting.PadRight(s.Sensitivity.String(), colNum),
			reporting.PadRight(s.Specificity.String(), colNum),
			s.SweepPositions)
	}

	fmt.Fprintf(w, "\nΔ AUC %+.4f, Δ sensitivity %s, Δ specificity %s (last - first)\n", //nolint:errcheck
		r.AUCDelta, signedRate(r.SensitivityDelta), signedRate(r.SpecificityDelta))
}

func signedRate(r metrics.Rate) string {
	v, ok := r.Value()
	if !ok {
		return "undefined"
	}
	return fmt.Sprintf("%+.4f", v)
}

// truncateName shortens name to maxLen runes, marking the cut with an ellipsis.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return "…" + string(runes[len(runes)-maxLen+1:])
}
