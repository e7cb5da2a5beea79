package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/mattn/go-runewidth"
)

var sweepColumns = []struct {
	title string
	width int
}{
	{"Position", 12},
	{"Threshold", 12},
	{"TP/FP/TN/FN", 16},
	{"Sens", 8},
	{"Spec", 8},
	{"PPV", 8},
	{"NPV", 8},
	{"F1", 8},
	{"Stanford", 0},
}

// WriteSweepTable writes one line per sweep position.
func WriteSweepTable(w io.Writer, res *models.EvaluationResult) {
	fmt.Fprintf(w, "ROC AUC %.4f, Youden index %d, %d cases (%d AD)\n\n", //nolint:errcheck
		res.ROC.AUC, res.ROC.YoudenIndex, res.CaseCount(), res.Dataset.Positives)

	var header strings.Builder
	total := 0
	for _, c := range sweepColumns {
		header.WriteString(PadRight(c.title, c.width))
		total += c.width
	}
	total += runewidth.StringWidth("Stanford")
	fmt.Fprintf(w, "%s\n%s\n", header.String(), strings.Repeat("─", total)) //nolint:errcheck

	for i, p := range res.Detection {
		perf := p.Performance
		cells := []string{
			models.SweepKey(i),
			fmt.Sprintf("%.4g", p.Threshold),
			fmt.Sprintf("%d/%d/%d/%d", perf.TP, perf.FP, perf.TN, perf.FN),
			formatRate(perf.Sensitivity),
			formatRate(perf.Specificity),
			formatRate(perf.Precision),
			formatRate(perf.NPV),
			formatRate(perf.F1),
			stanfordCell(p),
		}
		var line strings.Builder
		for j, c := range sweepColumns {
			line.WriteString(PadRight(cells[j], c.width))
		}
		fmt.Fprintf(w, "%s\n", strings.TrimRight(line.String(), " ")) //nolint:errcheck
	}
}

func stanfordCell(p models.ThresholdResult) string {
	switch {
	case p.Stanford != nil:
		perf := p.Stanford.Performance
		return fmt.Sprintf("✓ t=%.4g sens %s spec %s", p.Stanford.Threshold, formatRate(perf.Sensitivity), formatRate(perf.Specificity))
	case p.StanfordSkipped != "":
		return "skipped"
	default:
		return "-"
	}
}

// formatRate prints a rate with three decimals, or "n/a" when undefined.
func formatRate(r metrics.Rate) string {
	v, ok := r.Value()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

// PadRight pads s with spaces so its terminal display width reaches width.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
