package reporting

import (
	"fmt"
	"strings"

	"github.com/dkfz-mic/adeval/internal/models"
)

// MarkdownReport formats res as a Markdown report, suitable for a pull
// request comment or a wiki page.
func MarkdownReport(res *models.EvaluationResult, title string) string {
	var b strings.Builder

	if title == "" {
		title = "Aortic Dissection Detection"
	}
	b.WriteString(fmt.Sprintf("## %s\n\n", title))

	b.WriteString(fmt.Sprintf("**ROC AUC:** %.4f | **Cases:** %d | **AD:** %d | **non-AD:** %d\n\n",
		res.ROC.AUC, res.CaseCount(), res.Dataset.Positives, res.Dataset.Negatives))
	b.WriteString(fmt.Sprintf("- **Interpretation:** %s\n", InterpretAUC(res.ROC.AUC)))
	if p := res.YoudenPoint(); p != nil {
		b.WriteString(fmt.Sprintf("- **Youden-optimal threshold:** %.4g (axis index %d)\n", p.Threshold, res.ROC.YoudenIndex))
	}
	b.WriteString("\n")

	b.WriteString("### Detection Performance\n\n")
	b.WriteString("| Position | Threshold | TP | FP | TN | FN | Sensitivity | Specificity | Precision | NPV | F1 |\n")
	b.WriteString("|----------|-----------|----|----|----|----|-------------|-------------|-----------|-----|----|\n")
	for i, p := range res.Detection {
		perf := p.Performance
		b.WriteString(fmt.Sprintf("| %s | %.4g | %d | %d | %d | %d | %s | %s | %s | %s | %s |\n",
			models.SweepKey(i), p.Threshold, perf.TP, perf.FP, perf.TN, perf.FN,
			formatRate(perf.Sensitivity), formatRate(perf.Specificity),
			formatRate(perf.Precision), formatRate(perf.NPV), formatRate(perf.F1)))
	}
	b.WriteString("\n")

	var stanfordRows []string
	var skipped []string
	for i, p := range res.Detection {
		switch {
		case p.Stanford != nil:
			perf := p.Stanford.Performance
			stanfordRows = append(stanfordRows, fmt.Sprintf("| %s | %.4g | %d | %s | %s | %s |",
				models.SweepKey(i), p.Stanford.Threshold, perf.Total(),
				formatRate(perf.Sensitivity), formatRate(perf.Specificity), formatRate(perf.Accuracy)))
		case p.StanfordSkipped != "":
			skipped = append(skipped, fmt.Sprintf("- %s: %s", models.SweepKey(i), p.StanfordSkipped))
		}
	}
	if len(stanfordRows) > 0 || len(skipped) > 0 {
		b.WriteString("### Stanford Classification\n\n")
	}
	if len(stanfordRows) > 0 {
		b.WriteString("| Position | Ascending threshold | Cases | Sensitivity | Specificity | Accuracy |\n")
		b.WriteString("|----------|---------------------|-------|-------------|-------------|----------|\n")
		for _, row := range stanfordRows {
			b.WriteString(row + "\n")
		}
		b.WriteString("\n")
	}
	if len(skipped) > 0 {
		b.WriteString("Skipped positions:\n\n")
		for _, s := range skipped {
			b.WriteString(s + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
