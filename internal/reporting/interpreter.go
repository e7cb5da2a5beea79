// Package reporting renders evaluation results for people: a plain-language
// interpretation, a terminal table, Markdown and HTML.
package reporting

import (
	"fmt"
	"strings"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/dkfz-mic/adeval/internal/models"
)

// InterpretAUC returns a plain-language label for an area under the ROC curve.
func InterpretAUC(auc float64) string {
	switch {
	case auc >= 0.9:
		return "Excellent discrimination (>=0.90)"
	case auc >= 0.8:
		return "Good discrimination (0.80-0.90)"
	case auc >= 0.7:
		return "Fair discrimination (0.70-0.80)"
	case auc > 0.5:
		return "Poor discrimination (0.50-0.70)"
	case auc == 0.5:
		return "No discrimination (0.50)"
	default:
		return "Worse than chance (<0.50)"
	}
}

// InterpretRate explains a rate such as sensitivity in words.
func InterpretRate(name string, r metrics.Rate, of string) string {
	v, ok := r.Value()
	if !ok {
		return fmt.Sprintf("%s is undefined (no %s in the evaluated set).", name, of)
	}
	return fmt.Sprintf("%s %.1f%%: %s", name, v*100, describeFraction(v, of))
}

func describeFraction(v float64, of string) string {
	switch {
	case v >= 1:
		return "all " + of + " identified"
	case v >= 0.9:
		return "almost all " + of + " identified"
	case v >= 0.7:
		return "most " + of + " identified"
	case v >= 0.5:
		return "about half of the " + of + " identified"
	default:
		return "few " + of + " identified"
	}
}

// FormatSummaryReport produces a plain-language report for res.
func FormatSummaryReport(res *models.EvaluationResult) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	b.WriteString(fmt.Sprintf("Cases:         %d (%d AD, %d non-AD)\n",
		res.CaseCount(), res.Dataset.Positives, res.Dataset.Negatives))
	b.WriteString(fmt.Sprintf("ROC AUC:       %.3f (%s)\n", res.ROC.AUC, InterpretAUC(res.ROC.AUC)))

	p := res.YoudenPoint()
	if p == nil {
		b.WriteString("No decision threshold was swept.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Threshold:     %.4g (Youden-optimal)\n", p.Threshold))
	b.WriteString(fmt.Sprintf("Detection:     %s\n", InterpretRate("Sensitivity", p.Performance.Sensitivity, "dissections")))
	b.WriteString(fmt.Sprintf("               %s\n", InterpretRate("Specificity", p.Performance.Specificity, "non-dissections")))

	if len(res.Detection) > 1 {
		last := res.Detection[len(res.Detection)-1]
		b.WriteString(fmt.Sprintf("\nLowering the threshold over %d steps to %.4g changes sensitivity to %s and specificity to %s.\n",
			len(res.Detection)-1, last.Threshold, last.Performance.Sensitivity, last.Performance.Specificity))
	}

	if p.Stanford != nil {
		st := p.Stanford.Performance
		b.WriteString("\nStanford classification among detected dissections:\n")
		b.WriteString(fmt.Sprintf("  Ascending volume threshold %.4g, %d cases\n", p.Stanford.Threshold, st.Total()))
		b.WriteString(fmt.Sprintf("  %s\n", InterpretRate("Sensitivity", st.Sensitivity, "type A cases")))
		b.WriteString(fmt.Sprintf("  %s\n", InterpretRate("Specificity", st.Specificity, "type B cases")))
	} else if p.StanfordSkipped != "" {
		b.WriteString(fmt.Sprintf("\nStanford classification skipped: %s\n", p.StanfordSkipped))
	}

	return b.String()
}
