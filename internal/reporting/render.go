package reporting

import (
	"fmt"
	"io"

	"github.com/dkfz-mic/adeval/internal/models"
)

// Format selects a report renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "text", "markdown" and "html". "default" and the empty
// string mean text.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "default", string(FormatText):
		return FormatText, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatHTML):
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported format %q: must be text, markdown or html", s)
}

// Render writes res to w in format f. interpret appends the plain-language
// summary to text reports.
func Render(w io.Writer, res *models.EvaluationResult, f Format, interpret bool) error {
	switch f {
	case FormatText:
		WriteSweepTable(w, res)
		if interpret {
			_, err := fmt.Fprintf(w, "\n%s", FormatSummaryReport(res))
			return err
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, MarkdownReport(res, ""))
		return err
	case FormatHTML:
		page, err := HTMLReport(res, "")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	}
	return fmt.Errorf("unsupported format %q", f)
}
