package reporting

import (
	"bytes"
	"fmt"
	"html"

	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25em 0.6em; text-align: right; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLReport renders the Markdown report of res as a standalone HTML page.
func HTMLReport(res *models.EvaluationResult, title string) (string, error) {
	if title == "" {
		title = "Aortic Dissection Detection"
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(MarkdownReport(res, title)), &body); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}
	return fmt.Sprintf(htmlPage, html.EscapeString(title), body.String()), nil
}
