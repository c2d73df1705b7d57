package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// TextReporter writes the flat newline-delimited summary: the same
// totals as the HTML document plus one title/outcome line per item.
// Meant for log capture and diffing between runs.
type TextReporter struct {
	writer io.Writer
}

func NewTextReporter(writer io.Writer) *TextReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &TextReporter{writer: writer}
}

func (r *TextReporter) Handle(report *domain.Report) error {
	tmpl := `{{.Title}}
Account:  {{.AccountID}}
Scope:    {{.Scope}}
Run as:   {{.Actor}}
Assessed: {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}

Total: {{.Counters.Total}}  Passed: {{.Counters.Passed}}  Failed: {{.Counters.Failed}}  Warnings: {{.Counters.Warning}}  Access denied: {{.Counters.AccessDenied}}
Compliance: {{.Percent}}%
{{range .Sections}}
=== {{.Title}} ===
{{range .Items}}{{.Title}}: {{.Outcome}}
{{end}}{{end}}`

	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse summary template: %w", err)
	}
	return t.Execute(r.writer, report)
}
