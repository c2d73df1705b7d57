// Package export serializes a finalized report into its output
// documents: an interactive HTML page, a flat text summary, and a JSON
// sidecar for the web server.
package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// HTMLReporter renders a finalized report as a single self-contained
// HTML document: collapsible sections in run order, a badge per
// outcome, and the summary widget with the compliance bar.
type HTMLReporter struct {
	writer io.Writer
}

func NewHTMLReporter(writer io.Writer) *HTMLReporter {
	return &HTMLReporter{writer: writer}
}

type htmlSection struct {
	domain.Section
	Open   bool
	Static bool
	Counts sectionCounts
}

type sectionCounts struct {
	Passed int
	Failed int
	Other  int
}

type htmlData struct {
	*domain.Report
	Band     string
	Sections []htmlSection
}

func (r *HTMLReporter) Handle(report *domain.Report) error {
	data := htmlData{
		Report: report,
		Band:   band(report.Percent),
	}
	for i, s := range report.Sections {
		hs := htmlSection{
			Section: s,
			// Exactly one section is open by default: the first.
			Open:   i == 0,
			Static: s.DisplayState == domain.DisplayNone,
		}
		for _, item := range s.Items {
			switch item.Outcome {
			case domain.OutcomePass:
				hs.Counts.Passed++
			case domain.OutcomeFail:
				hs.Counts.Failed++
			default:
				hs.Counts.Other++
			}
		}
		data.Sections = append(data.Sections, hs)
	}

	t, err := template.New("report").Funcs(template.FuncMap{
		"badgeClass": badgeClass,
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(r.writer, data)
}

// band maps a percentage onto the red/amber/green display banding.
func band(percent int) string {
	switch {
	case percent >= 90:
		return "green"
	case percent >= 70:
		return "amber"
	default:
		return "red"
	}
}

func badgeClass(o domain.Outcome) string {
	switch o {
	case domain.OutcomePass:
		return "pass"
	case domain.OutcomeFail:
		return "fail"
	case domain.OutcomeWarning:
		return "warning"
	case domain.OutcomeInfo:
		return "info"
	case domain.OutcomeAccessDenied:
		return "denied"
	default:
		return "info"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #333; background: #f5f5f5; }
h1 { color: #222; }
.meta { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: 12px 16px; margin-bottom: 20px; }
.meta div { margin: 4px 0; }
.meta span.key { display: inline-block; width: 160px; font-weight: bold; }
.summary { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: 16px; margin-bottom: 24px; }
.summary .stats { display: flex; gap: 24px; margin-bottom: 12px; }
.summary .stat-value { font-size: 22px; font-weight: bold; }
.bar { background: #e0e0e0; border-radius: 4px; height: 18px; overflow: hidden; }
.bar .fill { height: 100%; }
.fill.green { background: #4CAF50; }
.fill.amber { background: #ff9800; }
.fill.red { background: #f44336; }
.pct.green { color: #4CAF50; }
.pct.amber { color: #ff9800; }
.pct.red { color: #f44336; }
.section { background: #fff; border: 1px solid #ddd; border-radius: 4px; margin-bottom: 12px; }
.section-header { cursor: pointer; padding: 12px 16px; font-weight: bold; display: flex; justify-content: space-between; }
.section-counts { font-weight: normal; color: #666; }
.section-body { padding: 0 16px 12px; }
.section-body.collapsed { display: none; }
.check-item { border-left: 4px solid #ccc; margin: 10px 0; padding: 8px 12px; background: #fafafa; }
.check-item.pass { border-color: #4CAF50; }
.check-item.fail { border-color: #f44336; }
.check-item.warning { border-color: #ff9800; }
.check-item.denied { border-color: #9e9e9e; }
.check-item.info { border-color: #2196F3; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 3px; color: #fff; font-size: 12px; margin-right: 8px; }
.badge.pass { background: #4CAF50; }
.badge.fail { background: #f44336; }
.badge.warning { background: #ff9800; }
.badge.denied { background: #9e9e9e; }
.badge.info { background: #2196F3; }
.recommendation { margin-top: 6px; padding: 6px 10px; background: #fff8e1; border: 1px solid #ffe082; border-radius: 3px; }
.no-findings { color: #666; }
</style>
</head>
<body>

<h1>{{.Title}}</h1>

<div class="meta">
<div><span class="key">Account</span>{{.AccountID}}</div>
<div><span class="key">Scope</span>{{.Scope}}</div>
<div><span class="key">Assessed at</span>{{.Timestamp.Format "2006-01-02 15:04:05 MST"}}</div>
<div><span class="key">Run as</span>{{.Actor}}</div>
</div>

<div class="summary">
<div class="stats">
<div><div class="stat-value">{{.Counters.Total}}</div>Total</div>
<div><div class="stat-value">{{.Counters.Passed}}</div>Passed</div>
<div><div class="stat-value">{{.Counters.Failed}}</div>Failed</div>
<div><div class="stat-value">{{.Counters.Warning}}</div>Warnings</div>
<div><div class="stat-value pct {{.Band}}">{{.Percent}}%</div>Compliance</div>
</div>
<div class="bar"><div class="fill {{.Band}}" style="width: {{.Percent}}%"></div></div>
</div>

{{range .Sections}}
<div class="section">
{{if .Static}}
<div class="section-header">{{.Title}}<span class="section-counts">{{.Counts.Passed}} passed / {{.Counts.Failed}} failed / {{.Counts.Other}} other</span></div>
<div class="section-body">
{{else}}
<div class="section-header" onclick="toggle(this)">{{.Title}}<span class="section-counts">{{.Counts.Passed}} passed / {{.Counts.Failed}} failed / {{.Counts.Other}} other</span></div>
<div class="section-body{{if not .Open}} collapsed{{end}}">
{{end}}
{{if .Items}}
{{range .Items}}
<div class="check-item {{badgeClass .Outcome}}">
<h3><span class="badge {{badgeClass .Outcome}}">{{.Outcome}}</span>{{.Title}}</h3>
<div>{{.Details}}</div>
{{if .Recommendation}}<div class="recommendation"><strong>Recommendation:</strong> {{.Recommendation}}</div>{{end}}
</div>
{{end}}
{{else}}
<p class="no-findings">No checks were recorded for this section.</p>
{{end}}
</div>
</div>
{{end}}

<script>
function toggle(header) {
  var body = header.nextElementSibling;
  body.classList.toggle('collapsed');
}
</script>

</body>
</html>
`
