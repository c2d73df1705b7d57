package export

import (
	"encoding/json"
	"io"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// JSONReporter writes the api.RunSummary sidecar consumed by the
// report-browsing server.
type JSONReporter struct {
	writer io.Writer
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	return &JSONReporter{writer: writer}
}

func (r *JSONReporter) Handle(report *domain.Report) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(Summary(report))
}

// Summary converts a finalized domain report into its API form.
func Summary(report *domain.Report) api.RunSummary {
	summary := api.RunSummary{
		Title:     report.Title,
		AccountID: report.AccountID,
		Scope:     report.Scope,
		Actor:     report.Actor,
		Timestamp: report.Timestamp,
		Percent:   report.Percent,
		Counters: api.Counters{
			Total:        report.Counters.Total,
			Passed:       report.Counters.Passed,
			Failed:       report.Counters.Failed,
			Warning:      report.Counters.Warning,
			Info:         report.Counters.Info,
			AccessDenied: report.Counters.AccessDenied,
		},
	}
	for _, s := range report.Sections {
		section := api.Section{ID: s.ID, Title: s.Title}
		for _, item := range s.Items {
			section.Items = append(section.Items, api.CheckItem{
				Title:          item.Title,
				Outcome:        item.Outcome.String(),
				Details:        item.Details,
				Recommendation: item.Recommendation,
			})
		}
		summary.Sections = append(summary.Sections, section)
	}
	return summary
}
