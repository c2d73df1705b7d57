package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:     "AWS Compliance Assessment",
		AccountID: "123456789012",
		Scope:     "eu-west-1",
		Actor:     "arn:aws:iam::123456789012:user/auditor",
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Sections: []domain.Section{
			{
				ID:           "permissions",
				Title:        "Permissions Pre-Flight",
				DisplayState: domain.DisplayExpanded,
				Items: []domain.CheckItem{
					{Title: "Resolve caller identity", Outcome: domain.OutcomePass, Details: "available"},
				},
			},
			{
				ID:           "network",
				Title:        "Network Exposure",
				DisplayState: domain.DisplayCollapsed,
				Items: []domain.CheckItem{
					{
						Title:          "Security groups restrict admin ports",
						Outcome:        domain.OutcomeFail,
						Details:        "sg-1 exposes port 22",
						Recommendation: "Restrict inbound rules to known CIDRs.",
					},
					{Title: "Default groups restrict traffic", Outcome: domain.OutcomeAccessDenied, Details: "denied"},
				},
			},
		},
		Counters: domain.Counters{Total: 5, Passed: 3, Failed: 1, Warning: 1},
		Percent:  75,
	}
}

func TestHTMLReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLReporter(&buf).Handle(sampleReport()))
	html := buf.String()

	// Fixed key/value header block.
	assert.Contains(t, html, "123456789012")
	assert.Contains(t, html, "eu-west-1")
	assert.Contains(t, html, "arn:aws:iam::123456789012:user/auditor")
	assert.Contains(t, html, "2026-03-14 09:30:00 UTC")

	// Summary widget: number, proportional bar, amber band for 75%.
	assert.Contains(t, html, "75%")
	assert.Contains(t, html, `class="fill amber" style="width: 75%"`)

	// Badges per outcome kind.
	assert.Contains(t, html, `<span class="badge pass">PASS</span>`)
	assert.Contains(t, html, `<span class="badge fail">FAIL</span>`)
	assert.Contains(t, html, `<span class="badge denied">ACCESS DENIED</span>`)

	// Recommendation block separated from the finding body.
	assert.Contains(t, html, "Restrict inbound rules to known CIDRs.")
	assert.Contains(t, html, `class="recommendation"`)

	// Sections render in insertion order.
	assert.Less(t, strings.Index(html, "Permissions Pre-Flight"), strings.Index(html, "Network Exposure"))

	// Exactly one section body is open by default.
	assert.Equal(t, 1, strings.Count(html, `class="section-body collapsed"`))
	assert.Equal(t, 1, strings.Count(html, `class="section-body"`))
}

func TestHTMLReporter_Banding(t *testing.T) {
	tests := []struct {
		percent int
		band    string
	}{
		{0, "red"}, {69, "red"}, {70, "amber"}, {89, "amber"}, {90, "green"}, {100, "green"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.band, band(tt.percent), "percent %d", tt.percent)
	}
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(&buf).Handle(sampleReport()))
	text := buf.String()

	assert.Contains(t, text, "Total: 5  Passed: 3  Failed: 1  Warnings: 1  Access denied: 0")
	assert.Contains(t, text, "Compliance: 75%")
	assert.Contains(t, text, "Security groups restrict admin ports: FAIL")
	assert.Contains(t, text, "Resolve caller identity: PASS")
	assert.NotContains(t, text, "<", "text summary must carry no markup")

	// Rendering is deterministic for a sealed report.
	var again bytes.Buffer
	require.NoError(t, NewTextReporter(&again).Handle(sampleReport()))
	assert.Equal(t, buf.String(), again.String())
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Handle(sampleReport()))

	var summary api.RunSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))

	assert.Equal(t, "123456789012", summary.AccountID)
	assert.Equal(t, 75, summary.Percent)
	assert.Equal(t, 5, summary.Counters.Total)
	require.Len(t, summary.Sections, 2)
	assert.Equal(t, "FAIL", summary.Sections[1].Items[0].Outcome)
}
