// Package aggregate owns the running outcome totals for an assessment
// phase and the one compliance-percentage calculation used everywhere
// a percentage is displayed.
package aggregate

import "github.com/de-tools/audit-atlas/pkg/models/domain"

// Counters accumulates classified outcomes. A run owns exactly one
// instance per phase and passes it to every call site; counts can only
// move through Apply, so the taxonomy invariant
// Total == Passed + Failed + Warning + Info + AccessDenied
// holds after every event.
type Counters struct {
	total        int
	passed       int
	failed       int
	warning      int
	info         int
	accessDenied int
}

// New returns zeroed counters.
func New() *Counters {
	return &Counters{}
}

// Apply records one classification event.
func (c *Counters) Apply(o domain.Outcome) {
	c.total++
	switch o {
	case domain.OutcomePass:
		c.passed++
	case domain.OutcomeFail:
		c.failed++
	case domain.OutcomeWarning:
		c.warning++
	case domain.OutcomeInfo:
		c.info++
	case domain.OutcomeAccessDenied:
		c.accessDenied++
	}
}

// Reset zeroes all counts. Only callers reset, at phase boundaries;
// the engine never does it implicitly.
func (c *Counters) Reset() {
	*c = Counters{}
}

// Snapshot returns the current totals as an immutable value.
func (c *Counters) Snapshot() domain.Counters {
	return domain.Counters{
		Total:        c.total,
		Passed:       c.passed,
		Failed:       c.failed,
		Warning:      c.warning,
		Info:         c.info,
		AccessDenied: c.accessDenied,
	}
}

// Percentage derives the compliance percentage from a counters
// snapshot: passed*100/(total-warning-accessDenied), floor division,
// 0 when the denominator is 0.
//
// Warning items are controls this run did not actually adjudicate
// (manual attestation or ambiguous evidence) and AccessDenied items
// are checks the run could not attempt at all; neither belongs in the
// denominator. This is the only percentage formula in the codebase.
func Percentage(c domain.Counters) int {
	denom := c.Total - c.Warning - c.AccessDenied
	if denom <= 0 {
		return 0
	}
	return c.Passed * 100 / denom
}
