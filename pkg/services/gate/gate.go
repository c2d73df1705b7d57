// Package gate runs the pre-flight capability phase: probe every
// required capability once, measure how much of the checklist this
// run can actually perform, and decide whether the assessment
// continues.
package gate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/aggregate"
	"github.com/de-tools/audit-atlas/pkg/services/evidence"
	"github.com/de-tools/audit-atlas/pkg/services/outcome"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
	"github.com/de-tools/audit-atlas/pkg/services/report"
)

// DefaultThreshold is the minimum percentage of usable capabilities
// below which the operator must explicitly confirm the run.
const DefaultThreshold = 70

// SectionID is the dedicated report section the gate writes into.
const SectionID = "permissions"

// Capability is one required API permission, probed exactly once, in
// list order.
type Capability struct {
	ID             string
	Title          string
	Probe          probe.Func
	Recommendation string
}

// Decision is the gate's terminal state.
type Decision int

const (
	DecisionContinue Decision = iota
	DecisionAborted
)

// ConfirmFunc asks the operator whether to proceed despite a
// capability shortfall. Returning false aborts the run.
type ConfirmFunc func(availablePct int) bool

// Gate evaluates capability coverage against a threshold.
type Gate struct {
	Threshold int
	// Confirm is consulted only below the threshold. A nil Confirm
	// below the threshold aborts.
	Confirm ConfirmFunc
}

// New returns a gate with the default threshold.
func New(confirm ConfirmFunc) *Gate {
	return &Gate{Threshold: DefaultThreshold, Confirm: confirm}
}

// Run probes every capability, records one item per capability in the
// gate's section, and returns the continue/abort decision. The caller
// must reset the counters after a Continue so the gate's own counts do
// not pollute the final compliance percentage.
func (g *Gate) Run(ctx context.Context, caps []Capability, b *report.Builder, agg *aggregate.Counters) (Decision, error) {
	logger := zerolog.Ctx(ctx)

	if err := b.OpenSection(SectionID, "Permissions Pre-Flight", domain.DisplayExpanded); err != nil {
		return DecisionAborted, err
	}

	for _, c := range caps {
		res := c.Probe(ctx)

		out := classifyCapability(res)
		agg.Apply(out)

		item := domain.CheckItem{Title: c.Title, Outcome: out}
		switch out {
		case domain.OutcomePass:
			item.Details = fmt.Sprintf("%s is available to this principal.", c.ID)
		case domain.OutcomeAccessDenied:
			item.Details = fmt.Sprintf("%s was denied: %v", c.ID, res.Err)
			item.Recommendation = c.Recommendation
			logger.Warn().Str("capability", c.ID).Msg("capability denied")
		default:
			item.Details = fmt.Sprintf("%s is not usable: %v", c.ID, res.Err)
			item.Recommendation = c.Recommendation
			if item.Recommendation == "" {
				item.Recommendation = fmt.Sprintf("Verify %s manually before relying on the assessment.", c.ID)
			}
			logger.Warn().Str("capability", c.ID).Err(res.Err).Msg("capability probe failed")
		}
		if err := b.AppendItem(SectionID, item); err != nil {
			return DecisionAborted, err
		}
	}

	snap := agg.Snapshot()
	pct := aggregate.Percentage(snap)
	logger.Info().Int("available_pct", pct).Int("denied", snap.AccessDenied).Msg("capability coverage evaluated")

	if pct >= g.threshold() {
		summary := domain.CheckItem{
			Title:   "Capability coverage",
			Outcome: domain.OutcomePass,
			Details: fmt.Sprintf("%d%% of required capabilities are available (%d of %d probed, %d denied).", pct, snap.Passed, snap.Total, snap.AccessDenied),
		}
		if err := b.AppendItem(SectionID, summary); err != nil {
			return DecisionAborted, err
		}
		return DecisionContinue, b.CloseSection(SectionID)
	}

	summary := domain.CheckItem{
		Title:   "Capability coverage",
		Outcome: domain.OutcomeWarning,
		Details: fmt.Sprintf("Only %d%% of required capabilities are available (%d of %d probed, %d denied); results will be incomplete.", pct, snap.Passed, snap.Total, snap.AccessDenied),
		Recommendation: "Grant the missing read-only permissions to the assessment principal, or accept an incomplete assessment.",
	}
	if err := b.AppendItem(SectionID, summary); err != nil {
		return DecisionAborted, err
	}
	if err := b.CloseSection(SectionID); err != nil {
		return DecisionAborted, err
	}

	if g.Confirm != nil && g.Confirm(pct) {
		return DecisionContinue, nil
	}
	return DecisionAborted, nil
}

// classifyCapability feeds the probe result through the outcome
// classifier. The capability condition is adjudicated by the call
// itself: a completed call proves the capability, a denial is
// AccessDenied, and any other failure is conclusive evidence the
// capability cannot be used.
func classifyCapability(res probe.Result) domain.Outcome {
	if !res.OK && res.Category == probe.ErrorAuthorization {
		return outcome.Classify(outcome.Input{Result: res})
	}
	eval := evidence.NonCompliant("capability unavailable")
	if res.OK {
		eval = evidence.Compliant("capability available")
	}
	return outcome.Classify(outcome.Input{Result: probe.Result{OK: true}, Evaluation: eval})
}

func (g *Gate) threshold() int {
	if g.Threshold == 0 {
		return DefaultThreshold
	}
	return g.Threshold
}
