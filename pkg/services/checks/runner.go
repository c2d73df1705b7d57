// Package checks executes requirement checklists: each check probes
// the provider, extracts evidence, and records one classified item in
// the report. A single check failing to execute never aborts the run.
package checks

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

// Check is one control: a probe, a narrow evidence extractor for its
// payload, and the remediation to surface when the control is not met.
// Manual checks carry no probe; they always surface as warnings for
// attestation.
type Check struct {
	ID             string
	Title          string
	Manual         bool
	Guidance       string
	Recommendation string
	Probe          probe.Func
	Evaluate       evidence.Extractor
}

// Group is a logical assessment phase: one report section and the
// checks that run inside it, in order.
type Group struct {
	SectionID string
	Title     string
	State     domain.DisplayState
	Checks    []Check
}

// Runner drives checks through the classifier into the report builder
// and counters. It owns neither; the run does.
type Runner struct {
	builder *report.Builder
	agg     *aggregate.Counters
}

func NewRunner(b *report.Builder, agg *aggregate.Counters) *Runner {
	return &Runner{builder: b, agg: agg}
}

// RunGroups executes each group in order: open section, run checks,
// close section. Checks within a group run in list order; earlier
// checks may establish context later ones rely on.
func (r *Runner) RunGroups(ctx context.Context, groups []Group) error {
	for _, g := range groups {
		if err := r.builder.OpenSection(g.SectionID, g.Title, g.State); err != nil {
			return err
		}
		for _, c := range g.Checks {
			if err := r.runOne(ctx, g.SectionID, c); err != nil {
				return err
			}
		}
		if err := r.builder.CloseSection(g.SectionID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, sectionID string, c Check) error {
	logger := zerolog.Ctx(ctx)

	item := r.evaluate(ctx, c)
	r.agg.Apply(item.Outcome)

	logger.Debug().
		Str("check", c.ID).
		Str("outcome", item.Outcome.String()).
		Msg("check evaluated")

	if err := r.builder.AppendItem(sectionID, item); err != nil {
		return fmt.Errorf("record check %s: %w", c.ID, err)
	}
	return nil
}

// evaluate produces the classified item for one check. Collaborator
// errors are captured in the item details, not propagated.
func (r *Runner) evaluate(ctx context.Context, c Check) domain.CheckItem {
	item := domain.CheckItem{Title: c.Title}

	if c.Manual {
		item.Outcome = outcome.Classify(outcome.Input{Manual: true})
		item.Details = c.Guidance
		if item.Details == "" {
			item.Details = "This control requires manual verification; no automatable evidence exists."
		}
		item.Recommendation = c.Recommendation
		return item
	}

	res := c.Probe(ctx)

	var eval evidence.Evaluation
	if res.OK {
		var err error
		eval, err = c.Evaluate(res.Payload)
		if err != nil {
			// Includes evidence.ErrIncomplete: inconclusive, never a pass.
			eval = evidence.Inconclusive(fmt.Sprintf("evidence extraction failed: %v", err))
		}
	}

	out := outcome.Classify(outcome.Input{Result: res, Evaluation: eval})
	item.Outcome = out

	switch {
	case res.OK:
		item.Details = eval.Detail
	case out == domain.OutcomeAccessDenied:
		item.Details = fmt.Sprintf("Access denied while probing: %v", res.Err)
	default:
		item.Details = fmt.Sprintf("Check could not be executed, verify manually. Raw error: %v", res.Err)
	}

	if out == domain.OutcomeFail || out == domain.OutcomeWarning {
		item.Recommendation = c.Recommendation
		if item.Recommendation == "" {
			item.Recommendation = fmt.Sprintf("Review %s manually and remediate as required.", c.ID)
		}
	}
	return item
}
