// Package assessment wires the engine pieces into one run: permission
// gate, counter reset, domain checklists, finalize.
package assessment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/aggregate"
	"github.com/de-tools/audit-atlas/pkg/services/checks"
	"github.com/de-tools/audit-atlas/pkg/services/gate"
	"github.com/de-tools/audit-atlas/pkg/services/report"
)

// Options configures one assessment run.
type Options struct {
	Meta         report.Meta
	Capabilities []gate.Capability
	Groups       []checks.Group
	Threshold    int
	Confirm      gate.ConfirmFunc
}

// Result is the finalized report plus the gate's decision. The report
// is valid in both cases; an aborted run contains only the gate's
// section.
type Result struct {
	Report   *domain.Report
	Decision gate.Decision
}

// Run executes the whole assessment synchronously. Checks run in the
// literal order their groups list them; that order is the report
// order.
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := zerolog.Ctx(ctx)

	builder := report.NewBuilder(opts.Meta)
	counters := aggregate.New()

	g := gate.New(opts.Confirm)
	if opts.Threshold > 0 {
		g.Threshold = opts.Threshold
	}

	decision, err := g.Run(ctx, opts.Capabilities, builder, counters)
	if err != nil {
		return Result{}, err
	}
	if decision == gate.DecisionAborted {
		logger.Warn().Msg("assessment aborted at the permission gate")
		return Result{Report: builder.Finalize(counters.Snapshot()), Decision: decision}, nil
	}

	// The gate's counts must not pollute the compliance percentage.
	counters.Reset()

	runner := checks.NewRunner(builder, counters)
	if err := runner.RunGroups(ctx, opts.Groups); err != nil {
		return Result{}, err
	}

	rep := builder.Finalize(counters.Snapshot())
	logger.Info().
		Int("total", rep.Counters.Total).
		Int("passed", rep.Counters.Passed).
		Int("failed", rep.Counters.Failed).
		Int("percent", rep.Percent).
		Msg("assessment finalized")

	return Result{Report: rep, Decision: decision}, nil
}
