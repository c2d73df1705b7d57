package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/audit-atlas/pkg/services/aggregate"
	"github.com/de-tools/audit-atlas/pkg/services/checks"
	"github.com/de-tools/audit-atlas/pkg/services/gate"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
	"github.com/de-tools/audit-atlas/pkg/services/report"
)

type PreflightCmd struct {
	profile  string
	region   string
	prompter *Prompter
}

// NewPreflightCmd runs only the permission gate and prints the result,
// for verifying the assessment principal before a full run.
func NewPreflightCmd(prompter *Prompter) *cobra.Command {
	pc := &PreflightCmd{prompter: prompter}
	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Probe required capabilities without running any checks",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profile, "profile", "default", "AWS shared config profile to probe")
	cmd.Flags().StringVar(&pc.region, "region", "", "Region to probe against")

	return cmd
}

func (pc *PreflightCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	awsCfg, err := probe.LoadConfig(ctx, pc.profile, pc.region)
	if err != nil {
		return err
	}

	identity, err := probe.WhoAmI(ctx, *awsCfg)
	if err != nil {
		return err
	}

	builder := report.NewBuilder(report.Meta{
		Title:     "Capability Pre-Flight",
		AccountID: identity.AccountID,
		Scope:     awsCfg.Region,
		Actor:     identity.Arn,
	})
	counters := aggregate.New()

	g := gate.New(pc.prompter.ConfirmShortfall)
	decision, err := g.Run(ctx, checks.Capabilities(*awsCfg), builder, counters)
	if err != nil {
		return err
	}

	rep := builder.Finalize(counters.Snapshot())
	if err := export.NewTextReporter(pc.prompter.out).Handle(rep); err != nil {
		return err
	}

	if decision == gate.DecisionAborted {
		return ErrAborted
	}
	return nil
}
