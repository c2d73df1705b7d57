package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/audit-atlas/pkg/services/assessment"
	"github.com/de-tools/audit-atlas/pkg/services/checks"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/services/gate"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
	"github.com/de-tools/audit-atlas/pkg/services/report"
)

// ErrAborted is returned when the operator declines to continue at the
// permission gate. The process exits non-zero in that case; failing
// checks alone never do.
var ErrAborted = errors.New("assessment aborted at the permission gate")

type AssessCmd struct {
	profile      string
	region       string
	settingsPath string
	outputDir    string
	assumeYes    bool
	verbose      bool
	prompter     *Prompter
}

func NewAssessCmd(prompter *Prompter) *cobra.Command {
	ac := &AssessCmd{prompter: prompter}
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the full compliance assessment and emit reports",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profile, "profile", "default", "AWS shared config profile to assess")
	cmd.Flags().StringVar(&ac.region, "region", "", "Region scope (prompted when omitted)")
	cmd.Flags().StringVar(&ac.settingsPath, "settings", "", "Path to an optional settings file")
	cmd.Flags().StringVar(&ac.outputDir, "out", "", "Directory for emitted reports (overrides settings)")
	cmd.Flags().BoolVarP(&ac.assumeYes, "yes", "y", false, "Continue past a capability shortfall without prompting")
	cmd.Flags().BoolVarP(&ac.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func (ac *AssessCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if ac.verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	ctx := logger.WithContext(cmd.Context())

	settings, err := assessment.LoadSettings(ac.settingsPath)
	if err != nil {
		return err
	}
	if ac.outputDir != "" {
		settings.OutputDir = ac.outputDir
	}

	region := ac.region
	if region == "" {
		region = ac.prompter.Scope(ac.defaultRegion(ctx))
	}

	awsCfg, err := probe.LoadConfig(ctx, ac.profile, region)
	if err != nil {
		return err
	}

	identity, err := probe.WhoAmI(ctx, *awsCfg)
	if err != nil {
		return err
	}
	logger.Info().Str("account", identity.AccountID).Str("region", region).Msg("assessment scope resolved")

	confirm := gate.ConfirmFunc(ac.prompter.ConfirmShortfall)
	if ac.assumeYes {
		confirm = func(int) bool { return true }
	}

	result, err := assessment.Run(ctx, assessment.Options{
		Meta: report.Meta{
			Title:     settings.Title,
			AccountID: identity.AccountID,
			Scope:     region,
			Actor:     identity.Arn,
		},
		Capabilities: checks.Capabilities(*awsCfg),
		Groups:       settings.FilterGroups(checks.Groups(*awsCfg)),
		Threshold:    settings.Threshold,
		Confirm:      confirm,
	})
	if err != nil {
		return err
	}

	paths, err := writeReports(settings.OutputDir, result.Report)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info().Str("path", p).Msg("report written")
	}

	ac.printSummary(result.Report)

	if result.Decision == gate.DecisionAborted {
		return ErrAborted
	}
	return nil
}

// defaultRegion reads the profile's configured region from the shared
// config file; empty when unavailable.
func (ac *AssessCmd) defaultRegion(ctx context.Context) string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	registry, err := config.NewRegistry(filepath.Join(usr.HomeDir, ".aws", "config"))
	if err != nil {
		return ""
	}
	region, err := registry.GetRegion(ctx, ac.profile)
	if err != nil {
		return ""
	}
	return region
}

func (ac *AssessCmd) printSummary(rep *domain.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	out := ac.prompter.out
	fmt.Fprintf(out, "\n%s  passed: %s  failed: %s  warnings: %s  denied: %d\n",
		rep.Title,
		green(rep.Counters.Passed),
		red(rep.Counters.Failed),
		yellow(rep.Counters.Warning),
		rep.Counters.AccessDenied,
	)
	pct := fmt.Sprintf("%d%%", rep.Percent)
	switch {
	case rep.Percent >= 90:
		pct = green(pct)
	case rep.Percent >= 70:
		pct = yellow(pct)
	default:
		pct = red(pct)
	}
	fmt.Fprintf(out, "Compliance: %s\n", pct)
}

// writeReports emits the HTML document, the text summary, and the JSON
// sidecar for one finalized report.
func writeReports(dir string, rep *domain.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := fmt.Sprintf("audit_%s_%s", rep.AccountID, rep.Timestamp.Format("20060102T150405Z"))
	var paths []string

	targets := []struct {
		ext    string
		handle func(*domain.Report, *os.File) error
	}{
		{".html", func(r *domain.Report, f *os.File) error { return export.NewHTMLReporter(f).Handle(r) }},
		{".txt", func(r *domain.Report, f *os.File) error { return export.NewTextReporter(f).Handle(r) }},
		{".json", func(r *domain.Report, f *os.File) error { return export.NewJSONReporter(f).Handle(r) }},
	}

	for _, t := range targets {
		path := filepath.Join(dir, base+t.ext)
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := t.handle(rep, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to render %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
