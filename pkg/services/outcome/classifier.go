// Package outcome maps probe results and extracted evidence onto the
// fixed outcome taxonomy. Classification is the only way an outcome is
// produced; nothing else in the engine decides pass/fail.
package outcome

import (
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/evidence"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
)

// Input is everything classification needs for one check: the probe
// result, the extractor's evaluation of the payload (zero value when
// the probe failed), and whether the control is attestation-only.
type Input struct {
	Result     probe.Result
	Evaluation evidence.Evaluation
	Manual     bool
}

// Classify applies the classification rules in priority order. Pure:
// identical input always yields the identical outcome, and nothing is
// mutated or recorded here.
func Classify(in Input) domain.Outcome {
	if !in.Result.OK && in.Result.Category == probe.ErrorAuthorization {
		return domain.OutcomeAccessDenied
	}
	if in.Manual {
		// Attestation-only control: no automatable evidence exists,
		// whatever the probe said.
		return domain.OutcomeWarning
	}
	if in.Result.OK {
		switch in.Evaluation.Verdict {
		case evidence.VerdictCompliant:
			return domain.OutcomePass
		case evidence.VerdictNonCompliant:
			return domain.OutcomeFail
		default:
			return domain.OutcomeWarning
		}
	}
	// Unclassified probe failure: surface for manual follow-up, never
	// silently pass.
	return domain.OutcomeWarning
}
