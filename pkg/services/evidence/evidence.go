// Package evidence defines the contract between per-check extraction
// logic and the outcome classifier. Extractors scrape a provider
// payload down to a structured verdict; the classifier never sees raw
// provider output.
package evidence

import "errors"

// ErrIncomplete is returned by an extractor when the payload did not
// contain enough to reach a conclusive yes/no.
var ErrIncomplete = errors.New("evidence incomplete")

// Verdict is the normalized fact an extractor derives from a payload.
type Verdict int

const (
	// VerdictNone means no verdict was reached (probe failed before
	// extraction, or extraction errored).
	VerdictNone Verdict = iota
	// VerdictCompliant means the evaluated condition is the desired state.
	VerdictCompliant
	// VerdictNonCompliant means the evidence is conclusive and unfavorable.
	VerdictNonCompliant
	// VerdictInconclusive means the probe succeeded but the evidence was
	// incomplete or ambiguous.
	VerdictInconclusive
)

// Evaluation is the extractor's answer for one check: the verdict plus
// a human-readable description of what was observed.
type Evaluation struct {
	Verdict Verdict
	Detail  string
}

// Compliant builds a compliant evaluation with the observed detail.
func Compliant(detail string) Evaluation {
	return Evaluation{Verdict: VerdictCompliant, Detail: detail}
}

// NonCompliant builds an unfavorable evaluation with the observed detail.
func NonCompliant(detail string) Evaluation {
	return Evaluation{Verdict: VerdictNonCompliant, Detail: detail}
}

// Inconclusive builds an evaluation for incomplete or ambiguous evidence.
func Inconclusive(detail string) Evaluation {
	return Evaluation{Verdict: VerdictInconclusive, Detail: detail}
}

// Extractor is the narrow per-check scraping contract.
type Extractor func(payload any) (Evaluation, error)
