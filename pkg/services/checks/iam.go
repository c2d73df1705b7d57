package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/smithy-go"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/evidence"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
)

const minPasswordLength = 12

// IAMGroup builds the access-control section of the checklist.
func IAMGroup(cfg awssdk.Config) Group {
	client := iam.NewFromConfig(cfg)

	passwordPolicy := func(ctx context.Context) probe.Result {
		out, err := client.GetAccountPasswordPolicy(ctx, &iam.GetAccountPasswordPolicyInput{})
		if err != nil {
			// A missing policy is a finding, not a probe failure.
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchEntity" {
				return probe.Succeeded(&iam.GetAccountPasswordPolicyOutput{})
			}
			return probe.Failed(err)
		}
		return probe.Succeeded(out)
	}

	accountSummary := func(ctx context.Context) probe.Result {
		out, err := client.GetAccountSummary(ctx, &iam.GetAccountSummaryInput{})
		if err != nil {
			return probe.Failed(err)
		}
		return probe.Succeeded(out)
	}

	return Group{
		SectionID: "access",
		Title:     "Identity and Access Management",
		State:     domain.DisplayCollapsed,
		Checks: []Check{
			{
				ID:             "iam.password-policy",
				Title:          "Account password policy meets strength requirements",
				Probe:          passwordPolicy,
				Evaluate:       ExtractPasswordPolicy,
				Recommendation: "Set a password policy requiring at least 12 characters with symbols, numbers, and mixed case.",
			},
			{
				ID:             "iam.root-mfa",
				Title:          "Root account has MFA enabled",
				Probe:          accountSummary,
				Evaluate:       ExtractRootMFA,
				Recommendation: "Enable a hardware or virtual MFA device on the root account immediately.",
			},
		},
	}
}

// ExtractPasswordPolicy verifies the account password policy against
// the baseline strength requirements.
func ExtractPasswordPolicy(payload any) (evidence.Evaluation, error) {
	out, ok := payload.(*iam.GetAccountPasswordPolicyOutput)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}
	policy := out.PasswordPolicy
	if policy == nil {
		return evidence.NonCompliant("No account password policy is configured."), nil
	}

	var gaps []string
	if awssdk.ToInt32(policy.MinimumPasswordLength) < minPasswordLength {
		gaps = append(gaps, fmt.Sprintf("minimum length %d < %d", awssdk.ToInt32(policy.MinimumPasswordLength), minPasswordLength))
	}
	if !policy.RequireSymbols {
		gaps = append(gaps, "symbols not required")
	}
	if !policy.RequireNumbers {
		gaps = append(gaps, "numbers not required")
	}
	if !policy.RequireUppercaseCharacters || !policy.RequireLowercaseCharacters {
		gaps = append(gaps, "mixed case not required")
	}

	if len(gaps) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Password policy gaps: %s.", strings.Join(gaps, "; "))), nil
	}
	return evidence.Compliant("Account password policy meets all baseline strength requirements."), nil
}

// ExtractRootMFA reads the AccountMFAEnabled entry of the account
// summary.
func ExtractRootMFA(payload any) (evidence.Evaluation, error) {
	out, ok := payload.(*iam.GetAccountSummaryOutput)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}
	enabled, present := out.SummaryMap["AccountMFAEnabled"]
	if !present {
		return evidence.Inconclusive("Account summary did not include the AccountMFAEnabled entry."), nil
	}
	if enabled != 1 {
		return evidence.NonCompliant("Root account MFA is not enabled."), nil
	}
	return evidence.Compliant("Root account MFA is enabled."), nil
}
