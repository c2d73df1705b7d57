package checks

import (
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/services/evidence"
)

func TestExtractPasswordPolicy(t *testing.T) {
	strong := &iamtypes.PasswordPolicy{
		MinimumPasswordLength:      awssdk.Int32(14),
		RequireSymbols:             true,
		RequireNumbers:             true,
		RequireUppercaseCharacters: true,
		RequireLowercaseCharacters: true,
	}

	t.Run("strong policy passes", func(t *testing.T) {
		eval, err := ExtractPasswordPolicy(&iam.GetAccountPasswordPolicyOutput{PasswordPolicy: strong})
		require.NoError(t, err)
		assert.Equal(t, evidence.VerdictCompliant, eval.Verdict)
	})

	t.Run("short minimum length fails", func(t *testing.T) {
		weak := *strong
		weak.MinimumPasswordLength = awssdk.Int32(8)
		eval, err := ExtractPasswordPolicy(&iam.GetAccountPasswordPolicyOutput{PasswordPolicy: &weak})
		require.NoError(t, err)
		assert.Equal(t, evidence.VerdictNonCompliant, eval.Verdict)
		assert.Contains(t, eval.Detail, "minimum length")
	})

	t.Run("missing policy fails", func(t *testing.T) {
		eval, err := ExtractPasswordPolicy(&iam.GetAccountPasswordPolicyOutput{})
		require.NoError(t, err)
		assert.Equal(t, evidence.VerdictNonCompliant, eval.Verdict)
	})
}

func TestExtractRootMFA(t *testing.T) {
	t.Run("enabled passes", func(t *testing.T) {
		eval, err := ExtractRootMFA(&iam.GetAccountSummaryOutput{
			SummaryMap: map[string]int32{"AccountMFAEnabled": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, evidence.VerdictCompliant, eval.Verdict)
	})

	t.Run("disabled fails", func(t *testing.T) {
		eval, err := ExtractRootMFA(&iam.GetAccountSummaryOutput{
			SummaryMap: map[string]int32{"AccountMFAEnabled": 0},
		})
		require.NoError(t, err)
		assert.Equal(t, evidence.VerdictNonCompliant, eval.Verdict)
	})

	t.Run("missing entry is inconclusive", func(t *testing.T) {
		eval, err := ExtractRootMFA(&iam.GetAccountSummaryOutput{
			SummaryMap: map[string]int32{},
		})
		require.NoError(t, err)
		assert.Equal(t, evidence.VerdictInconclusive, eval.Verdict)
	})
}
