package aggregate

import (
	"math/rand"
	"testing"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

var allOutcomes = []domain.Outcome{
	domain.OutcomePass,
	domain.OutcomeFail,
	domain.OutcomeWarning,
	domain.OutcomeInfo,
	domain.OutcomeAccessDenied,
}

func TestCounters_InvariantHoldsAfterEveryApply(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New()

	for i := 0; i < 1000; i++ {
		c.Apply(allOutcomes[rng.Intn(len(allOutcomes))])

		s := c.Snapshot()
		assert.Equal(t, s.Total, s.Passed+s.Failed+s.Warning+s.Info+s.AccessDenied,
			"invariant broken after %d events", i+1)
	}
}

func TestCounters_Reset(t *testing.T) {
	c := New()
	c.Apply(domain.OutcomePass)
	c.Apply(domain.OutcomeFail)

	c.Reset()

	assert.Equal(t, domain.Counters{}, c.Snapshot())
}

func TestPercentage_ZeroDenominator(t *testing.T) {
	assert.Equal(t, 0, Percentage(domain.Counters{}))
	// Only warnings and denied: nothing was adjudicated.
	assert.Equal(t, 0, Percentage(domain.Counters{Total: 5, Warning: 3, AccessDenied: 2}))
}

func TestPercentage_ExcludesWarningAndAccessDenied(t *testing.T) {
	// 5 items: 3 pass, 1 fail, 1 warning -> 3*100/(5-1) = 75.
	c := domain.Counters{Total: 5, Passed: 3, Failed: 1, Warning: 1}
	assert.Equal(t, 75, Percentage(c))

	// 12 capabilities, 6 denied, 3 pass, 3 fail -> 3*100/6 = 50.
	c = domain.Counters{Total: 12, Passed: 3, Failed: 3, AccessDenied: 6}
	assert.Equal(t, 50, Percentage(c))
}

func TestPercentage_FloorDivision(t *testing.T) {
	c := domain.Counters{Total: 3, Passed: 2, Failed: 1}
	assert.Equal(t, 66, Percentage(c))
}

func TestPercentage_BoundsAndMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		failed := rng.Intn(10)
		warning := rng.Intn(10)
		denied := rng.Intn(10)
		info := rng.Intn(10)

		prev := -1
		for passed := 0; passed < 10; passed++ {
			c := domain.Counters{
				Total:        passed + failed + warning + info + denied,
				Passed:       passed,
				Failed:       failed,
				Warning:      warning,
				Info:         info,
				AccessDenied: denied,
			}
			pct := Percentage(c)
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
			assert.GreaterOrEqual(t, pct, prev, "percentage decreased when passed grew")
			prev = pct
		}
	}
}
