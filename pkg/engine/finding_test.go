package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFindingClampsScores(t *testing.T) {
	f := NewFinding(KindPatternMatch, "test", "over range", 150, -10)
	assert.Equal(t, 100.0, f.Confidence)
	assert.Equal(t, 0.0, f.Severity)
	assert.NotEmpty(t, f.ID)
}

func TestSortFindingsDescendingSeverity(t *testing.T) {
	findings := []Finding{
		NewFinding(KindPatternMatch, "test", "a", 50, 30),
		NewFinding(KindPatternMatch, "test", "b", 50, 90),
		NewFinding(KindPatternMatch, "test", "c", 50, 60),
		NewFinding(KindPatternMatch, "test", "d", 50, 90),
	}
	SortFindings(findings)

	for i := 1; i < len(findings); i++ {
		assert.GreaterOrEqual(t, findings[i-1].Severity, findings[i].Severity)
	}
	// Stable: equal severities keep input order.
	assert.Equal(t, "b", findings[0].Description)
	assert.Equal(t, "d", findings[1].Description)
}

func TestPenaltyVariants(t *testing.T) {
	m := MonetaryPenalty(5_000_000)
	assert.Equal(t, PenaltyMonetary, m.Kind)
	assert.Contains(t, m.Text, "5000000")
	assert.Zero(t, m.Years())

	im := ImprisonmentPenalty(20, "years")
	assert.Equal(t, PenaltyImprisonment, im.Kind)
	assert.Equal(t, 20.0, im.Years())

	months := ImprisonmentPenalty(18, "months")
	assert.InDelta(t, 1.5, months.Years(), 1e-9)

	la := LicenseActionPenalty("revocation of broker-dealer registration")
	assert.Equal(t, PenaltyLicenseAction, la.Kind)
	assert.NotEmpty(t, la.Text)
}
