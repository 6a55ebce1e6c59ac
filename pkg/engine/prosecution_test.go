package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileClassifiesBySeverity(t *testing.T) {
	findings := []Finding{
		NewFinding(KindPatternMatch, "test", "criminal", 90, 80),
		NewFinding(KindPatternMatch, "test", "civil", 70, 50),
		NewFinding(KindPatternMatch, "test", "below floor", 50, 20),
	}
	pkg := NewProsecutionCompiler().Compile(findings)

	assert.Equal(t, 1, pkg.CriminalCount)
	assert.Equal(t, 1, pkg.CivilCount)
	assert.Equal(t, 3, pkg.TotalFindings)
}

func TestCompileSumsPenaltyExposure(t *testing.T) {
	a := NewFinding(KindPatternMatch, "test", "a", 90, 80)
	a.Penalties = []Penalty{MonetaryPenalty(100_000), ImprisonmentPenalty(24, "months")}
	b := NewFinding(KindPatternMatch, "test", "b", 90, 50)
	b.Penalties = []Penalty{MonetaryPenalty(50_000), LicenseActionPenalty("suspension")}

	pkg := NewProsecutionCompiler().Compile([]Finding{a, b})

	// Monetary exposure is exactly the sum of MONETARY amounts; license
	// actions contribute nothing.
	assert.InDelta(t, 150_000, pkg.MonetaryExposure, 1e-9)
	assert.InDelta(t, 2.0, pkg.ImprisonmentExposure, 1e-9)
}

func TestCompileEmptyListReportsNoViolations(t *testing.T) {
	pkg := NewProsecutionCompiler().Compile(nil)
	assert.Equal(t, StrategyNone, pkg.Strategy)
	assert.Zero(t, pkg.TotalFindings)
	assert.Zero(t, pkg.MonetaryExposure)
}

func TestCompileStrategyTable(t *testing.T) {
	criminal := func() Finding { return NewFinding(KindPatternMatch, "t", "c", 90, 80) }
	civil := func() Finding { return NewFinding(KindPatternMatch, "t", "v", 70, 50) }

	tests := []struct {
		name     string
		findings []Finding
		want     string
	}{
		{"empty", nil, StrategyNone},
		{
			"many criminal",
			[]Finding{criminal(), criminal(), criminal(), criminal(), criminal(), criminal()},
			StrategyAggressiveCriminal,
		},
		{"one criminal", []Finding{criminal(), civil()}, StrategyEnforcementWithInvestigation},
		{"several civil", []Finding{civil(), civil(), civil(), civil()}, StrategyCivilEnforcement},
		{"few civil", []Finding{civil()}, StrategyContinuedMonitoring},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := NewProsecutionCompiler().Compile(tt.findings)
			assert.Equal(t, tt.want, pkg.Strategy)
		})
	}
}

func TestCompileRecommendedChargesAndInventory(t *testing.T) {
	a := NewFinding(KindStatutoryViolation, "test", "a", 90, 85)
	a.StatuteCitation = "18 U.S.C. 1519"
	a.Evidence = []string{"e1", "e2"}
	b := NewFinding(KindPatternMatch, "test", "b", 90, 75)
	b.StatuteCitation = "18 U.S.C. 1519" // duplicate citation, one charge
	b.Evidence = []string{"e3"}

	pkg := NewProsecutionCompiler().Compile([]Finding{a, b})

	require.Len(t, pkg.RecommendedCharges, 1)
	assert.Contains(t, pkg.RecommendedCharges[0], "18 U.S.C. 1519")
	assert.Equal(t, 2, pkg.EvidenceInventory[KindStatutoryViolation])
	assert.Equal(t, 1, pkg.EvidenceInventory[KindPatternMatch])
}
