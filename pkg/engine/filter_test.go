package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterKeepsOnlyActionableFindings(t *testing.T) {
	first := NewFinding(KindPatternMatch, "test", "strong", 90, 70)
	first.StatuteCitation = "17 CFR 240.10b-5"
	first.ExtractedText = "the smoking gun"

	second := NewFinding(KindPatternMatch, "test", "weak", 50, 40)

	f := NewActionabilityFilter(80, 60)
	out := f.Filter([]Finding{first, second})

	require.Len(t, out, 1)
	assert.Equal(t, first.ID, out[0].ID)
}

func TestFilterRequiresAllFourConditions(t *testing.T) {
	base := func() Finding {
		f := NewFinding(KindPatternMatch, "test", "candidate", 90, 70)
		f.StatuteCitation = "cite"
		f.ExtractedText = "text"
		return f
	}

	tests := []struct {
		name   string
		mutate func(*Finding)
	}{
		{"low confidence", func(f *Finding) { f.Confidence = 79 }},
		{"low severity", func(f *Finding) { f.Severity = 59 }},
		{"no statute", func(f *Finding) { f.StatuteCitation = "" }},
		{"no extracted text", func(f *Finding) { f.ExtractedText = "" }},
	}
	filter := NewActionabilityFilter(80, 60)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := base()
			bad := base()
			tt.mutate(&bad)

			out := filter.Filter([]Finding{good, bad})
			require.Len(t, out, 1)
			assert.Equal(t, good.ID, out[0].ID)
		})
	}
}

func TestFilterFallbackReturnsEntireInput(t *testing.T) {
	findings := []Finding{
		NewFinding(KindPatternMatch, "test", "weak a", 10, 10),
		NewFinding(KindPatternMatch, "test", "weak b", 20, 20),
	}
	filter := NewActionabilityFilter(80, 60)
	out := filter.Filter(findings)

	// Nothing clears the bar: the whole unfiltered list comes back.
	require.Len(t, out, 2)
	assert.Equal(t, findings, out)
}

func TestFilterSubsetLaw(t *testing.T) {
	var findings []Finding
	for i := 0; i < 10; i++ {
		f := NewFinding(KindPatternMatch, "test", "f", float64(i*12), float64(i*11))
		if i%2 == 0 {
			f.StatuteCitation = "cite"
			f.ExtractedText = "text"
		}
		findings = append(findings, f)
	}

	out := NewActionabilityFilter(80, 60).Filter(findings)
	byID := make(map[string]bool, len(findings))
	for _, f := range findings {
		byID[f.ID] = true
	}
	for _, f := range out {
		assert.True(t, byID[f.ID], "filter must never invent findings")
	}
}

func TestFilterEmptyInput(t *testing.T) {
	out := NewActionabilityFilter(80, 60).Filter(nil)
	assert.Empty(t, out)
}
