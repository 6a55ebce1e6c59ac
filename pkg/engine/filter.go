package engine

// ActionabilityFilter narrows a finding list to entries strong enough to act
// on: high confidence, high severity, statute-anchored, and carrying
// extracted evidence text.
type ActionabilityFilter struct {
	MinConfidence float64
	MinSeverity   float64
}

func NewActionabilityFilter(minConfidence, minSeverity float64) *ActionabilityFilter {
	if minConfidence <= 0 {
		minConfidence = 80
	}
	if minSeverity <= 0 {
		minSeverity = 60
	}
	return &ActionabilityFilter{MinConfidence: minConfidence, MinSeverity: minSeverity}
}

// Filter returns the actionable subset. When nothing clears the bar the
// entire unfiltered input is returned unchanged, trading precision for
// recall so downstream review always has material to work with.
func (f *ActionabilityFilter) Filter(findings []Finding) []Finding {
	var actionable []Finding
	for _, finding := range findings {
		if finding.Confidence >= f.MinConfidence &&
			finding.Severity >= f.MinSeverity &&
			finding.StatuteCitation != "" &&
			finding.ExtractedText != "" {
			actionable = append(actionable, finding)
		}
	}
	if len(actionable) == 0 {
		return findings
	}
	return actionable
}
