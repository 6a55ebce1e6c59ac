package engine

import (
	"fmt"
	"sort"
)

// Prosecution strategies, keyed on criminal count and total finding count.
const (
	StrategyNone                         = "NO_SIGNIFICANT_VIOLATIONS_DETECTED"
	StrategyAggressiveCriminal           = "AGGRESSIVE_CRIMINAL_REFERRAL"
	StrategyEnforcementWithInvestigation = "ENFORCEMENT_WITH_INVESTIGATION"
	StrategyCivilEnforcement             = "CIVIL_ENFORCEMENT"
	StrategyContinuedMonitoring          = "CONTINUED_MONITORING"
)

// Classification thresholds: severity above 70 is criminal, above 30 civil.
const (
	criminalSeverity = 70
	civilSeverity    = 30
)

// ProsecutionPackage is the compiled, classified, penalty-summed output
// handed to downstream reporting. It is read-only once compiled.
type ProsecutionPackage struct {
	CriminalCount        int            `json:"criminal_count"`
	CivilCount           int            `json:"civil_count"`
	TotalFindings        int            `json:"total_findings"`
	MonetaryExposure     float64        `json:"monetary_exposure"`
	ImprisonmentExposure float64        `json:"imprisonment_exposure"` // years
	EvidenceInventory    map[string]int `json:"evidence_inventory"`
	RecommendedCharges   []string       `json:"recommended_charges"`
	Strategy             string         `json:"strategy"`
}

// ProsecutionCompiler classifies findings and sums penalty exposure.
type ProsecutionCompiler struct{}

func NewProsecutionCompiler() *ProsecutionCompiler {
	return &ProsecutionCompiler{}
}

// Compile builds the prosecution package from a finding list.
func (c *ProsecutionCompiler) Compile(findings []Finding) ProsecutionPackage {
	pkg := ProsecutionPackage{
		TotalFindings:     len(findings),
		EvidenceInventory: make(map[string]int),
	}

	chargeSet := make(map[string]bool)
	for _, f := range findings {
		switch {
		case f.Severity > criminalSeverity:
			pkg.CriminalCount++
			if f.StatuteCitation != "" && !chargeSet[f.StatuteCitation] {
				chargeSet[f.StatuteCitation] = true
				pkg.RecommendedCharges = append(pkg.RecommendedCharges,
					fmt.Sprintf("%s (%s)", f.StatuteCitation, f.Kind))
			}
		case f.Severity > civilSeverity:
			pkg.CivilCount++
		}

		pkg.EvidenceInventory[f.Kind] += len(f.Evidence)

		for _, p := range f.Penalties {
			switch p.Kind {
			case PenaltyMonetary:
				pkg.MonetaryExposure += p.Amount
			case PenaltyImprisonment:
				pkg.ImprisonmentExposure += p.Years()
			}
		}
	}
	sort.Strings(pkg.RecommendedCharges)

	switch {
	case pkg.TotalFindings == 0:
		pkg.Strategy = StrategyNone
	case pkg.CriminalCount > 5:
		pkg.Strategy = StrategyAggressiveCriminal
	case pkg.CriminalCount > 0:
		pkg.Strategy = StrategyEnforcementWithInvestigation
	case pkg.TotalFindings > 3:
		pkg.Strategy = StrategyCivilEnforcement
	default:
		pkg.Strategy = StrategyContinuedMonitoring
	}
	return pkg
}
