package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Finding kinds emitted by the analyzers.
const (
	KindPatternMatch       = "PATTERN_MATCH"
	KindStatutoryViolation = "STATUTORY_VIOLATION"
	KindDeepPatternFraud   = "DEEP_PATTERN_FRAUD"
	KindFinancialForensics = "FINANCIAL_FORENSICS"
	KindAnomalySignal      = "ANOMALY_SIGNAL"
)

// PenaltyKind discriminates the penalty variant.
type PenaltyKind string

const (
	PenaltyMonetary      PenaltyKind = "MONETARY"
	PenaltyImprisonment  PenaltyKind = "IMPRISONMENT"
	PenaltyLicenseAction PenaltyKind = "LICENSE_ACTION"
)

// Penalty is a tagged variant: Amount carries the payload for MONETARY,
// Duration/Unit for IMPRISONMENT, and Text alone for LICENSE_ACTION.
// Text is always set to a human-readable description.
type Penalty struct {
	Kind     PenaltyKind `json:"kind"`
	Amount   float64     `json:"amount,omitempty"`
	Duration float64     `json:"duration,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	Text     string      `json:"text"`
}

// MonetaryPenalty builds a MONETARY penalty.
func MonetaryPenalty(amount float64) Penalty {
	return Penalty{
		Kind:   PenaltyMonetary,
		Amount: amount,
		Text:   fmt.Sprintf("Monetary penalty up to $%.0f", amount),
	}
}

// ImprisonmentPenalty builds an IMPRISONMENT penalty. Unit is "years" or
// "months".
func ImprisonmentPenalty(duration float64, unit string) Penalty {
	return Penalty{
		Kind:     PenaltyImprisonment,
		Duration: duration,
		Unit:     unit,
		Text:     fmt.Sprintf("Imprisonment up to %.0f %s", duration, unit),
	}
}

// LicenseActionPenalty builds a LICENSE_ACTION penalty.
func LicenseActionPenalty(text string) Penalty {
	return Penalty{Kind: PenaltyLicenseAction, Text: text}
}

// Years normalizes an imprisonment duration to years. Non-imprisonment
// penalties contribute zero.
func (p Penalty) Years() float64 {
	if p.Kind != PenaltyImprisonment {
		return 0
	}
	if p.Unit == "months" {
		return p.Duration / 12
	}
	return p.Duration
}

// DocumentSpan locates extracted evidence inside the source document.
type DocumentSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Finding is a single detected indicator of a legal/financial violation.
// Analyzers produce findings and never mutate them afterwards.
type Finding struct {
	ID                 string        `json:"id"`
	Kind               string        `json:"kind"`
	SourceAnalyzer     string        `json:"source_analyzer"`
	StatuteCitation    string        `json:"statute_citation,omitempty"`
	Description        string        `json:"description"`
	Evidence           []string      `json:"evidence"`
	Confidence         float64       `json:"confidence"` // clamped 0-100
	Severity           float64       `json:"severity"`   // clamped 0-100
	Penalties          []Penalty     `json:"penalties,omitempty"`
	Recommendation     string        `json:"recommendation,omitempty"`
	ExtractedText      string        `json:"extracted_text,omitempty"`
	Span               *DocumentSpan `json:"document_span,omitempty"`
	EvidenceKind       string        `json:"evidence_kind,omitempty"`
	TriggerExplanation string        `json:"trigger_explanation,omitempty"`
}

// NewFinding creates a finding with a fresh ID and clamped scores.
func NewFinding(kind, source, description string, confidence, severity float64) Finding {
	return Finding{
		ID:             uuid.NewString(),
		Kind:           kind,
		SourceAnalyzer: source,
		Description:    description,
		Confidence:     clamp(confidence, 0, 100),
		Severity:       clamp(severity, 0, 100),
	}
}

// SortFindings orders findings by descending severity. The sort is stable so
// analyzer output order breaks ties deterministically.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity > findings[j].Severity
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
