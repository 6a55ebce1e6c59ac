package engine

import (
	"strings"
)

// Contribution caps for the three additive components of the text fraud
// score. The total is further capped at 1.0.
const (
	phraseWeight     = 0.1
	phraseCap        = 0.5
	complexityCap    = 0.2
	densityCap       = 0.3
	complexityOnset  = 6.0 // average word length above which complexity contributes
	densityOnset     = 0.05
	defaultTextAlert = 0.3
)

var fraudPhrases = []string{
	"cook the books",
	"make the numbers",
	"side agreement",
	"side letter",
	"off the record",
	"round trip",
	"channel stuffing",
	"special purpose entity",
	"backdated",
	"backdate",
	"under the table",
	"shell company",
	"no paper trail",
	"keep this quiet",
	"plug the gap",
	"aggressive accounting",
	"one-time adjustment",
	"cookie jar",
}

var financialTerms = []string{
	"revenue", "receivables", "accruals", "amortization", "depreciation",
	"goodwill", "impairment", "liabilities", "ebitda", "write-off",
	"write-down", "reserves", "deferral", "restatement", "consolidation",
	"off-balance", "contingent", "derivative",
}

// TextScore is the ForensicScorer output: the normalized fraud score and the
// evidence behind each component.
type TextScore struct {
	Score          float64  `json:"score"` // 0-1
	MatchedPhrases []string `json:"matched_phrases,omitempty"`
	AvgWordLength  float64  `json:"avg_word_length"`
	TermDensity    float64  `json:"term_density"`
}

// ForensicScorer derives a single normalized fraud score from surface text
// features: fraud-indicator phrases, lexical complexity, and financial-term
// density.
type ForensicScorer struct {
	alertThreshold float64
}

func NewForensicScorer(alertThreshold float64) *ForensicScorer {
	if alertThreshold <= 0 {
		alertThreshold = defaultTextAlert
	}
	return &ForensicScorer{alertThreshold: alertThreshold}
}

// Score computes the fraud score and, when it exceeds the alert threshold,
// one DEEP_PATTERN_FRAUD finding whose severity is score*100.
func (fs *ForensicScorer) Score(text string) (TextScore, *Finding) {
	ts := fs.score(text)
	if ts.Score <= fs.alertThreshold {
		return ts, nil
	}

	f := NewFinding(KindDeepPatternFraud, "forensic_scorer",
		"Deep text analysis indicates elevated fraud likelihood",
		clamp(40+ts.Score*60, 0, 95), ts.Score*100)
	f.Evidence = append(f.Evidence, ts.MatchedPhrases...)
	f.EvidenceKind = "text_features"
	f.TriggerExplanation = "combined phrase, complexity, and terminology score exceeded alert threshold"
	if len(ts.MatchedPhrases) > 0 {
		f.ExtractedText = ts.MatchedPhrases[0]
	}
	return ts, &f
}

func (fs *ForensicScorer) score(text string) TextScore {
	var ts TextScore
	lower := strings.ToLower(text)

	for _, phrase := range fraudPhrases {
		if strings.Contains(lower, phrase) {
			ts.MatchedPhrases = append(ts.MatchedPhrases, phrase)
		}
	}
	phraseScore := phraseWeight * float64(len(ts.MatchedPhrases))
	if phraseScore > phraseCap {
		phraseScore = phraseCap
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		var totalLen, termHits int
		for _, w := range words {
			totalLen += len(w)
			for _, term := range financialTerms {
				if strings.Contains(w, term) {
					termHits++
					break
				}
			}
		}
		ts.AvgWordLength = float64(totalLen) / float64(len(words))
		ts.TermDensity = float64(termHits) / float64(len(words))
	}

	complexityScore := 0.0
	if ts.AvgWordLength > complexityOnset {
		complexityScore = (ts.AvgWordLength - complexityOnset) * 0.05
		if complexityScore > complexityCap {
			complexityScore = complexityCap
		}
	}

	densityScore := 0.0
	if ts.TermDensity > densityOnset {
		densityScore = (ts.TermDensity - densityOnset) * 3
		if densityScore > densityCap {
			densityScore = densityCap
		}
	}

	ts.Score = phraseScore + complexityScore + densityScore
	if ts.Score > 1 {
		ts.Score = 1
	}
	return ts
}
