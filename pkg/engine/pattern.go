package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/user/fraudscope/pkg/statute"
)

// Rule is a single surface-scan pattern. Confidence grows with match count:
// min(BaseSeverity + 15*matches, 95).
type Rule struct {
	Name         string
	Matcher      *regexp.Regexp
	Statute      string
	Description  string
	BaseSeverity float64
}

// excerptContext is how many characters of surrounding text each evidence
// excerpt carries.
const excerptContext = 40

// PatternScanner runs the rule table over document text and cross-references
// the statute index for missing required disclosures. It only reads the
// index, so one scanner may serve concurrent analyses.
type PatternScanner struct {
	rules     []Rule
	crossRefs []string // citations whose required disclosures are checked
	index     *statute.Index
}

func NewPatternScanner(index *statute.Index, rules []Rule, crossRefs []string) *PatternScanner {
	return &PatternScanner{rules: rules, crossRefs: crossRefs, index: index}
}

// DefaultRules returns the built-in fraud and regulatory pattern table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:         "insider-trading-language",
			Matcher:      regexp.MustCompile(`(?i)(material\s+non-?public\s+information|trading\s+window|tipp(?:ee|er)|front.?running)`),
			Statute:      "15 U.S.C. 78j(b)",
			Description:  "Language consistent with insider trading activity",
			BaseSeverity: 60,
		},
		{
			Name:         "revenue-manipulation",
			Matcher:      regexp.MustCompile(`(?i)(channel\s+stuffing|round.?trip(?:ping)?\s+(?:sales|transactions?)|bill\s+and\s+hold|premature(?:ly)?\s+recogni[sz]ed?\s+revenue)`),
			Statute:      "15 U.S.C. 78m(b)",
			Description:  "Indicators of improper revenue recognition",
			BaseSeverity: 55,
		},
		{
			Name:         "off-balance-sheet",
			Matcher:      regexp.MustCompile(`(?i)(off.?balance.?sheet|special\s+purpose\s+(?:entit(?:y|ies)|vehicles?)|undisclosed\s+(?:liabilit(?:y|ies)|guarantees?))`),
			Statute:      "15 U.S.C. 7262",
			Description:  "Possible concealment of obligations off the balance sheet",
			BaseSeverity: 50,
		},
		{
			Name:         "document-destruction",
			Matcher:      regexp.MustCompile(`(?i)(shred(?:ded|ding)?\s+(?:the\s+)?(?:documents?|records?|files?)|delete\s+(?:the\s+)?emails?|destroy(?:ed)?\s+(?:the\s+)?evidence)`),
			Statute:      "18 U.S.C. 1519",
			Description:  "References to destruction of records",
			BaseSeverity: 70,
		},
		{
			Name:         "falsified-records",
			Matcher:      regexp.MustCompile(`(?i)(backdat(?:e|ed|ing)|falsif(?:y|ied|ication)|fabricat(?:e|ed|ing)\s+(?:invoices?|records?|entries)|cook(?:ing)?\s+the\s+books)`),
			Statute:      "18 U.S.C. 1001",
			Description:  "Indicators of falsified books and records",
			BaseSeverity: 65,
		},
		{
			Name:         "kickback-bribery",
			Matcher:      regexp.MustCompile(`(?i)(kickbacks?|bribe(?:s|ry)?|facilitation\s+payments?|under\s+the\s+table)`),
			Statute:      "15 U.S.C. 78dd-1",
			Description:  "Possible improper payments",
			BaseSeverity: 60,
		},
	}
}

// Scan returns one finding per matched rule plus statutory-violation findings
// for cross-referenced provisions whose required disclosures are absent.
func (s *PatternScanner) Scan(text string) []Finding {
	var findings []Finding

	for _, rule := range s.rules {
		locs := rule.Matcher.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}

		confidence := rule.BaseSeverity + 15*float64(len(locs))
		if confidence > 95 {
			confidence = 95
		}

		f := NewFinding(KindPatternMatch, "pattern_scanner", rule.Description, confidence, rule.BaseSeverity)
		f.StatuteCitation = rule.Statute
		f.EvidenceKind = "pattern_match"
		f.TriggerExplanation = fmt.Sprintf("rule %q matched %d time(s)", rule.Name, len(locs))
		for _, loc := range locs {
			f.Evidence = append(f.Evidence, excerpt(text, loc[0], loc[1]))
		}
		f.ExtractedText = f.Evidence[0]
		f.Span = &DocumentSpan{Start: locs[0][0], End: locs[0][1]}
		f.Penalties = s.resolvePenalties(rule.Statute)
		findings = append(findings, f)
	}

	findings = append(findings, s.scanDisclosures(text)...)
	return findings
}

// scanDisclosures emits a STATUTORY_VIOLATION finding for each
// cross-referenced provision none of whose required disclosures appear in the
// text. Provisions missing from the index are silently skipped.
func (s *PatternScanner) scanDisclosures(text string) []Finding {
	if s.index == nil {
		return nil
	}
	lower := strings.ToLower(text)

	var findings []Finding
	for _, citation := range s.crossRefs {
		prov, ok := s.index.Lookup(citation)
		if !ok || len(prov.RequiredDisclosures) == 0 {
			continue
		}

		found := false
		for _, kw := range prov.RequiredDisclosures {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found = true
				break
			}
		}
		if found {
			continue
		}

		severity := clamp(40+prov.CriminalLiability*6, 0, 100)
		f := NewFinding(KindStatutoryViolation, "pattern_scanner",
			fmt.Sprintf("Required disclosure absent: %s", prov.Name), 85, severity)
		f.StatuteCitation = prov.Citation
		f.EvidenceKind = "missing_disclosure"
		f.Evidence = []string{fmt.Sprintf(
			"none of the required disclosure keywords %v appear in the document",
			prov.RequiredDisclosures)}
		f.TriggerExplanation = prov.Description
		f.Penalties = penaltiesFromSpecs(prov.Penalties)
		findings = append(findings, f)
	}
	return findings
}

func (s *PatternScanner) resolvePenalties(citation string) []Penalty {
	if s.index == nil || citation == "" {
		return nil
	}
	prov, ok := s.index.Lookup(citation)
	if !ok {
		// No cross-reference available; not an error.
		return nil
	}
	return penaltiesFromSpecs(prov.Penalties)
}

func penaltiesFromSpecs(specs []statute.PenaltySpec) []Penalty {
	var out []Penalty
	for _, spec := range specs {
		switch spec.Kind {
		case "monetary":
			out = append(out, MonetaryPenalty(spec.Amount))
		case "imprisonment":
			out = append(out, ImprisonmentPenalty(spec.Duration, spec.Unit))
		case "license_action":
			out = append(out, LicenseActionPenalty(spec.Text))
		}
	}
	return out
}

func excerpt(text string, start, end int) string {
	lo := start - excerptContext
	if lo < 0 {
		lo = 0
	}
	hi := end + excerptContext
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}
