package forensics

import (
	"fmt"

	"github.com/user/fraudscope/pkg/logging"
)

// ScoreResult bundles the four model outputs plus the red flags derived from
// their band classifications.
type ScoreResult struct {
	Beneish   BeneishResult   `json:"beneish"`
	Altman    AltmanResult    `json:"altman"`
	Piotroski PiotroskiResult `json:"piotroski"`
	Benford   BenfordResult   `json:"benford"`
	RedFlags  []string        `json:"red_flags"`
}

// Engine runs the quantitative financial-forensics models. It is stateless
// and safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Analyze runs all four models over a current/previous statement pair plus
// any historical statements (which only feed the digit test). It is a pure
// function of its inputs: repeated calls produce identical scores.
func (e *Engine) Analyze(curr, prev *FinancialStatement, historical ...*FinancialStatement) (*ScoreResult, error) {
	if curr == nil || prev == nil {
		return nil, ErrMissingStatementPair
	}
	if err := curr.Validate(); err != nil {
		return nil, fmt.Errorf("current period: %w", err)
	}
	if err := prev.Validate(); err != nil {
		return nil, fmt.Errorf("previous period: %w", err)
	}

	res := &ScoreResult{
		Beneish:   BeneishScore(curr, prev),
		Altman:    AltmanZScore(curr),
		Piotroski: PiotroskiScore(curr, prev),
	}

	figures := append(curr.Figures(), prev.Figures()...)
	for _, h := range historical {
		if h != nil {
			figures = append(figures, h.Figures()...)
		}
	}
	res.Benford = BenfordTest(figures)

	res.RedFlags = deriveRedFlags(res)

	logging.Logger.Debugw("forensic scoring complete",
		"m_score", res.Beneish.Score,
		"z_score", res.Altman.Z,
		"f_score", res.Piotroski.Score,
		"benford_passed", res.Benford.Passed,
		"red_flags", len(res.RedFlags))
	return res, nil
}

func deriveRedFlags(res *ScoreResult) []string {
	var flags []string

	switch res.Beneish.Band {
	case ManipulationCritical:
		flags = append(flags, fmt.Sprintf(
			"CRITICAL earnings manipulation risk: M-Score %.2f exceeds -1.78", res.Beneish.Score))
	case ManipulationHigh:
		flags = append(flags, fmt.Sprintf(
			"High earnings manipulation risk: M-Score %.2f", res.Beneish.Score))
	}

	if res.Altman.Zone == ZoneDistress {
		flags = append(flags, fmt.Sprintf(
			"Bankruptcy distress zone: Z-Score %.2f below 1.8", res.Altman.Z))
	}

	if res.Piotroski.Rating == QualityPoor || res.Piotroski.Rating == QualityWeak {
		flags = append(flags, fmt.Sprintf(
			"%s fundamental quality: F-Score %d/9", res.Piotroski.Rating, res.Piotroski.Score))
	}

	if res.Benford.SampleSize >= benfordMinSample && !res.Benford.Passed {
		flag := fmt.Sprintf("Failed Benford's Law digit test: chi-square %.2f", res.Benford.ChiSquare)
		if len(res.Benford.SuspiciousDigits) > 0 {
			flag += fmt.Sprintf(" (suspicious leading digits %v)", res.Benford.SuspiciousDigits)
		}
		flags = append(flags, flag)
	}

	return flags
}
