package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/fraudscope/pkg/forensics"
)

func TestDetectBandRules(t *testing.T) {
	d := NewAnomalyDetector()

	res := d.Detect(map[string]float64{"profit_margin": 0.6})
	// Band rule (+2.5) plus benchmark outlier (+1.0): z = (0.6-0.08)/0.10.
	assert.InDelta(t, 3.5, res.Score, 1e-9)
	assert.InDelta(t, 0.35, res.Confidence, 1e-9)
	assert.Len(t, res.Patterns, 1)
	assert.Len(t, res.Insights, 1)
}

func TestDetectNormalRatiosScoreZero(t *testing.T) {
	d := NewAnomalyDetector()
	res := d.Detect(map[string]float64{
		"profit_margin":  0.08,
		"revenue_growth": 0.05,
		"leverage":       0.45,
		"current_ratio":  1.8,
	})
	assert.Zero(t, res.Score)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Patterns)
}

func TestDetectMissingRatiosSkipped(t *testing.T) {
	d := NewAnomalyDetector()
	res := d.Detect(map[string]float64{})
	assert.Zero(t, res.Score)
}

func TestDetectDeterministic(t *testing.T) {
	d := NewAnomalyDetector()
	ratios := map[string]float64{
		"profit_margin":          0.7,
		"revenue_growth":         0.9,
		"receivables_to_revenue": 0.5,
		"leverage":               0.95,
		"current_ratio":          0.4,
	}
	first := d.Detect(ratios)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, d.Detect(ratios))
	}
}

func TestDetectScoreClampedAtTen(t *testing.T) {
	d := NewAnomalyDetector()
	res := d.Detect(map[string]float64{
		"profit_margin":          5,
		"revenue_growth":         5,
		"receivables_to_revenue": 5,
		"leverage":               5,
		"asset_turnover":         50,
		"current_ratio":          -5,
	})
	assert.LessOrEqual(t, res.Score, 10.0)
	assert.LessOrEqual(t, res.Confidence, 1.0)
}

func TestRatiosFromStatements(t *testing.T) {
	curr := &forensics.FinancialStatement{
		Revenue:            1_000_000,
		NetIncome:          100_000,
		Receivables:        200_000,
		TotalAssets:        2_000_000,
		TotalLiabilities:   1_000_000,
		CurrentAssets:      500_000,
		CurrentLiabilities: 250_000,
	}
	prev := &forensics.FinancialStatement{Revenue: 800_000}

	ratios := RatiosFromStatements(curr, prev)
	require.Contains(t, ratios, "revenue_growth")
	assert.InDelta(t, 0.25, ratios["revenue_growth"], 1e-9)
	assert.InDelta(t, 0.1, ratios["profit_margin"], 1e-9)
	assert.InDelta(t, 2.0, ratios["current_ratio"], 1e-9)

	// Zero denominators drop the feature instead of producing Inf.
	empty := RatiosFromStatements(&forensics.FinancialStatement{}, nil)
	assert.Empty(t, empty)
}
