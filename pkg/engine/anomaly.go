package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/fraudscope/pkg/forensics"
)

// AnomalyResult is the outlier scorer output.
type AnomalyResult struct {
	Score      float64  `json:"score"`      // 0-10
	Confidence float64  `json:"confidence"` // 0-1
	Patterns   []string `json:"patterns,omitempty"`
	Insights   []string `json:"insights,omitempty"`
}

// benchmark is an industry-wide mean/deviation pair for a named ratio. The
// z-score comparison against these replaces the nondeterministic simulated
// component of earlier detectors with a reproducible statistical model.
type benchmark struct {
	mean, stddev float64
}

var industryBenchmarks = map[string]benchmark{
	"profit_margin":          {mean: 0.08, stddev: 0.10},
	"revenue_growth":         {mean: 0.06, stddev: 0.15},
	"receivables_to_revenue": {mean: 0.15, stddev: 0.08},
	"leverage":               {mean: 0.45, stddev: 0.20},
	"asset_turnover":         {mean: 0.90, stddev: 0.45},
	"current_ratio":          {mean: 1.80, stddev: 0.70},
}

// Fixed-band rules on top of the benchmark comparison.
type anomalyRule struct {
	ratio     string
	predicate func(v float64) bool
	weight    float64
	pattern   string
}

var anomalyRules = []anomalyRule{
	{"profit_margin", func(v float64) bool { return v > 0.5 }, 2.5, "profit margin above 50% of revenue"},
	{"profit_margin", func(v float64) bool { return v < -0.2 }, 2.0, "deeply negative profit margin"},
	{"revenue_growth", func(v float64) bool { return v > 0.5 }, 2.0, "revenue growth above 50% period over period"},
	{"revenue_growth", func(v float64) bool { return v < -0.3 }, 1.5, "revenue collapse beyond 30%"},
	{"receivables_to_revenue", func(v float64) bool { return v > 0.3 }, 1.5, "receivables exceed 30% of revenue"},
	{"leverage", func(v float64) bool { return v > 0.8 }, 1.5, "liabilities exceed 80% of assets"},
	{"current_ratio", func(v float64) bool { return v < 1.0 }, 1.0, "current liabilities exceed current assets"},
}

// zAlert is the absolute z-score beyond which a ratio counts as an outlier.
const zAlert = 2.0

// AnomalyDetector scores a named ratio map against fixed bands and industry
// benchmarks. It is deterministic: the same ratios always produce the same
// result.
type AnomalyDetector struct{}

func NewAnomalyDetector() *AnomalyDetector {
	return &AnomalyDetector{}
}

// Detect computes the 0-10 anomaly score. Ratios absent from the map are
// skipped, never defaulted.
func (d *AnomalyDetector) Detect(ratios map[string]float64) AnomalyResult {
	var res AnomalyResult

	for _, rule := range anomalyRules {
		v, ok := ratios[rule.ratio]
		if !ok || !rule.predicate(v) {
			continue
		}
		res.Score += rule.weight
		res.Patterns = append(res.Patterns, rule.pattern)
	}

	// Deterministic iteration order for reproducible insight lists.
	names := make([]string, 0, len(ratios))
	for name := range ratios {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b, ok := industryBenchmarks[name]
		if !ok || b.stddev == 0 {
			continue
		}
		z := (ratios[name] - b.mean) / b.stddev
		if math.Abs(z) > zAlert {
			res.Score += 1.0
			res.Insights = append(res.Insights, fmt.Sprintf(
				"%s deviates %.1f standard deviations from the industry benchmark", name, z))
		}
	}

	res.Score = clamp(res.Score, 0, 10)
	res.Confidence = res.Score / 10
	if res.Confidence > 1 {
		res.Confidence = 1
	}
	return res
}

// RatiosFromStatements derives the detector's input map from a statement
// pair. Ratios with undefined denominators are omitted.
func RatiosFromStatements(curr, prev *forensics.FinancialStatement) map[string]float64 {
	ratios := make(map[string]float64)
	if curr == nil {
		return ratios
	}

	put := func(name string, num, den float64) {
		if math.Abs(den) > 1e-9 {
			ratios[name] = num / den
		}
	}

	put("profit_margin", curr.NetIncome, curr.Revenue)
	put("receivables_to_revenue", curr.Receivables, curr.Revenue)
	put("leverage", curr.TotalLiabilities, curr.TotalAssets)
	put("asset_turnover", curr.Revenue, curr.TotalAssets)
	put("current_ratio", curr.CurrentAssets, curr.CurrentLiabilities)
	if prev != nil {
		put("revenue_growth", curr.Revenue-prev.Revenue, prev.Revenue)
	}
	return ratios
}
