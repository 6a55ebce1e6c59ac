package engine

// Risk recommendations.
const (
	RecImmediateInvestigation = "IMMEDIATE_INVESTIGATION"
	RecEnhancedMonitoring     = "ENHANCED_MONITORING"
	RecStandardReview         = "STANDARD_REVIEW"
)

// Residual baseline: irreducible review risk carried by every document, and
// the cap on the cross-signal correlation boost.
const (
	riskBaseline        = 0.5
	correlationBoostMax = 2.0
)

// RiskAssessment is the fused overall risk for one document.
type RiskAssessment struct {
	Score          float64 `json:"score"`      // 0-10
	Confidence     float64 `json:"confidence"` // 0-1
	Recommendation string  `json:"recommendation"`
}

// RiskAggregator fuses the independently produced signal scores with fixed
// weights: 0.4 x text fraud score + 0.3 x anomaly score + correlation boost
// + residual baseline.
type RiskAggregator struct {
	textWeight    float64
	anomalyWeight float64
}

func NewRiskAggregator(textWeight, anomalyWeight float64) *RiskAggregator {
	if textWeight <= 0 {
		textWeight = 0.4
	}
	if anomalyWeight <= 0 {
		anomalyWeight = 0.3
	}
	return &RiskAggregator{textWeight: textWeight, anomalyWeight: anomalyWeight}
}

// Aggregate computes the overall risk. textScore is the 0-1 ForensicScorer
// output; anomaly may be nil when that analyzer contributed nothing;
// correlation is a 0-1 cross-signal co-occurrence strength.
func (a *RiskAggregator) Aggregate(textScore float64, anomaly *AnomalyResult, correlation float64) RiskAssessment {
	score := a.textWeight * clamp(textScore, 0, 1) * 10
	confidence := clamp(textScore, 0, 1)
	signals := 1.0

	if anomaly != nil {
		score += a.anomalyWeight * clamp(anomaly.Score, 0, 10)
		confidence += anomaly.Confidence
		signals++
	}

	score += clamp(correlation, 0, 1) * correlationBoostMax
	score += riskBaseline

	var res RiskAssessment
	res.Score = clamp(score, 0, 10)
	res.Confidence = clamp(confidence/signals, 0, 1)

	switch {
	case res.Score > 8:
		res.Recommendation = RecImmediateInvestigation
	case res.Score > 5:
		res.Recommendation = RecEnhancedMonitoring
	default:
		res.Recommendation = RecStandardReview
	}
	return res
}
