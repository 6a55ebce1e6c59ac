package forensics

// Beneish M-Score coefficients.
const (
	beneishIntercept = -4.84
	weightDSRI       = 0.920
	weightGMI        = 0.528
	weightAQI        = 0.404
	weightSGI        = 0.892
	weightDEPI       = 0.115
	weightSGAI       = -0.172
	weightTATA       = 4.679
	weightLVGI       = -0.327
)

// Earnings-manipulation risk bands.
const (
	ManipulationCritical = "CRITICAL"
	ManipulationHigh     = "HIGH"
	ManipulationMedium   = "MEDIUM"
	ManipulationLow      = "LOW"
)

// BeneishResult holds the M-Score, its eight sub-indices, and the risk band.
// Sub-indices whose inputs were undefined (near-zero denominators) are listed
// in Undefined and contribute their neutral value instead.
type BeneishResult struct {
	Score     float64  `json:"score"`
	DSRI      float64  `json:"dsri"`
	GMI       float64  `json:"gmi"`
	AQI       float64  `json:"aqi"`
	SGI       float64  `json:"sgi"`
	DEPI      float64  `json:"depi"`
	SGAI      float64  `json:"sgai"`
	TATA      float64  `json:"tata"`
	LVGI      float64  `json:"lvgi"`
	Band      string   `json:"band"`
	Undefined []string `json:"undefined_features,omitempty"`
}

// BeneishScore computes the eight-index earnings-manipulation score over a
// current/previous statement pair. Index ratios with undefined denominators
// fall back to the neutral 1.0 (0 for TATA) and are recorded.
func BeneishScore(curr, prev *FinancialStatement) BeneishResult {
	res := BeneishResult{DSRI: 1, GMI: 1, AQI: 1, SGI: 1, DEPI: 1, SGAI: 1, LVGI: 1}

	// DSRI: days-sales-in-receivables index.
	rsCurr, ok1 := ratio(curr.Receivables, curr.Revenue)
	rsPrev, ok2 := ratio(prev.Receivables, prev.Revenue)
	if v, ok := indexRatio(rsCurr, rsPrev, ok1, ok2); ok {
		res.DSRI = v
	} else {
		res.Undefined = append(res.Undefined, "DSRI")
	}

	// GMI: gross-margin index, prior over current (deterioration > 1).
	gmCurr, ok1 := curr.GrossMargin()
	gmPrev, ok2 := prev.GrossMargin()
	if v, ok := indexRatio(gmPrev, gmCurr, ok2, ok1); ok {
		res.GMI = v
	} else {
		res.Undefined = append(res.Undefined, "GMI")
	}

	// AQI: asset-quality index, share of soft assets vs prior.
	aqCurr, ok1 := softAssetShare(curr)
	aqPrev, ok2 := softAssetShare(prev)
	if v, ok := indexRatio(aqCurr, aqPrev, ok1, ok2); ok {
		res.AQI = v
	} else {
		res.Undefined = append(res.Undefined, "AQI")
	}

	// SGI: sales-growth index.
	if v, ok := ratio(curr.Revenue, prev.Revenue); ok {
		res.SGI = v
	} else {
		res.Undefined = append(res.Undefined, "SGI")
	}

	// DEPI: depreciation-rate index, prior over current (slowing > 1).
	dpCurr, ok1 := ratio(curr.Depreciation, curr.Depreciation+curr.PPE)
	dpPrev, ok2 := ratio(prev.Depreciation, prev.Depreciation+prev.PPE)
	if v, ok := indexRatio(dpPrev, dpCurr, ok2, ok1); ok {
		res.DEPI = v
	} else {
		res.Undefined = append(res.Undefined, "DEPI")
	}

	// SGAI: SG&A-rate index.
	sgCurr, ok1 := ratio(curr.SGA, curr.Revenue)
	sgPrev, ok2 := ratio(prev.SGA, prev.Revenue)
	if v, ok := indexRatio(sgCurr, sgPrev, ok1, ok2); ok {
		res.SGAI = v
	} else {
		res.Undefined = append(res.Undefined, "SGAI")
	}

	// LVGI: leverage index over total assets.
	lvCurr, ok1 := ratio(curr.CurrentLiabilities+curr.LongTermDebt, curr.TotalAssets)
	lvPrev, ok2 := ratio(prev.CurrentLiabilities+prev.LongTermDebt, prev.TotalAssets)
	if v, ok := indexRatio(lvCurr, lvPrev, ok1, ok2); ok {
		res.LVGI = v
	} else {
		res.Undefined = append(res.Undefined, "LVGI")
	}

	// TATA: total accruals to total assets.
	if v, ok := ratio(curr.NetIncome-curr.OperatingCashFlow, curr.TotalAssets); ok {
		res.TATA = v
	} else {
		res.Undefined = append(res.Undefined, "TATA")
	}

	res.Score = beneishIntercept +
		weightDSRI*res.DSRI +
		weightGMI*res.GMI +
		weightAQI*res.AQI +
		weightSGI*res.SGI +
		weightDEPI*res.DEPI +
		weightSGAI*res.SGAI +
		weightTATA*res.TATA +
		weightLVGI*res.LVGI

	switch {
	case res.Score > -1.78:
		res.Band = ManipulationCritical
	case res.Score > -2.22:
		res.Band = ManipulationHigh
	case res.Score > -2.76:
		res.Band = ManipulationMedium
	default:
		res.Band = ManipulationLow
	}
	return res
}

// softAssetShare is the fraction of total assets that are neither current
// assets nor PP&E.
func softAssetShare(s *FinancialStatement) (float64, bool) {
	v, ok := ratio(s.CurrentAssets+s.PPE, s.TotalAssets)
	if !ok {
		return 0, false
	}
	return 1 - v, true
}

// indexRatio divides two period ratios, requiring both to be defined and the
// denominator to be usable.
func indexRatio(num, den float64, okNum, okDen bool) (float64, bool) {
	if !okNum || !okDen {
		return 0, false
	}
	return ratio(num, den)
}
