package forensics

// Fundamental-quality ratings.
const (
	QualityPoor      = "POOR"
	QualityWeak      = "WEAK"
	QualityModerate  = "MODERATE"
	QualityGood      = "GOOD"
	QualityExcellent = "EXCELLENT"
)

// PiotroskiResult holds the nine boolean signals, the 0-9 total, and the
// mapped quality rating.
type PiotroskiResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`

	// Profitability.
	PositiveROA      bool `json:"positive_roa"`
	PositiveCashFlow bool `json:"positive_cash_flow"`
	ImprovingROA     bool `json:"improving_roa"`
	QualityEarnings  bool `json:"quality_earnings"` // cash flow exceeds net income

	// Leverage and liquidity.
	DecliningLeverage  bool `json:"declining_leverage"`
	ImprovingLiquidity bool `json:"improving_liquidity"`
	NoDilution         bool `json:"no_dilution"`

	// Operating efficiency.
	ImprovingMargin   bool `json:"improving_margin"`
	ImprovingTurnover bool `json:"improving_turnover"`
}

// PiotroskiScore evaluates the nine-signal fundamental-quality checklist over
// a current/previous statement pair. Signals with undefined inputs score
// zero; the checklist never fails outright.
func PiotroskiScore(curr, prev *FinancialStatement) PiotroskiResult {
	var res PiotroskiResult

	roaCurr, roaOK := curr.ReturnOnAssets()
	roaPrev, roaPrevOK := prev.ReturnOnAssets()

	res.PositiveROA = roaOK && roaCurr > 0
	res.PositiveCashFlow = curr.OperatingCashFlow > 0
	res.ImprovingROA = roaOK && roaPrevOK && roaCurr > roaPrev
	res.QualityEarnings = curr.OperatingCashFlow > curr.NetIncome

	lvCurr, lvOK := ratio(curr.LongTermDebt, curr.TotalAssets)
	lvPrev, lvPrevOK := ratio(prev.LongTermDebt, prev.TotalAssets)
	res.DecliningLeverage = lvOK && lvPrevOK && lvCurr <= lvPrev

	crCurr, crOK := curr.CurrentRatio()
	crPrev, crPrevOK := prev.CurrentRatio()
	res.ImprovingLiquidity = crOK && crPrevOK && crCurr > crPrev

	res.NoDilution = curr.SharesOutstanding > 0 && prev.SharesOutstanding > 0 &&
		curr.SharesOutstanding <= prev.SharesOutstanding

	gmCurr, gmOK := curr.GrossMargin()
	gmPrev, gmPrevOK := prev.GrossMargin()
	res.ImprovingMargin = gmOK && gmPrevOK && gmCurr > gmPrev

	atCurr, atOK := curr.AssetTurnover()
	atPrev, atPrevOK := prev.AssetTurnover()
	res.ImprovingTurnover = atOK && atPrevOK && atCurr > atPrev

	for _, signal := range []bool{
		res.PositiveROA, res.PositiveCashFlow, res.ImprovingROA, res.QualityEarnings,
		res.DecliningLeverage, res.ImprovingLiquidity, res.NoDilution,
		res.ImprovingMargin, res.ImprovingTurnover,
	} {
		if signal {
			res.Score++
		}
	}

	switch {
	case res.Score > 8:
		res.Rating = QualityExcellent
	case res.Score > 6:
		res.Rating = QualityGood
	case res.Score > 4:
		res.Rating = QualityModerate
	case res.Score > 2:
		res.Rating = QualityWeak
	default:
		res.Rating = QualityPoor
	}
	return res
}
