package forensics

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the validation taxonomy. Callers abort forensic
// scoring for the offending document only; other analyzers proceed.
var (
	ErrMissingStatementPair = errors.New("forensics: both current and previous period statements are required")
	ErrInsufficientData     = errors.New("forensics: insufficient financial data")
)

// nearZero is the denominator guard. Ratios dividing by anything smaller are
// reported as undefined features and dropped from scoring instead of
// propagating NaN or Inf.
const nearZero = 1e-9

// FinancialStatement is a single reporting period, already numeric. Derived
// ratios are computed on demand when absent.
type FinancialStatement struct {
	Period string `yaml:"period,omitempty" json:"period,omitempty"`

	// Income statement.
	Revenue         float64 `yaml:"revenue" json:"revenue"`
	COGS            float64 `yaml:"cogs" json:"cogs"`
	GrossProfit     float64 `yaml:"gross_profit,omitempty" json:"gross_profit,omitempty"`
	SGA             float64 `yaml:"sga" json:"sga"`
	OperatingIncome float64 `yaml:"operating_income" json:"operating_income"`
	EBIT            float64 `yaml:"ebit" json:"ebit"`
	NetIncome       float64 `yaml:"net_income" json:"net_income"`
	Depreciation    float64 `yaml:"depreciation,omitempty" json:"depreciation,omitempty"`

	// Balance sheet.
	CurrentAssets      float64 `yaml:"current_assets" json:"current_assets"`
	TotalAssets        float64 `yaml:"total_assets" json:"total_assets"`
	Receivables        float64 `yaml:"receivables" json:"receivables"`
	RetainedEarnings   float64 `yaml:"retained_earnings" json:"retained_earnings"`
	PPE                float64 `yaml:"ppe,omitempty" json:"ppe,omitempty"`
	CurrentLiabilities float64 `yaml:"current_liabilities" json:"current_liabilities"`
	TotalLiabilities   float64 `yaml:"total_liabilities" json:"total_liabilities"`
	LongTermDebt       float64 `yaml:"long_term_debt" json:"long_term_debt"`
	SharesOutstanding  float64 `yaml:"shares_outstanding" json:"shares_outstanding"`

	// Cash flow / market.
	OperatingCashFlow float64 `yaml:"operating_cash_flow" json:"operating_cash_flow"`
	MarketCap         float64 `yaml:"market_cap" json:"market_cap"`
}

// Validate checks the fields every quantitative model depends on. Missing
// core inputs abort scoring rather than silently defaulting to zero.
func (s *FinancialStatement) Validate() error {
	var missing []string
	if s.Revenue == 0 {
		missing = append(missing, "revenue")
	}
	if s.TotalAssets == 0 {
		missing = append(missing, "total_assets")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrInsufficientData, missing)
	}
	return nil
}

// GrossProfitOrDerived returns the reported gross profit, deriving it from
// revenue and COGS when absent.
func (s *FinancialStatement) GrossProfitOrDerived() float64 {
	if s.GrossProfit != 0 {
		return s.GrossProfit
	}
	return s.Revenue - s.COGS
}

// ReturnOnAssets is net income over total assets.
func (s *FinancialStatement) ReturnOnAssets() (float64, bool) {
	return ratio(s.NetIncome, s.TotalAssets)
}

// CurrentRatio is current assets over current liabilities.
func (s *FinancialStatement) CurrentRatio() (float64, bool) {
	return ratio(s.CurrentAssets, s.CurrentLiabilities)
}

// AssetTurnover is revenue over total assets.
func (s *FinancialStatement) AssetTurnover() (float64, bool) {
	return ratio(s.Revenue, s.TotalAssets)
}

// GrossMargin is gross profit over revenue.
func (s *FinancialStatement) GrossMargin() (float64, bool) {
	return ratio(s.GrossProfitOrDerived(), s.Revenue)
}

// WorkingCapital is current assets minus current liabilities.
func (s *FinancialStatement) WorkingCapital() float64 {
	return s.CurrentAssets - s.CurrentLiabilities
}

// Figures returns every nonzero positive figure in the statement, the input
// population for the leading-digit test.
func (s *FinancialStatement) Figures() []float64 {
	all := []float64{
		s.Revenue, s.COGS, s.GrossProfit, s.SGA, s.OperatingIncome, s.EBIT,
		s.NetIncome, s.Depreciation, s.CurrentAssets, s.TotalAssets,
		s.Receivables, s.RetainedEarnings, s.PPE, s.CurrentLiabilities,
		s.TotalLiabilities, s.LongTermDebt, s.SharesOutstanding,
		s.OperatingCashFlow, s.MarketCap,
	}
	var out []float64
	for _, v := range all {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// ratio divides with a near-zero denominator guard. ok=false marks the
// feature undefined.
func ratio(num, den float64) (float64, bool) {
	if math.Abs(den) < nearZero {
		return 0, false
	}
	return num / den, true
}
