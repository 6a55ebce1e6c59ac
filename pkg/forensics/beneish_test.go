package forensics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steadyPair builds a statement pair where every Beneish sub-index is exactly
// 1.0 and TATA is 0, except SGI which reflects 11.1% sales growth.
func steadyPair(t *testing.T) (*FinancialStatement, *FinancialStatement) {
	t.Helper()
	curr := &FinancialStatement{
		Revenue:            1_000_000,
		COGS:               600_000,
		SGA:                100_000,
		NetIncome:          50_000,
		OperatingCashFlow:  50_000,
		Depreciation:       30_000,
		CurrentAssets:      500_000,
		TotalAssets:        1_000_000,
		Receivables:        100_000,
		PPE:                300_000,
		CurrentLiabilities: 200_000,
		LongTermDebt:       100_000,
	}
	prev := &FinancialStatement{
		Revenue:            900_000,
		COGS:               540_000,
		SGA:                90_000,
		NetIncome:          45_000,
		OperatingCashFlow:  45_000,
		Depreciation:       27_000,
		CurrentAssets:      450_000,
		TotalAssets:        900_000,
		Receivables:        90_000,
		PPE:                270_000,
		CurrentLiabilities: 180_000,
		LongTermDebt:       90_000,
	}
	return curr, prev
}

func TestBeneishScoreSalesGrowthOnly(t *testing.T) {
	curr, prev := steadyPair(t)
	res := BeneishScore(curr, prev)

	assert.InDelta(t, 1.0, res.DSRI, 1e-9)
	assert.InDelta(t, 1.0, res.GMI, 1e-9)
	assert.InDelta(t, 1.0, res.AQI, 1e-9)
	assert.InDelta(t, 1.0, res.DEPI, 1e-9)
	assert.InDelta(t, 1.0, res.SGAI, 1e-9)
	assert.InDelta(t, 1.0, res.LVGI, 1e-9)
	assert.InDelta(t, 0.0, res.TATA, 1e-9)
	assert.InDelta(t, 1_000_000.0/900_000.0, res.SGI, 1e-9)

	// -4.84 + (0.92+0.528+0.404+0.115-0.172-0.327) + 0.892*SGI
	expected := -4.84 + 1.468 + 0.892*(1_000_000.0/900_000.0)
	assert.InDelta(t, expected, res.Score, 1e-9)
	assert.Equal(t, ManipulationMedium, res.Band)
	assert.Empty(t, res.Undefined)
}

func TestBeneishScoreDeterministic(t *testing.T) {
	curr, prev := steadyPair(t)
	first := BeneishScore(curr, prev)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BeneishScore(curr, prev))
	}
}

func TestBeneishScoreBands(t *testing.T) {
	tests := []struct {
		name string
		tata float64
		band string
	}{
		{"low", 0, ManipulationMedium},
		{"high accruals push critical", 0.3, ManipulationCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curr, prev := steadyPair(t)
			curr.OperatingCashFlow = curr.NetIncome - tt.tata*curr.TotalAssets
			res := BeneishScore(curr, prev)
			assert.Equal(t, tt.band, res.Band)
		})
	}
}

func TestBeneishScoreUndefinedFeatureDropped(t *testing.T) {
	curr, prev := steadyPair(t)
	curr.Depreciation = 0
	curr.PPE = 0
	res := BeneishScore(curr, prev)

	require.Contains(t, res.Undefined, "DEPI")
	// Neutral fallback keeps the score defined.
	assert.InDelta(t, 1.0, res.DEPI, 1e-9)
	assert.False(t, res.Score != res.Score, "score must not be NaN")
}
