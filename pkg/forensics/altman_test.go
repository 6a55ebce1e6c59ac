package forensics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAltmanZScoreGreyZone(t *testing.T) {
	s := &FinancialStatement{
		Revenue:            800,
		EBIT:               200,
		CurrentAssets:      300,
		TotalAssets:        1000,
		RetainedEarnings:   250,
		CurrentLiabilities: 200,
		TotalLiabilities:   500,
		MarketCap:          500,
	}
	res := AltmanZScore(s)

	// 1.2*0.1 + 1.4*0.25 + 3.3*0.2 + 0.6*1.0 + 0.99*0.8
	assert.InDelta(t, 2.522, res.Z, 1e-9)
	assert.Equal(t, ZoneGrey, res.Zone)
}

func TestAltmanZScoreZones(t *testing.T) {
	tests := []struct {
		name string
		ebit float64
		zone string
	}{
		{"safe", 400, ZoneSafe},
		{"grey", 200, ZoneGrey},
		{"distress", -100, ZoneDistress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &FinancialStatement{
				Revenue:            800,
				EBIT:               tt.ebit,
				CurrentAssets:      300,
				TotalAssets:        1000,
				RetainedEarnings:   250,
				CurrentLiabilities: 200,
				TotalLiabilities:   500,
				MarketCap:          500,
			}
			assert.Equal(t, tt.zone, AltmanZScore(s).Zone)
		})
	}
}

func TestAltmanZScoreUndefinedComponents(t *testing.T) {
	s := &FinancialStatement{Revenue: 800, TotalAssets: 1000}
	res := AltmanZScore(s)

	// Market cap over zero liabilities is undefined, not Inf.
	assert.Contains(t, res.Undefined, "X4")
	assert.Zero(t, res.X4)
	assert.False(t, res.Z != res.Z, "Z must not be NaN")
}
