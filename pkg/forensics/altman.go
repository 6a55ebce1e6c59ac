package forensics

// Bankruptcy-risk zones.
const (
	ZoneSafe     = "SAFE"
	ZoneGrey     = "GREY"
	ZoneDistress = "DISTRESS"
)

// AltmanResult holds the Z-Score, its five components, and the distress zone.
type AltmanResult struct {
	Z         float64  `json:"z"`
	X1        float64  `json:"x1"` // working capital / total assets
	X2        float64  `json:"x2"` // retained earnings / total assets
	X3        float64  `json:"x3"` // EBIT / total assets
	X4        float64  `json:"x4"` // market cap / total liabilities
	X5        float64  `json:"x5"` // sales / total assets
	Zone      string   `json:"zone"`
	Undefined []string `json:"undefined_features,omitempty"`
}

// AltmanZScore computes Z = 1.2*x1 + 1.4*x2 + 3.3*x3 + 0.6*x4 + 0.99*x5.
// Components with undefined denominators contribute zero and are recorded.
func AltmanZScore(s *FinancialStatement) AltmanResult {
	var res AltmanResult

	set := func(name string, num, den float64, target *float64) {
		if v, ok := ratio(num, den); ok {
			*target = v
		} else {
			res.Undefined = append(res.Undefined, name)
		}
	}

	set("X1", s.WorkingCapital(), s.TotalAssets, &res.X1)
	set("X2", s.RetainedEarnings, s.TotalAssets, &res.X2)
	set("X3", s.EBIT, s.TotalAssets, &res.X3)
	set("X4", s.MarketCap, s.TotalLiabilities, &res.X4)
	set("X5", s.Revenue, s.TotalAssets, &res.X5)

	res.Z = 1.2*res.X1 + 1.4*res.X2 + 3.3*res.X3 + 0.6*res.X4 + 0.99*res.X5

	switch {
	case res.Z > 3.0:
		res.Zone = ZoneSafe
	case res.Z >= 1.8:
		res.Zone = ZoneGrey
	default:
		res.Zone = ZoneDistress
	}
	return res
}
