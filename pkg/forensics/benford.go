package forensics

import (
	"fmt"
	"math"
)

// Benford's Law parameters: theoretical leading-digit distribution for
// digits 1-9, the chi-square critical value at 8 degrees of freedom / 95%
// confidence, and the per-digit suspicion threshold (chi-square, 1 df).
var benfordExpected = [9]float64{0.301, 0.176, 0.125, 0.097, 0.079, 0.067, 0.058, 0.051, 0.046}

const (
	benfordMinSample  = 30
	benfordCritical   = 15.507
	benfordDigitAlert = 3.84
)

// BenfordResult reports the leading-digit goodness-of-fit test.
type BenfordResult struct {
	Passed           bool    `json:"passed"`
	ChiSquare        float64 `json:"chi_square"`
	Confidence       float64 `json:"confidence"` // 0-1
	SampleSize       int     `json:"sample_size"`
	Observed         [9]int  `json:"observed"`
	SuspiciousDigits []int   `json:"suspicious_digits,omitempty"`
	Message          string  `json:"message,omitempty"`
}

// BenfordTest runs a chi-square goodness-of-fit test of the leading digits
// of the supplied figures against Benford's distribution. Zero and negative
// figures are excluded. Fewer than 30 qualifying figures yields
// passed=false with zero confidence and an explanatory message.
func BenfordTest(figures []float64) BenfordResult {
	var res BenfordResult

	for _, f := range figures {
		d := leadingDigit(f)
		if d == 0 {
			continue
		}
		res.Observed[d-1]++
		res.SampleSize++
	}

	if res.SampleSize < benfordMinSample {
		res.Message = fmt.Sprintf(
			"insufficient sample: %d qualifying figures, need at least %d",
			res.SampleSize, benfordMinSample)
		return res
	}

	for i, p := range benfordExpected {
		expected := p * float64(res.SampleSize)
		contribution := math.Pow(float64(res.Observed[i])-expected, 2) / expected
		res.ChiSquare += contribution
		if contribution > benfordDigitAlert {
			res.SuspiciousDigits = append(res.SuspiciousDigits, i+1)
		}
	}

	res.Passed = res.ChiSquare < benfordCritical
	res.Confidence = clamp01(1 - res.ChiSquare/benfordCritical)
	if !res.Passed {
		res.Message = fmt.Sprintf(
			"leading-digit distribution deviates from Benford's Law (chi-square %.2f, critical %.3f)",
			res.ChiSquare, benfordCritical)
	}
	return res
}

// leadingDigit returns the first significant digit of a positive figure, or
// 0 when the figure does not qualify.
func leadingDigit(f float64) int {
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	for f >= 10 {
		f /= 10
	}
	for f < 1 {
		f *= 10
	}
	return int(f)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
