package numeric

import "math"

// Round rounds v to the given number of decimal places. NaN and infinities
// become 0 so no emitted value is ever non-finite.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// Ratio returns num/den, or 0 when den is not positive.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// Floor0 clamps negative values to 0.
func Floor0(v float64) float64 {
	return math.Max(0, v)
}
