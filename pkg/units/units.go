// Package units holds small numeric helpers shared across the codebase.
package units

import "math"

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Round1 rounds to one decimal place, the precision used for scores.
func Round1(v float64) float64 { return Round(v, 1) }

// Round2 rounds to two decimal places, the precision used for money.
func Round2(v float64) float64 { return Round(v, 2) }

// AnnualizeWeeklyRainfall extrapolates a 7-day rainfall observation to a
// yearly estimate. Crop rainfall requirements are annual figures, so
// scoring needs the same basis.
func AnnualizeWeeklyRainfall(weekMm float64) float64 {
	return weekMm * 52
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
