// Package stats holds the small statistical helpers the report needs beyond
// what the modeling library provides: missing-value fractions, binomial
// proportion intervals, and a train-fitted standard scaler.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MissingFraction returns the share of NaN entries in a column.
func MissingFraction(col []float64) float64 {
	if len(col) == 0 {
		return 0
	}
	missing := 0
	for _, v := range col {
		if math.IsNaN(v) {
			missing++
		}
	}
	return float64(missing) / float64(len(col))
}

// ProportionCI returns a normal-approximation confidence interval for a
// binomial proportion p estimated from n trials, clamped to [0,1].
// level is the two-sided confidence level, e.g. 0.95.
func ProportionCI(p float64, n int, level float64) (lo, hi float64) {
	if n <= 0 {
		return 0, 1
	}
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	half := z * math.Sqrt(p*(1-p)/float64(n))
	lo = math.Max(0, p-half)
	hi = math.Min(1, p+half)
	return lo, hi
}
