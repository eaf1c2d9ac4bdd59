package ldc

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// quantileType5 returns the p-quantile of values using piecewise-linear
// interpolation of the empirical CDF at the points (rank-0.5)/n (Hyndman & Fan
// type 5, the convention of the reference tool). gonum's stat.Quantile exposes
// only the Empirical and LinInterp cumulant kinds, so this is computed directly.
func quantileType5(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	h := float64(n)*p + 0.5
	if h <= 1 {
		return sorted[0]
	}
	if h >= float64(n) {
		return sorted[n-1]
	}
	lo := int(math.Floor(h)) // 1-based rank below h
	frac := h - float64(lo)
	return sorted[lo-1] + frac*(sorted[lo]-sorted[lo-1])
}

// geometricMean is the exponential of the arithmetic mean of the logs.
// Values must be strictly positive; callers validate before collecting.
func geometricMean(values []float64) float64 {
	return stat.GeometricMean(values, nil)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
