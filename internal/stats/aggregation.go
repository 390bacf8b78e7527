package stats

import "math"

// Sum adds values with Neumaier compensation so that short sums of decimal
// weights (0.35+0.30+0.20+0.15) round to the nearest representable result.
func Sum(values []float64) float64 {
	var sum, c float64
	for _, v := range values {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			c += (sum - t) + v
		} else {
			c += (v - t) + sum
		}
		sum = t
	}
	return sum + c
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) == 1 {
		return values[0]
	}
	return Sum(values) / float64(len(values))
}

// WeightedMean calculates the weighted mean.
// Missing weights count as 1; a zero weight total falls back to Mean.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	weighted := make([]float64, len(values))
	ws := make([]float64, len(values))
	for i, v := range values {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		weighted[i] = float64(v * w)
		ws[i] = w
	}

	sumWeights := Sum(ws)
	if sumWeights == 0 {
		return Mean(values)
	}

	return Sum(weighted) / sumWeights
}

// Ratio returns part/total, or 0 when total is zero
func Ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
