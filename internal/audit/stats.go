package audit

import (
	"math"
	"sort"
)

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func clip(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	var sum float64
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

// median averages the two middle values for even-length input.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)

	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}

	return (s[mid-1] + s[mid]) / 2
}

// populationStd is the ddof=0 standard deviation used for z-score
// normalization across an audit batch.
func populationStd(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	m := mean(xs)

	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(xs)))
}

// sampleStd is the ddof=1 standard deviation used for cadence gap stability.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	m := mean(xs)

	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(xs)-1))
}
