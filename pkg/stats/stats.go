// Package stats computes the training statistics steps learn at prep time.
// All functions take non-missing values only and never modify their input.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Median returns the median of x. Even lengths average the two middle values.
func Median(x []float64) (float64, error) {
	n := len(x)
	if n == 0 {
		return 0, fmt.Errorf("median of an empty vector")
	}
	cp := sorted(x)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5, nil
	}
	return cp[mid], nil
}

// Quantiles returns the type-7 sample quantiles of x at each probability in
// probs: h = (n-1)p, interpolated linearly between the order statistics
// floor(h) and floor(h)+1.
func Quantiles(x []float64, probs []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("quantiles of an empty vector")
	}

	cp := sorted(x)
	out := make([]float64, len(probs))
	for i, p := range probs {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("probability %v is outside [0, 1]", p)
		}
		h := float64(n-1) * p
		lo := math.Floor(h)
		hi := math.Ceil(h)
		q := cp[int(lo)]
		if hi != lo {
			q += (h - lo) * (cp[int(hi)] - cp[int(lo)])
		}
		out[i] = q
	}
	return out, nil
}

// Range returns the minimum and maximum of x.
func Range(x []float64) (float64, float64, error) {
	if len(x) == 0 {
		return 0, 0, fmt.Errorf("range of an empty vector")
	}
	return floats.Min(x), floats.Max(x), nil
}

// Mean returns the arithmetic mean of x.
func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("mean of an empty vector")
	}
	return floats.Sum(x) / float64(len(x)), nil
}

// Unique returns the distinct values of x in first-seen order.
func Unique(x []float64) []float64 {
	seen := make(map[float64]bool, len(x))
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func sorted(x []float64) []float64 {
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	return cp
}
