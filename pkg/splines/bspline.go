package splines

// designRow evaluates the derivs-th derivative of every B-spline of order ord
// defined on knots at x. The result has len(knots)-ord entries. x must lie in
// [knots[ord-1], knots[len(knots)-ord]]; at the right end the left limit is used.
func designRow(knots []float64, ord int, x float64, derivs int) []float64 {
	nk := len(knots)
	nb := nk - ord
	if derivs >= ord {
		return make([]float64, nb)
	}

	// order-1 indicator functions over the nk-1 knot intervals
	level := ord - derivs
	values := make([]float64, nk-1)
	if span := findSpan(knots, x); span >= 0 {
		values[span] = 1
	}

	// Cox-de Boor up to the order whose values feed the derivative recursion.
	for r := 2; r <= level; r++ {
		next := make([]float64, nk-r)
		for j := range next {
			next[j] = safeDiv(x-knots[j], knots[j+r-1]-knots[j])*values[j] +
				safeDiv(knots[j+r]-x, knots[j+r]-knots[j+1])*values[j+1]
		}
		values = next
	}

	for r := level + 1; r <= ord; r++ {
		next := make([]float64, nk-r)
		for j := range next {
			next[j] = float64(r-1) * (safeDiv(values[j], knots[j+r-1]-knots[j]) -
				safeDiv(values[j+1], knots[j+r]-knots[j+1]))
		}
		values = next
	}

	return values[:nb]
}

// findSpan returns the index i with knots[i] <= x < knots[i+1]. x equal to
// the last knot maps to the last non-empty interval. -1 means x is outside.
func findSpan(knots []float64, x float64) int {
	last := len(knots) - 1
	if x < knots[0] || x > knots[last] {
		return -1
	}
	if x == knots[last] {
		for i := last - 1; i >= 0; i-- {
			if knots[i] < knots[i+1] {
				return i
			}
		}
		return -1
	}
	for i := 0; i < last; i++ {
		if knots[i] <= x && x < knots[i+1] {
			return i
		}
	}
	return -1
}

// safeDiv treats a zero-width knot span as contributing nothing.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
