package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{name: "odd", input: []float64{7, 1, 3}, expected: 3},
		{name: "even", input: []float64{1, 2, 4, 10}, expected: 3},
		{name: "single", input: []float64{5}, expected: 5},
		{name: "negative", input: []float64{-1, -5, -3}, expected: -3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Median(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}

	t.Run("does not sort the input", func(t *testing.T) {
		input := []float64{3, 1, 2}
		_, _ = Median(input)
		assert.Equal(t, []float64{3, 1, 2}, input)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Median(nil)
		assert.Error(t, err)
	})
}

func TestQuantiles(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	q, err := Quantiles(x, []float64{0, 0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5.5, 10}, q)

	q, err = Quantiles(x, []float64{0.25, 0.75})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3.25, 7.75}, q, 1e-12)

	q, err = Quantiles([]float64{4, 1, 3}, []float64{1.0 / 3.0})
	require.NoError(t, err)
	assert.InDelta(t, 2.333333333333, q[0], 1e-9)

	_, err = Quantiles(x, []float64{1.5})
	assert.Error(t, err)

	_, err = Quantiles(nil, []float64{0.5})
	assert.Error(t, err)
}

func TestRangeMeanUnique(t *testing.T) {
	lo, hi, err := Range([]float64{3, -1, 8})
	require.NoError(t, err)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 8.0, hi)

	_, _, err = Range(nil)
	assert.Error(t, err)

	m, err := Mean([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)

	assert.Equal(t, []float64{2, 1, 3}, Unique([]float64{2, 1, 2, 3, 1}))
}
