package steps

import (
	"math"
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/splines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splineTraining() *frame.Frame {
	return frame.MustNew(
		frame.MustColumn("a", models.ValueTypeString, "a", "b", "c", "d", "e", "f", "g", "h", "i"),
		frame.MustColumn("x", models.ValueTypeDouble, 1.0, 2.0, 3.0, 4.0, 5.0, 6.0, 7.0, 8.0, 9.0),
		frame.MustColumn("b", models.ValueTypeLogical, true, false, true, false, true, false, true, false, true),
		frame.MustColumn("z", models.ValueTypeInteger, int64(10), int64(20), int64(30), int64(40), int64(50), int64(60), int64(70), int64(80), nil),
	)
}

func prepSpline(t *testing.T, options NaturalSplineOptions, terms ...string) *NaturalSpline {
	t.Helper()
	trained, err := mustSpline(t, options, terms...).Prep(splineTraining(), nil)
	require.NoError(t, err)
	return trained.(*NaturalSpline)
}

func TestNaturalSpline_Prep(t *testing.T) {
	step := prepSpline(t, NaturalSplineOptions{}, "x", "z")

	assert.Equal(t, []string{"x", "z"}, step.Columns())
	require.Len(t, step.Models(), 2)

	x := step.Models()[0]
	assert.Equal(t, splines.BasisModel{
		Column:        "x",
		Knots:         []float64{5},
		BoundaryKnots: [2]float64{1, 9},
		Degree:        1,
	}, x)

	z := step.Models()[1]
	assert.Equal(t, [2]float64{10, 80}, z.BoundaryKnots)
	assert.Equal(t, []float64{45}, z.Knots)
	assert.Equal(t, 2, *step.Options().DegFree)
}

func TestNaturalSpline_DegreesOfFreedom(t *testing.T) {
	tests := []struct {
		name      string
		options   NaturalSplineOptions
		knots     int
		columns   []string
		intercept bool
	}{
		{name: "one column and no interior knots", options: NaturalSplineOptions{DegFree: intPtr(1)}, knots: 0, columns: []string{"x_ns_1"}},
		{name: "zero df uses no interior knots", options: NaturalSplineOptions{DegFree: intPtr(0)}, knots: 0, columns: []string{"x_ns_1"}},
		{name: "three interior knots", options: NaturalSplineOptions{DegFree: intPtr(4)}, knots: 3, columns: []string{"x_ns_1", "x_ns_2", "x_ns_3", "x_ns_4"}},
		{name: "intercept", options: NaturalSplineOptions{DegFree: intPtr(3), Intercept: true}, knots: 1, columns: []string{"x_ns_1", "x_ns_2", "x_ns_3"}},
		{name: "explicit knots", options: NaturalSplineOptions{Knots: []float64{3, 6}}, knots: 2, columns: []string{"x_ns_1", "x_ns_2", "x_ns_3"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			step := prepSpline(t, test.options, "x")
			assert.Len(t, step.Models()[0].Knots, test.knots)

			out, err := step.Bake(splineTraining())
			require.NoError(t, err)
			assert.Equal(t, append([]string{"a", "b", "z"}, test.columns...), out.Names())
		})
	}
}

func TestNaturalSpline_Bake(t *testing.T) {
	step := prepSpline(t, NaturalSplineOptions{}, "x")

	data := frame.MustNew(
		frame.MustColumn("x", models.ValueTypeDouble, 1.0, 9.0, nil, 12.0, 1.0),
		frame.MustColumn("y", models.ValueTypeString, "a", "b", "c", "d", "e"),
	)

	out, err := step.Bake(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x_ns_1", "x_ns_2"}, out.Names())
	assert.Equal(t, 5, out.NumRows())

	for _, name := range []string{"x_ns_1", "x_ns_2"} {
		col, ok := out.Column(name)
		require.True(t, ok)
		assert.Equal(t, models.ValueTypeDouble, col.Type)

		assert.InDelta(t, 0.0, col.Values[0], 1e-12, "left boundary")
		assert.False(t, math.IsNaN(col.Values[1].(float64)), "right boundary")
		assert.Nil(t, col.Values[2], "missing input")
		assert.NotNil(t, col.Values[3], "beyond the boundary")
		assert.Equal(t, col.Values[0], col.Values[4], "repeated value")
	}

	t.Run("idempotent", func(t *testing.T) {
		again, err := step.Bake(data)
		require.NoError(t, err)
		assert.Equal(t, out, again)
		assert.Equal(t, []string{"x", "y"}, data.Names())
	})

	t.Run("knots do not depend on new data", func(t *testing.T) {
		other, err := step.Bake(frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, 100.0, 9.0, -3.0)))
		require.NoError(t, err)
		assert.Equal(t, []float64{5}, step.Models()[0].Knots)

		for _, name := range []string{"x_ns_1", "x_ns_2"} {
			first, _ := out.Column(name)
			second, _ := other.Column(name)
			assert.InDelta(t, first.Values[1], second.Values[1], 1e-12)
		}
	})

	t.Run("integer column", func(t *testing.T) {
		step := prepSpline(t, NaturalSplineOptions{}, "z")
		out, err := step.Bake(splineTraining())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "x", "b", "z_ns_1", "z_ns_2"}, out.Names())

		col, _ := out.Column("z_ns_1")
		assert.Nil(t, col.Values[8])
	})

	t.Run("columns are appended in model order", func(t *testing.T) {
		step := prepSpline(t, NaturalSplineOptions{}, "all_numeric()")
		out, err := step.Bake(splineTraining())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "x_ns_1", "x_ns_2", "z_ns_1", "z_ns_2"}, out.Names())
	})
}

func TestNaturalSpline_Errors(t *testing.T) {
	step := prepSpline(t, NaturalSplineOptions{}, "x")

	t.Run("missing column", func(t *testing.T) {
		_, err := step.Bake(frame.MustNew(frame.MustColumn("y", models.ValueTypeDouble, 1.0)))
		assert.ErrorIs(t, err, errors.ErrUsage)
		assert.ErrorContains(t, err, "column 'x'")
	})

	t.Run("infinite value", func(t *testing.T) {
		_, err := step.Bake(frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, math.Inf(1))))
		assert.ErrorIs(t, err, errors.ErrDelegated)
		assert.ErrorContains(t, err, step.GetID())
	})

	t.Run("non-numeric column at bake", func(t *testing.T) {
		_, err := step.Bake(frame.MustNew(frame.MustColumn("x", models.ValueTypeString, "1")))
		assert.ErrorIs(t, err, errors.ErrTypeMismatch)
	})

	t.Run("basis column already exists", func(t *testing.T) {
		_, err := step.Bake(frame.MustNew(
			frame.MustColumn("x", models.ValueTypeDouble, 1.0),
			frame.MustColumn("x_ns_1", models.ValueTypeDouble, 1.0),
		))
		assert.ErrorIs(t, err, errors.ErrUsage)
	})

	t.Run("constant training column", func(t *testing.T) {
		constant := frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, 2.0, 2.0))
		_, err := mustSpline(t, NaturalSplineOptions{}, "x").Prep(constant, nil)
		assert.ErrorIs(t, err, errors.ErrDelegated)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewNaturalSpline(Options{}, NaturalSplineOptions{DegFree: intPtr(-1)}, "x")
		assert.ErrorIs(t, err, errors.ErrUsage)

		_, err = NewNaturalSpline(Options{}, NaturalSplineOptions{BoundaryKnots: []float64{1}}, "x")
		assert.ErrorIs(t, err, errors.ErrUsage)
	})
}

func TestNaturalSpline_Tidy(t *testing.T) {
	step := mustSpline(t, NaturalSplineOptions{}, "all_numeric()")
	untrained := step.Tidy()
	assert.Equal(t, []string{"terms", "value", "id"}, untrained.Names())
	terms, _ := untrained.Column("terms")
	values, _ := untrained.Column("value")
	assert.Equal(t, []any{"all_numeric()"}, terms.Values)
	assert.Equal(t, []any{nil}, values.Values)

	trained, err := step.Prep(splineTraining(), nil)
	require.NoError(t, err)
	tidy := trained.Tidy()
	terms, _ = tidy.Column("terms")
	values, _ = tidy.Column("value")
	assert.Equal(t, []any{"x", "z"}, terms.Values)
	assert.Equal(t, []any{"knots=[5] boundary=[1, 9]", "knots=[45] boundary=[10, 80]"}, values.Values)
}

func TestBasisNames(t *testing.T) {
	assert.Equal(t, []string{"x_ns_1", "x_ns_2"}, basisNames("x", 2))

	names := basisNames("x", 12)
	assert.Equal(t, "x_ns_01", names[0])
	assert.Equal(t, "x_ns_12", names[11])
}
