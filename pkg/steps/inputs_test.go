package steps

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeInputs(t *testing.T) {
	impute := prepImpute(t, frame.MustNew(
		frame.MustColumn("v", models.ValueTypeDouble, 1.0, 2.0, 3.5, 4.0),
		frame.MustColumn("n", models.ValueTypeInteger, int64(1), int64(2), int64(4), nil),
	), "v", "n")

	tests := []struct {
		name     string
		step     Step
		data     *frame.Frame
		expected *frame.Frame
	}{
		{
			name: "NA only column takes the median type",
			step: impute,
			data: frame.MustNew(
				frame.MustColumn("v", models.ValueTypeLogical, nil, nil),
				frame.MustColumn("n", models.ValueTypeLogical, nil, nil),
			),
			expected: frame.MustNew(
				frame.MustColumn("v", models.ValueTypeDouble, nil, nil),
				frame.MustColumn("n", models.ValueTypeInteger, nil, nil),
			),
		},
		{
			name: "integer batch widens to a double median",
			step: impute,
			data: frame.MustNew(
				frame.MustColumn("v", models.ValueTypeInteger, nil, int64(5)),
				frame.MustColumn("n", models.ValueTypeInteger, nil, int64(5)),
			),
			expected: frame.MustNew(
				frame.MustColumn("v", models.ValueTypeDouble, nil, 5.0),
				frame.MustColumn("n", models.ValueTypeInteger, nil, int64(5)),
			),
		},
		{
			name: "strings are left for bake",
			step: impute,
			data: frame.MustNew(
				frame.MustColumn("v", models.ValueTypeString, "a"),
				frame.MustColumn("n", models.ValueTypeInteger, int64(1)),
			),
			expected: frame.MustNew(
				frame.MustColumn("v", models.ValueTypeString, "a"),
				frame.MustColumn("n", models.ValueTypeInteger, int64(1)),
			),
		},
		{
			name:     "spline inputs default to double",
			step:     prepSpline(t, NaturalSplineOptions{}, "x"),
			data:     frame.MustNew(frame.MustColumn("x", models.ValueTypeLogical, nil)),
			expected: frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, nil)),
		},
		{
			name:     "mutate is untouched",
			step:     prepMutate(t, MutateTerm{Name: "x", Expression: "y * 2"}),
			data:     frame.MustNew(frame.MustColumn("x", models.ValueTypeLogical, nil)),
			expected: frame.MustNew(frame.MustColumn("x", models.ValueTypeLogical, nil)),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := TypeInputs(test.step, test.data)
			require.NoError(t, err)
			assert.Equal(t, test.expected, out)
		})
	}
}
