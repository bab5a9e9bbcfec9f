package steps

import (
	"encoding/json"
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func roundTripJSON(t *testing.T, doc Document) Document {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	var out Document
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func roundTripYAML(t *testing.T, doc Document) Document {
	t.Helper()
	b, err := yaml.Marshal(doc)
	require.NoError(t, err)
	var out Document
	require.NoError(t, yaml.Unmarshal(b, &out))
	return out
}

func TestDocument_RoundTrip(t *testing.T) {
	mutate, err := NewMutate(Options{ID: "m"},
		MutateTerm{Name: "a", Expression: "x * 2"},
		MutateTerm{Expression: "a+1"},
	)
	require.NoError(t, err)
	unary, err := NewMutate(Options{ID: "u"},
		MutateTerm{Expression: "- -x"},
		MutateTerm{Expression: "+ +x"},
		MutateTerm{Name: "c", Expression: "x - - -x"},
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		step Step
		data *frame.Frame
	}{
		{
			name: "mutate",
			step: mutate,
			data: frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, 1.0, nil)),
		},
		{
			name: "mutate with nested unary operators",
			step: unary,
			data: frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, 1.5, nil)),
		},
		{
			name: "natural spline",
			step: mustSpline(t, NaturalSplineOptions{DegFree: intPtr(3)}, "x", "z"),
			data: frame.MustNew(
				frame.MustColumn("x", models.ValueTypeDouble, 0.5, 4.0, 11.0, nil),
				frame.MustColumn("z", models.ValueTypeInteger, int64(15), int64(90), nil, int64(40)),
			),
		},
		{
			name: "impute median",
			step: mustImpute(t, "x", "z"),
			data: frame.MustNew(
				frame.MustColumn("x", models.ValueTypeDouble, nil, 2.0),
				frame.MustColumn("z", models.ValueTypeInteger, nil, int64(1)),
			),
		},
	}

	codecs := map[string]func(*testing.T, Document) Document{
		"json": roundTripJSON,
		"yaml": roundTripYAML,
	}

	for _, test := range tests {
		trained, err := test.step.Prep(splineTraining(), nil)
		require.NoError(t, err)
		expected, err := trained.Bake(test.data)
		require.NoError(t, err)

		for codecName, roundTrip := range codecs {
			t.Run(test.name+"/"+codecName, func(t *testing.T) {
				doc := roundTrip(t, ToDocument(trained))
				assert.True(t, doc.Trained)
				assert.Equal(t, trained.GetKind(), doc.Kind)

				restored, err := FromDocument(doc)
				require.NoError(t, err)
				assert.Equal(t, trained.GetID(), restored.GetID())
				assert.Equal(t, trained.Columns(), restored.Columns())
				assert.True(t, restored.IsTrained())

				out, err := restored.Bake(test.data)
				require.NoError(t, err)
				assert.Equal(t, expected, out)
			})
		}
	}
}

func TestDocument_Untrained(t *testing.T) {
	step := mustSpline(t, NaturalSplineOptions{Intercept: true}, "all_numeric()", "-z")
	doc := roundTripYAML(t, ToDocument(step))
	assert.False(t, doc.Trained)
	assert.Equal(t, []string{"all_numeric()", "-z"}, doc.Terms)
	assert.Empty(t, doc.Models)

	restored, err := FromDocument(doc)
	require.NoError(t, err)
	assert.False(t, restored.IsTrained())
	assert.Equal(t, step, restored)

	trained, err := restored.Prep(splineTraining(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, trained.Columns())
}

func TestDocument_MedianTypes(t *testing.T) {
	doc := roundTripJSON(t, Document{
		Kind:    KindImputeMedian,
		ID:      "impute",
		Trained: true,
		Terms:   []string{"n", "x"},
		Medians: []Median{
			{Column: "n", Type: models.ValueTypeInteger, Value: int64(2)},
			{Column: "x", Type: models.ValueTypeDouble, Value: 3.5},
		},
	})

	step, err := FromDocument(doc)
	require.NoError(t, err)
	medians := step.(*ImputeMedian).Medians()
	assert.Equal(t, int64(2), medians[0].Value)
	assert.Equal(t, 3.5, medians[1].Value)
}

func TestDocument_LegacyKind(t *testing.T) {
	step, err := FromDocument(Document{Kind: KindMedianImpute, ID: "old", Terms: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, KindImputeMedian, step.GetKind())
	assert.Equal(t, "old", step.GetID())
}

func TestDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		kind error
	}{
		{name: "unknown kind", doc: Document{Kind: "scale"}, kind: errors.ErrUsage},
		{name: "missing kind", doc: Document{}, kind: errors.ErrUsage},
		{name: "bad expression", doc: Document{Kind: KindMutate, Expressions: []MutateTerm{{Name: "y", Expression: "x +"}}}, kind: errors.ErrDelegated},
		{name: "empty expression", doc: Document{Kind: KindMutate, Expressions: []MutateTerm{{Name: "y"}}}, kind: errors.ErrUsage},
		{
			name: "bad median type",
			doc: Document{Kind: KindImputeMedian, Trained: true, Medians: []Median{
				{Column: "x", Type: models.ValueTypeString, Value: "a"},
			}},
			kind: errors.ErrTypeMismatch,
		},
		{
			name: "bad median value",
			doc: Document{Kind: KindImputeMedian, Trained: true, Medians: []Median{
				{Column: "x", Type: models.ValueTypeDouble, Value: "a"},
			}},
			kind: errors.ErrUsage,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromDocument(test.doc)
			assert.ErrorIs(t, err, test.kind)
		})
	}
}
