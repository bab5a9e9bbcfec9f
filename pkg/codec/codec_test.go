package codec

import (
	"path/filepath"
	"testing"

	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("step.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("STEP.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("step.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("step.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("step"))
}

func TestUnmarshal_SpecFile(t *testing.T) {
	spec := []byte(`
kind: ns
id: ns_age
terms:
  - age
  - starts_with("dose_")
spline:
  deg_free: 4
`)

	var doc steps.Document
	require.NoError(t, Unmarshal(spec, FormatYAML, &doc))
	assert.Equal(t, steps.KindNaturalSpline, doc.Kind)
	assert.Equal(t, []string{"age", `starts_with("dose_")`}, doc.Terms)
	require.NotNil(t, doc.Spline)
	assert.Equal(t, 4, *doc.Spline.DegFree)

	step, err := steps.FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "ns_age", step.GetID())
}

func TestWriteReadDocument(t *testing.T) {
	step, err := steps.NewImputeMedian(steps.Options{ID: "fill"}, "x")
	require.NoError(t, err)

	training := frame.MustNew(frame.MustColumn("x", models.ValueTypeInteger, int64(4), nil, int64(1), int64(9)))
	trained, err := step.Prep(training, nil)
	require.NoError(t, err)

	for _, name := range []string{"step.json", "step.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteDocument(path, steps.ToDocument(trained)))

			loaded, err := LoadStep(path)
			require.NoError(t, err)
			assert.Equal(t, trained, loaded)
		})
	}
}

func TestErrors(t *testing.T) {
	_, err := Marshal(1, "toml")
	assert.Error(t, err)

	assert.Error(t, Unmarshal([]byte("{}"), "toml", &steps.Document{}))

	_, err = ReadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}
