package steps

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
)

// TypeInputs gives a trained step's input columns the types they had at
// training. Rows decoded from JSON or CSV carry no declared types, so a column
// of NA comes in as logical and a batch of whole numbers comes in as integer.
func TypeInputs(step Step, data *frame.Frame) (*frame.Frame, error) {
	var err error

	switch s := step.(type) {
	case *Mutate:
		// mutate columns are outputs, not inputs
		return data, nil
	case *ImputeMedian:
		for _, median := range s.medians {
			if !median.Type.IsNumeric() {
				continue
			}
			if data, err = retypeInput(data, median.Column, median.Type); err != nil {
				return nil, errors.NewUsageError("%v", err).AddStep(s.id).AddColumn(median.Column)
			}
		}
	default:
		for _, name := range step.Columns() {
			if data, err = retypeInput(data, name, models.ValueTypeDouble); err != nil {
				return nil, errors.NewUsageError("%v", err).AddStep(step.GetID()).AddColumn(name)
			}
		}
	}

	return data, nil
}

// retypeInput converts an all-missing column to t and widens an integer
// column when t is double. Any other column is left for Bake to judge.
func retypeInput(data *frame.Frame, name string, t models.ValueType) (*frame.Frame, error) {
	col, ok := data.Column(name)
	if !ok || col.Type == t {
		return data, nil
	}

	allMissing := col.NumMissing() == col.Len()
	widen := col.Type == models.ValueTypeInteger && t == models.ValueTypeDouble
	if !allMissing && !widen {
		return data, nil
	}

	typed, err := frame.NewColumn(name, t, col.Values)
	if err != nil {
		return nil, err
	}
	return data.With(typed)
}
