package steps

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/selectors"
	"github.com/Ramsey-B/fern/pkg/stats"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Median is the learned fill value of one column. Value is int64 for integer
// columns, float64 for double columns and nil when training had no values.
type Median struct {
	Column string           `json:"column" yaml:"column"`
	Type   models.ValueType `json:"type" yaml:"type"`
	Value  any              `json:"value" yaml:"value"`
}

type ImputeMedian struct {
	base
	medians []Median
}

func NewImputeMedian(opts Options, terms ...string) (*ImputeMedian, error) {
	for _, term := range terms {
		if _, err := selectors.Parse(term); err != nil {
			return nil, errors.WrapStepError(err).AddStep(opts.ID)
		}
	}

	b, err := newBase(KindImputeMedian, models.RolePredictor, opts, terms)
	if err != nil {
		return nil, err
	}

	return &ImputeMedian{base: b}, nil
}

// NewMedianImpute is the deprecated name of NewImputeMedian.
func NewMedianImpute(opts Options, terms ...string) (*ImputeMedian, error) {
	warnMedianImpute(opts.ID)
	return NewImputeMedian(opts, terms...)
}

func warnMedianImpute(id string) {
	logging.Logger().WithFields(map[string]any{
		"kind":    string(KindMedianImpute),
		"step_id": id,
	}).Warn("medianimpute is deprecated, use impute_median")
}

// Medians returns the learned medians in column order; nil until trained.
func (m *ImputeMedian) Medians() []Median {
	if m.medians == nil {
		return nil
	}
	return append([]Median{}, m.medians...)
}

func (m *ImputeMedian) Prep(training *frame.Frame, info models.VarInfos) (Step, error) {
	names, err := m.resolveNumeric(training, info)
	if err != nil {
		return nil, err
	}

	medians := make([]Median, 0, len(names))
	for _, name := range names {
		col, _ := training.Column(name)
		median := Median{Column: name, Type: col.Type}

		if values := col.NonMissingFloats(); len(values) > 0 {
			value, err := stats.Median(values)
			if err != nil {
				return nil, errors.WrapStepError(err).AddStep(m.id).AddColumn(name)
			}
			median.Value, err = castMedian(value, col.Type)
			if err != nil {
				return nil, errors.NewTypeMismatchError("%v", err).AddStep(m.id).AddColumn(name)
			}
		}

		medians = append(medians, median)
	}

	trained := *m
	trained.trained = true
	trained.columns = names
	trained.medians = medians
	return &trained, nil
}

// castMedian converts a median to the cell representation of t. Integer
// columns truncate toward zero.
func castMedian(value any, t models.ValueType) (any, error) {
	if value == nil {
		return nil, nil
	}
	if t == models.ValueTypeInteger {
		return utils.ToInteger(value)
	}
	return utils.AnyToType[float64](value)
}

func (m *ImputeMedian) Bake(data *frame.Frame) (*frame.Frame, error) {
	if err := m.checkTrained(); err != nil {
		return nil, err
	}

	out := data
	for _, median := range m.medians {
		col, ok := out.Column(median.Column)
		if !ok {
			return nil, errors.NewUsageError("column '%s' is missing from the data", median.Column).AddStep(m.id).AddColumn(median.Column)
		}
		if median.Value == nil || col.NumMissing() == 0 {
			continue
		}
		if !col.Type.IsNumeric() {
			return nil, errors.NewTypeMismatchError("cannot impute a median into a %s column", col.Type).AddStep(m.id).AddColumn(median.Column)
		}
		// a double median widens the column rather than being truncated
		if col.Type == models.ValueTypeInteger && median.Type == models.ValueTypeDouble {
			widened, err := frame.NewColumn(col.Name, models.ValueTypeDouble, col.Values)
			if err != nil {
				return nil, errors.NewTypeMismatchError("%v", err).AddStep(m.id).AddColumn(median.Column)
			}
			col = widened
		}

		fill, err := castMedian(median.Value, col.Type)
		if err != nil {
			return nil, errors.NewTypeMismatchError("%v", err).AddStep(m.id).AddColumn(median.Column)
		}

		filled := col.Clone()
		for i := range filled.Values {
			if filled.IsMissing(i) {
				filled.Values[i] = fill
			}
		}

		out, err = out.With(filled)
		if err != nil {
			return nil, errors.NewUsageError("%v", err).AddStep(m.id).AddColumn(median.Column)
		}
	}

	return out, nil
}

func (m *ImputeMedian) Tidy() *frame.Frame {
	if !m.trained {
		return tidyFrame(m.id, m.Terms(), models.ValueTypeDouble, make([]any, len(m.terms)))
	}

	values := make([]any, len(m.medians))
	for i, median := range m.medians {
		values[i] = median.Value
	}
	return tidyFrame(m.id, m.Columns(), models.ValueTypeDouble, values)
}
