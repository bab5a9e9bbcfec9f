package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/selectors"
	"github.com/Ramsey-B/fern/pkg/splines"
	"github.com/Ramsey-B/fern/pkg/utils"
)

const DefaultDegFree = 2

// NaturalSplineOptions are the spline parameters. DegFree defaults to 2 and is
// ignored when Knots is set.
type NaturalSplineOptions struct {
	DegFree       *int      `json:"deg_free,omitempty" yaml:"deg_free,omitempty" validate:"omitempty,min=0"`
	Intercept     bool      `json:"intercept" yaml:"intercept"`
	Knots         []float64 `json:"knots,omitempty" yaml:"knots,omitempty"`
	BoundaryKnots []float64 `json:"boundary_knots,omitempty" yaml:"boundary_knots,omitempty" validate:"omitempty,len=2"`
}

func (o NaturalSplineOptions) degFree() int {
	if o.DegFree == nil {
		return DefaultDegFree
	}
	return *o.DegFree
}

type NaturalSpline struct {
	base
	options NaturalSplineOptions
	models  []splines.BasisModel
}

// NewNaturalSpline validates the options and the selector syntax.
func NewNaturalSpline(opts Options, options NaturalSplineOptions, terms ...string) (*NaturalSpline, error) {
	if _, err := utils.Validate(options); err != nil {
		return nil, errors.NewUsageError("%v", err).AddStep(opts.ID)
	}
	for _, term := range terms {
		if _, err := selectors.Parse(term); err != nil {
			return nil, errors.WrapStepError(err).AddStep(opts.ID)
		}
	}

	b, err := newBase(KindNaturalSpline, models.RolePredictor, opts, terms)
	if err != nil {
		return nil, err
	}

	if options.DegFree == nil {
		df := DefaultDegFree
		options.DegFree = &df
	}

	return &NaturalSpline{base: b, options: options}, nil
}

func (n *NaturalSpline) Options() NaturalSplineOptions {
	return n.options
}

// Models returns the fitted basis models in column order; nil until trained.
func (n *NaturalSpline) Models() []splines.BasisModel {
	if n.models == nil {
		return nil
	}
	return append([]splines.BasisModel{}, n.models...)
}

func (n *NaturalSpline) Prep(training *frame.Frame, info models.VarInfos) (Step, error) {
	names, err := n.resolveNumeric(training, info)
	if err != nil {
		return nil, err
	}

	fitted := make([]splines.BasisModel, 0, len(names))
	for _, name := range names {
		col, _ := training.Column(name)
		model, err := splines.Fit(name, col.NonMissingFloats(), splines.FitOptions{
			DegFree:       n.options.degFree(),
			Intercept:     n.options.Intercept,
			Knots:         n.options.Knots,
			BoundaryKnots: n.options.BoundaryKnots,
		})
		if err != nil {
			return nil, errors.WrapStepError(err).AddStep(n.id).AddColumn(name)
		}
		fitted = append(fitted, model)
	}

	trained := *n
	trained.trained = true
	trained.columns = names
	trained.models = fitted
	return &trained, nil
}

func (n *NaturalSpline) Bake(data *frame.Frame) (*frame.Frame, error) {
	if err := n.checkTrained(); err != nil {
		return nil, err
	}

	expanded := make([]*frame.Column, 0)
	for _, model := range n.models {
		col, ok := data.Column(model.Column)
		if !ok {
			return nil, errors.NewUsageError("column '%s' is missing from the data", model.Column).AddStep(n.id).AddColumn(model.Column)
		}
		if !col.Type.IsNumeric() {
			return nil, errors.NewTypeMismatchError("spline column must be double or integer, got %s", col.Type).AddStep(n.id).AddColumn(model.Column)
		}

		cols, err := n.expand(model, col)
		if err != nil {
			return nil, errors.WrapStepError(err).AddStep(n.id).AddColumn(model.Column)
		}
		expanded = append(expanded, cols...)
	}

	out, err := data.Drop(n.columns...).Append(expanded...)
	if err != nil {
		return nil, errors.NewUsageError("%v", err).AddStep(n.id)
	}
	return out, nil
}

// expand evaluates the basis once per distinct value and maps the rows back.
func (n *NaturalSpline) expand(model splines.BasisModel, col *frame.Column) ([]*frame.Column, error) {
	basis, err := model.Compile()
	if err != nil {
		return nil, err
	}

	index := make(map[float64]int)
	unique := make([]float64, 0)
	rowIndex := make([]int, col.Len())
	for i := range col.Values {
		v, ok := col.Float64(i)
		if !ok {
			rowIndex[i] = -1
			continue
		}
		j, seen := index[v]
		if !seen {
			j = len(unique)
			index[v] = j
			unique = append(unique, v)
		}
		rowIndex[i] = j
	}

	rows, err := basis.Evaluate(unique)
	if err != nil {
		return nil, err
	}

	width := basis.NumColumns()
	names := basisNames(model.Column, width)
	cols := make([]*frame.Column, width)
	for k := range cols {
		values := make([]any, col.Len())
		for i, j := range rowIndex {
			if j >= 0 {
				values[i] = rows[j][k]
			}
		}
		cols[k] = &frame.Column{Name: names[k], Type: models.ValueTypeDouble, Values: values}
	}
	return cols, nil
}

// basisNames returns <column>_ns_<i>, 1-based and zero padded to the width of count.
func basisNames(column string, count int) []string {
	digits := len(strconv.Itoa(count))
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s_ns_%0*d", column, digits, i+1)
	}
	return names
}

func (n *NaturalSpline) Tidy() *frame.Frame {
	if !n.trained {
		return tidyFrame(n.id, n.Terms(), models.ValueTypeString, make([]any, len(n.terms)))
	}

	values := ectolinq.Map(n.models, func(m splines.BasisModel) any {
		return describeModel(m)
	})
	return tidyFrame(n.id, n.Columns(), models.ValueTypeString, values)
}

func describeModel(m splines.BasisModel) string {
	knots := ectolinq.Map(m.Knots, func(k float64) string {
		return strconv.FormatFloat(k, 'g', -1, 64)
	})
	return fmt.Sprintf("knots=[%s] boundary=[%s, %s]",
		strings.Join(knots, ", "),
		strconv.FormatFloat(m.BoundaryKnots[0], 'g', -1, 64),
		strconv.FormatFloat(m.BoundaryKnots[1], 'g', -1, 64),
	)
}
