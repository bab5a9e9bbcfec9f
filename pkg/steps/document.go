package steps

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/splines"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Document is the serializable form of a step, trained or not. A trained
// document carries everything Bake needs.
//
// Example YAML:
//
//	kind: ns
//	id: ns_3f2a1
//	role: predictor
//	trained: true
//	terms: [all_numeric_predictors()]
//	columns: [x]
//	spline: {deg_free: 2, intercept: false}
//	models:
//	  - column: x
//	    knots: [5]
//	    boundary_knots: [1, 9]
//	    intercept: false
//	    degree: 1
type Document struct {
	Kind        Kind                  `json:"kind" yaml:"kind" validate:"required,oneof=mutate ns impute_median medianimpute"`
	ID          string                `json:"id" yaml:"id"`
	Role        models.Role           `json:"role,omitempty" yaml:"role,omitempty"`
	Trained     bool                  `json:"trained" yaml:"trained"`
	Skip        bool                  `json:"skip" yaml:"skip"`
	Terms       []string              `json:"terms,omitempty" yaml:"terms,omitempty"`
	Columns     []string              `json:"columns,omitempty" yaml:"columns,omitempty"`
	Expressions []MutateTerm          `json:"expressions,omitempty" yaml:"expressions,omitempty" validate:"dive"`
	Spline      *NaturalSplineOptions `json:"spline,omitempty" yaml:"spline,omitempty"`
	Models      []splines.BasisModel  `json:"models,omitempty" yaml:"models,omitempty"`
	Medians     []Median              `json:"medians,omitempty" yaml:"medians,omitempty"`
}

// ToDocument captures a step for persistence.
func ToDocument(step Step) Document {
	doc := Document{
		Kind:    step.GetKind(),
		ID:      step.GetID(),
		Role:    step.GetRole(),
		Trained: step.IsTrained(),
		Skip:    step.Skip(),
		Terms:   step.Terms(),
		Columns: step.Columns(),
	}

	switch s := step.(type) {
	case *Mutate:
		doc.Expressions = s.Expressions()
	case *NaturalSpline:
		options := s.Options()
		doc.Spline = &options
		doc.Models = s.Models()
	case *ImputeMedian:
		doc.Medians = s.Medians()
	}

	return doc
}

// FromDocument rebuilds a step. Expressions are parsed again and median values
// are converted back to their column type.
func FromDocument(doc Document) (Step, error) {
	if _, err := utils.Validate(doc); err != nil {
		return nil, errors.NewUsageError("invalid step document: %v", err).AddStep(doc.ID)
	}

	opts := Options{ID: doc.ID, Role: doc.Role, Skip: doc.Skip}

	switch doc.Kind {
	case KindMutate:
		return mutateFromDocument(opts, doc)
	case KindNaturalSpline:
		return naturalSplineFromDocument(opts, doc)
	case KindMedianImpute:
		warnMedianImpute(doc.ID)
		fallthrough
	case KindImputeMedian:
		return imputeMedianFromDocument(opts, doc)
	}

	return nil, errors.NewUsageError("unknown step kind '%s'", doc.Kind).AddStep(doc.ID)
}

func mutateFromDocument(opts Options, doc Document) (Step, error) {
	step, err := NewMutate(opts, doc.Expressions...)
	if err != nil {
		return nil, err
	}
	if !doc.Trained {
		return step, nil
	}
	return step.Prep(nil, nil)
}

func naturalSplineFromDocument(opts Options, doc Document) (Step, error) {
	var options NaturalSplineOptions
	if doc.Spline != nil {
		options = *doc.Spline
	}

	step, err := NewNaturalSpline(opts, options, doc.Terms...)
	if err != nil {
		return nil, err
	}
	if !doc.Trained {
		return step, nil
	}

	columns := make([]string, len(doc.Models))
	for i, model := range doc.Models {
		if _, err := model.Compile(); err != nil {
			return nil, errors.WrapStepError(err).AddStep(step.id)
		}
		columns[i] = model.Column
	}

	step.trained = true
	step.columns = columns
	step.models = append([]splines.BasisModel{}, doc.Models...)
	return step, nil
}

func imputeMedianFromDocument(opts Options, doc Document) (Step, error) {
	step, err := NewImputeMedian(opts, doc.Terms...)
	if err != nil {
		return nil, err
	}
	if !doc.Trained {
		return step, nil
	}

	columns := make([]string, len(doc.Medians))
	medians := make([]Median, len(doc.Medians))
	for i, median := range doc.Medians {
		if !median.Type.IsNumeric() {
			return nil, errors.NewTypeMismatchError("median type must be double or integer, got '%s'", median.Type).AddStep(step.id).AddColumn(median.Column)
		}
		value, err := castMedian(median.Value, median.Type)
		if err != nil {
			return nil, errors.NewUsageError("invalid median %v: %v", median.Value, err).AddStep(step.id).AddColumn(median.Column)
		}
		columns[i] = median.Column
		medians[i] = Median{Column: median.Column, Type: median.Type, Value: value}
	}

	step.trained = true
	step.columns = columns
	step.medians = medians
	return step, nil
}
