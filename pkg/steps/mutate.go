package steps

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/expressions"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
)

// MutateTerm is one named expression. An empty Name is filled with the
// canonical text of the expression.
type MutateTerm struct {
	Name       string `json:"name" yaml:"name"`
	Expression string `json:"expression" yaml:"expression" validate:"required"`
}

type Mutate struct {
	base
	expressions []*expressions.Expression
}

// NewMutate parses every expression. Parse failures are delegated errors.
func NewMutate(opts Options, terms ...MutateTerm) (*Mutate, error) {
	if len(terms) == 0 {
		return nil, errors.NewUsageError("mutate needs at least one expression").AddStep(opts.ID)
	}

	exprs := make([]*expressions.Expression, 0, len(terms))
	names := make([]string, 0, len(terms))
	for _, term := range terms {
		expr, err := expressions.New(term.Name, term.Expression)
		if err != nil {
			return nil, errors.WrapStepError(err).AddStep(opts.ID)
		}
		exprs = append(exprs, expr)
		names = append(names, expr.Name)
	}

	b, err := newBase(KindMutate, models.RolePredictor, opts, names)
	if err != nil {
		return nil, err
	}

	return &Mutate{base: b, expressions: exprs}, nil
}

// Expressions returns the named expressions in declaration order.
func (m *Mutate) Expressions() []MutateTerm {
	terms := make([]MutateTerm, len(m.expressions))
	for i, expr := range m.expressions {
		terms[i] = MutateTerm{Name: expr.Name, Expression: expr.Text}
	}
	return terms
}

// Prep learns nothing; the result is a trained copy.
func (m *Mutate) Prep(_ *frame.Frame, _ models.VarInfos) (Step, error) {
	trained := *m
	trained.trained = true
	trained.columns = m.Terms()
	return &trained, nil
}

func (m *Mutate) Bake(data *frame.Frame) (*frame.Frame, error) {
	if err := m.checkTrained(); err != nil {
		return nil, err
	}

	working := data
	for _, expr := range m.expressions {
		col, err := expr.Evaluate(working)
		if err != nil {
			return nil, errors.WrapStepError(err).AddStep(m.id)
		}

		working, err = working.With(col)
		if err != nil {
			return nil, errors.NewUsageError("%v", err).AddStep(m.id).AddColumn(expr.Name)
		}
	}

	return working, nil
}

func (m *Mutate) Tidy() *frame.Frame {
	values := make([]any, len(m.expressions))
	for i, expr := range m.expressions {
		values[i] = expr.Text
	}
	return tidyFrame(m.id, m.Terms(), models.ValueTypeString, values)
}
