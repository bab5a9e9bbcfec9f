package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberSqrtRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberSqrtAction struct {
	numberAction
}

func NewNumberSqrtAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberSqrtRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberSqrtAction{newNumberAction(key, NumberSqrtRules, models.ValueTypeDouble)}, nil
}

func (a *NumberSqrtAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, math.Sqrt)
}
