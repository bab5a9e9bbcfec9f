package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberExpRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberExpAction struct {
	numberAction
}

func NewNumberExpAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberExpRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberExpAction{newNumberAction(key, NumberExpRules, models.ValueTypeDouble)}, nil
}

func (a *NumberExpAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, math.Exp)
}
