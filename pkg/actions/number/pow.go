package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberPowRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
	{Name: "y", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberPowAction struct {
	numberAction
}

func NewNumberPowAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberPowRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberPowAction{newNumberAction(key, NumberPowRules, models.ValueTypeDouble)}, nil
}

func (a *NumberPowAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	values := []any{actionInputs.First("x"), actionInputs.First("y")}
	if anyMissing(values...) {
		return nil, nil
	}

	nums, err := toFloats(values)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	return double(math.Pow(nums[0], nums[1])), nil
}
