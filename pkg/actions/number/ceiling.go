package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

var NumberCeilingRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberCeilingAction struct {
	numberAction
}

func NewNumberCeilingAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberCeilingRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberCeilingAction{newNumberAction(key, NumberCeilingRules, models.ValueTypeDouble)}, nil
}

func (a *NumberCeilingAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	x := actionInputs.First("x")
	if anyMissing(x) {
		return nil, nil
	}

	num, err := utils.AnyToType[float64](x)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	return math.Ceil(num), nil
}
