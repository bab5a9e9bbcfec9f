package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

var NumberFloorRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberFloorAction struct {
	numberAction
}

func NewNumberFloorAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberFloorRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberFloorAction{newNumberAction(key, NumberFloorRules, models.ValueTypeDouble)}, nil
}

func (a *NumberFloorAction) Execute(inputs ...any) (any, error) {
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
	return math.Floor(num), nil
}
