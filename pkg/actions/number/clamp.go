package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberClampRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
	{Name: "lower", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
	{Name: "upper", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberClampAction struct {
	numberAction
}

func NewNumberClampAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberClampRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberClampAction{newNumberAction(key, NumberClampRules, numericOutput(inputTypes...))}, nil
}

func (a *NumberClampAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	values := []any{actionInputs.First("x"), actionInputs.First("lower"), actionInputs.First("upper")}
	if anyMissing(values...) {
		return nil, nil
	}

	nums, err := toFloats(values)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	if nums[1] > nums[2] {
		return nil, errors.NewDelegatedError("lower bound %v is greater than upper bound %v", nums[1], nums[2]).AddAction(a.key)
	}

	return cell(a.outputType, math.Min(math.Max(nums[0], nums[1]), nums[2]))
}
