package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberRoundRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
	{Name: "digits", Type: models.ValueTypeNumeric, Min: 0, Max: 1},
}

type NumberRoundAction struct {
	numberAction
}

func NewNumberRoundAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberRoundRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberRoundAction{newNumberAction(key, NumberRoundRules, models.ValueTypeDouble)}, nil
}

// Execute rounds half to even, like IEC 60559.
func (a *NumberRoundAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	values := append([]any{actionInputs.First("x")}, actionInputs["digits"]...)
	if anyMissing(values...) {
		return nil, nil
	}

	nums, err := toFloats(values)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	digits := 0.0
	if len(nums) > 1 {
		digits = math.Trunc(nums[1])
	}
	scale := math.Pow(10, digits)

	return double(math.RoundToEven(nums[0]*scale) / scale), nil
}
