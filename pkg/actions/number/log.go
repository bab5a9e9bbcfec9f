package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberLogRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
	{Name: "base", Type: models.ValueTypeNumeric, Min: 0, Max: 1},
}

type NumberLogAction struct {
	numberAction
}

func NewNumberLogAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberLogRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberLogAction{newNumberAction(key, NumberLogRules, models.ValueTypeDouble)}, nil
}

// Execute is the natural log unless a base is given. log(0) is -Inf and
// negative values are NA.
func (a *NumberLogAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	values := append([]any{actionInputs.First("x")}, actionInputs["base"]...)
	if anyMissing(values...) {
		return nil, nil
	}

	nums, err := toFloats(values)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	result := math.Log(nums[0])
	if len(nums) > 1 {
		result /= math.Log(nums[1])
	}
	return double(result), nil
}
