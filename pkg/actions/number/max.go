package number

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"gonum.org/v1/gonum/floats"
)

var NumberMaxRules = models.ActionInputRules{
	{Name: "values", Type: models.ValueTypeNumeric, Min: 1, Max: -1},
}

// NumberMaxAction is the row-wise maximum of its arguments.
type NumberMaxAction struct {
	numberAction
}

func NewNumberMaxAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberMaxRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberMaxAction{newNumberAction(key, NumberMaxRules, numericOutput(inputTypes...))}, nil
}

func (a *NumberMaxAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	values := actionInputs["values"]
	if anyMissing(values...) {
		return nil, nil
	}

	nums, err := toFloats(values)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	return cell(a.outputType, floats.Max(nums))
}
