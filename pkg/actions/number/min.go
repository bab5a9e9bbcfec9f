package number

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"gonum.org/v1/gonum/floats"
)

var NumberMinRules = models.ActionInputRules{
	{Name: "values", Type: models.ValueTypeNumeric, Min: 1, Max: -1},
}

// NumberMinAction is the row-wise minimum of its arguments.
type NumberMinAction struct {
	numberAction
}

func NewNumberMinAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberMinRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberMinAction{newNumberAction(key, NumberMinRules, numericOutput(inputTypes...))}, nil
}

func (a *NumberMinAction) Execute(inputs ...any) (any, error) {
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
	return cell(a.outputType, floats.Min(nums))
}
