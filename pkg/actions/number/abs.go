package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

var NumberAbsRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberAbsAction struct {
	numberAction
}

func NewNumberAbsAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberAbsRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberAbsAction{newNumberAction(key, NumberAbsRules, numericOutput(inputTypes...))}, nil
}

func (a *NumberAbsAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	x := actionInputs.First("x")
	if anyMissing(x) {
		return nil, nil
	}

	if i, ok := x.(int64); ok {
		if i < 0 {
			return -i, nil
		}
		return i, nil
	}

	num, err := utils.AnyToType[float64](x)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	return cell(a.outputType, math.Abs(num))
}
