package any

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var IsNARules = models.ActionInputRules{
	{Name: "value", Type: models.ValueTypeAny, Min: 1, Max: 1},
}

type IsNAAction struct {
	anyAction
}

func NewIsNAAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(IsNARules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &IsNAAction{anyAction{key: key, rules: IsNARules, outputType: models.ValueTypeLogical}}, nil
}

func (a *IsNAAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	return models.IsMissing(actionInputs.First("value")), nil
}
