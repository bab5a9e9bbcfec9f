package any

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var CoalesceRules = models.ActionInputRules{
	{Name: "values", Type: models.ValueTypeAny, Min: 1, Max: -1},
}

type CoalesceAction struct {
	anyAction
}

func NewCoalesceAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(CoalesceRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	outputType, err := commonType(inputTypes...)
	if err != nil {
		return nil, errors.NewDelegatedError("cannot coalesce: %w", err).AddAction(key)
	}

	return &CoalesceAction{anyAction{key: key, rules: CoalesceRules, outputType: outputType}}, nil
}

// Execute returns the first non-missing value.
func (a *CoalesceAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	for _, val := range actionInputs["values"] {
		if !models.IsMissing(val) {
			return val, nil
		}
	}
	return nil, nil
}
