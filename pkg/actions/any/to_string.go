package any

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
)

var ToStringRules = models.ActionInputRules{
	{Name: "value", Type: models.ValueTypeAny, Min: 1, Max: 1},
}

type ToStringAction struct {
	anyAction
}

func NewToStringAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(ToStringRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &ToStringAction{anyAction{key: key, rules: ToStringRules, outputType: models.ValueTypeString}}, nil
}

// Execute formats the value the way CSV output does. NA stays NA.
func (a *ToStringAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	value := actionInputs.First("value")
	if models.IsMissing(value) {
		return nil, nil
	}
	return frame.FormatCell(value), nil
}
