package any

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

var IfElseRules = models.ActionInputRules{
	{Name: "condition", Type: models.ValueTypeLogical, Min: 1, Max: 1},
	{Name: "then", Type: models.ValueTypeAny, Min: 1, Max: 1},
	{Name: "else", Type: models.ValueTypeAny, Min: 1, Max: 1},
}

type IfElseAction struct {
	anyAction
}

func NewIfElseAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(IfElseRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	outputType, err := commonType(inputTypes[1:]...)
	if err != nil {
		return nil, errors.NewDelegatedError("'then' and 'else' differ: %w", err).AddAction(key)
	}

	return &IfElseAction{anyAction{key: key, rules: IfElseRules, outputType: outputType}}, nil
}

// Execute picks 'then' or 'else'; a missing condition gives NA.
func (a *IfElseAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	condition := actionInputs.First("condition")
	if condition == nil {
		return nil, nil
	}

	ok, err := utils.AnyToType[bool](condition)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	if ok {
		return actionInputs.First("then"), nil
	}
	return actionInputs.First("else"), nil
}
