// Package text holds the string row functions available to mutate expressions.
package text

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

type textAction struct {
	key        string
	rules      models.ActionInputRules
	outputType models.ValueType
}

func (a *textAction) GetInputRules() models.ActionInputRules {
	return a.rules
}

func (a *textAction) GetKey() string {
	return a.key
}

func (a *textAction) GetOutputType() models.ValueType {
	return a.outputType
}

// unary applies fn to the single "text" input, passing NA through.
func (a *textAction) unary(inputs []any, fn func(string) any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	value := actionInputs.First("text")
	if value == nil {
		return nil, nil
	}

	str, err := utils.AnyToType[string](value)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	return fn(str), nil
}

var unaryTextRules = models.ActionInputRules{
	{Name: "text", Type: models.ValueTypeString, Min: 1, Max: 1},
}

func newUnaryTextAction(key string, outputType models.ValueType, inputTypes ...models.ValueType) (*textAction, error) {
	if _, err := models.ValidateInputTypes(unaryTextRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}
	return &textAction{key: key, rules: unaryTextRules, outputType: outputType}, nil
}
