package text

import (
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
)

var TextConcatRules = models.ActionInputRules{
	{Name: "values", Type: models.ValueTypeAny, Min: 1, Max: -1},
}

// TextConcatAction joins its arguments with a single space. NA prints as "NA".
type TextConcatAction struct {
	*textAction
}

func NewTextConcatAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(TextConcatRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &TextConcatAction{&textAction{key: key, rules: TextConcatRules, outputType: models.ValueTypeString}}, nil
}

func (a *TextConcatAction) Execute(inputs ...any) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	parts := ectolinq.Map(actionInputs["values"], frame.FormatCell)
	return strings.Join(parts, " "), nil
}
