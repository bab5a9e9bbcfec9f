package text

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

var TextToLowerRules = unaryTextRules

type TextToLowerAction struct {
	*textAction
}

func NewTextToLowerAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	base, err := newUnaryTextAction(key, models.ValueTypeString, inputTypes...)
	if err != nil {
		return nil, err
	}
	return &TextToLowerAction{base}, nil
}

func (a *TextToLowerAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, func(s string) any { return strings.ToLower(s) })
}
