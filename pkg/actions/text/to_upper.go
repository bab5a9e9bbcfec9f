package text

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

var TextToUpperRules = unaryTextRules

type TextToUpperAction struct {
	*textAction
}

func NewTextToUpperAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	base, err := newUnaryTextAction(key, models.ValueTypeString, inputTypes...)
	if err != nil {
		return nil, err
	}
	return &TextToUpperAction{base}, nil
}

func (a *TextToUpperAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, func(s string) any { return strings.ToUpper(s) })
}
