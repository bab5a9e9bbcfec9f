package text

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

var TextTrimRules = unaryTextRules

// TextTrimAction removes leading and trailing whitespace.
type TextTrimAction struct {
	*textAction
}

func NewTextTrimAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	base, err := newUnaryTextAction(key, models.ValueTypeString, inputTypes...)
	if err != nil {
		return nil, err
	}
	return &TextTrimAction{base}, nil
}

func (a *TextTrimAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, func(s string) any { return strings.TrimSpace(s) })
}
