package text

import (
	"unicode/utf8"

	"github.com/Ramsey-B/fern/pkg/models"
)

var TextLengthRules = unaryTextRules

// TextLengthAction counts characters, not bytes.
type TextLengthAction struct {
	*textAction
}

func NewTextLengthAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	base, err := newUnaryTextAction(key, models.ValueTypeInteger, inputTypes...)
	if err != nil {
		return nil, err
	}
	return &TextLengthAction{base}, nil
}

func (a *TextLengthAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, func(s string) any { return int64(utf8.RuneCountInString(s)) })
}
