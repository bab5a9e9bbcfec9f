package number

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

var NumberSignRules = models.ActionInputRules{
	{Name: "x", Type: models.ValueTypeNumeric, Min: 1, Max: 1},
}

type NumberSignAction struct {
	numberAction
}

func NewNumberSignAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	if _, err := models.ValidateInputTypes(NumberSignRules, inputTypes...); err != nil {
		return nil, errors.WrapStepError(err).AddAction(key)
	}

	return &NumberSignAction{newNumberAction(key, NumberSignRules, numericOutput(inputTypes...))}, nil
}

// Execute returns -1, 0 or 1 in the type of x.
func (a *NumberSignAction) Execute(inputs ...any) (any, error) {
	return a.unary(inputs, func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	})
}
