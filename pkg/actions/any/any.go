// Package any holds the row functions that accept values of every column type.
package any

import (
	"github.com/Ramsey-B/fern/pkg/models"
)

type anyAction struct {
	key        string
	rules      models.ActionInputRules
	outputType models.ValueType
}

func (a *anyAction) GetInputRules() models.ActionInputRules {
	return a.rules
}

func (a *anyAction) GetKey() string {
	return a.key
}

func (a *anyAction) GetOutputType() models.ValueType {
	return a.outputType
}

// commonType folds the argument types into one result type. Bare NA
// arguments fall back to logical.
func commonType(inputTypes ...models.ValueType) (models.ValueType, error) {
	result := models.ValueTypeUnknown
	for _, t := range inputTypes {
		next, err := models.CommonType(result, t)
		if err != nil {
			return models.ValueTypeUnknown, err
		}
		result = next
	}
	if result == models.ValueTypeUnknown {
		return models.ValueTypeLogical, nil
	}
	return result, nil
}
