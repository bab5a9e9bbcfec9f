package registry

import (
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

type ActionFactory func(key string, inputTypes ...models.ValueType) (models.Action, error)

var Actions = map[string]ActionFactory{}

func GetAction(key string, inputTypes ...models.ValueType) (models.Action, error) {
	action, ok := Actions[key]
	if !ok {
		return nil, errors.NewDelegatedError("could not find function '%s'", key).AddAction(key)
	}
	return action(key, inputTypes...)
}
