package text

import (
	"testing"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextActions_Execute(t *testing.T) {
	tests := []struct {
		name       string
		factory    func(string, ...models.ValueType) (models.Action, error)
		inputTypes []models.ValueType
		inputs     []any
		expected   any
	}{
		{name: "toupper", factory: NewTextToUpperAction, inputTypes: []models.ValueType{models.ValueTypeString}, inputs: []any{"abc"}, expected: "ABC"},
		{name: "tolower", factory: NewTextToLowerAction, inputTypes: []models.ValueType{models.ValueTypeString}, inputs: []any{"AbC"}, expected: "abc"},
		{name: "tolower NA", factory: NewTextToLowerAction, inputTypes: []models.ValueType{models.ValueTypeString}, inputs: []any{nil}, expected: nil},
		{name: "trim", factory: NewTextTrimAction, inputTypes: []models.ValueType{models.ValueTypeString}, inputs: []any{"  a b "}, expected: "a b"},
		{name: "nchar counts characters", factory: NewTextLengthAction, inputTypes: []models.ValueType{models.ValueTypeString}, inputs: []any{"héllo"}, expected: int64(5)},
		{
			name:       "paste mixed",
			factory:    NewTextConcatAction,
			inputTypes: []models.ValueType{models.ValueTypeString, models.ValueTypeInteger, models.ValueTypeLogical, models.ValueTypeDouble},
			inputs:     []any{"id", int64(3), true, nil},
			expected:   "id 3 TRUE NA",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			action, err := test.factory("test", test.inputTypes...)
			require.NoError(t, err)

			result, err := action.Execute(test.inputs...)
			require.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestTextActions_InvalidInputs(t *testing.T) {
	_, err := NewTextToUpperAction("toupper", models.ValueTypeDouble)
	assert.Error(t, err)

	_, err = NewTextConcatAction("paste")
	assert.Error(t, err)

	action, err := NewTextLengthAction("nchar", models.ValueTypeString)
	require.NoError(t, err)
	assert.Equal(t, models.ValueTypeInteger, action.GetOutputType())
}
