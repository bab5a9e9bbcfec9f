// Package number holds the numeric row functions available to mutate expressions.
package number

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

type numberAction struct {
	key        string
	rules      models.ActionInputRules
	outputType models.ValueType
}

func newNumberAction(key string, rules models.ActionInputRules, outputType models.ValueType) numberAction {
	return numberAction{key: key, rules: rules, outputType: outputType}
}

func (a *numberAction) GetInputRules() models.ActionInputRules {
	return a.rules
}

func (a *numberAction) GetKey() string {
	return a.key
}

func (a *numberAction) GetOutputType() models.ValueType {
	return a.outputType
}

// numericOutput is integer when every input is integer (or a bare NA), double otherwise.
func numericOutput(inputTypes ...models.ValueType) models.ValueType {
	seen := false
	for _, t := range inputTypes {
		switch t {
		case models.ValueTypeInteger:
			seen = true
		case models.ValueTypeUnknown:
		default:
			return models.ValueTypeDouble
		}
	}
	if !seen {
		return models.ValueTypeDouble
	}
	return models.ValueTypeInteger
}

func anyMissing(values ...any) bool {
	for _, v := range values {
		if models.IsMissing(v) {
			return true
		}
	}
	return false
}

func toFloats(values []any) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := utils.AnyToType[float64](v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// double turns a computed float into a cell; NaN is NA.
func double(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// cell converts f back to the action's output type.
func cell(outputType models.ValueType, f float64) (any, error) {
	if outputType == models.ValueTypeInteger {
		return utils.ToInteger(f)
	}
	return double(f), nil
}

// unary applies fn to the single "x" input, passing NA through.
func (a *numberAction) unary(inputs []any, fn func(float64) float64) (any, error) {
	actionInputs, err := a.GetInputRules().Validate(inputs...)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}

	x := actionInputs.First("x")
	if anyMissing(x) {
		return nil, nil
	}

	num, err := utils.AnyToType[float64](x)
	if err != nil {
		return nil, errors.WrapStepError(err).AddAction(a.key)
	}
	return cell(a.outputType, fn(num))
}
