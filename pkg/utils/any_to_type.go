package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// AnyToType converts a cell or argument value to T. nil converts to the zero
// value. Numeric kinds convert between each other; strings never convert to
// numbers here (see ParseNumber).
func AnyToType[T any](input any) (T, error) {
	var zero T
	if input == nil {
		return zero, nil
	}

	// numbers decoded with json.Decoder.UseNumber
	if n, ok := input.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			input = f
		}
	}

	if result, ok := input.(T); ok {
		return result, nil
	}

	targetType := reflect.TypeOf(zero)
	if targetType == nil {
		return zero, fmt.Errorf("type mismatch: expected %T, got %T", zero, input)
	}

	inputValue := reflect.ValueOf(input)

	if isNumericKind(inputValue.Kind()) && isNumericKind(targetType.Kind()) && inputValue.Type().ConvertibleTo(targetType) {
		converted := inputValue.Convert(targetType)
		if result, ok := converted.Interface().(T); ok {
			return result, nil
		}
	}

	return zero, fmt.Errorf("type mismatch: expected %T, got %T", zero, input)
}

// ToInteger converts a numeric value to int64, truncating toward zero.
func ToInteger(input any) (int64, error) {
	f, err := AnyToType[float64](input)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %v to an integer", f)
	}
	if i, ok := input.(int64); ok {
		return i, nil
	}
	return int64(math.Trunc(f)), nil
}

// ParseNumber parses text into an int64 when it is integral, otherwise a float64.
func ParseNumber(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a number", s)
	}
	return f, nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
