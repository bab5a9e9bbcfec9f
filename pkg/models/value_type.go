package models

import (
	"fmt"
	"math"

	"github.com/Gobusters/ectolinq"
)

// ValueType is the element type of a column.
type ValueType string

const (
	ValueTypeDouble  ValueType = "double"
	ValueTypeInteger ValueType = "integer"
	ValueTypeString  ValueType = "string"
	ValueTypeLogical ValueType = "logical"
	ValueTypeUnknown ValueType = "unknown"
)

var ValueTypes = []ValueType{ValueTypeDouble, ValueTypeInteger, ValueTypeString, ValueTypeLogical}

// IsNumeric reports whether the type holds numbers (double or integer).
func (t ValueType) IsNumeric() bool {
	return t == ValueTypeDouble || t == ValueTypeInteger
}

func ParseValueType(s string) (ValueType, error) {
	t := ValueType(s)
	if !ectolinq.Contains(ValueTypes, t) {
		return ValueTypeUnknown, fmt.Errorf("unknown value type '%s'", s)
	}
	return t, nil
}

// GetValueType returns the column type a single non-missing cell value belongs to.
// nil is a missing cell and has no type of its own.
func GetValueType(value any) ValueType {
	switch value.(type) {
	case float64, float32:
		return ValueTypeDouble
	case int, int64, int32, int16, int8:
		return ValueTypeInteger
	case string:
		return ValueTypeString
	case bool:
		return ValueTypeLogical
	}

	return ValueTypeUnknown
}

// CommonType returns the narrowest column type able to hold both a and b.
// Integer widens to double; every other mix is incompatible.
func CommonType(a, b ValueType) (ValueType, error) {
	if a == b {
		return a, nil
	}
	if a == ValueTypeUnknown {
		return b, nil
	}
	if b == ValueTypeUnknown {
		return a, nil
	}
	if a.IsNumeric() && b.IsNumeric() {
		return ValueTypeDouble, nil
	}

	return ValueTypeUnknown, fmt.Errorf("incompatible types %s and %s", a, b)
}

// IsMissing reports whether a cell value is NA. NaN doubles count as missing.
func IsMissing(value any) bool {
	if value == nil {
		return true
	}
	if f, ok := value.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}
