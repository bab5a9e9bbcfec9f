package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnyToType(t *testing.T) {
	type testCase struct {
		name     string
		input    any
		expected any
		err      bool
	}

	floatCases := []testCase{
		{name: "float", input: 2.5, expected: 2.5},
		{name: "int64", input: int64(3), expected: 3.0},
		{name: "int", input: 4, expected: 4.0},
		{name: "json number", input: json.Number("2.25"), expected: 2.25},
		{name: "nil", input: nil, expected: 0.0},
		{name: "string", input: "1", err: true},
		{name: "bool", input: true, err: true},
	}

	for _, tc := range floatCases {
		t.Run("float64 "+tc.name, func(t *testing.T) {
			result, err := AnyToType[float64](tc.input)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}

	int64Cases := []testCase{
		{name: "int64", input: int64(7), expected: int64(7)},
		{name: "float", input: 7.9, expected: int64(7)},
		{name: "string", input: "7", err: true},
	}

	for _, tc := range int64Cases {
		t.Run("int64 "+tc.name, func(t *testing.T) {
			result, err := AnyToType[int64](tc.input)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestToInteger(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int64
		err      bool
	}{
		{name: "whole", input: 2.0, expected: 2},
		{name: "truncates positive", input: 2.5, expected: 2},
		{name: "truncates negative", input: -2.5, expected: -2},
		{name: "int64 passthrough", input: int64(9), expected: 9},
		{name: "nan", input: math.NaN(), err: true},
		{name: "inf", input: math.Inf(1), err: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := ToInteger(test.input)
			if test.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber("12")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), v)

	v, err = ParseNumber("1.5")
	assert.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = ParseNumber("abc")
	assert.Error(t, err)
}
