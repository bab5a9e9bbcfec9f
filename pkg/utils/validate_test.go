package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type splineArgs struct {
	DegFree   *int   `json:"deg_free,omitempty" validate:"omitempty,min=0"`
	Intercept bool   `json:"intercept"`
	Knots     []int  `json:"-" validate:"omitempty,dive,min=1"`
	Role      string `validate:"omitempty,oneof=predictor outcome other"`
}

type document struct {
	Kind   string      `json:"kind" validate:"required"`
	Spline *splineArgs `json:"spline,omitempty"`
}

func TestValidate(t *testing.T) {
	negative := -1
	two := 2

	tests := []struct {
		name     string
		value    document
		expected []string
	}{
		{name: "valid", value: document{Kind: "ns", Spline: &splineArgs{DegFree: &two}}},
		{name: "required", value: document{}, expected: []string{"'kind' is required"}},
		{name: "json name of nested field", value: document{Kind: "ns", Spline: &splineArgs{DegFree: &negative}}, expected: []string{"'spline.deg_free' must be at least 0, got '-1'"}},
		{name: "untagged field keeps its go name", value: document{Kind: "ns", Spline: &splineArgs{Role: "label"}}, expected: []string{"'spline.Role' must be one of [predictor outcome other]"}},
		{
			name:     "several failures",
			value:    document{Spline: &splineArgs{DegFree: &negative}},
			expected: []string{"'kind' is required", "; ", "'spline.deg_free'"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Validate(test.value)
			if len(test.expected) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, part := range test.expected {
				assert.Contains(t, err.Error(), part)
			}
		})
	}
}
