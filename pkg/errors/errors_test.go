package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *StepError
		expected string
	}{
		{
			name:     "message only",
			err:      NewUsageError("step has not been prepped"),
			expected: "step has not been prepped",
		},
		{
			name:     "with step",
			err:      NewUsageError("step has not been prepped").AddStep("impute_median_abcde"),
			expected: "step 'impute_median_abcde': step has not been prepped",
		},
		{
			name:     "with step and column",
			err:      NewTypeMismatchError("expected a numeric column, got string").AddColumn("name").AddStep("ns_abcde"),
			expected: "step 'ns_abcde' -> column 'name': expected a numeric column, got string",
		},
		{
			name:     "with action",
			err:      NewDelegatedError("square root of a string").AddAction("sqrt"),
			expected: "action 'sqrt': square root of a string",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestStepError_Is(t *testing.T) {
	var err error = NewUsageError("missing column 'x'")
	wrapped := fmt.Errorf("bake failed: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrUsage))
	assert.False(t, stderrors.Is(wrapped, ErrTypeMismatch))
	assert.True(t, IsKind(wrapped, KindUsage))
	assert.True(t, IsStepError(wrapped))
	assert.False(t, IsStepError(stderrors.New("plain")))
}

func TestNewDelegatedError_KeepsCause(t *testing.T) {
	cause := stderrors.New("boundary knots must differ")
	err := NewDelegatedError("cannot fit spline: %w", cause)

	assert.Equal(t, "cannot fit spline: boundary knots must differ", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, stderrors.Is(err, ErrDelegated))
}

func TestWrapStepError(t *testing.T) {
	assert.Nil(t, WrapStepError(nil))

	original := NewTypeMismatchError("bad")
	assert.Same(t, original, WrapStepError(original))

	wrapped := WrapStepError(stderrors.New("division by zero"))
	require.NotNil(t, wrapped)
	assert.Equal(t, KindDelegated, wrapped.Kind)
	assert.Equal(t, "division by zero", wrapped.Error())
}

func TestStepError_ToHTTPError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewUsageError("x").StatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, NewTypeMismatchError("x").StatusCode())

	httpErr := NewTypeMismatchError("bad column").AddStep("ns_1").ToHTTPError()
	require.NotNil(t, httpErr)
	assert.Equal(t, "type_mismatch", httpErr.Meta["kind"])
	assert.Equal(t, "ns_1", httpErr.Meta["step_id"])
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("bake: %w", NewUsageError("missing column")))
	assert.True(t, ok)
	assert.Equal(t, KindUsage, kind)

	_, ok = KindOf(stderrors.New("plain"))
	assert.False(t, ok)
}
