package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

// Kind classifies a StepError.
type Kind string

const (
	// KindTypeMismatch is raised at prep time when a selected column has a type the step cannot use.
	KindTypeMismatch Kind = "type_mismatch"
	// KindUsage is raised when a step is used out of order or against incompatible data.
	KindUsage Kind = "usage"
	// KindDelegated is raised by the expression and spline engines and passed through by steps untouched.
	KindDelegated Kind = "delegated_computation"
)

var (
	ErrTypeMismatch = stderrors.New(string(KindTypeMismatch))
	ErrUsage        = stderrors.New(string(KindUsage))
	ErrDelegated    = stderrors.New(string(KindDelegated))
)

type StepError struct {
	Kind    Kind
	Step    string
	Column  string
	Action  string
	Message string
	cause   error
}

func newStepError(kind Kind, msg string) *StepError {
	return &StepError{
		Kind:    kind,
		Message: msg,
	}
}

func NewTypeMismatchError(format string, args ...any) *StepError {
	return newStepError(KindTypeMismatch, fmt.Sprintf(format, args...))
}

func NewUsageError(format string, args ...any) *StepError {
	return newStepError(KindUsage, fmt.Sprintf(format, args...))
}

// NewDelegatedError creates an error owned by a computation engine. The message
// keeps the engine's own wording; a %w argument becomes the cause.
func NewDelegatedError(format string, args ...any) *StepError {
	e := newStepError(KindDelegated, "")
	for i, arg := range args {
		if err, ok := arg.(error); ok && strings.Contains(format, "%w") {
			format = strings.Replace(format, "%w", "%v", 1)
			args[i] = err.Error()
			e.cause = err
		}
	}
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WrapStepError returns e unchanged when it already is a StepError, otherwise
// it is recorded as a delegated failure.
func WrapStepError(e error) *StepError {
	if e == nil {
		return nil
	}

	var stepErr *StepError
	if stderrors.As(e, &stepErr) {
		return stepErr
	}

	return &StepError{
		Kind:    KindDelegated,
		Message: e.Error(),
		cause:   e,
	}
}

func (e *StepError) Error() string {
	path := []string{}
	if e.Step != "" {
		path = append(path, fmt.Sprintf("step '%s'", e.Step))
	}
	if e.Column != "" {
		path = append(path, fmt.Sprintf("column '%s'", e.Column))
	}
	if e.Action != "" {
		path = append(path, fmt.Sprintf("action '%s'", e.Action))
	}

	if len(path) == 0 {
		return e.Message
	}

	return strings.Join(path, " -> ") + ": " + e.Message
}

// Is matches the kind sentinels so callers can use errors.Is(err, ErrUsage).
func (e *StepError) Is(target error) bool {
	switch target {
	case ErrTypeMismatch:
		return e.Kind == KindTypeMismatch
	case ErrUsage:
		return e.Kind == KindUsage
	case ErrDelegated:
		return e.Kind == KindDelegated
	}
	return false
}

func (e *StepError) Unwrap() error {
	return e.cause
}

func (e *StepError) AddStep(stepID string) *StepError {
	if e.Step == "" {
		e.Step = stepID
	}
	return e
}

func (e *StepError) AddColumn(column string) *StepError {
	if e.Column == "" {
		e.Column = column
	}
	return e
}

func (e *StepError) AddAction(actionKey string) *StepError {
	if e.Action == "" {
		e.Action = actionKey
	}
	return e
}

func (e *StepError) StatusCode() int {
	if e.Kind == KindUsage {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func (e *StepError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(e.StatusCode(), e.Error()).
		AddMetaValue("kind", string(e.Kind)).
		AddMetaValue("step_id", e.Step).
		AddMetaValue("column", e.Column).
		AddMetaValue("action_key", e.Action)
}

func IsStepError(err error) bool {
	var stepErr *StepError
	return stderrors.As(err, &stepErr)
}

func IsKind(err error, kind Kind) bool {
	var stepErr *StepError
	if !stderrors.As(err, &stepErr) {
		return false
	}
	return stepErr.Kind == kind
}

// KindOf returns the kind of the first StepError in err's chain.
func KindOf(err error) (Kind, bool) {
	var stepErr *StepError
	if !stderrors.As(err, &stepErr) {
		return "", false
	}
	return stepErr.Kind, true
}
