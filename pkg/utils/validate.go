package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names, so errors read
// "spline.deg_free" the way the document was written.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})
	return v
}

// Validate runs the struct's validate tags.
func Validate[T any](value T) (T, error) {
	if err := validate.Struct(value); err != nil {
		return value, validationError(err)
	}
	return value, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	// drop the root struct name
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s], got '%v'", field, fe.Param(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("'%s' must be at least %s, got '%v'", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("'%s' failed rule '%s=%s', got '%v'", field, fe.Tag(), fe.Param(), fe.Value())
}
