package models

import (
	"fmt"
)

// Rule-only value types. Columns never carry them.
const (
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeAny     ValueType = "any"
)

// Action is a scalar function callable from a mutate expression. Execute runs
// once per row with one value per argument; nil is NA.
type Action interface {
	GetKey() string                     // Unique action identifier
	GetInputRules() ActionInputRules    // Positional argument rules
	GetOutputType() ValueType           // Column type of the result
	Execute(inputs ...any) (any, error) // Execute the action for one row
}

// ActionInputRules are matched against arguments in order. Each rule consumes
// between Min and Max consecutive arguments (Max -1 = unlimited).
//
// Example: paste accepts one or more values of any type:
//
//	ActionInputRules{{Name: "value", Type: ValueTypeAny, Min: 1, Max: -1}}
type ActionInputRules []ActionInputRule

type ActionInputRule struct {
	Name string    `json:"name"`
	Type ValueType `json:"type"`
	Min  int       `json:"min"`
	Max  int       `json:"max"`
}

// Accepts reports whether an argument of type t satisfies the rule. Unknown is
// the type of a bare NA literal and satisfies every rule.
func (r ActionInputRule) Accepts(t ValueType) bool {
	switch {
	case t == ValueTypeUnknown, r.Type == ValueTypeAny:
		return true
	case r.Type == ValueTypeNumeric:
		return t.IsNumeric()
	}
	return r.Type == t
}

// ValidateInputTypes checks argument types against the rules and returns the
// types grouped per rule.
func ValidateInputTypes(rules ActionInputRules, inputs ...ValueType) (map[string][]ValueType, error) {
	grouped := make(map[string][]ValueType, len(rules))
	pos := 0
	for _, rule := range rules {
		matched := []ValueType{}
		for pos < len(inputs) && (rule.Max == -1 || len(matched) < rule.Max) && rule.Accepts(inputs[pos]) {
			matched = append(matched, inputs[pos])
			pos++
		}
		if len(matched) < rule.Min {
			if pos < len(inputs) {
				return nil, fmt.Errorf("argument %d: expected %s for '%s', got %s", pos+1, rule.Type, rule.Name, inputs[pos])
			}
			return nil, fmt.Errorf("expected at least %d %s inputs for '%s', got %d", rule.Min, rule.Type, rule.Name, len(matched))
		}
		grouped[rule.Name] = matched
	}

	if pos < len(inputs) {
		return nil, fmt.Errorf("expected at most %d arguments, got %d", pos, len(inputs))
	}

	return grouped, nil
}

type ActionInputs map[string][]any

// Validate splits one row of arguments across the rules. Types were checked
// when the action was built, so only the counts are checked here.
func (r ActionInputRules) Validate(inputs ...any) (ActionInputs, error) {
	result := make(ActionInputs, len(r))
	pos := 0
	for i, rule := range r {
		// leave enough arguments for the minimums of the rules that follow
		reserved := 0
		for _, next := range r[i+1:] {
			reserved += next.Min
		}
		n := len(inputs) - pos - reserved
		if rule.Max != -1 && n > rule.Max {
			n = rule.Max
		}
		if n < rule.Min {
			return nil, fmt.Errorf("expected at least %d %s inputs for '%s', got %d", rule.Min, rule.Type, rule.Name, max(n, 0))
		}
		result[rule.Name] = inputs[pos : pos+n]
		pos += n
	}

	if pos < len(inputs) {
		return nil, fmt.Errorf("expected at most %d arguments, got %d", pos, len(inputs))
	}

	return result, nil
}

// First returns the first value bound to name, or nil.
func (a ActionInputs) First(name string) any {
	values := a[name]
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
