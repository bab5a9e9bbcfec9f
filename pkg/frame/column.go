package frame

import (
	"fmt"
	"math"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Column is a named, typed vector of cells. A nil cell is missing (NA).
// Non-missing cells hold float64 (double), int64 (integer), string or bool.
type Column struct {
	Name   string
	Type   models.ValueType
	Values []any
}

// NewColumn builds a column of type t, normalizing every cell to the type's
// Go representation.
func NewColumn(name string, t models.ValueType, values []any) (*Column, error) {
	out := make([]any, len(values))
	for i, v := range values {
		cell, err := normalizeCell(t, v)
		if err != nil {
			return nil, fmt.Errorf("column '%s' row %d: %w", name, i+1, err)
		}
		out[i] = cell
	}

	return &Column{Name: name, Type: t, Values: out}, nil
}

// MustColumn is NewColumn for literals; it panics on a bad cell.
func MustColumn(name string, t models.ValueType, values ...any) *Column {
	col, err := NewColumn(name, t, values)
	if err != nil {
		panic(err)
	}
	return col
}

// InferColumn picks the narrowest type that holds every non-missing cell.
// An all-missing column is logical.
func InferColumn(name string, values []any) (*Column, error) {
	t := models.ValueTypeUnknown
	for i, v := range values {
		if models.IsMissing(v) {
			continue
		}
		vt := models.GetValueType(v)
		if vt == models.ValueTypeUnknown {
			return nil, fmt.Errorf("column '%s' row %d: unsupported value %v (%T)", name, i+1, v, v)
		}
		next, err := models.CommonType(t, vt)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", name, err)
		}
		t = next
	}
	if t == models.ValueTypeUnknown {
		t = models.ValueTypeLogical
	}

	return NewColumn(name, t, values)
}

func normalizeCell(t models.ValueType, v any) (any, error) {
	if models.IsMissing(v) {
		return nil, nil
	}

	switch t {
	case models.ValueTypeDouble:
		if !models.GetValueType(v).IsNumeric() {
			return nil, fmt.Errorf("expected a number, got %T", v)
		}
		return utils.AnyToType[float64](v)
	case models.ValueTypeInteger:
		switch models.GetValueType(v) {
		case models.ValueTypeInteger:
			return utils.AnyToType[int64](v)
		case models.ValueTypeDouble:
			f, _ := utils.AnyToType[float64](v)
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("expected an integer, got %v", f)
			}
			return int64(f), nil
		}
		return nil, fmt.Errorf("expected an integer, got %T", v)
	case models.ValueTypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", v)
		}
		return s, nil
	case models.ValueTypeLogical:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected a logical, got %T", v)
		}
		return b, nil
	}

	return nil, fmt.Errorf("unsupported column type '%s'", t)
}

func (c *Column) Len() int {
	return len(c.Values)
}

func (c *Column) IsMissing(i int) bool {
	return c.Values[i] == nil
}

// NumMissing counts NA cells.
func (c *Column) NumMissing() int {
	n := 0
	for _, v := range c.Values {
		if v == nil {
			n++
		}
	}
	return n
}

// Float64 returns cell i as a float64 and false when it is missing or not numeric.
func (c *Column) Float64(i int) (float64, bool) {
	switch v := c.Values[i].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// NonMissingFloats returns the numeric, non-missing cells in row order.
func (c *Column) NonMissingFloats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for i := range c.Values {
		if f, ok := c.Float64(i); ok {
			out = append(out, f)
		}
	}
	return out
}

func (c *Column) Clone() *Column {
	values := make([]any, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Type: c.Type, Values: values}
}

// Renamed returns a copy of the column under a new name; cells are shared.
func (c *Column) Renamed(name string) *Column {
	return &Column{Name: name, Type: c.Type, Values: c.Values}
}
