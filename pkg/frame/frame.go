// Package frame holds the in-memory column table steps read and produce.
//
// A Frame is an ordered list of equally long, uniquely named columns. Frames
// are values: every operation that changes the shape returns a new Frame and
// leaves the receiver untouched, so a trained step can bake the same input
// repeatedly.
package frame

import (
	"fmt"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/fern/pkg/models"
)

type Frame struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New builds a frame from columns in the given order.
func New(columns ...*Column) (*Frame, error) {
	f := &Frame{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("column %d is nil", i+1)
		}
		if _, exists := f.index[col.Name]; exists {
			return nil, fmt.Errorf("duplicate column '%s'", col.Name)
		}
		if i == 0 {
			f.rows = col.Len()
		} else if col.Len() != f.rows {
			return nil, fmt.Errorf("column '%s' has %d rows, expected %d", col.Name, col.Len(), f.rows)
		}
		f.index[col.Name] = len(f.columns)
		f.columns = append(f.columns, col)
	}

	return f, nil
}

// MustNew is New for literals; it panics on invalid input.
func MustNew(columns ...*Column) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Frame) NumRows() int {
	return f.rows
}

func (f *Frame) NumCols() int {
	return len(f.columns)
}

func (f *Frame) Names() []string {
	return ectolinq.Map(f.columns, func(c *Column) string { return c.Name })
}

func (f *Frame) Columns() []*Column {
	out := make([]*Column, len(f.columns))
	copy(out, f.columns)
	return out
}

func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.columns[i], true
}

func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// With returns a frame where col replaces the column of the same name in
// place, or is appended after the last column.
func (f *Frame) With(col *Column) (*Frame, error) {
	columns := f.Columns()
	if i, ok := f.index[col.Name]; ok {
		columns[i] = col
	} else {
		columns = append(columns, col)
	}
	return New(columns...)
}

// Drop returns a frame without the named columns. Unknown names are ignored.
func (f *Frame) Drop(names ...string) *Frame {
	kept := ectolinq.Filter(f.columns, func(c *Column) bool {
		return !ectolinq.Contains(names, c.Name)
	})
	out, _ := New(kept...)
	if len(kept) == 0 {
		out.rows = f.rows
	}
	return out
}

// Append returns a frame with cols added after the existing columns.
func (f *Frame) Append(cols ...*Column) (*Frame, error) {
	return New(append(f.Columns(), cols...)...)
}

// Select returns a frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		col, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("column '%s' does not exist", name)
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// Info builds the schema table for the frame. Named outcome columns get the
// outcome role; every other column is a predictor.
func (f *Frame) Info(outcomes ...string) models.VarInfos {
	infos := make(models.VarInfos, 0, len(f.columns))
	for _, col := range f.columns {
		role := models.RolePredictor
		if ectolinq.Contains(outcomes, col.Name) {
			role = models.RoleOutcome
		}
		infos = append(infos, models.VarInfo{
			Variable: col.Name,
			Type:     col.Type,
			Role:     role,
			Source:   models.SourceOriginal,
		})
	}
	return infos
}
