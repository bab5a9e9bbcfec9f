package frame

import (
	"encoding/json"
	"sort"
)

// FromRows builds a frame from row maps such as decoded JSON. Column order
// follows names; when names is empty, the sorted union of row keys is used.
// A key missing from a row is a missing cell. Rows decoded with
// json.Decoder.UseNumber keep integral numbers as integer columns.
func FromRows(rows []map[string]any, names ...string) (*Frame, error) {
	if len(names) == 0 {
		seen := map[string]bool{}
		for _, row := range rows {
			for k := range row {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
		sort.Strings(names)
	}

	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = fromJSONNumber(row[name])
		}
		col, err := InferColumn(name, values)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return New(cols...)
}

// fromJSONNumber keeps integral numbers decoded with UseNumber as integers.
func fromJSONNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// Rows renders the frame as row maps. Missing cells are nil.
func (f *Frame) Rows() []map[string]any {
	rows := make([]map[string]any, f.rows)
	for i := range rows {
		row := make(map[string]any, len(f.columns))
		for _, col := range f.columns {
			row[col.Name] = col.Values[i]
		}
		rows[i] = row
	}
	return rows
}
