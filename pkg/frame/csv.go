package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Cells spelled like this are read as missing.
var missingTokens = []string{"", "NA", "NaN", "null"}

// ReadCSV reads a header row followed by data rows. Each column's type is
// inferred from its cells: integer, then double, then logical, then string.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	raw := make([][]string, len(headers))
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		for i := range headers {
			raw[i] = append(raw[i], record[i])
		}
	}

	cols := make([]*Column, 0, len(headers))
	for i, h := range headers {
		col, err := parseCSVColumn(strings.TrimSpace(h), raw[i])
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return New(cols...)
}

func parseCSVColumn(name string, cells []string) (*Column, error) {
	t := inferCSVType(cells)
	values := make([]any, len(cells))
	for i, cell := range cells {
		if isMissingToken(cell) {
			continue
		}
		switch t {
		case models.ValueTypeInteger, models.ValueTypeDouble:
			v, err := utils.ParseNumber(cell)
			if err != nil {
				return nil, fmt.Errorf("column '%s' row %d: %w", name, i+1, err)
			}
			values[i] = v
		case models.ValueTypeLogical:
			values[i], _ = parseLogical(cell)
		default:
			values[i] = cell
		}
	}

	return NewColumn(name, t, values)
}

func inferCSVType(cells []string) models.ValueType {
	isInt, isNum, isLogical, seen := true, true, true, false
	for _, cell := range cells {
		if isMissingToken(cell) {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			isNum = false
		}
		if _, ok := parseLogical(cell); !ok {
			isLogical = false
		}
	}

	switch {
	case !seen:
		return models.ValueTypeLogical
	case isInt:
		return models.ValueTypeInteger
	case isNum:
		return models.ValueTypeDouble
	case isLogical:
		return models.ValueTypeLogical
	}
	return models.ValueTypeString
}

func parseLogical(s string) (bool, bool) {
	switch s {
	case "TRUE", "true", "True", "T":
		return true, true
	case "FALSE", "false", "False", "F":
		return false, true
	}
	return false, false
}

func isMissingToken(s string) bool {
	return ectolinq.Contains(missingTokens, s)
}

// WriteCSV writes the frame with a header row. Missing cells are written as NA.
func WriteCSV(w io.Writer, f *Frame) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(f.Names()); err != nil {
		return err
	}

	record := make([]string, f.NumCols())
	for i := 0; i < f.NumRows(); i++ {
		for j, col := range f.columns {
			record[j] = FormatCell(col.Values[i])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatCell renders one cell as text.
func FormatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return "NA"
	case float64:
		if math.IsInf(value, 1) {
			return "Inf"
		}
		if math.IsInf(value, -1) {
			return "-Inf"
		}
		return strconv.FormatFloat(value, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		if value {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return value
	}
	return fmt.Sprintf("%v", v)
}
