package expressions

import (
	"go/token"
	"math"
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

func isNA(t models.ValueType) bool {
	return t == models.ValueTypeUnknown
}

func numericOrNA(t models.ValueType) bool {
	return t.IsNumeric() || isNA(t)
}

func integerOrNA(t models.ValueType) bool {
	return t == models.ValueTypeInteger || isNA(t)
}

func broadcastLen(x, y vector) int {
	if !x.isScalar() {
		return len(x.values)
	}
	return len(y.values)
}

func unary(op token.Token, x vector) (vector, error) {
	out := vector{typ: x.typ, values: make([]any, len(x.values))}

	switch op {
	case token.ADD, token.SUB:
		if !numericOrNA(x.typ) {
			return vector{}, errors.NewDelegatedError("invalid argument to unary operator '%s': %s", op, x.typ)
		}
		for i, v := range x.values {
			switch value := v.(type) {
			case int64:
				if op == token.SUB {
					if value == math.MinInt64 {
						continue
					}
					value = -value
				}
				out.values[i] = value
			case float64:
				if op == token.SUB {
					value = -value
				}
				out.values[i] = value
			}
		}
		return out, nil
	case token.NOT:
		if x.typ == models.ValueTypeString {
			return vector{}, errors.NewDelegatedError("invalid argument type for '!': %s", x.typ)
		}
		out.typ = models.ValueTypeLogical
		for i, v := range x.values {
			if b, ok := truthy(v); ok {
				out.values[i] = !b
			}
		}
		return out, nil
	}
	return vector{}, errors.NewDelegatedError("unsupported operator '%s'", op)
}

func binary(op token.Token, x, y vector) (vector, error) {
	switch op {
	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM, token.XOR:
		return arithmetic(op, x, y)
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return compare(op, x, y)
	case token.LAND, token.AND, token.LOR, token.OR:
		return logical(op, x, y)
	}
	return vector{}, errors.NewDelegatedError("unsupported operator '%s'", op)
}

func arithmetic(op token.Token, x, y vector) (vector, error) {
	if !numericOrNA(x.typ) || !numericOrNA(y.typ) {
		return vector{}, errors.NewDelegatedError("non-numeric argument to binary operator '%s': %s %s %s", op, x.typ, op, y.typ)
	}

	integer := op != token.QUO && op != token.XOR &&
		integerOrNA(x.typ) && integerOrNA(y.typ) && !(isNA(x.typ) && isNA(y.typ))

	out := vector{typ: models.ValueTypeDouble, values: make([]any, broadcastLen(x, y))}
	if integer {
		out.typ = models.ValueTypeInteger
	}

	for i := range out.values {
		a, b := x.at(i), y.at(i)
		if models.IsMissing(a) || models.IsMissing(b) {
			continue
		}

		if integer {
			ai, _ := utils.AnyToType[int64](a)
			bi, _ := utils.AnyToType[int64](b)
			out.values[i] = integerOp(op, ai, bi)
			continue
		}

		af, _ := utils.AnyToType[float64](a)
		bf, _ := utils.AnyToType[float64](b)
		if f := floatOp(op, af, bf); !math.IsNaN(f) {
			out.values[i] = f
		}
	}

	return out, nil
}

// integerOp returns nil, an integer NA, on overflow and for a zero modulus.
func integerOp(op token.Token, a, b int64) any {
	switch op {
	case token.ADD:
		sum := a + b
		if (a^sum)&(b^sum) < 0 {
			return nil
		}
		return sum
	case token.SUB:
		diff := a - b
		if (a^b)&(a^diff) < 0 {
			return nil
		}
		return diff
	case token.MUL:
		if a == 0 || b == 0 {
			return int64(0)
		}
		product := a * b
		if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return nil
		}
		return product
	case token.REM:
		if b == 0 {
			return nil
		}
		r := a % b
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r
	}
	return nil
}

// floatOp uses floored modulo, so the result has the sign of the divisor.
func floatOp(op token.Token, a, b float64) float64 {
	switch op {
	case token.ADD:
		return a + b
	case token.SUB:
		return a - b
	case token.MUL:
		return a * b
	case token.QUO:
		return a / b
	case token.XOR:
		return math.Pow(a, b)
	case token.REM:
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r
	}
	return math.NaN()
}

func compare(op token.Token, x, y vector) (vector, error) {
	xs, ys := x.typ == models.ValueTypeString, y.typ == models.ValueTypeString
	if xs != ys && !isNA(x.typ) && !isNA(y.typ) {
		return vector{}, errors.NewDelegatedError("cannot compare %s with %s", x.typ, y.typ)
	}

	out := vector{typ: models.ValueTypeLogical, values: make([]any, broadcastLen(x, y))}
	for i := range out.values {
		a, b := x.at(i), y.at(i)
		if models.IsMissing(a) || models.IsMissing(b) {
			continue
		}

		var c int
		if xs || ys {
			c = strings.Compare(a.(string), b.(string))
		} else {
			af, _ := toNumber(a)
			bf, _ := toNumber(b)
			switch {
			case af < bf:
				c = -1
			case af > bf:
				c = 1
			}
		}

		switch op {
		case token.EQL:
			out.values[i] = c == 0
		case token.NEQ:
			out.values[i] = c != 0
		case token.LSS:
			out.values[i] = c < 0
		case token.LEQ:
			out.values[i] = c <= 0
		case token.GTR:
			out.values[i] = c > 0
		case token.GEQ:
			out.values[i] = c >= 0
		}
	}
	return out, nil
}

// logical is vectorized three-valued logic: FALSE && NA is FALSE, TRUE || NA is TRUE.
func logical(op token.Token, x, y vector) (vector, error) {
	if x.typ == models.ValueTypeString || y.typ == models.ValueTypeString {
		return vector{}, errors.NewDelegatedError("operations are possible only for numeric or logical types, got %s %s %s", x.typ, op, y.typ)
	}

	and := op == token.LAND || op == token.AND
	out := vector{typ: models.ValueTypeLogical, values: make([]any, broadcastLen(x, y))}
	for i := range out.values {
		a, aok := truthy(x.at(i))
		b, bok := truthy(y.at(i))

		switch {
		case and && ((aok && !a) || (bok && !b)):
			out.values[i] = false
		case !and && ((aok && a) || (bok && b)):
			out.values[i] = true
		case aok && bok:
			out.values[i] = and
		}
	}
	return out, nil
}

// truthy converts a logical or numeric cell to a bool; false when missing.
func truthy(v any) (bool, bool) {
	if models.IsMissing(v) {
		return false, false
	}
	if b, ok := v.(bool); ok {
		return b, true
	}
	f, ok := toNumber(v)
	if !ok {
		return false, false
	}
	return f != 0, true
}

func toNumber(v any) (float64, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	f, err := utils.AnyToType[float64](v)
	return f, err == nil
}
