package expressions

import (
	"go/ast"
	"go/token"
	"strconv"

	_ "github.com/Ramsey-B/fern/pkg/actions"
	"github.com/Ramsey-B/fern/pkg/actions/registry"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
)

var literals = map[string]vector{
	"TRUE":  {typ: models.ValueTypeLogical, values: []any{true}},
	"FALSE": {typ: models.ValueTypeLogical, values: []any{false}},
	"NA":    {typ: models.ValueTypeUnknown, values: []any{nil}},
}

// vector is an intermediate result: one value per row, or a single value
// that broadcasts to every row.
type vector struct {
	typ    models.ValueType
	values []any
}

func (v vector) at(i int) any {
	if len(v.values) == 1 {
		return v.values[0]
	}
	return v.values[i]
}

func (v vector) isScalar() bool {
	return len(v.values) == 1
}

type evaluator struct {
	data *frame.Frame
}

// Evaluate computes the expression against data and returns a column named
// after the expression with one cell per row.
func (e *Expression) Evaluate(data *frame.Frame) (*frame.Column, error) {
	root := e.root
	if root == nil {
		var err error
		if root, err = Parse(e.Text); err != nil {
			return nil, errors.WrapStepError(err).AddColumn(e.Name)
		}
	}

	ev := &evaluator{data: data}
	result, err := ev.eval(root)
	if err != nil {
		return nil, errors.WrapStepError(err).AddColumn(e.Name)
	}

	n := data.NumRows()
	values := make([]any, n)
	for i := range values {
		values[i] = result.at(i)
	}

	t := result.typ
	if t == models.ValueTypeUnknown {
		t = models.ValueTypeLogical
	}

	col, err := frame.NewColumn(e.Name, t, values)
	if err != nil {
		return nil, errors.NewDelegatedError("%w", err).AddColumn(e.Name)
	}
	return col, nil
}

func (ev *evaluator) eval(node ast.Expr) (vector, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return ev.eval(n.X)
	case *ast.BasicLit:
		return literal(n)
	case *ast.Ident:
		if v, ok := literals[n.Name]; ok {
			return v, nil
		}
		return ev.column(n.Name)
	case *ast.UnaryExpr:
		x, err := ev.eval(n.X)
		if err != nil {
			return vector{}, err
		}
		return unary(n.Op, x)
	case *ast.BinaryExpr:
		x, err := ev.eval(n.X)
		if err != nil {
			return vector{}, err
		}
		y, err := ev.eval(n.Y)
		if err != nil {
			return vector{}, err
		}
		return binary(n.Op, x, y)
	case *ast.CallExpr:
		return ev.call(n)
	}
	return vector{}, errors.NewDelegatedError("unsupported expression %T", node)
}

func (ev *evaluator) column(name string) (vector, error) {
	col, ok := ev.data.Column(name)
	if !ok {
		return vector{}, errors.NewDelegatedError("object '%s' not found", name)
	}
	return vector{typ: col.Type, values: col.Values}, nil
}

func literal(lit *ast.BasicLit) (vector, error) {
	switch lit.Kind {
	case token.INT:
		if i, err := strconv.ParseInt(lit.Value, 0, 64); err == nil {
			return vector{typ: models.ValueTypeInteger, values: []any{i}}, nil
		}
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return vector{}, errors.NewDelegatedError("invalid number %s", lit.Value)
		}
		return vector{typ: models.ValueTypeDouble, values: []any{f}}, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return vector{}, errors.NewDelegatedError("invalid number %s", lit.Value)
		}
		return vector{typ: models.ValueTypeDouble, values: []any{f}}, nil
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return vector{}, errors.NewDelegatedError("invalid string %s", lit.Value)
		}
		return vector{typ: models.ValueTypeString, values: []any{s}}, nil
	}
	return vector{}, errors.NewDelegatedError("unsupported literal %s", lit.Value)
}

// columnCall recognizes col("name").
func columnCall(call *ast.CallExpr) (string, bool) {
	fun, ok := call.Fun.(*ast.Ident)
	if !ok || fun.Name != "col" || len(call.Args) != 1 {
		return "", false
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	name, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return name, true
}

func (ev *evaluator) call(call *ast.CallExpr) (vector, error) {
	fun, ok := call.Fun.(*ast.Ident)
	if !ok {
		return vector{}, errors.NewDelegatedError("unsupported function %T", call.Fun)
	}

	if fun.Name == "col" {
		name, ok := columnCall(call)
		if !ok {
			return vector{}, errors.NewDelegatedError("col() takes a single quoted column name").AddAction("col")
		}
		return ev.column(name)
	}

	args := make([]vector, len(call.Args))
	inputTypes := make([]models.ValueType, len(call.Args))
	length := 1
	for i, arg := range call.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return vector{}, err
		}
		args[i] = v
		inputTypes[i] = v.typ
		if !v.isScalar() {
			length = len(v.values)
		}
	}

	action, err := registry.GetAction(fun.Name, inputTypes...)
	if err != nil {
		return vector{}, err
	}

	values := make([]any, length)
	row := make([]any, len(args))
	for i := range values {
		for j, arg := range args {
			row[j] = arg.at(i)
		}
		if values[i], err = action.Execute(row...); err != nil {
			return vector{}, err
		}
	}

	col, err := frame.NewColumn(fun.Name, action.GetOutputType(), values)
	if err != nil {
		return vector{}, errors.NewDelegatedError("%w", err).AddAction(fun.Name)
	}
	return vector{typ: col.Type, values: col.Values}, nil
}
