// Package selectors resolves column selector terms against a VarInfos table.
//
// A term is a column name, a quoted column name, a selector function or the
// negation of either:
//
//	x, "my col", all_numeric(), all_predictors(), starts_with("x_"),
//	has_type("integer"), where("role == 'predictor' && type == 'double'"), -y
//
// Terms apply in order. Positive terms add columns in table order, negative
// terms remove them. When the first term is negative the selection starts
// from every column.
package selectors

import (
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/models"
)

type matcher func(info models.VarInfo) (bool, error)

// Selector is one parsed term.
type Selector struct {
	Text    string
	Negated bool
	name    string
	match   matcher
}

// Parse parses a single selector term. Malformed terms are usage errors.
func Parse(text string) (*Selector, error) {
	node, err := parser.ParseExpr(text)
	if err != nil {
		return nil, errors.NewUsageError("invalid selector '%s': %v", text, err)
	}

	s := &Selector{Text: strings.TrimSpace(text)}
	if unary, ok := node.(*ast.UnaryExpr); ok && unary.Op == token.SUB {
		s.Negated = true
		node = unary.X
	}
	if paren, ok := node.(*ast.ParenExpr); ok {
		node = paren.X
	}

	switch n := node.(type) {
	case *ast.Ident:
		s.name = n.Name
	case *ast.BasicLit:
		if n.Kind != token.STRING {
			return nil, errors.NewUsageError("invalid selector '%s': expected a column name", text)
		}
		s.name, _ = strconv.Unquote(n.Value)
	case *ast.CallExpr:
		if s.match, err = parseCall(n); err != nil {
			return nil, err
		}
	default:
		return nil, errors.NewUsageError("invalid selector '%s'", text)
	}

	return s, nil
}

// MustParse is Parse for literals.
func MustParse(text string) *Selector {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Select returns the table rows the selector matches, in table order.
func (s *Selector) Select(info models.VarInfos) ([]string, error) {
	if s.match == nil {
		if _, ok := info.Find(s.name); !ok {
			return nil, errors.NewUsageError("can't select column '%s': it does not exist", s.name).AddColumn(s.name)
		}
		return []string{s.name}, nil
	}

	selected := []string{}
	for _, row := range info {
		ok, err := s.match(row)
		if err != nil {
			return nil, errors.NewUsageError("selector '%s': %v", s.Text, err)
		}
		if ok {
			selected = append(selected, row.Variable)
		}
	}
	return selected, nil
}

// Resolve parses and applies terms in order, returning the selected column
// names.
func Resolve(terms []string, info models.VarInfos) ([]string, error) {
	selected := []string{}
	for i, term := range terms {
		s, err := Parse(term)
		if err != nil {
			return nil, err
		}

		if i == 0 && s.Negated {
			selected = info.Names()
		}

		names, err := s.Select(info)
		if err != nil {
			return nil, err
		}

		if s.Negated {
			selected = ectolinq.Filter(selected, func(name string) bool {
				return !ectolinq.Contains(names, name)
			})
			continue
		}
		for _, name := range names {
			if !ectolinq.Contains(selected, name) {
				selected = append(selected, name)
			}
		}
	}

	return selected, nil
}

func stringArgs(call *ast.CallExpr) ([]string, error) {
	args := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		lit, ok := arg.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return nil, errors.NewUsageError("selector arguments must be quoted strings, got %s", describeArg(arg))
		}
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, errors.NewUsageError("invalid string %s", lit.Value)
		}
		args = append(args, s)
	}
	return args, nil
}

func describeArg(node ast.Expr) string {
	if lit, ok := node.(*ast.BasicLit); ok {
		return lit.Value
	}
	if ident, ok := node.(*ast.Ident); ok {
		return ident.Name
	}
	return "an expression"
}

func parseCall(call *ast.CallExpr) (matcher, error) {
	fun, ok := call.Fun.(*ast.Ident)
	if !ok {
		return nil, errors.NewUsageError("unknown selector")
	}

	args, err := stringArgs(call)
	if err != nil {
		return nil, err
	}

	fixed := func(fn func(info models.VarInfo) bool) (matcher, error) {
		if len(args) != 0 {
			return nil, errors.NewUsageError("%s() takes no arguments", fun.Name)
		}
		return func(info models.VarInfo) (bool, error) { return fn(info), nil }, nil
	}
	oneOf := func(fn func(info models.VarInfo, arg string) bool) (matcher, error) {
		if len(args) == 0 {
			return nil, errors.NewUsageError("%s() needs at least one argument", fun.Name)
		}
		return func(info models.VarInfo) (bool, error) {
			return ectolinq.Contains(ectolinq.Map(args, func(arg string) bool { return fn(info, arg) }), true), nil
		}, nil
	}

	switch fun.Name {
	case "everything":
		return fixed(func(models.VarInfo) bool { return true })
	case "all_numeric":
		return fixed(isNumeric)
	case "all_nominal":
		return fixed(isNominal)
	case "all_predictors":
		return fixed(isPredictor)
	case "all_outcomes":
		return fixed(func(info models.VarInfo) bool { return info.Role == models.RoleOutcome })
	case "all_numeric_predictors":
		return fixed(func(info models.VarInfo) bool { return isNumeric(info) && isPredictor(info) })
	case "all_nominal_predictors":
		return fixed(func(info models.VarInfo) bool { return isNominal(info) && isPredictor(info) })
	case "has_role":
		for _, arg := range args {
			if _, err := models.ParseRole(arg); err != nil {
				return nil, errors.NewUsageError("%v", err)
			}
		}
		return oneOf(func(info models.VarInfo, arg string) bool { return string(info.Role) == arg })
	case "has_type":
		for _, arg := range args {
			if _, err := models.ParseValueType(arg); err != nil {
				return nil, errors.NewUsageError("%v", err)
			}
		}
		return oneOf(func(info models.VarInfo, arg string) bool { return string(info.Type) == arg })
	case "starts_with":
		return oneOf(func(info models.VarInfo, arg string) bool { return strings.HasPrefix(info.Variable, arg) })
	case "ends_with":
		return oneOf(func(info models.VarInfo, arg string) bool { return strings.HasSuffix(info.Variable, arg) })
	case "contains":
		return oneOf(func(info models.VarInfo, arg string) bool { return strings.Contains(info.Variable, arg) })
	case "matches":
		if len(args) != 1 {
			return nil, errors.NewUsageError("matches() takes one pattern")
		}
		re, err := regexp.Compile(args[0])
		if err != nil {
			return nil, errors.NewUsageError("invalid pattern %q: %v", args[0], err)
		}
		return func(info models.VarInfo) (bool, error) { return re.MatchString(info.Variable), nil }, nil
	case "where":
		if len(args) != 1 {
			return nil, errors.NewUsageError("where() takes one JMESPath expression")
		}
		filter, err := compileVarFilter(args[0])
		if err != nil {
			return nil, errors.NewUsageError("invalid expression %q: %v", args[0], err)
		}
		return filter.Match, nil
	}

	return nil, errors.NewUsageError("unknown selector '%s()'", fun.Name)
}

func isNumeric(info models.VarInfo) bool {
	return info.Type.IsNumeric()
}

func isNominal(info models.VarInfo) bool {
	return info.Type == models.ValueTypeString || info.Type == models.ValueTypeLogical
}

func isPredictor(info models.VarInfo) bool {
	return info.Role == models.RolePredictor
}
