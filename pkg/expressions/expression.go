// Package expressions parses and evaluates the row expressions used by the
// mutate step.
//
// The language is a small vectorized calculator over frame columns:
//
//	x + 1                  arithmetic, integer op integer stays integer for + - * %
//	y / 2, x ^ 2           division and power always give doubles
//	x > 3 && !is_na(y)     comparisons and three-valued logic
//	round(x, 1)            functions from the action registry
//	col("my column")       columns whose names are not identifiers
//	TRUE, FALSE, NA        literals
//
// Evaluation follows R semantics for missing values: NA propagates through
// arithmetic and comparisons, FALSE && NA is FALSE and TRUE || NA is TRUE.
package expressions

import (
	"go/ast"
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
)

// Expression is a named, parsed row expression. Text is the canonical printed
// form of the parse tree and parses back to the same tree.
type Expression struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Text string `json:"expression" yaml:"expression" validate:"required"`
	root ast.Expr
}

// Parse parses text. Parse failures are delegated errors.
func Parse(text string) (ast.Expr, error) {
	root, err := parse(text)
	if err != nil {
		return nil, errors.NewDelegatedError("could not parse expression '%s': %w", strings.TrimSpace(text), err)
	}
	return root, nil
}

// New parses text and names the expression. An empty name is replaced by the
// canonical form of the expression, so "x+1" is named "x + 1".
func New(name, text string) (*Expression, error) {
	root, err := Parse(text)
	if err != nil {
		return nil, errors.WrapStepError(err).AddColumn(name)
	}

	canonical := Format(root)
	if name == "" {
		name = canonical
	}

	return &Expression{Name: name, Text: canonical, root: root}, nil
}

// Must is New for literals in tests and examples.
func Must(name, text string) *Expression {
	e, err := New(name, text)
	if err != nil {
		panic(err)
	}
	return e
}

// References returns the column names the expression reads, in first-use order.
func (e *Expression) References() []string {
	seen := map[string]bool{}
	refs := []string{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}

	ast.Inspect(e.root, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			if name, ok := columnCall(node); ok {
				add(name)
				return false
			}
			// skip the function name
			for _, arg := range node.Args {
				for _, ref := range (&Expression{root: arg}).References() {
					add(ref)
				}
			}
			return false
		case *ast.Ident:
			if _, ok := literals[node.Name]; !ok {
				add(node.Name)
			}
		}
		return true
	})

	return refs
}
