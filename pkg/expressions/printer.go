package expressions

import (
	"go/ast"
	"go/token"
	"strings"
)

// Format prints a parse tree in canonical form: binary operators spaced,
// call arguments comma separated and parentheses kept where they were written.
// The output parses back to the same tree.
func Format(root ast.Expr) string {
	var sb strings.Builder
	writeExpr(&sb, root)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e ast.Expr) {
	switch node := e.(type) {
	case *ast.Ident:
		sb.WriteString(node.Name)
	case *ast.BasicLit:
		sb.WriteString(node.Value)
	case *ast.ParenExpr:
		sb.WriteByte('(')
		writeExpr(sb, node.X)
		sb.WriteByte(')')
	case *ast.UnaryExpr:
		sb.WriteString(node.Op.String())
		// "- -x" must not print as "--x", which scans as a decrement
		if inner, ok := node.X.(*ast.UnaryExpr); ok && mergesWith(node.Op, inner.Op) {
			sb.WriteByte(' ')
		}
		writeExpr(sb, node.X)
	case *ast.BinaryExpr:
		writeExpr(sb, node.X)
		sb.WriteByte(' ')
		sb.WriteString(node.Op.String())
		sb.WriteByte(' ')
		writeExpr(sb, node.Y)
	case *ast.CallExpr:
		writeExpr(sb, node.Fun)
		sb.WriteByte('(')
		for i, arg := range node.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, arg)
		}
		sb.WriteByte(')')
	}
}

func mergesWith(outer, inner token.Token) bool {
	return outer == inner && (outer == token.SUB || outer == token.ADD)
}
