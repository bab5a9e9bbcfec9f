package expressions

import (
	"fmt"
	"go/ast"
	"go/scanner"
	"go/token"
	"strings"
)

// Operator precedence, loosest first. '^' is right associative and binds
// tighter than unary minus, so -x^2 is -(x^2). '!' binds looser than the
// comparisons, so !x == y is !(x == y).
const (
	precOr      = 1
	precAnd     = 2
	precCompare = 3
	precAdd     = 4
	precMul     = 5
	precUnary   = 6
	precPow     = 7
)

func binaryPrec(tok token.Token) int {
	switch tok {
	case token.LOR, token.OR:
		return precOr
	case token.LAND, token.AND:
		return precAnd
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return precCompare
	case token.ADD, token.SUB:
		return precAdd
	case token.MUL, token.QUO, token.REM:
		return precMul
	case token.XOR:
		return precPow
	}
	return 0
}

type item struct {
	pos int
	tok token.Token
	lit string
}

type parser struct {
	src   string
	items []item
	i     int
}

// parse turns expression text into a go/ast tree using Go's tokenizer with
// the operator precedence above.
func parse(src string) (ast.Expr, error) {
	p := &parser{src: src}
	if err := p.scan(); err != nil {
		return nil, err
	}

	expr, err := p.parseExpr(precOr)
	if err != nil {
		return nil, err
	}

	if next := p.peek(); next.tok != token.EOF {
		return nil, p.errorf(next, "unexpected %s", describe(next))
	}
	return expr, nil
}

func (p *parser) scan() error {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(p.src))

	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, []byte(p.src), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)

	for {
		pos, tok, lit := s.Scan()
		// the scanner inserts a semicolon at a line end
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		p.items = append(p.items, item{pos: file.Offset(pos), tok: tok, lit: lit})
		if tok == token.EOF {
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("column %d: %s", errs[0].Pos.Column, errs[0].Msg)
	}
	return nil
}

func (p *parser) peek() item {
	return p.items[p.i]
}

func (p *parser) next() item {
	it := p.items[p.i]
	if it.tok != token.EOF {
		p.i++
	}
	return it
}

func (p *parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		prec := binaryPrec(op.tok)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		p.next()

		nextPrec := prec + 1
		if op.tok == token.XOR {
			nextPrec = prec
		}
		right, err := p.parseExpr(nextPrec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{X: left, OpPos: token.Pos(op.pos + 1), Op: op.tok, Y: right}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	op := p.peek()
	switch op.tok {
	case token.SUB, token.ADD, token.NOT:
		p.next()
		operandPrec := precUnary
		if op.tok == token.NOT {
			operandPrec = precCompare
		}
		x, err := p.parseExpr(operandPrec)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{OpPos: token.Pos(op.pos + 1), Op: op.tok, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	it := p.next()
	switch it.tok {
	case token.INT, token.FLOAT, token.STRING:
		return &ast.BasicLit{ValuePos: token.Pos(it.pos + 1), Kind: it.tok, Value: it.lit}, nil
	case token.IDENT:
		ident := &ast.Ident{NamePos: token.Pos(it.pos + 1), Name: it.lit}
		if p.peek().tok != token.LPAREN {
			return ident, nil
		}
		return p.parseCall(ident)
	case token.LPAREN:
		x, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.tok != token.RPAREN {
			return nil, p.errorf(closing, "expected ')', found %s", describe(closing))
		}
		return &ast.ParenExpr{Lparen: token.Pos(it.pos + 1), X: x, Rparen: token.Pos(closing.pos + 1)}, nil
	}
	return nil, p.errorf(it, "unexpected %s", describe(it))
}

func (p *parser) parseCall(fun *ast.Ident) (ast.Expr, error) {
	lparen := p.next()
	call := &ast.CallExpr{Fun: fun, Lparen: token.Pos(lparen.pos + 1)}

	if p.peek().tok == token.RPAREN {
		call.Rparen = token.Pos(p.next().pos + 1)
		return call, nil
	}

	for {
		arg, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		sep := p.next()
		switch sep.tok {
		case token.COMMA:
			continue
		case token.RPAREN:
			call.Rparen = token.Pos(sep.pos + 1)
			return call, nil
		}
		return nil, p.errorf(sep, "expected ',' or ')' in call to %s, found %s", fun.Name, describe(sep))
	}
}

func (p *parser) errorf(at item, format string, args ...any) error {
	return fmt.Errorf("column %d: %s", at.pos+1, fmt.Sprintf(format, args...))
}

func describe(it item) string {
	switch {
	case it.tok == token.EOF:
		return "end of expression"
	case it.lit != "":
		return fmt.Sprintf("'%s'", strings.TrimSpace(it.lit))
	}
	return fmt.Sprintf("'%s'", it.tok)
}
