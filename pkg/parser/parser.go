// Package parser implements a small recursive-descent, operator-
// precedence parser that turns a token stream from pkg/lexer into the
// pkg/ast tree the semantic analyzer consumes. It accepts exactly
// arithmetic and logical expressions, list literals, if/then/else,
// lambdas, calls and assignment — nothing more.
package parser

import (
	"fmt"

	"odds/pkg/ast"
	"odds/pkg/lexer"
)

// ParseError reports a syntax error with its source position.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// Parser consumes a pre-scanned token slice. Tokenizing up front (rather
// than streaming from the lexer) makes the one piece of backtracking
// the grammar needs — disambiguating `(x) -> ...` lambdas from
// parenthesized expressions — a matter of saving and restoring an
// index into the slice.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse scans and parses a complete Odds program.
func Parse(source string) (*ast.Program, error) {
	lx := lexer.New(source)
	var toks []lexer.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	p := &Parser{tokens: toks}
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) atEnd() bool       { return p.cur().Kind == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if !p.check(k) {
		t := p.cur()
		return t, &ParseError{Message: fmt.Sprintf("expected %s, found %q", what, t.Literal), Line: t.Line, Column: t.Column}
	}
	return p.advance(), nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	var stmts []ast.Statement
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Statements: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	if _, err := p.expect(lexer.KwDo, "'do'"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.DoStmt(expr), nil
}

// parseStatementList parses the `do`-statements that make up a
// function body, stopping when it sees `return`.
func (p *Parser) parseStatementList() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.check(lexer.KwDo) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	if p.check(lexer.Ident) && p.tokens[p.pos+1].Kind == lexer.Assign {
		name := p.advance().Literal
		p.advance() // '='
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.Asn(name, rhs), nil
	}
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.OrOr) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(left, ast.OpOr, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.AndAnd) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(left, ast.OpAnd, right)
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.EqEq) || p.check(lexer.NotEq) {
		op := ast.OpEq
		if p.cur().Kind == lexer.NotEq {
			op = ast.OpNe
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(left, op, right)
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOperator
		switch p.cur().Kind {
		case lexer.Lt:
			op = ast.OpLt
		case lexer.Le:
			op = ast.OpLe
		case lexer.Gt:
			op = ast.OpGt
		case lexer.Ge:
			op = ast.OpGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(left, op, right)
	}
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.Plus) || p.check(lexer.Minus) {
		op := ast.OpAdd
		if p.cur().Kind == lexer.Minus {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(left, op, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOperator
		switch p.cur().Kind {
		case lexer.Star:
			op = ast.OpMul
		case lexer.Slash:
			op = ast.OpDiv
		case lexer.Percent:
			op = ast.OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(left, op, right)
	}
}

// parsePower is right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2).
func (p *Parser) parsePower() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.StarStar) {
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return ast.Bin(left, ast.OpPow, right), nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur().Kind {
	case lexer.Bang:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Un(ast.OpNot, operand), nil
	case lexer.Minus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Un(ast.OpNeg, operand), nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.LParen) {
		p.advance()
		var args []ast.Expression
		if !p.check(lexer.RParen) {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.check(lexer.Comma) {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		expr = ast.CallExpr(expr, args...)
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.Number:
		p.advance()
		var v float64
		fmt.Sscanf(t.Literal, "%g", &v)
		return ast.Num(v), nil
	case lexer.String:
		p.advance()
		return ast.Str(t.Literal), nil
	case lexer.Boolean:
		p.advance()
		return ast.Bool(t.Literal == "true"), nil
	case lexer.KwVoid:
		p.advance()
		return ast.Void(), nil
	case lexer.Ident:
		p.advance()
		return ast.ID(t.Literal), nil
	case lexer.KwIf:
		return p.parseIf()
	case lexer.LBracket:
		return p.parseList()
	case lexer.LParen:
		if params, ok, err := p.tryParseLambdaParams(); err != nil {
			return nil, err
		} else if ok {
			return p.parseLambdaBody(params)
		}
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &ParseError{Message: fmt.Sprintf("unexpected token %q", t.Literal), Line: t.Line, Column: t.Column}
	}
}

func (p *Parser) parseIf() (ast.Expression, error) {
	p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwThen, "'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwElse, "'else'"); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.IfExpr(cond, then, els), nil
}

func (p *Parser) parseList() (ast.Expression, error) {
	p.advance() // '['
	var elems []ast.Expression
	if !p.check(lexer.RBracket) {
		for {
			el, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if !p.check(lexer.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
		return nil, err
	}
	return ast.Lst(elems...), nil
}

// tryParseLambdaParams attempts to read `( ident, ident, ... ) ->` from
// the current position without consuming input on failure.
func (p *Parser) tryParseLambdaParams() ([]string, bool, error) {
	save := p.pos
	p.advance() // '('
	var params []string
	if !p.check(lexer.RParen) {
		for {
			if !p.check(lexer.Ident) {
				p.pos = save
				return nil, false, nil
			}
			params = append(params, p.advance().Literal)
			if !p.check(lexer.Comma) {
				break
			}
			p.advance()
		}
	}
	if !p.check(lexer.RParen) {
		p.pos = save
		return nil, false, nil
	}
	p.advance() // ')'
	if !p.check(lexer.Arrow) {
		p.pos = save
		return nil, false, nil
	}
	p.advance() // '->'
	return params, true, nil
}

func (p *Parser) parseLambdaBody(params []string) (ast.Expression, error) {
	body, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwReturn, "'return'"); err != nil {
		return nil, err
	}
	ret, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.Anon(params, body, ret), nil
}
