package parser

import (
	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/lexer"
)

// binOpInfo maps an operator token kind to its BinOp and precedence
//. All binary
// operators are left-associative.
var binOpInfo = map[lexer.Kind]struct {
	op   ast.BinOp
	prec int
}{
	lexer.OrOr:    {ast.Or, 10},
	lexer.AndAnd:  {ast.And, 20},
	lexer.Eq:      {ast.Eq, 30},
	lexer.NotEq:   {ast.Ne, 30},
	lexer.Lt:      {ast.Lt, 40},
	lexer.Le:      {ast.Le, 40},
	lexer.Gt:      {ast.Gt, 40},
	lexer.Ge:      {ast.Ge, 40},
	lexer.Plus:    {ast.Add, 50},
	lexer.Minus:   {ast.Sub, 50},
	lexer.Star:    {ast.Mul, 60},
	lexer.Slash:   {ast.Div, 60},
	lexer.Percent: {ast.Mod, 60},
	lexer.Caret:   {ast.Pow, 70},
}

// expr := binary(minPrec=1)
func (p *Parser) parseExpr() ast.Expr { return p.parseBinary(1) }

// binary(minPrec) is the standard precedence-climbing loop: an operator is
// consumed when its precedence is at least minPrec, and the recursive
// descent into the right-hand side uses prec+1 so that same-precedence
// operators are left-associative.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		info, ok := binOpInfo[p.cur().Kind]
		if !ok || info.prec < minPrec {
			break
		}
		p.advance()
		right := p.parseBinary(info.prec + 1)
		left = ast.NewBinary(info.op, left, right, lexer.Merge(left.Span(), right.Span()))
	}
	return left
}

// unary := '!' unary | postfix
func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.Bang) {
		tok := p.advance()
		operand := p.parseUnary()
		return ast.NewUnary(ast.Not, operand, lexer.Merge(tok.Span, operand.Span()))
	}
	return p.parsePostfix()
}

// postfix := primary ('.' IDENT '(' arglist? ')')*
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for p.at(lexer.Dot) {
		p.advance()
		method := p.expect(lexer.Identifier)
		p.expect(lexer.LParen)
		args := p.parseArgList()
		end := p.expect(lexer.RParen).Span
		expr = ast.NewMethodCall(expr, method.Lexeme, method.Span, args, lexer.Merge(expr.Span(), end))
	}
	return expr
}

// primary := literal | IDENT ('(' arglist? ')')? | '(' expr ')'
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IntLiteral:
		p.advance()
		return ast.NewIntLit(tok.IntValue, tok.Span)
	case lexer.FloatLiteral:
		p.advance()
		return ast.NewFloatLit(tok.FloatValue, tok.Span)
	case lexer.CharLiteral:
		p.advance()
		return ast.NewCharLit(tok.CharValue, tok.Span)
	case lexer.StringLit:
		p.advance()
		return ast.NewStringLit(tok.StringValue, tok.Span)
	case lexer.KwTrue:
		p.advance()
		return ast.NewBoolLit(true, tok.Span)
	case lexer.KwFalse:
		p.advance()
		return ast.NewBoolLit(false, tok.Span)
	case lexer.Identifier:
		p.advance()
		if p.at(lexer.LParen) {
			p.advance()
			args := p.parseArgList()
			end := p.expect(lexer.RParen).Span
			return ast.NewCall(tok.Lexeme, tok.Span, args, lexer.Merge(tok.Span, end))
		}
		return ast.NewIdent(tok.Lexeme, tok.Span)
	case lexer.LParen:
		p.advance()
		inner := p.parseExpr()
		end := p.expect(lexer.RParen).Span
		// Parenthesized sub-expressions adopt the span covering the outer
		// parentheses.
		inner.SetSpan(lexer.Merge(tok.Span, end))
		return inner
	default:
		p.expectedExpr()
		return nil
	}
}

// arglist := expr (',' expr)*
func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.at(lexer.RParen) {
		return args
	}
	args = append(args, p.parseExpr())
	for p.at(lexer.Comma) {
		p.advance()
		args = append(args, p.parseExpr())
	}
	return args
}
