package parser

import (
	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/lexer"
)

// stmt := varDecl | ifStmt | whileStmt | assignStmt | exprStmt
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case lexer.KwVar, lexer.KwConst:
		return p.parseVarDecl()
	case lexer.KwIf:
		return p.parseIfStmt()
	case lexer.KwWhile:
		return p.parseWhileStmt()
	case lexer.Identifier:
		// Two-token lookahead: IDENT followed by '=' or '+=' is an
		// assignment, anything else is an expression statement.
		if next := p.peekAt(1).Kind; next == lexer.Assign || next == lexer.PlusEq {
			return p.parseAssign()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// varDecl := ('var' | 'const') IDENT (':' typeRef)? ('=' expr)?
func (p *Parser) parseVarDecl() *ast.VarDecl {
	kw := p.advance()
	isConst := kw.Kind == lexer.KwConst
	name := p.expect(lexer.Identifier)

	var annotated ast.TypeRef
	if p.at(lexer.Colon) {
		p.advance()
		annotated = p.parseTypeRef()
	}

	var init ast.Expr
	end := name.Span
	if annotated != nil {
		end = annotated.Span()
	}
	if p.at(lexer.Assign) {
		p.advance()
		init = p.parseExpr()
		end = init.Span()
	}

	return ast.NewVarDecl(name.Lexeme, name.Span, annotated, init, isConst, lexer.Merge(kw.Span, end))
}

// assignStmt := IDENT ('=' | '+=') expr
//
// `a += e` desugars at parse time to `a = a + e` by synthesizing a
// Binary{Add, Ident{a}, e} node.
func (p *Parser) parseAssign() *ast.Assign {
	name := p.expect(lexer.Identifier)
	op := p.advance()
	rhs := p.parseExpr()

	value := rhs
	if op.Kind == lexer.PlusEq {
		lhs := ast.NewIdent(name.Lexeme, name.Span)
		value = ast.NewBinary(ast.Add, lhs, rhs, lexer.Merge(name.Span, rhs.Span()))
	}

	return ast.NewAssign(name.Lexeme, name.Span, value, lexer.Merge(name.Span, rhs.Span()))
}

// exprStmt := expr
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpr()
	return ast.NewExprStmt(expr, expr.Span())
}

// ifStmt := 'if' '(' expr ')' block ('elif' '(' expr ')' block)* ('else' block)?
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(lexer.KwIf).Span
	branches := []*ast.IfBranch{p.parseIfBranch()}

	for p.at(lexer.KwElif) {
		p.advance()
		p.expect(lexer.LParen)
		cond := p.parseExpr()
		p.expect(lexer.RParen)
		body := p.parseBlock()
		branches = append(branches, ast.NewIfBranch(cond, body, lexer.Merge(cond.Span(), body.Span())))
	}

	var elseBlock *ast.Block
	end := branches[len(branches)-1].Span()
	if p.at(lexer.KwElse) {
		p.advance()
		elseBlock = p.parseBlock()
		end = elseBlock.Span()
	}

	return ast.NewIfStmt(branches, elseBlock, lexer.Merge(start, end))
}

func (p *Parser) parseIfBranch() *ast.IfBranch {
	p.expect(lexer.LParen)
	cond := p.parseExpr()
	p.expect(lexer.RParen)
	body := p.parseBlock()
	return ast.NewIfBranch(cond, body, lexer.Merge(cond.Span(), body.Span()))
}

// whileStmt := 'while' '(' expr ')' block
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.expect(lexer.KwWhile).Span
	p.expect(lexer.LParen)
	cond := p.parseExpr()
	p.expect(lexer.RParen)
	body := p.parseBlock()
	return ast.NewWhileStmt(cond, body, lexer.Merge(start, body.Span()))
}
