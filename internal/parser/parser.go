// Package parser implements Coal's recursive-descent parser with
// Pratt-style precedence climbing for expressions. It follows
// the index-into-token-slice cursor shape of
// malphas-lang/internal/parser/parser.go: one or two tokens of lookahead,
// never backtracking across statements.
package parser

import (
	"fmt"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/diag"
	"github.com/coal-lang/coal/internal/lexer"
)

// Parser holds the token cursor. Coal fails fast: parsing stops and returns
// at the first syntax error.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New creates a parser over a complete token sequence (terminated by EOF).
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses a complete token sequence into a Program, or returns the
// first syntax diagnostic encountered.
func Parse(toks []lexer.Token) (prog *ast.Program, err *diag.Diagnostic) {
	p := New(toks)
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*parseError)
			if !ok {
				panic(r)
			}
			prog = nil
			err = pe.d
		}
	}()
	return p.parseProgram(), nil
}

// parseError is the panic/recover sentinel used to unwind out of the
// recursive-descent call stack on the first syntax error, mirroring the
// fail-fast, single-diagnostic contract without threading an error return
// through every parse* method.
type parseError struct{ d *diag.Diagnostic }

func (p *Parser) fail(code diag.Code, span lexer.Span, msg string) {
	panic(&parseError{d: diag.New(diag.StageParser, code, span.ToDiag(), msg)})
}

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(kind lexer.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it has the given kind, otherwise
// raises ExpectedToken.
func (p *Parser) expect(kind lexer.Kind) lexer.Token {
	if !p.at(kind) {
		got := p.cur()
		p.fail(diag.CodeExpectedToken, got.Span, fmt.Sprintf("expected %s, got %s %q", kind, got.Kind, got.Lexeme))
	}
	return p.advance()
}

func (p *Parser) expectedExpr() {
	got := p.cur()
	p.fail(diag.CodeExpectedExpr, got.Span, fmt.Sprintf("expected expression, got %s %q", got.Kind, got.Lexeme))
}

// parseProgram := fnDecl*
func (p *Parser) parseProgram() *ast.Program {
	start := p.cur().Span
	var decls []ast.Decl
	for !p.at(lexer.EOF) {
		decls = append(decls, p.parseFnDecl())
	}
	end := p.cur().Span
	return ast.NewProgram(decls, lexer.Merge(start, end))
}

// fnDecl := 'fn' IDENT '(' params ')' (':' typeRef)? block
//
// Return type annotations after ')' are accepted syntactically but ignored
// by the analyzer and emitter: `fn name() : int { ... }`.
func (p *Parser) parseFnDecl() *ast.FnDecl {
	start := p.expect(lexer.KwFn).Span
	name := p.expect(lexer.Identifier)
	p.expect(lexer.LParen)
	params := p.parseParams()
	p.expect(lexer.RParen)

	var returnType ast.TypeRef
	if p.at(lexer.Colon) {
		p.advance()
		returnType = p.parseTypeRef()
	}

	body := p.parseBlock()
	return ast.NewFnDecl(name.Lexeme, name.Span, params, returnType, body, lexer.Merge(start, body.Span()))
}

// params := (IDENT ':' typeRef (',' IDENT ':' typeRef)*)?
//
// Returns nil for an empty list. Any parameters written are recorded on the
// FnDecl, but the analyzer and emitter never read them.
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.at(lexer.RParen) {
		return params
	}
	for {
		name := p.expect(lexer.Identifier)
		p.expect(lexer.Colon)
		typ := p.parseTypeRef()
		params = append(params, ast.NewParam(name.Lexeme, typ, lexer.Merge(name.Span, typ.Span())))
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return params
}

// typeRef := 'int' | 'float' | 'bool' | 'char' | 'string' | IDENT
func (p *Parser) parseTypeRef() ast.TypeRef {
	switch p.cur().Kind {
	case lexer.KwInt, lexer.KwFloat, lexer.KwBool, lexer.KwChar, lexer.KwString, lexer.Identifier:
		t := p.advance()
		return ast.NewNamedType(t.Lexeme, t.Span)
	default:
		got := p.cur()
		p.fail(diag.CodeExpectedToken, got.Span, fmt.Sprintf("expected a type name, got %s %q", got.Kind, got.Lexeme))
		return nil
	}
}

// block := '{' stmt* '}'
func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(lexer.LBrace).Span
	var stmts []ast.Stmt
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(lexer.RBrace).Span
	return ast.NewBlock(stmts, lexer.Merge(start, end))
}
