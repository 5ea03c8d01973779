package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	toks, lexErr := lexer.Lex("t.coal", "fn main() { "+src+"; }")
	require.Nil(t, lexErr)
	prog, parseErr := Parse(toks)
	require.Nil(t, parseErr)
	fn := prog.Decls[0].(*ast.FnDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	return stmt.Expr
}

func TestParse_SubtractionIsLeftAssociative(t *testing.T) {
	e := parseExpr(t, "1 - 2 - 3").(*ast.Binary)
	require.Equal(t, ast.Sub, e.Op)
	left := e.Left.(*ast.Binary)
	assert.Equal(t, ast.Sub, left.Op)
	assert.Equal(t, int64(1), left.Left.(*ast.IntLit).Value)
	assert.Equal(t, int64(2), left.Right.(*ast.IntLit).Value)
	assert.Equal(t, int64(3), e.Right.(*ast.IntLit).Value)
}

func TestParse_PowIsLeftAssociativeAtParseTime(t *testing.T) {
	// 2^3^2 parses as (2^3)^2: Pow's right-hand recursion uses prec+1, so a
	// second '^' at the same precedence closes the outer loop instead of
	// nesting into the right operand.
	e := parseExpr(t, "2 ^ 3 ^ 2").(*ast.Binary)
	require.Equal(t, ast.Pow, e.Op)
	left := e.Left.(*ast.Binary)
	assert.Equal(t, ast.Pow, left.Op)
	assert.Equal(t, int64(2), left.Left.(*ast.IntLit).Value)
	assert.Equal(t, int64(3), left.Right.(*ast.IntLit).Value)
	assert.Equal(t, int64(2), e.Right.(*ast.IntLit).Value)
}

func TestParse_PrecedenceAddMulPow(t *testing.T) {
	// 1 + 2*3^2 == 1 + (2 * (3^2))
	e := parseExpr(t, "1 + 2 * 3 ^ 2").(*ast.Binary)
	require.Equal(t, ast.Add, e.Op)
	assert.Equal(t, int64(1), e.Left.(*ast.IntLit).Value)
	mul := e.Right.(*ast.Binary)
	require.Equal(t, ast.Mul, mul.Op)
	assert.Equal(t, int64(2), mul.Left.(*ast.IntLit).Value)
	pow := mul.Right.(*ast.Binary)
	require.Equal(t, ast.Pow, pow.Op)
	assert.Equal(t, int64(3), pow.Left.(*ast.IntLit).Value)
	assert.Equal(t, int64(2), pow.Right.(*ast.IntLit).Value)
}

func TestParse_LogicalPrecedenceBelowComparison(t *testing.T) {
	// a < b && c < d groups as (a<b) && (c<d), not a < (b && c) < d.
	e := parseExpr(t, "a < b && c < d").(*ast.Binary)
	require.Equal(t, ast.And, e.Op)
	lhs := e.Left.(*ast.Binary)
	rhs := e.Right.(*ast.Binary)
	assert.Equal(t, ast.Lt, lhs.Op)
	assert.Equal(t, ast.Lt, rhs.Op)
}

func TestParse_PlusEqDesugarsToSelfAdd(t *testing.T) {
	toks, lexErr := lexer.Lex("t.coal", "fn main() { var x: int = 1; x += 2; }")
	require.Nil(t, lexErr)
	prog, parseErr := Parse(toks)
	require.Nil(t, parseErr)
	fn := prog.Decls[0].(*ast.FnDecl)
	assign := fn.Body.Stmts[1].(*ast.Assign)
	assert.Equal(t, "x", assign.Name)
	bin := assign.Value.(*ast.Binary)
	require.Equal(t, ast.Add, bin.Op)
	ident := bin.Left.(*ast.Ident)
	assert.Equal(t, "x", ident.Name)
	assert.Equal(t, int64(2), bin.Right.(*ast.IntLit).Value)
}

func TestParse_ParenthesizedExprSpanCoversParens(t *testing.T) {
	toks, lexErr := lexer.Lex("t.coal", "fn main() { (1); }")
	require.Nil(t, lexErr)
	prog, parseErr := Parse(toks)
	require.Nil(t, parseErr)
	fn := prog.Decls[0].(*ast.FnDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	lit := stmt.Expr.(*ast.IntLit)
	// The inner literal's own span covers just '1', but after SetSpan it
	// widens to the whole "(1)" run: three bytes instead of one.
	assert.Equal(t, 3, lit.Span().End-lit.Span().Start)
}

func TestParse_IfElifElse(t *testing.T) {
	toks, lexErr := lexer.Lex("t.coal", `fn main() {
		if (true) { var a: int = 1; }
		elif (false) { var b: int = 2; }
		else { var c: int = 3; }
	}`)
	require.Nil(t, lexErr)
	prog, parseErr := Parse(toks)
	require.Nil(t, parseErr)
	fn := prog.Decls[0].(*ast.FnDecl)
	ifs := fn.Body.Stmts[0].(*ast.IfStmt)
	require.Len(t, ifs.Branches, 2)
	require.NotNil(t, ifs.Else)
}

func TestParse_MissingClosingBraceFails(t *testing.T) {
	toks, lexErr := lexer.Lex("t.coal", "fn main() { var x: int = 1;")
	require.Nil(t, lexErr)
	_, parseErr := Parse(toks)
	require.NotNil(t, parseErr)
}

func TestParse_MethodCallChain(t *testing.T) {
	e := parseExpr(t, `1.toString()`).(*ast.MethodCall)
	assert.Equal(t, "toString", e.Method)
	assert.Equal(t, int64(1), e.Receiver.(*ast.IntLit).Value)
}
