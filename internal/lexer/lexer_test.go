package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coal-lang/coal/internal/diag"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLex_KeywordsAndPunctuation(t *testing.T) {
	toks, err := Lex("t.coal", "fn main() { var x: int = 1; }")
	require.Nil(t, err)
	require.Equal(t, []Kind{
		KwFn, Identifier, LParen, RParen, LBrace,
		KwVar, Identifier, Colon, KwInt, Assign, IntLiteral,
		RBrace, EOF,
	}, kinds(toks))
}

func TestLex_SemicolonIsWhitespaceLike(t *testing.T) {
	// Semicolons are skipped like whitespace inside the scanner loop, not
	// emitted as their own token kind distinct from this test's expectation.
	toks, err := Lex("t.coal", ";;;")
	require.Nil(t, err)
	require.Equal(t, []Kind{EOF}, kinds(toks))
}

func TestLex_LineComment(t *testing.T) {
	toks, err := Lex("t.coal", "1 // trailing comment\n2")
	require.Nil(t, err)
	require.Equal(t, []Kind{IntLiteral, IntLiteral, EOF}, kinds(toks))
}

func TestLex_NumericLiteralsWithSeparators(t *testing.T) {
	toks, err := Lex("t.coal", "1_000_000 3.14_15")
	require.Nil(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, IntLiteral, toks[0].Kind)
	assert.Equal(t, int64(1000000), toks[0].IntValue)
	assert.Equal(t, FloatLiteral, toks[1].Kind)
	assert.InDelta(t, 3.1415, toks[1].FloatValue, 1e-9)
}

func TestLex_StringEscapes(t *testing.T) {
	toks, err := Lex("t.coal", `"a\nb\tc\"d"`)
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, StringLit, toks[0].Kind)
	assert.Equal(t, "a\nb\tc\"d", toks[0].StringValue)
}

func TestLex_CharLiteral(t *testing.T) {
	toks, err := Lex("t.coal", `'a'`)
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, CharLiteral, toks[0].Kind)
	assert.Equal(t, 'a', toks[0].CharValue)
}

func TestLex_UnterminatedStringFails(t *testing.T) {
	_, err := Lex("t.coal", `"unterminated`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUnterminatedString, err.Code)
}

func TestLex_LiteralNewlineInStringFails(t *testing.T) {
	_, err := Lex("t.coal", "\"line1\nline2\"")
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUnterminatedString, err.Code)
}

func TestLex_UnknownEscapeFails(t *testing.T) {
	_, err := Lex("t.coal", `"\q"`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUnknownEscapeSeq, err.Code)
}

func TestLex_OperatorsDisambiguateLongestMatch(t *testing.T) {
	toks, err := Lex("t.coal", "+= == != <= >= && || ..")
	require.Nil(t, err)
	require.Equal(t, []Kind{
		PlusEq, Eq, NotEq, Le, Ge, AndAnd, OrOr, DotDot, EOF,
	}, kinds(toks))
}

func TestLex_SpanTracksLineAndColumn(t *testing.T) {
	toks, err := Lex("t.coal", "x\ny")
	require.Nil(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Span.Line)
	assert.Equal(t, 1, toks[0].Span.Column)
	assert.Equal(t, 2, toks[1].Span.Line)
	assert.Equal(t, 1, toks[1].Span.Column)
}
