package lexer

import "github.com/coal-lang/coal/internal/diag"

// Span is a half-open byte range [Start,End) into the source buffer plus the
// 1-based line/column of its start. Every token, expression,
// statement, and declaration in Coal carries one.
type Span struct {
	Filename string
	Start    int
	End      int
	Line     int
	Column   int
}

// Merge returns the span covering both a and b: the minimum start, the
// maximum end, and the line/column of the left-hand operand.
func Merge(a, b Span) Span {
	start := a.Start
	end := a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{Filename: a.Filename, Start: start, End: end, Line: a.Line, Column: a.Column}
}

// ToDiag converts a lexer span into the shared diagnostic span shape.
func (s Span) ToDiag() diag.Span {
	return diag.Span{Filename: s.Filename, Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}

// Kind is the closed set of lexeme kinds Coal recognizes.
type Kind string

const (
	EOF Kind = "EOF"

	// Literals and identifiers.
	Identifier   Kind = "Identifier"
	IntLiteral   Kind = "IntLiteral"
	FloatLiteral Kind = "FloatLiteral"
	CharLiteral  Kind = "CharLiteral"
	StringLit    Kind = "StringLiteral"

	// Keywords.
	KwFn     Kind = "fn"
	KwVar    Kind = "var"
	KwConst  Kind = "const"
	KwTrue   Kind = "true"
	KwFalse  Kind = "false"
	KwInt    Kind = "int"
	KwFloat  Kind = "float"
	KwBool   Kind = "bool"
	KwChar   Kind = "char"
	KwString Kind = "string"
	KwIf     Kind = "if"
	KwElif   Kind = "elif"
	KwElse   Kind = "else"
	KwWhile  Kind = "while"

	// Punctuation.
	LParen    Kind = "("
	RParen    Kind = ")"
	LBrace    Kind = "{"
	RBrace    Kind = "}"
	Colon     Kind = ":"
	Comma     Kind = ","
	Dot       Kind = "."
	DotDot    Kind = ".."
	Semicolon Kind = ";"

	// Operators.
	Assign  Kind = "="
	Eq      Kind = "=="
	Bang    Kind = "!"
	NotEq   Kind = "!="
	PlusEq  Kind = "+="
	Plus    Kind = "+"
	Minus   Kind = "-"
	Star    Kind = "*"
	Slash   Kind = "/"
	Percent Kind = "%"
	Caret   Kind = "^"
	Lt      Kind = "<"
	Le      Kind = "<="
	Gt      Kind = ">"
	Ge      Kind = ">="
	AndAnd  Kind = "&&"
	OrOr    Kind = "||"
)

var keywords = map[string]Kind{
	"fn":     KwFn,
	"var":    KwVar,
	"const":  KwConst,
	"true":   KwTrue,
	"false":  KwFalse,
	"int":    KwInt,
	"float":  KwFloat,
	"bool":   KwBool,
	"char":   KwChar,
	"string": KwString,
	"if":     KwIf,
	"elif":   KwElif,
	"else":   KwElse,
	"while":  KwWhile,
}

// LookupIdent reports the keyword Kind for ident, or Identifier if it is not
// one of the reserved words in the closed keyword table.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}

// Token is a single lexeme plus its source span and, for literal kinds, its
// decoded payload. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span

	IntValue    int64
	FloatValue  float64
	CharValue   rune
	StringValue string
}
