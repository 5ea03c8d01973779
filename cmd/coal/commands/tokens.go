package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/coal-lang/coal/internal/lexer"
)

// printTokens implements `--emit-tokens`: one line per token as
// `line:col  KIND  'lexeme'`.
func printTokens(w io.Writer, toks []lexer.Token) {
	for _, t := range toks {
		fmt.Fprintf(w, "%d:%d  %s  '%s'\n", t.Span.Line, t.Span.Column, t.Kind, t.Lexeme)
	}
}

// jsonToken is the `--emit-json-tokens` wire shape: `{pos, kind, lexeme}`.
type jsonToken struct {
	Pos    string `json:"pos"`
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
}

func printTokensJSON(w io.Writer, toks []lexer.Token) error {
	out := make([]jsonToken, 0, len(toks))
	for _, t := range toks {
		out = append(out, jsonToken{
			Pos:    fmt.Sprintf("%d:%d", t.Span.Line, t.Span.Column),
			Kind:   string(t.Kind),
			Lexeme: t.Lexeme,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
