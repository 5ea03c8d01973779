// Package diag defines the structured diagnostic value shared by every stage
// of the Coal pipeline. A Diagnostic is a plain value: stages never print or
// log it themselves, they return it to their caller, which eventually reaches
// the CLI collaborator's renderer (outside this package, see cmd/coal).
package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageAnalyzer Stage = "analyzer"
	StageEmitter  Stage = "emitter"
)

// Severity captures how impactful the diagnostic is. Only SeverityError is
// currently produced by any stage; SeverityWarning and SeverityNote exist so
// the taxonomy has a place for future non-fatal diagnostics.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic, drawn from the fixed registry
// below.
type Code string

const (
	// Lexical errors.
	CodeUnexpectedChar       Code = "E0001"
	CodeUnterminatedString   Code = "E0002"
	CodeUnterminatedChar     Code = "E0003"
	CodeEmptyCharLiteral     Code = "E0004"
	CodeUnknownEscapeSeq     Code = "E0005"

	// Syntactic errors.
	CodeExpectedToken Code = "E0101"
	CodeExpectedExpr  Code = "E0102"

	// Semantic errors.
	CodeRedeclaredVariable    Code = "E0103"
	CodeUndefinedVariable     Code = "E0104"
	CodeAssignToConst         Code = "E0105"
	CodeConstNeedsInit        Code = "E0106"
	CodeVarNeedsType          Code = "E0107"
	CodeTypeMismatch          Code = "E0108"
	CodeCompareTypeMismatch   Code = "E0109"
	CodeRelopTypeInvalid      Code = "E0110"
	CodeLogicNeedsBool        Code = "E0111"
	CodeNotConditionBool      Code = "E0112"
	CodeNonBoolCondition      Code = "E0113"
	CodeStringsOnlyAdd        Code = "E0114"
	CodeInvalidType           Code = "E0115"
	CodeUnknownFunction       Code = "E0116"
	CodeArityMismatch         Code = "E0117"
	CodeUnsupportedPrintType  Code = "E0118"
	CodeUnknownMethod         Code = "E0119"
	CodeUnsupportedConversion Code = "E0120"

	// Internal errors: these indicate a compiler bug, never a user error.
	CodeInternal Code = "E1001"
)

// Span represents a location in source code: a half-open byte range plus the
// 1-based line/column of its start.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// Merge returns the span covering both a and b: the minimum start, the
// maximum end, and the line/column of whichever operand starts first.
func Merge(a, b Span) Span {
	left := a
	if b.Start < a.Start {
		left = b
	}
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{
		Filename: left.Filename,
		Line:     left.Line,
		Column:   left.Column,
		Start:    start,
		End:      end,
	}
}

// IsValid reports whether the span has been populated with real coordinates.
func (s Span) IsValid() bool {
	return s.Line > 0
}

// Diagnostic is a structured compiler diagnostic surfaced to end users via a
// collaborator.
type Diagnostic struct {
	Severity    Severity
	Code        Code
	Stage       Stage
	File        string
	Span        Span
	Message     string
	MessageArgs []string
	Notes       []string
}

// Error implements the error interface so a Diagnostic can be returned
// directly (and wrapped) anywhere Go code expects an error.
func (d *Diagnostic) Error() string {
	if d.File == "" {
		return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s", d.File, d.Span.Line, d.Span.Column, d.Severity, d.Code, d.Message)
}

// New constructs an error-severity diagnostic for the given stage and code.
func New(stage Stage, code Code, span Span, message string, notes ...string) *Diagnostic {
	return &Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Stage:    stage,
		File:     span.Filename,
		Span:     span,
		Message:  message,
		Notes:    notes,
	}
}

// Internal constructs an E1001 diagnostic for a violated compiler invariant
//; these indicate bugs in Coal itself, not the input
// program.
func Internal(stage Stage, span Span, message string) *Diagnostic {
	return New(stage, CodeInternal, span, message)
}
