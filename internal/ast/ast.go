// Package ast defines Coal's closed abstract syntax tree. Every
// variant is a concrete struct implementing one of the Expr/Stmt/Decl/TypeRef
// marker interfaces; there is no open class hierarchy, following the pattern
// of malphas-lang/internal/ast/ast.go (interface + unexported span field +
// Span() accessor + one constructor per node).
package ast

import "github.com/coal-lang/coal/internal/lexer"

// Node is any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
	// SetSpan rewrites the node's span in place. Used only by the parser to
	// widen a parenthesized sub-expression's span to cover the enclosing
	// parentheses; it never changes the node's
	// identity, so it is safe to call after the node has already been used
	// as a TypeTable key.
	SetSpan(lexer.Span)
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeRef is a type annotation.
type TypeRef interface {
	Node
	typeRefNode()
}

// Program is the root node: an ordered list of top-level declarations.
type Program struct {
	Decls []Decl
	span  lexer.Span
}

func NewProgram(decls []Decl, span lexer.Span) *Program { return &Program{Decls: decls, span: span} }
func (p *Program) Span() lexer.Span                     { return p.span }

// Param is a function parameter. The parser records any parameters written
// in FnDecl.Params; the analyzer and emitter never read them, so they are not
// in scope inside the function body.
type Param struct {
	Name string
	Type TypeRef
	span lexer.Span
}

func NewParam(name string, typ TypeRef, span lexer.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}
func (p *Param) Span() lexer.Span { return p.span }

// FnDecl is a function declaration: `fn name() { ...body... }`.
type FnDecl struct {
	Name       string
	Params     []*Param
	ReturnType TypeRef // optional; parsed but never consulted
	Body       *Block
	NameSpan   lexer.Span
	span       lexer.Span
}

func NewFnDecl(name string, nameSpan lexer.Span, params []*Param, returnType TypeRef, body *Block, span lexer.Span) *FnDecl {
	return &FnDecl{Name: name, NameSpan: nameSpan, Params: params, ReturnType: returnType, Body: body, span: span}
}
func (d *FnDecl) Span() lexer.Span { return d.span }
func (*FnDecl) declNode()          {}

// Block is an ordered list of statements delimited by `{` `}`.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

func NewBlock(stmts []Stmt, span lexer.Span) *Block { return &Block{Stmts: stmts, span: span} }
func (b *Block) Span() lexer.Span                   { return b.span }

// NamedType is Coal's only TypeRef variant: a bare primitive type name.
type NamedType struct {
	Name string
	span lexer.Span
}

func NewNamedType(name string, span lexer.Span) *NamedType { return &NamedType{Name: name, span: span} }
func (t *NamedType) Span() lexer.Span                      { return t.span }
func (*NamedType) typeRefNode()                            {}

// VarDecl declares a local variable or constant.
type VarDecl struct {
	Name           string
	AnnotatedType  TypeRef // optional
	Init           Expr    // optional
	IsConst        bool
	NameSpan       lexer.Span
	span           lexer.Span
}

func NewVarDecl(name string, nameSpan lexer.Span, annotated TypeRef, init Expr, isConst bool, span lexer.Span) *VarDecl {
	return &VarDecl{Name: name, NameSpan: nameSpan, AnnotatedType: annotated, Init: init, IsConst: isConst, span: span}
}
func (s *VarDecl) Span() lexer.Span { return s.span }
func (*VarDecl) stmtNode()          {}

// Assign assigns a new value to an existing variable.
type Assign struct {
	Name     string
	NameSpan lexer.Span
	Value    Expr
	span     lexer.Span
}

func NewAssign(name string, nameSpan lexer.Span, value Expr, span lexer.Span) *Assign {
	return &Assign{Name: name, NameSpan: nameSpan, Value: value, span: span}
}
func (s *Assign) Span() lexer.Span { return s.span }
func (*Assign) stmtNode()          {}

// ExprStmt is an expression evaluated for its side effect (e.g. a call).
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt { return &ExprStmt{Expr: expr, span: span} }
func (s *ExprStmt) Span() lexer.Span                   { return s.span }
func (*ExprStmt) stmtNode()                            {}

// IfBranch is one `if`/`elif` clause: a condition plus the block to run when
// it is true.
type IfBranch struct {
	Cond Expr
	Body *Block
	span lexer.Span
}

func NewIfBranch(cond Expr, body *Block, span lexer.Span) *IfBranch {
	return &IfBranch{Cond: cond, Body: body, span: span}
}
func (b *IfBranch) Span() lexer.Span { return b.span }

// IfStmt is `if (...) {...} elif (...) {...}* else {...}?`.
type IfStmt struct {
	Branches []*IfBranch
	Else     *Block // optional
	span     lexer.Span
}

func NewIfStmt(branches []*IfBranch, elseBranch *Block, span lexer.Span) *IfStmt {
	return &IfStmt{Branches: branches, Else: elseBranch, span: span}
}
func (s *IfStmt) Span() lexer.Span { return s.span }
func (*IfStmt) stmtNode()          {}

// WhileStmt is `while (cond) { body }`.
type WhileStmt struct {
	Cond Expr
	Body *Block
	span lexer.Span
}

func NewWhileStmt(cond Expr, body *Block, span lexer.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, span: span}
}
func (s *WhileStmt) Span() lexer.Span { return s.span }
func (*WhileStmt) stmtNode()          {}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	span  lexer.Span
}

func NewIntLit(value int64, span lexer.Span) *IntLit { return &IntLit{Value: value, span: span} }
func (e *IntLit) Span() lexer.Span                    { return e.span }
func (*IntLit) exprNode()                             {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
	span  lexer.Span
}

func NewFloatLit(value float64, span lexer.Span) *FloatLit { return &FloatLit{Value: value, span: span} }
func (e *FloatLit) Span() lexer.Span                        { return e.span }
func (*FloatLit) exprNode()                                 {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

func NewBoolLit(value bool, span lexer.Span) *BoolLit { return &BoolLit{Value: value, span: span} }
func (e *BoolLit) Span() lexer.Span                    { return e.span }
func (*BoolLit) exprNode()                             {}

// CharLit is a single Unicode scalar value literal.
type CharLit struct {
	Value rune
	span  lexer.Span
}

func NewCharLit(value rune, span lexer.Span) *CharLit { return &CharLit{Value: value, span: span} }
func (e *CharLit) Span() lexer.Span                    { return e.span }
func (*CharLit) exprNode()                             {}

// StringLit is a decoded string literal.
type StringLit struct {
	Value string
	span  lexer.Span
}

func NewStringLit(value string, span lexer.Span) *StringLit { return &StringLit{Value: value, span: span} }
func (e *StringLit) Span() lexer.Span                         { return e.span }
func (*StringLit) exprNode()                                  {}

// Ident is a variable reference.
type Ident struct {
	Name string
	span lexer.Span
}

func NewIdent(name string, span lexer.Span) *Ident { return &Ident{Name: name, span: span} }
func (e *Ident) Span() lexer.Span                  { return e.span }
func (*Ident) exprNode()                           {}

// UnaryOp is the closed set of unary operators. Coal has exactly one: `!`.
type UnaryOp int

const (
	Not UnaryOp = iota
)

// Unary is `!expr`.
type Unary struct {
	Op   UnaryOp
	Expr Expr
	span lexer.Span
}

func NewUnary(op UnaryOp, expr Expr, span lexer.Span) *Unary { return &Unary{Op: op, Expr: expr, span: span} }
func (e *Unary) Span() lexer.Span                             { return e.span }
func (*Unary) exprNode()                                      {}

// BinOp is the closed set of binary operators.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
)

// String renders the operator the way it appears in Coal source, used by
// diagnostic messages.
func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Pow:
		return "^"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}

// Binary is `left op right`.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
	span  lexer.Span
}

func NewBinary(op BinOp, left, right Expr, span lexer.Span) *Binary {
	return &Binary{Op: op, Left: left, Right: right, span: span}
}
func (e *Binary) Span() lexer.Span { return e.span }
func (*Binary) exprNode()          {}

// Call is a call to one of the two recognized builtin functions,
// `print` and `println`.
type Call struct {
	Callee     string
	CalleeSpan lexer.Span
	Args       []Expr
	span       lexer.Span
}

func NewCall(callee string, calleeSpan lexer.Span, args []Expr, span lexer.Span) *Call {
	return &Call{Callee: callee, CalleeSpan: calleeSpan, Args: args, span: span}
}
func (e *Call) Span() lexer.Span { return e.span }
func (*Call) exprNode()          {}

// MethodCall is `receiver.method(args)`.
type MethodCall struct {
	Receiver   Expr
	Method     string
	MethodSpan lexer.Span
	Args       []Expr
	span       lexer.Span
}

func NewMethodCall(receiver Expr, method string, methodSpan lexer.Span, args []Expr, span lexer.Span) *MethodCall {
	return &MethodCall{Receiver: receiver, Method: method, MethodSpan: methodSpan, Args: args, span: span}
}
func (e *MethodCall) Span() lexer.Span { return e.span }
func (*MethodCall) exprNode()          {}

func (e *IntLit) SetSpan(span lexer.Span) { e.span = span }
func (e *FloatLit) SetSpan(span lexer.Span) { e.span = span }
func (e *BoolLit) SetSpan(span lexer.Span) { e.span = span }
func (e *CharLit) SetSpan(span lexer.Span) { e.span = span }
func (e *StringLit) SetSpan(span lexer.Span) { e.span = span }
func (e *Ident) SetSpan(span lexer.Span) { e.span = span }
func (e *Unary) SetSpan(span lexer.Span) { e.span = span }
func (e *Binary) SetSpan(span lexer.Span) { e.span = span }
func (e *Call) SetSpan(span lexer.Span) { e.span = span }
func (e *MethodCall) SetSpan(span lexer.Span) { e.span = span }
