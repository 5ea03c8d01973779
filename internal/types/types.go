// Package types implements Coal's scope-stack type analyzer. It resolves
// the type of every expression and local variable, enforces scoping, and
// rejects ill-typed programs, producing a read-only TypeTable consumed by
// internal/emit.
package types

import "github.com/coal-lang/coal/internal/ast"

// Type is one of Coal's five closed primitive types. There is
// no user-defined type, so a plain string enumeration (matching the source
// keyword) is sufficient — no structural representation is needed.
type Type string

const (
	Int    Type = "int"
	Float  Type = "float"
	Bool   Type = "bool"
	Char   Type = "char"
	String Type = "string"
)

// IsNumeric reports whether t supports the arithmetic operators.
func (t Type) IsNumeric() bool { return t == Int || t == Float }

// IsOrderable reports whether t supports `< <= > >=`.
func (t Type) IsOrderable() bool { return t == Int || t == Float || t == Char }

// FromTypeRef resolves a parsed TypeRef to a Type. Coal's only TypeRef
// variant is NamedType; an identifier that isn't one of the five primitive
// names is not a valid type (Coal has no user-defined types).
func FromTypeRef(ref ast.TypeRef) (Type, bool) {
	named, ok := ref.(*ast.NamedType)
	if !ok {
		return "", false
	}
	switch named.Name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "bool":
		return Bool, true
	case "char":
		return Char, true
	case "string":
		return String, true
	default:
		return "", false
	}
}

// VarKey identifies a local variable by its enclosing function and name.
type VarKey struct {
	Fn   string
	Name string
}

// TypeTable is the analyzer's read-only output: the type of every expression
// node (keyed by node identity, since the AST is immutable post-parse) and
// the declared type of every local variable.
type TypeTable struct {
	Exprs map[ast.Expr]Type
	Vars  map[VarKey]Type
}

func newTypeTable() *TypeTable {
	return &TypeTable{
		Exprs: make(map[ast.Expr]Type),
		Vars:  make(map[VarKey]Type),
	}
}

// ExprType looks up the resolved type of an expression node. Callers in
// internal/emit treat a miss as an internal-invariant violation: every
// expression in a successfully analyzed program has an entry.
func (t *TypeTable) ExprType(e ast.Expr) (Type, bool) {
	ty, ok := t.Exprs[e]
	return ty, ok
}

// VarType looks up the declared type of a local variable.
func (t *TypeTable) VarType(fn, name string) (Type, bool) {
	ty, ok := t.Vars[VarKey{Fn: fn, Name: name}]
	return ty, ok
}
