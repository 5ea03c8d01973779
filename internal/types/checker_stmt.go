package types

import (
	"fmt"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/diag"
)

func (c *Checker) checkStmt(stmt ast.Stmt, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s, scope)
	case *ast.Assign:
		c.checkAssign(s, scope)
	case *ast.ExprStmt:
		c.checkExpr(s.Expr, scope)
	case *ast.IfStmt:
		c.checkIfStmt(s, scope)
	case *ast.WhileStmt:
		c.checkWhileStmt(s, scope)
	default:
		c.fail(diag.CodeInternal, stmt.Span().ToDiag(), fmt.Sprintf("unhandled statement kind %T", stmt))
	}
}

// checkVarDecl implements the VarDecl typing rule: if both an annotation
// and an initializer are present their types must match; if only one is
// present it determines the type; if neither is present the declaration is
// ill-formed. `const` additionally requires an initializer.
func (c *Checker) checkVarDecl(decl *ast.VarDecl, scope *Scope) {
	if scope.DeclaredLocal(decl.Name) {
		c.fail(diag.CodeRedeclaredVariable, decl.NameSpan.ToDiag(),
			fmt.Sprintf("%q is already declared in this scope", decl.Name))
	}

	if decl.IsConst && decl.Init == nil {
		c.fail(diag.CodeConstNeedsInit, decl.Span().ToDiag(),
			fmt.Sprintf("const %q requires an initializer", decl.Name))
	}

	var declared Type
	var hasAnnotated bool
	if decl.AnnotatedType != nil {
		ty, ok := FromTypeRef(decl.AnnotatedType)
		if !ok {
			c.fail(diag.CodeInvalidType, decl.AnnotatedType.Span().ToDiag(), "not a valid type name")
		}
		declared = ty
		hasAnnotated = true
	}

	var initType Type
	var hasInit bool
	if decl.Init != nil {
		initType = c.checkExpr(decl.Init, scope)
		hasInit = true
	}

	switch {
	case hasAnnotated && hasInit:
		if declared != initType {
			c.fail(diag.CodeTypeMismatch, decl.Init.Span().ToDiag(),
				fmt.Sprintf("cannot initialize %q of type %s with a value of type %s", decl.Name, declared, initType))
		}
	case hasAnnotated:
		// declared already set.
	case hasInit:
		declared = initType
	default:
		c.fail(diag.CodeVarNeedsType, decl.Span().ToDiag(),
			fmt.Sprintf("%q needs either a type annotation or an initializer", decl.Name))
	}

	scope.Declare(decl.Name, &Symbol{Type: declared, Const: decl.IsConst})
	c.setVarType(decl.Name, declared)
}

func (c *Checker) checkAssign(a *ast.Assign, scope *Scope) {
	sym, ok := scope.Lookup(a.Name)
	if !ok {
		c.fail(diag.CodeUndefinedVariable, a.NameSpan.ToDiag(), fmt.Sprintf("undefined variable %q", a.Name))
	}
	if sym.Const {
		c.fail(diag.CodeAssignToConst, a.NameSpan.ToDiag(), fmt.Sprintf("cannot assign to const %q", a.Name))
	}
	valueType := c.checkExpr(a.Value, scope)
	if valueType != sym.Type {
		c.fail(diag.CodeTypeMismatch, a.Value.Span().ToDiag(),
			fmt.Sprintf("cannot assign a value of type %s to %q of type %s", valueType, a.Name, sym.Type))
	}
}

func (c *Checker) checkIfStmt(s *ast.IfStmt, scope *Scope) {
	for _, branch := range s.Branches {
		c.checkCondition(branch.Cond, scope)
		c.checkBlock(branch.Body, scope)
	}
	if s.Else != nil {
		c.checkBlock(s.Else, scope)
	}
}

func (c *Checker) checkWhileStmt(s *ast.WhileStmt, scope *Scope) {
	c.checkCondition(s.Cond, scope)
	c.checkBlock(s.Body, scope)
}

// checkCondition enforces that an if/while condition is boolean, distinct
// from the `!` operand rule (NotConditionBool, checked in checkExpr for
// Unary).
func (c *Checker) checkCondition(cond ast.Expr, scope *Scope) {
	ty := c.checkExpr(cond, scope)
	if ty != Bool {
		c.fail(diag.CodeNonBoolCondition, cond.Span().ToDiag(),
			fmt.Sprintf("condition must be bool, got %s", ty))
	}
}
