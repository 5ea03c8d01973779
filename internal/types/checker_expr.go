package types

import (
	"fmt"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/diag"
)

// builtinFns is the closed set of callable names.
var builtinFns = map[string]bool{"print": true, "println": true}

// conversionMethods is the closed set of receiver methods.
var conversionMethods = map[string]bool{"toString": true, "toInt": true, "toFloat": true}

func (c *Checker) checkExpr(expr ast.Expr, scope *Scope) Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return c.setExprType(e, Int)
	case *ast.FloatLit:
		return c.setExprType(e, Float)
	case *ast.BoolLit:
		return c.setExprType(e, Bool)
	case *ast.CharLit:
		return c.setExprType(e, Char)
	case *ast.StringLit:
		return c.setExprType(e, String)
	case *ast.Ident:
		return c.checkIdent(e, scope)
	case *ast.Unary:
		return c.checkUnary(e, scope)
	case *ast.Binary:
		return c.checkBinary(e, scope)
	case *ast.Call:
		return c.checkCall(e, scope)
	case *ast.MethodCall:
		return c.checkMethodCall(e, scope)
	default:
		c.fail(diag.CodeInternal, expr.Span().ToDiag(), fmt.Sprintf("unhandled expression kind %T", expr))
		return ""
	}
}

func (c *Checker) checkIdent(e *ast.Ident, scope *Scope) Type {
	sym, ok := scope.Lookup(e.Name)
	if !ok {
		c.fail(diag.CodeUndefinedVariable, e.Span().ToDiag(), fmt.Sprintf("undefined variable %q", e.Name))
	}
	return c.setExprType(e, sym.Type)
}

// checkUnary enforces Coal's only unary operator, `!`, which requires a bool
// operand.
func (c *Checker) checkUnary(e *ast.Unary, scope *Scope) Type {
	operand := c.checkExpr(e.Expr, scope)
	if operand != Bool {
		c.fail(diag.CodeNotConditionBool, e.Expr.Span().ToDiag(),
			fmt.Sprintf("! requires a bool operand, got %s", operand))
	}
	return c.setExprType(e, Bool)
}

func (c *Checker) checkBinary(e *ast.Binary, scope *Scope) Type {
	left := c.checkExpr(e.Left, scope)
	right := c.checkExpr(e.Right, scope)

	switch e.Op {
	case ast.And, ast.Or:
		if left != Bool || right != Bool {
			c.fail(diag.CodeLogicNeedsBool, e.Span().ToDiag(),
				fmt.Sprintf("%s requires bool operands, got %s and %s", e.Op, left, right))
		}
		return c.setExprType(e, Bool)

	case ast.Eq, ast.Ne:
		if left != right {
			c.fail(diag.CodeCompareTypeMismatch, e.Span().ToDiag(),
				fmt.Sprintf("cannot compare %s and %s", left, right))
		}
		return c.setExprType(e, Bool)

	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		if left != right {
			c.fail(diag.CodeCompareTypeMismatch, e.Span().ToDiag(),
				fmt.Sprintf("cannot compare %s and %s", left, right))
		}
		if !left.IsOrderable() {
			c.fail(diag.CodeRelopTypeInvalid, e.Span().ToDiag(),
				fmt.Sprintf("%s does not support %s", left, e.Op))
		}
		return c.setExprType(e, Bool)

	default: // Add, Sub, Mul, Div, Mod, Pow
		return c.setExprType(e, c.checkArith(e, left, right))
	}
}

// checkArith implements the arithmetic typing rules: `+` on two strings
// yields a string; any other operator applied to a string operand is
// StringsOnlyAdd; otherwise both operands must share the same numeric type
// (`%` additionally requires int).
func (c *Checker) checkArith(e *ast.Binary, left, right Type) Type {
	if left == String || right == String {
		if e.Op == ast.Add && left == String && right == String {
			return String
		}
		c.fail(diag.CodeStringsOnlyAdd, e.Span().ToDiag(),
			fmt.Sprintf("string only supports +, got %s", e.Op))
	}

	if left != right {
		c.fail(diag.CodeTypeMismatch, e.Span().ToDiag(),
			fmt.Sprintf("mismatched operand types %s and %s for %s", left, right, e.Op))
	}
	if !left.IsNumeric() {
		c.fail(diag.CodeInvalidType, e.Span().ToDiag(),
			fmt.Sprintf("%s does not support %s", left, e.Op))
	}
	if e.Op == ast.Mod && left != Int {
		c.fail(diag.CodeInvalidType, e.Span().ToDiag(), "% requires int operands")
	}
	return left
}

// checkCall enforces the Call rule: only print/println exist,
// each taking exactly one argument of a printable type.
func (c *Checker) checkCall(e *ast.Call, scope *Scope) Type {
	if !builtinFns[e.Callee] {
		c.fail(diag.CodeUnknownFunction, e.CalleeSpan.ToDiag(), fmt.Sprintf("unknown function %q", e.Callee))
	}
	if len(e.Args) != 1 {
		c.fail(diag.CodeArityMismatch, e.Span().ToDiag(),
			fmt.Sprintf("%s takes exactly 1 argument, got %d", e.Callee, len(e.Args)))
	}
	argType := c.checkExpr(e.Args[0], scope)
	switch argType {
	case Int, Float, Bool, Char, String:
	default:
		c.fail(diag.CodeUnsupportedPrintType, e.Args[0].Span().ToDiag(),
			fmt.Sprintf("cannot print a value of type %s", argType))
	}
	return c.setExprType(e, Int)
}

// checkMethodCall enforces the conversion-method rule: toString
// is defined on every type, toInt/toFloat are defined on every type that can
// be converted to a number (in Coal's closed type set, that is also every
// type). Each method takes zero arguments.
func (c *Checker) checkMethodCall(e *ast.MethodCall, scope *Scope) Type {
	receiver := c.checkExpr(e.Receiver, scope)
	if !conversionMethods[e.Method] {
		c.fail(diag.CodeUnknownMethod, e.MethodSpan.ToDiag(), fmt.Sprintf("unknown method %q", e.Method))
	}
	if len(e.Args) != 0 {
		c.fail(diag.CodeArityMismatch, e.Span().ToDiag(),
			fmt.Sprintf("%s takes no arguments, got %d", e.Method, len(e.Args)))
	}

	switch e.Method {
	case "toString":
		return c.setExprType(e, String)
	case "toInt":
		if !convertible(receiver) {
			c.fail(diag.CodeUnsupportedConversion, e.Receiver.Span().ToDiag(),
				fmt.Sprintf("cannot convert %s to int", receiver))
		}
		return c.setExprType(e, Int)
	default: // toFloat
		if !convertible(receiver) {
			c.fail(diag.CodeUnsupportedConversion, e.Receiver.Span().ToDiag(),
				fmt.Sprintf("cannot convert %s to float", receiver))
		}
		return c.setExprType(e, Float)
	}
}

func convertible(t Type) bool {
	switch t {
	case Int, Float, Bool, Char, String:
		return true
	default:
		return false
	}
}
