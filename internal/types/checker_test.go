package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/diag"
	"github.com/coal-lang/coal/internal/lexer"
	"github.com/coal-lang/coal/internal/parser"
)

func checkSrc(t *testing.T, src string) (*ast.Program, *TypeTable, *diag.Diagnostic) {
	t.Helper()
	toks, lexErr := lexer.Lex("t.coal", src)
	require.Nil(t, lexErr)
	prog, parseErr := parser.Parse(toks)
	require.Nil(t, parseErr)
	table, checkErr := Check(prog)
	return prog, table, checkErr
}

func TestCheck_WellTypedProgramHasNoErrorsAndFullTypeTable(t *testing.T) {
	prog, table, err := checkSrc(t, `fn main() {
		var x: int = 1;
		var y = x + 2;
		const z: bool = true;
	}`)
	require.Nil(t, err)

	xTy, ok := table.VarType("main", "x")
	require.True(t, ok)
	assert.Equal(t, Int, xTy)

	yTy, ok := table.VarType("main", "y")
	require.True(t, ok)
	assert.Equal(t, Int, yTy)

	// Every expression node reachable from the program has a recorded type.
	fn := prog.Decls[0].(*ast.FnDecl)
	initExpr := fn.Body.Stmts[1].(*ast.VarDecl).Init
	ty, ok := table.ExprType(initExpr)
	require.True(t, ok)
	assert.Equal(t, Int, ty)
}

func TestCheck_AssignToConstFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		const x: int = 1;
		x = 2;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeAssignToConst, err.Code)
}

func TestCheck_ConstWithoutInitFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		const x: int;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeConstNeedsInit, err.Code)
}

func TestCheck_RedeclaredVariableFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x: int = 1;
		var x: int = 2;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeRedeclaredVariable, err.Code)
}

func TestCheck_UndefinedVariableFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var y: int = x;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUndefinedVariable, err.Code)
}

func TestCheck_AnnotatedAndInitTypeMismatchFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x: int = true;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeTypeMismatch, err.Code)
}

func TestCheck_StringAddStringIsValid(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x: string = "a" + "b";
	}`)
	assert.Nil(t, err)
}

func TestCheck_StringAddIntFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x = "a" + 1;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeStringsOnlyAdd, err.Code)
}

func TestCheck_ModOnFloatFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x = 1.0 % 2.0;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeInvalidType, err.Code)
}

func TestCheck_RelopOnBoolFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x = true < false;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeRelopTypeInvalid, err.Code)
}

func TestCheck_NonBoolIfConditionFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		if (1) { }
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeNonBoolCondition, err.Code)
}

func TestCheck_NotOnNonBoolFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x = !1;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeNotConditionBool, err.Code)
}

func TestCheck_UnknownFunctionFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		frobnicate(1);
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUnknownFunction, err.Code)
}

func TestCheck_UnknownMethodFails(t *testing.T) {
	_, _, err := checkSrc(t, `fn main() {
		var x = 1.wobble();
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUnknownMethod, err.Code)
}

func TestCheck_ToStringAlwaysValid(t *testing.T) {
	_, table, err := checkSrc(t, `fn main() {
		var x = 1.toString();
	}`)
	require.Nil(t, err)
	ty, ok := table.VarType("main", "x")
	require.True(t, ok)
	assert.Equal(t, String, ty)
}

func TestCheck_ScopesAreBlockLocal(t *testing.T) {
	// A variable declared inside an if-branch does not leak to the
	// enclosing function scope.
	_, _, err := checkSrc(t, `fn main() {
		if (true) {
			var x: int = 1;
		}
		var y: int = x;
	}`)
	require.NotNil(t, err)
	assert.Equal(t, diag.CodeUndefinedVariable, err.Code)
}
