package emit

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coal-lang/coal/internal/lexer"
	"github.com/coal-lang/coal/internal/parser"
	"github.com/coal-lang/coal/internal/types"
)

func emitSrc(t *testing.T, src string) string {
	t.Helper()
	toks, lexErr := lexer.Lex("t.coal", src)
	require.Nil(t, lexErr)
	prog, parseErr := parser.Parse(toks)
	require.Nil(t, parseErr)
	table, checkErr := types.Check(prog)
	require.Nil(t, checkErr)
	ir, emitErr := Emit(prog, table, "t.coal")
	require.Nil(t, emitErr)
	return ir
}

func TestEmit_FunctionLowersToDefineEndingInRetI32Zero(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: int = 1; }`)
	assert.Contains(t, ir, "define i32 @main() {")
	assert.Regexp(t, regexp.MustCompile(`(?s)ret i32 0\n\}`), ir)
}

func TestEmit_OneDefinePerFunction(t *testing.T) {
	ir := emitSrc(t, `fn a() { } fn b() { }`)
	assert.Equal(t, 1, strings.Count(ir, "define i32 @a()"))
	assert.Equal(t, 1, strings.Count(ir, "define i32 @b()"))
}

func TestEmit_DistinctStringConstantsDeduplicated(t *testing.T) {
	ir := emitSrc(t, `fn main() { var a: string = "hi"; var b: string = "hi"; var c: string = "bye"; }`)
	assert.Equal(t, 1, strings.Count(ir, `c"hi\00"`))
	assert.Equal(t, 1, strings.Count(ir, `c"bye\00"`))
	assert.Contains(t, ir, "@.str.0")
	assert.Contains(t, ir, "@.str.1")
	assert.NotContains(t, ir, "@.str.2")
}

func TestEmit_StringConstantByteCountIncludesNulTerminator(t *testing.T) {
	ir := emitSrc(t, `fn main() { var a: string = "hi"; }`)
	assert.Contains(t, ir, "[3 x i8]")
}

func TestEmit_DebugMirrorDeclaredOncePerVariable(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: int = 1; x = 2; }`)
	assert.Equal(t, 1, strings.Count(ir, "@__dbg_main_x = global i32 0"))
	// Mirrored once on declaration, once on assignment.
	assert.Equal(t, 2, strings.Count(ir, "store i32 %t"))
}

func TestEmit_IfElifElseProducesDistinctLabels(t *testing.T) {
	ir := emitSrc(t, `fn main() {
		if (true) { var a: int = 1; }
		elif (false) { var b: int = 2; }
		else { var c: int = 3; }
	}`)
	assert.Contains(t, ir, "then0:")
	assert.Contains(t, ir, "then1:")
	assert.Contains(t, ir, "check2:")
	assert.Contains(t, ir, "else3:")
	assert.Contains(t, ir, "end4:")
}

func TestEmit_WhileLowersToHeaderBodyEndWithBackEdge(t *testing.T) {
	ir := emitSrc(t, `fn main() { var i: int = 0; while (i < 3) { i = i + 1; } }`)
	assert.Contains(t, ir, "whileHeader0:")
	assert.Contains(t, ir, "whileBody1:")
	assert.Contains(t, ir, "whileEnd2:")
	// Back-edge: body re-branches to the header.
	headerIdx := strings.Index(ir, "whileBody1:")
	rest := ir[headerIdx:]
	assert.Contains(t, rest, "br label %whileHeader0")
}

func TestEmit_ShortCircuitAndUsesPhi(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: bool = true && false; }`)
	assert.Contains(t, ir, "phi i1")
	assert.Contains(t, ir, "[ 0, %")
}

func TestEmit_ShortCircuitOrUsesPhi(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: bool = true || false; }`)
	assert.Contains(t, ir, "phi i1")
	assert.Contains(t, ir, "[ 1, %")
}

func TestEmit_StringConcatMallocsAndNulTerminates(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: string = "ab" + "cde"; }`)
	assert.Contains(t, ir, "call ptr @malloc(")
	assert.Contains(t, ir, "call ptr @memcpy(")
	assert.Contains(t, ir, "store i8 0,")
}

func TestEmit_PowUsesLLVMPowIntrinsic(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: int = 2 ^ 3; }`)
	assert.Contains(t, ir, "call double @llvm.pow.f64(")
	assert.Contains(t, ir, "sitofp i32")
	assert.Contains(t, ir, "fptosi double")
}

func TestEmit_PrintCallsPrintf(t *testing.T) {
	ir := emitSrc(t, `fn main() { print(42); }`)
	assert.Contains(t, ir, "call i32 (ptr, ...) @printf(")
}

func TestEmit_ModuleLayoutOrdersHeaderThenExternalsThenGlobalsThenFunctions(t *testing.T) {
	ir := emitSrc(t, `fn main() { var x: string = "hi"; }`)
	headerIdx := strings.Index(ir, "ModuleID")
	externIdx := strings.Index(ir, "declare i32 @printf")
	strIdx := strings.Index(ir, "@.str.0")
	mirrorIdx := strings.Index(ir, "@__dbg_main_x")
	defineIdx := strings.Index(ir, "define i32 @main")
	require.True(t, headerIdx >= 0 && externIdx >= 0 && strIdx >= 0 && mirrorIdx >= 0 && defineIdx >= 0)
	assert.Less(t, headerIdx, externIdx)
	assert.Less(t, externIdx, strIdx)
	assert.Less(t, strIdx, mirrorIdx)
	assert.Less(t, mirrorIdx, defineIdx)
}
