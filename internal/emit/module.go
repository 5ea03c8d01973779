// Package emit lowers a type-checked Coal AST to textual LLVM IR targeting
// opaque `ptr` types (LLVM ≥ 15), following the stateful strings.Builder
// emitter shape of malphas-lang/internal/codegen/llvm/generator.go: an
// emit()/nextReg()/nextLabel() builder with a deferred global list, adapted
// to Coal's five-primitive-type, no-runtime IR.
package emit

import (
	"fmt"
	"strings"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/diag"
	"github.com/coal-lang/coal/internal/lexer"
	"github.com/coal-lang/coal/internal/types"
)

// dbgMirror is one module-level "debug mirror" global.
type dbgMirror struct {
	Name string
	Type types.Type
}

// Emitter holds the state of one module-emission run. It is created fresh
// per call to Emit and discarded on return.
type Emitter struct {
	table  *types.TypeTable
	out    strings.Builder
	pool   *stringPool
	labels int // global label counter

	mirrors      []dbgMirror
	mirrorByName map[string]bool
}

// Emit lowers a type-checked program to a complete LLVM IR module. filename
// names the module for the header comment; it need not be
// a real path.
func Emit(prog *ast.Program, table *types.TypeTable, filename string) (ir string, err *diag.Diagnostic) {
	e := &Emitter{
		table:        table,
		pool:         newStringPool(),
		mirrorByName: make(map[string]bool),
	}
	defer func() {
		if r := recover(); r != nil {
			ee, ok := r.(*emitError)
			if !ok {
				panic(r)
			}
			ir = ""
			err = ee.d
		}
	}()

	e.collect(prog)
	e.emitHeader(filename)
	e.emitExternals()
	e.emitStringConstants()
	e.emitDebugMirrors()
	for _, decl := range prog.Decls {
		e.emitFunction(decl.(*ast.FnDecl))
	}
	return e.out.String(), nil
}

// emitError is the panic/recover sentinel for an internal-invariant
// violation: it always carries CodeInternal.
type emitError struct{ d *diag.Diagnostic }

func (e *Emitter) internal(span lexer.Span, msg string) {
	panic(&emitError{d: diag.Internal(diag.StageEmitter, span.ToDiag(), msg)})
}

func (e *Emitter) line(format string, args ...any) {
	fmt.Fprintf(&e.out, format+"\n", args...)
}

func (e *Emitter) nextLabel(prefix string) string {
	n := e.labels
	e.labels++
	return fmt.Sprintf("%s%d", prefix, n)
}

// collect walks the whole program once before any function is lowered, so
// every global (string constant, debug mirror) is emitted before any
// function body that references it, rather than deferred and reordered
// after the fact.
func (e *Emitter) collect(prog *ast.Program) {
	for _, decl := range prog.Decls {
		fn := decl.(*ast.FnDecl)
		e.collectBlock(fn.Name, fn.Body)
	}
}

func (e *Emitter) collectBlock(fn string, block *ast.Block) {
	for _, stmt := range block.Stmts {
		e.collectStmt(fn, stmt)
	}
}

func (e *Emitter) collectStmt(fn string, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		e.declareMirror(fn, s.Name)
		if s.Init != nil {
			e.collectExpr(s.Init)
		}
	case *ast.Assign:
		e.collectExpr(s.Value)
	case *ast.ExprStmt:
		e.collectExpr(s.Expr)
	case *ast.IfStmt:
		for _, branch := range s.Branches {
			e.collectExpr(branch.Cond)
			e.collectBlock(fn, branch.Body)
		}
		if s.Else != nil {
			e.collectBlock(fn, s.Else)
		}
	case *ast.WhileStmt:
		e.collectExpr(s.Cond)
		e.collectBlock(fn, s.Body)
	}
}

func (e *Emitter) collectExpr(expr ast.Expr) {
	switch ex := expr.(type) {
	case *ast.StringLit:
		e.pool.intern(ex.Value)
	case *ast.Unary:
		e.collectExpr(ex.Expr)
	case *ast.Binary:
		e.collectExpr(ex.Left)
		e.collectExpr(ex.Right)
	case *ast.Call:
		for _, a := range ex.Args {
			e.collectExpr(a)
		}
		e.collectCallFormat(ex)
	case *ast.MethodCall:
		e.collectExpr(ex.Receiver)
		for _, a := range ex.Args {
			e.collectExpr(a)
		}
		if ex.Method == "toString" {
			e.collectToStringFormat(ex)
		}
	}
}

// collectCallFormat interns the printf format constant a print/println call
// will reference once lowered, so it reaches the module's string-constant
// block even though evalCall only looks it up after this pre-pass runs.
func (e *Emitter) collectCallFormat(call *ast.Call) {
	argType, ok := e.table.ExprType(call.Args[0])
	if !ok {
		e.internal(call.Span(), "no TypeTable entry for expression")
	}
	newline := call.Callee == "println"
	switch argType {
	case types.Int, types.Bool, types.Char:
		e.pool.intern(printfFormat("%d", newline))
	case types.Float:
		e.pool.intern(printfFormat("%f", newline))
	case types.String:
		e.pool.intern(printfFormat("%s", newline))
	}
}

// collectToStringFormat interns the snprintf format constant a
// `x.toString()` call will reference for a non-string receiver, for the
// same reason collectCallFormat does for print/println.
func (e *Emitter) collectToStringFormat(mc *ast.MethodCall) {
	receiverType, ok := e.table.ExprType(mc.Receiver)
	if !ok {
		e.internal(mc.Span(), "no TypeTable entry for expression")
	}
	if receiverType == types.Float {
		e.pool.intern("%f")
	} else if receiverType != types.String {
		e.pool.intern("%d")
	}
}

func (e *Emitter) declareMirror(fn, name string) {
	ty, ok := e.table.VarType(fn, name)
	if !ok {
		e.internal(lexer.Span{}, fmt.Sprintf("no TypeTable entry for variable %s.%s", fn, name))
	}
	mirrorName := fmt.Sprintf("__dbg_%s_%s", fn, name)
	if e.mirrorByName[mirrorName] {
		return
	}
	e.mirrorByName[mirrorName] = true
	e.mirrors = append(e.mirrors, dbgMirror{Name: mirrorName, Type: ty})
}

func (e *Emitter) emitHeader(filename string) {
	if filename == "" {
		filename = "coal_module"
	}
	e.line("; ModuleID = '%s'", filename)
	e.line("source_filename = %q", filename)
	e.line("")
}

// emitExternals declares the external surface the emitted code calls into:
// printf, snprintf, malloc, memcpy, strtol, strtod, and the llvm.pow.f64
// intrinsic used for `^`.
func (e *Emitter) emitExternals() {
	e.line("declare i32 @printf(ptr, ...)")
	e.line("declare i32 @snprintf(ptr, i64, ptr, ...)")
	e.line("declare ptr @malloc(i64)")
	e.line("declare ptr @memcpy(ptr, ptr, i64)")
	e.line("declare i64 @strtol(ptr, ptr, i32)")
	e.line("declare double @strtod(ptr, ptr)")
	e.line("declare double @llvm.pow.f64(double, double)")
	e.line("")
}

func (e *Emitter) emitStringConstants() {
	consts := e.pool.constants()
	if len(consts) == 0 {
		return
	}
	for _, c := range consts {
		e.line("%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"", c.Name, c.ByteCount, c.Escaped)
	}
	e.line("")
}

func (e *Emitter) emitDebugMirrors() {
	if len(e.mirrors) == 0 {
		return
	}
	for _, m := range e.mirrors {
		e.line("@%s = global %s %s", m.Name, irType(m.Type), zeroLiteral(m.Type))
	}
	e.line("")
}
