package emit

import (
	"fmt"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/types"
)

// funcState is the per-function emission context: a stable SSA register
// counter and the current function's local slot map.
type funcState struct {
	name     string
	regs     int
	slots    map[string]string // var name -> alloca'd slot operand, e.g. "%x"
	curBlock string            // label of the block currently being appended to
}

func (fs *funcState) nextReg() string {
	r := fmt.Sprintf("%%t%d", fs.regs)
	fs.regs++
	return r
}

// openLabel writes label's definition and makes it the current block.
func (e *Emitter) openLabel(fs *funcState, label string) {
	e.line("%s:", label)
	fs.curBlock = label
}

// emitFunction lowers one FnDecl to `define i32 @name() { entry: ... ret i32
// 0 }`. The return is always `i32 0`; Coal has no user
// return statements and FnDecl.ReturnType is never consulted.
func (e *Emitter) emitFunction(fn *ast.FnDecl) {
	fs := &funcState{name: fn.Name, slots: make(map[string]string)}
	e.line("define i32 @%s() {", fn.Name)
	e.openLabel(fs, "entry")
	e.emitBlock(fs, fn.Body)
	e.line("  ret i32 0")
	e.line("}")
	e.line("")
}

func (e *Emitter) emitBlock(fs *funcState, block *ast.Block) {
	for _, stmt := range block.Stmts {
		e.emitStmt(fs, stmt)
	}
}

func (e *Emitter) emitStmt(fs *funcState, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		e.emitVarDecl(fs, s)
	case *ast.Assign:
		e.emitAssign(fs, s)
	case *ast.ExprStmt:
		e.evalExpr(fs, s.Expr)
	case *ast.IfStmt:
		e.emitIfStmt(fs, s)
	case *ast.WhileStmt:
		e.emitWhileStmt(fs, s)
	default:
		e.internal(stmt.Span(), fmt.Sprintf("unhandled statement kind %T", stmt))
	}
}

// emitVarDecl allocates the variable's slot, stores its initial value (the
// evaluated initializer, or the type's zero literal), and mirrors the value
// to its debug-mirror global.
func (e *Emitter) emitVarDecl(fs *funcState, decl *ast.VarDecl) {
	ty, ok := e.table.VarType(fs.name, decl.Name)
	if !ok {
		e.internal(decl.Span(), fmt.Sprintf("no TypeTable entry for variable %s.%s", fs.name, decl.Name))
	}
	t := irType(ty)
	slot := "%" + decl.Name
	fs.slots[decl.Name] = slot
	e.line("  %s = alloca %s", slot, t)

	if decl.Init != nil {
		v := e.evalExpr(fs, decl.Init)
		e.storeValue(fs, slot, ty, v)
	} else {
		e.line("  store %s %s, ptr %s", t, zeroLiteral(ty), slot)
	}
	e.mirror(fs, decl.Name, ty)
}

func (e *Emitter) emitAssign(fs *funcState, a *ast.Assign) {
	ty, ok := e.table.VarType(fs.name, a.Name)
	if !ok {
		e.internal(a.Span(), fmt.Sprintf("no TypeTable entry for variable %s.%s", fs.name, a.Name))
	}
	slot, ok := fs.slots[a.Name]
	if !ok {
		e.internal(a.Span(), fmt.Sprintf("assignment to %s before its slot was allocated", a.Name))
	}
	v := e.evalExpr(fs, a.Value)
	e.storeValue(fs, slot, ty, v)
	e.mirror(fs, a.Name, ty)
}

// storeValue writes v, already of type ty, to slot. A string value is
// packed into its `{ ptr, i32 }` aggregate via two insertvalue instructions
// before the store, since it was carried as two loose operands.
func (e *Emitter) storeValue(fs *funcState, slot string, ty types.Type, v Value) {
	if ty != types.String {
		e.line("  store %s %s, ptr %s", irType(ty), v.Scalar, slot)
		return
	}
	agg := e.packString(fs, v)
	e.line("  store { ptr, i32 } %s, ptr %s", agg, slot)
}

// packString builds the `{ ptr, i32 }` aggregate value for a string carried
// as loose (Ptr, Len) operands.
func (e *Emitter) packString(fs *funcState, v Value) string {
	a0 := fs.nextReg()
	e.line("  %s = insertvalue { ptr, i32 } undef, ptr %s, 0", a0, v.Ptr)
	a1 := fs.nextReg()
	e.line("  %s = insertvalue { ptr, i32 } %s, i32 %s, 1", a1, a0, v.Len)
	return a1
}

// mirror stores the current value of a local to its module-level debug
// mirror global. The local's slot must already hold the value (it was just
// written above), so it is reloaded from the slot and re-stored rather than
// re-threading the SSA value, matching the "mirror after every assignment"
// contract literally.
func (e *Emitter) mirror(fs *funcState, name string, ty types.Type) {
	mirrorName := fmt.Sprintf("__dbg_%s_%s", fs.name, name)
	slot := fs.slots[name]
	t := irType(ty)
	tmp := fs.nextReg()
	e.line("  %s = load %s, ptr %s", tmp, t, slot)
	e.line("  store %s %s, ptr @%s", t, tmp, mirrorName)
}

// emitIfStmt lowers if/elif/else to one `end` label, one `then` label per
// branch, one `check` label between consecutive branches, and an optional
// `else` label.
func (e *Emitter) emitIfStmt(fs *funcState, s *ast.IfStmt) {
	n := len(s.Branches)
	thenLabels := make([]string, n)
	for i := range thenLabels {
		thenLabels[i] = e.nextLabel("then")
	}
	checkLabels := make([]string, n-1)
	for i := range checkLabels {
		checkLabels[i] = e.nextLabel("check")
	}
	var elseLabel string
	if s.Else != nil {
		elseLabel = e.nextLabel("else")
	}
	endLabel := e.nextLabel("end")

	fallthroughTarget := func(i int) string {
		if i < len(checkLabels) {
			return checkLabels[i]
		}
		if elseLabel != "" {
			return elseLabel
		}
		return endLabel
	}

	for i, branch := range s.Branches {
		cond := e.evalExpr(fs, branch.Cond)
		e.line("  br i1 %s, label %%%s, label %%%s", cond.Scalar, thenLabels[i], fallthroughTarget(i))
		e.openLabel(fs, thenLabels[i])
		e.emitBlock(fs, branch.Body)
		e.line("  br label %%%s", endLabel)
		if i < len(checkLabels) {
			e.openLabel(fs, checkLabels[i])
		}
	}

	if s.Else != nil {
		e.openLabel(fs, elseLabel)
		e.emitBlock(fs, s.Else)
		e.line("  br label %%%s", endLabel)
	}

	e.openLabel(fs, endLabel)
}

// emitWhileStmt lowers `while(cond) body` as header -> cond-br -> body ->
// back-edge-br -> header, end: one terminator per block, not a
// re-evaluate-in-body shape that would leave a block with two.
func (e *Emitter) emitWhileStmt(fs *funcState, s *ast.WhileStmt) {
	header := e.nextLabel("whileHeader")
	body := e.nextLabel("whileBody")
	end := e.nextLabel("whileEnd")

	e.line("  br label %%%s", header)
	e.openLabel(fs, header)
	cond := e.evalExpr(fs, s.Cond)
	e.line("  br i1 %s, label %%%s, label %%%s", cond.Scalar, body, end)
	e.openLabel(fs, body)
	e.emitBlock(fs, s.Body)
	e.line("  br label %%%s", header)
	e.openLabel(fs, end)
}
