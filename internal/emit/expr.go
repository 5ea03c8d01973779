package emit

import (
	"fmt"

	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/types"
)

// evalExpr lowers expr in the context of the current block and returns its
// value. It consults the TypeTable for every node's
// resolved type rather than re-deriving it.
func (e *Emitter) evalExpr(fs *funcState, expr ast.Expr) Value {
	switch ex := expr.(type) {
	case *ast.IntLit:
		return scalar(fmt.Sprintf("%d", ex.Value))
	case *ast.FloatLit:
		return scalar(formatFloat(ex.Value))
	case *ast.BoolLit:
		if ex.Value {
			return scalar("1")
		}
		return scalar("0")
	case *ast.CharLit:
		return scalar(fmt.Sprintf("%d", ex.Value))
	case *ast.StringLit:
		c := e.pool.intern(ex.Value)
		reg := fs.nextReg()
		e.line("  %s = getelementptr [%d x i8], ptr %s, i32 0, i32 0", reg, c.ByteCount, c.Name)
		return strVal(reg, fmt.Sprintf("%d", len(ex.Value)))
	case *ast.Ident:
		return e.evalIdent(fs, ex)
	case *ast.Unary:
		return e.evalUnary(fs, ex)
	case *ast.Binary:
		return e.evalBinary(fs, ex)
	case *ast.Call:
		return e.evalCall(fs, ex)
	case *ast.MethodCall:
		return e.evalMethodCall(fs, ex)
	default:
		e.internal(expr.Span(), fmt.Sprintf("unhandled expression kind %T", expr))
		return Value{}
	}
}

func (e *Emitter) exprType(expr ast.Expr) types.Type {
	ty, ok := e.table.ExprType(expr)
	if !ok {
		e.internal(expr.Span(), "no TypeTable entry for expression")
	}
	return ty
}

func formatFloat(f float64) string {
	// LLVM accepts plain decimal float literals for double constants as long
	// as they round-trip; %g keeps small/whole values readable.
	return fmt.Sprintf("%g", f)
}

func (e *Emitter) evalIdent(fs *funcState, id *ast.Ident) Value {
	ty := e.exprType(id)
	slot, ok := fs.slots[id.Name]
	if !ok {
		e.internal(id.Span(), fmt.Sprintf("reference to %s before its slot was allocated", id.Name))
	}
	if ty != types.String {
		reg := fs.nextReg()
		e.line("  %s = load %s, ptr %s", reg, irType(ty), slot)
		return scalar(reg)
	}
	agg := fs.nextReg()
	e.line("  %s = load { ptr, i32 }, ptr %s", agg, slot)
	ptr := fs.nextReg()
	e.line("  %s = extractvalue { ptr, i32 } %s, 0", ptr, agg)
	length := fs.nextReg()
	e.line("  %s = extractvalue { ptr, i32 } %s, 1", length, agg)
	return strVal(ptr, length)
}

// widenToI32 extends an i1 or i8 scalar to i32; int is returned unchanged.
// Used wherever §4.4.4 requires treating bool/char as i32: print's integer
// format and the numeric conversion methods.
func (e *Emitter) widenToI32(fs *funcState, v Value, ty types.Type) string {
	switch ty {
	case types.Bool, types.Char:
		reg := fs.nextReg()
		e.line("  %s = zext %s %s to i32", reg, irType(ty), v.Scalar)
		return reg
	default:
		return v.Scalar
	}
}

func (e *Emitter) evalUnary(fs *funcState, u *ast.Unary) Value {
	operand := e.evalExpr(fs, u.Expr)
	reg := fs.nextReg()
	e.line("  %s = xor i1 %s, true", reg, operand.Scalar)
	return scalar(reg)
}

func (e *Emitter) evalBinary(fs *funcState, b *ast.Binary) Value {
	switch b.Op {
	case ast.And:
		return e.evalShortCircuit(fs, b, true)
	case ast.Or:
		return e.evalShortCircuit(fs, b, false)
	}

	left := e.evalExpr(fs, b.Left)
	right := e.evalExpr(fs, b.Right)
	operandType := e.exprType(b.Left)

	switch b.Op {
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return e.evalCompare(fs, b.Op, left, right, operandType)
	case ast.Add:
		if operandType == types.String {
			return e.concatStrings(fs, left, right)
		}
		return e.evalArith(fs, b.Op, left, right, operandType)
	default:
		return e.evalArith(fs, b.Op, left, right, operandType)
	}
}

// evalShortCircuit lowers `&&`/`||` with explicit basic blocks and a `phi
// i1` join. isAnd selects which operator is being lowered; the RHS block
// and phi incomings differ between the two.
func (e *Emitter) evalShortCircuit(fs *funcState, b *ast.Binary, isAnd bool) Value {
	left := e.evalExpr(fs, b.Left)

	var shortCircuitLabel, evalLabel, joinLabel string
	if isAnd {
		evalLabel = e.nextLabel("andRhs")
		shortCircuitLabel = e.nextLabel("andShort")
		joinLabel = e.nextLabel("andJoin")
		e.line("  br i1 %s, label %%%s, label %%%s", left.Scalar, evalLabel, shortCircuitLabel)
	} else {
		shortCircuitLabel = e.nextLabel("orShort")
		evalLabel = e.nextLabel("orRhs")
		joinLabel = e.nextLabel("orJoin")
		e.line("  br i1 %s, label %%%s, label %%%s", left.Scalar, shortCircuitLabel, evalLabel)
	}

	e.openLabel(fs, shortCircuitLabel)
	e.line("  br label %%%s", joinLabel)

	e.openLabel(fs, evalLabel)
	right := e.evalExpr(fs, b.Right)
	rhsBlock := fs.curBlock
	e.line("  br label %%%s", joinLabel)

	e.openLabel(fs, joinLabel)
	reg := fs.nextReg()
	shortValue := "0"
	if !isAnd {
		shortValue = "1"
	}
	e.line("  %s = phi i1 [ %s, %%%s ], [ %s, %%%s ]", reg, shortValue, shortCircuitLabel, right.Scalar, rhsBlock)
	return scalar(reg)
}

func intCmpOp(op ast.BinOp) string {
	switch op {
	case ast.Eq:
		return "eq"
	case ast.Ne:
		return "ne"
	case ast.Lt:
		return "slt"
	case ast.Le:
		return "sle"
	case ast.Gt:
		return "sgt"
	default:
		return "sge"
	}
}

func floatCmpOp(op ast.BinOp) string {
	switch op {
	case ast.Eq:
		return "oeq"
	case ast.Ne:
		return "one"
	case ast.Lt:
		return "olt"
	case ast.Le:
		return "ole"
	case ast.Gt:
		return "ogt"
	default:
		return "oge"
	}
}

// evalCompare lowers `== != < <= > >=`. Strings compare only via their data
// pointer.
func (e *Emitter) evalCompare(fs *funcState, op ast.BinOp, left, right Value, operandType types.Type) Value {
	reg := fs.nextReg()
	switch operandType {
	case types.String:
		cmp := "eq"
		if op == ast.Ne {
			cmp = "ne"
		}
		e.line("  %s = icmp %s ptr %s, %s", reg, cmp, left.Ptr, right.Ptr)
	case types.Float:
		e.line("  %s = fcmp %s double %s, %s", reg, floatCmpOp(op), left.Scalar, right.Scalar)
	default: // int, bool, char
		e.line("  %s = icmp %s %s %s, %s", reg, intCmpOp(op), irType(operandType), left.Scalar, right.Scalar)
	}
	return scalar(reg)
}

// evalArith lowers `+ - * / % ^` on int/float operands.
func (e *Emitter) evalArith(fs *funcState, op ast.BinOp, left, right Value, ty types.Type) Value {
	if op == ast.Pow {
		return e.evalPow(fs, left, right, ty)
	}

	reg := fs.nextReg()
	if ty == types.Int {
		e.line("  %s = %s i32 %s, %s", reg, intArithOp(op), left.Scalar, right.Scalar)
	} else {
		e.line("  %s = %s double %s, %s", reg, floatArithOp(op), left.Scalar, right.Scalar)
	}
	return scalar(reg)
}

func intArithOp(op ast.BinOp) string {
	switch op {
	case ast.Add:
		return "add"
	case ast.Sub:
		return "sub"
	case ast.Mul:
		return "mul"
	case ast.Div:
		return "sdiv"
	default: // Mod
		return "srem"
	}
}

func floatArithOp(op ast.BinOp) string {
	switch op {
	case ast.Add:
		return "fadd"
	case ast.Sub:
		return "fsub"
	case ast.Mul:
		return "fmul"
	default: // Div
		return "fdiv"
	}
}

// evalPow lowers `^` via the llvm.pow.f64 intrinsic, widening int operands
// with sitofp and narrowing an int result back with fptosi.
func (e *Emitter) evalPow(fs *funcState, left, right Value, ty types.Type) Value {
	lf, rf := left.Scalar, right.Scalar
	if ty == types.Int {
		l2 := fs.nextReg()
		e.line("  %s = sitofp i32 %s to double", l2, left.Scalar)
		r2 := fs.nextReg()
		e.line("  %s = sitofp i32 %s to double", r2, right.Scalar)
		lf, rf = l2, r2
	}
	result := fs.nextReg()
	e.line("  %s = call double @llvm.pow.f64(double %s, double %s)", result, lf, rf)
	if ty == types.Int {
		narrowed := fs.nextReg()
		e.line("  %s = fptosi double %s to i32", narrowed, result)
		return scalar(narrowed)
	}
	return scalar(result)
}

// concatStrings lowers string `+` via malloc + two memcpy + a NUL store.
func (e *Emitter) concatStrings(fs *funcState, left, right Value) Value {
	totalLen := fs.nextReg()
	e.line("  %s = add i32 %s, %s", totalLen, left.Len, right.Len)
	bufLen := fs.nextReg()
	e.line("  %s = add i32 %s, 1", bufLen, totalLen)
	mallocSize := fs.nextReg()
	e.line("  %s = zext i32 %s to i64", mallocSize, bufLen)
	newPtr := fs.nextReg()
	e.line("  %s = call ptr @malloc(i64 %s)", newPtr, mallocSize)

	leftLen64 := fs.nextReg()
	e.line("  %s = zext i32 %s to i64", leftLen64, left.Len)
	e.line("  call ptr @memcpy(ptr %s, ptr %s, i64 %s)", newPtr, left.Ptr, leftLen64)

	tailPtr := fs.nextReg()
	e.line("  %s = getelementptr i8, ptr %s, i32 %s", tailPtr, newPtr, left.Len)
	rightLen64 := fs.nextReg()
	e.line("  %s = zext i32 %s to i64", rightLen64, right.Len)
	e.line("  call ptr @memcpy(ptr %s, ptr %s, i64 %s)", tailPtr, right.Ptr, rightLen64)

	nulPtr := fs.nextReg()
	e.line("  %s = getelementptr i8, ptr %s, i32 %s", nulPtr, newPtr, totalLen)
	e.line("  store i8 0, ptr %s", nulPtr)

	return strVal(newPtr, totalLen)
}

// evalCall lowers a `print`/`println` call via printf, choosing the format
// string by the argument's type and widening i1/i8 to i32.
func (e *Emitter) evalCall(fs *funcState, call *ast.Call) Value {
	argType := e.exprType(call.Args[0])
	arg := e.evalExpr(fs, call.Args[0])
	newline := call.Callee == "println"

	var format string
	var printArgs string
	switch argType {
	case types.Int, types.Bool, types.Char:
		format = printfFormat("%d", newline)
		printArgs = fmt.Sprintf("i32 %s", e.widenToI32(fs, arg, argType))
	case types.Float:
		format = printfFormat("%f", newline)
		printArgs = fmt.Sprintf("double %s", arg.Scalar)
	case types.String:
		format = printfFormat("%s", newline)
		printArgs = fmt.Sprintf("ptr %s", arg.Ptr)
	default:
		e.internal(call.Span(), fmt.Sprintf("print: unsupported argument type %s", argType))
	}

	c := e.pool.intern(format)
	fmtPtr := fs.nextReg()
	e.line("  %s = getelementptr [%d x i8], ptr %s, i32 0, i32 0", fmtPtr, c.ByteCount, c.Name)
	e.line("  call i32 (ptr, ...) @printf(ptr %s, %s)", fmtPtr, printArgs)
	return scalar("0")
}

func printfFormat(spec string, newline bool) string {
	if newline {
		return spec + "\n"
	}
	return spec
}

// evalMethodCall lowers `toString`/`toInt`/`toFloat`.
func (e *Emitter) evalMethodCall(fs *funcState, mc *ast.MethodCall) Value {
	receiverType := e.exprType(mc.Receiver)
	receiver := e.evalExpr(fs, mc.Receiver)

	switch mc.Method {
	case "toString":
		return e.toStringConv(fs, receiver, receiverType)
	case "toInt":
		return e.toIntConv(fs, mc, receiver, receiverType)
	default: // toFloat
		return e.toFloatConv(fs, mc, receiver, receiverType)
	}
}

// toStringConv implements `x.toString()`: identity on string, otherwise
// formats into a fixed-size stack buffer via snprintf.
func (e *Emitter) toStringConv(fs *funcState, v Value, ty types.Type) Value {
	if ty == types.String {
		return v
	}

	buf := fs.nextReg()
	e.line("  %s = alloca [64 x i8]", buf)
	bufPtr := fs.nextReg()
	e.line("  %s = getelementptr [64 x i8], ptr %s, i32 0, i32 0", bufPtr, buf)

	var format, argIR string
	switch ty {
	case types.Float:
		format = "%f"
		argIR = fmt.Sprintf("double %s", v.Scalar)
	default: // int, bool, char
		format = "%d"
		argIR = fmt.Sprintf("i32 %s", e.widenToI32(fs, v, ty))
	}
	c := e.pool.intern(format)
	fmtPtr := fs.nextReg()
	e.line("  %s = getelementptr [%d x i8], ptr %s, i32 0, i32 0", fmtPtr, c.ByteCount, c.Name)
	n := fs.nextReg()
	e.line("  %s = call i32 (ptr, i64, ptr, ...) @snprintf(ptr %s, i64 64, ptr %s, %s)", n, bufPtr, fmtPtr, argIR)
	return strVal(bufPtr, n)
}

// toIntConv implements `x.toInt()`. A string-literal
// receiver is parsed at compile time; any other string expression falls
// back to a runtime strtol call.
func (e *Emitter) toIntConv(fs *funcState, mc *ast.MethodCall, v Value, ty types.Type) Value {
	switch ty {
	case types.Int:
		return v
	case types.Float:
		reg := fs.nextReg()
		e.line("  %s = fptosi double %s to i32", reg, v.Scalar)
		return scalar(reg)
	case types.Char, types.Bool:
		return scalar(e.widenToI32(fs, v, ty))
	case types.String:
		if lit, ok := mc.Receiver.(*ast.StringLit); ok {
			n, perr := parseIntLiteral(lit.Value)
			if perr != nil {
				e.internal(mc.Span(), fmt.Sprintf("cannot parse %q as int: %v", lit.Value, perr))
			}
			return scalar(fmt.Sprintf("%d", n))
		}
		wide := fs.nextReg()
		e.line("  %s = call i64 @strtol(ptr %s, ptr null, i32 10)", wide, v.Ptr)
		narrow := fs.nextReg()
		e.line("  %s = trunc i64 %s to i32", narrow, wide)
		return scalar(narrow)
	}
	e.internal(mc.Span(), fmt.Sprintf("toInt: unsupported receiver type %s", ty))
	return Value{}
}

// toFloatConv implements `x.toFloat()`, mirroring toInt's
// compile-time-vs-runtime string handling.
func (e *Emitter) toFloatConv(fs *funcState, mc *ast.MethodCall, v Value, ty types.Type) Value {
	switch ty {
	case types.Float:
		return v
	case types.Int:
		reg := fs.nextReg()
		e.line("  %s = sitofp i32 %s to double", reg, v.Scalar)
		return scalar(reg)
	case types.Char, types.Bool:
		widened := e.widenToI32(fs, v, ty)
		reg := fs.nextReg()
		e.line("  %s = sitofp i32 %s to double", reg, widened)
		return scalar(reg)
	case types.String:
		if lit, ok := mc.Receiver.(*ast.StringLit); ok {
			f, perr := parseFloatLiteral(lit.Value)
			if perr != nil {
				e.internal(mc.Span(), fmt.Sprintf("cannot parse %q as float: %v", lit.Value, perr))
			}
			return scalar(formatFloat(f))
		}
		reg := fs.nextReg()
		e.line("  %s = call double @strtod(ptr %s, ptr null)", reg, v.Ptr)
		return scalar(reg)
	}
	e.internal(mc.Span(), fmt.Sprintf("toFloat: unsupported receiver type %s", ty))
	return Value{}
}
