package types

import (
	"github.com/coal-lang/coal/internal/ast"
	"github.com/coal-lang/coal/internal/diag"
)

// Checker walks a Program and populates a TypeTable. It fails fast: the
// first ill-typed construct aborts analysis with a single diagnostic, using
// the same panic/recover bailout as internal/parser (mirroring go/parser's
// own internal use of the pattern) rather than threading an error return
// through every check* method.
type Checker struct {
	table *TypeTable
	fn    string // name of the function currently being checked
}

// Check type-checks a complete program and returns its TypeTable, or the
// first semantic diagnostic encountered.
func Check(prog *ast.Program) (table *TypeTable, err *diag.Diagnostic) {
	c := &Checker{table: newTypeTable()}
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*checkError)
			if !ok {
				panic(r)
			}
			table = nil
			err = ce.d
		}
	}()
	for _, decl := range prog.Decls {
		c.checkFnDecl(decl.(*ast.FnDecl))
	}
	return c.table, nil
}

// checkError is the panic/recover sentinel for the first semantic error.
type checkError struct{ d *diag.Diagnostic }

func (c *Checker) fail(code diag.Code, span diag.Span, msg string) {
	panic(&checkError{d: diag.New(diag.StageAnalyzer, code, span, msg)})
}

func (c *Checker) checkFnDecl(fn *ast.FnDecl) {
	c.fn = fn.Name
	c.checkBlock(fn.Body, NewScope(nil))
}

// checkBlock type-checks stmts in a freshly pushed scope nested under
// parent; the scope is implicitly popped on return.
func (c *Checker) checkBlock(block *ast.Block, parent *Scope) {
	scope := NewScope(parent)
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt, scope)
	}
}

func (c *Checker) varType(name string) (Type, bool) {
	return c.table.VarType(c.fn, name)
}

func (c *Checker) setVarType(name string, ty Type) {
	c.table.Vars[VarKey{Fn: c.fn, Name: name}] = ty
}

func (c *Checker) setExprType(e ast.Expr, ty Type) Type {
	c.table.Exprs[e] = ty
	return ty
}
