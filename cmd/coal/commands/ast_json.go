package commands

import (
	"encoding/json"
	"io"

	"github.com/coal-lang/coal/internal/ast"
)

// printASTJSON implements `--emit-ast`: the parsed Program rendered as JSON
//. The core's AST types carry unexported fields, so this collaborator-only concern walks the tree
// into a plain JSON-able shape rather than exporting marshaling onto the
// AST itself.
func printASTJSON(w io.Writer, prog *ast.Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(programJSON(prog))
}

func programJSON(p *ast.Program) map[string]any {
	decls := make([]any, 0, len(p.Decls))
	for _, d := range p.Decls {
		decls = append(decls, declJSON(d))
	}
	return map[string]any{"kind": "Program", "decls": decls}
}

func declJSON(d ast.Decl) map[string]any {
	fn, ok := d.(*ast.FnDecl)
	if !ok {
		return map[string]any{"kind": "UnknownDecl"}
	}
	m := map[string]any{
		"kind": "FnDecl",
		"name": fn.Name,
		"body": blockJSON(fn.Body),
	}
	if fn.ReturnType != nil {
		m["returnType"] = typeRefJSON(fn.ReturnType)
	}
	return m
}

func typeRefJSON(t ast.TypeRef) map[string]any {
	named, ok := t.(*ast.NamedType)
	if !ok {
		return map[string]any{"kind": "UnknownType"}
	}
	return map[string]any{"kind": "NamedType", "name": named.Name}
}

func blockJSON(b *ast.Block) map[string]any {
	stmts := make([]any, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		stmts = append(stmts, stmtJSON(s))
	}
	return map[string]any{"kind": "Block", "stmts": stmts}
}

func stmtJSON(s ast.Stmt) map[string]any {
	switch st := s.(type) {
	case *ast.VarDecl:
		m := map[string]any{"kind": "VarDecl", "name": st.Name, "isConst": st.IsConst}
		if st.AnnotatedType != nil {
			m["annotatedType"] = typeRefJSON(st.AnnotatedType)
		}
		if st.Init != nil {
			m["init"] = exprJSON(st.Init)
		}
		return m
	case *ast.Assign:
		return map[string]any{"kind": "Assign", "name": st.Name, "value": exprJSON(st.Value)}
	case *ast.ExprStmt:
		return map[string]any{"kind": "ExprStmt", "expr": exprJSON(st.Expr)}
	case *ast.IfStmt:
		branches := make([]any, 0, len(st.Branches))
		for _, b := range st.Branches {
			branches = append(branches, map[string]any{
				"cond": exprJSON(b.Cond),
				"body": blockJSON(b.Body),
			})
		}
		m := map[string]any{"kind": "IfStmt", "branches": branches}
		if st.Else != nil {
			m["else"] = blockJSON(st.Else)
		}
		return m
	case *ast.WhileStmt:
		return map[string]any{"kind": "WhileStmt", "cond": exprJSON(st.Cond), "body": blockJSON(st.Body)}
	default:
		return map[string]any{"kind": "UnknownStmt"}
	}
}

func exprJSON(e ast.Expr) map[string]any {
	switch ex := e.(type) {
	case *ast.IntLit:
		return map[string]any{"kind": "IntLit", "value": ex.Value}
	case *ast.FloatLit:
		return map[string]any{"kind": "FloatLit", "value": ex.Value}
	case *ast.BoolLit:
		return map[string]any{"kind": "BoolLit", "value": ex.Value}
	case *ast.CharLit:
		return map[string]any{"kind": "CharLit", "value": string(ex.Value)}
	case *ast.StringLit:
		return map[string]any{"kind": "StringLit", "value": ex.Value}
	case *ast.Ident:
		return map[string]any{"kind": "Ident", "name": ex.Name}
	case *ast.Unary:
		return map[string]any{"kind": "Unary", "op": "!", "expr": exprJSON(ex.Expr)}
	case *ast.Binary:
		return map[string]any{"kind": "Binary", "op": ex.Op.String(), "left": exprJSON(ex.Left), "right": exprJSON(ex.Right)}
	case *ast.Call:
		args := make([]any, 0, len(ex.Args))
		for _, a := range ex.Args {
			args = append(args, exprJSON(a))
		}
		return map[string]any{"kind": "Call", "callee": ex.Callee, "args": args}
	case *ast.MethodCall:
		args := make([]any, 0, len(ex.Args))
		for _, a := range ex.Args {
			args = append(args, exprJSON(a))
		}
		return map[string]any{"kind": "MethodCall", "receiver": exprJSON(ex.Receiver), "method": ex.Method, "args": args}
	default:
		return map[string]any{"kind": "UnknownExpr"}
	}
}
