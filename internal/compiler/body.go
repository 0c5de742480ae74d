package compiler

import (
	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/internal/convert"
	"github.com/EdForge/assemblyscript-go/internal/diag"
	"github.com/EdForge/assemblyscript-go/internal/emit"
	"github.com/EdForge/assemblyscript-go/internal/types"
)

// CompileBodies is spec.md §4.E's pass 2: for every declared, non-import
// function, allocate a fresh local-slot map (one entry per parameter,
// instance methods include "this" at slot 0), compile the body's
// statements, and register the resulting function with b. A function
// named exactly "start" is installed as the module's start function;
// exported functions are added to the export table under their mangled
// name.
func CompileBodies(st *SymbolTable, reg *types.Registry, b emit.Builder, diags *diag.Bag) {
	conv := convert.NewEngine(reg, b)

	for _, fd := range st.Functions {
		if fd.Import {
			continue
		}

		locals := make(map[string]LocalSlot, len(fd.ParamNames))
		for i, name := range fd.ParamNames {
			locals[name] = LocalSlot{Index: uint32(i), Type: fd.ParamTypes[i]}
		}

		body := compileFuncBody(fd, reg, conv, b, diags, locals, st.Constants)
		fd.Handle = b.AddFunction(fd.MangledName, fd.Sig, nil, body)

		if fd.Export {
			b.AddExport(fd.MangledName, fd.MangledName)
		}
		if fd.MangledName == "start" {
			b.SetStart(fd.Handle)
		}
	}
}

// compileFuncBody walks top-level statements looking for the return
// statement spec.md §4.E recognizes; every other statement kind is
// diagnosed and contributes nothing to the body. The first return
// statement found determines the function's body; a missing return on a
// non-void function is diagnosed and filled in with an unreachable
// fallback so emission can still proceed.
func compileFuncBody(fd *FunctionDescriptor, reg *types.Registry, conv *convert.Engine, b emit.Builder, diags *diag.Bag, locals map[string]LocalSlot, consts map[string]*Constant) emit.Expr {
	l := NewLowerer(reg, conv, b, diags, locals, consts)

	for _, stmt := range fd.Body {
		ret, ok := stmt.(*ast.ReturnStmt)
		if !ok {
			diags.Errorf(stmt, "unsupported statement kind")
			continue
		}
		return compileReturn(fd, l, conv, b, diags, ret)
	}

	if fd.ReturnType.Kind != types.Void {
		diags.Errorf(fd.returnPos(), "missing return value for function %s", fd.MangledName)
		return b.Return(b.Unreachable())
	}
	return b.Return(nil)
}

func (fd *FunctionDescriptor) returnPos() ast.Node {
	if len(fd.Body) > 0 {
		return fd.Body[len(fd.Body)-1]
	}
	return syntheticNode{}
}

// syntheticNode anchors a diagnostic that has no real source node to point
// to (e.g. a function body with no statements at all).
type syntheticNode struct{}

func (syntheticNode) Pos() ast.Position { return ast.Position{} }

func compileReturn(fd *FunctionDescriptor, l *Lowerer, conv *convert.Engine, b emit.Builder, diags *diag.Bag, ret *ast.ReturnStmt) emit.Expr {
	if fd.ReturnType.Kind == types.Void {
		if ret.Value != nil {
			diags.Errorf(ret, "void function %s must not return a value", fd.MangledName)
		}
		return b.Return(nil)
	}

	if ret.Value == nil {
		diags.Errorf(ret, "function %s must return a value of type %s", fd.MangledName, fd.ReturnType)
		return b.Return(b.Unreachable())
	}

	expr, inferred := l.Lower(ret.Value, fd.ReturnType)
	expr = conv.Convert(ret, diags, expr, inferred, fd.ReturnType, false)
	return b.Return(expr)
}
