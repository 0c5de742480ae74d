// Package compiler implements spec.md §4.D-§4.F: the two-pass symbol
// initializer and body/expression compiler that turn a typed ast.File set
// into calls against an emit.Builder.
package compiler

import (
	"strings"

	"github.com/EdForge/assemblyscript-go/api"
	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/internal/diag"
	"github.com/EdForge/assemblyscript-go/internal/emit"
	"github.com/EdForge/assemblyscript-go/internal/types"
)

// FunctionDescriptor is spec.md §3's FunctionDescriptor: a registered
// function's mangled name, positional parameter types (with a synthetic
// leading "this" for instance methods), return type, import/export flags,
// and the signature it was registered under.
type FunctionDescriptor struct {
	MangledName string
	ParamTypes  []*types.PrimitiveType
	ParamNames  []string
	ReturnType  *types.PrimitiveType
	Export      bool
	Import      bool
	ExternModule string
	ExternName   string

	Sig    emit.SignatureHandle
	Handle emit.FunctionHandle // set once the function or import is registered

	// Body is nil for import functions.
	Body []ast.Stmt
}

// Constant is spec.md §3's Constant: an enum member's type and value, keyed
// by "EnumName$MemberName".
type Constant struct {
	Type  *types.PrimitiveType
	Value int64
}

// Global is a top-level let/const declaration materialized as a wasm
// global (the SPEC_FULL.md supplement to spec.md §9(b)).
type Global struct {
	Name    string
	Type    *types.PrimitiveType
	Mutable bool
	Handle  uint32
}

// SymbolTable holds every descriptor produced by pass 1, read-only once
// InitSymbols returns (spec.md §3's lifecycle note).
type SymbolTable struct {
	Functions []*FunctionDescriptor
	Constants map[string]*Constant
	Globals   []*Global

	byName map[string]*FunctionDescriptor
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		Constants: make(map[string]*Constant),
		byName:    make(map[string]*FunctionDescriptor),
	}
}

// Lookup returns the descriptor for a mangled function name.
func (st *SymbolTable) Lookup(mangledName string) (*FunctionDescriptor, bool) {
	fd, ok := st.byName[mangledName]
	return fd, ok
}

func (st *SymbolTable) addFunction(fd *FunctionDescriptor) {
	st.Functions = append(st.Functions, fd)
	st.byName[fd.MangledName] = fd
}

// InitSymbols is spec.md §4.D: the pass-1 symbol initializer. It walks
// every top-level declaration in every non-declaration file, builds wasm
// function signatures (deduplicated by b.AddFunctionType's own interning),
// and registers imports, enum constants, and globals. Declaration files
// (ast.File.IsDeclaration) define the admissible primitive type names
// only, already captured in reg's closed lattice, so their declarations
// are not walked here.
func InitSymbols(files []*ast.File, reg *types.Registry, b emit.Builder, diags *diag.Bag) (*SymbolTable, error) {
	st := newSymbolTable()
	for _, f := range files {
		if f.IsDeclaration {
			continue
		}
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *ast.FuncDecl:
				if err := registerFunc(st, reg, b, diags, decl); err != nil {
					return nil, err
				}
			case *ast.ClassDecl:
				if err := registerClass(st, reg, b, diags, decl); err != nil {
					return nil, err
				}
			case *ast.EnumDecl:
				registerEnum(st, reg, decl)
			case *ast.VarDecl:
				if err := registerGlobal(st, reg, b, diags, decl); err != nil {
					return nil, err
				}
			default:
				return nil, diag.Fatalf(d, "unsupported top-level declaration kind")
			}
		}
	}
	return st, nil
}

func signatureKey(params []*types.PrimitiveType, ret *types.PrimitiveType) string {
	var sb strings.Builder
	for _, p := range params {
		sb.WriteByte(p.SignatureTag())
	}
	sb.WriteByte(ret.SignatureTag())
	return sb.String()
}

func valueTypes(params []*types.PrimitiveType) []api.ValueType {
	out := make([]api.ValueType, len(params))
	for i, p := range params {
		out[i] = p.ValueType()
	}
	return out
}

// splitImportName implements spec.md §6's import-naming rule: a "$"
// anywhere in the declared name splits it into external module and field;
// absent "$", the module defaults to "env".
func splitImportName(name string) (module, field string) {
	if i := strings.IndexByte(name, '$'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "env", name
}

func registerFunc(st *SymbolTable, reg *types.Registry, b emit.Builder, diags *diag.Bag, d *ast.FuncDecl) error {
	if len(d.TypeParams) > 0 {
		return diag.Fatalf(d, "type parameters are not supported")
	}

	paramTypes := make([]*types.PrimitiveType, len(d.Params))
	paramNames := make([]string, len(d.Params))
	for i, p := range d.Params {
		pt, err := reg.Resolve(p.Type, false)
		if err != nil {
			return err
		}
		paramTypes[i] = pt
		paramNames[i] = p.Name
	}

	retType, err := reg.Resolve(d.ReturnType, true)
	if err != nil {
		return err
	}

	sig := b.AddFunctionType(signatureKey(paramTypes, retType), valueTypes(paramTypes), retType.ValueType())

	fd := &FunctionDescriptor{
		MangledName: d.Name,
		ParamTypes:  paramTypes,
		ParamNames:  paramNames,
		ReturnType:  retType,
		Export:      d.Modifiers.Has(ast.ModExport),
		Import:      d.Modifiers.Has(ast.ModImport),
		Sig:         sig,
		Body:        d.Body,
	}

	if fd.Import {
		fd.ExternModule, fd.ExternName = splitImportName(fd.MangledName)
		fd.Handle = b.AddImport(fd.MangledName, fd.ExternModule, fd.ExternName, sig)
	}

	st.addFunction(fd)
	return nil
}

// registerClass implements spec.md §4.D's class-method handling: only
// method members are accepted, mangled as "Class$method", with a synthetic
// pointer-typed "this" parameter on instance methods.
func registerClass(st *SymbolTable, reg *types.Registry, b emit.Builder, diags *diag.Bag, d *ast.ClassDecl) error {
	for _, m := range d.Methods {
		if m.Modifiers.Has(ast.ModExport) || m.Modifiers.Has(ast.ModImport) {
			diags.Errorf(m, "method %s.%s may not carry export or import modifiers", d.Name, m.Name)
			continue
		}

		paramTypes := make([]*types.PrimitiveType, 0, len(m.Params)+1)
		paramNames := make([]string, 0, len(m.Params)+1)
		if !m.Modifiers.Has(ast.ModStatic) {
			paramTypes = append(paramTypes, reg.Pointer())
			paramNames = append(paramNames, "this")
		}
		for _, p := range m.Params {
			pt, err := reg.Resolve(p.Type, false)
			if err != nil {
				return err
			}
			paramTypes = append(paramTypes, pt)
			paramNames = append(paramNames, p.Name)
		}

		retType, err := reg.Resolve(m.ReturnType, true)
		if err != nil {
			return err
		}

		sig := b.AddFunctionType(signatureKey(paramTypes, retType), valueTypes(paramTypes), retType.ValueType())
		mangled := d.Name + "$" + m.Name
		st.addFunction(&FunctionDescriptor{
			MangledName: mangled,
			ParamTypes:  paramTypes,
			ParamNames:  paramNames,
			ReturnType:  retType,
			Sig:         sig,
			Body:        m.Body,
		})
	}
	return nil
}

func registerEnum(st *SymbolTable, reg *types.Registry, d *ast.EnumDecl) {
	intType := reg.Lookup(types.Int)
	for _, m := range d.Members {
		st.Constants[d.Name+"$"+m.Name] = &Constant{Type: intType, Value: m.Value}
	}
}

// registerGlobal implements the globals supplement (SPEC_FULL.md §4):
// top-level let/const declarations become wasm globals, mutable for let,
// immutable for const. The initializer must be a constant-foldable numeric
// or bool literal; anything else is a fatal configuration error since
// general expression lowering needs a local-slot map that globals don't
// have.
func registerGlobal(st *SymbolTable, reg *types.Registry, b emit.Builder, diags *diag.Bag, d *ast.VarDecl) error {
	pt, err := reg.Resolve(d.Type, false)
	if err != nil {
		return err
	}

	init, err := lowerConstExpr(reg, diags, d.Init, pt, b)
	if err != nil {
		return err
	}

	handle := b.AddGlobal(d.Name, pt.ValueType(), d.Mutable, init)
	st.Globals = append(st.Globals, &Global{Name: d.Name, Type: pt, Mutable: d.Mutable, Handle: handle})
	return nil
}
