// Package emit defines the thin contract this compiler holds over an
// external wasm builder (spec.md §4.G). The builder itself - the assembler
// that turns these calls into a real wasm binary - is treated as an
// external collaborator; internal/emit/wasmbin provides one concrete
// implementation so the rest of this repository has something to compile
// and test against.
package emit

import "github.com/EdForge/assemblyscript-go/api"

// Expr is an opaque handle to a lowered wasm instruction (tree). Only the
// builder that produced it knows how to interpret it; the compiler passes
// handles around without inspecting them.
type Expr interface{}

// SignatureHandle identifies a registered function type.
type SignatureHandle uint32

// FunctionHandle identifies a registered function (whether a body or an
// import).
type FunctionHandle uint32

// DataSegment is a linear-memory initializer. The core never emits any
// (spec.md §6); the type exists so SetMemory's contract is complete.
type DataSegment struct {
	Offset uint32
	Data   []byte
}

// ModuleBuilder is the module-structure half of the façade: function
// types, functions, imports, exports, the start function, and memory.
// Every SignatureHandle passed to AddFunction or AddImport must have come
// from a prior AddFunctionType call on the same builder (spec.md §4.G).
type ModuleBuilder interface {
	// SetMemory declares the module's single linear memory.
	SetMemory(initialPages, maximumPages uint32, name string, segments []DataSegment)

	// AddFunctionType registers a function type under key if not already
	// registered, and returns its handle either way (spec.md's signature
	// interning: "insertion-only mapping from key string to registered
	// signature handle; never mutate entries").
	AddFunctionType(key string, paramTypes []api.ValueType, returnType api.ValueType) SignatureHandle

	// AddFunction registers a function body.
	AddFunction(name string, sig SignatureHandle, additionalLocalTypes []api.ValueType, body Expr) FunctionHandle

	// AddImport registers an import resolved against sig.
	AddImport(internalName, externalModule, externalName string, sig SignatureHandle) FunctionHandle

	// AddExport exposes an already-registered internal function under an
	// external name.
	AddExport(internalName, externalName string)

	// AddGlobal registers a module-level global.
	AddGlobal(internalName string, valueType api.ValueType, mutable bool, init Expr) uint32

	// SetStart installs fn as the module's start function.
	SetStart(fn FunctionHandle)
}

// InstrBuilder is the instruction-construction half of the external
// builder: every opcode the conversion engine (§4.C) and expression
// lowerer (§4.F) need to emit. Each method name is the wasm mnemonic it
// produces.
type InstrBuilder interface {
	I32Const(v int32) Expr
	I64Const(v int64) Expr
	F32Const(v float32) Expr
	F64Const(v float64) Expr

	GetLocal(slot uint32, t api.ValueType) Expr

	I32Add(l, r Expr) Expr
	I32Sub(l, r Expr) Expr
	I32Mul(l, r Expr) Expr
	I32DivS(l, r Expr) Expr
	I32DivU(l, r Expr) Expr
	I32RemS(l, r Expr) Expr
	I32RemU(l, r Expr) Expr
	I32And(l, r Expr) Expr
	I32Or(l, r Expr) Expr
	I32Xor(l, r Expr) Expr
	I32Shl(l, r Expr) Expr
	I32ShrS(l, r Expr) Expr
	I32ShrU(l, r Expr) Expr

	I64Add(l, r Expr) Expr
	I64Sub(l, r Expr) Expr
	I64Mul(l, r Expr) Expr
	I64DivS(l, r Expr) Expr
	I64DivU(l, r Expr) Expr
	I64RemS(l, r Expr) Expr
	I64RemU(l, r Expr) Expr
	I64And(l, r Expr) Expr
	I64Or(l, r Expr) Expr
	I64Xor(l, r Expr) Expr
	I64Shl(l, r Expr) Expr
	I64ShrS(l, r Expr) Expr
	I64ShrU(l, r Expr) Expr

	F32Add(l, r Expr) Expr
	F32Sub(l, r Expr) Expr
	F32Mul(l, r Expr) Expr
	F32Div(l, r Expr) Expr

	F64Add(l, r Expr) Expr
	F64Sub(l, r Expr) Expr
	F64Mul(l, r Expr) Expr
	F64Div(l, r Expr) Expr

	F64PromoteF32(e Expr) Expr
	F32DemoteF64(e Expr) Expr

	I32TruncF32S(e Expr) Expr
	I32TruncF32U(e Expr) Expr
	I32TruncF64S(e Expr) Expr
	I32TruncF64U(e Expr) Expr
	I64TruncF32S(e Expr) Expr
	I64TruncF32U(e Expr) Expr
	I64TruncF64S(e Expr) Expr
	I64TruncF64U(e Expr) Expr

	F32ConvertI32S(e Expr) Expr
	F32ConvertI32U(e Expr) Expr
	F32ConvertI64S(e Expr) Expr
	F32ConvertI64U(e Expr) Expr
	F64ConvertI32S(e Expr) Expr
	F64ConvertI32U(e Expr) Expr
	F64ConvertI64S(e Expr) Expr
	F64ConvertI64U(e Expr) Expr

	I64ExtendI32S(e Expr) Expr
	I64ExtendI32U(e Expr) Expr
	I32WrapI64(e Expr) Expr

	// Return wraps e (nil for a bare "return;") as the function's return
	// instruction.
	Return(e Expr) Expr

	// Unreachable stands in for any expression the lowerer could not
	// compile, so that recursion completes with a well-typed, if
	// unreachable, value (spec.md §7).
	Unreachable() Expr

	// AutoDrop discards the value of an expression statement whose result
	// is otherwise unused.
	AutoDrop(e Expr) Expr
}

// Builder is the full external-builder contract the compiler is written
// against.
type Builder interface {
	ModuleBuilder
	InstrBuilder
}
