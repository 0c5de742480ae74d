package compiler

import (
	"fmt"

	"github.com/EdForge/assemblyscript-go/api"
	"github.com/EdForge/assemblyscript-go/internal/emit"
)

// recordingBuilder is a test-only emit.Builder that renders instructions
// to their textual mnemonic form and records every module-structure call,
// so tests can assert on the exact shape spec.md's worked examples
// describe without a real wasm assembler.
type recordingBuilder struct {
	sigKeys   map[string]emit.SignatureHandle
	nextSig   uint32
	functions []string // mangled names in AddFunction call order
	bodies    map[string]emit.Expr
	imports   []recordedImport
	exports   map[string]string
	globals   []recordedGlobal
	start     *emit.FunctionHandle
	memorySet bool
}

type recordedImport struct {
	internalName, module, name string
}

type recordedGlobal struct {
	name    string
	mutable bool
	init    emit.Expr
}

func newRecordingBuilder() *recordingBuilder {
	return &recordingBuilder{
		sigKeys: make(map[string]emit.SignatureHandle),
		bodies:  make(map[string]emit.Expr),
		exports: make(map[string]string),
	}
}

func (r *recordingBuilder) SetMemory(uint32, uint32, string, []emit.DataSegment) { r.memorySet = true }

func (r *recordingBuilder) AddFunctionType(key string, _ []api.ValueType, _ api.ValueType) emit.SignatureHandle {
	if h, ok := r.sigKeys[key]; ok {
		return h
	}
	h := emit.SignatureHandle(r.nextSig)
	r.nextSig++
	r.sigKeys[key] = h
	return h
}

func (r *recordingBuilder) AddFunction(name string, _ emit.SignatureHandle, _ []api.ValueType, body emit.Expr) emit.FunctionHandle {
	r.functions = append(r.functions, name)
	r.bodies[name] = body
	return emit.FunctionHandle(len(r.functions) - 1 + len(r.imports))
}

func (r *recordingBuilder) AddImport(internalName, module, name string, _ emit.SignatureHandle) emit.FunctionHandle {
	h := emit.FunctionHandle(len(r.imports))
	r.imports = append(r.imports, recordedImport{internalName: internalName, module: module, name: name})
	return h
}

func (r *recordingBuilder) AddExport(internalName, externalName string) {
	r.exports[internalName] = externalName
}

func (r *recordingBuilder) AddGlobal(internalName string, _ api.ValueType, mutable bool, init emit.Expr) uint32 {
	r.globals = append(r.globals, recordedGlobal{name: internalName, mutable: mutable, init: init})
	return uint32(len(r.globals) - 1)
}

func (r *recordingBuilder) SetStart(fn emit.FunctionHandle) { r.start = &fn }

func bin(op string, l, r emit.Expr) emit.Expr { return fmt.Sprintf("%s(%v, %v)", op, l, r) }
func un(op string, e emit.Expr) emit.Expr     { return fmt.Sprintf("%s(%v)", op, e) }

func (r *recordingBuilder) I32Const(v int32) emit.Expr   { return fmt.Sprintf("i32.const %d", v) }
func (r *recordingBuilder) I64Const(v int64) emit.Expr   { return fmt.Sprintf("i64.const %d", v) }
func (r *recordingBuilder) F32Const(v float32) emit.Expr { return fmt.Sprintf("f32.const %v", v) }
func (r *recordingBuilder) F64Const(v float64) emit.Expr { return fmt.Sprintf("f64.const %v", v) }

func (r *recordingBuilder) GetLocal(slot uint32, _ api.ValueType) emit.Expr {
	return fmt.Sprintf("get_local %d", slot)
}

func (r *recordingBuilder) I32Add(l, e emit.Expr) emit.Expr  { return bin("i32.add", l, e) }
func (r *recordingBuilder) I32Sub(l, e emit.Expr) emit.Expr  { return bin("i32.sub", l, e) }
func (r *recordingBuilder) I32Mul(l, e emit.Expr) emit.Expr  { return bin("i32.mul", l, e) }
func (r *recordingBuilder) I32DivS(l, e emit.Expr) emit.Expr { return bin("i32.div_s", l, e) }
func (r *recordingBuilder) I32DivU(l, e emit.Expr) emit.Expr { return bin("i32.div_u", l, e) }
func (r *recordingBuilder) I32RemS(l, e emit.Expr) emit.Expr { return bin("i32.rem_s", l, e) }
func (r *recordingBuilder) I32RemU(l, e emit.Expr) emit.Expr { return bin("i32.rem_u", l, e) }
func (r *recordingBuilder) I32And(l, e emit.Expr) emit.Expr  { return bin("i32.and", l, e) }
func (r *recordingBuilder) I32Or(l, e emit.Expr) emit.Expr   { return bin("i32.or", l, e) }
func (r *recordingBuilder) I32Xor(l, e emit.Expr) emit.Expr  { return bin("i32.xor", l, e) }
func (r *recordingBuilder) I32Shl(l, e emit.Expr) emit.Expr  { return bin("i32.shl", l, e) }
func (r *recordingBuilder) I32ShrS(l, e emit.Expr) emit.Expr { return bin("i32.shr_s", l, e) }
func (r *recordingBuilder) I32ShrU(l, e emit.Expr) emit.Expr { return bin("i32.shr_u", l, e) }

func (r *recordingBuilder) I64Add(l, e emit.Expr) emit.Expr  { return bin("i64.add", l, e) }
func (r *recordingBuilder) I64Sub(l, e emit.Expr) emit.Expr  { return bin("i64.sub", l, e) }
func (r *recordingBuilder) I64Mul(l, e emit.Expr) emit.Expr  { return bin("i64.mul", l, e) }
func (r *recordingBuilder) I64DivS(l, e emit.Expr) emit.Expr { return bin("i64.div_s", l, e) }
func (r *recordingBuilder) I64DivU(l, e emit.Expr) emit.Expr { return bin("i64.div_u", l, e) }
func (r *recordingBuilder) I64RemS(l, e emit.Expr) emit.Expr { return bin("i64.rem_s", l, e) }
func (r *recordingBuilder) I64RemU(l, e emit.Expr) emit.Expr { return bin("i64.rem_u", l, e) }
func (r *recordingBuilder) I64And(l, e emit.Expr) emit.Expr  { return bin("i64.and", l, e) }
func (r *recordingBuilder) I64Or(l, e emit.Expr) emit.Expr   { return bin("i64.or", l, e) }
func (r *recordingBuilder) I64Xor(l, e emit.Expr) emit.Expr  { return bin("i64.xor", l, e) }
func (r *recordingBuilder) I64Shl(l, e emit.Expr) emit.Expr  { return bin("i64.shl", l, e) }
func (r *recordingBuilder) I64ShrS(l, e emit.Expr) emit.Expr { return bin("i64.shr_s", l, e) }
func (r *recordingBuilder) I64ShrU(l, e emit.Expr) emit.Expr { return bin("i64.shr_u", l, e) }

func (r *recordingBuilder) F32Add(l, e emit.Expr) emit.Expr { return bin("f32.add", l, e) }
func (r *recordingBuilder) F32Sub(l, e emit.Expr) emit.Expr { return bin("f32.sub", l, e) }
func (r *recordingBuilder) F32Mul(l, e emit.Expr) emit.Expr { return bin("f32.mul", l, e) }
func (r *recordingBuilder) F32Div(l, e emit.Expr) emit.Expr { return bin("f32.div", l, e) }

func (r *recordingBuilder) F64Add(l, e emit.Expr) emit.Expr { return bin("f64.add", l, e) }
func (r *recordingBuilder) F64Sub(l, e emit.Expr) emit.Expr { return bin("f64.sub", l, e) }
func (r *recordingBuilder) F64Mul(l, e emit.Expr) emit.Expr { return bin("f64.mul", l, e) }
func (r *recordingBuilder) F64Div(l, e emit.Expr) emit.Expr { return bin("f64.div", l, e) }

func (r *recordingBuilder) F64PromoteF32(e emit.Expr) emit.Expr { return un("f64.promote", e) }
func (r *recordingBuilder) F32DemoteF64(e emit.Expr) emit.Expr  { return un("f32.demote", e) }

func (r *recordingBuilder) I32TruncF32S(e emit.Expr) emit.Expr { return un("i32.trunc_f32_s", e) }
func (r *recordingBuilder) I32TruncF32U(e emit.Expr) emit.Expr { return un("i32.trunc_f32_u", e) }
func (r *recordingBuilder) I32TruncF64S(e emit.Expr) emit.Expr { return un("i32.trunc_f64_s", e) }
func (r *recordingBuilder) I32TruncF64U(e emit.Expr) emit.Expr { return un("i32.trunc_f64_u", e) }
func (r *recordingBuilder) I64TruncF32S(e emit.Expr) emit.Expr { return un("i64.trunc_f32_s", e) }
func (r *recordingBuilder) I64TruncF32U(e emit.Expr) emit.Expr { return un("i64.trunc_f32_u", e) }
func (r *recordingBuilder) I64TruncF64S(e emit.Expr) emit.Expr { return un("i64.trunc_f64_s", e) }
func (r *recordingBuilder) I64TruncF64U(e emit.Expr) emit.Expr { return un("i64.trunc_f64_u", e) }

func (r *recordingBuilder) F32ConvertI32S(e emit.Expr) emit.Expr { return un("f32.convert_i32_s", e) }
func (r *recordingBuilder) F32ConvertI32U(e emit.Expr) emit.Expr { return un("f32.convert_i32_u", e) }
func (r *recordingBuilder) F32ConvertI64S(e emit.Expr) emit.Expr { return un("f32.convert_i64_s", e) }
func (r *recordingBuilder) F32ConvertI64U(e emit.Expr) emit.Expr { return un("f32.convert_i64_u", e) }
func (r *recordingBuilder) F64ConvertI32S(e emit.Expr) emit.Expr { return un("f64.convert_i32_s", e) }
func (r *recordingBuilder) F64ConvertI32U(e emit.Expr) emit.Expr { return un("f64.convert_i32_u", e) }
func (r *recordingBuilder) F64ConvertI64S(e emit.Expr) emit.Expr { return un("f64.convert_i64_s", e) }
func (r *recordingBuilder) F64ConvertI64U(e emit.Expr) emit.Expr { return un("f64.convert_i64_u", e) }

func (r *recordingBuilder) I64ExtendI32S(e emit.Expr) emit.Expr { return un("i64.extend_i32_s", e) }
func (r *recordingBuilder) I64ExtendI32U(e emit.Expr) emit.Expr { return un("i64.extend_i32_u", e) }
func (r *recordingBuilder) I32WrapI64(e emit.Expr) emit.Expr    { return un("i32.wrap_i64", e) }

func (r *recordingBuilder) Return(e emit.Expr) emit.Expr {
	if e == nil {
		return "return()"
	}
	return un("return", e)
}
func (r *recordingBuilder) Unreachable() emit.Expr { return "unreachable" }
func (r *recordingBuilder) AutoDrop(e emit.Expr) emit.Expr { return un("drop", e) }
