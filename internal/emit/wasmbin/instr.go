package wasmbin

import (
	"github.com/EdForge/assemblyscript-go/api"
	"github.com/EdForge/assemblyscript-go/internal/emit"
)

// Instruction construction treats emit.Expr as a []byte: wasm's binary
// encoding is already postfix, so a compound instruction's bytes are
// simply its operands' bytes followed by its own opcode - no tree walk
// needed at emission time.

func asBytes(e emit.Expr) []byte {
	if e == nil {
		return nil
	}
	return e.([]byte)
}

func bin(op byte, l, r emit.Expr) emit.Expr {
	out := append([]byte{}, asBytes(l)...)
	out = append(out, asBytes(r)...)
	out = append(out, op)
	return out
}

func un(op byte, v emit.Expr) emit.Expr {
	out := append([]byte{}, asBytes(v)...)
	return append(out, op)
}

func (e *Encoder) I32Const(v int32) emit.Expr { return encodeS32([]byte{opI32Const}, v) }
func (e *Encoder) I64Const(v int64) emit.Expr { return encodeS64([]byte{opI64Const}, v) }
func (e *Encoder) F32Const(v float32) emit.Expr {
	return encodeF32([]byte{opF32Const}, v)
}
func (e *Encoder) F64Const(v float64) emit.Expr {
	return encodeF64([]byte{opF64Const}, v)
}

func (e *Encoder) GetLocal(slot uint32, _ api.ValueType) emit.Expr {
	return encodeU32([]byte{opLocalGet}, slot)
}

func (e *Encoder) I32Add(l, r emit.Expr) emit.Expr  { return bin(opI32Add, l, r) }
func (e *Encoder) I32Sub(l, r emit.Expr) emit.Expr  { return bin(opI32Sub, l, r) }
func (e *Encoder) I32Mul(l, r emit.Expr) emit.Expr  { return bin(opI32Mul, l, r) }
func (e *Encoder) I32DivS(l, r emit.Expr) emit.Expr { return bin(opI32DivS, l, r) }
func (e *Encoder) I32DivU(l, r emit.Expr) emit.Expr { return bin(opI32DivU, l, r) }
func (e *Encoder) I32RemS(l, r emit.Expr) emit.Expr { return bin(opI32RemS, l, r) }
func (e *Encoder) I32RemU(l, r emit.Expr) emit.Expr { return bin(opI32RemU, l, r) }
func (e *Encoder) I32And(l, r emit.Expr) emit.Expr  { return bin(opI32And, l, r) }
func (e *Encoder) I32Or(l, r emit.Expr) emit.Expr   { return bin(opI32Or, l, r) }
func (e *Encoder) I32Xor(l, r emit.Expr) emit.Expr  { return bin(opI32Xor, l, r) }
func (e *Encoder) I32Shl(l, r emit.Expr) emit.Expr  { return bin(opI32Shl, l, r) }
func (e *Encoder) I32ShrS(l, r emit.Expr) emit.Expr { return bin(opI32ShrS, l, r) }
func (e *Encoder) I32ShrU(l, r emit.Expr) emit.Expr { return bin(opI32ShrU, l, r) }

func (e *Encoder) I64Add(l, r emit.Expr) emit.Expr  { return bin(opI64Add, l, r) }
func (e *Encoder) I64Sub(l, r emit.Expr) emit.Expr  { return bin(opI64Sub, l, r) }
func (e *Encoder) I64Mul(l, r emit.Expr) emit.Expr  { return bin(opI64Mul, l, r) }
func (e *Encoder) I64DivS(l, r emit.Expr) emit.Expr { return bin(opI64DivS, l, r) }
func (e *Encoder) I64DivU(l, r emit.Expr) emit.Expr { return bin(opI64DivU, l, r) }
func (e *Encoder) I64RemS(l, r emit.Expr) emit.Expr { return bin(opI64RemS, l, r) }
func (e *Encoder) I64RemU(l, r emit.Expr) emit.Expr { return bin(opI64RemU, l, r) }
func (e *Encoder) I64And(l, r emit.Expr) emit.Expr  { return bin(opI64And, l, r) }
func (e *Encoder) I64Or(l, r emit.Expr) emit.Expr   { return bin(opI64Or, l, r) }
func (e *Encoder) I64Xor(l, r emit.Expr) emit.Expr  { return bin(opI64Xor, l, r) }
func (e *Encoder) I64Shl(l, r emit.Expr) emit.Expr  { return bin(opI64Shl, l, r) }
func (e *Encoder) I64ShrS(l, r emit.Expr) emit.Expr { return bin(opI64ShrS, l, r) }
func (e *Encoder) I64ShrU(l, r emit.Expr) emit.Expr { return bin(opI64ShrU, l, r) }

func (e *Encoder) F32Add(l, r emit.Expr) emit.Expr { return bin(opF32Add, l, r) }
func (e *Encoder) F32Sub(l, r emit.Expr) emit.Expr { return bin(opF32Sub, l, r) }
func (e *Encoder) F32Mul(l, r emit.Expr) emit.Expr { return bin(opF32Mul, l, r) }
func (e *Encoder) F32Div(l, r emit.Expr) emit.Expr { return bin(opF32Div, l, r) }

func (e *Encoder) F64Add(l, r emit.Expr) emit.Expr { return bin(opF64Add, l, r) }
func (e *Encoder) F64Sub(l, r emit.Expr) emit.Expr { return bin(opF64Sub, l, r) }
func (e *Encoder) F64Mul(l, r emit.Expr) emit.Expr { return bin(opF64Mul, l, r) }
func (e *Encoder) F64Div(l, r emit.Expr) emit.Expr { return bin(opF64Div, l, r) }

func (e *Encoder) F64PromoteF32(v emit.Expr) emit.Expr { return un(opF64PromoteF32, v) }
func (e *Encoder) F32DemoteF64(v emit.Expr) emit.Expr  { return un(opF32DemoteF64, v) }

func (e *Encoder) I32TruncF32S(v emit.Expr) emit.Expr { return un(opI32TruncF32S, v) }
func (e *Encoder) I32TruncF32U(v emit.Expr) emit.Expr { return un(opI32TruncF32U, v) }
func (e *Encoder) I32TruncF64S(v emit.Expr) emit.Expr { return un(opI32TruncF64S, v) }
func (e *Encoder) I32TruncF64U(v emit.Expr) emit.Expr { return un(opI32TruncF64U, v) }
func (e *Encoder) I64TruncF32S(v emit.Expr) emit.Expr { return un(opI64TruncF32S, v) }
func (e *Encoder) I64TruncF32U(v emit.Expr) emit.Expr { return un(opI64TruncF32U, v) }
func (e *Encoder) I64TruncF64S(v emit.Expr) emit.Expr { return un(opI64TruncF64S, v) }
func (e *Encoder) I64TruncF64U(v emit.Expr) emit.Expr { return un(opI64TruncF64U, v) }

func (e *Encoder) F32ConvertI32S(v emit.Expr) emit.Expr { return un(opF32ConvertI32S, v) }
func (e *Encoder) F32ConvertI32U(v emit.Expr) emit.Expr { return un(opF32ConvertI32U, v) }
func (e *Encoder) F32ConvertI64S(v emit.Expr) emit.Expr { return un(opF32ConvertI64S, v) }
func (e *Encoder) F32ConvertI64U(v emit.Expr) emit.Expr { return un(opF32ConvertI64U, v) }
func (e *Encoder) F64ConvertI32S(v emit.Expr) emit.Expr { return un(opF64ConvertI32S, v) }
func (e *Encoder) F64ConvertI32U(v emit.Expr) emit.Expr { return un(opF64ConvertI32U, v) }
func (e *Encoder) F64ConvertI64S(v emit.Expr) emit.Expr { return un(opF64ConvertI64S, v) }
func (e *Encoder) F64ConvertI64U(v emit.Expr) emit.Expr { return un(opF64ConvertI64U, v) }

func (e *Encoder) I64ExtendI32S(v emit.Expr) emit.Expr { return un(opI64ExtendI32S, v) }
func (e *Encoder) I64ExtendI32U(v emit.Expr) emit.Expr { return un(opI64ExtendI32U, v) }
func (e *Encoder) I32WrapI64(v emit.Expr) emit.Expr    { return un(opI32WrapI64, v) }

func (e *Encoder) Return(v emit.Expr) emit.Expr {
	out := append([]byte{}, asBytes(v)...)
	return append(out, opReturn)
}

func (e *Encoder) Unreachable() emit.Expr { return []byte{opUnreachable} }

func (e *Encoder) AutoDrop(v emit.Expr) emit.Expr {
	out := append([]byte{}, asBytes(v)...)
	return append(out, opDrop)
}
