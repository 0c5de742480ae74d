package convert

import (
	"fmt"

	"github.com/EdForge/assemblyscript-go/api"
	"github.com/EdForge/assemblyscript-go/internal/emit"
)

// strBuilder is a minimal emit.InstrBuilder that renders every instruction
// as its textual form, so tests can assert on the exact instruction tree
// produced by a conversion without a real wasm assembler.
type strBuilder struct{}

func bin(op string, l, r emit.Expr) emit.Expr { return fmt.Sprintf("%s(%v, %v)", op, l, r) }
func un(op string, e emit.Expr) emit.Expr     { return fmt.Sprintf("%s(%v)", op, e) }

func (strBuilder) I32Const(v int32) emit.Expr   { return fmt.Sprintf("i32.const %d", v) }
func (strBuilder) I64Const(v int64) emit.Expr   { return fmt.Sprintf("i64.const %d", v) }
func (strBuilder) F32Const(v float32) emit.Expr { return fmt.Sprintf("f32.const %v", v) }
func (strBuilder) F64Const(v float64) emit.Expr { return fmt.Sprintf("f64.const %v", v) }

func (strBuilder) GetLocal(slot uint32, _ api.ValueType) emit.Expr {
	return fmt.Sprintf("get_local %d", slot)
}

func (strBuilder) I32Add(l, r emit.Expr) emit.Expr  { return bin("i32.add", l, r) }
func (strBuilder) I32Sub(l, r emit.Expr) emit.Expr  { return bin("i32.sub", l, r) }
func (strBuilder) I32Mul(l, r emit.Expr) emit.Expr  { return bin("i32.mul", l, r) }
func (strBuilder) I32DivS(l, r emit.Expr) emit.Expr { return bin("i32.div_s", l, r) }
func (strBuilder) I32DivU(l, r emit.Expr) emit.Expr { return bin("i32.div_u", l, r) }
func (strBuilder) I32RemS(l, r emit.Expr) emit.Expr { return bin("i32.rem_s", l, r) }
func (strBuilder) I32RemU(l, r emit.Expr) emit.Expr { return bin("i32.rem_u", l, r) }
func (strBuilder) I32And(l, r emit.Expr) emit.Expr  { return bin("i32.and", l, r) }
func (strBuilder) I32Or(l, r emit.Expr) emit.Expr   { return bin("i32.or", l, r) }
func (strBuilder) I32Xor(l, r emit.Expr) emit.Expr  { return bin("i32.xor", l, r) }
func (strBuilder) I32Shl(l, r emit.Expr) emit.Expr  { return bin("i32.shl", l, r) }
func (strBuilder) I32ShrS(l, r emit.Expr) emit.Expr { return bin("i32.shr_s", l, r) }
func (strBuilder) I32ShrU(l, r emit.Expr) emit.Expr { return bin("i32.shr_u", l, r) }

func (strBuilder) I64Add(l, r emit.Expr) emit.Expr  { return bin("i64.add", l, r) }
func (strBuilder) I64Sub(l, r emit.Expr) emit.Expr  { return bin("i64.sub", l, r) }
func (strBuilder) I64Mul(l, r emit.Expr) emit.Expr  { return bin("i64.mul", l, r) }
func (strBuilder) I64DivS(l, r emit.Expr) emit.Expr { return bin("i64.div_s", l, r) }
func (strBuilder) I64DivU(l, r emit.Expr) emit.Expr { return bin("i64.div_u", l, r) }
func (strBuilder) I64RemS(l, r emit.Expr) emit.Expr { return bin("i64.rem_s", l, r) }
func (strBuilder) I64RemU(l, r emit.Expr) emit.Expr { return bin("i64.rem_u", l, r) }
func (strBuilder) I64And(l, r emit.Expr) emit.Expr  { return bin("i64.and", l, r) }
func (strBuilder) I64Or(l, r emit.Expr) emit.Expr   { return bin("i64.or", l, r) }
func (strBuilder) I64Xor(l, r emit.Expr) emit.Expr  { return bin("i64.xor", l, r) }
func (strBuilder) I64Shl(l, r emit.Expr) emit.Expr  { return bin("i64.shl", l, r) }
func (strBuilder) I64ShrS(l, r emit.Expr) emit.Expr { return bin("i64.shr_s", l, r) }
func (strBuilder) I64ShrU(l, r emit.Expr) emit.Expr { return bin("i64.shr_u", l, r) }

func (strBuilder) F32Add(l, r emit.Expr) emit.Expr { return bin("f32.add", l, r) }
func (strBuilder) F32Sub(l, r emit.Expr) emit.Expr { return bin("f32.sub", l, r) }
func (strBuilder) F32Mul(l, r emit.Expr) emit.Expr { return bin("f32.mul", l, r) }
func (strBuilder) F32Div(l, r emit.Expr) emit.Expr { return bin("f32.div", l, r) }

func (strBuilder) F64Add(l, r emit.Expr) emit.Expr { return bin("f64.add", l, r) }
func (strBuilder) F64Sub(l, r emit.Expr) emit.Expr { return bin("f64.sub", l, r) }
func (strBuilder) F64Mul(l, r emit.Expr) emit.Expr { return bin("f64.mul", l, r) }
func (strBuilder) F64Div(l, r emit.Expr) emit.Expr { return bin("f64.div", l, r) }

func (strBuilder) F64PromoteF32(e emit.Expr) emit.Expr { return un("f64.promote_f32", e) }
func (strBuilder) F32DemoteF64(e emit.Expr) emit.Expr  { return un("f32.demote_f64", e) }

func (strBuilder) I32TruncF32S(e emit.Expr) emit.Expr { return un("i32.trunc_f32_s", e) }
func (strBuilder) I32TruncF32U(e emit.Expr) emit.Expr { return un("i32.trunc_f32_u", e) }
func (strBuilder) I32TruncF64S(e emit.Expr) emit.Expr { return un("i32.trunc_f64_s", e) }
func (strBuilder) I32TruncF64U(e emit.Expr) emit.Expr { return un("i32.trunc_f64_u", e) }
func (strBuilder) I64TruncF32S(e emit.Expr) emit.Expr { return un("i64.trunc_f32_s", e) }
func (strBuilder) I64TruncF32U(e emit.Expr) emit.Expr { return un("i64.trunc_f32_u", e) }
func (strBuilder) I64TruncF64S(e emit.Expr) emit.Expr { return un("i64.trunc_f64_s", e) }
func (strBuilder) I64TruncF64U(e emit.Expr) emit.Expr { return un("i64.trunc_f64_u", e) }

func (strBuilder) F32ConvertI32S(e emit.Expr) emit.Expr { return un("f32.convert_i32_s", e) }
func (strBuilder) F32ConvertI32U(e emit.Expr) emit.Expr { return un("f32.convert_i32_u", e) }
func (strBuilder) F32ConvertI64S(e emit.Expr) emit.Expr { return un("f32.convert_i64_s", e) }
func (strBuilder) F32ConvertI64U(e emit.Expr) emit.Expr { return un("f32.convert_i64_u", e) }
func (strBuilder) F64ConvertI32S(e emit.Expr) emit.Expr { return un("f64.convert_i32_s", e) }
func (strBuilder) F64ConvertI32U(e emit.Expr) emit.Expr { return un("f64.convert_i32_u", e) }
func (strBuilder) F64ConvertI64S(e emit.Expr) emit.Expr { return un("f64.convert_i64_s", e) }
func (strBuilder) F64ConvertI64U(e emit.Expr) emit.Expr { return un("f64.convert_i64_u", e) }

func (strBuilder) I64ExtendI32S(e emit.Expr) emit.Expr { return un("i64.extend_i32_s", e) }
func (strBuilder) I64ExtendI32U(e emit.Expr) emit.Expr { return un("i64.extend_i32_u", e) }
func (strBuilder) I32WrapI64(e emit.Expr) emit.Expr    { return un("i32.wrap_i64", e) }

func (strBuilder) Return(e emit.Expr) emit.Expr { return un("return", e) }
func (strBuilder) Unreachable() emit.Expr       { return emit.Expr("unreachable") }
func (strBuilder) AutoDrop(e emit.Expr) emit.Expr { return un("drop", e) }
