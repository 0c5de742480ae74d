// Package convert implements the numeric conversion engine of spec.md
// §4.C: given a source type, a target type, and an explicit/implicit
// flag, it emits the minimal wasm instruction tree that converts a value,
// raising exactly one diagnostic per conversion chain when an implicit
// narrowing or cross-family conversion is attempted.
package convert

import (
	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/internal/diag"
	"github.com/EdForge/assemblyscript-go/internal/emit"
	"github.com/EdForge/assemblyscript-go/internal/types"
)

// Engine lowers type coercions to wasm instructions via an InstrBuilder.
type Engine struct {
	reg *types.Registry
	b   emit.InstrBuilder
}

// NewEngine builds a conversion engine bound to reg's type lattice and b's
// instruction constructors.
func NewEngine(reg *types.Registry, b emit.InstrBuilder) *Engine {
	return &Engine{reg: reg, b: b}
}

// chain is the "tagged result of conversion" design note in spec.md §9: a
// scoped latch shared across one top-level Convert call and all the
// recursive sub-conversions it triggers, so an illegal implicit
// conversion is reported once at the outermost site regardless of chain
// depth.
type chain struct {
	reported bool
}

// Convert converts src (typed srcType) to targetType, recording at most
// one diagnostic on diags if the conversion is an implicit narrowing or
// cross-family conversion attempted with explicit == false.
func (e *Engine) Convert(node ast.Node, diags *diag.Bag, src emit.Expr, srcType, targetType *types.PrimitiveType, explicit bool) emit.Expr {
	return e.convert(node, diags, src, srcType, targetType, explicit, &chain{})
}

func (e *Engine) convert(node ast.Node, diags *diag.Bag, src emit.Expr, srcType, targetType *types.PrimitiveType, explicit bool, c *chain) emit.Expr {
	// Rule 1: identity.
	if srcType.Kind == targetType.Kind {
		return src
	}

	illegal := func() {
		if !c.reported {
			diags.Errorf(node, "implicit conversion from %s to %s requires an explicit cast", srcType, targetType)
			c.reported = true
		}
	}

	switch {
	case srcType.IsFloat():
		return e.fromFloat(node, diags, src, srcType, targetType, explicit, c, illegal)
	case targetType.IsFloat():
		return e.toFloat(src, srcType, targetType, explicit, illegal)
	case srcType.IsLong() != targetType.IsLong():
		return e.acrossWordBoundary(node, diags, src, srcType, targetType, explicit, c, illegal)
	default:
		// Both operands are in the same integer family (both <=32-bit or
		// both 64-bit): rule 5, int-to-int narrowing/widening.
		return e.intToInt(src, srcType, targetType, explicit, illegal)
	}
}

// fromFloat implements rule 2.
func (e *Engine) fromFloat(node ast.Node, diags *diag.Bag, src emit.Expr, srcType, targetType *types.PrimitiveType, explicit bool, c *chain, illegal func()) emit.Expr {
	if targetType.IsFloat() {
		if targetType.Size > srcType.Size {
			// f32 -> f64 is the only implicit-safe float conversion.
			return e.b.F64PromoteF32(src)
		}
		if !explicit {
			illegal()
		}
		return e.b.F32DemoteF64(src)
	}

	// Float -> integer: every case requires an explicit cast.
	if !explicit {
		illegal()
	}

	signed := targetType.IsSigned()
	var truncated emit.Expr
	var intermediate *types.PrimitiveType
	if targetType.IsLong() {
		if srcType.Kind == types.Float {
			if signed {
				truncated = e.b.I64TruncF32S(src)
			} else {
				truncated = e.b.I64TruncF32U(src)
			}
		} else {
			if signed {
				truncated = e.b.I64TruncF64S(src)
			} else {
				truncated = e.b.I64TruncF64U(src)
			}
		}
		return truncated
	}

	if srcType.Kind == types.Float {
		if signed {
			truncated = e.b.I32TruncF32S(src)
		} else {
			truncated = e.b.I32TruncF32U(src)
		}
	} else {
		if signed {
			truncated = e.b.I32TruncF64S(src)
		} else {
			truncated = e.b.I32TruncF64U(src)
		}
	}
	if signed {
		intermediate = e.reg.Lookup(types.Int)
	} else {
		intermediate = e.reg.Lookup(types.UInt)
	}
	// Sub-word integer normalization: i32.trunc always yields a full i32,
	// so narrow it to the real target width through the ordinary int-to-int
	// path, already in explicit mode since the illegal float conversion
	// (if any) was reported above.
	return e.convert(node, diags, truncated, intermediate, targetType, true, c)
}

// toFloat implements rule 3 (srcType is integer, targetType is float).
func (e *Engine) toFloat(src emit.Expr, srcType, targetType *types.PrimitiveType, explicit bool, illegal func()) emit.Expr {
	var implicitOK bool
	if targetType.Kind == types.Float {
		implicitOK = srcType.IsInt() && srcType.Size <= 2
	} else {
		implicitOK = srcType.IsInt()
	}
	if !implicitOK && !explicit {
		illegal()
	}

	signed := srcType.IsSigned()
	if srcType.IsLong() {
		if targetType.Kind == types.Float {
			if signed {
				return e.b.F32ConvertI64S(src)
			}
			return e.b.F32ConvertI64U(src)
		}
		if signed {
			return e.b.F64ConvertI64S(src)
		}
		return e.b.F64ConvertI64U(src)
	}
	if targetType.Kind == types.Float {
		if signed {
			return e.b.F32ConvertI32S(src)
		}
		return e.b.F32ConvertI32U(src)
	}
	if signed {
		return e.b.F64ConvertI32S(src)
	}
	return e.b.F64ConvertI32U(src)
}

// acrossWordBoundary implements rule 4: one operand is <=32-bit, the other
// is 64-bit.
func (e *Engine) acrossWordBoundary(node ast.Node, diags *diag.Bag, src emit.Expr, srcType, targetType *types.PrimitiveType, explicit bool, c *chain, illegal func()) emit.Expr {
	if targetType.IsLong() {
		// Widening is always implicit-legal.
		if targetType.IsSigned() {
			return e.b.I64ExtendI32S(src)
		}
		return e.b.I64ExtendI32U(src)
	}

	// Narrowing long -> int family is implicit-illegal.
	if !explicit {
		illegal()
	}
	wrapped := e.b.I32WrapI64(src)
	intermediate := e.reg.Lookup(types.Int)
	return e.convert(node, diags, wrapped, intermediate, targetType, true, c)
}

// intToInt implements rule 5, shared by true <=32-bit int-to-int
// conversions and same-size 64-bit reinterpretation (long <-> ulong),
// since the latter always satisfies "target size >= source size" and so
// always passes through unchanged under this same rule.
func (e *Engine) intToInt(src emit.Expr, srcType, targetType *types.PrimitiveType, explicit bool, illegal func()) emit.Expr {
	if targetType.Size >= srcType.Size {
		return src
	}

	if !explicit {
		illegal()
	}

	if targetType.IsSigned() {
		shift := int32(targetType.Shift32())
		shifted := e.b.I32Shl(src, e.b.I32Const(shift))
		return e.b.I32ShrS(shifted, e.b.I32Const(shift))
	}
	return e.b.I32And(src, e.b.I32Const(int32(targetType.Mask32())))
}
