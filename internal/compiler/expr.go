package compiler

import (
	"strconv"
	"strings"

	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/internal/convert"
	"github.com/EdForge/assemblyscript-go/internal/diag"
	"github.com/EdForge/assemblyscript-go/internal/emit"
	"github.com/EdForge/assemblyscript-go/internal/types"
)

// LocalSlot is spec.md §3's LocalSlot: a parameter or local's wasm slot
// index and primitive type, scoped to one function body.
type LocalSlot struct {
	Index uint32
	Type  *types.PrimitiveType
}

// Lowerer is spec.md §4.F's expression lowerer: recursive descent with a
// contextual type threaded downward and an inferred type returned upward.
// Per the design note in spec.md §9, inferred type is returned alongside
// the expression handle rather than attached to the node.
type Lowerer struct {
	reg    *types.Registry
	conv   *convert.Engine
	b      emit.InstrBuilder
	diags  *diag.Bag
	locals map[string]LocalSlot
	consts map[string]*Constant
}

// NewLowerer builds a Lowerer bound to one function body's local-slot map.
func NewLowerer(reg *types.Registry, conv *convert.Engine, b emit.InstrBuilder, diags *diag.Bag, locals map[string]LocalSlot, consts map[string]*Constant) *Lowerer {
	return &Lowerer{reg: reg, conv: conv, b: b, diags: diags, locals: locals, consts: consts}
}

// Lower lowers node under ctx, returning the emitted expression and its
// inferred type.
func (l *Lowerer) Lower(node ast.Expr, ctx *types.PrimitiveType) (emit.Expr, *types.PrimitiveType) {
	switch e := node.(type) {
	case *ast.ParenExpr:
		return l.Lower(e.Inner, ctx)

	case *ast.AsExpr:
		target, err := l.reg.Resolve(e.Type, false)
		if err != nil {
			l.diags.Errorf(e, "%s", err)
			return l.b.Unreachable(), ctx
		}
		inner, innerType := l.Lower(e.Inner, ctx)
		return l.conv.Convert(e, l.diags, inner, innerType, target, true), target

	case *ast.BinaryExpr:
		return l.lowerBinary(e, ctx)

	case *ast.NumericLiteral:
		return l.lowerNumericLiteral(e, ctx)

	case *ast.BoolLiteral:
		v := int32(0)
		if e.Value {
			v = 1
		}
		return l.b.I32Const(v), ctx

	case *ast.Identifier:
		slot, ok := l.locals[e.Name]
		if !ok {
			l.diags.Errorf(e, "undefined identifier %q", e.Name)
			return l.b.Unreachable(), ctx
		}
		return l.b.GetLocal(slot.Index, slot.Type.ValueType()), slot.Type

	case *ast.PropertyAccessExpr:
		return l.lowerPropertyAccess(e, ctx)

	default:
		l.diags.Errorf(node, "unsupported expression kind")
		return l.b.Unreachable(), ctx
	}
}

func (l *Lowerer) lowerPropertyAccess(e *ast.PropertyAccessExpr, ctx *types.PrimitiveType) (emit.Expr, *types.PrimitiveType) {
	if target, ok := e.Target.(*ast.Identifier); ok {
		if c, ok := l.consts[target.Name+"$"+e.Name]; ok {
			return constExpr(l.b, c.Type, c.Value), c.Type
		}
	}
	l.diags.Errorf(e, "unsupported property access")
	return l.b.Unreachable(), ctx
}

func constExpr(b emit.InstrBuilder, t *types.PrimitiveType, v int64) emit.Expr {
	if t.IsLong() {
		return b.I64Const(v)
	}
	return b.I32Const(int32(v))
}

// lowerBinary implements spec.md §4.F's binary-operator rule: lower both
// sides under the outer contextual type to learn their natural types,
// pick a result type (wider float wins; else wider integer, 64-bit beats
// 32-bit; equal size breaks toward the left operand), re-lower both sides
// under that result type, and coerce each through the conversion engine.
func (l *Lowerer) lowerBinary(e *ast.BinaryExpr, ctx *types.PrimitiveType) (emit.Expr, *types.PrimitiveType) {
	_, leftType := l.Lower(e.Left, ctx)
	_, rightType := l.Lower(e.Right, ctx)

	result := binaryResultType(leftType, rightType)

	leftExpr, leftInferred := l.Lower(e.Left, result)
	leftExpr = l.conv.Convert(e.Left, l.diags, leftExpr, leftInferred, result, false)

	rightExpr, rightInferred := l.Lower(e.Right, result)
	rightExpr = l.conv.Convert(e.Right, l.diags, rightExpr, rightInferred, result, false)

	out, ok := l.emitBinaryOp(e, leftExpr, rightExpr, result)
	if !ok {
		l.diags.Errorf(e, "unsupported operator %q", e.Op)
		return l.b.Unreachable(), result
	}
	return out, result
}

func binaryResultType(left, right *types.PrimitiveType) *types.PrimitiveType {
	if left.IsFloat() || right.IsFloat() {
		if left.IsFloat() && right.IsFloat() {
			if left.Size >= right.Size {
				return left
			}
			return right
		}
		if left.IsFloat() {
			return left
		}
		return right
	}
	if left.Size >= right.Size {
		return left
	}
	return right
}

func (l *Lowerer) emitBinaryOp(e *ast.BinaryExpr, left, right emit.Expr, result *types.PrimitiveType) (emit.Expr, bool) {
	switch {
	case result.Kind == types.Float:
		return l.emitF32Op(e.Op, left, right)
	case result.Kind == types.Double:
		return l.emitF64Op(e.Op, left, right)
	case result.IsLong():
		return l.emitI64Op(e.Op, left, right, result.IsSigned())
	default:
		return l.emitI32Op(e.Op, left, right, result.IsSigned())
	}
}

func (l *Lowerer) emitF32Op(op string, left, right emit.Expr) (emit.Expr, bool) {
	switch op {
	case "+":
		return l.b.F32Add(left, right), true
	case "-":
		return l.b.F32Sub(left, right), true
	case "*":
		return l.b.F32Mul(left, right), true
	case "/":
		return l.b.F32Div(left, right), true
	default:
		return nil, false
	}
}

func (l *Lowerer) emitF64Op(op string, left, right emit.Expr) (emit.Expr, bool) {
	switch op {
	case "+":
		return l.b.F64Add(left, right), true
	case "-":
		return l.b.F64Sub(left, right), true
	case "*":
		return l.b.F64Mul(left, right), true
	case "/":
		return l.b.F64Div(left, right), true
	default:
		return nil, false
	}
}

func (l *Lowerer) emitI64Op(op string, left, right emit.Expr, signed bool) (emit.Expr, bool) {
	switch op {
	case "+":
		return l.b.I64Add(left, right), true
	case "-":
		return l.b.I64Sub(left, right), true
	case "*":
		return l.b.I64Mul(left, right), true
	case "/":
		if signed {
			return l.b.I64DivS(left, right), true
		}
		return l.b.I64DivU(left, right), true
	case "%":
		if signed {
			return l.b.I64RemS(left, right), true
		}
		return l.b.I64RemU(left, right), true
	case "&":
		return l.b.I64And(left, right), true
	case "|":
		return l.b.I64Or(left, right), true
	case "^":
		return l.b.I64Xor(left, right), true
	case "<<":
		return l.b.I64Shl(left, right), true
	case ">>":
		if signed {
			return l.b.I64ShrS(left, right), true
		}
		return l.b.I64ShrU(left, right), true
	default:
		return nil, false
	}
}

func (l *Lowerer) emitI32Op(op string, left, right emit.Expr, signed bool) (emit.Expr, bool) {
	switch op {
	case "+":
		return l.b.I32Add(left, right), true
	case "-":
		return l.b.I32Sub(left, right), true
	case "*":
		return l.b.I32Mul(left, right), true
	case "/":
		if signed {
			return l.b.I32DivS(left, right), true
		}
		return l.b.I32DivU(left, right), true
	case "%":
		if signed {
			return l.b.I32RemS(left, right), true
		}
		return l.b.I32RemU(left, right), true
	case "&":
		return l.b.I32And(left, right), true
	case "|":
		return l.b.I32Or(left, right), true
	case "^":
		return l.b.I32Xor(left, right), true
	case "<<":
		return l.b.I32Shl(left, right), true
	case ">>":
		if signed {
			return l.b.I32ShrS(left, right), true
		}
		return l.b.I32ShrU(left, right), true
	default:
		return nil, false
	}
}

// lowerNumericLiteral implements spec.md §4.F's numeric-literal rule. The
// masking formula follows design note (a)'s fix: (1 << (8*size)) - 1
// rather than the source's off-by-one (size << 8) - 1.
func (l *Lowerer) lowerNumericLiteral(e *ast.NumericLiteral, ctx *types.PrimitiveType) (emit.Expr, *types.PrimitiveType) {
	inferred := ctx
	if e.Kind == ast.LiteralFloat && !ctx.IsFloat() {
		inferred = l.reg.Lookup(types.Double)
	}

	if inferred.IsFloat() {
		v, _ := strconv.ParseFloat(e.Text, 64)
		if inferred.Kind == types.Float {
			return l.b.F32Const(float32(v)), inferred
		}
		return l.b.F64Const(v), inferred
	}

	if inferred.IsLong() {
		v := parseIntLiteral(e.Text, e.Kind)
		return l.b.I64Const(int64(v)), inferred
	}

	if inferred.Kind == types.Bool {
		v := parseIntLiteral(e.Text, e.Kind)
		if v != 0 {
			return l.b.I32Const(1), inferred
		}
		return l.b.I32Const(0), inferred
	}

	v := parseIntLiteral(e.Text, e.Kind)
	if inferred.Size < 4 {
		mask := uint64(1)<<(8*uint(inferred.Size)) - 1
		v &= mask
	}
	return l.b.I32Const(int32(uint32(v))), inferred
}

func parseIntLiteral(text string, kind ast.LiteralKind) uint64 {
	base := 10
	t := text
	if kind == ast.LiteralHexInt {
		base = 16
		t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	}
	v, _ := strconv.ParseUint(t, base, 64)
	return v
}

// lowerConstExpr supports the limited constant-initializer grammar wasm
// global initializers require: a bare numeric or bool literal.
func lowerConstExpr(reg *types.Registry, diags *diag.Bag, node ast.Expr, ctx *types.PrimitiveType, b emit.InstrBuilder) (emit.Expr, error) {
	l := NewLowerer(reg, convert.NewEngine(reg, b), b, diags, nil, nil)
	switch node.(type) {
	case *ast.NumericLiteral, *ast.BoolLiteral:
		out, _ := l.Lower(node, ctx)
		return out, nil
	default:
		return nil, diag.Fatalf(node, "unsupported global initializer: only numeric and bool literals are constant-foldable")
	}
}
