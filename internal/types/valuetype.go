package types

import "github.com/EdForge/assemblyscript-go/api"

// ValueType projects a PrimitiveType onto the wasm value type used to
// represent it at the wasm boundary: locals, parameters, results, and
// globals all speak in these four (plus the zero-result "void").
func (t *PrimitiveType) ValueType() api.ValueType {
	switch {
	case t.Kind == Void:
		return api.ValueTypeVoid
	case t.Kind == Float:
		return api.ValueTypeF32
	case t.Kind == Double:
		return api.ValueTypeF64
	case t.Size == 8:
		return api.ValueTypeI64
	default:
		return api.ValueTypeI32
	}
}
