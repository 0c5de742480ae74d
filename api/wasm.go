// Package api holds the wasm-level value type constants shared by
// internal/types, internal/emit, and internal/emit/wasmbin, plus external
// kind constants and f32/f64 bit-cast helpers.
//
// Adapted from tetratelabs/wazero's api package: that package additionally
// defines the post-instantiation runtime surface (Module, Function,
// Memory, Global) for calling into a running wasm instance. This compiler
// never instantiates or runs a module - it only emits one - so that
// surface is dropped; only the encoding-level constants and the
// float-bits helpers survive. internal/emit/wasmbin keeps its own extern
// kind constants and encodes f32.const/f64.const immediates itself.
package api

import (
	"fmt"
	"math"
)

// ExternType classifies imports and exports with their respective types.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#external-types%E2%91%A0
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// ValueType describes a numeric type used in WebAssembly 1.0 (20191205).
// Function parameters, results, locals, and globals are only definable as
// a value type.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-valtype
type ValueType = byte

const (
	// ValueTypeI32 is a 32-bit integer.
	ValueTypeI32 ValueType = 0x7f
	// ValueTypeI64 is a 64-bit integer.
	ValueTypeI64 ValueType = 0x7e
	// ValueTypeF32 is a 32-bit floating point number.
	ValueTypeF32 ValueType = 0x7d
	// ValueTypeF64 is a 64-bit floating point number.
	ValueTypeF64 ValueType = 0x7c
	// ValueTypeVoid marks a function as returning nothing. It never
	// appears on the wire (a void-returning function's type simply has
	// zero results); it exists so internal/types can give every
	// PrimitiveType a ValueType-shaped projection.
	ValueTypeVoid ValueType = 0x00
)

// ValueTypeName returns the WebAssembly text format name of t, or t in
// hexadecimal (e.g. "0x64") if t is not one of the ValueType constants above.
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeVoid:
		return "void"
	}
	return fmt.Sprintf("%#x", t)
}

// EncodeF32 bit-casts input to the uint32 wasm uses to carry an f32.const
// immediate.
func EncodeF32(input float32) uint32 {
	return math.Float32bits(input)
}

// EncodeF64 bit-casts input to the uint64 wasm uses to carry an f64.const
// immediate.
func EncodeF64(input float64) uint64 {
	return math.Float64bits(input)
}
