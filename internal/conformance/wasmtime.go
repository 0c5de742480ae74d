//go:build amd64 && cgo && !windows

package conformance

import (
	"fmt"

	"github.com/bytecodealliance/wasmtime-go"

	"github.com/EdForge/assemblyscript-go/api"
)

func wasmtimeValKind(t api.ValueType) wasmtime.ValKind {
	switch t {
	case api.ValueTypeI32:
		return wasmtime.KindI32
	case api.ValueTypeI64:
		return wasmtime.KindI64
	case api.ValueTypeF32:
		return wasmtime.KindF32
	case api.ValueTypeF64:
		return wasmtime.KindF64
	default:
		panic(fmt.Sprintf("conformance: unsupported value type %s", api.ValueTypeName(t)))
	}
}

func wasmtimeValTypes(types []api.ValueType) []*wasmtime.ValType {
	out := make([]*wasmtime.ValType, len(types))
	for i, t := range types {
		out[i] = wasmtime.NewValType(wasmtimeValKind(t))
	}
	return out
}

func wasmtimeValToGo(v wasmtime.Val) interface{} {
	switch v.Kind() {
	case wasmtime.KindI32:
		return v.I32()
	case wasmtime.KindI64:
		return v.I64()
	case wasmtime.KindF32:
		return v.F32()
	case wasmtime.KindF64:
		return v.F64()
	default:
		panic("conformance: unsupported wasmtime value kind")
	}
}

func runWasmtime(module []byte, entry string, imports []Import, args []interface{}) ([]interface{}, error) {
	engine := wasmtime.NewEngine()
	store := wasmtime.NewStore(engine)

	mod, err := wasmtime.NewModule(engine, module)
	if err != nil {
		return nil, err
	}

	externs := make([]wasmtime.AsExtern, len(imports))
	for i, imp := range imports {
		imp := imp
		ty := wasmtime.NewFuncType(wasmtimeValTypes(imp.Params), wasmtimeValTypes(imp.Results))
		fn := wasmtime.NewFunc(store, ty, func(_ *wasmtime.Caller, vals []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
			goArgs := make([]interface{}, len(vals))
			for j, v := range vals {
				goArgs[j] = wasmtimeValToGo(v)
			}
			results := imp.Fn(goArgs)
			out := make([]wasmtime.Val, len(results))
			for j, r := range results {
				out[j] = wasmtime.ValFromI64(0)
				switch v := r.(type) {
				case int32:
					out[j] = wasmtime.ValFromI32(v)
				case int64:
					out[j] = wasmtime.ValFromI64(v)
				case float32:
					out[j] = wasmtime.ValFromF32(v)
				case float64:
					out[j] = wasmtime.ValFromF64(v)
				}
			}
			return out, nil
		})
		externs[i] = fn
	}

	instance, err := wasmtime.NewInstance(store, mod, externs)
	if err != nil {
		return nil, err
	}

	fn := instance.GetFunc(store, entry)
	if fn == nil {
		return nil, fmt.Errorf("export %q not found or not a function", entry)
	}

	raw, err := fn.Call(store, args...)
	if err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []wasmtime.Val:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = wasmtimeValToGo(val)
		}
		return out, nil
	default:
		return []interface{}{v}, nil
	}
}
