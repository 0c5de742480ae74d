//go:build amd64 && cgo && !windows

package conformance

import (
	"fmt"

	"github.com/wasmerio/wasmer-go/wasmer"

	"github.com/EdForge/assemblyscript-go/api"
)

func wasmerValKind(t api.ValueType) wasmer.ValueKind {
	switch t {
	case api.ValueTypeI32:
		return wasmer.I32
	case api.ValueTypeI64:
		return wasmer.I64
	case api.ValueTypeF32:
		return wasmer.F32
	case api.ValueTypeF64:
		return wasmer.F64
	default:
		panic(fmt.Sprintf("conformance: unsupported value type %s", api.ValueTypeName(t)))
	}
}

func wasmerValueTypes(types []api.ValueType) []*wasmer.ValueType {
	out := make([]*wasmer.ValueType, len(types))
	for i, t := range types {
		out[i] = wasmer.NewValueType(wasmerValKind(t))
	}
	return out
}

func wasmerValueToGo(v wasmer.Value) interface{} {
	switch v.Kind() {
	case wasmer.I32:
		return v.I32()
	case wasmer.I64:
		return v.I64()
	case wasmer.F32:
		return v.F32()
	case wasmer.F64:
		return v.F64()
	default:
		panic("conformance: unsupported wasmer value kind")
	}
}

func goToWasmerValue(v interface{}) wasmer.Value {
	switch n := v.(type) {
	case int32:
		return wasmer.NewI32(n)
	case int64:
		return wasmer.NewI64(n)
	case float32:
		return wasmer.NewF32(n)
	case float64:
		return wasmer.NewF64(n)
	default:
		panic(fmt.Sprintf("conformance: unsupported argument type %T", v))
	}
}

func runWasmer(module []byte, entry string, imports []Import, args []interface{}) ([]interface{}, error) {
	store := wasmer.NewStore(wasmer.NewEngine())

	mod, err := wasmer.NewModule(store, module)
	if err != nil {
		return nil, err
	}

	importObject := wasmer.NewImportObject()
	byModule := map[string]map[string]wasmer.IntoExtern{}
	for _, imp := range imports {
		imp := imp
		ty := wasmer.NewFunctionType(wasmerValueTypes(imp.Params), wasmerValueTypes(imp.Results))
		fn := wasmer.NewFunction(store, ty, func(vals []wasmer.Value) ([]wasmer.Value, error) {
			goArgs := make([]interface{}, len(vals))
			for j, v := range vals {
				goArgs[j] = wasmerValueToGo(v)
			}
			results := imp.Fn(goArgs)
			out := make([]wasmer.Value, len(results))
			for j, r := range results {
				out[j] = goToWasmerValue(r)
			}
			return out, nil
		})
		m := byModule[imp.Module]
		if m == nil {
			m = map[string]wasmer.IntoExtern{}
			byModule[imp.Module] = m
		}
		m[imp.Field] = fn
	}
	for mod, fields := range byModule {
		importObject.Register(mod, fields)
	}

	instance, err := wasmer.NewInstance(mod, importObject)
	if err != nil {
		return nil, err
	}

	fn, err := instance.Exports.GetFunction(entry)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("export %q not found or not a function", entry)
	}

	raw, err := fn(args...)
	if err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return v, nil
	default:
		return []interface{}{v}, nil
	}
}
