// Package conformance runs a compiled wasm module through real,
// independent wasm engines (wasmtime-go, wasmer-go) and calls an exported
// function, so the compiler's test suite can assert on actual execution
// results rather than just the shape of the emitted bytes.
//
// This is the cross-engine discipline the teacher repo applies in
// vs/bench_fac_iter_test.go (run the same module on wazero, wasmer-go,
// wasmtime-go, and go-wasm3 side by side); here it is generalized into a
// small reusable harness instead of a one-off benchmark file, since this
// repository does not own a wasm runtime of its own to compare against.
package conformance

import (
	"fmt"

	"github.com/EdForge/assemblyscript-go/api"
)

// Import describes one host function a module under test expects to
// import. Fn receives arguments already converted to their Go numeric
// type (int32, int64, float32, or float64, matching Params) and must
// return a slice matching Results in the same way.
type Import struct {
	Module  string
	Field   string
	Params  []api.ValueType
	Results []api.ValueType
	Fn      func(args []interface{}) []interface{}
}

// Engine identifies which independent runtime executed a module.
type Engine string

const (
	EngineWasmtime Engine = "wasmtime-go"
	EngineWasmer   Engine = "wasmer-go"
)

// Result is the outcome of calling one exported function on one engine.
type Result struct {
	Engine Engine
	Values []interface{}
}

// Run calls entry in module on every engine this package supports and
// returns one Result per engine, in a deterministic order, so callers can
// assert every engine agrees. It fails fast on the first engine error.
func Run(module []byte, entry string, imports []Import, args []interface{}) ([]Result, error) {
	wt, err := runWasmtime(module, entry, imports, args)
	if err != nil {
		return nil, fmt.Errorf("conformance: wasmtime-go: %w", err)
	}
	wr, err := runWasmer(module, entry, imports, args)
	if err != nil {
		return nil, fmt.Errorf("conformance: wasmer-go: %w", err)
	}
	return []Result{
		{Engine: EngineWasmtime, Values: wt},
		{Engine: EngineWasmer, Values: wr},
	}, nil
}
