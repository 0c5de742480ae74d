//go:build !(amd64 && cgo) || windows

package conformance

import "errors"

var errUnsupported = errors.New("conformance: wasmtime-go/wasmer-go require amd64+cgo and are unavailable on this platform")

func runWasmtime(_ []byte, _ string, _ []Import, _ []interface{}) ([]interface{}, error) {
	return nil, errUnsupported
}

func runWasmer(_ []byte, _ string, _ []Import, _ []interface{}) ([]interface{}, error) {
	return nil, errUnsupported
}
