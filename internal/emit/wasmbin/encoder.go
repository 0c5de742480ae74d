// Package wasmbin is a from-scratch concrete implementation of
// internal/emit's Builder contract: it assembles the instruction handles
// the conversion engine and expression lowerer produce into an actual
// wasm binary module, section by section.
package wasmbin

import (
	"github.com/EdForge/assemblyscript-go/api"
	"github.com/EdForge/assemblyscript-go/internal/emit"
)

var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}
var wasmVersion = []byte{0x01, 0x00, 0x00, 0x00}

type funcSig struct {
	params []api.ValueType
	result api.ValueType // api.ValueTypeVoid means no result
}

func sigKey(params []api.ValueType, result api.ValueType) string {
	b := make([]byte, 0, len(params)+1)
	b = append(b, params...)
	b = append(b, result)
	return string(b)
}

type funcImport struct {
	module, name string
	sigIdx       int
}

type localFunc struct {
	name   string
	sigIdx int
	locals []api.ValueType
	body   []byte
}

type exportEntry struct {
	name string
	idx  uint32
}

type globalEntry struct {
	valueType api.ValueType
	mutable   bool
	init      []byte
}

type memoryDecl struct {
	initialPages, maximumPages uint32
	name                       string
	segments                   []emit.DataSegment
}

// Encoder accumulates module structure and instruction bytes until Bytes
// assembles the final wasm binary. It implements emit.Builder.
//
// AddImport must be called, for every import, before the first AddFunction
// call: function indices are assigned as imports are registered, assuming
// the import section is complete before any locally-defined function claims
// an index (spec.md's two-pass pipeline guarantees this - pass 1 registers
// every import, pass 2 adds bodies).
type Encoder struct {
	types     []funcSig
	typeCache map[string]int

	imports []funcImport
	funcs   []localFunc
	exports []exportEntry
	globals []globalEntry
	memory  *memoryDecl
	start   *uint32
}

// New returns an empty Encoder.
func New() *Encoder {
	return &Encoder{typeCache: make(map[string]int)}
}

func (e *Encoder) SetMemory(initialPages, maximumPages uint32, name string, segments []emit.DataSegment) {
	e.memory = &memoryDecl{initialPages: initialPages, maximumPages: maximumPages, name: name, segments: segments}
}

func (e *Encoder) AddFunctionType(key string, paramTypes []api.ValueType, returnType api.ValueType) emit.SignatureHandle {
	if idx, ok := e.typeCache[key]; ok {
		return emit.SignatureHandle(idx)
	}
	idx := len(e.types)
	cp := make([]api.ValueType, len(paramTypes))
	copy(cp, paramTypes)
	e.types = append(e.types, funcSig{params: cp, result: returnType})
	e.typeCache[key] = idx
	return emit.SignatureHandle(idx)
}

func (e *Encoder) AddFunction(name string, sig emit.SignatureHandle, additionalLocalTypes []api.ValueType, body emit.Expr) emit.FunctionHandle {
	idx := uint32(len(e.imports) + len(e.funcs))
	e.funcs = append(e.funcs, localFunc{
		name:   name,
		sigIdx: int(sig),
		locals: additionalLocalTypes,
		body:   body.([]byte),
	})
	return emit.FunctionHandle(idx)
}

func (e *Encoder) AddImport(internalName, externalModule, externalName string, sig emit.SignatureHandle) emit.FunctionHandle {
	idx := uint32(len(e.imports))
	e.imports = append(e.imports, funcImport{module: externalModule, name: externalName, sigIdx: int(sig)})
	_ = internalName // the wasm import itself carries no internal name; callers key off the returned handle
	return emit.FunctionHandle(idx)
}

func (e *Encoder) AddExport(internalName, externalName string) {
	idx, ok := e.funcIndexByInternalName(internalName)
	if !ok {
		panic("wasmbin: AddExport references unknown function " + internalName)
	}
	e.exports = append(e.exports, exportEntry{name: externalName, idx: idx})
}

func (e *Encoder) funcIndexByInternalName(name string) (uint32, bool) {
	for i, f := range e.funcs {
		if f.name == name {
			return uint32(len(e.imports) + i), true
		}
	}
	for i, im := range e.imports {
		if im.name == name {
			return uint32(i), true
		}
	}
	return 0, false
}

func (e *Encoder) AddGlobal(internalName string, valueType api.ValueType, mutable bool, init emit.Expr) uint32 {
	idx := uint32(len(e.globals))
	e.globals = append(e.globals, globalEntry{valueType: valueType, mutable: mutable, init: init.([]byte)})
	return idx
}

func (e *Encoder) SetStart(fn emit.FunctionHandle) {
	idx := uint32(fn)
	e.start = &idx
}

// Bytes assembles the complete wasm binary module.
func (e *Encoder) Bytes() []byte {
	var out []byte
	out = append(out, wasmMagic...)
	out = append(out, wasmVersion...)

	out = append(out, e.emitTypeSection()...)
	out = append(out, e.emitImportSection()...)
	out = append(out, e.emitFunctionSection()...)
	if e.memory != nil {
		out = append(out, e.emitMemorySection()...)
	}
	if len(e.globals) > 0 {
		out = append(out, e.emitGlobalSection()...)
	}
	out = append(out, e.emitExportSection()...)
	if e.start != nil {
		out = append(out, e.emitStartSection()...)
	}
	out = append(out, e.emitCodeSection()...)
	return out
}

func encodeSection(id byte, body []byte) []byte {
	out := []byte{id}
	out = encodeU32(out, uint32(len(body)))
	return append(out, body...)
}

func encodeVector(count int, body []byte) []byte {
	out := encodeU32(nil, uint32(count))
	return append(out, body...)
}

func (e *Encoder) emitTypeSection() []byte {
	var contents []byte
	for _, sig := range e.types {
		contents = append(contents, funcTypeTag)
		contents = encodeU32(contents, uint32(len(sig.params)))
		contents = append(contents, sig.params...)
		if sig.result == api.ValueTypeVoid {
			contents = encodeU32(contents, 0)
		} else {
			contents = encodeU32(contents, 1)
			contents = append(contents, sig.result)
		}
	}
	return encodeSection(sectionType, encodeVector(len(e.types), contents))
}

func (e *Encoder) emitImportSection() []byte {
	if len(e.imports) == 0 {
		return nil
	}
	var contents []byte
	for _, im := range e.imports {
		contents = encodeName(contents, im.module)
		contents = encodeName(contents, im.name)
		contents = append(contents, externKindFunc)
		contents = encodeU32(contents, uint32(im.sigIdx))
	}
	return encodeSection(sectionImport, encodeVector(len(e.imports), contents))
}

func (e *Encoder) emitFunctionSection() []byte {
	var contents []byte
	for _, f := range e.funcs {
		contents = encodeU32(contents, uint32(f.sigIdx))
	}
	return encodeSection(sectionFunction, encodeVector(len(e.funcs), contents))
}

func (e *Encoder) emitMemorySection() []byte {
	var contents []byte
	if e.memory.maximumPages == 0 {
		contents = append(contents, 0x00)
		contents = encodeU32(contents, e.memory.initialPages)
	} else {
		contents = append(contents, 0x01)
		contents = encodeU32(contents, e.memory.initialPages)
		contents = encodeU32(contents, e.memory.maximumPages)
	}
	return encodeSection(sectionMemory, encodeVector(1, contents))
}

func (e *Encoder) emitGlobalSection() []byte {
	var contents []byte
	for _, g := range e.globals {
		contents = append(contents, g.valueType)
		if g.mutable {
			contents = append(contents, 0x01)
		} else {
			contents = append(contents, 0x00)
		}
		contents = append(contents, g.init...)
		contents = append(contents, opEnd)
	}
	return encodeSection(sectionGlobal, encodeVector(len(e.globals), contents))
}

func (e *Encoder) emitExportSection() []byte {
	exportMemory := e.memory != nil
	total := len(e.exports)
	if exportMemory {
		total++
	}
	var contents []byte
	for _, exp := range e.exports {
		contents = encodeName(contents, exp.name)
		contents = append(contents, externKindFunc)
		contents = encodeU32(contents, exp.idx)
	}
	if exportMemory {
		name := e.memory.name
		if name == "" {
			name = "memory"
		}
		contents = encodeName(contents, name)
		contents = append(contents, externKindMemory)
		contents = encodeU32(contents, 0)
	}
	return encodeSection(sectionExport, encodeVector(total, contents))
}

func (e *Encoder) emitStartSection() []byte {
	return encodeSection(sectionStart, encodeU32(nil, *e.start))
}

func (e *Encoder) emitCodeSection() []byte {
	var contents []byte
	for _, f := range e.funcs {
		body := encodeLocals(f.locals)
		body = append(body, f.body...)
		body = append(body, opEnd)
		contents = encodeU32(contents, uint32(len(body)))
		contents = append(contents, body...)
	}
	return encodeSection(sectionCode, encodeVector(len(e.funcs), contents))
}

// encodeLocals groups consecutive equal local types into the compact
// (count, type) run-length form the wasm binary format requires.
func encodeLocals(types []api.ValueType) []byte {
	if len(types) == 0 {
		return encodeU32(nil, 0)
	}
	type run struct {
		count uint32
		typ   api.ValueType
	}
	var runs []run
	for _, t := range types {
		if len(runs) > 0 && runs[len(runs)-1].typ == t {
			runs[len(runs)-1].count++
		} else {
			runs = append(runs, run{count: 1, typ: t})
		}
	}
	out := encodeU32(nil, uint32(len(runs)))
	for _, r := range runs {
		out = encodeU32(out, r.count)
		out = append(out, r.typ)
	}
	return out
}
