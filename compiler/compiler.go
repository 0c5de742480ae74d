// Package compiler is the entry point of this module: it wires the
// two-pass pipeline in internal/compiler together with a concrete
// internal/emit/wasmbin encoder and produces a finished wasm binary plus
// the diagnostics accumulated along the way.
package compiler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/internal/compiler"
	"github.com/EdForge/assemblyscript-go/internal/diag"
	"github.com/EdForge/assemblyscript-go/internal/emit/wasmbin"
	"github.com/EdForge/assemblyscript-go/internal/types"
)

// Config controls compilation. The zero value is not usable; build one
// with NewConfig and the With* chain (mirrors wazero's
// RuntimeConfig/clone()/With* idiom).
type Config struct {
	wordSize         int
	declarationPath  string
	logger           *zap.Logger
	memoryInitPages  uint32
	memoryMaxPages   uint32
	memoryName       string
}

var engineLessConfig = &Config{
	wordSize:        4,
	logger:          zap.NewNop(),
	memoryInitPages: 256,
	memoryMaxPages:  0,
	memoryName:      "memory",
}

// NewConfig returns the default configuration: 32-bit pointers, no
// declaration file, and a no-op logger.
func NewConfig() *Config {
	return engineLessConfig.clone()
}

func (c *Config) clone() *Config {
	ret := *c
	return &ret
}

// WithWordSize selects the target pointer width in bytes: 4 or 8
// (spec.md §4.A). Any other value is rejected at Compile time.
func (c *Config) WithWordSize(wordSize int) *Config {
	ret := c.clone()
	ret.wordSize = wordSize
	return ret
}

// WithDeclarationFile records the path of the bundled declaration file.
// Compile does not read this path - the file itself must already be
// present among the ast.File values passed to Compile with IsDeclaration
// set.
func (c *Config) WithDeclarationFile(path string) *Config {
	ret := c.clone()
	ret.declarationPath = path
	return ret
}

// WithLogger installs a structured logger for driver-level progress
// messages (pass boundaries, emitted module size). Defaults to
// zap.NewNop(). A nil logger is treated as zap.NewNop().
func (c *Config) WithLogger(logger *zap.Logger) *Config {
	ret := c.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	ret.logger = logger
	return ret
}

// WithMemory sets the single linear memory's initial/maximum page counts
// and export name. Defaults to a 256-page memory named "memory" with no
// maximum (spec.md §6: 256 pages, 16 MiB).
func (c *Config) WithMemory(initialPages, maximumPages uint32, name string) *Config {
	ret := c.clone()
	ret.memoryInitPages = initialPages
	ret.memoryMaxPages = maximumPages
	ret.memoryName = name
	return ret
}

// Result is the outcome of a successful Compile call: the finished wasm
// binary plus every diagnostic accumulated across both passes (Warning
// and Message severities may be present even when err is nil).
type Result struct {
	Module      []byte
	Diagnostics []diag.Diagnostic
}

// Compile runs the two-pass pipeline (internal/compiler's InitSymbols
// then CompileBodies) over files and encodes the result with a fresh
// wasmbin.Encoder. Compilation stops and returns an error if pass 1
// cannot complete (a diag.FatalError) or if either pass accumulates an
// Error-severity diagnostic (spec.md §7: "the driver treats this as
// fatal after either pass").
func Compile(files []*ast.File, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	reg, err := types.NewRegistry(cfg.wordSize)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}

	enc := wasmbin.New()
	enc.SetMemory(cfg.memoryInitPages, cfg.memoryMaxPages, cfg.memoryName, nil)

	diags := &diag.Bag{}

	log.Debug("pass 1: initializing symbols", zap.Int("files", len(files)))
	st, err := compiler.InitSymbols(files, reg, enc, diags)
	if err != nil {
		log.Error("pass 1 failed", zap.Error(err))
		return nil, fmt.Errorf("compiler: pass 1: %w", err)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("compiler: pass 1: %d error(s) reported", countErrors(diags))
	}

	log.Debug("pass 2: compiling bodies", zap.Int("functions", len(st.Functions)))
	compiler.CompileBodies(st, reg, enc, diags)
	if diags.HasErrors() {
		return nil, fmt.Errorf("compiler: pass 2: %d error(s) reported", countErrors(diags))
	}

	module := enc.Bytes()
	log.Info("compiled module", zap.Int("bytes", len(module)), zap.Int("globals", len(st.Globals)))

	return &Result{Module: module, Diagnostics: diags.All()}, nil
}

func countErrors(diags *diag.Bag) int {
	n := 0
	for _, d := range diags.All() {
		if d.Severity == diag.Error {
			n++
		}
	}
	return n
}
