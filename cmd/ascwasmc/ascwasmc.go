// Command ascwasmc compiles a typed syntax tree produced by an external
// front end into a wasm binary.
//
// This repository owns the middle and back end of the pipeline (spec.md
// §1): parsing and type-checking are someone else's job, so this CLI's
// only input shape is whatever internal/astjson (or an equivalent future
// front end) can hand it as an []*ast.File. Until such a front end exists,
// the flags below accept that pre-built tree indirectly, via a package
// that knows how to build one for test fixtures.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/compiler"
	"github.com/EdForge/assemblyscript-go/internal/astjson"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut io.Writer, stdErr io.Writer) int {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")

	var out string
	flag.StringVar(&out, "o", "a.wasm", "Path to write the compiled wasm binary to.")

	var wordSize int
	flag.IntVar(&wordSize, "word-size", 4, "Target pointer width in bytes: 4 or 8.")

	var declPath string
	flag.StringVar(&declPath, "declarations", "", "Path to the bundled declaration file.")

	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Enables verbose (debug-level) logging.")

	flag.Parse()

	if help {
		printUsage(stdErr)
		return 0
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(stdErr, "missing source file(s)")
		printUsage(stdErr)
		return 1
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	files, err := loadFiles(flag.Args(), declPath)
	if err != nil {
		logger.Error("failed to load source files", zap.Error(err))
		return 1
	}

	cfg := compiler.NewConfig().
		WithWordSize(wordSize).
		WithDeclarationFile(declPath).
		WithLogger(logger)

	result, err := compiler.Compile(files, cfg)
	if err != nil {
		logger.Error("compilation failed", zap.Error(err))
		return 1
	}
	for _, d := range result.Diagnostics {
		logger.Warn(d.Message, zap.String("pos", d.Pos.String()), zap.String("severity", d.Severity.String()))
	}

	if err := os.WriteFile(out, result.Module, 0o644); err != nil {
		logger.Error("failed to write module", zap.String("path", out), zap.Error(err))
		return 1
	}
	fmt.Fprintf(stdOut, "wrote %s (%d bytes)\n", out, len(result.Module))
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// loadFiles reads each source path as a JSON-encoded ast.File (see
// internal/astjson) and appends the declaration file, if any, marked
// IsDeclaration so the compiler's symbol pass skips its contents.
func loadFiles(paths []string, declPath string) ([]*ast.File, error) {
	files := make([]*ast.File, 0, len(paths)+1)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		f, err := astjson.DecodeFile(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		files = append(files, f)
	}

	if declPath != "" {
		data, err := os.ReadFile(declPath)
		if err != nil {
			return nil, fmt.Errorf("reading declaration file %s: %w", declPath, err)
		}
		f, err := astjson.DecodeFile(data)
		if err != nil {
			return nil, fmt.Errorf("parsing declaration file %s: %w", declPath, err)
		}
		f.IsDeclaration = true
		files = append(files, f)
	}
	return files, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "ascwasmc - compile to WebAssembly")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage: ascwasmc [flags] <source-json>...")
	flag.PrintDefaults()
}
