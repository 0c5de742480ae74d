// Package diag implements the compiler's diagnostic collection described in
// spec.md §7: a severity-tagged message attached to a source node,
// accumulated across both compiler passes rather than raised immediately.
package diag

import (
	"fmt"

	"github.com/EdForge/assemblyscript-go/ast"
)

// Severity classifies a Diagnostic.
type Severity uint8

const (
	Message Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Message:
		return "message"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one recoverable finding, attached to the node that produced
// it so a renderer (out of scope for this package) can report a position.
type Diagnostic struct {
	Severity Severity
	Pos      ast.Position
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Bag accumulates diagnostics for one compilation. It is not safe for
// concurrent use; each compilation owns its own instance (see spec.md §5).
type Bag struct {
	entries []Diagnostic
}

// Add appends a diagnostic of the given severity.
func (b *Bag) Add(sev Severity, node ast.Node, format string, args ...interface{}) {
	b.entries = append(b.entries, Diagnostic{
		Severity: sev,
		Pos:      node.Pos(),
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errorf is shorthand for Add(Error, ...).
func (b *Bag) Errorf(node ast.Node, format string, args ...interface{}) {
	b.Add(Error, node, format, args...)
}

// Warnf is shorthand for Add(Warning, ...).
func (b *Bag) Warnf(node ast.Node, format string, args ...interface{}) {
	b.Add(Warning, node, format, args...)
}

// All returns every diagnostic accumulated so far, in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.entries
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
// The driver treats this as fatal after either pass (spec.md §7).
func (b *Bag) HasErrors() bool {
	for _, d := range b.entries {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// FatalError is raised (not accumulated) for structural failures pass 1
// cannot recover from: an unsupported top-level node kind, an unresolvable
// type name, or an ill-formed Ptr<T>. Unlike Bag entries, a FatalError
// aborts compilation immediately. An unsupported pointer-size
// configuration is rejected earlier by types.NewRegistry with a plain
// error, since it has no source node to anchor to.
type FatalError struct {
	Pos     ast.Position
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Fatalf constructs a FatalError anchored at node.
func Fatalf(node ast.Node, format string, args ...interface{}) *FatalError {
	return &FatalError{Pos: node.Pos(), Message: fmt.Sprintf(format, args...)}
}
