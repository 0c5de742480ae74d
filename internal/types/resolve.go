package types

import (
	"github.com/EdForge/assemblyscript-go/ast"
	"github.com/EdForge/assemblyscript-go/internal/diag"
)

// Resolve maps a surface TypeNode to its canonical descriptor (spec.md
// §4.B). allowVoid must be true only at call sites that accept a void
// result, e.g. a function's return type; everywhere else a literal "void"
// is rejected.
//
// Ptr<T> is the only recognized generic: T is resolved recursively (void
// is never allowed as a pointer's element type) and the result is a
// pointer type annotated with that element. Any other generic shape, or
// any name absent from the registry, is a fatal error: the surrounding
// compiler has no sound way to proceed without knowing a type's size and
// representation.
func (r *Registry) Resolve(node *ast.TypeNode, allowVoid bool) (*PrimitiveType, error) {
	if len(node.TypeArgs) == 0 {
		t, ok := r.byName[node.Name]
		if !ok {
			return nil, diag.Fatalf(node, "unsupported type %q", node.Name)
		}
		if t.Kind == Void && !allowVoid {
			return nil, diag.Fatalf(node, "void is only legal as a function return type")
		}
		return t, nil
	}

	if node.Name != "Ptr" || len(node.TypeArgs) != 1 {
		return nil, diag.Fatalf(node, "unsupported generic type %q", node.Name)
	}

	elem, err := r.Resolve(node.TypeArgs[0], false)
	if err != nil {
		return nil, err
	}
	return r.PointerTo(elem), nil
}
