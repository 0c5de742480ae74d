// Package astjson decodes a JSON encoding of ast.File. It stands in for
// the real external front end spec.md §1 treats as out of scope: until a
// parser/type-checker front end is wired up, this is how cmd/ascwasmc and
// the conformance harness get an []*ast.File to hand the compiler.
//
// The wire format mirrors ast.go's node shapes directly, with a "kind"
// discriminator on every Decl/Stmt/Expr so concrete node types round-trip
// through the untyped interfaces those slices hold.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/EdForge/assemblyscript-go/ast"
)

// DecodeFile decodes one source file's JSON representation.
func DecodeFile(data []byte) (*ast.File, error) {
	var raw struct {
		Path          string            `json:"path"`
		IsDeclaration bool              `json:"isDeclaration"`
		Decls         []json.RawMessage `json:"decls"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("astjson: decode file: %w", err)
	}

	f := &ast.File{Path: raw.Path, IsDeclaration: raw.IsDeclaration}
	for _, d := range raw.Decls {
		decl, err := decodeDecl(d)
		if err != nil {
			return nil, err
		}
		f.Decls = append(f.Decls, decl)
	}
	return f, nil
}

type kinded struct {
	Kind string `json:"kind"`
}

func decodeDecl(data json.RawMessage) (ast.Decl, error) {
	var k kinded
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("astjson: decode decl: %w", err)
	}
	switch k.Kind {
	case "func":
		var d struct {
			Name       string            `json:"name"`
			Export     bool              `json:"export"`
			Import     bool              `json:"import"`
			TypeParams []string          `json:"typeParams"`
			Params     []paramWire       `json:"params"`
			ReturnType typeWire          `json:"returnType"`
			Body       []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("astjson: decode func %q: %w", d.Name, err)
		}
		fd := &ast.FuncDecl{
			Name:       d.Name,
			TypeParams: d.TypeParams,
			ReturnType: d.ReturnType.toNode(),
		}
		if d.Export {
			fd.Modifiers |= ast.ModExport
		}
		if d.Import {
			fd.Modifiers |= ast.ModImport
		}
		for _, p := range d.Params {
			fd.Params = append(fd.Params, p.toNode())
		}
		stmts, err := decodeStmts(d.Body)
		if err != nil {
			return nil, err
		}
		fd.Body = stmts
		return fd, nil

	case "class":
		var d struct {
			Name    string            `json:"name"`
			Methods []json.RawMessage `json:"methods"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("astjson: decode class %q: %w", d.Name, err)
		}
		cd := &ast.ClassDecl{Name: d.Name}
		for _, m := range d.Methods {
			var md struct {
				Name       string            `json:"name"`
				Static     bool              `json:"static"`
				Params     []paramWire       `json:"params"`
				ReturnType typeWire          `json:"returnType"`
				Body       []json.RawMessage `json:"body"`
			}
			if err := json.Unmarshal(m, &md); err != nil {
				return nil, fmt.Errorf("astjson: decode method of %q: %w", d.Name, err)
			}
			method := &ast.MethodDecl{Name: md.Name, ReturnType: md.ReturnType.toNode()}
			if md.Static {
				method.Modifiers |= ast.ModStatic
			}
			for _, p := range md.Params {
				method.Params = append(method.Params, p.toNode())
			}
			stmts, err := decodeStmts(md.Body)
			if err != nil {
				return nil, err
			}
			method.Body = stmts
			cd.Methods = append(cd.Methods, method)
		}
		return cd, nil

	case "enum":
		var d struct {
			Name    string `json:"name"`
			Members []struct {
				Name  string `json:"name"`
				Value int64  `json:"value"`
			} `json:"members"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("astjson: decode enum %q: %w", d.Name, err)
		}
		ed := &ast.EnumDecl{Name: d.Name}
		for _, m := range d.Members {
			ed.Members = append(ed.Members, &ast.EnumMember{Name: m.Name, Value: m.Value})
		}
		return ed, nil

	case "var":
		var d struct {
			Name    string          `json:"name"`
			Type    typeWire        `json:"type"`
			Mutable bool            `json:"mutable"`
			Init    json.RawMessage `json:"init"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("astjson: decode var %q: %w", d.Name, err)
		}
		init, err := decodeExpr(d.Init)
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Name: d.Name, Type: d.Type.toNode(), Mutable: d.Mutable, Init: init}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown decl kind %q", k.Kind)
	}
}

func decodeStmts(raw []json.RawMessage) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(raw))
	for _, s := range raw {
		var k kinded
		if err := json.Unmarshal(s, &k); err != nil {
			return nil, fmt.Errorf("astjson: decode stmt: %w", err)
		}
		switch k.Kind {
		case "return":
			var d struct {
				Value json.RawMessage `json:"value"`
			}
			if err := json.Unmarshal(s, &d); err != nil {
				return nil, err
			}
			value, err := decodeExpr(d.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.ReturnStmt{Value: value})
		default:
			return nil, fmt.Errorf("astjson: unknown stmt kind %q", k.Kind)
		}
	}
	return out, nil
}

func decodeExpr(raw json.RawMessage) (ast.Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var k kinded
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, fmt.Errorf("astjson: decode expr: %w", err)
	}
	switch k.Kind {
	case "paren":
		var d struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(d.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Inner: inner}, nil

	case "as":
		var d struct {
			Inner json.RawMessage `json:"inner"`
			Type  typeWire        `json:"type"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		inner, err := decodeExpr(d.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.AsExpr{Inner: inner, Type: d.Type.toNode()}, nil

	case "binary":
		var d struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		left, err := decodeExpr(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(d.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: d.Op, Left: left, Right: right}, nil

	case "number":
		var d struct {
			Kind string `json:"literalKind"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		lit := &ast.NumericLiteral{Text: d.Text}
		switch d.Kind {
		case "hex":
			lit.Kind = ast.LiteralHexInt
		case "float":
			lit.Kind = ast.LiteralFloat
		default:
			lit.Kind = ast.LiteralDecimalInt
		}
		return lit, nil

	case "bool":
		var d struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: d.Value}, nil

	case "ident":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: d.Name}, nil

	case "property":
		var d struct {
			Target json.RawMessage `json:"target"`
			Name   string          `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target, err := decodeExpr(d.Target)
		if err != nil {
			return nil, err
		}
		return &ast.PropertyAccessExpr{Target: target, Name: d.Name}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown expr kind %q", k.Kind)
	}
}

type typeWire struct {
	Name     string     `json:"name"`
	TypeArgs []typeWire `json:"typeArgs"`
}

func (t typeWire) toNode() *ast.TypeNode {
	if t.Name == "" {
		return nil
	}
	n := &ast.TypeNode{Name: t.Name}
	for _, a := range t.TypeArgs {
		n.TypeArgs = append(n.TypeArgs, a.toNode())
	}
	return n
}

type paramWire struct {
	Name string   `json:"name"`
	Type typeWire `json:"type"`
}

func (p paramWire) toNode() *ast.Param {
	return &ast.Param{Name: p.Name, Type: p.Type.toNode()}
}
