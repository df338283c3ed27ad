// Package symbols builds a syntactic outline of a source file. Nothing is
// resolved: names are recorded where they are declared or constructed.
package symbols

import (
	"strings"

	"github.com/hadeslang/hades/internal/compiler/ast"
	"github.com/hadeslang/hades/internal/compiler/token"
)

type SymbolKind string

const (
	KindFunction   SymbolKind = "function"
	KindParameter  SymbolKind = "parameter"
	KindVariable   SymbolKind = "variable"
	KindStructInit SymbolKind = "struct_init"
)

type SymbolInfo struct {
	Name      string
	Kind      SymbolKind
	Type      string // declared type of parameters, struct name of struct-inits
	Container string // enclosing function, empty at top level
	Span      token.Span

	// --- Function specific info ---
	ParamNames []string
	ParamTypes []string
	ReturnType string
}

// Signature renders a function as `name(a: int, b: P): T`; other symbols
// render as their name, followed by the type when known.
func (s SymbolInfo) Signature() string {
	if s.Kind != KindFunction {
		if s.Type != "" && s.Type != s.Name {
			return s.Name + ": " + s.Type
		}
		return s.Name
	}
	params := make([]string, len(s.ParamNames))
	for i := range s.ParamNames {
		params[i] = s.ParamNames[i] + ": " + s.ParamTypes[i]
	}
	return s.Name + "(" + strings.Join(params, ", ") + "): " + s.ReturnType
}

// Collect lists the symbols of file in source order.
func Collect(file *ast.SourceFile) []SymbolInfo {
	var out []SymbolInfo
	for _, def := range file.Definitions {
		fn, ok := def.(*ast.FunctionDefinition)
		if !ok {
			out = collectNode(out, def, "")
			continue
		}

		info := SymbolInfo{
			Name:       fn.Name.Value,
			Kind:       KindFunction,
			Span:       fn.Span(),
			ReturnType: fn.ReturnType.Name,
		}
		for _, p := range fn.Parameters {
			info.ParamNames = append(info.ParamNames, p.Name.Value)
			info.ParamTypes = append(info.ParamTypes, p.Type.Name)
		}
		out = append(out, info)

		for _, p := range fn.Parameters {
			out = append(out, SymbolInfo{
				Name:      p.Name.Value,
				Kind:      KindParameter,
				Type:      p.Type.Name,
				Container: fn.Name.Value,
				Span:      p.Span(),
			})
		}
		out = collectNode(out, fn.Body, fn.Name.Value)
	}
	return out
}

func collectNode(out []SymbolInfo, root ast.Node, container string) []SymbolInfo {
	ast.Inspect(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.VarDecl:
			out = append(out, SymbolInfo{
				Name:      n.Name.Value,
				Kind:      KindVariable,
				Container: container,
				Span:      n.Span(),
			})
		case *ast.StructInit:
			out = append(out, SymbolInfo{
				Name:      n.Name.Value,
				Kind:      KindStructInit,
				Type:      n.Name.Value,
				Container: container,
				Span:      n.Span(),
			})
		}
		return true
	})
	return out
}
