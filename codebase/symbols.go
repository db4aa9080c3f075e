package codebase

import (
	"strings"

	"github.com/dhamidi/leek/leekscript/parser"
)

type SymbolKind string

const (
	SymbolClass       SymbolKind = "class"
	SymbolConstructor SymbolKind = "constructor"
	SymbolMethod      SymbolKind = "method"
	SymbolField       SymbolKind = "field"
	SymbolFunction    SymbolKind = "function"
	SymbolGlobal      SymbolKind = "global"
)

// Symbol is a named declaration. Span covers the whole declaration and
// NameSpan only its name. Class members are nested in Children.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Detail    string
	Path      string
	Container string
	Span      parser.Span
	NameSpan  parser.Span
	Children  []Symbol
}

// ExtractSymbols lists the top-level declarations of f: classes with their
// members, functions and globals.
func ExtractSymbols(path string, f *parser.File) []Symbol {
	if f == nil {
		return nil
	}
	var symbols []Symbol
	for _, stmt := range f.Statements {
		switch s := stmt.Value.(type) {
		case *parser.Class:
			symbols = append(symbols, classSymbol(path, stmt.Span, s))
		case *parser.FunctionDecl:
			symbols = append(symbols, Symbol{
				Name:     s.Name.Value.Name,
				Kind:     SymbolFunction,
				Detail:   signature(s.Params.Value, returnType(s.ReturnType)),
				Path:     path,
				Span:     stmt.Span,
				NameSpan: s.Name.Span,
			})
		case *parser.GlobalDecl:
			var detail string
			if s.Type != nil {
				detail = s.Type.Value.Strip()
			}
			for _, d := range s.Declarations {
				symbols = append(symbols, Symbol{
					Name:     d.Name.Value.Name,
					Kind:     SymbolGlobal,
					Detail:   detail,
					Path:     path,
					Span:     stmt.Span,
					NameSpan: d.Name.Span,
				})
			}
		}
	}
	return symbols
}

func classSymbol(path string, span parser.Span, cl *parser.Class) Symbol {
	sym := Symbol{
		Name:     cl.Name.Value.Name,
		Kind:     SymbolClass,
		Path:     path,
		Span:     span,
		NameSpan: cl.Name.Span,
	}
	if cl.Extends != nil {
		sym.Detail = "extends " + cl.Extends.Value.Name
	}
	for _, m := range cl.Body.Value.Members {
		child := Symbol{Path: path, Container: sym.Name, Span: m.Span}
		switch m := m.Value.(type) {
		case *parser.Constructor:
			child.Name = "constructor"
			child.Kind = SymbolConstructor
			child.Detail = signature(m.Params.Value, "")
			child.NameSpan = m.Params.Span
		case *parser.Method:
			child.Name = m.Name.Value.Name
			child.Kind = SymbolMethod
			child.Detail = signature(m.Params.Value, typeName(m.ReturnType))
			child.NameSpan = m.Name.Span
		case *parser.Field:
			child.Name = m.Name.Value.Name
			child.Kind = SymbolField
			child.Detail = typeName(m.Type)
			child.NameSpan = m.Name.Span
		default:
			continue
		}
		sym.Children = append(sym.Children, child)
	}
	return sym
}

func typeName(t *parser.Node[parser.Type]) string {
	if t == nil {
		return ""
	}
	return t.Value.Strip()
}

func returnType(rt *parser.ReturnType) string {
	if rt == nil {
		return ""
	}
	return rt.Type.Value.Strip()
}

// signature formats parameters as "(Integer a, b) -> Real".
func signature(params parser.Parameters, ret string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params.List {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Value.Type != nil {
			b.WriteString(p.Value.Type.Value.Strip())
			b.WriteByte(' ')
		}
		b.WriteString(p.Value.Name.Value.Name)
	}
	b.WriteByte(')')
	if ret != "" {
		b.WriteString(" -> ")
		b.WriteString(ret)
	}
	return b.String()
}

// Flatten returns symbols and all their children in document order.
func Flatten(symbols []Symbol) []Symbol {
	var out []Symbol
	for _, s := range symbols {
		out = append(out, s)
		out = append(out, Flatten(s.Children)...)
	}
	return out
}
