package format

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/leek/leekscript/parser"
)

// TreeNode is a uniform view of a parsed LeekScript tree, used by the
// dump and JSON encoders.
type TreeNode struct {
	Kind     string
	Field    string
	Attrs    []Attr
	Span     *parser.Span
	Comments []string
	Children []*TreeNode
}

type Attr struct {
	Name  string
	Value any
}

// Word is an attribute value taken from a named constant, such as an
// operator level or a number format. The outline prints it unquoted.
type Word string

// maxPlainExponent bounds the exponent of number values written out in
// full. Literals beyond it keep their source digits.
const maxPlainExponent = 1000

func (n *TreeNode) attr(name string, value any) {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Tree builds the view of r. Wrapped values contribute their span and the
// comments found around them; absent optional parts are left out.
func Tree(r parser.Renderer) *TreeNode {
	n := build("", reflect.ValueOf(r))
	if n == nil {
		n = &TreeNode{Kind: "Empty"}
	}
	return n
}

// Walk calls visit for n and every node below it, parents first.
func Walk(n *TreeNode, visit func(*TreeNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		Walk(child, visit)
	}
}

func build(field string, v reflect.Value) *TreeNode {
	if !v.IsValid() {
		return nil
	}
	if k := v.Kind(); (k == reflect.Interface || k == reflect.Pointer) && v.IsNil() {
		return nil
	}
	if w, ok := v.Interface().(parser.Wrapped); ok {
		return buildWrapped(field, w)
	}
	if k := v.Kind(); k == reflect.Interface || k == reflect.Pointer {
		return build(field, v.Elem())
	}

	switch x := v.Interface().(type) {
	case parser.Empty:
		return nil
	case parser.Semi:
		if !x.Present {
			return nil
		}
		return &TreeNode{Kind: "Semi", Field: field}
	case parser.NumberLiteral:
		n := &TreeNode{Kind: "NumberLiteral", Field: field}
		n.attr("raw", x.Raw)
		n.attr("format", Word(x.Format.String()))
		n.attr("kind", Word(x.Kind.String()))
		n.attr("value", numberValue(x))
		return n
	}

	t := v.Type()
	n := &TreeNode{Kind: t.Name(), Field: field}
	if t.Kind() != reflect.Struct {
		if value, ok := leaf(v); ok {
			n.attr("value", value)
		}
		return n
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if value, ok := leaf(fv); ok {
			if !isZeroFlag(fv) {
				n.attr(lowerFirst(f.Name), value)
			}
			continue
		}
		if fv.Kind() == reflect.Slice {
			for j := 0; j < fv.Len(); j++ {
				if child := build(f.Name, fv.Index(j)); child != nil {
					n.Children = append(n.Children, child)
				}
			}
			continue
		}
		if child := build(f.Name, fv); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

func buildWrapped(field string, w parser.Wrapped) *TreeNode {
	leading, trailing := w.Trivia()
	comments := append(leading.Comments(), trailing.Comments()...)

	n := build(field, reflect.ValueOf(w.Inner()))
	if n == nil {
		if len(comments) == 0 {
			return nil
		}
		n = &TreeNode{Kind: "Trivia", Field: field}
	}
	span := w.ValueSpan()
	n.Span = &span
	for _, c := range comments {
		n.Comments = append(n.Comments, c.Text)
	}
	return n
}

// numberValue returns the decimal value of x, or its digits when the value
// cannot be held or would be too long to print.
func numberValue(x parser.NumberLiteral) string {
	d, ok := x.Decimal()
	if !ok {
		return x.Digits()
	}
	if exp := int64(d.Exponent()); exp > maxPlainExponent || exp < -maxPlainExponent {
		return x.Digits()
	}
	return d.String()
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// leaf returns the attribute value of scalar fields.
func leaf(v reflect.Value) (any, bool) {
	if v.Type().Implements(stringerType) && v.Kind() != reflect.Struct && v.Kind() != reflect.Pointer {
		return Word(v.Interface().(fmt.Stringer).String()), true
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return v.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return nil, false
}

// isZeroFlag hides false booleans, which only mark optional syntax.
func isZeroFlag(v reflect.Value) bool {
	return v.Kind() == reflect.Bool && !v.Bool()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// String renders n as an indented outline, one node per line.
func (n *TreeNode) String() string {
	var b strings.Builder
	n.write(&b, 0, false)
	return b.String()
}

func (n *TreeNode) StringWithPositions() string {
	var b strings.Builder
	n.write(&b, 0, true)
	return b.String()
}

func (n *TreeNode) write(b *strings.Builder, indent int, positions bool) {
	prefix := strings.Repeat("  ", indent)
	b.WriteString(prefix)
	if n.Field != "" {
		b.WriteString(n.Field)
		b.WriteString(": ")
	}
	b.WriteString(n.Kind)
	for _, a := range n.Attrs {
		if s, ok := a.Value.(string); ok {
			fmt.Fprintf(b, " %s=%q", a.Name, s)
		} else {
			fmt.Fprintf(b, " %s=%v", a.Name, a.Value)
		}
	}
	if positions && n.Span != nil {
		b.WriteString(" [" + n.Span.String() + "]")
	}
	b.WriteByte('\n')
	for _, c := range n.Comments {
		fmt.Fprintf(b, "%s  # %q\n", prefix, c)
	}
	for _, child := range n.Children {
		child.write(b, indent+1, positions)
	}
}
