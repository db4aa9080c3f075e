package parser

import "strings"

// Type is a type annotation: a name, optional generic arguments, an optional
// union alternative and an optional nullable marker. A union of three types
// nests to the right, so the marker in A|B|C? belongs to C.
type Type struct {
	Name        Node[Identifier]
	Generics    []Node[Type]
	Alternative *Node[Type]
	Nullable    bool
}

func (t Type) Render(b *strings.Builder) {
	t.Name.Render(b)
	if len(t.Generics) > 0 {
		b.WriteByte('<')
		for i, g := range t.Generics {
			if i > 0 {
				b.WriteByte(',')
			}
			g.Render(b)
		}
		b.WriteByte('>')
	}
	if t.Alternative != nil {
		b.WriteByte('|')
		t.Alternative.Render(b)
	}
	if t.Nullable {
		b.WriteByte('?')
	}
}

func wrappedType(c Cursor) (Cursor, Node[Type], error) {
	return wrap(c, parseType)
}

func parseType(c Cursor) (Cursor, Type, error) {
	c, name, err := wrap(c, parseIdentifier)
	if err != nil {
		return c, Type{}, err
	}
	t := Type{Name: name}
	if d, ok := c.consume("<"); ok {
		d, generics, err := sepBy1(d, ",", wrappedType)
		if fatal(err) {
			return c, Type{}, err
		}
		if err == nil {
			if d, ok := d.consume(">"); ok {
				t.Generics = generics
				c = d
			}
		}
	}
	if d, ok := c.consume("|"); ok {
		d, alternative, err := wrap(d, parseType)
		if fatal(err) {
			return c, Type{}, err
		}
		if err == nil {
			t.Alternative = &alternative
			c = d
		}
	}
	if d, ok := c.consume("?"); ok {
		t.Nullable = true
		c = d
	}
	return c, t, nil
}

// Strip returns the type text without comments or whitespace.
func (t Type) Strip() string {
	var b strings.Builder
	b.WriteString(t.Name.Value.Name)
	if len(t.Generics) > 0 {
		b.WriteByte('<')
		for i, g := range t.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.Value.Strip())
		}
		b.WriteByte('>')
	}
	if t.Alternative != nil {
		b.WriteByte('|')
		b.WriteString(t.Alternative.Value.Strip())
	}
	if t.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}
