package parser

import "strings"

type Privacy string

const (
	Public    Privacy = "public"
	Private   Privacy = "private"
	Protected Privacy = "protected"
)

func (p Privacy) Render(b *strings.Builder) {
	b.WriteString(string(p))
}

func parsePrivacy(c Cursor) (Cursor, Privacy, error) {
	for _, p := range []Privacy{Public, Private, Protected} {
		if d, err := keyword(c, string(p)); err == nil {
			return d, p, nil
		}
	}
	return c, "", c.fail("'public'", "'private'", "'protected'")
}

// Visibility holds the optional modifiers in front of a class member.
type Visibility struct {
	Privacy *Node[Privacy]
	Static  *Node[Punct]
}

func (v Visibility) Render(b *strings.Builder) {
	if v.Privacy != nil {
		v.Privacy.Render(b)
	}
	if v.Static != nil {
		v.Static.Render(b)
	}
}

// IsStatic reports whether the static modifier is present.
func (v Visibility) IsStatic() bool {
	return v.Static != nil
}

func parseVisibility(c Cursor) (Cursor, Visibility, error) {
	var v Visibility
	c, privacy, err := optional(c, parsePrivacy)
	if err != nil {
		return c, v, err
	}
	c, static, err := optional(c, punct("static"))
	if err != nil {
		return c, v, err
	}
	v.Privacy, v.Static = privacy, static
	return c, v, nil
}

// Member is a constructor, method or field of a class.
type Member interface {
	Renderer
	memberNode()
}

type Constructor struct {
	Visibility Node[Visibility]
	Params     Node[Parameters]
	Body       Node[*Block]
}

func (m *Constructor) Render(b *strings.Builder) {
	m.Visibility.Render(b)
	b.WriteString("constructor")
	m.Params.Render(b)
	m.Body.Render(b)
}

func parseConstructor(c Cursor) (Cursor, Member, error) {
	m := &Constructor{}
	d, vis, err := wrap(c, parseVisibility)
	if err != nil {
		return c, nil, err
	}
	m.Visibility = vis
	if d, err = keyword(d, "constructor"); err != nil {
		return c, nil, err
	}
	if d, m.Params, err = wrap(d, parseParameters); err != nil {
		return c, nil, err
	}
	if d, m.Body, err = wrap(d, parseBlock); err != nil {
		return c, nil, err
	}
	return d, m, nil
}

// memberHead parses the part shared by methods and fields: modifiers, an
// optional type and the member name.
func memberHead(c Cursor) (Cursor, Node[Visibility], *Node[Type], Node[Identifier], error) {
	var name Node[Identifier]
	d, vis, err := wrap(c, parseVisibility)
	if err != nil {
		return c, vis, nil, name, err
	}
	var typ *Node[Type]
	if e, t, err := wrap(d, parseType); err == nil && peek(e, parseIdentifier) {
		typ = &t
		d = e
	}
	d, name, err = wrap(d, parseIdentifier)
	if err != nil {
		return c, vis, nil, name, err
	}
	return d, vis, typ, name, nil
}

type Method struct {
	Visibility Node[Visibility]
	ReturnType *Node[Type]
	Name       Node[Identifier]
	Params     Node[Parameters]
	Body       Node[*Block]
}

func (m *Method) Render(b *strings.Builder) {
	m.Visibility.Render(b)
	if m.ReturnType != nil {
		m.ReturnType.Render(b)
	}
	m.Name.Render(b)
	m.Params.Render(b)
	m.Body.Render(b)
}

func parseMethod(c Cursor) (Cursor, Member, error) {
	d, vis, typ, name, err := memberHead(c)
	if err != nil {
		return c, nil, err
	}
	m := &Method{Visibility: vis, ReturnType: typ, Name: name}
	if d, m.Params, err = wrap(d, parseParameters); err != nil {
		return c, nil, err
	}
	if d, m.Body, err = wrap(d, parseBlock); err != nil {
		return c, nil, err
	}
	return d, m, nil
}

type Field struct {
	Visibility Node[Visibility]
	Type       *Node[Type]
	Name       Node[Identifier]
	Value      *Node[Expr]
	Semi       Node[Semi]
}

func (m *Field) Render(b *strings.Builder) {
	m.Visibility.Render(b)
	if m.Type != nil {
		m.Type.Render(b)
	}
	m.Name.Render(b)
	if m.Value != nil {
		b.WriteByte('=')
		m.Value.Render(b)
	}
	m.Semi.Render(b)
}

func parseField(c Cursor) (Cursor, Member, error) {
	d, vis, typ, name, err := memberHead(c)
	if err != nil {
		return c, nil, err
	}
	m := &Field{Visibility: vis, Type: typ, Name: name}
	if e, ok := d.consume("="); ok {
		e, value, err := wrap(e, parseExpression)
		if err != nil {
			return c, nil, err
		}
		m.Value = &value
		d = e
	}
	d, m.Semi, _ = wrap(d, parseSemi)
	return d, m, nil
}

func parseClassMember(c Cursor) (Cursor, Member, error) {
	return alt(c, parseConstructor, parseMethod, parseField)
}

type ClassBody struct {
	Members []Node[Member]
	Blank   Node[Empty]
}

func (body ClassBody) Render(b *strings.Builder) {
	b.WriteByte('{')
	if len(body.Members) == 0 {
		body.Blank.Render(b)
	}
	for _, m := range body.Members {
		m.Render(b)
	}
	b.WriteByte('}')
}

func wrappedMember(c Cursor) (Cursor, Node[Member], error) {
	return wrap(c, parseClassMember)
}

func parseClassBody(c Cursor) (Cursor, ClassBody, error) {
	d, err := literal(c, "{")
	if err != nil {
		return c, ClassBody{}, err
	}
	var body ClassBody
	if d, body.Members, err = many(d, wrappedMember); err != nil {
		return c, ClassBody{}, err
	}
	if len(body.Members) == 0 {
		d, body.Blank, _ = wrap(d, parseEmpty)
	}
	if d, err = literal(d, "}"); err != nil {
		return c, ClassBody{}, err
	}
	return d, body, nil
}

type Class struct {
	Name    Node[Identifier]
	Extends *Node[Identifier]
	Body    Node[ClassBody]
}

func (cl *Class) Render(b *strings.Builder) {
	b.WriteString("class")
	cl.Name.Render(b)
	if cl.Extends != nil {
		b.WriteString("extends")
		cl.Extends.Render(b)
	}
	cl.Body.Render(b)
}

func parseClass(c Cursor) (Cursor, *Class, error) {
	d, err := keyword(c, "class")
	if err != nil {
		return c, nil, err
	}
	cl := &Class{}
	if d, cl.Name, err = wrap(d, parseIdentifier); err != nil {
		return c, nil, err
	}
	if e, err := keyword(d, "extends"); err == nil {
		e, parent, err := wrap(e, parseIdentifier)
		if err != nil {
			return c, nil, err
		}
		cl.Extends = &parent
		d = e
	}
	if d, cl.Body, err = wrap(d, parseClassBody); err != nil {
		return c, nil, err
	}
	return d, cl, nil
}

func (*Constructor) memberNode() {}
func (*Method) memberNode()      {}
func (*Field) memberNode()       {}
