package parser

import "strings"

// Parameter is a function parameter with an optional type.
type Parameter struct {
	Type *Node[Type]
	Name Node[Identifier]
}

func (p Parameter) Render(b *strings.Builder) {
	if p.Type != nil {
		p.Type.Render(b)
	}
	p.Name.Render(b)
}

func parseParameter(c Cursor) (Cursor, Parameter, error) {
	if d, t, err := wrap(c, parseType); err == nil {
		if d, name, err := wrap(d, parseIdentifier); err == nil {
			return d, Parameter{Type: &t, Name: name}, nil
		}
	} else if fatal(err) {
		return c, Parameter{}, err
	}
	d, name, err := wrap(c, parseIdentifier)
	if err != nil {
		return c, Parameter{}, err
	}
	return d, Parameter{Name: name}, nil
}

// Parameters is a parenthesized parameter list. Blank keeps the trivia of
// an empty list.
type Parameters struct {
	List  []Node[Parameter]
	Blank Node[Empty]
}

func (p Parameters) Render(b *strings.Builder) {
	b.WriteByte('(')
	renderList(b, p.List, nil, p.Blank)
	b.WriteByte(')')
}

func wrappedParameter(c Cursor) (Cursor, Node[Parameter], error) {
	return wrap(c, parseParameter)
}

func parseParameters(c Cursor) (Cursor, Parameters, error) {
	d, err := literal(c, "(")
	if err != nil {
		return c, Parameters{}, err
	}
	var params Parameters
	d, list, err := sepBy1(d, ",", wrappedParameter)
	switch {
	case fatal(err):
		return c, Parameters{}, err
	case err == nil:
		params.List = list
	default:
		d, params.Blank, _ = wrap(d, parseEmpty)
	}
	d, err = literal(d, ")")
	if err != nil {
		return c, Parameters{}, err
	}
	return d, params, nil
}

var parseArrow = punct("->", "=>")

// ReturnType is an arrow followed by a type.
type ReturnType struct {
	Arrow Node[Punct]
	Type  Node[Type]
}

func (r ReturnType) Render(b *strings.Builder) {
	r.Arrow.Render(b)
	r.Type.Render(b)
}

// parseReturnType parses an optional return type. It never fails.
func parseReturnType(c Cursor) (Cursor, *ReturnType) {
	d, arrow, err := wrap(c, parseArrow)
	if err != nil {
		return c, nil
	}
	d, t, err := wrap(d, parseType)
	if err != nil {
		return c, nil
	}
	return d, &ReturnType{Arrow: arrow, Type: t}
}

// ArrowParams is either a parenthesized list or one bare parameter.
type ArrowParams struct {
	List   *Parameters
	Single *Parameter
}

func (p ArrowParams) Render(b *strings.Builder) {
	switch {
	case p.List != nil:
		p.List.Render(b)
	case p.Single != nil:
		p.Single.Render(b)
	}
}

func parseArrowParams(c Cursor) (Cursor, ArrowParams, error) {
	if d, list, err := parseParameters(c); err == nil {
		return d, ArrowParams{List: &list}, nil
	}
	d, single, err := parseParameter(c)
	if err != nil {
		return c, ArrowParams{}, err
	}
	return d, ArrowParams{Single: &single}, nil
}

// FunctionBody is a block or a single expression.
type FunctionBody struct {
	Block *Block
	Expr  Expr
}

func (f FunctionBody) Render(b *strings.Builder) {
	if f.Block != nil {
		f.Block.Render(b)
		return
	}
	if f.Expr != nil {
		f.Expr.Render(b)
	}
}

func parseFunctionBody(c Cursor) (Cursor, FunctionBody, error) {
	d, block, err := parseBlock(c)
	if err == nil {
		return d, FunctionBody{Block: block}, nil
	}
	if fatal(err) {
		return c, FunctionBody{}, err
	}
	d, x, err2 := parseExpression(c)
	if err2 != nil {
		return c, FunctionBody{}, furthest(err, err2)
	}
	return d, FunctionBody{Expr: x}, nil
}

// ArrowFunction is `params -> body` or `params => body`, optionally with a
// return type between the arrow and the body.
type ArrowFunction struct {
	Params     Node[ArrowParams]
	Arrow      Node[Punct]
	ReturnType *Node[Type]
	Body       Node[FunctionBody]
}

func (f *ArrowFunction) Render(b *strings.Builder) {
	f.Params.Render(b)
	f.Arrow.Render(b)
	if f.ReturnType != nil {
		f.ReturnType.Render(b)
	}
	f.Body.Render(b)
}

func parseArrowFunction(c Cursor) (Cursor, Expr, error) {
	d, params, err := wrap(c, parseArrowParams)
	if err != nil {
		return c, nil, err
	}
	d, arrow, err := wrap(d, parseArrow)
	if err != nil {
		return c, nil, err
	}
	f := &ArrowFunction{Params: params, Arrow: arrow}
	if e, t, err := wrap(d, parseType); err == nil {
		if e, body, err := wrap(e, parseFunctionBody); err == nil {
			f.ReturnType, f.Body = &t, body
			return e, f, nil
		}
	}
	d, f.Body, err = wrap(d, parseFunctionBody)
	if err != nil {
		return c, nil, err
	}
	return d, f, nil
}

// FunctionExpr is an anonymous `function (...) { ... }`.
type FunctionExpr struct {
	Params     Node[Parameters]
	ReturnType *ReturnType
	Body       Node[*Block]
}

func (f *FunctionExpr) Render(b *strings.Builder) {
	b.WriteString("function")
	f.Params.Render(b)
	if f.ReturnType != nil {
		f.ReturnType.Render(b)
	}
	f.Body.Render(b)
}

func parseFunctionExpr(c Cursor) (Cursor, Expr, error) {
	d, err := keyword(c, "function")
	if err != nil {
		return c, nil, err
	}
	f := &FunctionExpr{}
	d, f.Params, err = wrap(d, parseParameters)
	if err != nil {
		return c, nil, err
	}
	d, f.ReturnType = parseReturnType(d)
	d, f.Body, err = wrap(d, parseBlock)
	if err != nil {
		return c, nil, err
	}
	return d, f, nil
}

func parseAnonymousFunction(c Cursor) (Cursor, Expr, error) {
	return alt(c, parseArrowFunction, parseFunctionExpr)
}

// FunctionDecl is a named top-level function.
type FunctionDecl struct {
	Name       Node[Identifier]
	Params     Node[Parameters]
	ReturnType *ReturnType
	Body       Node[*Block]
}

func (f *FunctionDecl) Render(b *strings.Builder) {
	b.WriteString("function")
	f.Name.Render(b)
	f.Params.Render(b)
	if f.ReturnType != nil {
		f.ReturnType.Render(b)
	}
	f.Body.Render(b)
}

func parseFunctionDecl(c Cursor) (Cursor, GlobalStatement, error) {
	d, err := keyword(c, "function")
	if err != nil {
		return c, nil, err
	}
	f := &FunctionDecl{}
	d, f.Name, err = wrap(d, parseIdentifier)
	if err != nil {
		return c, nil, err
	}
	d, f.Params, err = wrap(d, parseParameters)
	if err != nil {
		return c, nil, err
	}
	d, f.ReturnType = parseReturnType(d)
	d, f.Body, err = wrap(d, parseBlock)
	if err != nil {
		return c, nil, err
	}
	return d, f, nil
}

func (*ArrowFunction) exprNode() {}
func (*FunctionExpr) exprNode()  {}
