package parser

import "strings"

// Statement is anything allowed inside a block. Every statement is also a
// valid global statement.
type Statement interface {
	GlobalStatement
	stmtNode()
}

type Block struct {
	Statements []Node[Statement]
	Blank      Node[Empty]
}

func (s *Block) Render(b *strings.Builder) {
	b.WriteByte('{')
	if len(s.Statements) == 0 {
		s.Blank.Render(b)
	}
	for _, stmt := range s.Statements {
		stmt.Render(b)
	}
	b.WriteByte('}')
}

func wrappedStatement(c Cursor) (Cursor, Node[Statement], error) {
	return wrap(c, parseStatement)
}

func parseBlock(c Cursor) (Cursor, *Block, error) {
	d, err := literal(c, "{")
	if err != nil {
		return c, nil, err
	}
	block := &Block{}
	d, block.Statements, err = many(d, wrappedStatement)
	if err != nil {
		return c, nil, err
	}
	if len(block.Statements) == 0 {
		d, block.Blank, _ = wrap(d, parseEmpty)
	}
	if d, err = literal(d, "}"); err != nil {
		return c, nil, err
	}
	return d, block, nil
}

// VarType is an explicit type, or nil for `var`.
type VarType struct {
	Type *Node[Type]
}

func (v VarType) Render(b *strings.Builder) {
	if v.Type == nil {
		b.WriteString("var")
		return
	}
	v.Type.Render(b)
}

// A type counts as a declaration type only when a name follows it, which is
// what separates `Integer x` from the expression `x`.
func parseVarType(c Cursor) (Cursor, VarType, error) {
	d, t, err := wrap(c, parseType)
	if err == nil && peek(d, parseIdentifier) {
		return d, VarType{Type: &t}, nil
	}
	if fatal(err) {
		return c, VarType{}, err
	}
	d, err = keyword(c, "var")
	if err != nil {
		return c, VarType{}, c.fail("type", "'var'")
	}
	return d, VarType{}, nil
}

// Declarator is one `name` or `name = value` in a declaration list.
type Declarator struct {
	Name  Node[Identifier]
	Value *Node[Expr]
}

func (d Declarator) Render(b *strings.Builder) {
	d.Name.Render(b)
	if d.Value != nil {
		b.WriteByte('=')
		d.Value.Render(b)
	}
}

func parseDeclarator(c Cursor) (Cursor, Declarator, error) {
	d, name, err := wrap(c, parseIdentifier)
	if err != nil {
		return c, Declarator{}, err
	}
	decl := Declarator{Name: name}
	if e, ok := d.consume("="); ok {
		e, value, err := wrap(e, parseExpression)
		if fatal(err) {
			return c, Declarator{}, err
		}
		if err == nil {
			decl.Value = &value
			d = e
		}
	}
	return d, decl, nil
}

func renderDeclarators(b *strings.Builder, decls []Declarator) {
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(',')
		}
		d.Render(b)
	}
}

type VarDecl struct {
	Type         Node[VarType]
	Declarations []Declarator
}

func (v VarDecl) Render(b *strings.Builder) {
	v.Type.Render(b)
	renderDeclarators(b, v.Declarations)
}

func parseVarDecl(c Cursor) (Cursor, VarDecl, error) {
	d, t, err := wrap(c, parseVarType)
	if err != nil {
		return c, VarDecl{}, err
	}
	d, decls, err := sepBy1(d, ",", parseDeclarator)
	if err != nil {
		return c, VarDecl{}, err
	}
	return d, VarDecl{Type: t, Declarations: decls}, nil
}

type VarDeclStmt struct {
	Decl Node[VarDecl]
	Semi Node[Semi]
}

func (s *VarDeclStmt) Render(b *strings.Builder) {
	s.Decl.Render(b)
	s.Semi.Render(b)
}

func parseVarDeclStmt(c Cursor) (Cursor, Statement, error) {
	d, decl, err := wrap(c, parseVarDecl)
	if err != nil {
		return c, nil, err
	}
	d, semi, _ := wrap(d, parseSemi)
	return d, &VarDeclStmt{Decl: decl, Semi: semi}, nil
}

type IfStmt struct {
	Cond Node[*ParenExpr]
	Then Node[Statement]
	Else *Node[Statement]
}

func (s *IfStmt) Render(b *strings.Builder) {
	b.WriteString("if")
	s.Cond.Render(b)
	s.Then.Render(b)
	if s.Else != nil {
		b.WriteString("else")
		s.Else.Render(b)
	}
}

func parseIf(c Cursor) (Cursor, Statement, error) {
	d, err := keyword(c, "if")
	if err != nil {
		return c, nil, err
	}
	s := &IfStmt{}
	if d, s.Cond, err = wrap(d, parseParenExpr); err != nil {
		return c, nil, err
	}
	if d, s.Then, err = wrap(d, parseStatement); err != nil {
		return c, nil, err
	}
	if e, err := keyword(d, "else"); err == nil {
		e, els, err := wrap(e, parseStatement)
		if fatal(err) {
			return c, nil, err
		}
		if err == nil {
			s.Else = &els
			d = e
		}
	}
	return d, s, nil
}

type WhileStmt struct {
	Cond Node[Expr]
	Body Node[Statement]
}

func (s *WhileStmt) Render(b *strings.Builder) {
	b.WriteString("while")
	s.Cond.Render(b)
	s.Body.Render(b)
}

func parseWhile(c Cursor) (Cursor, Statement, error) {
	d, err := keyword(c, "while")
	if err != nil {
		return c, nil, err
	}
	s := &WhileStmt{}
	if d, s.Cond, err = wrap(d, parseExpression); err != nil {
		return c, nil, err
	}
	if d, s.Body, err = wrap(d, parseStatement); err != nil {
		return c, nil, err
	}
	return d, s, nil
}

type DoWhileStmt struct {
	Body Node[Statement]
	Cond Node[Expr]
	Semi Node[Semi]
}

func (s *DoWhileStmt) Render(b *strings.Builder) {
	b.WriteString("do")
	s.Body.Render(b)
	b.WriteString("while")
	s.Cond.Render(b)
	s.Semi.Render(b)
}

func parseDoWhile(c Cursor) (Cursor, Statement, error) {
	d, err := keyword(c, "do")
	if err != nil {
		return c, nil, err
	}
	s := &DoWhileStmt{}
	if d, s.Body, err = wrap(d, parseStatement); err != nil {
		return c, nil, err
	}
	if d, err = keyword(d, "while"); err != nil {
		return c, nil, err
	}
	if d, s.Cond, err = wrap(d, parseExpression); err != nil {
		return c, nil, err
	}
	d, s.Semi, _ = wrap(d, parseSemi)
	return d, s, nil
}

// ForHeader is the parenthesized part of a for loop.
type ForHeader interface {
	Renderer
	forHeaderNode()
}

// ForInit is the first slot of a C-style loop. Both fields are nil when the
// slot is empty.
type ForInit struct {
	Decl *VarDecl
	Expr Expr
}

func (f ForInit) Render(b *strings.Builder) {
	switch {
	case f.Decl != nil:
		f.Decl.Render(b)
	case f.Expr != nil:
		f.Expr.Render(b)
	}
}

func parseForInit(c Cursor) (Cursor, ForInit, error) {
	if d, decl, err := parseVarDecl(c); err == nil {
		return d, ForInit{Decl: &decl}, nil
	} else if fatal(err) {
		return c, ForInit{}, err
	}
	if d, x, err := parseExpression(c); err == nil {
		return d, ForInit{Expr: x}, nil
	} else if fatal(err) {
		return c, ForInit{}, err
	}
	return c, ForInit{}, nil
}

// OptionalExpr is a loop slot that may be empty.
type OptionalExpr struct {
	Expr Expr
}

func (o OptionalExpr) Render(b *strings.Builder) {
	if o.Expr != nil {
		o.Expr.Render(b)
	}
}

func parseOptionalExpr(c Cursor) (Cursor, OptionalExpr, error) {
	d, x, err := parseExpression(c)
	if err != nil {
		if fatal(err) {
			return c, OptionalExpr{}, err
		}
		return c, OptionalExpr{}, nil
	}
	return d, OptionalExpr{Expr: x}, nil
}

// ForClause is the C-style header (init; condition; increment). Empty slots
// still keep the trivia written in them.
type ForClause struct {
	Init      Node[ForInit]
	Cond      Node[OptionalExpr]
	Increment Node[OptionalExpr]
}

func (f *ForClause) Render(b *strings.Builder) {
	b.WriteByte('(')
	f.Init.Render(b)
	b.WriteByte(';')
	f.Cond.Render(b)
	b.WriteByte(';')
	f.Increment.Render(b)
	b.WriteByte(')')
}

func parseForClause(c Cursor) (Cursor, ForHeader, error) {
	d, first, err := wrap(c, parseForInit)
	if err != nil {
		return c, nil, err
	}
	f := &ForClause{Init: first}
	if d, err = literal(d, ";"); err != nil {
		return c, nil, err
	}
	if d, f.Cond, err = wrap(d, parseOptionalExpr); err != nil {
		return c, nil, err
	}
	if d, err = literal(d, ";"); err != nil {
		return c, nil, err
	}
	if d, f.Increment, err = wrap(d, parseOptionalExpr); err != nil {
		return c, nil, err
	}
	return d, f, nil
}

// ForInClause is (value in iterable) or (key : value in iterable).
type ForInClause struct {
	Key      *Node[VarDecl]
	Value    Node[VarDecl]
	Iterable Node[Expr]
}

func (f *ForInClause) Render(b *strings.Builder) {
	b.WriteByte('(')
	if f.Key != nil {
		f.Key.Render(b)
		b.WriteByte(':')
	}
	f.Value.Render(b)
	b.WriteString("in")
	f.Iterable.Render(b)
	b.WriteByte(')')
}

func parseForInClause(c Cursor) (Cursor, ForHeader, error) {
	f := &ForInClause{}
	d := c
	if e, key, err := wrap(c, parseVarDecl); err == nil {
		if e, ok := e.consume(":"); ok {
			f.Key = &key
			d = e
		}
	}
	d, value, err := wrap(d, parseVarDecl)
	if err != nil {
		return c, nil, err
	}
	f.Value = value
	if d, err = keyword(d, "in"); err != nil {
		return c, nil, err
	}
	if d, f.Iterable, err = wrap(d, parseExpression); err != nil {
		return c, nil, err
	}
	return d, f, nil
}

func parseForHeader(c Cursor) (Cursor, ForHeader, error) {
	d, err := literal(c, "(")
	if err != nil {
		return c, nil, err
	}
	d, h, err := alt(d, parseForClause, parseForInClause)
	if err != nil {
		return c, nil, err
	}
	if d, err = literal(d, ")"); err != nil {
		return c, nil, err
	}
	return d, h, nil
}

type ForStmt struct {
	Header Node[ForHeader]
	Body   Node[Statement]
}

func (s *ForStmt) Render(b *strings.Builder) {
	b.WriteString("for")
	s.Header.Render(b)
	s.Body.Render(b)
}

func parseFor(c Cursor) (Cursor, Statement, error) {
	d, err := keyword(c, "for")
	if err != nil {
		return c, nil, err
	}
	s := &ForStmt{}
	if d, s.Header, err = wrap(d, parseForHeader); err != nil {
		return c, nil, err
	}
	if d, s.Body, err = wrap(d, parseStatement); err != nil {
		return c, nil, err
	}
	return d, s, nil
}

type ReturnStmt struct {
	Value *Node[Expr]
	Semi  Node[Semi]
}

func (s *ReturnStmt) Render(b *strings.Builder) {
	b.WriteString("return")
	if s.Value != nil {
		s.Value.Render(b)
	}
	s.Semi.Render(b)
}

func parseReturn(c Cursor) (Cursor, Statement, error) {
	d, err := keyword(c, "return")
	if err != nil {
		return c, nil, err
	}
	s := &ReturnStmt{}
	if d, s.Value, err = optional(d, parseExpression); err != nil {
		return c, nil, err
	}
	d, s.Semi, _ = wrap(d, parseSemi)
	return d, s, nil
}

// JumpStmt is `break` or `continue`.
type JumpStmt struct {
	Keyword string
	Semi    Node[Semi]
}

func (s *JumpStmt) Render(b *strings.Builder) {
	b.WriteString(s.Keyword)
	s.Semi.Render(b)
}

func parseJump(c Cursor) (Cursor, Statement, error) {
	for _, word := range []string{"break", "continue"} {
		if d, err := keyword(c, word); err == nil {
			s := &JumpStmt{Keyword: word}
			d, s.Semi, _ = wrap(d, parseSemi)
			return d, s, nil
		}
	}
	return c, nil, c.fail("'break'", "'continue'")
}

type ExprStmt struct {
	Expr Node[Expr]
	Semi Node[Semi]
}

func (s *ExprStmt) Render(b *strings.Builder) {
	s.Expr.Render(b)
	s.Semi.Render(b)
}

func parseExprStmt(c Cursor) (Cursor, Statement, error) {
	d, x, err := wrap(c, parseExpression)
	if err != nil {
		return c, nil, err
	}
	s := &ExprStmt{Expr: x}
	d, s.Semi, _ = wrap(d, parseSemi)
	return d, s, nil
}

// EmptyStmt is a lone `;`.
type EmptyStmt struct{}

func (*EmptyStmt) Render(b *strings.Builder) {
	b.WriteByte(';')
}

func parseEmptyStmt(c Cursor) (Cursor, Statement, error) {
	d, err := literal(c, ";")
	if err != nil {
		return c, nil, err
	}
	return d, &EmptyStmt{}, nil
}

func parseBlockStmt(c Cursor) (Cursor, Statement, error) {
	d, block, err := parseBlock(c)
	if err != nil {
		return c, nil, err
	}
	return d, block, nil
}

func parseStatement(c Cursor) (Cursor, Statement, error) {
	return alt(c,
		parseBlockStmt,
		parseVarDeclStmt,
		parseIf,
		parseDoWhile,
		parseWhile,
		parseFor,
		parseReturn,
		parseJump,
		parseExprStmt,
		parseEmptyStmt,
	)
}

func (*Block) stmtNode()       {}
func (*VarDeclStmt) stmtNode() {}
func (*IfStmt) stmtNode()      {}
func (*WhileStmt) stmtNode()   {}
func (*DoWhileStmt) stmtNode() {}
func (*ForStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()  {}
func (*JumpStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()    {}
func (*EmptyStmt) stmtNode()   {}

func (*Block) globalNode()       {}
func (*VarDeclStmt) globalNode() {}
func (*IfStmt) globalNode()      {}
func (*WhileStmt) globalNode()   {}
func (*DoWhileStmt) globalNode() {}
func (*ForStmt) globalNode()     {}
func (*ReturnStmt) globalNode()  {}
func (*JumpStmt) globalNode()    {}
func (*ExprStmt) globalNode()    {}
func (*EmptyStmt) globalNode()   {}

func (*ForClause) forHeaderNode()   {}
func (*ForInClause) forHeaderNode() {}
