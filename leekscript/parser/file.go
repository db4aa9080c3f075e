package parser

import (
	"errors"
	"strings"
)

// GlobalStatement is anything allowed at the top level of a file.
type GlobalStatement interface {
	Renderer
	globalNode()
}

// IncludeStmt is include("path").
type IncludeStmt struct {
	Keyword Node[Punct]
	Path    Node[StringLiteral]
	Semi    Node[Semi]
}

func (s *IncludeStmt) Render(b *strings.Builder) {
	s.Keyword.Render(b)
	b.WriteByte('(')
	s.Path.Render(b)
	b.WriteByte(')')
	s.Semi.Render(b)
}

var includeKeyword = punct("include")

func parseInclude(c Cursor) (Cursor, GlobalStatement, error) {
	s := &IncludeStmt{}
	d, kw, err := wrap(c, includeKeyword)
	if err != nil {
		return c, nil, err
	}
	s.Keyword = kw
	if d, err = literal(d, "("); err != nil {
		return c, nil, err
	}
	if d, s.Path, err = wrap(d, parseString); err != nil {
		return c, nil, err
	}
	if d, err = literal(d, ")"); err != nil {
		return c, nil, err
	}
	d, s.Semi, _ = wrap(d, parseSemi)
	return d, s, nil
}

// GlobalDecl declares file-level variables with `global`.
type GlobalDecl struct {
	Type         *Node[Type]
	Declarations []Declarator
	Semi         Node[Semi]
}

func (s *GlobalDecl) Render(b *strings.Builder) {
	b.WriteString("global")
	if s.Type != nil {
		s.Type.Render(b)
	}
	renderDeclarators(b, s.Declarations)
	s.Semi.Render(b)
}

func parseGlobalDecl(c Cursor) (Cursor, GlobalStatement, error) {
	d, err := keyword(c, "global")
	if err != nil {
		return c, nil, err
	}
	s := &GlobalDecl{}
	if e, t, err := wrap(d, parseType); err == nil && peek(e, parseIdentifier) {
		s.Type = &t
		d = e
	}
	if d, s.Declarations, err = sepBy1(d, ",", parseDeclarator); err != nil {
		return c, nil, err
	}
	d, s.Semi, _ = wrap(d, parseSemi)
	return d, s, nil
}

func parseClassGlobal(c Cursor) (Cursor, GlobalStatement, error) {
	d, cl, err := parseClass(c)
	if err != nil {
		return c, nil, err
	}
	return d, cl, nil
}

func parseStatementGlobal(c Cursor) (Cursor, GlobalStatement, error) {
	d, s, err := parseStatement(c)
	if err != nil {
		return c, nil, err
	}
	return d, s, nil
}

func parseGlobalStatement(c Cursor) (Cursor, GlobalStatement, error) {
	return alt(c,
		parseInclude,
		parseClassGlobal,
		parseGlobalDecl,
		parseStatementGlobal,
		parseFunctionDecl,
	)
}

func wrappedGlobalStatement(c Cursor) (Cursor, Node[GlobalStatement], error) {
	return wrap(c, parseGlobalStatement)
}

// File is a whole source file. EOF holds the trivia after the last
// statement, or all of it when the file has no statements.
type File struct {
	Statements []Node[GlobalStatement]
	EOF        Node[Empty]
}

func (f *File) Render(b *strings.Builder) {
	for _, s := range f.Statements {
		s.Render(b)
	}
	f.EOF.Render(b)
}

func parseFile(c Cursor) (Cursor, *File, error) {
	d, stmts, err := many(c, wrappedGlobalStatement)
	if err != nil {
		return c, nil, err
	}
	f := &File{Statements: stmts}
	d, f.EOF, err = wrap(d, parseEmpty)
	if err != nil {
		return c, nil, err
	}
	return d, f, nil
}

func (*IncludeStmt) globalNode()  {}
func (*GlobalDecl) globalNode()   {}
func (*FunctionDecl) globalNode() {}
func (*Class) globalNode()        {}

// Parse parses as many global statements as possible and returns them with
// the cursor at the first unconsumed byte.
func Parse(text string, opts ...Option) (*File, Cursor, error) {
	c := NewCursor(text, opts...)
	d, f, err := parseFile(c)
	if err != nil {
		return nil, c, err
	}
	return f, d, nil
}

// ParseFile parses a complete file. Input left over after the last
// statement is reported as an *Error at the first byte that could not be
// parsed.
func ParseFile(text string, opts ...Option) (*File, error) {
	f, rest, err := Parse(text, opts...)
	if err != nil {
		return nil, err
	}
	if !rest.AtEOF() {
		return f, leftoverError(rest)
	}
	return f, nil
}

// leftoverError explains why parsing stopped at c by retrying the
// statement that failed there.
func leftoverError(c Cursor) error {
	if c.hasPrefix("/*") {
		return &Error{Pos: c.Pos(), Expected: []string{"'*/'"}, Got: "EOF"}
	}
	_, _, err := parseGlobalStatement(c)
	var perr *Error
	if errors.As(err, &perr) && perr.Pos.Offset > c.offset {
		return perr
	}
	return c.fail("statement")
}

// ParseExpression parses one expression with its surrounding trivia.
func ParseExpression(c Cursor) (Cursor, Node[Expr], error) {
	return wrap(c, parseExpression)
}

func ParseStatement(c Cursor) (Cursor, Node[Statement], error) {
	return wrap(c, parseStatement)
}

func ParseGlobalStatement(c Cursor) (Cursor, Node[GlobalStatement], error) {
	return wrap(c, parseGlobalStatement)
}

func ParseType(c Cursor) (Cursor, Node[Type], error) {
	return wrap(c, parseType)
}

func ParseClass(c Cursor) (Cursor, Node[*Class], error) {
	return wrap(c, parseClass)
}

func ParseLiteral(c Cursor) (Cursor, Node[Literal], error) {
	return wrap(c, parseLiteral)
}

// ParseTrivia consumes trivia at c. It never fails.
func ParseTrivia(c Cursor) (Cursor, Trivia) {
	return parseTrivia(c)
}
