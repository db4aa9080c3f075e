package parser

import "strings"

// Expr is any expression. Parsing never wraps a value in an operator node
// that has no operator, so a lone primary comes back as itself.
type Expr interface {
	Renderer
	exprNode()
}

// Level names a rung of the precedence ladder, lowest binding first.
type Level int

const (
	LevelAssignment Level = iota
	LevelLogicalOr
	LevelLogicalXor
	LevelLogicalAnd
	LevelRelational
	LevelInstanceOf
	LevelShift
	LevelBitwiseOr
	LevelBitwiseXor
	LevelBitwiseAnd
	LevelAdditive
	LevelMultiplicative
	LevelPrefixUpdate
	LevelPostfixUpdate
	LevelUnary
)

var levelNames = [...]string{
	LevelAssignment:     "Assignment",
	LevelLogicalOr:      "LogicalOr",
	LevelLogicalXor:     "LogicalXor",
	LevelLogicalAnd:     "LogicalAnd",
	LevelRelational:     "Relational",
	LevelInstanceOf:     "InstanceOf",
	LevelShift:          "Shift",
	LevelBitwiseOr:      "BitwiseOr",
	LevelBitwiseXor:     "BitwiseXor",
	LevelBitwiseAnd:     "BitwiseAnd",
	LevelAdditive:       "Additive",
	LevelMultiplicative: "Multiplicative",
	LevelPrefixUpdate:   "PrefixUpdate",
	LevelPostfixUpdate:  "PostfixUpdate",
	LevelUnary:          "Unary",
}

func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "Unknown"
}

// Operator keeps the operator exactly as written, so "and" and "&&" differ.
type Operator string

func (o Operator) Render(b *strings.Builder) {
	b.WriteString(string(o))
}

type Operand struct {
	Op    Node[Operator]
	Right Node[Expr]
}

// BinaryExpr is a left operand followed by one or more operator/operand
// pairs of the same level. Assignment chains use it too.
type BinaryExpr struct {
	Level    Level
	Left     Expr
	Operands []Operand
}

func (e *BinaryExpr) Render(b *strings.Builder) {
	e.Left.Render(b)
	for _, o := range e.Operands {
		o.Op.Render(b)
		o.Right.Render(b)
	}
}

type TernaryExpr struct {
	Cond Node[Expr]
	Then Node[Expr]
	Else Node[Expr]
}

func (e *TernaryExpr) Render(b *strings.Builder) {
	e.Cond.Render(b)
	b.WriteByte('?')
	e.Then.Render(b)
	b.WriteByte(':')
	e.Else.Render(b)
}

// UnaryExpr is a prefix operator applied to an operand, at either the
// prefix update or the unary level.
type UnaryExpr struct {
	Level   Level
	Op      Node[Operator]
	Operand Expr
}

func (e *UnaryExpr) Render(b *strings.Builder) {
	e.Op.Render(b)
	e.Operand.Render(b)
}

type PostfixExpr struct {
	Operand Expr
	Op      Node[Operator]
}

func (e *PostfixExpr) Render(b *strings.Builder) {
	e.Operand.Render(b)
	e.Op.Render(b)
}

// CastExpr is a type conversion with `as`.
type CastExpr struct {
	Value Expr
	As    Node[Operator]
	Type  Node[Type]
}

func (e *CastExpr) Render(b *strings.Builder) {
	e.Value.Render(b)
	e.As.Render(b)
	e.Type.Render(b)
}

// Accessor is one link of a member chain.
type Accessor interface {
	Renderer
	accessorNode()
}

type MemberExpr struct {
	Target Expr
	Chain  []Node[Accessor]
}

func (e *MemberExpr) Render(b *strings.Builder) {
	e.Target.Render(b)
	for _, a := range e.Chain {
		a.Render(b)
	}
}

type DotAccess struct {
	Name Node[MemberName]
}

func (a *DotAccess) Render(b *strings.Builder) {
	b.WriteByte('.')
	a.Name.Render(b)
}

type IndexAccess struct {
	Index Node[Expr]
}

func (a *IndexAccess) Render(b *strings.Builder) {
	b.WriteByte('[')
	a.Index.Render(b)
	b.WriteByte(']')
}

// CallAccess holds call arguments. Blank keeps the trivia of an empty list.
type CallAccess struct {
	Args  []Node[Expr]
	Blank Node[Empty]
}

func (a *CallAccess) Render(b *strings.Builder) {
	b.WriteByte('(')
	if len(a.Args) == 0 {
		a.Blank.Render(b)
	}
	for i, arg := range a.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		arg.Render(b)
	}
	b.WriteByte(')')
}

// NotNullAccess is the postfix non-null assertion `!`.
type NotNullAccess struct{}

func (*NotNullAccess) Render(b *strings.Builder) {
	b.WriteByte('!')
}

type NameExpr struct {
	Name Node[MemberName]
}

func (e *NameExpr) Render(b *strings.Builder) {
	e.Name.Render(b)
}

type ParenExpr struct {
	Inner Node[Expr]
}

func (e *ParenExpr) Render(b *strings.Builder) {
	b.WriteByte('(')
	e.Inner.Render(b)
	b.WriteByte(')')
}

// Collection literals keep an optional trailing comma and, when they have no
// elements, the trivia between their delimiters.

type ArrayLiteral struct {
	Elements      []Node[Expr]
	TrailingComma *Node[Punct]
	Blank         Node[Empty]
}

func (e *ArrayLiteral) Render(b *strings.Builder) {
	b.WriteByte('[')
	renderList(b, e.Elements, e.TrailingComma, e.Blank)
	b.WriteByte(']')
}

type SetLiteral struct {
	Elements      []Node[Expr]
	TrailingComma *Node[Punct]
	Blank         Node[Empty]
}

func (e *SetLiteral) Render(b *strings.Builder) {
	b.WriteByte('<')
	renderList(b, e.Elements, e.TrailingComma, e.Blank)
	b.WriteByte('>')
}

// Entry is a key/value pair. The colon between them is bare.
type Entry struct {
	Key   Node[Expr]
	Value Node[Expr]
}

func (e Entry) Render(b *strings.Builder) {
	e.Key.Render(b)
	b.WriteByte(':')
	e.Value.Render(b)
}

type ObjectLiteral struct {
	Entries       []Entry
	TrailingComma *Node[Punct]
	Blank         Node[Empty]
}

func (e *ObjectLiteral) Render(b *strings.Builder) {
	b.WriteByte('{')
	renderList(b, e.Entries, e.TrailingComma, e.Blank)
	b.WriteByte('}')
}

// MapLiteral is written [k: v, ...]; the empty map is [:], whose colon is
// kept with its trivia.
type MapLiteral struct {
	Entries       []Entry
	TrailingComma *Node[Punct]
	EmptyColon    Node[Punct]
}

func (e *MapLiteral) Render(b *strings.Builder) {
	b.WriteByte('[')
	if len(e.Entries) == 0 {
		e.EmptyColon.Render(b)
	}
	renderList(b, e.Entries, e.TrailingComma, Node[Empty]{})
	b.WriteByte(']')
}

func renderList[T Renderer](b *strings.Builder, items []T, trailing *Node[Punct], blank Node[Empty]) {
	if len(items) == 0 {
		blank.Render(b)
		return
	}
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		item.Render(b)
	}
	if trailing != nil {
		trailing.Render(b)
	}
}

func (*BinaryExpr) exprNode()    {}
func (*TernaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()     {}
func (*PostfixExpr) exprNode()   {}
func (*CastExpr) exprNode()      {}
func (*MemberExpr) exprNode()    {}
func (*NameExpr) exprNode()      {}
func (*ParenExpr) exprNode()     {}
func (*ArrayLiteral) exprNode()  {}
func (*SetLiteral) exprNode()    {}
func (*ObjectLiteral) exprNode() {}
func (*MapLiteral) exprNode()    {}

func (*DotAccess) accessorNode()     {}
func (*IndexAccess) accessorNode()   {}
func (*CallAccess) accessorNode()    {}
func (*NotNullAccess) accessorNode() {}
