package parser

import "strings"

// Renderer is implemented by every tree value. Rendering a tree writes back
// exactly the source text it was parsed from.
type Renderer interface {
	Render(b *strings.Builder)
}

// Text renders r to a string.
func Text(r Renderer) string {
	var b strings.Builder
	r.Render(&b)
	return b.String()
}

// Node wraps a tree value together with the trivia found directly before and
// after it. Span covers Value only.
type Node[T Renderer] struct {
	Leading  Trivia
	Value    T
	Trailing Trivia
	Span     Span
}

func (n Node[T]) Render(b *strings.Builder) {
	n.Leading.Render(b)
	n.Value.Render(b)
	n.Trailing.Render(b)
}

// Inner exposes the wrapped value to tree walkers.
func (n Node[T]) Inner() Renderer {
	return n.Value
}

func (n Node[T]) Trivia() (leading, trailing Trivia) {
	return n.Leading, n.Trailing
}

func (n Node[T]) ValueSpan() Span {
	return n.Span
}

// Wrapped is implemented by every Node instantiation.
type Wrapped interface {
	Renderer
	Inner() Renderer
	Trivia() (leading, trailing Trivia)
	ValueSpan() Span
}

// wrap runs p between two trivia runs. The depth limit is checked here, so
// recursion through any wrapped production is bounded.
func wrap[T Renderer](c Cursor, p func(Cursor) (Cursor, T, error)) (Cursor, Node[T], error) {
	var n Node[T]
	inner, err := c.descend()
	if err != nil {
		return c, n, err
	}
	inner, n.Leading = parseTrivia(inner)
	start := inner.Pos()
	inner, value, err := p(inner)
	if err != nil {
		return c, n, err
	}
	n.Value = value
	n.Span = Span{Start: start, End: inner.Pos()}
	inner, n.Trailing = parseTrivia(inner)
	inner.depth = c.depth
	return inner, n, nil
}

// attachTrailing wraps a value that was parsed without a wrapper, taking the
// trivia after end as its trailing trivia.
func attachTrailing[T Renderer](start, end Cursor, value T) (Cursor, Node[T]) {
	n := Node[T]{Value: value, Span: Span{Start: start.Pos(), End: end.Pos()}}
	end, n.Trailing = parseTrivia(end)
	return end, n
}

// Empty matches nothing. It exists to hold the trivia of empty constructs.
type Empty struct{}

func (Empty) Render(*strings.Builder) {}

func parseEmpty(c Cursor) (Cursor, Empty, error) {
	return c, Empty{}, nil
}

// Punct is a fixed token such as a keyword or separator kept as its own node.
type Punct string

func (p Punct) Render(b *strings.Builder) {
	b.WriteString(string(p))
}

// Semi records whether an optional statement terminator was present.
type Semi struct {
	Present bool
}

func (s Semi) Render(b *strings.Builder) {
	if s.Present {
		b.WriteByte(';')
	}
}

func parseSemi(c Cursor) (Cursor, Semi, error) {
	if d, ok := c.consume(";"); ok {
		return d, Semi{Present: true}, nil
	}
	return c, Semi{}, nil
}
