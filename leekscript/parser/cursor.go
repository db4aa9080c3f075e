package parser

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds how many wrapped nodes may be nested while parsing.
const DefaultMaxDepth = 1000

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

type Option func(*source)

// WithFile sets the source identifier reported in positions.
func WithFile(name string) Option {
	return func(s *source) {
		s.name = name
	}
}

// WithMaxDepth sets the nesting limit. Values <= 0 select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *source) {
		s.maxDepth = depth
	}
}

type source struct {
	name     string
	text     string
	maxDepth int
}

// Cursor is an immutable view over the unconsumed part of the input. Every
// parse step returns a new Cursor; none is ever modified in place.
type Cursor struct {
	src    *source
	offset int
	line   int
	column int
	depth  int
}

func NewCursor(text string, opts ...Option) Cursor {
	src := &source{text: text}
	for _, opt := range opts {
		opt(src)
	}
	if src.maxDepth <= 0 {
		src.maxDepth = DefaultMaxDepth
	}
	return Cursor{src: src, line: 1, column: 1}
}

func (c Cursor) Pos() Position {
	return Position{
		File:   c.src.name,
		Offset: c.offset,
		Line:   c.line,
		Column: c.column,
	}
}

func (c Cursor) Offset() int {
	return c.offset
}

// Rest returns the unconsumed input.
func (c Cursor) Rest() string {
	return c.src.text[c.offset:]
}

func (c Cursor) AtEOF() bool {
	return c.offset >= len(c.src.text)
}

func (c Cursor) peek() byte {
	return c.peekN(0)
}

func (c Cursor) peekN(n int) byte {
	if c.offset+n >= len(c.src.text) {
		return 0
	}
	return c.src.text[c.offset+n]
}

func (c Cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Advance consumes n bytes, keeping line and column in step.
func (c Cursor) Advance(n int) Cursor {
	end := c.offset + n
	if end > len(c.src.text) {
		end = len(c.src.text)
	}
	for i := c.offset; i < end; i++ {
		if c.src.text[i] == '\n' {
			c.line++
			c.column = 1
		} else {
			c.column++
		}
	}
	c.offset = end
	return c
}

// Text returns the input consumed between c and end.
func (c Cursor) Text(end Cursor) string {
	return c.src.text[c.offset:end.offset]
}

func (c Cursor) consume(s string) (Cursor, bool) {
	if !c.hasPrefix(s) {
		return c, false
	}
	return c.Advance(len(s)), true
}

func (c Cursor) descend() (Cursor, error) {
	if c.depth >= c.src.maxDepth {
		return c, &Error{Pos: c.Pos(), Got: c.got(), Err: ErrTooDeep}
	}
	c.depth++
	return c, nil
}

func (c Cursor) got() string {
	rest := c.Rest()
	if rest == "" {
		return "EOF"
	}
	switch i := strings.IndexAny(rest, "\r\n"); {
	case i == 0:
		return "newline"
	case i > 0:
		rest = rest[:i]
	}
	if len(rest) > 20 {
		rest = rest[:20] + "…"
	}
	return rest
}
