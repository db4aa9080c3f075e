package parser

import "strings"

type TriviaKind int

const (
	Whitespace TriviaKind = iota
	LineComment
	BlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	}
	return "Unknown"
}

// TriviaPiece is one run of whitespace or one comment. Text holds the exact
// source bytes, delimiters included.
type TriviaPiece struct {
	Kind TriviaKind
	Text string
}

type Trivia []TriviaPiece

func (t Trivia) Render(b *strings.Builder) {
	for _, piece := range t {
		b.WriteString(piece.Text)
	}
}

// Comments returns only the comment pieces.
func (t Trivia) Comments() []TriviaPiece {
	var out []TriviaPiece
	for _, piece := range t {
		if piece.Kind != Whitespace {
			out = append(out, piece)
		}
	}
	return out
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// parseTrivia consumes any run of trivia. It never fails. An unterminated
// block comment is not trivia and is left in the input.
func parseTrivia(c Cursor) (Cursor, Trivia) {
	var trivia Trivia
	for {
		rest := c.Rest()
		n := 0
		kind := Whitespace
		switch {
		case rest == "":
		case isSpace(rest[0]):
			for n < len(rest) && isSpace(rest[n]) {
				n++
			}
		case strings.HasPrefix(rest, "//"):
			kind = LineComment
			n = strings.IndexAny(rest, "\r\n")
			if n < 0 {
				n = len(rest)
			}
		case strings.HasPrefix(rest, "/*"):
			kind = BlockComment
			if end := strings.Index(rest[2:], "*/"); end >= 0 {
				n = end + 4
			}
		}
		if n == 0 {
			return c, trivia
		}
		trivia = append(trivia, TriviaPiece{Kind: kind, Text: rest[:n]})
		c = c.Advance(n)
	}
}
