package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTrivia(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Trivia
		rest  string
	}{
		{"empty", "x", nil, "x"},
		{"spaces", " \t\r\nx", Trivia{{Whitespace, " \t\r\n"}}, "x"},
		{"line comment", "// hi\nx", Trivia{{LineComment, "// hi"}, {Whitespace, "\n"}}, "x"},
		{"empty line comment", "//\nx", Trivia{{LineComment, "//"}, {Whitespace, "\n"}}, "x"},
		{"line comment at eof", "// end", Trivia{{LineComment, "// end"}}, ""},
		{"block comment", "/* a\nb */x", Trivia{{BlockComment, "/* a\nb */"}}, "x"},
		{"mixed", "  /**/ // c\n\tx", Trivia{
			{Whitespace, "  "},
			{BlockComment, "/**/"},
			{Whitespace, " "},
			{LineComment, "// c"},
			{Whitespace, "\n\t"},
		}, "x"},
		{"unterminated block comment", "/* open", nil, "/* open"},
		{"division is not a comment", "/ 2", nil, "/ 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, trivia := ParseTrivia(NewCursor(tt.input))
			require.Equal(t, tt.want, trivia)
			require.Equal(t, tt.rest, rest.Rest())
		})
	}
}

func TestNodeTrivia(t *testing.T) {
	n := parseExpr(t, "  /* lead */ 1 // trail\n")
	require.Equal(t, Trivia{{Whitespace, "  "}, {BlockComment, "/* lead */"}, {Whitespace, " "}}, n.Leading)
	require.Equal(t, Trivia{{Whitespace, " "}, {LineComment, "// trail"}, {Whitespace, "\n"}}, n.Trailing)
	require.Len(t, n.Leading.Comments(), 1)

	require.Equal(t, Position{Offset: 13, Line: 1, Column: 14}, n.Span.Start)
	require.Equal(t, Position{Offset: 14, Line: 1, Column: 15}, n.Span.End)
}

func TestCursorAdvance(t *testing.T) {
	c := NewCursor("ab\ncd", WithFile("x.leek"))
	c = c.Advance(4)
	require.Equal(t, Position{File: "x.leek", Offset: 4, Line: 2, Column: 2}, c.Pos())
	require.Equal(t, "d", c.Rest())
	require.True(t, c.Advance(10).AtEOF())
}
