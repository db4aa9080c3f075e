package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// parseExpr parses src as a single expression and checks that all of it was
// consumed and that it renders back unchanged.
func parseExpr(t *testing.T, src string) Node[Expr] {
	t.Helper()
	rest, n, err := ParseExpression(NewCursor(src))
	require.NoError(t, err)
	require.True(t, rest.AtEOF(), "unconsumed input %q", rest.Rest())
	require.Equal(t, src, Text(n))
	return n
}

func parseStmt(t *testing.T, src string) Node[Statement] {
	t.Helper()
	rest, n, err := ParseStatement(NewCursor(src))
	require.NoError(t, err)
	require.True(t, rest.AtEOF(), "unconsumed input %q", rest.Rest())
	require.Equal(t, src, Text(n))
	return n
}

func mustParseFile(t *testing.T, src string) *File {
	t.Helper()
	f, err := ParseFile(src, WithFile("test.leek"))
	require.NoError(t, err)
	require.Equal(t, src, Text(f))
	return f
}
