package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *parser.File {
	t.Helper()
	f, err := parser.ParseFile(src, parser.WithFile("t.leek"))
	require.NoError(t, err)
	return f
}

func TestTreeString(t *testing.T) {
	f := mustParse(t, "a = 1 + 2;")
	want := `File
  Statements: ExprStmt
    Expr: BinaryExpr level=Assignment
      Left: NameExpr
        Name: MemberName kind=identifier name="a"
      Operands: Operand
        Op: Operator value="="
        Right: BinaryExpr level=Additive
          Left: NumberLiteral raw="1" format=decimal kind=integer value="1"
          Operands: Operand
            Op: Operator value="+"
            Right: NumberLiteral raw="2" format=decimal kind=integer value="2"
    Semi: Semi
`
	require.Equal(t, want, Tree(f).String())
}

func TestTreeComments(t *testing.T) {
	f := mustParse(t, "/* head */ x; // tail\n")
	tree := Tree(f)
	require.Len(t, tree.Children, 1)
	stmt := tree.Children[0]
	require.Equal(t, "ExprStmt", stmt.Kind)
	require.Equal(t, []string{"/* head */"}, stmt.Comments)

	var all []string
	Walk(tree, func(n *TreeNode) {
		all = append(all, n.Comments...)
	})
	require.Equal(t, []string{"/* head */", "// tail"}, all)
}

func TestTreeEmptyKeepsComments(t *testing.T) {
	tree := Tree(mustParse(t, "// only\n"))
	require.Len(t, tree.Children, 1)
	require.Equal(t, "Trivia", tree.Children[0].Kind)
	require.Equal(t, "EOF", tree.Children[0].Field)
}

func TestTreePositions(t *testing.T) {
	f := mustParse(t, "a;\n  b;")
	out := Tree(f).StringWithPositions()
	require.Contains(t, out, "Statements: ExprStmt [2:3-2:5]")
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	err := NewASTJSONEncoder(&buf, true).Encode(mustParse(t, "var x = 0x10;"))
	require.NoError(t, err)

	var root struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
			Span *struct {
				Start struct {
					Line   int `json:"line"`
					Column int `json:"column"`
				} `json:"start"`
			} `json:"span"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))
	require.Equal(t, "File", root.Kind)
	require.Len(t, root.Children, 1)
	require.Equal(t, "VarDeclStmt", root.Children[0].Kind)
	require.NotNil(t, root.Children[0].Span)
	require.Equal(t, 1, root.Children[0].Span.Start.Line)
	require.Contains(t, buf.String(), `"value": "16"`)
}

func TestNewEncoder(t *testing.T) {
	src := "if (a) { b(); } // done\n"
	f := mustParse(t, src)
	for _, name := range []string{"tree", "json", "text"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(name, &buf, false)
			require.NoError(t, err)
			require.NoError(t, enc.Encode(f))
			require.NotEmpty(t, buf.String())
			if name == "text" {
				require.Equal(t, src, buf.String())
			}
		})
	}

	_, err := NewEncoder("xml", &bytes.Buffer{}, false)
	require.Error(t, err)
}

func TestTreeNumberValue(t *testing.T) {
	tests := []struct {
		src   string
		kind  string
		value string
	}{
		{"x = 0b101;", "kind=integer", `value="5"`},
		{"x = 1.50;", "kind=float", `value="1.5"`},
		{"x = 1_0e99999999999;", "kind=float", `value="10e99999999999"`},
		{"x = 1e5000;", "kind=float", `value="1e5000"`},
		{"x = 1e-99999999999;", "kind=float", `value="1e-99999999999"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			var out string
			require.NotPanics(t, func() {
				out = Tree(mustParse(t, tt.src)).String()
			})
			require.Contains(t, out, "NumberLiteral")
			require.Contains(t, out, tt.kind+" "+tt.value)
		})
	}
}

func TestTreeWordAttrsInJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf, false).Encode(mustParse(t, "a = 1e99999999999;")))
	require.Contains(t, buf.String(), `"level": "Assignment"`)
	require.Contains(t, buf.String(), `"format": "decimal"`)
	require.Contains(t, buf.String(), `"value": "1e99999999999"`)
}
