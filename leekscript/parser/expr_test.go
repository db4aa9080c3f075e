package parser

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExpressionRoundTrip(t *testing.T) {
	tests := []string{
		"1",
		"a",
		"1 + 2 * 3",
		"a  +/* c */b",
		"a and b && c",
		"a or b || c xor d",
		"a ? b : c",
		"a ? b : c ? d : e",
		"x = y = 1",
		"x += 1",
		"a <<= 2",
		"a >>>= 2",
		"a >>> 2 >> 1 << 3",
		"a != b",
		"a == b",
		"a <= b",
		"a instanceof Foo",
		"a & b | c ^ d",
		"-(-a)",
		"not a",
		"typeof x",
		"~mask",
		"++i",
		"i--",
		"new Foo(1, 2)",
		"x as Integer",
		"x as Map<String, Integer>?",
		"a.b[0](1, 2)!",
		"f( )",
		"f()",
		"obj . field",
		"this.x",
		"super.method()",
		"a.class",
		"(1 + 2) * 3",
		"[1, 2, 3]",
		"[1, 2, ]",
		"[ ]",
		"[]",
		"[1: 'one', 2: 'two']",
		"[:]",
		"[ : ]",
		"{a: 1, b: 2}",
		"{ }",
		"<1, 2, 3>",
		"< >",
		"'str' + \"ing\"",
		"x -> x",
		"(a, b) => { return a + b; }",
		"(Integer a) -> Integer { return a; }",
		"function(a) { return a; }",
		"function ( ) -> Integer { return 1; }",
		"  a // trailing\n",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			parseExpr(t, src)
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	n := parseExpr(t, "1 + 2 * 3")
	add, ok := n.Value.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelAdditive, add.Level)
	require.Equal(t, NumberLiteral{Raw: "1", Int: 1}, add.Left)
	require.Len(t, add.Operands, 1)
	require.Equal(t, Operator("+"), add.Operands[0].Op.Value)

	mul, ok := add.Operands[0].Right.Value.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelMultiplicative, mul.Level)
	require.Equal(t, "2 * 3", Text(mul))
}

func TestParseBareLiteral(t *testing.T) {
	n := parseExpr(t, "1")
	require.Equal(t, NumberLiteral{Raw: "1", Int: 1}, n.Value)
}

func TestParseOperatorSpelling(t *testing.T) {
	n := parseExpr(t, "a and b && c")
	and, ok := n.Value.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelLogicalAnd, and.Level)
	require.Len(t, and.Operands, 2)
	require.Equal(t, Operator("and"), and.Operands[0].Op.Value)
	require.Equal(t, Operator("&&"), and.Operands[1].Op.Value)
}

func TestParseWordOperatorBoundary(t *testing.T) {
	n := parseExpr(t, "a + order")
	add, ok := n.Value.(*BinaryExpr)
	require.True(t, ok)
	name, ok := add.Operands[0].Right.Value.(*NameExpr)
	require.True(t, ok)
	require.Equal(t, "order", name.Name.Value.Name)
}

func TestParseTernary(t *testing.T) {
	n := parseExpr(t, "a ? b : c ? d : e")
	tern, ok := n.Value.(*TernaryExpr)
	require.True(t, ok)
	require.Equal(t, "a ", Text(tern.Cond))
	require.Equal(t, " b ", Text(tern.Then))

	inner, ok := tern.Else.Value.(*TernaryExpr)
	require.True(t, ok)
	require.Equal(t, "c ? d : e", Text(inner))
}

func TestParseAssignmentChain(t *testing.T) {
	n := parseExpr(t, "x = y = 1")
	outer, ok := n.Value.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelAssignment, outer.Level)
	require.Len(t, outer.Operands, 1)

	inner, ok := outer.Operands[0].Right.Value.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelAssignment, inner.Level)
	require.Equal(t, "y = 1", Text(inner))
}

func TestParseMemberChain(t *testing.T) {
	n := parseExpr(t, "a.b[0](1, 2)!")
	m, ok := n.Value.(*MemberExpr)
	require.True(t, ok)
	require.Len(t, m.Chain, 4)
	require.IsType(t, &DotAccess{}, m.Chain[0].Value)
	require.IsType(t, &IndexAccess{}, m.Chain[1].Value)
	require.IsType(t, &CallAccess{}, m.Chain[2].Value)
	require.IsType(t, &NotNullAccess{}, m.Chain[3].Value)
	require.Len(t, m.Chain[2].Value.(*CallAccess).Args, 2)
}

func TestParseNotNullBeforeEquals(t *testing.T) {
	n := parseExpr(t, "a!= b")
	rel, ok := n.Value.(*BinaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelRelational, rel.Level)
	require.Equal(t, Operator("!="), rel.Operands[0].Op.Value)
}

func TestParseEmptyCallKeepsTrivia(t *testing.T) {
	n := parseExpr(t, "f( /* none */ )")
	m := n.Value.(*MemberExpr)
	call := m.Chain[0].Value.(*CallAccess)
	require.Empty(t, call.Args)
	require.Equal(t, " /* none */ ", Text(call.Blank))
}

func TestParseNames(t *testing.T) {
	tests := []struct {
		input string
		kind  NameKind
	}{
		{"foo", NameIdentifier},
		{"this", NameThis},
		{"super", NameSuper},
		{"class", NameClass},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := parseExpr(t, tt.input)
			name, ok := n.Value.(*NameExpr)
			require.True(t, ok)
			require.Equal(t, tt.kind, name.Name.Value.Kind)
		})
	}
}

func TestParseUnary(t *testing.T) {
	n := parseExpr(t, "new Foo()")
	u, ok := n.Value.(*UnaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelUnary, u.Level)
	require.Equal(t, Operator("new"), u.Op.Value)
	require.IsType(t, &MemberExpr{}, u.Operand)

	n = parseExpr(t, "++i")
	u, ok = n.Value.(*UnaryExpr)
	require.True(t, ok)
	require.Equal(t, LevelPrefixUpdate, u.Level)

	n = parseExpr(t, "i++")
	require.IsType(t, &PostfixExpr{}, n.Value)
}

// Unary operators apply to a member expression, so stacking them needs
// parentheses.
func TestParseStackedUnary(t *testing.T) {
	_, _, err := ParseExpression(NewCursor("!!a"))
	require.Error(t, err)
	parseExpr(t, "!(!a)")
}

func TestParseCast(t *testing.T) {
	n := parseExpr(t, "x as Integer | Real")
	cast, ok := n.Value.(*CastExpr)
	require.True(t, ok)
	require.Equal(t, "Integer|Real", cast.Type.Value.Strip())
}

func TestParseCollections(t *testing.T) {
	tests := []struct {
		input string
		want  Expr
		size  int
	}{
		{"[1, 2, 3]", &ArrayLiteral{}, 3},
		{"[1, 2, ]", &ArrayLiteral{}, 2},
		{"[]", &ArrayLiteral{}, 0},
		{"[1: 2]", &MapLiteral{}, 1},
		{"[:]", &MapLiteral{}, 0},
		{"[ /* none */ ]", &ArrayLiteral{}, 0},
		{"[ : ]", &MapLiteral{}, 0},
		{"[[1, 2]: 3, 4: [5],]", &MapLiteral{}, 2},
		{"[[1], [2: 3]]", &ArrayLiteral{}, 2},
		{"[a ? b : c]", &ArrayLiteral{}, 1},
		{"{a: 1, b: 2,}", &ObjectLiteral{}, 2},
		{"{}", &ObjectLiteral{}, 0},
		{"<1, 2>", &SetLiteral{}, 2},
		{"<>", &SetLiteral{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := parseExpr(t, tt.input)
			require.IsType(t, tt.want, n.Value)
			var size int
			switch v := n.Value.(type) {
			case *ArrayLiteral:
				size = len(v.Elements)
			case *MapLiteral:
				size = len(v.Entries)
			case *ObjectLiteral:
				size = len(v.Entries)
			case *SetLiteral:
				size = len(v.Elements)
			}
			require.Equal(t, tt.size, size)
		})
	}
}

func TestParseNestedMapKeys(t *testing.T) {
	src := "0"
	for i := 1; i <= 30; i++ {
		src = "[" + src + ": " + strconv.Itoa(i) + "]"
	}
	n := parseExpr(t, src)
	for depth := 0; depth < 30; depth++ {
		m, ok := n.Value.(*MapLiteral)
		require.True(t, ok, "depth %d", depth)
		require.Len(t, m.Entries, 1)
		n = m.Entries[0].Key
	}
	require.IsType(t, NumberLiteral{}, n.Value)
}

func TestParseBracketErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[1 2]", "1:4: expected ']' or ':'"},
		{"[1, 2", "1:6: expected ']'"},
		{"[1: ]", "1:5:"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, _, err := ParseExpression(NewCursor(tt.input))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseArrowFunction(t *testing.T) {
	n := parseExpr(t, "(a, b) => { return a + b; }")
	f, ok := n.Value.(*ArrowFunction)
	require.True(t, ok)
	require.NotNil(t, f.Params.Value.List)
	require.Len(t, f.Params.Value.List.List, 2)
	require.Equal(t, Punct("=>"), f.Arrow.Value)
	require.Nil(t, f.ReturnType)
	require.NotNil(t, f.Body.Value.Block)

	n = parseExpr(t, "x -> x")
	f, ok = n.Value.(*ArrowFunction)
	require.True(t, ok)
	require.NotNil(t, f.Params.Value.Single)
	require.Nil(t, f.ReturnType)
	require.IsType(t, &NameExpr{}, f.Body.Value.Expr)

	n = parseExpr(t, "(Integer a) -> Integer { return a; }")
	f, ok = n.Value.(*ArrowFunction)
	require.True(t, ok)
	require.NotNil(t, f.ReturnType)
	require.Equal(t, "Integer", f.ReturnType.Value.Strip())
}

func TestParseDepthLimit(t *testing.T) {
	src := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	_, _, err := ParseExpression(NewCursor(src, WithMaxDepth(50)))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTooDeep))

	_, n, err := ParseExpression(NewCursor(src))
	require.NoError(t, err)
	require.Equal(t, src, Text(n))
}
