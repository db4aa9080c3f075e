package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/leek/codebase"
	"github.com/stretchr/testify/require"
)

func TestCheckFile(t *testing.T) {
	c := codebase.New(t.TempDir(), nil)
	require.NoError(t, c.UpdateFile("ok.leek", []byte("var a = 1; // fine\n")))
	require.NoError(t, c.UpdateFile("bad.leek", []byte("var a = 1;\n)")))

	require.Empty(t, checkFile(c.GetFile("ok.leek")))
	require.Contains(t, checkFile(c.GetFile("bad.leek")), "bad.leek:2:1")
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.leek"), []byte("a();\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.leek"), []byte("class B {}\n"), 0o644))

	var out bytes.Buffer
	cmd := newCheckCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "ok: 2 files\n", out.String())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.leek"), []byte("}"), 0o644))
	out.Reset()
	cmd = newCheckCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{dir})
	require.EqualError(t, cmd.Execute(), "1 of 3 files failed")
	require.Equal(t, 1, strings.Count(out.String(), "c.leek:1:1"))
}

func TestSymbolsCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai.leek")
	src := "class A {\n\tInteger n;\n}\nfunction f(x) {}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	var out bytes.Buffer
	cmd := newSymbolsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	require.Contains(t, string(lines[0]), "class A")
	require.Contains(t, string(lines[1]), "  field n Integer")
	require.Contains(t, string(lines[2]), "function f (x)")
	require.Contains(t, string(lines[2]), path+":4:10")
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ai.leek")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	src := "// setup\nvar big = 1e99999999999;\nfunction f(a) { return a + 1; }\n"
	path := writeSource(t, src)

	t.Run("tree", func(t *testing.T) {
		out, err := runRoot(t, "parse", path)
		require.NoError(t, err)
		tree, text, ok := strings.Cut(out, "---\n")
		require.True(t, ok)
		require.True(t, strings.HasPrefix(tree, "File\n"))
		require.Contains(t, tree, "Statements: VarDeclStmt")
		require.Contains(t, tree, `kind=float value="1e99999999999"`)
		require.Contains(t, tree, "BinaryExpr level=Additive")
		require.Contains(t, tree, `# "// setup"`)
		require.Equal(t, src, text)
	})

	t.Run("text", func(t *testing.T) {
		out, err := runRoot(t, "parse", "--format", "text", path)
		require.NoError(t, err)
		require.Equal(t, src, out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := runRoot(t, "parse", "-f", "json", path)
		require.NoError(t, err)
		require.NotContains(t, out, "---")
		var root map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &root))
		require.Equal(t, "File", root["kind"])
		require.NotContains(t, root, "span")
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := runRoot(t, "parse", writeSource(t, "var a = 1;\n)"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "ai.leek:2:1")
	})
}

func TestDumpCmd(t *testing.T) {
	path := writeSource(t, "class A { Integer n = 0x10; }\n")
	out, err := runRoot(t, "dump", path)
	require.NoError(t, err)

	var root struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string          `json:"kind"`
			Span json.RawMessage `json:"span"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Equal(t, "File", root.Kind)
	require.Len(t, root.Children, 1)
	require.Equal(t, "Class", root.Children[0].Kind)
	require.NotEmpty(t, root.Children[0].Span)
	require.Contains(t, out, `"value": "16"`)
}
