package codebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/stretchr/testify/require"
)

const sample = `global Integer turn = 0, hits;

class Point extends Base {
	public Integer x = 0;
	constructor(Integer x) { this.x = x; }
	public Real length() { return 0; }
}

function distance(Point a, b) -> Real {
	return 0;
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractSymbols(t *testing.T) {
	f, err := parser.ParseFile(sample)
	require.NoError(t, err)

	symbols := ExtractSymbols("ai.leek", f)
	require.Len(t, symbols, 4)

	require.Equal(t, "turn", symbols[0].Name)
	require.Equal(t, SymbolGlobal, symbols[0].Kind)
	require.Equal(t, "Integer", symbols[0].Detail)
	require.Equal(t, "hits", symbols[1].Name)

	class := symbols[2]
	require.Equal(t, "Point", class.Name)
	require.Equal(t, SymbolClass, class.Kind)
	require.Equal(t, "extends Base", class.Detail)
	require.Equal(t, 3, class.NameSpan.Start.Line)
	require.Equal(t, 7, class.NameSpan.Start.Column)
	require.Len(t, class.Children, 3)

	tests := []struct {
		name   string
		kind   SymbolKind
		detail string
	}{
		{"x", SymbolField, "Integer"},
		{"constructor", SymbolConstructor, "(Integer x)"},
		{"length", SymbolMethod, "() -> Real"},
	}
	for i, tt := range tests {
		child := class.Children[i]
		require.Equal(t, tt.name, child.Name)
		require.Equal(t, tt.kind, child.Kind)
		require.Equal(t, tt.detail, child.Detail)
		require.Equal(t, "Point", child.Container)
	}

	fn := symbols[3]
	require.Equal(t, "distance", fn.Name)
	require.Equal(t, SymbolFunction, fn.Kind)
	require.Equal(t, "(Point a, b) -> Real", fn.Detail)
	require.Equal(t, 9, fn.Span.Start.Line)
	require.Equal(t, 1, fn.Span.Start.Column)
	require.Equal(t, 10, fn.NameSpan.Start.Column)

	require.Len(t, Flatten(symbols), 7)
}

func TestCodebaseScanAll(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ai.leek", sample)
	bad := writeFile(t, dir, "sub/broken.leek", "var x = 1;\n}\n")
	writeFile(t, dir, "notes.txt", "not code")
	writeFile(t, dir, ".hidden/skip.leek", "class {")

	c := New(dir, nil)
	require.NoError(t, c.ScanAll())
	require.Equal(t, []string{good, bad}, c.Paths())

	info := c.GetFile(good)
	require.NotNil(t, info)
	require.NoError(t, info.ParseErr)
	require.Equal(t, sample, parser.Text(info.File))

	info = c.GetFile(bad)
	require.Error(t, info.ParseErr)
	perr, ok := info.Diagnostic()
	require.True(t, ok)
	require.Equal(t, 2, perr.Pos.Line)
	require.Equal(t, 1, perr.Pos.Column)

	errs := c.Errors()
	require.Len(t, errs, 1)
	require.Equal(t, bad, errs[0].Path)
}

func TestCodebaseSymbolsQuery(t *testing.T) {
	c := New(t.TempDir(), nil)
	require.NoError(t, c.UpdateFile("a.leek", []byte(sample)))
	require.NoError(t, c.UpdateFile("b.leek", []byte("function pointAt() {}")))

	var names []string
	for _, s := range c.Symbols("point") {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"Point", "pointAt"}, names)
	require.Len(t, c.Symbols(""), 8)

	c.RemoveFile("b.leek")
	require.Len(t, c.Symbols("point"), 1)
	require.Nil(t, c.GetFile("b.leek"))
}

func TestCodebaseUpdateReplacesFile(t *testing.T) {
	c := New(t.TempDir(), nil)
	require.NoError(t, c.UpdateFile("a.leek", []byte("var = ;")))
	require.Error(t, c.GetFile("a.leek").ParseErr)

	require.NoError(t, c.UpdateFile("a.leek", []byte("var a = 1;")))
	require.NoError(t, c.GetFile("a.leek").ParseErr)
	require.Empty(t, c.Errors())
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ai.leek", "function a() {}")

	c := New(dir, nil)
	w := NewFileWatcher(c)
	var changed []string
	w.OnChange(func(p string) { changed = append(changed, p) })

	w.scan()
	require.Equal(t, []string{path}, changed)
	require.Len(t, c.Symbols("a"), 1)

	w.scan()
	require.Len(t, changed, 1)

	require.NoError(t, os.Remove(path))
	w.scan()
	require.Equal(t, []string{path, path}, changed)
	require.Nil(t, c.GetFile(path))
}
