package format

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/stretchr/testify/require"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing .leek test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases parses every .leek file under testcases/ and checks
// that rendering the tree gives back the file byte for byte.
// Each file becomes a subtest: go test -run TestRoundTrip_Testcases/basic
// Use -filter to select files by substring: go test ./format -filter=class
func TestRoundTrip_Testcases(t *testing.T) {
	dir := testcasesDir
	if dir == "" {
		wd, err := os.Getwd()
		require.NoError(t, err)
		for d := wd; d != filepath.Dir(d); d = filepath.Dir(d) {
			candidate := filepath.Join(d, "testcases")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				dir = candidate
				break
			}
		}
		if dir == "" {
			t.Skip("testcases directory not found; use -testcases flag to specify")
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".leek") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)

	if len(files) == 0 {
		if testFilter != "" {
			t.Skipf("no .leek files matching filter %q found in %s", testFilter, dir)
		}
		t.Skipf("no .leek files found in %s", dir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".leek")

		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	require.NoError(t, err)

	f, err := parser.ParseFile(string(source), parser.WithFile(filename))
	require.NoError(t, err)
	require.Equal(t, string(source), parser.Text(f))

	// Every comment in the file must show up somewhere in the tree view.
	var comments int
	Walk(Tree(f), func(n *TreeNode) {
		comments += len(n.Comments)
	})
	require.Equal(t, countComments(string(source)), comments)
}

// countComments counts comment openers outside string literals.
func countComments(src string) int {
	c := parser.NewCursor(src)
	count := 0
	for !c.AtEOF() {
		rest := c.Rest()
		switch {
		case rest[0] == '"' || rest[0] == '\'':
			if _, n, err := parser.ParseLiteral(c); err == nil {
				c = c.Advance(len(parser.Text(n.Value)))
				continue
			}
		case strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "/*"):
			d, trivia := parser.ParseTrivia(c)
			if d.Offset() > c.Offset() {
				count += len(trivia.Comments())
				c = d
				continue
			}
		}
		c = c.Advance(1)
	}
	return count
}
