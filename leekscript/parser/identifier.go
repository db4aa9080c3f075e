package parser

import "strings"

// Keywords lists the reserved words that can never be identifiers. Words such
// as this, super, new or instanceof are deliberately absent.
var Keywords = []string{
	"true", "false", "null", "undefined",
	"not", "and", "or", "is", "in", "as",
	"if", "else", "elif", "switch", "case", "default",
	"for", "do", "while", "break", "continue",
	"function", "return", "yield", "raise",
	"try", "except", "finally",
	"import", "include", "with", "global",
	"var", "const", "let", "static",
	"class", "extends", "implements",
	"async", "await",
	"public", "private", "protected", "abstract",
}

var reserved = func() map[string]bool {
	m := make(map[string]bool, len(Keywords))
	for _, kw := range Keywords {
		m[kw] = true
	}
	return m
}()

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	return reserved[word]
}

type Identifier struct {
	Name string
}

func (id Identifier) Render(b *strings.Builder) {
	b.WriteString(id.Name)
}

func scanWord(c Cursor) string {
	rest := c.Rest()
	if rest == "" || !(isLetter(rest[0]) || rest[0] == '_') {
		return ""
	}
	n := 1
	for n < len(rest) && isWordChar(rest[n]) {
		n++
	}
	return rest[:n]
}

// A keyword matches with a boundary exactly when the whole scanned word is
// that keyword, so a map lookup on the word stands in for lookahead.
func parseIdentifier(c Cursor) (Cursor, Identifier, error) {
	word := scanWord(c)
	if word == "" || reserved[word] {
		return c, Identifier{}, c.fail("identifier")
	}
	return c.Advance(len(word)), Identifier{Name: word}, nil
}

type NameKind int

const (
	NameIdentifier NameKind = iota
	NameThis
	NameSuper
	NameClass
)

func (k NameKind) String() string {
	switch k {
	case NameThis:
		return "this"
	case NameSuper:
		return "super"
	case NameClass:
		return "class"
	}
	return "identifier"
}

// MemberName is an identifier or one of the words class, super and this,
// which may also appear as names after a dot.
type MemberName struct {
	Kind NameKind
	Name string
}

func (m MemberName) Render(b *strings.Builder) {
	b.WriteString(m.Name)
}

func parseMemberName(c Cursor) (Cursor, MemberName, error) {
	if d, id, err := parseIdentifier(c); err == nil {
		kind := NameIdentifier
		switch id.Name {
		case "this":
			kind = NameThis
		case "super":
			kind = NameSuper
		}
		return d, MemberName{Kind: kind, Name: id.Name}, nil
	}
	for _, w := range []struct {
		word string
		kind NameKind
	}{{"class", NameClass}, {"super", NameSuper}, {"this", NameThis}} {
		if d, err := keyword(c, w.word); err == nil {
			return d, MemberName{Kind: w.kind, Name: w.word}, nil
		}
	}
	return c, MemberName{}, c.fail("identifier")
}
