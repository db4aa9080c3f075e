package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTooDeep is wrapped by an *Error when the input nests deeper than the
// cursor's depth limit. It stops alternation instead of trying siblings.
var ErrTooDeep = errors.New("nesting too deep")

// Error reports that no production matched at Pos.
type Error struct {
	Pos      Position
	Expected []string
	Got      string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Pos.String())
	b.WriteString(": ")
	switch {
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case len(e.Expected) == 0:
		b.WriteString("unexpected input")
	default:
		b.WriteString("expected ")
		b.WriteString(joinExpected(e.Expected))
	}
	if e.Got != "" {
		fmt.Fprintf(&b, ", got %q", e.Got)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func joinExpected(expected []string) string {
	switch len(expected) {
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " or " + expected[1]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

func (c Cursor) fail(expected ...string) error {
	return &Error{Pos: c.Pos(), Expected: expected, Got: c.got()}
}

func fatal(err error) bool {
	return errors.Is(err, ErrTooDeep)
}

// furthest keeps the failure that got furthest into the input, merging the
// expectations of failures at the same offset.
func furthest(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	ea, okA := a.(*Error)
	eb, okB := b.(*Error)
	if !okA || !okB {
		return a
	}
	switch {
	case eb.Pos.Offset > ea.Pos.Offset:
		return eb
	case eb.Pos.Offset < ea.Pos.Offset:
		return ea
	}
	merged := &Error{Pos: ea.Pos, Got: ea.Got, Expected: append([]string(nil), ea.Expected...)}
	for _, exp := range eb.Expected {
		if !containsString(merged.Expected, exp) {
			merged.Expected = append(merged.Expected, exp)
		}
	}
	return merged
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
