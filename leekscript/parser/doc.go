// Package parser provides a lossless recursive-descent parser for LeekScript.
//
// # Overview
//
// Parsing produces a typed tree in which every piece of whitespace and every
// comment is attached to a node. Rendering the tree writes back the exact
// input, byte for byte:
//
//	f, err := parser.ParseFile(src, parser.WithFile("ai.leek"))
//	if err != nil {
//	    return err
//	}
//	fmt.Print(parser.Text(f)) // prints src unchanged
//
// # Nodes and trivia
//
// Trivia is whitespace, // line comments and /* block comments */. Each
// production that appears as a tree field is wrapped in a Node, which holds
// the trivia directly before the value, the value, and the trivia directly
// after it:
//
//	type Node[T Renderer] struct {
//	    Leading  Trivia
//	    Value    T
//	    Trailing Trivia
//	    Span     Span // covers Value only
//	}
//
// Punctuation that is not a node of its own (parentheses, commas, the colon
// of a map entry) is rendered by its parent and never carries trivia; the
// trivia around it belongs to the neighbouring nodes.
//
// # Cursor
//
// A Cursor is an immutable position in the input. Every parse function takes
// a Cursor and returns the Cursor after the consumed text, so backtracking is
// simply reusing an older Cursor. Positions are 1-based lines and byte
// columns.
//
// # Expressions
//
// Binary operators are grouped by level, from assignment (lowest) up to
// multiplication, followed by type conversion with `as`, prefix and postfix
// updates, unary operators and member chains. A level with no operator
// returns its operand unchanged, so `1` parses to a NumberLiteral and not to
// a chain of empty operator nodes. Operators keep their spelling: `and` and
// `&&` both parse at the LogicalAnd level but render as written.
//
// # Errors
//
// When no alternative matches, the failure that got furthest into the input
// is reported as an *Error naming the expected constructs. Input nested
// deeper than the configured limit fails with an error wrapping ErrTooDeep.
package parser
