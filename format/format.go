// Package format renders parsed LeekScript trees as an indented outline,
// as JSON, or back to source text.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/leek/leekscript/parser"
)

type Encoder interface {
	Encode(r parser.Renderer) error
	MarshalText(r parser.Renderer) ([]byte, error)
}

// NewEncoder returns the encoder registered under name: tree, json or text.
func NewEncoder(name string, w io.Writer, positions bool) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w, positions), nil
	case "json":
		return NewASTJSONEncoder(w, positions), nil
	case "text":
		return NewTextEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected tree, json or text)", name)
}

type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(r parser.Renderer) error {
	text, err := e.MarshalText(r)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(r parser.Renderer) ([]byte, error) {
	tree := Tree(r)
	if e.positions {
		return []byte(tree.StringWithPositions()), nil
	}
	return []byte(tree.String()), nil
}

// TextEncoder writes the source text a tree was parsed from.
type TextEncoder struct {
	w io.Writer
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(r parser.Renderer) error {
	_, err := io.WriteString(e.w, parser.Text(r))
	return err
}

func (e *TextEncoder) MarshalText(r parser.Renderer) ([]byte, error) {
	return []byte(parser.Text(r)), nil
}
