package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/leek/leekscript/parser"
)

type ASTJSONEncoder struct {
	w         io.Writer
	positions bool
}

func NewASTJSONEncoder(w io.Writer, positions bool) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, positions: positions}
}

func (e *ASTJSONEncoder) Encode(r parser.Renderer) error {
	text, err := e.MarshalText(r)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(r parser.Renderer) ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(Tree(r)), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Field    string         `json:"field,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Comments []string       `json:"comments,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *ASTJSONEncoder) nodeToJSON(n *TreeNode) *astJSONNode {
	jn := &astJSONNode{
		Kind:     n.Kind,
		Field:    n.Field,
		Comments: n.Comments,
	}

	if len(n.Attrs) > 0 {
		jn.Attrs = make(map[string]any, len(n.Attrs))
		for _, a := range n.Attrs {
			jn.Attrs[a.Name] = a.Value
		}
	}

	if e.positions && n.Span != nil {
		jn.Span = &astJSONSpan{
			Start: toJSONPosition(n.Span.Start),
			End:   toJSONPosition(n.Span.End),
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}

	return jn
}

func toJSONPosition(p parser.Position) astJSONPosition {
	return astJSONPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}
