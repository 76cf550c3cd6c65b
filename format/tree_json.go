package format

import (
	"encoding/json"
	"io"

	"github.com/VoidCRDev/Artisan/ajex"
)

// TreeJSONEncoder writes a directive syntax tree as indented JSON.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(node *ajex.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalText(node *ajex.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type treeJSONNode struct {
	Variant  string          `json:"variant"`
	Type     string          `json:"type,omitempty"`
	Name     string          `json:"name,omitempty"`
	Literal  string          `json:"literal,omitempty"`
	Key      string          `json:"key,omitempty"`
	Value    *string         `json:"value,omitempty"`
	Children []*treeJSONNode `json:"children,omitempty"`
}

func nodeToJSON(n *ajex.Node) *treeJSONNode {
	jn := &treeJSONNode{
		Variant: n.Variant.String(),
	}

	switch n.Variant {
	case ajex.VariantContainer:
		jn.Type = n.ContainerType.String()
		jn.Name = n.Name
	case ajex.VariantLiteral:
		jn.Literal = n.Literal
	case ajex.VariantMetadata:
		jn.Key = n.Key
		value := n.Value
		jn.Value = &value
	}

	if children := n.Children(); len(children) > 0 {
		jn.Children = make([]*treeJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
