package ajex

import (
	"fmt"
	"slices"
	"strings"
)

type Variant int

const (
	VariantContainer Variant = iota + 1
	VariantLiteral
	VariantMetadata
)

var variantNames = map[Variant]string{
	VariantContainer: "Container",
	VariantLiteral:   "Literal",
	VariantMetadata:  "Metadata",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return "Unknown"
}

type ContainerType int

const (
	ContainerRoot ContainerType = iota + 1
	ContainerMetadata
	ContainerFunctionContent
)

var containerTypeNames = map[ContainerType]string{
	ContainerRoot:            "ROOT",
	ContainerMetadata:        "METADATA",
	ContainerFunctionContent: "FUNCTION_CONTENT",
}

func (c ContainerType) String() string {
	if name, ok := containerTypeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Node is a syntax tree node. Which payload fields are meaningful depends
// on Variant:
//
//   - VariantContainer: ContainerType, and Name for FUNCTION_CONTENT blocks
//   - VariantLiteral: Literal, the raw directive line
//   - VariantMetadata: Key and Value
//
// Literal nodes only hold metadata children and metadata nodes hold none.
type Node struct {
	Variant       Variant
	ContainerType ContainerType
	Name          string
	Literal       string
	Key           string
	Value         string

	children []*Node
}

func NewRoot() *Node {
	return &Node{Variant: VariantContainer, ContainerType: ContainerRoot}
}

func NewMetadataContainer() *Node {
	return &Node{Variant: VariantContainer, ContainerType: ContainerMetadata}
}

func NewFunctionContent(name string) *Node {
	return &Node{Variant: VariantContainer, ContainerType: ContainerFunctionContent, Name: name}
}

// NewContainer creates a container of the given type. A FUNCTION_CONTENT
// container must be created from the OPEN token that names it; ROOT and
// METADATA containers take no token.
func NewContainer(typ ContainerType, tok *Token) (*Node, error) {
	switch typ {
	case ContainerRoot, ContainerMetadata:
		if tok != nil {
			return nil, fmt.Errorf("%w: a %s container takes no token", ErrContractViolation, typ)
		}
		return &Node{Variant: VariantContainer, ContainerType: typ}, nil
	case ContainerFunctionContent:
		if tok == nil {
			return nil, fmt.Errorf("%w: a %s container needs an OPEN token", ErrContractViolation, typ)
		}
		if tok.Kind != TokenOpen {
			return nil, fmt.Errorf("%w: a %s container cannot be created from a %s token", ErrContractViolation, typ, tok.Kind)
		}
		return NewFunctionContent(tok.Text), nil
	default:
		return nil, fmt.Errorf("%w: unknown container type %d", ErrContractViolation, typ)
	}
}

func NewLiteral(literal string) *Node {
	return &Node{Variant: VariantLiteral, Literal: literal}
}

func LiteralFromToken(tok Token) (*Node, error) {
	if tok.Kind != TokenEntry {
		return nil, fmt.Errorf("%w: literals are created from ENTRY tokens, got %s", ErrContractViolation, tok.Kind)
	}
	return NewLiteral(tok.Text), nil
}

func NewMetadata(key, value string) *Node {
	return &Node{Variant: VariantMetadata, Key: key, Value: value}
}

// MetadataFromToken splits a META token on ':' into a key and a trimmed
// value. Exactly one ':' is allowed.
func MetadataFromToken(tok Token) (*Node, error) {
	if tok.Kind != TokenMeta {
		return nil, fmt.Errorf("%w: metadata is created from META tokens, got %s", ErrContractViolation, tok.Kind)
	}
	parts := strings.Split(tok.Text, ":")
	if len(parts) != 2 {
		return nil, syntaxErrorf(tok, "metadata must be a single 'key: value' pair, got %d segments", len(parts))
	}
	return NewMetadata(parts[0], strings.TrimSpace(parts[1])), nil
}

func (n *Node) IsContainer() bool { return n.Variant == VariantContainer }
func (n *Node) IsLiteral() bool   { return n.Variant == VariantLiteral }
func (n *Node) IsMetadata() bool  { return n.Variant == VariantMetadata }

func (n *Node) isContainerOf(typ ContainerType) bool {
	return n.Variant == VariantContainer && n.ContainerType == typ
}

func (n *Node) checkChild(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrContractViolation)
	}
	switch n.Variant {
	case VariantMetadata:
		return fmt.Errorf("%w: metadata nodes cannot have children", ErrContractViolation)
	case VariantLiteral:
		if !child.IsMetadata() {
			return fmt.Errorf("%w: literal nodes only accept metadata children, got %s", ErrContractViolation, child.Variant)
		}
	}
	return nil
}

func (n *Node) AddChild(child *Node) error {
	if err := n.checkChild(child); err != nil {
		return err
	}
	n.children = append(n.children, child)
	return nil
}

// ReplaceChild swaps the first child identical to original for replacement.
// It reports whether a replacement happened.
func (n *Node) ReplaceChild(original, replacement *Node) (bool, error) {
	if err := n.checkChild(replacement); err != nil {
		return false, err
	}
	for i, child := range n.children {
		if child == original {
			n.children[i] = replacement
			return true, nil
		}
	}
	return false, nil
}

func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = slices.Delete(n.children, i, i+1)
			return true
		}
	}
	return false
}

// Children returns the node's children in insertion order. The returned
// slice is a copy.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

func (n *Node) Len() int {
	return len(n.children)
}

// Contains reports whether any descendant of n has the given variant.
func (n *Node) Contains(v Variant) bool {
	for _, child := range n.children {
		if child.Variant == v || child.Contains(v) {
			return true
		}
	}
	return false
}

// Equal compares two subtrees structurally.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Variant != other.Variant ||
		n.ContainerType != other.ContainerType ||
		n.Name != other.Name ||
		n.Literal != other.Literal ||
		n.Key != other.Key ||
		n.Value != other.Value ||
		len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Variant {
	case VariantContainer:
		sb.WriteString("Container(" + n.ContainerType.String())
		if n.ContainerType == ContainerFunctionContent {
			sb.WriteString("," + n.Name)
		}
		sb.WriteString(")")
	case VariantLiteral:
		sb.WriteString("Literal(" + n.Literal + ")")
	case VariantMetadata:
		sb.WriteString("Metadata(" + n.Key + "," + n.Value + ")")
	default:
		sb.WriteString("Unknown")
	}
	sb.WriteString("\n")
	for _, child := range n.children {
		child.writeIndent(sb, depth+1)
	}
}
