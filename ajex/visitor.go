package ajex

import (
	"fmt"
	"io"
	"strings"
)

// Visitor receives the nodes of a tree in pre-order. Each callback gets the
// node's immediate parent. Start and End bracket the whole traversal.
type Visitor interface {
	Start(root *Node)
	Container(parent, node *Node)
	Literal(parent, node *Node)
	Metadata(parent, node *Node)
	End(root *Node)
}

// BaseVisitor implements Visitor with no-ops. Embed it and override the
// callbacks you need.
type BaseVisitor struct{}

func (BaseVisitor) Start(*Node)          {}
func (BaseVisitor) Container(_, _ *Node) {}
func (BaseVisitor) Literal(_, _ *Node)   {}
func (BaseVisitor) Metadata(_, _ *Node)  {}
func (BaseVisitor) End(*Node)            {}

// Walk traverses root depth first in child insertion order.
func Walk(root *Node, v Visitor) {
	v.Start(root)
	for _, child := range root.children {
		walk(root, child, v)
	}
	v.End(root)
}

func walk(parent, n *Node, v Visitor) {
	switch n.Variant {
	case VariantContainer:
		v.Container(parent, n)
	case VariantLiteral:
		v.Literal(parent, n)
	case VariantMetadata:
		v.Metadata(parent, n)
	}
	for _, child := range n.children {
		walk(n, child, v)
	}
}

// Printer writes an indented outline of every visited node.
type Printer struct {
	BaseVisitor
	w     io.Writer
	depth map[*Node]int
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, depth: make(map[*Node]int)}
}

func (p *Printer) Start(root *Node) {
	p.depth[root] = 0
	fmt.Fprintln(p.w, "root")
}

func (p *Printer) Container(parent, node *Node) {
	if node.ContainerType == ContainerFunctionContent {
		p.line(parent, node, "block "+node.Name)
		return
	}
	p.line(parent, node, strings.ToLower(node.ContainerType.String()))
}

func (p *Printer) Literal(parent, node *Node) {
	p.line(parent, node, node.Literal)
}

func (p *Printer) Metadata(parent, node *Node) {
	p.line(parent, node, "@"+node.Key+": "+node.Value)
}

func (p *Printer) line(parent, node *Node, text string) {
	d := p.depth[parent] + 1
	p.depth[node] = d
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", d), text)
}
