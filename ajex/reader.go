package ajex

import (
	"fmt"
	"slices"
	"sort"
)

// LiteralResult is one directive line of a block together with the
// metadata declared for it.
type LiteralResult struct {
	Literal  string
	Metadata map[string]string
}

func (r LiteralResult) Value(key string) (string, bool) {
	v, ok := r.Metadata[key]
	return v, ok
}

// Keys returns the metadata keys in sorted order.
func (r LiteralResult) Keys() []string {
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type MetadataResult struct {
	Key   string
	Value string
}

// Reader answers queries over a built syntax tree. It never modifies the
// tree it reads.
type Reader struct {
	root *Node
}

func NewReader(root *Node) (*Reader, error) {
	if root == nil || !root.isContainerOf(ContainerRoot) {
		return nil, fmt.Errorf("%w: reader needs a ROOT container", ErrContractViolation)
	}
	return &Reader{root: root}, nil
}

func (r *Reader) Root() *Node {
	return r.root
}

// Containers lists the names of the root's blocks in declaration order.
func (r *Reader) Containers() []string {
	var names []string
	for _, child := range r.root.children {
		if child.isContainerOf(ContainerFunctionContent) {
			names = append(names, child.Name)
		}
	}
	return names
}

// HasContainer reports whether a block named name exists.
func (r *Reader) HasContainer(name string) bool {
	return r.container(name) != nil
}

// Literals returns the literals of the first block named name, or nil
// when there is no such block.
func (r *Reader) Literals(name string) []LiteralResult {
	container := r.container(name)
	if container == nil {
		return nil
	}
	var results []LiteralResult
	for _, child := range container.children {
		if !child.IsLiteral() {
			continue
		}
		meta := make(map[string]string, len(child.children))
		for _, m := range child.children {
			meta[m.Key] = m.Value
		}
		results = append(results, LiteralResult{Literal: child.Literal, Metadata: meta})
	}
	return results
}

// MetadataValue looks key up among the top-level metadata. With deep set,
// a miss falls back to a pre-order search of the rest of the tree and the
// first match wins.
func (r *Reader) MetadataValue(key string, deep bool) (string, bool) {
	top := r.metadataContainer()
	if top != nil {
		for _, m := range top.children {
			if m.Key == key {
				return m.Value, true
			}
		}
	}
	if !deep {
		return "", false
	}

	var (
		value string
		found bool
	)
	r.walkExcept(top, func(n *Node) bool {
		if n.IsMetadata() && n.Key == key {
			value, found = n.Value, true
			return false
		}
		return true
	})
	return value, found
}

// AllMetadataValues collects the distinct key/value pairs of the top-level
// metadata, and with deep set, of every metadata node in the tree.
func (r *Reader) AllMetadataValues(deep bool) map[MetadataResult]struct{} {
	results := make(map[MetadataResult]struct{})
	top := r.metadataContainer()
	if top != nil {
		for _, m := range top.children {
			results[MetadataResult{Key: m.Key, Value: m.Value}] = struct{}{}
		}
	}
	if !deep {
		return results
	}
	r.walkExcept(top, func(n *Node) bool {
		if n.IsMetadata() {
			results[MetadataResult{Key: n.Key, Value: n.Value}] = struct{}{}
		}
		return true
	})
	return results
}

// Visit walks the tree with v.
func (r *Reader) Visit(v Visitor) {
	Walk(r.root, v)
}

func (r *Reader) container(name string) *Node {
	for _, child := range r.root.children {
		if child.isContainerOf(ContainerFunctionContent) && child.Name == name {
			return child
		}
	}
	return nil
}

func (r *Reader) metadataContainer() *Node {
	for _, child := range r.root.children {
		if child.isContainerOf(ContainerMetadata) {
			return child
		}
	}
	return nil
}

// walkExcept visits every node in pre-order, skipping the subtree rooted at
// skip. fn returns false to stop the walk.
func (r *Reader) walkExcept(skip *Node, fn func(*Node) bool) {
	stack := []*Node{r.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == skip {
			continue
		}
		if !fn(n) {
			return
		}
		children := slices.Clone(n.children)
		slices.Reverse(children)
		stack = append(stack, children...)
	}
}
