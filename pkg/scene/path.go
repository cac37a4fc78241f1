package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// InstancePath identifies one occurrence of a node: the chain of nodes
// from a traversal root down to it. Two paths ending at the same node are
// distinct when they pass through different instances.
//
// The zero value is an empty path; paths handed out by traversals are
// never empty.
type InstancePath struct {
	nodes     []*Node
	transform mgl64.Mat4
}

// NewInstancePath returns the path through nodes, root first.
func NewInstancePath(nodes ...*Node) InstancePath {
	p := InstancePath{transform: mgl64.Ident4()}
	for _, n := range nodes {
		p = p.Child(n)
	}
	return p
}

// Child returns the path extended by n. The receiver is not modified and
// the two paths share no storage.
func (p InstancePath) Child(n *Node) InstancePath {
	nodes := make([]*Node, len(p.nodes), len(p.nodes)+1)
	copy(nodes, p.nodes)
	t := p.transform
	if len(p.nodes) == 0 {
		t = mgl64.Ident4()
	}
	if n.IsContainer() {
		t = t.Mul4(n.Transform)
	}
	return InstancePath{nodes: append(nodes, n), transform: t}
}

// Len returns the number of nodes in the path.
func (p InstancePath) Len() int { return len(p.nodes) }

// IsEmpty reports whether the path contains no nodes.
func (p InstancePath) IsEmpty() bool { return len(p.nodes) == 0 }

// At returns the i-th node, root at 0.
func (p InstancePath) At(i int) *Node { return p.nodes[i] }

// Root returns the first node, or nil for empty paths.
func (p InstancePath) Root() *Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[0]
}

// Leaf returns the last node, or nil for empty paths.
func (p InstancePath) Leaf() *Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[len(p.nodes)-1]
}

// Parent returns the path without its leaf.
func (p InstancePath) Parent() InstancePath {
	if len(p.nodes) <= 1 {
		return InstancePath{transform: mgl64.Ident4()}
	}
	return NewInstancePath(p.nodes[:len(p.nodes)-1]...)
}

// Nodes returns a copy of the nodes, root first.
func (p InstancePath) Nodes() []*Node {
	out := make([]*Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Transform returns the product of the local transforms of every container
// on the path, root first. A container leaf contributes its own transform.
func (p InstancePath) Transform() mgl64.Mat4 {
	if len(p.nodes) == 0 {
		return mgl64.Ident4()
	}
	return p.transform
}

// String joins the node IDs with "/".
func (p InstancePath) String() string {
	ids := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		ids[i] = n.ID
	}
	return strings.Join(ids, "/")
}
