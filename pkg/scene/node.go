package scene

import (
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind classifies a node. It is fixed when the node is constructed.
type Kind int

const (
	// KindFace is a drawable planar face, a leaf of the hierarchy.
	KindFace Kind = iota
	// KindGroup is a container owning a private definition.
	KindGroup
	// KindInstance is a container referencing a possibly shared definition.
	KindInstance
)

// String returns the kind name used in scene files.
func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindGroup:
		return "group"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of this kind own children.
func (k Kind) IsContainer() bool {
	return k == KindGroup || k == KindInstance
}

// Layer groups nodes for visibility toggling. A nil *Layer is the default
// layer, which is always visible.
type Layer struct {
	Name    string
	Visible bool
}

// IsVisible reports whether nodes on l are shown. Nil layers are visible.
func (l *Layer) IsVisible() bool {
	return l == nil || l.Visible
}

// Material gives a face its color.
type Material struct {
	Name  string
	Color color.RGBA
}

// Loop is a closed, ordered sequence of vertices.
type Loop []mgl64.Vec3

// Definition is the child collection of a container. Instances may share a
// definition, which makes the same child nodes reachable along several
// instance paths.
type Definition struct {
	Name     string
	Children []*Node

	boundsOnce sync.Once
	bounds     Box
}

// NewDefinition returns a definition holding children.
func NewDefinition(name string, children ...*Node) *Definition {
	return &Definition{Name: name, Children: children}
}

// Bounds returns the box of all children in the definition's coordinates.
// It is computed once; definitions must not be modified after the first call.
func (d *Definition) Bounds() Box {
	d.boundsOnce.Do(func() {
		d.bounds = boundsOf(d)
	})
	return d.bounds
}

// Node is a scene element: a face or a container.
type Node struct {
	ID   string
	Name string

	kind Kind

	// Transform maps the container's definition into its parent's
	// coordinates. Faces ignore it.
	Transform mgl64.Mat4
	Hidden    bool
	Layer     *Layer
	Material  *Material

	// Definition holds the children of containers.
	Definition *Definition

	// Outer and Inner are the vertex loops of faces. Inner loops are holes.
	Outer Loop
	Inner []Loop
}

// NewFace returns a face with an outer loop and optional holes.
func NewFace(id string, outer Loop, inner ...Loop) *Node {
	return &Node{ID: id, kind: KindFace, Transform: mgl64.Ident4(), Outer: outer, Inner: inner}
}

// NewGroup returns a group owning def.
func NewGroup(id string, def *Definition) *Node {
	return newContainer(id, KindGroup, def)
}

// NewInstance returns a component instance of def.
func NewInstance(id string, def *Definition) *Node {
	return newContainer(id, KindInstance, def)
}

func newContainer(id string, kind Kind, def *Definition) *Node {
	if def == nil {
		def = NewDefinition(id)
	}
	return &Node{ID: id, kind: kind, Transform: mgl64.Ident4(), Definition: def}
}

// WithTransform sets the local transform and returns n.
func (n *Node) WithTransform(m mgl64.Mat4) *Node { n.Transform = m; return n }

// WithLayer sets the layer and returns n.
func (n *Node) WithLayer(l *Layer) *Node { n.Layer = l; return n }

// WithMaterial sets the material and returns n.
func (n *Node) WithMaterial(m *Material) *Node { n.Material = m; return n }

// WithHidden sets the hidden flag and returns n.
func (n *Node) WithHidden(hidden bool) *Node { n.Hidden = hidden; return n }

// WithName sets the display name and returns n.
func (n *Node) WithName(name string) *Node { n.Name = name; return n }

// Kind returns the node's classification.
func (n *Node) Kind() Kind { return n.kind }

// IsContainer reports whether n is a group or an instance.
func (n *Node) IsContainer() bool { return n.kind.IsContainer() }

// IsFace reports whether n is a face.
func (n *Node) IsFace() bool { return n.kind == KindFace }

// Children returns the container's children, or nil for faces.
func (n *Node) Children() []*Node {
	if !n.IsContainer() || n.Definition == nil {
		return nil
	}
	return n.Definition.Children
}

// Loops returns the outer loop followed by the inner loops of a face.
func (n *Node) Loops() []Loop {
	if !n.IsFace() || len(n.Outer) == 0 {
		return nil
	}
	loops := make([]Loop, 0, 1+len(n.Inner))
	loops = append(loops, n.Outer)
	return append(loops, n.Inner...)
}

// Bounds returns the node's box in its parent's coordinates.
func (n *Node) Bounds() Box {
	if n.IsFace() {
		b := EmptyBox()
		for _, v := range n.Outer {
			b = b.Add(v)
		}
		return b
	}
	if n.Definition == nil {
		return EmptyBox()
	}
	return n.Definition.Bounds().Transform(n.Transform)
}

// Label returns the name, or the ID for unnamed nodes.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}
