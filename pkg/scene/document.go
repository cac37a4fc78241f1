package scene

import (
	"image/color"

	"github.com/matzehuels/scenesvg/pkg/units"
)

// White is the face color used when nothing else applies.
var White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// RenderingOptions holds document-wide display settings.
type RenderingOptions struct {
	// FaceFrontColor colors faces that carry no material along their path.
	FaceFrontColor color.RGBA
}

// Document is a loaded scene: the top-level entities plus the tables they
// reference. A zero Document is usable and empty.
type Document struct {
	Units     units.Unit
	Rendering RenderingOptions

	// Roots are the top-level entities in document order.
	Roots []*Node
	// Selection is the preselected subset of Roots. An empty selection
	// means every root.
	Selection []*Node

	Layers      map[string]*Layer
	Materials   map[string]*Material
	Definitions map[string]*Definition

	index map[string]*Node
}

// NewDocument returns an empty millimeter document with white faces.
func NewDocument() *Document {
	return &Document{
		Units:       units.Millimeter,
		Rendering:   RenderingOptions{FaceFrontColor: White},
		Layers:      make(map[string]*Layer),
		Materials:   make(map[string]*Material),
		Definitions: make(map[string]*Definition),
	}
}

// DefaultFaceColor returns the document's current face front color. The
// value is read on every call.
func (d *Document) DefaultFaceColor() color.RGBA {
	return d.Rendering.FaceFrontColor
}

// Node looks up a node by ID anywhere in the hierarchy. Nodes inside shared
// definitions are found once, under their own ID.
func (d *Document) Node(id string) (*Node, bool) {
	if d.index == nil {
		d.Reindex()
	}
	n, ok := d.index[id]
	return n, ok
}

// Reindex rebuilds the ID index. Call it after adding nodes to a document
// that has already been queried.
func (d *Document) Reindex() {
	d.index = make(map[string]*Node)
	seen := make(map[*Definition]bool)
	stack := make([]*Node, 0, len(d.Roots))
	for i := len(d.Roots) - 1; i >= 0; i-- {
		stack = append(stack, d.Roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := d.index[n.ID]; !dup {
			d.index[n.ID] = n
		}
		if def := n.Definition; n.IsContainer() && def != nil && !seen[def] {
			seen[def] = true
			for i := len(def.Children) - 1; i >= 0; i-- {
				stack = append(stack, def.Children[i])
			}
		}
	}
}

// Selected returns the selection, or every root when nothing is selected.
func (d *Document) Selected() []*Node {
	if len(d.Selection) > 0 {
		return d.Selection
	}
	return d.Roots
}

// Bounds returns the union of the bounds of nodes.
func Bounds(nodes []*Node) Box {
	b := EmptyBox()
	for _, n := range nodes {
		b = b.Union(n.Bounds())
	}
	return b
}
