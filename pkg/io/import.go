package io

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/units"
)

// ReadJSON decodes a JSON scene from r into a document.
//
// The input must be a JSON object with an "entities" array:
//
//	{
//	  "units": "cm",
//	  "materials": [{"name": "brick", "color": "#B5482D"}],
//	  "entities": [
//	    {"id": "floor", "type": "face", "material": "brick",
//	     "outer": [[0, 0, 0], [400, 0, 0], [400, 300, 0], [0, 300, 0]]}
//	  ]
//	}
//
// ReadJSON returns an INVALID_SCENE error if:
//   - The JSON is malformed
//   - A node has an unknown type, layer, material or definition
//   - Definitions reference each other in a cycle
//   - Two nodes share an ID
//   - The selection names an unknown or nested node
//
// Errors are wrapped with context describing which node caused the problem.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Document, error) {
	var data file
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "decode JSON")
	}
	return build(data)
}

// ReadTOML decodes a TOML scene from r. The schema is the same as for
// [ReadJSON], with entities as arrays of tables:
//
//	units = "cm"
//
//	[[entities]]
//	id = "floor"
//	type = "face"
//	outer = [[0.0, 0.0, 0.0], [400.0, 0.0, 0.0], [400.0, 300.0, 0.0]]
func ReadTOML(r io.Reader) (*scene.Document, error) {
	var data file
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "decode TOML")
	}
	return build(data)
}

// Import reads the scene file at path. The format follows the extension:
// ".toml" is read as TOML, anything else as JSON.
func Import(path string) (*scene.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if IsTOML(path) {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}

// IsTOML reports whether path has a TOML extension.
func IsTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

type builder struct {
	doc     *scene.Document
	counter map[string]int
	// explicit holds every ID written in the file; generated IDs skip them.
	explicit map[string]bool
	seen     map[string]bool
}

func build(data file) (*scene.Document, error) {
	b := &builder{
		doc:      scene.NewDocument(),
		counter:  make(map[string]int),
		explicit: make(map[string]bool),
		seen:     make(map[string]bool),
	}
	for _, d := range data.Definitions {
		collectIDs(d.Entities, b.explicit)
	}
	collectIDs(data.Entities, b.explicit)
	doc := b.doc

	if data.Units != "" {
		u, err := units.ParseUnit(data.Units)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "units")
		}
		doc.Units = u
	}
	if data.Rendering != nil && data.Rendering.FaceFrontColor != "" {
		c, err := parseColor(data.Rendering.FaceFrontColor)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "face_front_color")
		}
		doc.Rendering.FaceFrontColor = c
	}

	for _, l := range data.Layers {
		visible := l.Visible == nil || *l.Visible
		doc.Layers[l.Name] = &scene.Layer{Name: l.Name, Visible: visible}
	}
	for _, m := range data.Materials {
		c, err := parseColor(m.Color)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "material %s", m.Name)
		}
		doc.Materials[m.Name] = &scene.Material{Name: m.Name, Color: c}
	}

	if err := checkCycles(data); err != nil {
		return nil, err
	}

	// Definitions are created up front so instances may reference them in
	// any order.
	for _, d := range data.Definitions {
		if _, dup := doc.Definitions[d.Name]; dup {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "duplicate definition %q", d.Name)
		}
		doc.Definitions[d.Name] = scene.NewDefinition(d.Name)
	}
	for _, d := range data.Definitions {
		children, err := b.nodes(d.Entities)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", d.Name, err)
		}
		doc.Definitions[d.Name].Children = children
	}

	roots, err := b.nodes(data.Entities)
	if err != nil {
		return nil, err
	}
	doc.Roots = roots
	doc.Reindex()

	// Selections name top-level entities only.
	for _, id := range data.Selection {
		n, ok := doc.Node(id)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "selection references unknown node %q", id)
		}
		if !slices.Contains(doc.Roots, n) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "selection references %q, which is not a top-level entity", id)
		}
		doc.Selection = append(doc.Selection, n)
	}
	return doc, nil
}

func collectIDs(in []node, into map[string]bool) {
	for _, n := range in {
		if n.ID != "" {
			into[n.ID] = true
		}
		collectIDs(n.Entities, into)
	}
}

// nextID returns the first "<type>-<n>" not written in the file.
func (b *builder) nextID(typ string) string {
	for {
		b.counter[typ]++
		id := fmt.Sprintf("%s-%d", typ, b.counter[typ])
		if !b.explicit[id] {
			return id
		}
	}
}

func (b *builder) nodes(in []node) ([]*scene.Node, error) {
	out := make([]*scene.Node, 0, len(in))
	for _, n := range in {
		sn, err := b.node(n)
		if err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	return out, nil
}

func (b *builder) node(n node) (*scene.Node, error) {
	id := n.ID
	if id == "" {
		id = b.nextID(n.Type)
	} else if err := apperrors.ValidateNodeID(id); err != nil {
		return nil, err
	} else if b.seen[id] {
		return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "duplicate id %q", id)
	}
	b.seen[id] = true

	var sn *scene.Node
	switch n.Type {
	case "face":
		if len(n.Outer) < 3 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "face %s: outer loop needs at least 3 vertices", id)
		}
		inner := make([]scene.Loop, 0, len(n.Inner))
		for _, l := range n.Inner {
			inner = append(inner, loop(l))
		}
		sn = scene.NewFace(id, loop(n.Outer), inner...)
	case "group":
		children, err := b.nodes(n.Entities)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", id, err)
		}
		sn = scene.NewGroup(id, scene.NewDefinition(id, children...))
	case "instance":
		def, ok := b.doc.Definitions[n.Definition]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "instance %s: unknown definition %q", id, n.Definition)
		}
		sn = scene.NewInstance(id, def)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "node %s: unknown type %q", id, n.Type)
	}

	sn.WithName(n.Name).WithHidden(n.Hidden)
	if n.Layer != "" {
		l, ok := b.doc.Layers[n.Layer]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "node %s: unknown layer %q", id, n.Layer)
		}
		sn.WithLayer(l)
	}
	if n.Material != "" {
		m, ok := b.doc.Materials[n.Material]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidScene, "node %s: unknown material %q", id, n.Material)
		}
		sn.WithMaterial(m)
	}
	if n.Transform != nil && sn.IsContainer() {
		m, err := n.Transform.matrix()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidScene, err, "node %s", id)
		}
		sn.WithTransform(m)
	}
	return sn, nil
}

func loop(vs [][3]float64) scene.Loop {
	out := make(scene.Loop, len(vs))
	for i, v := range vs {
		out[i] = mgl64.Vec3(v)
	}
	return out
}

// matrix composes the transform as T·Rz·Ry·Rx·S, or copies the explicit
// column-major matrix.
func (t *transform) matrix() (mgl64.Mat4, error) {
	if len(t.Matrix) > 0 {
		if len(t.Matrix) != 16 {
			return mgl64.Mat4{}, fmt.Errorf("matrix needs 16 values, got %d", len(t.Matrix))
		}
		var m mgl64.Mat4
		copy(m[:], t.Matrix)
		return m, nil
	}

	m := mgl64.Ident4()
	if t.Translate != nil {
		m = m.Mul4(mgl64.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2]))
	}
	if t.Rotate != nil {
		m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(t.Rotate[2])))
		m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(t.Rotate[1])))
		m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(t.Rotate[0])))
	}
	if t.Scale != nil {
		m = m.Mul4(mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
	}
	return m, nil
}

func parseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
