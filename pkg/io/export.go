package io

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/scenesvg/pkg/scene"
)

// WriteJSON encodes a document as JSON and writes it to w. The output can
// be re-imported with [ReadJSON]. Map-backed tables are written sorted by
// name, so equal documents produce equal bytes.
func WriteJSON(doc *scene.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toFile(doc)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a document as TOML and writes it to w.
func WriteTOML(doc *scene.Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toFile(doc)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes doc to path, choosing the format from the extension like
// [Import].
func Export(doc *scene.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	write := WriteJSON
	if IsTOML(path) {
		write = WriteTOML
	}
	if err := write(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toFile(doc *scene.Document) file {
	out := file{
		Units:     doc.Units.String(),
		Rendering: &rendering{FaceFrontColor: formatColor(doc.Rendering.FaceFrontColor)},
		Entities:  fromNodes(doc.Roots),
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Layers)) {
		visible := doc.Layers[name].Visible
		out.Layers = append(out.Layers, layer{Name: name, Visible: &visible})
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Materials)) {
		out.Materials = append(out.Materials, material{Name: name, Color: formatColor(doc.Materials[name].Color)})
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Definitions)) {
		out.Definitions = append(out.Definitions, definition{Name: name, Entities: fromNodes(doc.Definitions[name].Children)})
	}
	for _, n := range doc.Selection {
		out.Selection = append(out.Selection, n.ID)
	}
	return out
}

func fromNodes(nodes []*scene.Node) []node {
	out := make([]node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, fromNode(n))
	}
	return out
}

func fromNode(n *scene.Node) node {
	out := node{ID: n.ID, Name: n.Name, Type: n.Kind().String(), Hidden: n.Hidden}
	if n.Layer != nil {
		out.Layer = n.Layer.Name
	}
	if n.Material != nil {
		out.Material = n.Material.Name
	}
	switch n.Kind() {
	case scene.KindFace:
		out.Outer = fromLoop(n.Outer)
		for _, l := range n.Inner {
			out.Inner = append(out.Inner, fromLoop(l))
		}
	case scene.KindGroup:
		out.Entities = fromNodes(n.Children())
	case scene.KindInstance:
		out.Definition = n.Definition.Name
	}
	if n.IsContainer() && n.Transform != mgl64.Ident4() {
		out.Transform = &transform{Matrix: slices.Clone(n.Transform[:])}
	}
	return out
}

func fromLoop(l scene.Loop) [][3]float64 {
	out := make([][3]float64, len(l))
	for i, v := range l {
		out[i] = [3]float64(v)
	}
	return out
}

func formatColor(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
