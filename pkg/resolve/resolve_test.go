package resolve

import (
	"image/color"
	"testing"

	"github.com/matzehuels/scenesvg/pkg/scene"
)

var (
	red  = &scene.Material{Name: "red", Color: color.RGBA{R: 0xFF, A: 0xFF}}
	blue = &scene.Material{Name: "blue", Color: color.RGBA{B: 0xFF, A: 0xFF}}
	off  = &scene.Layer{Name: "off", Visible: false}
	on   = &scene.Layer{Name: "on", Visible: true}
)

func TestVisibility(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*scene.Node
		want  bool
	}{
		{"single visible", []*scene.Node{scene.NewFace("f", nil)}, true},
		{"single hidden", []*scene.Node{scene.NewFace("f", nil).WithHidden(true)}, false},
		{"single on off layer", []*scene.Node{scene.NewFace("f", nil).WithLayer(off)}, false},
		{"visible layer", []*scene.Node{scene.NewGroup("g", nil).WithLayer(on), scene.NewFace("f", nil).WithLayer(on)}, true},
		{"hidden ancestor", []*scene.Node{scene.NewGroup("g", nil).WithHidden(true), scene.NewFace("f", nil)}, false},
		{"ancestor on off layer", []*scene.Node{scene.NewGroup("g", nil).WithLayer(off), scene.NewGroup("h", nil), scene.NewFace("f", nil)}, false},
		{"hidden leaf", []*scene.Node{scene.NewGroup("g", nil), scene.NewFace("f", nil).WithHidden(true)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visibility(scene.NewInstancePath(tt.nodes...)); got != tt.want {
				t.Errorf("Visibility() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterial(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*scene.Node
		want  *scene.Material
	}{
		{"none", []*scene.Node{scene.NewGroup("g", nil), scene.NewFace("f", nil)}, nil},
		{"single", []*scene.Node{scene.NewFace("f", nil).WithMaterial(red)}, red},
		{"inherited", []*scene.Node{scene.NewGroup("g", nil).WithMaterial(blue), scene.NewFace("f", nil)}, blue},
		{"leaf wins", []*scene.Node{scene.NewGroup("g", nil).WithMaterial(blue), scene.NewFace("f", nil).WithMaterial(red)}, red},
		{"nearest ancestor wins", []*scene.Node{
			scene.NewGroup("g", nil).WithMaterial(blue),
			scene.NewInstance("i", nil).WithMaterial(red),
			scene.NewFace("f", nil),
		}, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Material(scene.NewInstancePath(tt.nodes...)); got != tt.want {
				t.Errorf("Material() = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeSource struct{ c color.RGBA }

func (f *fakeSource) DefaultFaceColor() color.RGBA { return f.c }

func TestColor(t *testing.T) {
	src := &fakeSource{c: color.RGBA{R: 1, G: 2, B: 3, A: 0xFF}}
	bare := scene.NewInstancePath(scene.NewFace("f", nil))

	if got := Color(bare, src); got != src.c {
		t.Errorf("Color() = %v, want %v", got, src.c)
	}
	// The source is queried on every call.
	src.c = color.RGBA{R: 9, A: 0xFF}
	if got := Color(bare, src); got != src.c {
		t.Errorf("Color() after change = %v, want %v", got, src.c)
	}
	if got := Color(bare, nil); got != scene.White {
		t.Errorf("Color(nil source) = %v, want white", got)
	}

	painted := scene.NewInstancePath(scene.NewGroup("g", nil).WithMaterial(red), scene.NewFace("f", nil))
	if got := Color(painted, src); got != red.Color {
		t.Errorf("Color() = %v, want %v", got, red.Color)
	}
}

func TestColorFromDocument(t *testing.T) {
	doc := scene.NewDocument()
	p := scene.NewInstancePath(scene.NewFace("f", nil))
	if got := Color(p, doc); got != scene.White {
		t.Errorf("Color() = %v, want white", got)
	}
	doc.Rendering.FaceFrontColor = color.RGBA{G: 0x80, A: 0xFF}
	if got := Color(p, doc); got != doc.Rendering.FaceFrontColor {
		t.Errorf("Color() = %v, want %v", got, doc.Rendering.FaceFrontColor)
	}
}
