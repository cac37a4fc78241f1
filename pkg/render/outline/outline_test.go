package outline

import (
	"strings"
	"testing"

	"github.com/matzehuels/scenesvg/pkg/scene"
)

func sampleScene() []*scene.Node {
	red := &scene.Material{Name: "red"}
	panel := scene.NewDefinition("panel", scene.NewFace("front", nil))
	return []*scene.Node{
		scene.NewGroup("house", scene.NewDefinition("house",
			scene.NewInstance("left", panel).WithMaterial(red),
			scene.NewInstance("right", panel),
			scene.NewGroup("attic", nil).WithHidden(true),
		)),
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleScene(), Options{})

	for _, want := range []string{
		`"house" [label="house"]`,
		`"house/left" [label="left", shape=component]`,
		`"house" -> "house/right";`,
		`"house/attic" [label="attic", style="rounded,filled,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "front") {
		t.Error("faces should be omitted by default")
	}
}

func TestToDOTFaces(t *testing.T) {
	dot := ToDOT(sampleScene(), Options{Faces: true, Wysiwyg: true})
	if !strings.Contains(dot, `"house/left/front"`) || !strings.Contains(dot, `"house/right/front"`) {
		t.Errorf("each face occurrence should be a node:\n%s", dot)
	}
	if strings.Contains(dot, "attic") {
		t.Error("wysiwyg outline should drop hidden nodes")
	}
	if !strings.Contains(dot, `shape=note`) {
		t.Error("faces should use the note shape")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleScene(), Options{Detailed: true, Faces: true})
	if !strings.Contains(dot, `label="front\nface\nmaterial: red"`) {
		t.Errorf("detailed label should include the inherited material:\n%s", dot)
	}
	if !strings.Contains(dot, `definition: panel`) {
		t.Error("detailed label should name the definition")
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	dot := ToDOT(sampleScene(), Options{MaxDepth: 1})
	if strings.Contains(dot, "left") {
		t.Errorf("MaxDepth 1 should only include roots:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Error("svg without viewBox should be unchanged")
	}
}
