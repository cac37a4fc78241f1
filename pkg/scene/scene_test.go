package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func square(z float64) Loop {
	return Loop{{0, 0, z}, {1, 0, z}, {1, 1, z}, {0, 1, z}}
}

func TestKind(t *testing.T) {
	tests := []struct {
		node      *Node
		kind      Kind
		container bool
		name      string
	}{
		{NewFace("f", square(0)), KindFace, false, "face"},
		{NewGroup("g", nil), KindGroup, true, "group"},
		{NewInstance("i", NewDefinition("d")), KindInstance, true, "instance"},
	}
	for _, tt := range tests {
		if got := tt.node.Kind(); got != tt.kind {
			t.Errorf("%s: Kind() = %v, want %v", tt.node.ID, got, tt.kind)
		}
		if got := tt.node.IsContainer(); got != tt.container {
			t.Errorf("%s: IsContainer() = %v, want %v", tt.node.ID, got, tt.container)
		}
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("Kind.String() = %q, want %q", got, tt.name)
		}
	}
	if Kind(42).String() != "unknown" {
		t.Error("unknown kind should stringify as unknown")
	}
}

func TestNodeSetters(t *testing.T) {
	layer := &Layer{Name: "L1"}
	mat := &Material{Name: "red"}
	m := mgl64.Translate3D(1, 2, 3)
	n := NewGroup("g", nil).WithTransform(m).WithLayer(layer).WithMaterial(mat).WithHidden(true).WithName("Group")

	if n.Transform != m || n.Layer != layer || n.Material != mat || !n.Hidden {
		t.Errorf("setters did not apply: %+v", n)
	}
	if n.Label() != "Group" {
		t.Errorf("Label() = %q, want Group", n.Label())
	}
	if NewFace("f", nil).Label() != "f" {
		t.Error("unnamed node should be labelled by ID")
	}
}

func TestLayerVisible(t *testing.T) {
	var nilLayer *Layer
	if !nilLayer.IsVisible() {
		t.Error("nil layer should be visible")
	}
	if (&Layer{Visible: false}).IsVisible() {
		t.Error("hidden layer reported visible")
	}
}

func TestLoops(t *testing.T) {
	hole := Loop{{0.2, 0.2, 0}, {0.4, 0.2, 0}, {0.4, 0.4, 0}}
	f := NewFace("f", square(0), hole)
	if got := len(f.Loops()); got != 2 {
		t.Errorf("len(Loops()) = %d, want 2", got)
	}
	if NewFace("empty", nil).Loops() != nil {
		t.Error("face without outer loop should have no loops")
	}
	if NewGroup("g", nil).Loops() != nil {
		t.Error("container should have no loops")
	}
}

func TestBounds(t *testing.T) {
	face := NewFace("f", square(2))
	def := NewDefinition("d", face)
	a := NewInstance("a", def)
	b := NewInstance("b", def).WithTransform(mgl64.Translate3D(10, 0, 1))
	root := NewGroup("root", NewDefinition("root", a, b))

	tests := []struct {
		name string
		node *Node
		min  mgl64.Vec3
		max  mgl64.Vec3
	}{
		{"face", face, mgl64.Vec3{0, 0, 2}, mgl64.Vec3{1, 1, 2}},
		{"instance", a, mgl64.Vec3{0, 0, 2}, mgl64.Vec3{1, 1, 2}},
		{"moved instance", b, mgl64.Vec3{10, 0, 3}, mgl64.Vec3{11, 1, 3}},
		{"root", root, mgl64.Vec3{0, 0, 2}, mgl64.Vec3{11, 1, 3}},
	}
	for _, tt := range tests {
		got := tt.node.Bounds()
		if !got.Min.ApproxEqual(tt.min) || !got.Max.ApproxEqual(tt.max) {
			t.Errorf("%s: Bounds() = %v..%v, want %v..%v", tt.name, got.Min, got.Max, tt.min, tt.max)
		}
	}

	if !NewGroup("empty", nil).Bounds().IsEmpty() {
		t.Error("empty group should have empty bounds")
	}
}

func TestBoxTransformRotation(t *testing.T) {
	b := EmptyBox().Add(mgl64.Vec3{0, 0, 0}).Add(mgl64.Vec3{2, 1, 0})
	r := b.Transform(mgl64.HomogRotate3DZ(math.Pi / 2))
	if math.Abs(r.Width()-1) > 1e-9 || math.Abs(r.Height()-2) > 1e-9 {
		t.Errorf("rotated box = %vx%v, want 1x2", r.Width(), r.Height())
	}
}

func TestBoxUnion(t *testing.T) {
	empty := EmptyBox()
	b := empty.Add(mgl64.Vec3{1, 1, 1})
	if got := empty.Union(b); got != b {
		t.Errorf("empty.Union(b) = %v, want %v", got, b)
	}
	if got := b.Union(empty); got != b {
		t.Errorf("b.Union(empty) = %v, want %v", got, b)
	}
	if empty.Width() != 0 {
		t.Error("empty box should have zero width")
	}
	c := b.Union(EmptyBox().Add(mgl64.Vec3{3, -1, 1}))
	if want := (mgl64.Vec3{2, 0, 1}); !c.Center().ApproxEqual(want) {
		t.Errorf("Center() = %v, want %v", c.Center(), want)
	}
}

func TestInstancePath(t *testing.T) {
	face := NewFace("f", square(0))
	inst := NewInstance("i", NewDefinition("d", face)).WithTransform(mgl64.Translate3D(5, 0, 0))
	root := NewGroup("root", NewDefinition("root", inst)).WithTransform(mgl64.Scale3D(2, 2, 2))

	p := NewInstancePath(root, inst, face)
	if p.Len() != 3 || p.Root() != root || p.Leaf() != face || p.At(1) != inst {
		t.Fatalf("unexpected path %v", p)
	}
	if got := p.String(); got != "root/i/f" {
		t.Errorf("String() = %q, want root/i/f", got)
	}

	want := mgl64.Scale3D(2, 2, 2).Mul4(mgl64.Translate3D(5, 0, 0))
	if !p.Transform().ApproxEqual(want) {
		t.Errorf("Transform() = %v, want %v", p.Transform(), want)
	}
	incremental := NewInstancePath(root).Child(inst).Child(face)
	if !incremental.Transform().ApproxEqual(p.Transform()) {
		t.Error("Child and NewInstancePath disagree on the transform")
	}

	v := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, p.Transform())
	if !v.ApproxEqual(mgl64.Vec3{12, 0, 0}) {
		t.Errorf("transformed vertex = %v, want [12 0 0]", v)
	}

	if got := p.Parent().String(); got != "root/i" {
		t.Errorf("Parent() = %q, want root/i", got)
	}
	if !NewInstancePath(root).Parent().IsEmpty() {
		t.Error("parent of a single node path should be empty")
	}
}

func TestInstancePathNoAliasing(t *testing.T) {
	a, b, c := NewGroup("a", nil), NewFace("b", nil), NewFace("c", nil)
	parent := NewInstancePath(a)
	left := parent.Child(b)
	right := parent.Child(c)
	if left.Leaf() != b || right.Leaf() != c {
		t.Errorf("sibling paths alias: %v %v", left, right)
	}
	nodes := left.Nodes()
	nodes[0] = c
	if left.Root() != a {
		t.Error("Nodes() should return a copy")
	}
}

func TestEmptyInstancePath(t *testing.T) {
	var p InstancePath
	if !p.IsEmpty() || p.Root() != nil || p.Leaf() != nil {
		t.Error("zero path should be empty")
	}
	if p.Transform() != mgl64.Ident4() {
		t.Error("zero path transform should be identity")
	}
}

func TestDocument(t *testing.T) {
	shared := NewDefinition("panel", NewFace("pf", square(0)))
	a := NewInstance("a", shared)
	b := NewInstance("b", shared)
	doc := NewDocument()
	doc.Roots = []*Node{a, b, NewFace("loose", square(1))}

	for _, id := range []string{"a", "b", "pf", "loose"} {
		if _, ok := doc.Node(id); !ok {
			t.Errorf("Node(%q) not found", id)
		}
	}
	if _, ok := doc.Node("missing"); ok {
		t.Error("Node(missing) should not be found")
	}
	if len(doc.Selected()) != 3 {
		t.Errorf("empty selection should mean all roots, got %d", len(doc.Selected()))
	}
	doc.Selection = []*Node{b}
	if got := doc.Selected(); len(got) != 1 || got[0] != b {
		t.Errorf("Selected() = %v, want [b]", got)
	}

	if doc.DefaultFaceColor() != White {
		t.Errorf("DefaultFaceColor() = %v, want white", doc.DefaultFaceColor())
	}
	doc.Rendering.FaceFrontColor.R = 0
	if doc.DefaultFaceColor().R != 0 {
		t.Error("DefaultFaceColor() should read the current rendering options")
	}
}

func TestBoundsOfNodes(t *testing.T) {
	got := Bounds([]*Node{NewFace("a", square(0)), NewFace("b", square(4))})
	if got.Depth() != 4 {
		t.Errorf("Depth() = %v, want 4", got.Depth())
	}
	if !Bounds(nil).IsEmpty() {
		t.Error("Bounds(nil) should be empty")
	}
}
