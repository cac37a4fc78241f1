package traverse

import (
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/scene"
)

func face(id string, z float64) *scene.Node {
	return scene.NewFace(id, scene.Loop{{0, 0, z}, {1, 0, z}, {1, 1, z}})
}

func group(id string, children ...*scene.Node) *scene.Node {
	return scene.NewGroup(id, scene.NewDefinition(id, children...))
}

func collect(t *testing.T, roots []*scene.Node, wysiwyg bool, opts ...Option) []string {
	t.Helper()
	var got []string
	for p := range Paths(roots, wysiwyg, opts...) {
		got = append(got, p.String())
	}
	return got
}

func TestWalkFlatLeaves(t *testing.T) {
	roots := []*scene.Node{face("a", 0), face("b", 0), face("c", 0)}
	var lens []int
	err := Walk(roots, true, func(p scene.InstancePath) error {
		lens = append(lens, p.Len())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if !slices.Equal(lens, []int{1, 1, 1}) {
		t.Errorf("path lengths = %v, want [1 1 1]", lens)
	}
}

func TestWalkPreOrder(t *testing.T) {
	roots := []*scene.Node{
		group("g", face("f1", 0), group("h", face("f2", 0))),
		face("f3", 0),
	}
	got := collect(t, roots, false)
	want := []string{"g", "g/f1", "g/h", "g/h/f2", "f3"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestWalkSharedDefinition(t *testing.T) {
	shared := scene.NewDefinition("panel", face("pf", 0))
	a := scene.NewInstance("a", shared)
	b := scene.NewInstance("b", shared).WithTransform(mgl64.Translate3D(5, 0, 0))

	var leaves []scene.InstancePath
	for p := range Leaves([]*scene.Node{a, b}, true) {
		leaves = append(leaves, p)
	}
	if len(leaves) != 2 {
		t.Fatalf("got %d leaf paths, want 2", len(leaves))
	}
	if leaves[0].Leaf() != leaves[1].Leaf() {
		t.Error("both paths should end at the shared face")
	}
	if leaves[0].String() == leaves[1].String() {
		t.Errorf("paths should differ, both are %q", leaves[0])
	}
	if leaves[0].Transform().ApproxEqual(leaves[1].Transform()) {
		t.Error("paths through different instances should carry different transforms")
	}
}

func TestWalkWysiwyg(t *testing.T) {
	off := &scene.Layer{Name: "off"}
	roots := []*scene.Node{
		group("hidden", face("inner", 0)).WithHidden(true),
		group("shown", face("f1", 0), face("f2", 0).WithLayer(off)),
	}

	got := collect(t, roots, true)
	if want := []string{"shown", "shown/f1"}; !slices.Equal(got, want) {
		t.Errorf("wysiwyg paths = %v, want %v", got, want)
	}

	all := collect(t, roots, false)
	if want := []string{"hidden", "hidden/inner", "shown", "shown/f1", "shown/f2"}; !slices.Equal(all, want) {
		t.Errorf("full paths = %v, want %v", all, want)
	}
}

func TestWalkEmpty(t *testing.T) {
	calls := 0
	if err := Walk(nil, true, func(scene.InstancePath) error { calls++; return nil }); err != nil {
		t.Errorf("Walk(nil) = %v, want nil", err)
	}
	if calls != 0 {
		t.Errorf("Walk(nil) made %d calls", calls)
	}
	if got := collect(t, []*scene.Node{}, false); len(got) != 0 {
		t.Errorf("Paths(empty) = %v", got)
	}
}

func TestWalkNilConsumer(t *testing.T) {
	err := Walk([]*scene.Node{face("a", 0)}, true, nil)
	if err == nil {
		t.Fatal("Walk(nil fn) should fail")
	}
	if !stderrors.Is(err, ErrNoConsumer) {
		t.Errorf("error %v should wrap ErrNoConsumer", err)
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("GetCode() = %v, want INVALID_ARGUMENT", apperrors.GetCode(err))
	}
}

func TestWalkSkip(t *testing.T) {
	roots := []*scene.Node{
		group("g", face("f1", 0)),
		group("h", face("f2", 0)),
		face("f3", 0),
	}

	var got []string
	err := Walk(roots, false, func(p scene.InstancePath) error {
		got = append(got, p.String())
		if p.Leaf().ID == "g" {
			return SkipChildren
		}
		if p.Leaf().ID == "f2" {
			return SkipAll
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if want := []string{"g", "h", "h/f2"}; !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestWalkError(t *testing.T) {
	boom := stderrors.New("boom")
	calls := 0
	err := Walk([]*scene.Node{face("a", 0), face("b", 0)}, false, func(scene.InstancePath) error {
		calls++
		return boom
	})
	if !stderrors.Is(err, boom) {
		t.Errorf("Walk() = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("walk continued after error: %d calls", calls)
	}
}

func TestPathsBreak(t *testing.T) {
	roots := []*scene.Node{face("a", 0), face("b", 0), face("c", 0)}
	n := 0
	for range Paths(roots, false) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d times, want 2", n)
	}
}

func TestWalkOrder(t *testing.T) {
	top := face("top", 10)
	bottom := face("bottom", -1)
	mid := face("mid", 3)
	tie := face("tie", 3)
	roots := []*scene.Node{top, mid, bottom, tie}

	got := collect(t, roots, false, WithOrder(ByMinZ))
	if want := []string{"bottom", "mid", "tie", "top"}; !slices.Equal(got, want) {
		t.Errorf("ByMinZ paths = %v, want %v", got, want)
	}
	if roots[0] != top {
		t.Error("sorting should not reorder the input")
	}

	doc := collect(t, roots, false, DocumentOrder())
	if want := []string{"top", "mid", "bottom", "tie"}; !slices.Equal(doc, want) {
		t.Errorf("document order = %v, want %v", doc, want)
	}

	byID := func(a, b *scene.Node) int { return strings.Compare(b.ID, a.ID) }
	rev := collect(t, []*scene.Node{group("g", face("a", 0), face("b", 0))}, false, WithOrder(byID))
	if want := []string{"g", "g/b", "g/a"}; !slices.Equal(rev, want) {
		t.Errorf("custom order = %v, want %v", rev, want)
	}
}

func TestWalkDeepNesting(t *testing.T) {
	const depth = 2000
	n := face("leaf", 0)
	for i := range depth {
		n = group("g"+strings.Repeat("x", i%3), n)
	}
	maxLen := 0
	for p := range Paths([]*scene.Node{n}, true) {
		maxLen = max(maxLen, p.Len())
	}
	if maxLen != depth+1 {
		t.Errorf("deepest path = %d, want %d", maxLen, depth+1)
	}
}
