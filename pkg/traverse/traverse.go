// Package traverse walks a scene hierarchy in pre-order, producing one
// [scene.InstancePath] per node occurrence.
//
// Containers are visited before their contents and leaves are never
// descended. Nodes in shared definitions are reached once per ancestor
// chain, each time with a distinct path. The walk uses an explicit worklist,
// so its stack usage does not grow with nesting depth.
//
// Two entry points are provided. [Walk] calls a function per path and lets
// it prune subtrees with [SkipChildren] or stop with [SkipAll]. [Paths]
// returns the same sequence as a lazy iterator:
//
//	for p := range traverse.Paths(doc.Roots, true) {
//		if p.Leaf().IsFace() {
//			draw(p)
//		}
//	}
package traverse

import (
	"errors"
	"iter"
	"slices"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/resolve"
	"github.com/matzehuels/scenesvg/pkg/scene"
)

var (
	// ErrNoConsumer is returned, wrapped in an INVALID_ARGUMENT error, when
	// Walk is called without a function.
	ErrNoConsumer = errors.New("traverse: no consumer")

	// SkipChildren, returned by a WalkFunc for a container, skips the
	// container's contents. It is ignored for leaves.
	SkipChildren = errors.New("skip children")

	// SkipAll, returned by a WalkFunc, stops the walk. Walk returns nil.
	SkipAll = errors.New("skip all")
)

// WalkFunc is called for each visited path. Returning an error other than
// SkipChildren or SkipAll stops the walk and Walk returns that error.
type WalkFunc func(p scene.InstancePath) error

// Order compares two siblings. Negative means a is visited first.
type Order func(a, b *scene.Node) int

// ByMinZ orders siblings by the lowest Z of their bounds, so lower geometry
// is emitted first and higher geometry paints over it. Siblings without
// geometry go last.
func ByMinZ(a, b *scene.Node) int {
	za, zb := a.Bounds().Min.Z(), b.Bounds().Min.Z()
	switch {
	case za < zb:
		return -1
	case za > zb:
		return 1
	default:
		return 0
	}
}

// Option configures a walk.
type Option func(*config)

type config struct {
	order Order
}

// WithOrder visits siblings in the order given by cmp. The sort is stable
// and never reorders the scene's own slices. A nil cmp keeps document order.
func WithOrder(cmp Order) Option {
	return func(c *config) { c.order = cmp }
}

// DocumentOrder visits siblings in the order they are stored.
func DocumentOrder() Option {
	return WithOrder(nil)
}

type frame struct {
	siblings []*scene.Node
	next     int
	parent   scene.InstancePath
}

// Walk visits every node reachable from roots in pre-order and calls fn with
// its instance path. With wysiwyg set, nodes that are hidden or on a hidden
// layer, and everything below them, are skipped.
//
// A nil fn is rejected before any node is visited. An empty roots slice
// visits nothing and returns nil.
func Walk(roots []*scene.Node, wysiwyg bool, fn WalkFunc, opts ...Option) error {
	if fn == nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidArgument, ErrNoConsumer, "walk requires a function")
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	stack := []frame{{siblings: cfg.sorted(roots)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.siblings) {
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.siblings[top.next]
		top.next++

		p := top.parent.Child(n)
		if wysiwyg && !resolve.Visibility(p) {
			continue
		}

		err := fn(p)
		switch {
		case err == nil:
		case errors.Is(err, SkipAll):
			return nil
		case errors.Is(err, SkipChildren):
			continue
		default:
			return err
		}

		if children := n.Children(); len(children) > 0 {
			stack = append(stack, frame{siblings: cfg.sorted(children), parent: p})
		}
	}
	return nil
}

// Paths returns the paths Walk would visit as a lazy sequence. Breaking out
// of the loop stops the walk.
func Paths(roots []*scene.Node, wysiwyg bool, opts ...Option) iter.Seq[scene.InstancePath] {
	return func(yield func(scene.InstancePath) bool) {
		_ = Walk(roots, wysiwyg, func(p scene.InstancePath) error {
			if !yield(p) {
				return SkipAll
			}
			return nil
		}, opts...)
	}
}

// Leaves returns only the face paths of the walk.
func Leaves(roots []*scene.Node, wysiwyg bool, opts ...Option) iter.Seq[scene.InstancePath] {
	return func(yield func(scene.InstancePath) bool) {
		for p := range Paths(roots, wysiwyg, opts...) {
			if p.Leaf().IsFace() && !yield(p) {
				return
			}
		}
	}
}

func (c config) sorted(nodes []*scene.Node) []*scene.Node {
	if c.order == nil || len(nodes) < 2 {
		return nodes
	}
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, c.order)
	return out
}
