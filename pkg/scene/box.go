package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box. The empty box has Min above Max.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns a box containing no points.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether b contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Add returns b grown to contain p.
func (b Box) Add(p mgl64.Vec3) Box {
	for i := range 3 {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.Add(o.Min).Add(o.Max)
}

// Transform returns the box containing the eight transformed corners of b.
func (b Box) Transform(m mgl64.Mat4) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := range 8 {
		corner := mgl64.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			corner[0] = b.Max.X()
		}
		if i&2 != 0 {
			corner[1] = b.Max.Y()
		}
		if i&4 != 0 {
			corner[2] = b.Max.Z()
		}
		out = out.Add(mgl64.TransformCoordinate(corner, m))
	}
	return out
}

// Width is the X extent.
func (b Box) Width() float64 { return b.extent(0) }

// Height is the Y extent.
func (b Box) Height() float64 { return b.extent(1) }

// Depth is the Z extent.
func (b Box) Depth() float64 { return b.extent(2) }

func (b Box) extent(i int) float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max[i] - b.Min[i]
}

// Center returns the middle of the box.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// boundsOf walks a definition with an explicit stack, accumulating
// transforms, and folds every face vertex into one box.
func boundsOf(def *Definition) Box {
	type frame struct {
		nodes []*Node
		m     mgl64.Mat4
	}
	out := EmptyBox()
	stack := []frame{{nodes: def.Children, m: mgl64.Ident4()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range f.nodes {
			if n.IsFace() {
				for _, v := range n.Outer {
					out = out.Add(mgl64.TransformCoordinate(v, f.m))
				}
				continue
			}
			if n.Definition != nil {
				stack = append(stack, frame{nodes: n.Definition.Children, m: f.m.Mul4(n.Transform)})
			}
		}
	}
	return out
}
