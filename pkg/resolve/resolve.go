// Package resolve computes the effective attributes of a node occurrence
// from its instance path.
//
// A node's own attributes are not enough: a face inside a hidden group is
// hidden, and a face without a material is painted with the material of the
// nearest ancestor that has one. All functions accept single-element paths.
package resolve

import (
	"image/color"

	"github.com/matzehuels/scenesvg/pkg/scene"
)

// ColorSource supplies the fallback face color. It is queried on every
// [Color] call, so changes to the source apply immediately.
type ColorSource interface {
	DefaultFaceColor() color.RGBA
}

// Visibility reports whether every node on p is shown: none hidden and none
// on a layer that is switched off. Nodes are checked root first.
func Visibility(p scene.InstancePath) bool {
	for i := range p.Len() {
		n := p.At(i)
		if n.Hidden || !n.Layer.IsVisible() {
			return false
		}
	}
	return true
}

// Material returns the material of the node closest to the leaf that has
// one, or nil.
func Material(p scene.InstancePath) *scene.Material {
	for i := p.Len() - 1; i >= 0; i-- {
		if m := p.At(i).Material; m != nil {
			return m
		}
	}
	return nil
}

// Color returns the color of the resolved material, falling back to the
// source's default face color. A nil source falls back to white.
func Color(p scene.InstancePath, src ColorSource) color.RGBA {
	if m := Material(p); m != nil {
		return m.Color
	}
	if src == nil {
		return scene.White
	}
	return src.DefaultFaceColor()
}
