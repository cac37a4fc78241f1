// Package outline renders the structure of a scene as a Graphviz diagram.
//
// # Overview
//
// Where [render.RenderSVG] draws the geometry, this package draws the
// hierarchy: one box per node occurrence, connected from container to
// content. Instances of a shared definition show up once per use, exactly
// as the traversal sees them.
//
// # Usage
//
//	dot := outline.ToDOT(doc.Roots, outline.Options{Detailed: true})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// Hidden nodes are drawn dashed unless [Options].Wysiwyg drops them.
// Instances use the component shape and faces, when included, are filled
// with their resolved color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [render.RenderSVG]: github.com/matzehuels/scenesvg/pkg/render.RenderSVG
package outline
