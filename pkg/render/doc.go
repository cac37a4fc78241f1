// Package render writes flattened drawings as SVG documents.
//
// # Overview
//
// A [Drawing] is a list of filled 2D faces already in paper space, plus the
// paper size in millimeters. [RenderSVG] serializes it:
//
//	<svg xmlns="http://www.w3.org/2000/svg" width="210mm" height="297mm" viewBox="0 0 210 297">
//	<path d="M 0 0 L 10 0 L 10 10 Z M 2 2 L 4 2 L 4 4 Z" fill="#FF8800" />
//	</svg>
//
// Each face becomes one path element. The outer loop comes first and every
// inner loop (hole) follows as its own closed subpath. Use
// [WithFillRule]("evenodd") to keep holes empty regardless of winding.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := render.RenderSVG(drawing)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x zoom
//
// # Outline
//
// The [outline] subpackage renders the scene hierarchy itself, rather than
// its geometry, as a Graphviz diagram.
//
// [outline]: github.com/matzehuels/scenesvg/pkg/render/outline
package render
