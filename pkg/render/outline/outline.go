package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/scenesvg/pkg/render"
	"github.com/matzehuels/scenesvg/pkg/resolve"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/traverse"
)

// Options configures outline generation.
type Options struct {
	// Faces includes face nodes. Scenes usually hold far more faces than
	// containers, so they are left out by default.
	Faces bool
	// Detailed adds kind, layer and resolved material to node labels.
	Detailed bool
	// Wysiwyg leaves out hidden nodes. When false they are drawn dashed.
	Wysiwyg bool
	// MaxDepth limits the depth of the outline. Zero means unlimited.
	MaxDepth int
}

// ToDOT converts the hierarchy below roots to Graphviz DOT format. Each
// node occurrence becomes one graph node, so an instance of a shared
// definition appears once per place it is used.
func ToDOT(roots []*scene.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	_ = traverse.Walk(roots, opts.Wysiwyg, func(p scene.InstancePath) error {
		n := p.Leaf()
		if n.IsFace() && !opts.Faces {
			return nil
		}
		id := p.String()
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(p, opts.Detailed), ", "))
		if p.Len() > 1 {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", p.Parent().String(), id))
		}
		if opts.MaxDepth > 0 && p.Len() >= opts.MaxDepth {
			return traverse.SkipChildren
		}
		return nil
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p scene.InstancePath, detailed bool) string {
	n := p.Leaf()
	if !detailed {
		return n.Label()
	}

	parts := []string{n.Kind().String()}
	if n.Layer != nil {
		parts = append(parts, "layer: "+n.Layer.Name)
	}
	if m := resolve.Material(p); m != nil {
		parts = append(parts, "material: "+m.Name)
	}
	if n.IsContainer() && n.Definition != nil && n.Definition.Name != "" {
		parts = append(parts, "definition: "+n.Definition.Name)
	}
	return n.Label() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(p scene.InstancePath, detailed bool) []string {
	n := p.Leaf()
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, detailed))}
	switch {
	case !resolve.Visibility(p):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.IsFace():
		attrs = append(attrs, "shape=note", fmt.Sprintf("fillcolor=%q", render.FormatColor(resolve.Color(p, nil))))
	case n.Kind() == scene.KindInstance:
		attrs = append(attrs, "shape=component")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// viewBox starting at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, zoom float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, zoom)
}
