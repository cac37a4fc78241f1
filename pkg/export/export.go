package export

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/observability"
	"github.com/matzehuels/scenesvg/pkg/render"
	"github.com/matzehuels/scenesvg/pkg/resolve"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/traverse"
)

// Stats contains export statistics.
type Stats struct {
	Paths   int // instance paths visited
	Faces   int // faces written
	Skipped int // hidden subtrees left out

	TraverseTime time.Duration
	RenderTime   time.Duration
}

// Page is a flattened drawing ready for serialization.
type Page struct {
	Drawing render.Drawing
	// Bounds is the model space box of the selection.
	Bounds scene.Box
	// Transform maps model coordinates to paper millimeters.
	Transform mgl64.Mat4
	Stats     Stats
}

// Select resolves the entities an export covers. IDs must name top-level
// entities of doc; an empty ids slice falls back to the document selection.
func Select(doc *scene.Document, ids []string) ([]*scene.Node, error) {
	if len(ids) == 0 {
		return doc.Selected(), nil
	}
	roots := make(map[string]*scene.Node, len(doc.Roots))
	for _, n := range doc.Roots {
		roots[n.ID] = n
	}
	out := make([]*scene.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := roots[id]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "no top-level entity %q", id)
		}
		out = append(out, n)
	}
	return out, nil
}

// PaperTransform returns the model to paper transform for a selection box:
// shift the box's minimum corner to the origin, mirror Y about the box's
// center so larger Y is drawn higher, and scale by factor after converting
// model units to millimeters with toMM.
func PaperTransform(b scene.Box, factor, toMM float64) mgl64.Mat4 {
	k := factor * toMM
	c := b.Center()
	mirror := mgl64.Translate3D(0, c.Y(), 0).
		Mul4(mgl64.Scale3D(1, -1, 1)).
		Mul4(mgl64.Translate3D(0, -c.Y(), 0))
	return mgl64.Scale3D(k, k, k).
		Mul4(mgl64.Translate3D(-b.Min.X(), -b.Min.Y(), -b.Min.Z())).
		Mul4(mirror)
}

// Flatten walks the selected entities of doc and projects every face onto
// the paper. The context is checked between nodes; a cancelled flatten
// returns ctx.Err().
func Flatten(ctx context.Context, doc *scene.Document, opts Options) (*Page, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	selection, err := Select(doc, opts.Selection)
	if err != nil {
		return nil, err
	}
	bounds := scene.Bounds(selection)
	if bounds.IsEmpty() {
		return nil, apperrors.New(apperrors.ErrCodeEmptySelection, "selection contains no geometry")
	}

	factor := opts.Scale.MustFactor()
	toMM := doc.Units.ToMillimeters(1)
	global := PaperTransform(bounds, factor, toMM)
	page := &Page{
		Bounds:    bounds,
		Transform: global,
		Drawing: render.Drawing{
			Width:  bounds.Width() * factor * toMM,
			Height: bounds.Height() * factor * toMM,
			Title:  opts.Title,
		},
	}

	var walkOpts []traverse.Option
	if opts.Order == OrderMinZ {
		walkOpts = append(walkOpts, traverse.WithOrder(traverse.ByMinZ))
	}

	observability.Export().OnTraverseStart(ctx, len(selection))
	start := time.Now()
	err = traverse.Walk(selection, false, func(p scene.InstancePath) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Visibility is checked here rather than by the walker so hidden
		// subtrees can be counted.
		if opts.IsWysiwyg() && !resolve.Visibility(p) {
			page.Stats.Skipped++
			return traverse.SkipChildren
		}
		page.Stats.Paths++
		if !p.Leaf().IsFace() {
			return nil
		}
		page.Drawing.Faces = append(page.Drawing.Faces, project(p, global.Mul4(p.Transform()), doc))
		return nil
	}, walkOpts...)
	page.Stats.TraverseTime = time.Since(start)
	page.Stats.Faces = len(page.Drawing.Faces)
	observability.Export().OnTraverseComplete(ctx, page.Stats.Paths, page.Stats.Faces, page.Stats.TraverseTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("flattened scene",
		"paths", page.Stats.Paths,
		"faces", page.Stats.Faces,
		"skipped", page.Stats.Skipped,
		"width_mm", page.Drawing.Width,
		"height_mm", page.Drawing.Height)
	return page, nil
}

func project(p scene.InstancePath, m mgl64.Mat4, src resolve.ColorSource) render.Face {
	loops := p.Leaf().Loops()
	face := render.Face{
		ID:    p.String(),
		Loops: make([][]mgl64.Vec2, 0, len(loops)),
		Color: resolve.Color(p, src),
	}
	for _, l := range loops {
		pts := make([]mgl64.Vec2, len(l))
		for i, v := range l {
			pts[i] = mgl64.TransformCoordinate(v, m).Vec2()
		}
		face.Loops = append(face.Loops, pts)
	}
	return face
}

// SVG serializes a page with the export options.
func SVG(page *Page, opts Options) []byte {
	svgOpts := []render.SVGOption{
		render.WithPrecision(opts.PrecisionOrDefault()),
		render.WithFillRule("evenodd"),
	}
	if opts.IDs {
		svgOpts = append(svgOpts, render.WithIDs())
	}
	return render.RenderSVG(page.Drawing, svgOpts...)
}
