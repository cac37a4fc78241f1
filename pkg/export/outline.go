package export

import (
	"context"
	"fmt"

	"github.com/matzehuels/scenesvg/pkg/cache"
	"github.com/matzehuels/scenesvg/pkg/observability"
	"github.com/matzehuels/scenesvg/pkg/render/outline"
	"github.com/matzehuels/scenesvg/pkg/scene"
)

// FormatDOT is the Graphviz source format, available for outlines only.
const FormatDOT = "dot"

// OutlineOptions configures a hierarchy outline.
type OutlineOptions struct {
	outline.Options

	// Format is dot, svg, pdf or png. Empty means svg.
	Format   string
	PNGScale float64
	Refresh  bool
}

// Outline renders the entity hierarchy of doc as a graph. Rendered outlines
// are cached like export artifacts.
func (r *Runner) Outline(ctx context.Context, doc *scene.Document, opts OutlineOptions) ([]byte, bool, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.PNGScale <= 0 {
		opts.PNGScale = DefaultPNGScale
	}
	if opts.Format != FormatDOT {
		if err := ValidateFormat(opts.Format); err != nil {
			return nil, false, err
		}
	}

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.OutlineKey(docHash, cache.OutlineKeyOpts{
		Format:   opts.Format,
		Faces:    opts.Faces,
		Detailed: opts.Detailed,
		Wysiwyg:  opts.Wysiwyg,
		MaxDepth: opts.MaxDepth,
	})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "outline")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "outline")
	}

	dot := outline.ToDOT(doc.Roots, opts.Options)
	var data []byte
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = outline.RenderSVG(ctx, dot)
	case FormatPDF:
		data, err = outline.RenderPDF(ctx, dot)
	case FormatPNG:
		data, err = outline.RenderPNG(ctx, dot, opts.PNGScale)
	}
	if err != nil {
		return nil, false, fmt.Errorf("render outline %s: %w", opts.Format, err)
	}

	if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
		r.Logger.Warn("cache write failed", "format", opts.Format, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "outline", len(data))
	}
	return data, false, nil
}
