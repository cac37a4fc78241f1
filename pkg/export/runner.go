package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenesvg/pkg/cache"
	sceneio "github.com/matzehuels/scenesvg/pkg/io"
	"github.com/matzehuels/scenesvg/pkg/observability"
	"github.com/matzehuels/scenesvg/pkg/render"
	"github.com/matzehuels/scenesvg/pkg/scene"
)

// Result contains the outputs of an export.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// DocumentHash is the content hash of the exported document.
	DocumentHash string

	// Bounds is the model space box of the selection. It is empty when
	// every artifact came from the cache.
	Bounds scene.Box

	// Width and Height are the drawing size in millimeters.
	Width, Height float64

	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Runner encapsulates export execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long artifacts stay cached. Zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute exports doc in every requested format. Cached artifacts are
// reused unless opts.Refresh is set; a partial hit renders all formats again.
func (r *Runner) Execute(ctx context.Context, doc *scene.Document, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, err
	}
	result := &Result{DocumentHash: docHash}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, docHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheHit = true
			opts.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	page, err := Flatten(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Bounds = page.Bounds
	result.Width, result.Height = page.Drawing.Width, page.Drawing.Height

	observability.Export().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(ctx, page, opts)
	page.Stats.RenderTime = time.Since(renderStart)
	observability.Export().OnRenderComplete(ctx, opts.Formats, page.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats = page.Stats

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	opts.Logger.Info("exported scene",
		"faces", page.Stats.Faces,
		"formats", opts.Formats,
		"duration", page.Stats.TraverseTime+page.Stats.RenderTime)
	return result, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

func (r *Runner) cached(ctx context.Context, docHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// Render serializes a flattened page in every requested format. PDF and PNG
// are converted from the SVG.
func Render(ctx context.Context, page *Page, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	svg := SVG(page, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg)
		case FormatPNG:
			data, err = render.ToPNG(ctx, svg, opts.PNGScale)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// DocumentHash returns the content hash of doc's canonical JSON form.
func DocumentHash(doc *scene.Document) (string, error) {
	var buf bytes.Buffer
	if err := sceneio.WriteJSON(doc, &buf); err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}
