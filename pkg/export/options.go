// Package export turns a scene document into top-view drawings.
//
// This package implements the path that the CLI and the API share: resolve
// the selection, compute its bounds, build the model to paper transform,
// walk the scene, project faces onto the XY plane, and serialize the result
// as SVG (optionally converted to PDF or PNG). By centralizing this logic,
// every entry point produces the same bytes for the same options.
//
// # Usage
//
//	runner := export.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, doc, export.Options{
//	    Scale:   scale.Parse("1:50"),
//	    Formats: []string{export.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[export.FormatSVG]
//
// Drawings are in millimeters. The top edge of the drawing is the model's
// largest Y, so the page reads like a plan seen from above.
package export

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenesvg/pkg/cache"
	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/render"
	"github.com/matzehuels/scenesvg/pkg/scale"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPrecision is the number of decimals written for coordinates.
	DefaultPrecision = render.DefaultPrecision

	// DefaultPNGScale is the zoom factor for PNG conversion.
	DefaultPNGScale = 2.0

	// DefaultOrder is the sibling order used for painting.
	DefaultOrder = OrderMinZ
)

// Sibling orders.
const (
	// OrderMinZ paints lower geometry first.
	OrderMinZ = "minz"
	// OrderDocument paints in the order entities appear in the scene.
	OrderDocument = "document"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidOrders is the set of supported sibling orders.
var ValidOrders = map[string]bool{
	OrderMinZ:     true,
	OrderDocument: true,
}

// =============================================================================
// Options - Export Configuration
// =============================================================================

// Options contains all configuration for an export.
type Options struct {
	// Scale is the paper/model ratio. It must be valid.
	Scale scale.Scale `json:"scale"`

	// Selection lists top-level entity IDs to export. Empty means the
	// document's own selection, or every entity when that is empty too.
	Selection []string `json:"selection,omitempty"`

	// Wysiwyg skips hidden entities and entities on hidden layers.
	// Nil means true.
	Wysiwyg *bool `json:"wysiwyg,omitempty"`

	Order   string   `json:"order,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Precision is the number of coordinate decimals. Nil means
	// DefaultPrecision; zero writes whole millimeters.
	Precision *int    `json:"precision,omitempty"`
	PNGScale  float64 `json:"png_scale,omitempty"`

	// Title is written as the SVG title element when set.
	Title string `json:"title,omitempty"`
	// IDs writes each face's instance path as its SVG id.
	IDs bool `json:"ids,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrder checks that a sibling order is valid.
func ValidateOrder(order string) error {
	if !ValidOrders[order] {
		return apperrors.New(apperrors.ErrCodeInvalidArgument, "invalid order: %q (must be one of: minz, document)", order)
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates. "svg, pdf" yields [svg pdf].
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It never fails.
func (o *Options) SetDefaults() {
	if o.Wysiwyg == nil {
		wysiwyg := true
		o.Wysiwyg = &wysiwyg
	}
	if o.Order == "" {
		o.Order = DefaultOrder
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Precision == nil {
		o.Precision = Decimals(DefaultPrecision)
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if !o.Scale.Valid() || o.Scale.MustFactor() <= 0 {
		return apperrors.Wrap(apperrors.ErrCodeInvalidScale, scale.ErrInvalid, "scale %q", o.Scale.String())
	}
	if o.Precision != nil && *o.Precision < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidArgument, "invalid precision: %d (must not be negative)", *o.Precision)
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateOrder(o.Order); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Decimals returns a Precision value for n.
func Decimals(n int) *int { return &n }

// PrecisionOrDefault returns the coordinate precision, DefaultPrecision
// when unset.
func (o *Options) PrecisionOrDefault() int {
	if o.Precision == nil {
		return DefaultPrecision
	}
	return *o.Precision
}

// IsWysiwyg reports whether hidden entities are skipped.
func (o *Options) IsWysiwyg() bool {
	return o.Wysiwyg == nil || *o.Wysiwyg
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Scale:     o.Scale.MustFactor(),
		Format:    format,
		Selection: o.Selection,
		Wysiwyg:   o.IsWysiwyg(),
		Order:     o.Order,
		Precision: o.PrecisionOrDefault(),
		Title:     o.Title,
		IDs:       o.IDs,
	}
	if format == FormatPNG {
		opts.PNGScale = o.PNGScale
	}
	return opts
}
