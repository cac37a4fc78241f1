package render

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultPrecision is the number of decimals written for coordinates.
const DefaultPrecision = 3

// Face is one filled polygon in paper space (millimeters, Y down).
type Face struct {
	// ID is written as the path's id attribute when [WithIDs] is set.
	ID string
	// Loops holds the outer loop first, then any holes.
	Loops [][]mgl64.Vec2
	Color color.RGBA
}

// Drawing is a complete page.
type Drawing struct {
	Width, Height float64 // millimeters
	Title         string
	Faces         []Face
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision int
	ids       bool
	fillRule  string
}

// WithPrecision sets the number of decimals for coordinates and sizes.
func WithPrecision(n int) SVGOption { return func(r *svgRenderer) { r.precision = max(n, 0) } }

// WithIDs writes face IDs as id attributes.
func WithIDs() SVGOption { return func(r *svgRenderer) { r.ids = true } }

// WithFillRule sets the fill-rule attribute on every path ("nonzero" or "evenodd").
func WithFillRule(rule string) SVGOption { return func(r *svgRenderer) { r.fillRule = rule } }

// RenderSVG serializes d. Faces are written in order, so later faces paint
// over earlier ones.
func RenderSVG(d Drawing, opts ...SVGOption) []byte {
	r := svgRenderer{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := r.length(d.Width), r.length(d.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n", w, h, w, h)
	if d.Title != "" {
		fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(d.Title))
	}
	for _, f := range d.Faces {
		r.renderFace(&buf, f)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderFace(buf *bytes.Buffer, f Face) {
	data := r.pathData(f.Loops)
	if data == "" {
		return
	}
	buf.WriteString("<path")
	if r.ids && f.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, html.EscapeString(f.ID))
	}
	fmt.Fprintf(buf, ` d="%s" fill="%s"`, data, FormatColor(f.Color))
	if r.fillRule != "" {
		fmt.Fprintf(buf, ` fill-rule="%s"`, r.fillRule)
	}
	buf.WriteString(" />\n")
}

func (r svgRenderer) pathData(loops [][]mgl64.Vec2) string {
	var sb strings.Builder
	for _, loop := range loops {
		if len(loop) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		for i, v := range loop {
			if i == 0 {
				sb.WriteString("M ")
			} else {
				sb.WriteString(" L ")
			}
			sb.WriteString(r.length(v.X()))
			sb.WriteByte(' ')
			sb.WriteString(r.length(v.Y()))
		}
		sb.WriteString(" Z")
	}
	return sb.String()
}

func (r svgRenderer) length(v float64) string {
	return FormatLength(v, r.precision)
}

// PathData returns the d attribute for loops with the default precision.
func PathData(loops [][]mgl64.Vec2) string {
	return svgRenderer{precision: DefaultPrecision}.pathData(loops)
}

// FormatLength formats v with at most precision decimals, dropping trailing
// zeros: 12.5, 3, -0.125.
func FormatLength(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', max(precision, 0), 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatColor formats the RGB channels of c as uppercase #RRGGBB. Alpha is
// ignored.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
