package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/scenesvg/pkg/buildinfo"
	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/export"
	sceneio "github.com/matzehuels/scenesvg/pkg/io"
	"github.com/matzehuels/scenesvg/pkg/scale"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/session"
)

var contentTypes = map[string]string{
	export.FormatSVG: "image/svg+xml",
	export.FormatPDF: "application/pdf",
	export.FormatPNG: "image/png",
	export.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleExport converts the scene in the request body to a drawing.
//
// Query parameters: scale, format (svg, pdf, png), select (comma-separated
// top-level IDs), all, hidden, order, precision, title, refresh.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	doc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := exportOptions(q, doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scaleText := q.Get("scale")
	switch {
	case scaleText != "":
		opts.Scale = scale.Parse(scaleText)
		if !opts.Scale.Valid() {
			s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidScale, scale.ErrInvalid, "%q is not a valid scale", scaleText))
			return
		}
	case sess != nil:
		opts.Scale = sess.Scale
	default:
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidScale, "scale is required"))
		return
	}

	ctx, cancel := s.exportContext(r.Context())
	defer cancel()
	result, err := s.opts.Runner.Execute(ctx, doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if sess != nil {
		if scaleText != "" {
			sess.SetScale(opts.Scale)
		}
		sess.RecordExport(result.DocumentHash)
		if err := s.opts.Sessions.Set(r.Context(), sess); err != nil {
			s.opts.Logger.Warn("session save failed", "session", sess.ID, "error", err)
		}
		w.Header().Set(headerSessionID, sess.ID)
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(headerCache, cacheHeader(result.CacheHit))
	w.Header().Set("X-Scale", opts.Scale.String())
	_, _ = w.Write(result.Artifacts[format])
}

// handleOutline draws the hierarchy of the scene in the request body.
//
// Query parameters: format (svg, dot, pdf, png), faces, detailed, hidden,
// depth, refresh.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	doc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := export.OutlineOptions{Format: q.Get("format")}
	faces, err1 := boolParam(q.Get("faces"))
	detailed, err2 := boolParam(q.Get("detailed"))
	hidden, err3 := boolParam(q.Get("hidden"))
	refresh, err4 := boolParam(q.Get("refresh"))
	depth, err5 := intParam(q.Get("depth"))
	for _, err := range []error{err1, err2, err3, err4, err5} {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	opts.Faces, opts.Detailed, opts.Wysiwyg, opts.MaxDepth, opts.Refresh = faces, detailed, !hidden, depth, refresh

	ctx, cancel := s.exportContext(r.Context())
	defer cancel()
	data, hit, err := s.opts.Runner.Outline(ctx, doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Format == "" {
		opts.Format = export.FormatSVG
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Header().Set(headerCache, cacheHeader(hit))
	_, _ = w.Write(data)
}

// scaleResponse describes a parsed scale.
type scaleResponse struct {
	Input      string   `json:"input"`
	Valid      bool     `json:"valid"`
	Factor     *float64 `json:"factor,omitempty"`
	Formatted  string   `json:"formatted,omitempty"`
	Provenance string   `json:"provenance"`
	Rounded    string   `json:"rounded,omitempty"`
}

// handleScale parses ?value= and optionally rounds it with ?round= (nearest,
// down, up) to ?target= (common, extended). An unparsable value is reported
// with valid=false, not as an error.
func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := q.Get("value")
	if value == "" {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidArgument, "value is required"))
		return
	}

	target := scale.CommonTargets
	switch q.Get("target") {
	case "", "common":
	case "extended":
		target = scale.ExtendedTargets
	default:
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidArgument, "invalid target %q (must be one of: common, extended)", q.Get("target")))
		return
	}

	sc := scale.Parse(value)
	resp := scaleResponse{Input: value, Valid: sc.Valid(), Provenance: sc.Provenance().String()}
	if f, ok := sc.Factor(); ok {
		resp.Factor = &f
		resp.Formatted, _ = sc.Format()
		if round := q.Get("round"); round != "" {
			dir, ok := scale.ParseDirection(round)
			if !ok {
				s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidArgument, "invalid round %q (must be one of: nearest, down, up)", round))
				return
			}
			resp.Rounded, _ = sc.Round(target, dir).Format()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) readScene(w http.ResponseWriter, r *http.Request) (*scene.Document, error) {
	return sceneio.ReadJSON(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
}

// loadSession returns the caller's session, or nil when the request has no
// X-Session-ID or sessions are disabled.
func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	id := r.Header.Get(headerSessionID)
	if id == "" || s.opts.Sessions == nil {
		return nil, nil
	}
	if err := session.ValidateID(id); err != nil {
		return nil, err
	}
	return session.LoadOrNew(r.Context(), s.opts.Sessions, id)
}

func (s *Server) exportContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.ExportTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.ExportTimeout)
	}
	return context.WithCancel(ctx)
}

func exportOptions(q map[string][]string, doc *scene.Document) (export.Options, error) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	opts := export.Options{
		Order: get("order"),
		Title: get("title"),
	}
	format := strings.ToLower(get("format"))
	if format == "" {
		format = export.FormatSVG
	}
	if err := export.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	all, err := boolParam(get("all"))
	if err != nil {
		return opts, err
	}
	hidden, err := boolParam(get("hidden"))
	if err != nil {
		return opts, err
	}
	refresh, err := boolParam(get("refresh"))
	if err != nil {
		return opts, err
	}
	if v := get("precision"); v != "" {
		n, err := intParam(v)
		if err != nil {
			return opts, err
		}
		opts.Precision = export.Decimals(n)
	}
	opts.Refresh = refresh
	if hidden {
		wysiwyg := false
		opts.Wysiwyg = &wysiwyg
	}

	switch {
	case all:
		for _, n := range doc.Roots {
			opts.Selection = append(opts.Selection, n.ID)
		}
	case get("select") != "":
		for _, id := range strings.Split(get("select"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.Selection = append(opts.Selection, id)
			}
		}
	}
	return opts, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeInvalidArgument, err, "invalid boolean %q", v)
	}
	return b, nil
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidArgument, "invalid number %q", v)
	}
	return n, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
