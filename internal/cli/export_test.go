package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/export"
	"github.com/matzehuels/scenesvg/pkg/scale"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/session"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "house.json", "house"},
		{"", "plans/house.toml", "plans/house"},
		{"out.svg", "house.json", "out"},
		{"out.pdf", "house.json", "out"},
		{"plans/ground", "house.json", "plans/ground"},
		{"plan.v2", "house.json", "plan.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		format   string
		multiple bool
		want     string
	}{
		{"default", "", "svg", false, "house.svg"},
		{"explicit single", "floor.svg", "svg", false, "floor.svg"},
		{"explicit base with several", "floor.svg", "pdf", true, "floor.pdf"},
		{"default with several", "", "png", true, "house.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath("house.json", tt.output, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMM(t *testing.T) {
	tests := map[float64]string{80: "80", 100: "100", 12.34: "12.3", 0.05: "0.1", 7.5: "7.5"}
	for in, want := range tests {
		if got := formatMM(in); got != want {
			t.Errorf("formatMM(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "house.json")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "pdf": []byte("%PDF")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "pdf"}, input, filepath.Join(dir, "out", "plan"))
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want 2", paths)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out", "plan.svg"))
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("plan.svg = %q, %v", data, err)
	}

	_, err = writeArtifacts(artifacts, []string{"svg"}, input, dir+"/")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidPath) {
		t.Errorf("directory output = %v, want INVALID_PATH", err)
	}
}

func TestExportOptions(t *testing.T) {
	doc := scene.NewDocument()
	doc.Roots = []*scene.Node{scene.NewGroup("a", scene.NewDefinition("a")), scene.NewGroup("b", scene.NewDefinition("b"))}
	doc.Reindex()

	c := New(os.Stderr, LogInfo)
	c.Config.Export.Formats = []string{"pdf"}

	opts, err := c.exportOptions(doc, exportFlags{all: true, hidden: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "pdf" {
		t.Errorf("Formats = %v, want config [pdf]", opts.Formats)
	}
	if len(opts.Selection) != 2 {
		t.Errorf("Selection = %v, want both roots", opts.Selection)
	}
	if opts.IsWysiwyg() {
		t.Error("--hidden should turn wysiwyg off")
	}
	if opts.Order != export.DefaultOrder {
		t.Errorf("Order = %q, want default %q", opts.Order, export.DefaultOrder)
	}

	opts, err = c.exportOptions(doc, exportFlags{formats: "SVG, png"})
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "svg" || opts.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [svg png]", opts.Formats)
	}

	if opts.Precision != nil && *opts.Precision != export.DefaultPrecision {
		t.Errorf("Precision = %d without --precision, want default", *opts.Precision)
	}
	opts, err = c.exportOptions(doc, exportFlags{precision: 0, precisionSet: true})
	if err != nil {
		t.Fatal(err)
	}
	if opts.PrecisionOrDefault() != 0 {
		t.Errorf("Precision = %d, want 0 from --precision 0", opts.PrecisionOrDefault())
	}

	if _, err := c.exportOptions(doc, exportFlags{formats: "gif"}); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("gif = %v, want INVALID_FORMAT", err)
	}
	if _, err := c.exportOptions(doc, exportFlags{order: "random"}); !apperrors.Is(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("order random = %v, want INVALID_ARGUMENT", err)
	}
}

func TestChooseScale(t *testing.T) {
	ctx := context.Background()
	sess := session.NewWithID(session.DefaultID, session.DefaultTTL)
	sess.SetScale(scale.Parse("1:20"))

	tests := []struct {
		name         string
		configScale  string
		flags        exportFlags
		want         string
		wantRemember bool
		wantErr      apperrors.Code
	}{
		{"flag wins", "1:100", exportFlags{scale: "1:50"}, "1:50", true, ""},
		{"config over session", "1:100", exportFlags{}, "1:100", false, ""},
		{"session fallback", "", exportFlags{}, "1:20", false, ""},
		{"invalid flag", "", exportFlags{scale: "1:0"}, "", false, apperrors.ErrCodeInvalidScale},
		{"invalid config", "nope", exportFlags{}, "", false, apperrors.ErrCodeInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			c.Config.Export.Scale = tt.configScale

			var opts export.Options
			remember, err := c.chooseScale(ctx, sess, tt.flags, &opts)
			if tt.wantErr != "" {
				if !apperrors.Is(err, tt.wantErr) {
					t.Errorf("chooseScale() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := opts.Scale.String(); got != tt.want {
				t.Errorf("Scale = %q, want %q", got, tt.want)
			}
			if remember != tt.wantRemember {
				t.Errorf("remember = %v, want %v", remember, tt.wantRemember)
			}
		})
	}
	if got := sess.Scale.String(); got != "1:20" {
		t.Errorf("session scale changed to %q", got)
	}
}
