package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/export"
	sceneio "github.com/matzehuels/scenesvg/pkg/io"
	"github.com/matzehuels/scenesvg/pkg/scale"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/session"
)

// exportFlags holds the command-line flags for the export command.
type exportFlags struct {
	output     string
	scale      string
	prompt     bool
	selection  []string
	all        bool
	hidden     bool
	order      string
	formats    string
	precision  int
	title      string
	ids        bool
	noCache    bool
	noRemember bool

	// precisionSet is true when --precision was given, so 0 is honored.
	precisionSet bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "Export a scene as a scaled top-view drawing",
		Long: `Export a scene file (JSON or TOML) as a top-view drawing.

Faces are projected onto the ground plane, painted from the lowest up, and
written as SVG paths in millimeters. PDF and PNG are converted from the SVG.

The scale comes from --scale, the interactive prompt (--prompt), the config
file, or the scale used last, in that order. A valid scale given on the
command line or in the prompt is remembered for the next export.`,
		Example: `  scenesvg export house.json --scale 1:50
  scenesvg export house.toml --prompt -f svg,pdf -o plans/house
  scenesvg export house.json --select floor,room --order document`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.precisionSet = cmd.Flags().Changed("precision")
			return c.runExport(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.scale, "scale", "s", "", `drawing scale, e.g. "1:50", "2%", "1 cm = 1 m"`)
	cmd.Flags().BoolVarP(&flags.prompt, "prompt", "p", false, "ask for the scale interactively")
	cmd.Flags().StringSliceVar(&flags.selection, "select", nil, "top-level entity IDs to export (comma-separated)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "export every entity, ignoring the scene's selection")
	cmd.Flags().BoolVar(&flags.hidden, "hidden", false, "include hidden entities and entities on hidden layers")
	cmd.Flags().StringVar(&flags.order, "order", "", "paint order: minz (default), document")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), pdf, png (comma-separated)")
	cmd.Flags().IntVar(&flags.precision, "precision", 0, "decimal places for coordinates, 0 for whole millimeters (default 3)")
	cmd.Flags().StringVar(&flags.title, "title", "", "SVG title")
	cmd.Flags().BoolVar(&flags.ids, "ids", false, "write instance paths as SVG ids")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.noRemember, "no-remember", false, "do not remember the scale for the next export")
	cmd.MarkFlagsMutuallyExclusive("scale", "prompt")
	cmd.MarkFlagsMutuallyExclusive("select", "all")

	return cmd
}

// runExport loads the scene, settles the scale, exports, and writes files.
func (c *CLI) runExport(ctx context.Context, input string, flags exportFlags) error {
	prog := newProgress(loggerFromContext(ctx))
	doc, err := sceneio.Import(input)
	if err != nil {
		return err
	}
	prog.done("Loaded "+filepath.Base(input), "entities", len(doc.Roots), "units", doc.Units)

	opts, err := c.exportOptions(doc, flags)
	if err != nil {
		return err
	}

	store, err := c.newSessionStore(ctx)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()
	sess, err := session.LoadOrNew(ctx, store, session.DefaultID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	remember, err := c.chooseScale(ctx, sess, flags, &opts)
	if errors.Is(err, errPromptCancelled) {
		printInfo("Export cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Exporting...")
	spinner.Start()
	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return fmt.Errorf("export: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, flags.output)
	if err != nil {
		return err
	}

	if remember && !flags.noRemember {
		sess.SetScale(opts.Scale)
	}
	sess.RecordExport(input)
	if err := store.Set(ctx, sess); err != nil {
		printWarning("Could not remember the scale: %v", err)
	}

	printSuccess("Export complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Faces, result.Stats.Skipped, result.CacheHit)
	printKeyValue("Scale", opts.Scale.String())
	if !result.CacheHit {
		printKeyValue("Size", fmt.Sprintf("%s × %s mm", formatMM(result.Width), formatMM(result.Height)))
	}
	return nil
}

// exportOptions merges config defaults and flags.
func (c *CLI) exportOptions(doc *scene.Document, flags exportFlags) (export.Options, error) {
	opts := c.Config.Export.exportOptions()
	opts.Logger = c.Logger
	opts.Title = flags.title
	opts.IDs = flags.ids

	if flags.formats != "" {
		opts.Formats = export.ParseFormats(flags.formats)
	}
	if flags.order != "" {
		opts.Order = flags.order
	}
	if flags.precisionSet {
		opts.Precision = export.Decimals(flags.precision)
	}
	if flags.hidden {
		wysiwyg := false
		opts.Wysiwyg = &wysiwyg
	}
	switch {
	case flags.all:
		for _, n := range doc.Roots {
			opts.Selection = append(opts.Selection, n.ID)
		}
	case len(flags.selection) > 0:
		opts.Selection = flags.selection
	}

	opts.SetDefaults()
	if err := export.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	if err := export.ValidateOrder(opts.Order); err != nil {
		return opts, err
	}
	return opts, nil
}

// chooseScale sets opts.Scale and reports whether the choice should be
// remembered. An invalid scale is an error and leaves the session alone.
func (c *CLI) chooseScale(ctx context.Context, sess *session.Session, flags exportFlags, opts *export.Options) (bool, error) {
	switch {
	case flags.scale != "":
		s := scale.Parse(flags.scale)
		if !s.Valid() {
			return false, apperrors.Wrap(apperrors.ErrCodeInvalidScale, scale.ErrInvalid, "%q is not a valid scale", flags.scale)
		}
		opts.Scale = s
		return true, nil
	case flags.prompt:
		s, err := promptScale(ctx, sess.Scale)
		if err != nil {
			return false, err
		}
		opts.Scale = s
		return true, nil
	case c.Config.Export.Scale != "":
		s := scale.Parse(c.Config.Export.Scale)
		if !s.Valid() {
			return false, apperrors.Wrap(apperrors.ErrCodeInvalidScale, scale.ErrInvalid, "config export.scale %q", c.Config.Export.Scale)
		}
		opts.Scale = s
		return false, nil
	default:
		opts.Scale = sess.Scale
		return false, nil
	}
}

// writeArtifacts writes each format next to the input, or to output.
// With one format, output is the file name; with several it is a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := outputPath(input, output, format, len(formats) > 1)
		if err := apperrors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file name for one format.
func outputPath(input, output, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if export.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func formatMM(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
