package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenesvg/pkg/export"
	sceneio "github.com/matzehuels/scenesvg/pkg/io"
)

// outlineCommand creates the outline command for drawing the hierarchy.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		hidden  bool
	)
	opts := export.OutlineOptions{}

	cmd := &cobra.Command{
		Use:   "outline [scene]",
		Short: "Draw the entity hierarchy of a scene as a graph",
		Long: `Draw the entity hierarchy of a scene with Graphviz.

Each instance path becomes one node, so an instance of a shared definition
appears once per place it is used. Hidden entities are drawn dashed unless
they are left out entirely, which is the default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Wysiwyg = !hidden
			return c.runOutline(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: scene name with .outline.<format>)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", export.FormatSVG, "output format: svg, dot, pdf, png")
	cmd.Flags().BoolVar(&opts.Faces, "faces", false, "include faces")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show kind, layer and material in labels")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden entities, drawn dashed")
	cmd.Flags().IntVar(&opts.MaxDepth, "depth", 0, "maximum depth (0 for unlimited)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runOutline(ctx context.Context, input string, opts export.OutlineOptions, output string, noCache bool) error {
	doc, err := sceneio.Import(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Drawing outline...")
	spinner.Start()
	data, cacheHit, err := runner.Outline(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Outline failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = basePath("", input) + ".outline." + opts.Format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Outline complete")
	printFile(output)
	printStats(0, 0, cacheHit)
	return nil
}
