package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenesvg/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "scenesvg flattens 3D scenes into top-view SVG drawings",
		Long: `scenesvg is a CLI tool for exporting hierarchical 3D scenes as scaled
top-view drawings. Faces are projected onto the ground plane, painted from the
lowest up, and written as SVG paths in millimeters.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.LoadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/scenesvg/config.toml)")

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
