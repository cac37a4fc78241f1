package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	sceneio "github.com/matzehuels/scenesvg/pkg/io"
	"github.com/matzehuels/scenesvg/pkg/render"
	"github.com/matzehuels/scenesvg/pkg/resolve"
	"github.com/matzehuels/scenesvg/pkg/scene"
	"github.com/matzehuels/scenesvg/pkg/traverse"
)

// inspectCommand creates the inspect command, which lists instance paths.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		faces  bool
		hidden bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "List the instance paths of a scene",
		Long: `List every instance path of a scene in traversal order, with the
resolved visibility, material, and face color of each.

Shared definitions appear once per place they are used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sceneio.Import(args[0])
			if err != nil {
				return err
			}
			rows := inspectRows(doc, faces, !hidden, limit)

			bounds := scene.Bounds(doc.Selected())
			printKeyValue("Units", doc.Units.String())
			printKeyValue("Entities", fmt.Sprintf("%d (%d selected)", len(doc.Roots), len(doc.Selected())))
			if !bounds.IsEmpty() {
				printKeyValue("Extent", fmt.Sprintf("%s × %s %s",
					render.FormatLength(bounds.Width(), 2), render.FormatLength(bounds.Height(), 2), doc.Units))
			}
			printNewline()
			fmt.Fprintln(stdout, pathTable(rows))
			if limit > 0 && len(rows) == limit {
				printDetail("showing the first %d paths", limit)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&faces, "faces", false, "include faces")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden entities")
	cmd.Flags().IntVar(&limit, "limit", 200, "maximum number of paths to list (0 for all)")

	return cmd
}

// inspectRows walks doc and returns one table row per path.
func inspectRows(doc *scene.Document, faces, wysiwyg bool, limit int) [][]string {
	var rows [][]string
	for p := range traverse.Paths(doc.Roots, wysiwyg) {
		n := p.Leaf()
		if n.IsFace() && !faces {
			continue
		}
		material := "—"
		if m := resolve.Material(p); m != nil {
			material = m.Name
		}
		visible := "✓"
		if !resolve.Visibility(p) {
			visible = ""
		}
		color := ""
		if n.IsFace() {
			color = render.FormatColor(resolve.Color(p, doc))
		}
		indent := strings.Repeat("  ", p.Len()-1)
		rows = append(rows, []string{indent + n.Label(), n.Kind().String(), visible, material, color})
		if limit > 0 && len(rows) >= limit {
			break
		}
	}
	return rows
}

func pathTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Entity", "Kind", "Visible", "Material", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if rows[row][2] == "" {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
