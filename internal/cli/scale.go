package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/scale"
)

// scaleInfo is the --json output of the scale command.
type scaleInfo struct {
	Input      string  `json:"input"`
	Factor     float64 `json:"factor"`
	Formatted  string  `json:"formatted"`
	Provenance string  `json:"provenance"`
	Rounded    string  `json:"rounded,omitempty"`
}

// scaleCommand creates the scale command for checking scale input.
func (c *CLI) scaleCommand() *cobra.Command {
	var (
		round    string
		extended bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "scale [text]",
		Short: "Parse and round a drawing scale",
		Long: `Parse a drawing scale the way the export command does and print its factor.

Accepted forms are a decimal factor ("0.02"), a percentage ("2%"), a ratio
("1:50" or "1/50"), and an equation of lengths ("1 cm = 50 cm", "1\" = 8'").
With --round, the scale is also snapped to a conventional drafting scale.`,
		Example: `  scenesvg scale 1:47 --round nearest
  scenesvg scale "1 cm = 3 m" --round down --extended`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scale.Parse(args[0])
			if !s.Valid() {
				return apperrors.Wrap(apperrors.ErrCodeInvalidScale, scale.ErrInvalid, "%q is not a valid scale", args[0])
			}

			info := scaleInfo{
				Input:      args[0],
				Factor:     s.MustFactor(),
				Provenance: s.Provenance().String(),
			}
			info.Formatted, _ = s.Format()

			if cmd.Flags().Changed("round") {
				dir, ok := scale.ParseDirection(round)
				if !ok {
					return apperrors.New(apperrors.ErrCodeInvalidArgument, "invalid round direction %q (must be one of: nearest, down, up)", round)
				}
				target := scale.CommonTargets
				if extended {
					target = scale.ExtendedTargets
				}
				info.Rounded, _ = s.Round(target, dir).Format()
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			printKeyValue("Factor", strconv.FormatFloat(info.Factor, 'g', -1, 64))
			printKeyValue("Scale", info.Formatted)
			if info.Rounded != "" {
				printKeyValue("Rounded", StyleHighlight.Render(info.Rounded))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&round, "round", "nearest", "round to a drafting scale: nearest, down, up")
	cmd.Flags().BoolVar(&extended, "extended", false, "round to the extended scale series (1:30, 1:40, 1:80...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
