package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/colour"
)

func newShadesCmd(a *app) *cobra.Command {
	var (
		count  int
		step   float64
		format string
	)

	cmd := &cobra.Command{
		Use:   "shades <hex>",
		Short: "Generate lighter and darker shades of a colour",
		Long: `Generate shades of a colour by moving its HSL lightness up and down
in equal steps while keeping hue and saturation.

Shades are printed darkest to lightest with the base colour in the middle.

Examples:
  figerout shades 808080
  figerout shades --count 2 --step 15 '#FF6B35'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			set, err := colour.GenerateShades(args[0], count, step)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, set)
			}

			sw := a.swatcher(cmd)
			for i, hex := range set.Ramp() {
				rgb := colour.MustParseHex(hex)
				name := colour.Nearest(rgb).Entry.Name
				if i == len(set.Darker) {
					fmt.Fprintln(out, sw.LabelledLine(rgb, name, "base"))
					continue
				}
				fmt.Fprintln(out, sw.Line(rgb, name))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&count, "count", "c", colour.DefaultShadeCount, "number of shades on each side")
	f.Float64Var(&step, "step", colour.DefaultShadeStep, "lightness step between shades, in percent")
	f.StringVarP(&format, "format", "f", formatText, "output format (text, json)")

	return cmd
}
