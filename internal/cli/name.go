package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/colour"
)

type nameResult struct {
	Input    string  `json:"input"`
	Hex      string  `json:"hex,omitempty"`
	Name     string  `json:"name"`
	Exact    bool    `json:"exact"`
	Distance float64 `json:"distance"`
	Error    string  `json:"error,omitempty"`
}

func newNameCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "name <hex>...",
		Short: "Name colours by their nearest reference colour",
		Long: `Print the nearest named colour for each hex code.

Hex codes are six digits with or without a leading '#', in any case.
Malformed codes print "Unknown" and make the command exit non-zero.

Examples:
  figerout name FF0000 '#fe0000' 2e3192
  figerout name -f json 87ceeb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			results := make([]nameResult, 0, len(args))
			failed := 0
			for _, arg := range args {
				rgb, err := colour.ParseHex(arg)
				if err != nil {
					failed++
					a.logger.Debug("cannot name colour", "input", arg, "error", err)
					results = append(results, nameResult{Input: arg, Name: colour.UnknownName, Error: err.Error()})
					continue
				}
				m := colour.Nearest(rgb)
				results = append(results, nameResult{
					Input:    arg,
					Hex:      rgb.Hex(),
					Name:     m.Entry.Name,
					Exact:    m.Exact,
					Distance: m.Distance,
				})
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				sw := a.swatcher(cmd)
				for _, r := range results {
					if r.Error != "" {
						fmt.Fprintf(out, "%s  %s\n", r.Input, r.Name)
						continue
					}
					fmt.Fprintln(out, sw.Line(colour.MustParseHex(r.Hex), r.Name))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d colours could not be named: %w", failed, len(args), colour.ErrMalformedColour)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	return cmd
}
