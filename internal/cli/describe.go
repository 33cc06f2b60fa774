package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/colour"
	"github.com/figerout/figerout/internal/describe"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		history bool
		model   string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "describe <hex>",
		Short: "Ask an AI model to describe a colour",
		Long: `Ask a Google Gen AI model for a one-sentence description of a colour,
or with --history for a short history of the colour's name.

Requires GOOGLE_API_KEY (Gemini API) or GOOGLE_CLOUD_PROJECT with
` + "`FIGEROUT_GENAI_BACKEND=vertex-ai`" + `.

Examples:
  figerout describe FF6B35
  figerout describe --history 87CEEB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			rgb, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}

			mode := describe.ModeDescribe
			if history {
				mode = describe.ModeHistory
			}

			ctx := cmd.Context()
			desc, err := a.newDescriber(ctx, model).Describe(ctx, describe.Request{
				Hex:  rgb.Hex(),
				Name: colour.Nearest(rgb).Entry.Name,
				Mode: mode,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, desc)
			}
			fmt.Fprintln(out, a.swatcher(cmd).Line(rgb, desc.Name))
			fmt.Fprintln(out, desc.Text)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&history, "history", false, "describe the history of the colour name instead")
	f.StringVar(&model, "model", "", "model to use (default: $FIGEROUT_MODEL or gemini-2.5-flash)")
	f.StringVarP(&format, "format", "f", formatText, "output format (text, json)")

	return cmd
}
