package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/colour"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format %q (valid: text, json)", format)
	}
}

// swatcher returns a Swatcher that is enabled only for terminals and when
// --no-colour was not given.
func (a *app) swatcher(cmd *cobra.Command) *colour.Swatcher {
	return colour.NewSwatcher(!a.opts.noColour && a.isTerminal(cmd.OutOrStdout()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// rampLine renders the shades of a set as one line of hex codes, with a strip
// of swatches above it when enabled.
func rampLine(sw *colour.Swatcher, set *colour.ShadeSet) string {
	ramp := set.Ramp()
	var b strings.Builder
	if sw.Enabled {
		rgbs := make([]colour.RGB, len(ramp))
		for i, h := range ramp {
			rgbs[i] = colour.MustParseHex(h)
		}
		b.WriteString(sw.Strip(rgbs))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(ramp, " "))
	return b.String()
}
