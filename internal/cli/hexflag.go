package cli

import (
	"github.com/spf13/pflag"

	"github.com/figerout/figerout/internal/colour"
)

// hexValue is a pflag.Value holding a normalised "#RRGGBB" colour.
type hexValue struct {
	rgb colour.RGB
	set bool
}

var _ pflag.Value = (*hexValue)(nil)

func (h *hexValue) String() string {
	if !h.set {
		return ""
	}
	return h.rgb.Hex()
}

func (h *hexValue) Set(s string) error {
	rgb, err := colour.ParseHex(s)
	if err != nil {
		return err
	}
	h.rgb = rgb
	h.set = true
	return nil
}

func (h *hexValue) Type() string {
	return "hex"
}
