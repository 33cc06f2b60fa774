package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatcher renders 24-bit ANSI colour swatches. When Enabled is false every
// method degrades to plain text so output stays readable in pipes and files.
type Swatcher struct {
	Enabled bool
	Width   int
}

// NewSwatcher creates a Swatcher with the default block width.
func NewSwatcher(enabled bool) *Swatcher {
	return &Swatcher{Enabled: enabled, Width: defaultWidth}
}

func (s *Swatcher) width() int {
	if s.Width <= 0 {
		return defaultWidth
	}
	return s.Width
}

// Block returns a solid block of the colour, or an empty string when disabled.
func (s *Swatcher) Block(c RGB) string {
	if !s.Enabled {
		return ""
	}
	return bg(c) + strings.Repeat(" ", s.width()) + ansiReset
}

// Label renders text centred on the colour, using black or white text
// whichever contrasts more.
func (s *Swatcher) Label(c RGB, text string) string {
	if !s.Enabled {
		return text
	}

	w := s.width()
	display := text
	if len(display) > w {
		display = display[:w]
	} else if len(display) < w {
		padding := (w - len(display)) / 2
		display = strings.Repeat(" ", padding) + display + strings.Repeat(" ", w-len(display)-padding)
	}

	return bg(c) + fg(ReadableText(c)) + display + ansiReset
}

// Line formats a swatch followed by the hex code and an optional name.
func (s *Swatcher) Line(c RGB, name string) string {
	var b strings.Builder
	if s.Enabled {
		b.WriteString(s.Block(c))
		b.WriteString(" ")
	}
	b.WriteString(c.Hex())
	if name != "" {
		fmt.Fprintf(&b, "  %s", name)
	}
	return b.String()
}

// LabelledLine is Line with label printed on the swatch. When disabled the
// label follows the name in parentheses.
func (s *Swatcher) LabelledLine(c RGB, name, label string) string {
	if !s.Enabled {
		return s.Line(c, name) + "  (" + label + ")"
	}

	var b strings.Builder
	b.WriteString(s.Label(c, label))
	b.WriteString(" ")
	b.WriteString(c.Hex())
	if name != "" {
		fmt.Fprintf(&b, "  %s", name)
	}
	return b.String()
}

// Strip renders a row of adjacent blocks, one per colour.
func (s *Swatcher) Strip(colours []RGB) string {
	if !s.Enabled {
		return ""
	}
	var b strings.Builder
	for _, c := range colours {
		b.WriteString(bg(c))
		b.WriteString(strings.Repeat(" ", s.width()/2+1))
	}
	b.WriteString(ansiReset)
	return b.String()
}

func bg(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func fg(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}
