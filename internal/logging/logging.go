// Package logging builds the hclog loggers used across Figerout.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options controls logger construction.
type Options struct {
	// Name is the root logger name.
	Name string

	// Verbose enables debug output. Quiet restricts output to errors.
	// Verbose wins if both are set.
	Verbose bool
	Quiet   bool

	// JSON switches to JSON lines, for running behind a log collector.
	JSON bool

	// Output defaults to os.Stderr so stdout stays free for results.
	Output io.Writer
}

// Level returns the hclog level selected by the options.
func (o Options) Level() hclog.Level {
	switch {
	case o.Verbose:
		return hclog.Debug
	case o.Quiet:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// New creates a root logger.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	name := opts.Name
	if name == "" {
		name = "figerout"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Output:     out,
		Level:      opts.Level(),
		JSONFormat: opts.JSON,
		Color:      hclog.AutoColor,
	})
}
