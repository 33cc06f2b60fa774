// Package cli provides the command-line interface for Figerout.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/figerout/figerout/internal/config"
	"github.com/figerout/figerout/internal/describe"
	"github.com/figerout/figerout/internal/logging"
	"github.com/figerout/figerout/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose   bool
	quiet     bool
	noColour  bool
	envFile   string
	dbPath    string
	logFormat string
}

// app carries state resolved once per invocation in PersistentPreRunE.
type app struct {
	opts   globalOptions
	cfg    *config.Config
	logger hclog.Logger

	// newGenerator builds the text model client; replaced in tests.
	newGenerator func(ctx context.Context, cfg config.GenAIConfig, logger hclog.Logger) (describe.Generator, error)

	// isTerminal reports whether w is an interactive terminal.
	isTerminal func(w io.Writer) bool
}

func newApp() *app {
	return &app{
		logger:       hclog.NewNullLogger(),
		newGenerator: geminiGenerator,
		isTerminal:   isTerminal,
	}
}

func geminiGenerator(ctx context.Context, cfg config.GenAIConfig, logger hclog.Logger) (describe.Generator, error) {
	g, err := describe.NewGemini(ctx, describe.GeminiConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Backend:  cfg.Backend,
		Project:  cfg.Project,
		Location: cfg.Location,
	}, logger)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRootCmd builds the figerout command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "figerout",
		Short: "Pick, name and explore colours from images",
		Long: `Figerout picks colours from photos and names them.

Point at a pixel of an image to get its hex code and the nearest named
colour, generate lighter and darker shades, ask an AI model to describe
a colour, and keep a collection of the colours you like.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.opts.quiet, "quiet", "q", false, "suppress non-error output")
	flags.BoolVar(&a.opts.noColour, "no-colour", false, "disable colour swatches in output")
	flags.StringVar(&a.opts.envFile, "env-file", ".env", "file of KEY=value settings loaded before the environment")
	flags.StringVar(&a.opts.dbPath, "db", "", "path to the collection database (default: $"+config.EnvDBPath+" or user config dir)")
	flags.StringVar(&a.opts.logFormat, "log-format", "text", "log format on stderr (text, json)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPickCmd(a),
		newNameCmd(a),
		newShadesCmd(a),
		newDescribeCmd(a),
		newCollectionCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.logFormat != "text" && a.opts.logFormat != "json" {
		return fmt.Errorf("invalid log format %q (expected text or json)", a.opts.logFormat)
	}

	cfg, err := config.Load(a.opts.envFile)
	if err != nil {
		return err
	}
	if a.opts.dbPath != "" {
		cfg.DBPath = a.opts.dbPath
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Options{
		Verbose: a.opts.verbose,
		Quiet:   a.opts.quiet,
		JSON:    a.opts.logFormat == "json",
		Output:  cmd.ErrOrStderr(),
	})
	a.logger.Debug("configuration loaded", "db", cfg.DBPath, "model", cfg.GenAI.Model, "backend", cfg.GenAI.Backend)
	return nil
}

// newDescriber returns a describer. When the model cannot be configured the
// returned client reports describe.ErrUnavailable on use.
func (a *app) newDescriber(ctx context.Context, model string) describe.Describer {
	genCfg := a.cfg.GenAI
	if model != "" {
		genCfg.Model = model
	}

	var gen describe.Generator
	if genCfg.Enabled() {
		g, err := a.newGenerator(ctx, genCfg, a.logger.Named("describe"))
		if err != nil {
			a.logger.Warn("colour descriptions disabled", "error", err)
		} else {
			gen = g
		}
	}
	return describe.NewClient(gen, describe.Options{Logger: a.logger.Named("describe")})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
