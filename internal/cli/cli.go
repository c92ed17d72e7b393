// Package cli implements the cinegraph command-line interface.
//
// # Commands
//
//   - export: load a TOML catalog and write it as JSON, XML, DOT or SVG
//   - demo: write the built-in reference catalog
//   - inspect: validate a catalog and print graph statistics
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Flag defaults come from CINEGRAPH_* environment variables and an optional
// dotenv file (see internal/config). Flags given on the command line win.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and pipeline events are logged through
// observability hooks.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cinegraph/internal/config"
	"github.com/matzehuels/cinegraph/pkg/buildinfo"
	"github.com/matzehuels/cinegraph/pkg/observability"
	"github.com/matzehuels/cinegraph/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "cinegraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	out     io.Writer
	envFile string
	verbose bool
}

// New creates a new CLI instance. Log output goes to w; command output goes
// to stdout unless changed with SetOutput.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "cinegraph exports movie catalogs as JSON and XML",
		Long:              `cinegraph loads a movie catalog (movies, people, users and their comments, favorites and watchlists) and serializes the reference graph to JSON, XML or a Graphviz diagram.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file with CINEGRAPH_* defaults (default .env if present)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration, applies the log level and registers the
// logging hooks before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	hooks := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(hooks)
	observability.SetOutputHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// exportFlags holds the flags shared by export and demo.
type exportFlags struct {
	output   string
	formats  string
	name     string
	strict   bool
	detailed bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (default $CINEGRAPH_OUTPUT_DIR or .)")
	cmd.Flags().StringVarP(&f.formats, "formats", "f", "", "comma-separated formats: json, xml, dot, svg (default $CINEGRAPH_FORMATS or json,xml)")
	cmd.Flags().StringVarP(&f.name, "name", "n", pipeline.DefaultBaseName, "base file name for artifacts")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "require every comment author to be a registered user")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "include movie and user details in dot/svg labels")
}

// options merges explicitly set flags over the loaded configuration.
func (f *exportFlags) options(cmd *cobra.Command, cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		BaseName: f.name,
		Detailed: f.detailed,
	}
	if cfg != nil {
		opts.OutputDir = cfg.OutputDir
		opts.Formats = cfg.Formats
		opts.Strict = cfg.Strict
	}
	if cmd.Flags().Changed("output") {
		opts.OutputDir = f.output
	}
	if cmd.Flags().Changed("formats") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if cmd.Flags().Changed("strict") {
		opts.Strict = f.strict
	}
	return opts
}
