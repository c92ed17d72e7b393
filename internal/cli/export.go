package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cinegraph/pkg/catalog"
	"github.com/matzehuels/cinegraph/pkg/cinema"
)

// exportCommand creates the export command for serializing a catalog file.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <catalog.toml>",
		Short: "Serialize a catalog to JSON, XML, DOT or SVG",
		Long: `Load a TOML catalog and write it in each requested format.

The whole graph is validated before anything is written. A movie without a
director, or any other missing reference, fails the export and no file is
created. Each file is written atomically.`,
		Example: `  # JSON and XML next to each other in ./out
  cinegraph export catalog.toml -o out

  # Graph diagram only
  cinegraph export catalog.toml -f svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.Debug("loading catalog", "path", args[0])
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			return c.runExport(cmd, cat, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runExport encodes cat with the merged options and writes every artifact.
func (c *CLI) runExport(cmd *cobra.Command, cat *cinema.Cinema, flags exportFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	opts := flags.options(cmd, c.Config)
	runner := c.newRunner()

	result, err := runner.Execute(ctx, cat, opts)
	if err != nil {
		return err
	}
	paths, err := runner.Write(ctx, result, opts)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	prog.done(fmt.Sprintf("Exported %s", cat.Name))

	printSuccess(c.out, "Exported %s", StyleValue.Render(cat.Name))
	for _, p := range paths {
		printFile(c.out, p)
	}
	printStats(c.out,
		stat{"movie", result.Stats.Movies},
		stat{"user", result.Stats.Users},
		stat{"comment", result.Stats.Comments})
	return nil
}

// demoCommand creates the demo command that exports the built-in catalog.
func (c *CLI) demoCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Export the built-in reference catalog",
		Long: `Write the built-in reference catalog: the cinema "Kinoteka" with the movie
"Drive", its director and lead actor, and two users who comment on it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.runExport(cmd, catalog.Demo(), flags); err != nil {
				return err
			}
			opts := flags.options(cmd, c.Config)
			printNextStep(c.out, "Draw the reference graph", fmt.Sprintf("%s demo -f svg -o %s", appName, filepath.Clean(opts.OutputDir)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
