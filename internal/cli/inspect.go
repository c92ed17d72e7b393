package cli

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cinegraph/pkg/catalog"
	"github.com/matzehuels/cinegraph/pkg/cinema"
	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
	"github.com/matzehuels/cinegraph/pkg/resolve"
)

// inspectCommand creates the inspect command for validating a catalog.
func (c *CLI) inspectCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect <catalog.toml>",
		Short: "Validate a catalog and print graph statistics",
		Long: `Load a TOML catalog, report every problem that would make an export fail,
and print a summary of the graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("strict") && c.Config != nil {
				strict = c.Config.Strict
			}
			return c.runInspect(cat, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "require every comment author to be a registered user")
	return cmd
}

func (c *CLI) runInspect(cat *cinema.Cinema, strict bool) error {
	var opts []resolve.Option
	if strict {
		opts = append(opts, resolve.WithStrictAuthors())
	}

	if err := resolve.Validate(cat, opts...); err != nil {
		problems := flatten(err)
		for _, p := range problems {
			printError(c.out, "%s", cerrors.UserMessage(p))
		}
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "%s has %d problem(s)", cat.Name, len(problems))
	}

	movies := cat.Catalog()
	users := cat.Users()

	directors := lo.Uniq(lo.FilterMap(movies, func(m *cinema.Movie, _ int) (string, bool) {
		if m.Director == nil {
			return "", false
		}
		return m.Director.Name, true
	}))
	actors := lo.Uniq(lo.FlatMap(movies, func(m *cinema.Movie, _ int) []string {
		return lo.Map(m.Actors(), func(a *cinema.Actor, _ int) string { return a.Name })
	}))
	comments := lo.SumBy(movies, func(m *cinema.Movie) int { return len(m.Comments()) })
	favorites := lo.SumBy(users, func(u *cinema.User) int { return u.Favorites().Len() })
	watchlist := lo.SumBy(users, func(u *cinema.User) int { return u.Watchlist().Len() })

	printTitle(c.out, cat.Name)
	printKeyValue(c.out, "Movies", strconv.Itoa(len(movies)))
	printKeyValue(c.out, "Users", strconv.Itoa(len(users)))
	printKeyValue(c.out, "Directors", strconv.Itoa(len(directors)))
	printKeyValue(c.out, "Actors", strconv.Itoa(len(actors)))
	printKeyValue(c.out, "Comments", strconv.Itoa(comments))
	printKeyValue(c.out, "Favorites", strconv.Itoa(favorites))
	printKeyValue(c.out, "Watchlist", strconv.Itoa(watchlist))

	for _, m := range movies {
		line := m.Title
		if m.ReleaseYear > 0 {
			line += fmt.Sprintf(" (%d)", m.ReleaseYear)
		}
		printKeyValue(c.out, "Movie", line)
		printStats(c.out,
			stat{"actor", len(m.Actors())},
			stat{"comment", len(m.Comments())})
	}

	// Favorites and watchlist entries may point outside the catalog; the
	// encoders write them by title, which readers cannot resolve.
	inCatalog := lo.SliceToMap(movies, func(m *cinema.Movie) (*cinema.Movie, bool) { return m, true })
	for _, u := range users {
		for _, m := range append(u.Favorites().Movies(), u.Watchlist().Movies()...) {
			if !inCatalog[m] {
				printWarning(c.out, "%s references %q, which is not in the catalog", u.Username, m.Title)
			}
		}
	}
	return nil
}

// flatten expands errors.Join trees into their leaves.
func flatten(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	return lo.FlatMap(joined.Unwrap(), func(e error, _ int) []error { return flatten(e) })
}
