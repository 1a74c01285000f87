package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/search"
)

type SearchResult struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []recipe.Recipe `json:"results"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search recipes by name, description, keywords and ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(e *env.Env) error {
				return runSearch(newFormatter(rootOpts, cmd.OutOrStdout()), e, strings.Join(args, " "))
			})
		},
	}
}

func runSearch(f *formatter, e *env.Env, q string) error {
	results := search.Search(q, e.Store.All())
	res := SearchResult{Query: q, Count: len(results), Results: results}

	return f.Success(res, func(w io.Writer) error {
		if len(results) == 0 {
			_, err := fmt.Fprintf(w, "no recipes match %q\n", q)
			return err
		}
		return writeRecipes(w, results)
	})
}
