package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/store"
)

type listOptions struct {
	page      int
	limit     int
	filter    string
	orderBy   string
	direction string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the recipe listing",
		Long: `Print one page of recipes, filtered and sorted the way the listing API does.

--filter takes the JSON filter object, for example
  {"recipeCategory":{"type":"contains","filter":"kladdkaka"}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(e *env.Env) error {
				return runList(newFormatter(rootOpts, cmd.OutOrStdout()), e, opts)
			})
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "recipes per page (default: listing page size)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "JSON filter object")
	cmd.Flags().StringVar(&opts.orderBy, "order-by", "", "sort field (default: datePublished)")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "sort direction (asc|desc)")

	return cmd
}

func runList(f *formatter, e *env.Env, opts *listOptions) error {
	filters, err := query.ParseFilters(opts.filter)
	if err != nil {
		return f.Failure(ExitCommandError, err, nil, nil)
	}
	direction, err := query.ParseDirection(opts.direction)
	if err != nil {
		return f.Failure(ExitCommandError, err, nil, nil)
	}
	limit := opts.limit
	if limit == 0 {
		limit = e.Site.PageSize()
	}

	page, err := e.Store.List(store.ListOptions{
		Page:      opts.page,
		PageSize:  limit,
		Filters:   filters,
		OrderBy:   opts.orderBy,
		Direction: direction,
	})
	if errors.Is(err, query.ErrMalformedFilter) || errors.Is(err, pagination.ErrInvalidPage) {
		return f.Failure(ExitCommandError, err, nil, nil)
	} else if err != nil {
		return err
	}

	return f.Success(page, func(w io.Writer) error {
		if err := writeRecipes(w, page.Items); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "page %d of %d, %d recipes\n", page.CurrentPage, page.PageCount, page.TotalCount)
		return err
	})
}

// writeRecipes prints one aligned line per recipe.
func writeRecipes(w io.Writer, recipes []recipe.Recipe) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range recipes {
		date := r.DatePublished
		if date == "" {
			date = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Slug, r.Name, date); err != nil {
			return err
		}
	}
	return tw.Flush()
}
