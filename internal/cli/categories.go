package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/env"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print every category with a preview of its newest recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(e *env.Env) error {
				return runCategories(newFormatter(rootOpts, cmd.OutOrStdout()), e, limit)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", category.DefaultPreviewLimit, "recipes per category")

	return cmd
}

func runCategories(f *formatter, e *env.Env, limit int) error {
	if limit < 1 {
		return f.Failure(ExitCommandError, fmt.Errorf("limit must be at least 1, got %d", limit), nil, nil)
	}
	groups, err := e.Site.Categories(limit)
	if err != nil {
		return err
	}

	return f.Success(groups, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, g := range groups {
			slugs := make([]string, len(g.Recipes))
			for i, r := range g.Recipes {
				slugs[i] = r.Slug
			}
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%v\n", g.Category.Slug, g.Category.CanonicalName(), slugs); err != nil {
				return err
			}
		}
		return tw.Flush()
	})
}
