package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/sitegen"
)

type pathsOptions struct {
	redirects bool
}

// NewPathsCommand creates the paths command.
func NewPathsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &pathsOptions{}

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print every page path the static build generates",
		Long: `Print the listing, recipe, category and pillar paths of the static site.

The listing pages are walked with the configured page size and their slugs are
cross-checked against the collection. A mismatch fails with exit code 1 so a
build never ships listing pages that link to missing recipe pages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(e *env.Env) error {
				return runPaths(newFormatter(rootOpts, cmd.OutOrStdout()), e, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.redirects, "redirects", false, "also print former slug redirects (text output)")

	return cmd
}

func runPaths(f *formatter, e *env.Env, opts *pathsOptions) error {
	m, err := e.Site.Manifest()
	if err != nil {
		var drift *sitegen.SlugDriftError
		if errors.As(err, &drift) {
			return f.Failure(ExitFailure, err, drift, nil)
		}
		return err
	}

	return f.Success(m, func(w io.Writer) error {
		for _, p := range m.Paths() {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
		if !opts.redirects {
			return nil
		}
		for _, r := range m.Redirects {
			if _, err := fmt.Fprintf(w, "%s -> %s\n", r.From, r.To); err != nil {
				return err
			}
		}
		return nil
	})
}
