package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/sitegen"
	"github.com/matt-dz/silviakaka/internal/slugs"
)

type ResolveResult struct {
	Requested string `json:"requested"`
	Resolved  string `json:"resolved"`
	ID        string `json:"id"`
	Redirect  bool   `json:"redirect"`
	Path      string `json:"path"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Resolve a current or former slug to its recipe",
		Long: `Resolve a slug the way recipe pages do. Current slugs are matched first, then
former slugs. A former slug reports the path it permanently redirects to.
An unknown slug exits with code 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(e *env.Env) error {
				return runResolve(newFormatter(rootOpts, cmd.OutOrStdout()), e, args[0])
			})
		},
	}
}

func runResolve(f *formatter, e *env.Env, slug string) error {
	res, err := e.Resolver.Resolve(slug)
	if errors.Is(err, slugs.ErrNotFound) {
		return f.Failure(ExitFailure, fmt.Errorf("%q: %w", slug, err), nil, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s: not found\n", slug)
			return err
		})
	} else if err != nil {
		return err
	}

	out := ResolveResult{
		Requested: res.RequestedSlug,
		Resolved:  res.ResolvedSlug,
		ID:        res.Recipe.ID,
		Redirect:  res.Redirect(),
		Path:      sitegen.RecipePath(res.ResolvedSlug),
	}
	return f.Success(out, func(w io.Writer) error {
		if out.Redirect {
			_, err := fmt.Fprintf(w, "%s -> %s (301)\n", sitegen.RecipePath(out.Requested), out.Path)
			return err
		}
		_, err := fmt.Fprintln(w, out.Path)
		return err
	})
}
