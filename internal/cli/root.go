// Package cli implements silviakakactl, the command line tool the static site
// build runs to enumerate pages and inspect the recipe collection.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds the global flags.
type RootOptions struct {
	Format       string // "json" | "text"
	File         string
	Taxonomy     string
	PageSize     int
	FilterPolicy string
	Verbose      bool
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the silviakakactl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "silviakakactl",
		Short: "Inspect the recipe collection and enumerate static pages",
		Long: `silviakakactl reads the recipe collection the API serves and prints what the
static site build needs: the paths to generate, listing pages, search results,
slug resolutions and category previews.

By default the collection is opened from the service configuration. Pass
--file to read a recipe document directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVarP(&opts.File, "file", "f", "", "read recipes from this JSON document instead of the configured backend")
	flags.StringVar(&opts.Taxonomy, "taxonomy", "", "category and pillar YAML file (default: built-in taxonomy)")
	flags.IntVar(&opts.PageSize, "page-size", 0, "listing page size (default: configured page size)")
	flags.StringVar(&opts.FilterPolicy, "filter-policy", "", "what listings do with malformed filters (fail|degrade)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(NewPathsCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}
