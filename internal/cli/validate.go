package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/recipe"
)

var ErrInvalidCollection = errors.New("recipe collection has problems")

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding of validate.
type Problem struct {
	Severity Severity `json:"severity"`
	ID       string   `json:"id,omitempty"`
	Slug     string   `json:"slug,omitempty"`
	Message  string   `json:"message"`
}

type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Recipes  int       `json:"recipes"`
	Problems []Problem `json:"problems"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the recipe collection before a build",
		Long: `Check every recipe record, duplicate ids and slugs, pillar allow-lists and
the listing/recipe slug cross-check. Errors exit with code 1, warnings do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), rootOpts, cmd.ErrOrStderr(), func(e *env.Env) error {
				return runValidate(newFormatter(rootOpts, cmd.OutOrStdout()), e)
			})
		},
	}
}

func runValidate(f *formatter, e *env.Env) error {
	all := e.Store.All()
	problems := checkRecipes(all)

	for _, p := range e.Taxonomy.Pillars {
		for _, slug := range p.Missing(all) {
			problems = append(problems, Problem{
				Severity: SeverityWarning,
				Slug:     slug,
				Message:  fmt.Sprintf("pillar %q lists a slug that is not in the collection", p.Slug),
			})
		}
	}
	if _, err := e.Site.Manifest(); err != nil {
		problems = append(problems, Problem{Severity: SeverityError, Message: err.Error()})
	}

	res := ValidationResult{Valid: true, Recipes: len(all), Problems: problems}
	for _, p := range problems {
		if p.Severity == SeverityError {
			res.Valid = false
		}
	}

	text := func(w io.Writer) error {
		for _, p := range problems {
			if _, err := fmt.Fprintf(w, "%s: %s\n", p.Severity, describe(p)); err != nil {
				return err
			}
		}
		if res.Valid {
			_, err := fmt.Fprintf(w, "ok: %d recipes\n", res.Recipes)
			return err
		}
		return nil
	}

	if !res.Valid {
		return f.Failure(ExitFailure, ErrInvalidCollection, res, text)
	}
	return f.Success(res, text)
}

// checkRecipes validates each record and reports ids and slugs that appear
// more than once. Former slugs that are some other recipe's current slug are
// only warned about since they never produce a redirect.
func checkRecipes(all []recipe.Recipe) []Problem {
	problems := []Problem{}
	ids := make(map[string]struct{}, len(all))
	current := make(map[string]string, len(all))
	for _, r := range all {
		if err := recipe.Validate(r); err != nil {
			problems = append(problems, Problem{Severity: SeverityError, ID: r.ID, Slug: r.Slug, Message: err.Error()})
		}
		if _, ok := ids[r.ID]; ok {
			problems = append(problems, Problem{Severity: SeverityError, ID: r.ID, Slug: r.Slug, Message: "duplicate id"})
		}
		if _, ok := current[r.Slug]; ok {
			problems = append(problems, Problem{Severity: SeverityError, ID: r.ID, Slug: r.Slug, Message: "duplicate slug"})
		}
		ids[r.ID] = struct{}{}
		if _, ok := current[r.Slug]; !ok {
			current[r.Slug] = r.ID
		}
	}

	for _, r := range all {
		for _, former := range r.FormerSlugs {
			if owner, ok := current[former]; ok && owner != r.ID {
				problems = append(problems, Problem{
					Severity: SeverityWarning,
					ID:       r.ID,
					Slug:     r.Slug,
					Message:  fmt.Sprintf("former slug %q is the current slug of %q", former, owner),
				})
			}
		}
	}
	return problems
}

func describe(p Problem) string {
	switch {
	case p.ID != "" && p.Slug != "":
		return fmt.Sprintf("%s (%s): %s", p.ID, p.Slug, p.Message)
	case p.Slug != "":
		return fmt.Sprintf("%s: %s", p.Slug, p.Message)
	}
	return p.Message
}
