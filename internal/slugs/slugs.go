// Package slugs resolves requested recipe slugs, including slugs a recipe
// used before it was renamed.
package slugs

import (
	"errors"

	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/store"
)

var ErrNotFound = errors.New("no recipe uses this slug")

// Lookup is the part of the store the resolver needs.
type Lookup interface {
	GetBySlug(slug string) (recipe.Recipe, error)
	GetByFormerSlug(slug string) (recipe.Recipe, error)
}

var _ Lookup = (*store.Store)(nil)

type Resolution struct {
	Recipe        recipe.Recipe
	RequestedSlug string
	ResolvedSlug  string
}

// Redirect reports whether the caller must permanently redirect to
// ResolvedSlug instead of serving the recipe at RequestedSlug.
func (r Resolution) Redirect() bool {
	return r.RequestedSlug != r.ResolvedSlug
}

type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve checks current slugs first and slug history second.
func (res *Resolver) Resolve(slug string) (Resolution, error) {
	if slug == "" {
		return Resolution{}, ErrNotFound
	}

	r, err := res.lookup.GetBySlug(slug)
	if err == nil {
		return Resolution{Recipe: r, RequestedSlug: slug, ResolvedSlug: r.Slug}, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return Resolution{}, err
	}

	r, err = res.lookup.GetByFormerSlug(slug)
	if errors.Is(err, store.ErrNotFound) {
		return Resolution{}, ErrNotFound
	} else if err != nil {
		return Resolution{}, err
	}
	return Resolution{Recipe: r, RequestedSlug: slug, ResolvedSlug: r.Slug}, nil
}
