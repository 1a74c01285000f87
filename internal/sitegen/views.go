package sitegen

import (
	"context"
	"errors"
	"log/slog"

	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/slugs"
	"github.com/matt-dz/silviakaka/internal/store"
)

// HomeLatest is how many recipes the homepage shows, the featured one
// included.
const HomeLatest = 4

type ListingView struct {
	Path string                         `json:"path"`
	Page pagination.Page[recipe.Recipe] `json:"page"`
	// Degraded is set when a malformed filter was dropped.
	Degraded    bool   `json:"degraded,omitempty"`
	FilterError string `json:"filter_error,omitempty"`
}

// Listing returns one page of the default listing, filtered by the legacy
// filter document rawFilters. The first page always exists; later pages
// exist only if they have recipes.
func (g *Generator) Listing(ctx context.Context, page int, rawFilters string) (ListingView, error) {
	if page < 1 {
		return ListingView{}, ErrPageNotFound
	}

	view := ListingView{Path: ListingPath(page)}
	filters, err := query.ParseFilters(rawFilters)
	if err != nil {
		if g.policy == FilterPolicyFail {
			return ListingView{}, err
		}
		g.logger.WarnContext(ctx, "Ignoring malformed listing filter", slog.Any("error", err))
		filters = nil
		view.Degraded = true
		view.FilterError = err.Error()
	}

	view.Page, err = g.source.List(store.ListOptions{Page: page, PageSize: g.pageSize, Filters: filters})
	if err != nil {
		return ListingView{}, err
	}
	if page > 1 && len(view.Page.Items) == 0 {
		return ListingView{}, ErrPageNotFound
	}
	return view, nil
}

type HomeView struct {
	Featured   *recipe.Recipe   `json:"featured"`
	Latest     []recipe.Recipe  `json:"latest"`
	Categories []category.Group `json:"categories"`
}

// Home returns the newest recipe as the featured one, the next few as the
// latest, and a preview of every category.
func (g *Generator) Home() (HomeView, error) {
	page, err := g.source.List(store.ListOptions{Page: 1, PageSize: HomeLatest})
	if err != nil {
		return HomeView{}, err
	}
	groups, err := g.Categories(category.DefaultPreviewLimit)
	if err != nil {
		return HomeView{}, err
	}

	view := HomeView{
		Latest:     []recipe.Recipe{},
		Categories: groups,
	}
	if len(page.Items) > 0 {
		featured := page.Items[0]
		view.Featured = &featured
		view.Latest = page.Items[1:]
	}
	return view, nil
}

type RecipeView struct {
	Recipe recipe.Recipe   `json:"recipe"`
	Others []recipe.Recipe `json:"others"`
	// RedirectTo is set when the slug was a former one; nothing else is.
	RedirectTo string `json:"redirect_to,omitempty"`
}

// RecipePage resolves slug and returns the recipe with up to a page of other
// recipes in storage order.
func (g *Generator) RecipePage(slug string) (RecipeView, error) {
	res, err := g.resolver.Resolve(slug)
	if errors.Is(err, slugs.ErrNotFound) {
		return RecipeView{}, ErrPageNotFound
	} else if err != nil {
		return RecipeView{}, err
	}
	if res.Redirect() {
		return RecipeView{RedirectTo: RecipePath(res.ResolvedSlug)}, nil
	}

	others := []recipe.Recipe{}
	for _, r := range g.source.All() {
		if len(others) == g.pageSize {
			break
		}
		if r.ID != res.Recipe.ID {
			others = append(others, r)
		}
	}
	return RecipeView{Recipe: res.Recipe, Others: others}, nil
}

type CategoryView struct {
	Category category.Descriptor `json:"category"`
	Recipes  []recipe.Recipe     `json:"recipes"`
}

// CategoryPage lists every recipe in the category in storage order.
func (g *Generator) CategoryPage(slug string) (CategoryView, error) {
	d, recipes, err := g.taxonomy.Classifier().RecipesIn(g.source.All(), slug)
	if errors.Is(err, category.ErrNotFound) {
		return CategoryView{}, ErrPageNotFound
	} else if err != nil {
		return CategoryView{}, err
	}
	return CategoryView{Category: d, Recipes: recipes}, nil
}

type PillarView struct {
	Pillar  category.Pillar `json:"pillar"`
	Recipes []recipe.Recipe `json:"recipes"`
}

func (g *Generator) PillarPage(slug string) (PillarView, error) {
	p, ok := g.taxonomy.Pillar(slug)
	if !ok {
		return PillarView{}, ErrPageNotFound
	}
	return PillarView{Pillar: p, Recipes: p.Collect(g.source.All())}, nil
}

// Categories previews every category with up to limit recipes, newest first.
func (g *Generator) Categories(limit int) ([]category.Group, error) {
	all, err := g.newestFirst()
	if err != nil {
		return nil, err
	}
	return g.taxonomy.Classifier().Group(all, limit), nil
}
