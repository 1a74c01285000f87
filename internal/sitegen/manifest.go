package sitegen

import (
	"github.com/matt-dz/silviakaka/internal/store"
)

type ListingPage struct {
	Page  int      `json:"page"`
	Path  string   `json:"path"`
	Slugs []string `json:"slugs"`
}

type Redirect struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Permanent bool   `json:"permanent"`
}

// Manifest is every path the static build has to generate.
type Manifest struct {
	Listing    []ListingPage `json:"listing"`
	Recipes    []string      `json:"recipes"`
	Categories []string      `json:"categories"`
	Pillars    []string      `json:"pillars"`
	Redirects  []Redirect    `json:"redirects"`
}

// Paths flattens the manifest into one list of page paths.
func (m Manifest) Paths() []string {
	var paths []string
	for _, l := range m.Listing {
		paths = append(paths, l.Path)
	}
	paths = append(paths, m.Recipes...)
	paths = append(paths, m.Categories...)
	paths = append(paths, m.Pillars...)
	return paths
}

// Manifest walks every page of the default listing and checks that the
// slugs it enumerates are exactly the slugs recipe pages are generated for,
// each claimed by one recipe.
func (g *Generator) Manifest() (Manifest, error) {
	m := Manifest{
		Listing:    []ListingPage{},
		Recipes:    []string{},
		Categories: []string{},
		Pillars:    []string{},
		Redirects:  []Redirect{},
	}

	var listed []string
	for page, pageCount := 1, 1; page <= pageCount; page++ {
		p, err := g.source.List(store.ListOptions{Page: page, PageSize: g.pageSize})
		if err != nil {
			return Manifest{}, err
		}
		pageCount = p.PageCount

		lp := ListingPage{Page: page, Path: ListingPath(page), Slugs: []string{}}
		for _, r := range p.Items {
			lp.Slugs = append(lp.Slugs, r.Slug)
		}
		listed = append(listed, lp.Slugs...)
		m.Listing = append(m.Listing, lp)
	}

	current := g.source.Slugs()
	onlyListed := difference(listed, slugSet(current))
	onlyStored := difference(current, slugSet(listed))
	dups := duplicates(current)
	if len(onlyListed) > 0 || len(onlyStored) > 0 || len(dups) > 0 {
		return Manifest{}, &SlugDriftError{OnlyInListing: onlyListed, OnlyInStore: onlyStored, Duplicates: dups}
	}

	for _, slug := range current {
		m.Recipes = append(m.Recipes, RecipePath(slug))
	}
	for _, d := range g.taxonomy.Categories {
		m.Categories = append(m.Categories, CategoryPath(d.Slug))
	}
	for _, p := range g.taxonomy.Pillars {
		m.Pillars = append(m.Pillars, PillarPath(p.Slug))
	}

	live := slugSet(current)
	seen := make(map[string]struct{})
	for _, r := range g.source.All() {
		for _, former := range r.FormerSlugs {
			if _, ok := live[former]; ok {
				continue
			}
			if _, ok := seen[former]; ok {
				continue
			}
			seen[former] = struct{}{}
			m.Redirects = append(m.Redirects, Redirect{
				From:      RecipePath(former),
				To:        RecipePath(r.Slug),
				Permanent: true,
			})
		}
	}
	return m, nil
}
