package category

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

// Pillar is a curated page for one family of recipes.
type Pillar struct {
	Slug        string    `yaml:"slug" json:"slug" validate:"required"`
	Title       Localized `yaml:"title" json:"title,omitempty"`
	Description Localized `yaml:"description" json:"description,omitempty"`
	// Lead is shown first when present in the collection.
	Lead    string   `yaml:"lead" json:"lead,omitempty"`
	Members []string `yaml:"slugs" json:"slugs" validate:"required,min=1"`
}

// Collect returns the allow-listed recipes: the lead recipe first, then the
// others by name in Swedish alphabetical order.
func (p Pillar) Collect(recipes []recipe.Recipe) []recipe.Recipe {
	members := []recipe.Recipe{}
	for _, r := range recipes {
		if slices.Contains(p.Members, r.Slug) {
			members = append(members, r)
		}
	}

	coll := collate.New(language.Swedish, collate.IgnoreCase)
	slices.SortStableFunc(members, func(a, b recipe.Recipe) int {
		switch {
		case p.Lead != "" && a.Slug == p.Lead && b.Slug != p.Lead:
			return -1
		case p.Lead != "" && b.Slug == p.Lead && a.Slug != p.Lead:
			return 1
		}
		return coll.CompareString(a.Name, b.Name)
	})
	return members
}

// Missing returns allow-listed slugs that no recipe currently uses.
func (p Pillar) Missing(recipes []recipe.Recipe) []string {
	present := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		present[r.Slug] = struct{}{}
	}
	var missing []string
	for _, slug := range p.Members {
		if _, ok := present[slug]; !ok {
			missing = append(missing, slug)
		}
	}
	return missing
}
