// Package category groups recipes into the site's categories and pillar
// pages. Categories match on the free-text recipeCategory field; pillar pages
// are curated allow-lists of slugs.
package category

import (
	"errors"
	"slices"

	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/textmatch"
)

// DefaultLanguage is the site language and the fallback for every Localized.
const DefaultLanguage = "sv"

// DefaultPreviewLimit is how many recipes a homepage category preview shows.
const DefaultPreviewLimit = 4

var ErrNotFound = errors.New("category not found")

// Localized maps a language code to text.
type Localized map[string]string

// Get returns the text for lang, falling back to DefaultLanguage.
func (l Localized) Get(lang string) string {
	if v := l[lang]; v != "" {
		return v
	}
	return l[DefaultLanguage]
}

type Descriptor struct {
	Slug            string    `yaml:"slug" json:"slug" validate:"required"`
	Name            Localized `yaml:"name" json:"name" validate:"required"`
	Description     Localized `yaml:"description" json:"description,omitempty"`
	Title           Localized `yaml:"title" json:"title,omitempty"`
	MetaDescription Localized `yaml:"meta_description" json:"meta_description,omitempty"`
}

// CanonicalName is the name recipeCategory values are matched against.
func (d Descriptor) CanonicalName() string {
	return d.Name.Get(DefaultLanguage)
}

// PageTitle falls back to the name when no title is configured.
func (d Descriptor) PageTitle(lang string) string {
	if t := d.Title.Get(lang); t != "" {
		return t
	}
	return d.Name.Get(lang)
}

// PageDescription falls back to the description when no meta description is
// configured.
func (d Descriptor) PageDescription(lang string) string {
	if m := d.MetaDescription.Get(lang); m != "" {
		return m
	}
	return d.Description.Get(lang)
}

// Matches reports whether the recipe's category text contains the canonical
// name, ignoring case.
func (d Descriptor) Matches(r recipe.Recipe) bool {
	name := d.CanonicalName()
	if name == "" || r.RecipeCategory == "" {
		return false
	}
	return textmatch.Contains(r.RecipeCategory, name)
}

type Group struct {
	Category Descriptor      `json:"category"`
	Recipes  []recipe.Recipe `json:"recipes"`
}

type Classifier struct {
	categories []Descriptor
}

func NewClassifier(categories []Descriptor) *Classifier {
	return &Classifier{categories: slices.Clone(categories)}
}

// Categories returns the descriptors in configured order.
func (c *Classifier) Categories() []Descriptor {
	return slices.Clone(c.categories)
}

func (c *Classifier) Slugs() []string {
	slugs := make([]string, len(c.categories))
	for i, d := range c.categories {
		slugs[i] = d.Slug
	}
	return slugs
}

func (c *Classifier) Lookup(slug string) (Descriptor, error) {
	for _, d := range c.categories {
		if d.Slug == slug {
			return d, nil
		}
	}
	return Descriptor{}, ErrNotFound
}

// Group returns every category, in configured order, with up to limit
// matching recipes each. Categories without matches are kept with an empty
// list. A limit below 1 means DefaultPreviewLimit.
func (c *Classifier) Group(recipes []recipe.Recipe, limit int) []Group {
	if limit < 1 {
		limit = DefaultPreviewLimit
	}

	groups := make([]Group, len(c.categories))
	for i, d := range c.categories {
		matched := []recipe.Recipe{}
		for _, r := range recipes {
			if len(matched) == limit {
				break
			}
			if d.Matches(r) {
				matched = append(matched, r)
			}
		}
		groups[i] = Group{Category: d, Recipes: matched}
	}
	return groups
}

// RecipesIn returns every recipe in the category, in input order.
func (c *Classifier) RecipesIn(recipes []recipe.Recipe, slug string) (Descriptor, []recipe.Recipe, error) {
	d, err := c.Lookup(slug)
	if err != nil {
		return Descriptor{}, nil, err
	}
	matched := []recipe.Recipe{}
	for _, r := range recipes {
		if d.Matches(r) {
			matched = append(matched, r)
		}
	}
	return d, matched, nil
}
