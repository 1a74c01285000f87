// Package recipe contains the recipe data model shared by the store, the
// query layer and the page generators.
package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of datePublished.
const DateLayout = "2006-01-02"

// Recipe is a single record of the persisted collection. The JSON field names
// follow the document written by the admin panel.
type Recipe struct {
	ID          string   `json:"id" validate:"required"`
	Slug        string   `json:"slug" validate:"required,slug"`
	FormerSlugs []string `json:"formerSlugs,omitempty" validate:"dive,slug"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`

	Servings    string `json:"servings,omitempty"`
	PrepTime    string `json:"prepTime,omitempty"`
	CookingTime string `json:"cookingTime,omitempty"`
	TotalTime   string `json:"totalTime,omitempty"`

	RecipeCategory string `json:"recipeCategory,omitempty"`
	RecipeCuisine  string `json:"recipeCuisine,omitempty"`
	Keywords       string `json:"keywords,omitempty"`
	DatePublished  string `json:"datePublished,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Image       []Image      `json:"image"`
	Steps       []Step       `json:"steps"`
	Ingredients []Ingredient `json:"ingredients"`

	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
	Nutrition       *Nutrition       `json:"nutrition,omitempty"`

	// Extra holds top-level fields of the stored document that Recipe does
	// not model, such as image_alt. The persist package reads and writes them.
	Extra map[string]json.RawMessage `json:"-"`
}

// Image describes an uploaded image. The first image of a recipe is the hero
// image.
type Image struct {
	ID        string `json:"id,omitempty"`
	URL       string `json:"url"`
	Extension string `json:"extension,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// Step is one numbered instruction. Steps are numbered by position.
type Step struct {
	Text  string  `json:"step"`
	Image []Image `json:"image,omitempty"`
}

// Ingredient is either an ingredient line or a section header. A header has
// neither unit nor amount and carries its label in Product; it applies to
// every following line until the next header.
type Ingredient struct {
	Unit    string `json:"unit,omitempty"`
	Amount  Amount `json:"amount,omitempty"`
	Product string `json:"product"`
}

// IsSection reports whether the entry is a section header.
func (i Ingredient) IsSection() bool {
	return i.Unit == "" && i.Amount == ""
}

// Amount is a numeric quantity kept as text. Older documents store it as a
// JSON number, so both forms are accepted.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding amount: %w", err)
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// Float returns the numeric value of the amount. Swedish decimal commas are
// accepted.
func (a Amount) Float() (float64, bool) {
	if a == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(string(a), ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type AggregateRating struct {
	Type        string `json:"@type,omitempty"`
	RatingValue string `json:"ratingValue,omitempty"`
	RatingCount string `json:"ratingCount,omitempty"`
}

type Nutrition struct {
	Type     string `json:"@type,omitempty"`
	Calories string `json:"calories,omitempty"`
}

// PublishedAt parses DatePublished. Missing or unparseable dates sort as the
// start of the epoch.
func (r Recipe) PublishedAt() time.Time {
	return ParseDate(r.DatePublished)
}

// ParseDate parses a publish date, falling back to the Unix epoch.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// Field returns the string field with the given JSON name. ok is false when
// the recipe has no string field by that name.
func (r Recipe) Field(name string) (value string, ok bool) {
	switch name {
	case "id":
		return r.ID, true
	case "slug":
		return r.Slug, true
	case "name":
		return r.Name, true
	case "description":
		return r.Description, true
	case "servings":
		return r.Servings, true
	case "prepTime":
		return r.PrepTime, true
	case "cookingTime":
		return r.CookingTime, true
	case "totalTime":
		return r.TotalTime, true
	case "recipeCategory":
		return r.RecipeCategory, true
	case "recipeCuisine":
		return r.RecipeCuisine, true
	case "keywords":
		return r.Keywords, true
	case "datePublished":
		return r.DatePublished, true
	}
	return "", false
}

// IsField reports whether name is a string field of Recipe.
func IsField(name string) bool {
	_, ok := Recipe{}.Field(name)
	return ok
}

// HeroImage returns the primary image, if any.
func (r Recipe) HeroImage() (Image, bool) {
	if len(r.Image) == 0 {
		return Image{}, false
	}
	return r.Image[0], true
}

// HasSlug reports whether slug is the current slug or one of the former ones.
func (r Recipe) HasSlug(slug string) bool {
	return r.Slug == slug || slices.Contains(r.FormerSlugs, slug)
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	c := r
	c.FormerSlugs = slices.Clone(r.FormerSlugs)
	c.Image = slices.Clone(r.Image)
	c.Ingredients = slices.Clone(r.Ingredients)
	if r.Steps != nil {
		c.Steps = make([]Step, len(r.Steps))
		for i, s := range r.Steps {
			c.Steps[i] = Step{Text: s.Text, Image: slices.Clone(s.Image)}
		}
	}
	if r.AggregateRating != nil {
		rating := *r.AggregateRating
		c.AggregateRating = &rating
	}
	if r.Nutrition != nil {
		nutrition := *r.Nutrition
		c.Nutrition = &nutrition
	}
	c.Extra = maps.Clone(r.Extra)
	return c
}

// CloneAll deep-copies a collection.
func CloneAll(recipes []Recipe) []Recipe {
	if recipes == nil {
		return nil
	}
	out := make([]Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}
