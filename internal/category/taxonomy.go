package category

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// Taxonomy is the static site structure: categories and pillar pages.
type Taxonomy struct {
	Categories []Descriptor `yaml:"categories" validate:"dive"`
	Pillars    []Pillar     `yaml:"pillars" validate:"dive"`
}

// Classifier returns a classifier over the taxonomy's categories.
func (t Taxonomy) Classifier() *Classifier {
	return NewClassifier(t.Categories)
}

func (t Taxonomy) Pillar(slug string) (Pillar, bool) {
	for _, p := range t.Pillars {
		if p.Slug == slug {
			return p, true
		}
	}
	return Pillar{}, false
}

// Default returns the taxonomy shipped with the binary.
func Default() Taxonomy {
	t, err := ParseTaxonomy(defaultTaxonomy)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// LoadTaxonomy reads a taxonomy from a YAML file.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("reading taxonomy: %w", err)
	}
	return ParseTaxonomy(data)
}

func ParseTaxonomy(data []byte) (Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("unmarshaling taxonomy: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(t); err != nil {
		return Taxonomy{}, fmt.Errorf("validating taxonomy: %w", err)
	}

	categories := make(map[string]struct{})
	for _, d := range t.Categories {
		if _, ok := categories[d.Slug]; ok {
			return Taxonomy{}, fmt.Errorf("duplicate category slug %q", d.Slug)
		}
		categories[d.Slug] = struct{}{}
	}
	pillars := make(map[string]struct{})
	for _, p := range t.Pillars {
		if _, ok := pillars[p.Slug]; ok {
			return Taxonomy{}, fmt.Errorf("duplicate pillar slug %q", p.Slug)
		}
		pillars[p.Slug] = struct{}{}
	}
	return t, nil
}
