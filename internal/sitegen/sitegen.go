// Package sitegen prepares the data the static site build renders: the set
// of paths to generate, and the view for each kind of page.
package sitegen

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/log"
	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/slugs"
	"github.com/matt-dz/silviakaka/internal/store"
)

const (
	ListingBase  = "/recept"
	CategoryBase = "/kategorier"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugDrift    = errors.New("listing pages and recipe pages disagree on slugs")
)

// SlugDriftError lists the slugs that only one side enumerates, and slugs
// that more than one recipe claims.
type SlugDriftError struct {
	OnlyInListing []string `json:"only_in_listing,omitempty"`
	OnlyInStore   []string `json:"only_in_store,omitempty"`
	Duplicates    []string `json:"duplicates,omitempty"`
}

func (e *SlugDriftError) Error() string {
	if len(e.Duplicates) > 0 {
		return fmt.Sprintf("%v: duplicate slugs %v, only in listing %v, only in store %v",
			ErrSlugDrift, e.Duplicates, e.OnlyInListing, e.OnlyInStore)
	}
	return fmt.Sprintf("%v: only in listing %v, only in store %v", ErrSlugDrift, e.OnlyInListing, e.OnlyInStore)
}

func (e *SlugDriftError) Is(target error) bool {
	return target == ErrSlugDrift
}

// FilterPolicy decides what a listing does with a malformed filter.
type FilterPolicy int

const (
	// FilterPolicyFail returns the filter error to the caller.
	FilterPolicyFail FilterPolicy = iota
	// FilterPolicyDegrade logs the error and lists without filters.
	FilterPolicyDegrade
)

func ParseFilterPolicy(s string) (FilterPolicy, error) {
	switch strings.ToLower(s) {
	case "", "fail":
		return FilterPolicyFail, nil
	case "degrade":
		return FilterPolicyDegrade, nil
	}
	return FilterPolicyFail, fmt.Errorf("unknown filter policy %q", s)
}

// Source is the read side of the store.
type Source interface {
	List(opts store.ListOptions) (pagination.Page[recipe.Recipe], error)
	All() []recipe.Recipe
	Slugs() []string
	slugs.Lookup
}

var _ Source = (*store.Store)(nil)

type Generator struct {
	source   Source
	resolver *slugs.Resolver
	taxonomy category.Taxonomy
	pageSize int
	policy   FilterPolicy
	logger   *slog.Logger
}

type Option func(*Generator)

func WithPageSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.pageSize = size
		}
	}
}

func WithFilterPolicy(policy FilterPolicy) Option {
	return func(g *Generator) {
		g.policy = policy
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func New(source Source, taxonomy category.Taxonomy, opts ...Option) *Generator {
	g := &Generator{
		source:   source,
		resolver: slugs.NewResolver(source),
		taxonomy: taxonomy,
		pageSize: store.DefaultPageSize,
		logger:   log.NullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) PageSize() int {
	return g.pageSize
}

// ListingPath returns the path of a page of the default listing. The first
// page lives at the listing root.
func ListingPath(page int) string {
	if page <= 1 {
		return ListingBase
	}
	return ListingBase + "/list/" + strconv.Itoa(page)
}

func RecipePath(slug string) string {
	return ListingBase + "/" + slug
}

func CategoryPath(slug string) string {
	return CategoryBase + "/" + slug
}

func PillarPath(slug string) string {
	return "/" + slug
}

// newestFirst returns the whole collection in the default listing order.
func (g *Generator) newestFirst() ([]recipe.Recipe, error) {
	page, err := g.source.List(store.ListOptions{Page: 1, PageSize: max(1, len(g.source.Slugs()))})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func slugSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// duplicates returns the values that occur more than once, sorted.
func duplicates(values []string) []string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	var out []string
	for v, n := range counts {
		if n > 1 {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

func difference(a []string, b map[string]struct{}) []string {
	var out []string
	for _, v := range a {
		if _, ok := b[v]; !ok {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
