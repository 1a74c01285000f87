package sitegen

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/persist"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/recipe"
	"github.com/matt-dz/silviakaka/internal/store"
)

func fixture() []recipe.Recipe {
	return []recipe.Recipe{
		{ID: "1", Slug: "silviakaka", Name: "Silviakaka", RecipeCategory: "Silviakaka, Mjuka kakor",
			DatePublished: "2024-05-01", FormerSlugs: []string{"silvia-kaka"}},
		{ID: "2", Slug: "kladdkaka-recept", Name: "Kladdkaka", RecipeCategory: "Kladdkaka", DatePublished: "2024-04-20"},
		{ID: "3", Slug: "vit-kladdkaka-recept", Name: "Vit kladdkaka", RecipeCategory: "Kladdkaka",
			DatePublished: "2024-04-20", FormerSlugs: []string{"vit-kladdkaka"}},
		{ID: "4", Slug: "kanelbullar", Name: "Kanelbullar", RecipeCategory: "Bullar", DatePublished: "2024-03-01"},
		{ID: "5", Slug: "silviakaka-langpanna", Name: "Silviakaka i långpanna", RecipeCategory: "Silviakaka, Mjuka kakor",
			DatePublished: "2024-02-14", FormerSlugs: []string{"kladdkaka-recept"}},
		{ID: "6", Slug: "drommar", Name: "Drömmar", RecipeCategory: "Småkakor"},
		{ID: "7", Slug: "glutenfri-silviakaka", Name: "Glutenfri silviakaka", RecipeCategory: "Silviakaka",
			DatePublished: "2024-05-01", FormerSlugs: []string{"silvia-kaka"}},
	}
}

func taxonomy() category.Taxonomy {
	return category.Taxonomy{
		Categories: []category.Descriptor{
			{Slug: "silviakaka", Name: category.Localized{"sv": "Silviakaka"}},
			{Slug: "kladdkaka", Name: category.Localized{"sv": "Kladdkaka"}},
			{Slug: "mjuka-kakor", Name: category.Localized{"sv": "Mjuka kakor"}},
			{Slug: "tartor", Name: category.Localized{"sv": "Tårtor"}},
		},
		Pillars: []category.Pillar{
			{Slug: "silviakaka", Lead: "silviakaka", Members: []string{"silviakaka-langpanna", "glutenfri-silviakaka", "silviakaka"}},
			{Slug: "kladdkaka", Members: []string{"vit-kladdkaka-recept", "kladdkaka-recept"}},
		},
	}
}

func newGenerator(t *testing.T, recipes []recipe.Recipe, opts ...Option) *Generator {
	t.Helper()
	s, err := store.New(context.Background(), persist.NewMemory(recipes))
	if err != nil {
		t.Fatal(err)
	}
	return New(s, taxonomy(), append([]Option{WithPageSize(3)}, opts...)...)
}

func slugsOf(recipes []recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Slug
	}
	return out
}

func TestManifest(t *testing.T) {
	m, err := newGenerator(t, fixture()).Manifest()
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "manifest", append(data, '\n'))
}

func TestManifest_EmptyCollection(t *testing.T) {
	m, err := newGenerator(t, nil).Manifest()
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if len(m.Listing) != 1 || m.Listing[0].Path != "/recept" || len(m.Listing[0].Slugs) != 0 {
		t.Errorf("Listing = %+v, want only an empty first page", m.Listing)
	}
	if len(m.Recipes) != 0 || len(m.Redirects) != 0 {
		t.Errorf("unexpected paths in %+v", m)
	}
}

type driftingSource struct {
	*store.Store
}

func (d driftingSource) Slugs() []string {
	return append(d.Store.Slugs(), "spoke")
}

func TestManifest_SlugDrift(t *testing.T) {
	s, err := store.New(context.Background(), persist.NewMemory(fixture()))
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(driftingSource{s}, taxonomy()).Manifest()
	if !errors.Is(err, ErrSlugDrift) {
		t.Fatalf("Manifest() error = %v, want ErrSlugDrift", err)
	}
	var drift *SlugDriftError
	if !errors.As(err, &drift) || !slices.Equal(drift.OnlyInStore, []string{"spoke"}) || len(drift.OnlyInListing) != 0 {
		t.Errorf("Manifest() drift = %+v", drift)
	}
}

func TestManifest_DuplicateSlugs(t *testing.T) {
	recipes := fixture()
	recipes[3].Slug = "kladdkaka-recept"
	_, err := newGenerator(t, recipes).Manifest()
	if !errors.Is(err, ErrSlugDrift) {
		t.Fatalf("Manifest() error = %v, want ErrSlugDrift", err)
	}
	var drift *SlugDriftError
	if !errors.As(err, &drift) || !slices.Equal(drift.Duplicates, []string{"kladdkaka-recept"}) {
		t.Errorf("Manifest() drift = %+v", drift)
	}
	if len(drift.OnlyInListing) != 0 || len(drift.OnlyInStore) != 0 {
		t.Errorf("duplicates reported as one-sided drift: %+v", drift)
	}
}

func TestListing(t *testing.T) {
	g := newGenerator(t, fixture())
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		filters  string
		wantPath string
		want     []string
		wantErr  error
	}{
		{name: "first page", page: 1, wantPath: "/recept", want: []string{"silviakaka", "glutenfri-silviakaka", "kladdkaka-recept"}},
		{name: "last page", page: 3, wantPath: "/recept/list/3", want: []string{"drommar"}},
		{name: "past the end", page: 4, wantErr: ErrPageNotFound},
		{name: "page zero", page: 0, wantErr: ErrPageNotFound},
		{
			name:     "filtered",
			page:     1,
			filters:  `{"recipeCategory": {"type": "contains", "filter": "kladdkaka"}}`,
			wantPath: "/recept",
			want:     []string{"kladdkaka-recept", "vit-kladdkaka-recept"},
		},
		{name: "malformed filter fails", page: 1, filters: `{"name": {"type": "like", "filter": "x"}}`, wantErr: query.ErrMalformedFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := g.Listing(ctx, tt.page, tt.filters)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Listing() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Listing() error = %v", err)
			}
			if view.Path != tt.wantPath || !slices.Equal(slugsOf(view.Page.Items), tt.want) {
				t.Errorf("Listing() = %s %v, want %s %v", view.Path, slugsOf(view.Page.Items), tt.wantPath, tt.want)
			}
		})
	}
}

func TestListing_DegradePolicy(t *testing.T) {
	g := newGenerator(t, fixture(), WithFilterPolicy(FilterPolicyDegrade))

	view, err := g.Listing(context.Background(), 1, `{"name": {"type": "like", "filter": "x"}}`)
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}
	if !view.Degraded || view.FilterError == "" {
		t.Errorf("Listing() did not report the dropped filter: %+v", view)
	}
	if view.Page.TotalCount != len(fixture()) {
		t.Errorf("TotalCount = %d, want the unfiltered %d", view.Page.TotalCount, len(fixture()))
	}
}

func TestListing_EmptyFirstPage(t *testing.T) {
	view, err := newGenerator(t, nil).Listing(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}
	if len(view.Page.Items) != 0 || view.Page.PageCount != 0 {
		t.Errorf("Listing() = %+v", view.Page)
	}
}

func TestHome(t *testing.T) {
	view, err := newGenerator(t, fixture()).Home()
	if err != nil {
		t.Fatal(err)
	}
	if view.Featured == nil || view.Featured.Slug != "silviakaka" {
		t.Fatalf("Featured = %+v", view.Featured)
	}
	if got := slugsOf(view.Latest); !slices.Equal(got, []string{"glutenfri-silviakaka", "kladdkaka-recept", "vit-kladdkaka-recept"}) {
		t.Errorf("Latest = %v", got)
	}
	if len(view.Categories) != 4 {
		t.Fatalf("Categories = %d groups, want 4", len(view.Categories))
	}
	if got := slugsOf(view.Categories[0].Recipes); !slices.Equal(got, []string{"silviakaka", "glutenfri-silviakaka", "silviakaka-langpanna"}) {
		t.Errorf("silviakaka preview = %v", got)
	}
	if len(view.Categories[3].Recipes) != 0 {
		t.Errorf("tartor preview = %v, want empty", slugsOf(view.Categories[3].Recipes))
	}

	empty, err := newGenerator(t, nil).Home()
	if err != nil {
		t.Fatal(err)
	}
	if empty.Featured != nil || len(empty.Latest) != 0 {
		t.Errorf("Home() on empty collection = %+v", empty)
	}
}

func TestRecipePage(t *testing.T) {
	g := newGenerator(t, fixture())

	view, err := g.RecipePage("kanelbullar")
	if err != nil {
		t.Fatal(err)
	}
	if view.Recipe.ID != "4" || view.RedirectTo != "" {
		t.Errorf("RecipePage() = %+v", view)
	}
	if got := slugsOf(view.Others); !slices.Equal(got, []string{"silviakaka", "kladdkaka-recept", "vit-kladdkaka-recept"}) {
		t.Errorf("Others = %v, want the first recipes in storage order", got)
	}

	view, err = g.RecipePage("silviakaka")
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(slugsOf(view.Others), "silviakaka") {
		t.Errorf("Others contains the recipe itself: %v", slugsOf(view.Others))
	}

	view, err = g.RecipePage("silvia-kaka")
	if err != nil {
		t.Fatal(err)
	}
	if view.RedirectTo != "/recept/silviakaka" {
		t.Errorf("RedirectTo = %q", view.RedirectTo)
	}

	if _, err := g.RecipePage("saknas"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("RecipePage(missing) error = %v", err)
	}
}

func TestCategoryAndPillarPages(t *testing.T) {
	g := newGenerator(t, fixture())

	cat, err := g.CategoryPage("kladdkaka")
	if err != nil {
		t.Fatal(err)
	}
	if got := slugsOf(cat.Recipes); !slices.Equal(got, []string{"kladdkaka-recept", "vit-kladdkaka-recept"}) {
		t.Errorf("CategoryPage(kladdkaka) = %v", got)
	}
	if _, err := g.CategoryPage("saknas"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("CategoryPage(missing) error = %v", err)
	}

	reordered := fixture()
	reordered[0], reordered[4] = reordered[4], reordered[0]
	cat, err = newGenerator(t, reordered).CategoryPage("mjuka-kakor")
	if err != nil {
		t.Fatal(err)
	}
	if got := slugsOf(cat.Recipes); !slices.Equal(got, []string{"silviakaka-langpanna", "silviakaka"}) {
		t.Errorf("CategoryPage(mjuka-kakor) = %v, want storage order", got)
	}

	pillar, err := g.PillarPage("silviakaka")
	if err != nil {
		t.Fatal(err)
	}
	if got := slugsOf(pillar.Recipes); !slices.Equal(got, []string{"silviakaka", "glutenfri-silviakaka", "silviakaka-langpanna"}) {
		t.Errorf("PillarPage(silviakaka) = %v", got)
	}
	pillar, err = g.PillarPage("kladdkaka")
	if err != nil {
		t.Fatal(err)
	}
	if got := slugsOf(pillar.Recipes); !slices.Equal(got, []string{"kladdkaka-recept", "vit-kladdkaka-recept"}) {
		t.Errorf("PillarPage(kladdkaka) = %v", got)
	}
	if _, err := g.PillarPage("saknas"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("PillarPage(missing) error = %v", err)
	}
}

func TestParseFilterPolicy(t *testing.T) {
	for in, want := range map[string]FilterPolicy{"": FilterPolicyFail, "fail": FilterPolicyFail, "Degrade": FilterPolicyDegrade} {
		got, err := ParseFilterPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseFilterPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFilterPolicy("ignore"); err == nil {
		t.Error("ParseFilterPolicy(ignore) should fail")
	}
}

func TestCategories(t *testing.T) {
	groups, err := newGenerator(t, fixture()).Categories(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 4 {
		t.Fatalf("Categories() = %d groups, want 4", len(groups))
	}
	if got := slugsOf(groups[0].Recipes); !slices.Equal(got, []string{"silviakaka", "glutenfri-silviakaka"}) {
		t.Errorf("silviakaka preview = %v", got)
	}
}
