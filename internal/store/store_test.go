package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/persist"
	"github.com/matt-dz/silviakaka/internal/persist/persistmock"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/recipe"
)

func seed() []recipe.Recipe {
	return []recipe.Recipe{
		{ID: "silviakaka", Slug: "silviakaka", Name: "Silviakaka", RecipeCategory: "Mjuka kakor", DatePublished: "2024-03-01"},
		{ID: "kladdkaka", Slug: "kladdkaka", Name: "Kladdkaka", RecipeCategory: "Kladdkaka", DatePublished: "2024-02-01"},
		{ID: "vit-kladdkaka", Slug: "vit-kladdkaka", Name: "Vit kladdkaka", RecipeCategory: "Kladdkaka", DatePublished: "2024-02-01"},
	}
}

func newStore(t *testing.T, recipes []recipe.Recipe) (*Store, *persist.Memory) {
	t.Helper()
	mem := persist.NewMemory(recipes)
	s, err := New(context.Background(), mem)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, mem
}

func slugsOf(recipes []recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Slug
	}
	return out
}

func TestInsertGetDeleteRoundTrip(t *testing.T) {
	s, mem := newStore(t, seed())
	ctx := context.Background()

	r := recipe.Recipe{
		ID: "kanelbullar", Slug: "kanelbullar", Name: "Kanelbullar",
		Ingredients: []recipe.Ingredient{{Product: "Deg"}, {Unit: "g", Amount: "50", Product: "jäst"}},
	}
	if _, err := s.Insert(ctx, r); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := s.GetBySlug("kanelbullar")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("GetBySlug() = %+v, want %+v", got, r)
	}
	if first := s.All()[0]; first.ID != "kanelbullar" {
		t.Errorf("Insert() did not prepend, first = %q", first.ID)
	}

	if _, err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.GetBySlug("kanelbullar"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBySlug() after delete error = %v, want ErrNotFound", err)
	}
	if mem.Saves() != 2 {
		t.Errorf("Saves() = %d, want 2", mem.Saves())
	}
}

func TestInsert_Duplicates(t *testing.T) {
	s, _ := newStore(t, seed())
	ctx := context.Background()

	_, err := s.Insert(ctx, recipe.Recipe{ID: "kladdkaka", Slug: "ny-slug", Name: "Kopia"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Insert(duplicate id) error = %v, want ErrDuplicateID", err)
	}
	_, err = s.Insert(ctx, recipe.Recipe{ID: "nytt-id", Slug: "kladdkaka", Name: "Kopia"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("Insert(duplicate slug) error = %v, want ErrDuplicateSlug", err)
	}
	_, err = s.Insert(ctx, recipe.Recipe{ID: "x", Slug: "x"})
	if !errors.Is(err, recipe.ErrInvalidRecipe) {
		t.Errorf("Insert(no name) error = %v, want ErrInvalidRecipe", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d after failed inserts, want 3", s.Len())
	}
}

func TestUpdate_RecordsSlugHistory(t *testing.T) {
	s, _ := newStore(t, seed())
	ctx := context.Background()

	r, err := s.GetByID("kladdkaka")
	if err != nil {
		t.Fatal(err)
	}
	r.Slug = "saftig-kladdkaka"
	if _, err := s.Update(ctx, r); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	r.Slug = "kladdkaka-med-grädde"
	r.FormerSlugs = nil
	updated, err := s.Update(ctx, r)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	want := []string{"kladdkaka", "saftig-kladdkaka"}
	if !slices.Equal(updated.FormerSlugs, want) {
		t.Errorf("FormerSlugs = %v, want %v", updated.FormerSlugs, want)
	}
	got, err := s.GetByFormerSlug("kladdkaka")
	if err != nil || got.ID != "kladdkaka" {
		t.Errorf("GetByFormerSlug() = %q, %v", got.ID, err)
	}
	if _, err := s.GetBySlug("kladdkaka"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBySlug(old) error = %v, want ErrNotFound", err)
	}

	r.Slug = "kladdkaka"
	back, err := s.Update(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(back.FormerSlugs, "kladdkaka") {
		t.Errorf("current slug listed in its own history: %v", back.FormerSlugs)
	}
}

func TestUpdate_KeepsExtraFields(t *testing.T) {
	recipes := seed()
	recipes[1].Extra = map[string]json.RawMessage{"image_alt": json.RawMessage(`"Kladdkaka med grädde"`)}
	s, mem := newStore(t, recipes)
	ctx := context.Background()

	edit := recipe.Recipe{ID: "kladdkaka", Slug: "kladdkaka", Name: "Kladdkaka med grädde"}
	if _, err := s.Update(ctx, edit); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	saved, err := mem.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(saved[1].Extra["image_alt"]); got != `"Kladdkaka med grädde"` {
		t.Errorf("image_alt = %q after an update that did not carry it", got)
	}
}

func TestUpdate_Errors(t *testing.T) {
	s, _ := newStore(t, seed())
	ctx := context.Background()

	_, err := s.Update(ctx, recipe.Recipe{ID: "saknas", Slug: "saknas", Name: "Saknas"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}

	_, err = s.Update(ctx, recipe.Recipe{ID: "kladdkaka", Slug: "silviakaka", Name: "Kladdkaka"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("Update(taken slug) error = %v, want ErrDuplicateSlug", err)
	}

	if _, err := s.Delete(ctx, "saknas"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSaveFailureLeavesMemoryUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := persistmock.NewMockPersister(ctrl)
	p.EXPECT().Load(gomock.Any()).Return(seed(), nil)
	p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(3)

	s, err := New(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	before := s.All()
	version := s.Version()
	ctx := context.Background()

	_, err = s.Insert(ctx, recipe.Recipe{ID: "ny", Slug: "ny", Name: "Ny"})
	var pe *PersistenceError
	if !errors.As(err, &pe) || !errors.Is(err, ErrPersistence) {
		t.Fatalf("Insert() error = %v, want *PersistenceError", err)
	}

	changed := before[1].Clone()
	changed.Name = "Ändrad"
	if _, err := s.Update(ctx, changed); !errors.Is(err, ErrPersistence) {
		t.Fatalf("Update() error = %v, want ErrPersistence", err)
	}
	if _, err := s.Delete(ctx, "silviakaka"); !errors.Is(err, ErrPersistence) {
		t.Fatalf("Delete() error = %v, want ErrPersistence", err)
	}

	if !reflect.DeepEqual(s.All(), before) {
		t.Errorf("collection changed after failed saves: %v", slugsOf(s.All()))
	}
	if s.Version() != version {
		t.Errorf("Version() changed after failed saves")
	}
}

func TestNew_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := persistmock.NewMockPersister(ctrl)
	p.EXPECT().Load(gomock.Any()).Return(nil, errors.New("permission denied"))

	if _, err := New(context.Background(), p); !errors.Is(err, ErrPersistence) {
		t.Errorf("New() error = %v, want ErrPersistence", err)
	}
}

func TestIfVersion(t *testing.T) {
	s, _ := newStore(t, seed())
	ctx := context.Background()
	stale := s.Version()

	if _, err := s.Delete(ctx, "silviakaka", IfVersion(stale)); err != nil {
		t.Fatalf("Delete() with current version error = %v", err)
	}
	if s.Version() == stale {
		t.Fatal("Version() did not change after a write")
	}
	if _, err := s.Delete(ctx, "kladdkaka", IfVersion(stale)); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("Delete() with stale version error = %v, want ErrVersionMismatch", err)
	}
	if _, err := s.GetByID("kladdkaka"); err != nil {
		t.Errorf("stale delete removed the recipe: %v", err)
	}
}

func TestList(t *testing.T) {
	s, _ := newStore(t, seed())

	tests := []struct {
		name      string
		opts      ListOptions
		want      []string
		wantTotal int
		wantPages int
	}{
		{
			name:      "defaults",
			opts:      ListOptions{},
			want:      []string{"silviakaka", "kladdkaka", "vit-kladdkaka"},
			wantTotal: 3, wantPages: 1,
		},
		{
			name:      "second page",
			opts:      ListOptions{Page: 2, PageSize: 2},
			want:      []string{"vit-kladdkaka"},
			wantTotal: 3, wantPages: 2,
		},
		{
			name: "filtered oldest first keeps ties",
			opts: ListOptions{
				Filters:   []query.Filter{{Kind: query.Contains, Field: "recipeCategory", Value: "kladdkaka"}},
				Direction: query.Asc,
			},
			want:      []string{"kladdkaka", "vit-kladdkaka"},
			wantTotal: 2, wantPages: 1,
		},
		{
			name:      "page past the end",
			opts:      ListOptions{Page: 9, PageSize: 6},
			want:      []string{},
			wantTotal: 3, wantPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.List(tt.opts)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got := slugsOf(page.Items); !slices.Equal(got, tt.want) {
				t.Errorf("List() items = %v, want %v", got, tt.want)
			}
			if page.TotalCount != tt.wantTotal || page.PageCount != tt.wantPages {
				t.Errorf("List() total = %d pages = %d, want %d and %d",
					page.TotalCount, page.PageCount, tt.wantTotal, tt.wantPages)
			}
		})
	}
}

func TestList_Errors(t *testing.T) {
	s, _ := newStore(t, seed())

	if _, err := s.List(ListOptions{Page: -1}); !errors.Is(err, pagination.ErrInvalidPage) {
		t.Errorf("List(page -1) error = %v", err)
	}
	_, err := s.List(ListOptions{Filters: []query.Filter{{Kind: "regex", Field: "name", Value: "."}}})
	if !errors.Is(err, query.ErrMalformedFilter) {
		t.Errorf("List(bad filter) error = %v", err)
	}
	if _, err := s.List(ListOptions{OrderBy: "steps"}); !errors.Is(err, query.ErrMalformedFilter) {
		t.Errorf("List(bad sort) error = %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s, _ := newStore(t, seed())

	all := s.All()
	all[0].Name = "Ändrad"
	got, _ := s.GetBySlug("silviakaka")
	got.FormerSlugs = append(got.FormerSlugs, "x")

	again, _ := s.GetBySlug("silviakaka")
	if again.Name != "Silviakaka" || len(again.FormerSlugs) != 0 {
		t.Errorf("store shares memory with callers: %+v", again)
	}
}

func TestReload(t *testing.T) {
	s, mem := newStore(t, seed())
	if err := mem.Save(context.Background(), seed()[:1]); err != nil {
		t.Fatal(err)
	}
	before := s.Version()
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if s.Len() != 1 || s.Version() == before {
		t.Errorf("Reload() len = %d, version changed = %v", s.Len(), s.Version() != before)
	}
}

func TestConcurrentInserts(t *testing.T) {
	s, mem := newStore(t, nil)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slug := fmt.Sprintf("kaka-%d", i)
			if _, err := s.Insert(ctx, recipe.Recipe{ID: slug, Slug: slug, Name: slug}); err != nil {
				t.Errorf("Insert(%s) error = %v", slug, err)
			}
		}()
	}
	wg.Wait()

	if s.Len() != n {
		t.Errorf("Len() = %d, want %d", s.Len(), n)
	}
	persisted, _ := mem.Load(ctx)
	if len(persisted) != n {
		t.Errorf("persisted %d recipes, want %d", len(persisted), n)
	}
}
