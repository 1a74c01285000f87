package recipe

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Silviakaka", want: "silviakaka"},
		{name: "swedish letters", in: "Kladdkaka med Äpple och Örter", want: "kladdkaka-med-apple-och-orter"},
		{name: "ring", in: "Silviakaka i långpanna", want: "silviakaka-i-langpanna"},
		{name: "punctuation dropped", in: "Mormors bästa! (glutenfri)", want: "mormors-basta-glutenfri"},
		{name: "whitespace run", in: "a  \t b", want: "a-b"},
		{name: "other accents", in: "Crème brûlée", want: "creme-brulee"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	r := Recipe{Name: "  Saftig Kladdkaka "}
	Normalize(&r)
	if r.Name != "Saftig Kladdkaka" {
		t.Errorf("Name = %q", r.Name)
	}
	if r.Slug != "saftig-kladdkaka" {
		t.Errorf("Slug = %q, want %q", r.Slug, "saftig-kladdkaka")
	}
	if r.ID != "saftig-kladdkaka" {
		t.Errorf("ID = %q, want %q", r.ID, "saftig-kladdkaka")
	}

	kept := Recipe{ID: "abc", Slug: "custom", Name: "Något annat"}
	Normalize(&kept)
	if kept.ID != "abc" || kept.Slug != "custom" {
		t.Errorf("Normalize overwrote existing id/slug: %+v", kept)
	}
}

func TestValidate(t *testing.T) {
	valid := Recipe{ID: "silviakaka", Slug: "silviakaka", Name: "Silviakaka", DatePublished: "2024-05-01"}

	tests := []struct {
		name    string
		mutate  func(*Recipe)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Recipe) {}},
		{name: "missing date is fine", mutate: func(r *Recipe) { r.DatePublished = "" }},
		{name: "missing id", mutate: func(r *Recipe) { r.ID = "" }, wantErr: true},
		{name: "missing name", mutate: func(r *Recipe) { r.Name = "" }, wantErr: true},
		{name: "slug with slash", mutate: func(r *Recipe) { r.Slug = "a/b" }, wantErr: true},
		{name: "bad date", mutate: func(r *Recipe) { r.DatePublished = "01/05/2024" }, wantErr: true},
		{name: "bad former slug", mutate: func(r *Recipe) { r.FormerSlugs = []string{"ok", "not ok"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid.Clone()
			tt.mutate(&r)
			err := Validate(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecipe) {
				t.Errorf("Validate() error = %v, want ErrInvalidRecipe", err)
			}
		})
	}
}

func TestAmountUnmarshal(t *testing.T) {
	var ingredients []Ingredient
	data := `[
		{"unit": "g", "amount": 200, "product": "smör"},
		{"unit": "dl", "amount": "1,5", "product": "socker"},
		{"amount": null, "product": "Glasyr"},
		{"product": "Topping"}
	]`
	if err := json.Unmarshal([]byte(data), &ingredients); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if ingredients[0].Amount != "200" {
		t.Errorf("numeric amount = %q, want %q", ingredients[0].Amount, "200")
	}
	if v, ok := ingredients[1].Amount.Float(); !ok || v != 1.5 {
		t.Errorf("Float() = %v, %v, want 1.5, true", v, ok)
	}
	for i, wantSection := range []bool{false, false, true, true} {
		if got := ingredients[i].IsSection(); got != wantSection {
			t.Errorf("ingredients[%d].IsSection() = %v, want %v", i, got, wantSection)
		}
	}
}

func TestPublishedAt(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-03-09", want: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-09T10:00:00Z", want: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{in: "", want: epoch},
		{in: "igår", want: epoch},
	}
	for _, tt := range tests {
		got := Recipe{DatePublished: tt.in}.PublishedAt()
		if !got.Equal(tt.want) {
			t.Errorf("PublishedAt(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestField(t *testing.T) {
	r := Recipe{Name: "Kladdkaka", RecipeCategory: "Kakor"}
	if v, ok := r.Field("recipeCategory"); !ok || v != "Kakor" {
		t.Errorf("Field(recipeCategory) = %q, %v", v, ok)
	}
	if _, ok := r.Field("ingredients"); ok {
		t.Error("Field(ingredients) should not be a string field")
	}
	if !IsField("keywords") || IsField("nope") {
		t.Error("IsField mismatch")
	}
}

func TestClone(t *testing.T) {
	r := Recipe{
		ID:          "a",
		FormerSlugs: []string{"old"},
		Steps:       []Step{{Text: "Blanda", Image: []Image{{URL: "/1.jpg"}}}},
		Ingredients: []Ingredient{{Product: "smör"}},
		Nutrition:   &Nutrition{Calories: "300"},
	}
	c := r.Clone()
	if !reflect.DeepEqual(r, c) {
		t.Fatalf("Clone() = %+v, want %+v", c, r)
	}

	c.FormerSlugs[0] = "changed"
	c.Steps[0].Image[0].URL = "/2.jpg"
	c.Ingredients[0].Product = "mjöl"
	c.Nutrition.Calories = "1"
	if r.FormerSlugs[0] != "old" || r.Steps[0].Image[0].URL != "/1.jpg" ||
		r.Ingredients[0].Product != "smör" || r.Nutrition.Calories != "300" {
		t.Errorf("mutating the clone changed the original: %+v", r)
	}

	if CloneAll(nil) != nil {
		t.Error("CloneAll(nil) should be nil")
	}
}

func TestDisplayHelpers(t *testing.T) {
	if got := FormatDuration("PT35M"); got != "35 min" {
		t.Errorf("FormatDuration(PT35M) = %q", got)
	}
	if got := FormatDuration("PTM"); got != "PTM" {
		t.Errorf("FormatDuration(PTM) = %q", got)
	}

	r := Recipe{Description: "<p>En <strong>saftig</strong> kaka</p>"}
	if got := r.PlainDescription(); got != "En saftig kaka" {
		t.Errorf("PlainDescription() = %q", got)
	}
	if got := r.Excerpt(6); got != "En saf..." {
		t.Errorf("Excerpt(6) = %q", got)
	}
}
