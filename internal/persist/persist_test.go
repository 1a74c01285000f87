package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

func sample() []recipe.Recipe {
	return []recipe.Recipe{
		{ID: "silviakaka", Slug: "silviakaka", Name: "Silviakaka", DatePublished: "2024-01-10",
			Ingredients: []recipe.Ingredient{{Unit: "g", Amount: "200", Product: "smör"}}},
		{ID: "kladdkaka", Slug: "kladdkaka", Name: "Kladdkaka", FormerSlugs: []string{"kladdig-kaka"}},
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLen int
		wantErr error
	}{
		{name: "empty document", in: "", wantLen: 0},
		{name: "whitespace", in: "  \n", wantLen: 0},
		{name: "empty array", in: "[]", wantLen: 0},
		{name: "null", in: "null", wantErr: ErrNotArray},
		{name: "object", in: `{"id": "a"}`, wantErr: ErrNotArray},
		{name: "two recipes", in: `[{"id": "a", "slug": "a", "name": "A"}, {"id": "b", "slug": "b", "name": "B"}]`, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got == nil || len(got) != tt.wantLen {
				t.Errorf("Decode() = %v, want %d recipes", got, tt.wantLen)
			}
		})
	}
}

func TestEncode_Indented(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Encode(nil) = %q", data)
	}

	data, err = Encode(sample()[:1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"silviakaka\"") {
		t.Errorf("Encode() is not two-space indented:\n%s", data)
	}
}

func TestDecode_KeepsUnknownFields(t *testing.T) {
	doc := `[{"id": "silviakaka", "slug": "silviakaka", "name": "Silviakaka",
		"image_alt": "Silviakaka i långpanna", "image_prompt": {"style": "foto"}}]`

	got, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := map[string]json.RawMessage{
		"image_alt":    json.RawMessage(`"Silviakaka i långpanna"`),
		"image_prompt": json.RawMessage(`{"style": "foto"}`),
	}
	if !reflect.DeepEqual(got[0].Extra, want) {
		t.Errorf("Extra = %s, want %s", got[0].Extra, want)
	}

	data, err := Encode(got)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), `"image_alt": "Silviakaka i långpanna"`) {
		t.Errorf("Encode() dropped image_alt:\n%s", data)
	}
	again, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() of encoded document error = %v", err)
	}
	if len(again[0].Extra) != 2 || again[0].Name != "Silviakaka" {
		t.Errorf("round trip = %+v", again[0])
	}
	if !json.Valid(again[0].Extra["image_prompt"]) {
		t.Errorf("image_prompt = %s", again[0].Extra["image_prompt"])
	}

	plain, err := Decode([]byte(`[{"id": "a", "slug": "a", "name": "A"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if plain[0].Extra != nil {
		t.Errorf("Extra = %v, want nil without unknown fields", plain[0].Extra)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "recipes.json")
	f := NewFile(path)

	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load() on missing file = %v, want empty", got)
	}

	if err := f.Save(context.Background(), sample()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = f.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, sample()) {
		t.Errorf("Load() = %+v, want %+v", got, sample())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the document in %s, found %d entries", filepath.Dir(path), len(entries))
	}
}

func TestFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	if err := os.WriteFile(path, []byte(`[{"id":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(path).Load(context.Background()); err == nil {
		t.Error("Load() on corrupt document should fail")
	}
}

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3_RoundTrip(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}
	p := NewS3(client, "site", "data/recipes.json")

	got, err := p.Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("Load() on missing object = %v, %v", got, err)
	}

	if err := p.Save(context.Background(), sample()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := client.objects["site/data/recipes.json"]; !ok {
		t.Fatalf("object not written, have %v", client.objects)
	}
	got, err = p.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, sample()) {
		t.Errorf("Load() = %+v", got)
	}

	client.putErr = errors.New("access denied")
	if err := p.Save(context.Background(), sample()); err == nil {
		t.Error("Save() should surface put errors")
	}
}

type fakeRow struct {
	body []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.body
	return nil
}

type fakeDB struct {
	rows  map[string][]byte
	execs []string
}

func (d *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.execs = append(d.execs, sql)
	if len(args) == 2 {
		d.rows[args[0].(string)] = args[1].(json.RawMessage)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (d *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	body, ok := d.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{body: body}
}

func TestPostgres_RoundTrip(t *testing.T) {
	db := &fakeDB{rows: map[string][]byte{}}
	p := NewPostgres(db, "")

	if err := p.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	got, err := p.Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("Load() on missing row = %v, %v", got, err)
	}

	if err := p.Save(context.Background(), sample()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := db.rows[DefaultDocument]; !ok {
		t.Fatalf("row %q not written", DefaultDocument)
	}
	got, err = p.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, sample()) {
		t.Errorf("Load() = %+v", got)
	}
	if len(db.execs) != 2 || !strings.HasPrefix(db.execs[0], "CREATE TABLE") {
		t.Errorf("unexpected statements: %v", db.execs)
	}
}

func TestMemory_Isolation(t *testing.T) {
	m := NewMemory(sample())
	got, _ := m.Load(context.Background())
	got[0].Name = "changed"

	again, _ := m.Load(context.Background())
	if again[0].Name != "Silviakaka" {
		t.Errorf("Load() returned shared data: %q", again[0].Name)
	}
	if err := m.Save(context.Background(), got); err != nil {
		t.Fatal(err)
	}
	if m.Saves() != 1 {
		t.Errorf("Saves() = %d", m.Saves())
	}
}
