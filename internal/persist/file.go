package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

const (
	directoryPerms = 0o755
	documentPerms  = 0o644
)

// File keeps the collection in a JSON file on local disk.
type File struct {
	path string
}

var _ Persister = (*File)(nil)

func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the document.
func (f *File) Path() string {
	return f.path
}

// Load reads the document. A missing file is an empty collection.
func (f *File) Load(ctx context.Context) ([]recipe.Recipe, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []recipe.Recipe{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading %q: %w", f.path, err)
	}
	return Decode(data)
}

// Save writes the document to a temporary file in the same directory and
// renames it over the old one, so readers never see a half-written file.
func (f *File) Save(ctx context.Context, recipes []recipe.Recipe) error {
	data, err := Encode(recipes)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, directoryPerms); err != nil {
		return fmt.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), documentPerms); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %q: %w", f.path, err)
	}
	return nil
}
