// Package filestore stores uploaded recipe images and maps their keys to
// public URLs.
package filestore

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/matt-dz/silviakaka/internal/fileserver"
	"github.com/matt-dz/silviakaka/internal/recipe"
)

const (
	DefaultURLPrefix = "/images"
	KeyPrefix        = DefaultURLPrefix
)

// Kind selects the directory an image is stored under.
type Kind string

const (
	RecipeImage Kind = fileserver.RecipesDir
	StepImage   Kind = fileserver.StepsDir
)

func (k Kind) Valid() bool {
	return k == RecipeImage || k == StepImage
}

type FileStoreInterface interface {
	// WriteImage stores data and returns the key it was stored under.
	WriteImage(ctx context.Context, kind Kind, name, suffix, contentType string, data []byte) (key string, n int, err error)
	DeleteKey(ctx context.Context, key string) error
	FileURL(key string) string
}

// FileStore keeps images on the local volume. Keys are URL paths served
// under keyPrefix.
type FileStore struct {
	keyPrefix string
	host      string
	fs        fileserver.FileServerInterface
}

var _ FileStoreInterface = FileStore{}

func New(baseDirectory, keyPrefix, host string) FileStore {
	return FileStore{
		keyPrefix: keyPrefix,
		host:      strings.TrimRight(host, "/"),
		fs:        fileserver.New(baseDirectory),
	}
}

func (f FileStore) WriteImage(
	_ context.Context, kind Kind, name, suffix, _ string, data []byte,
) (key string, n int, err error) {
	rel, err := imagePath(kind, name, suffix)
	if err != nil {
		return "", 0, err
	}
	if _, n, err = f.fs.Write(rel, data); err != nil {
		return "", 0, err
	}
	return "/" + path.Join(strings.Trim(f.keyPrefix, "/"), rel), n, nil
}

func (f FileStore) DeleteKey(_ context.Context, key string) error {
	return f.fs.Delete(filepath.FromSlash(extractKeyPrefix(key, f.keyPrefix)))
}

func (f FileStore) FileURL(key string) string {
	return f.host + "/" + strings.TrimLeft(key, "/")
}

// imagePath builds "<kind>/<ulid>_<slug><suffix>". The slug keeps file
// names readable; the ULID keeps them unique.
func imagePath(kind Kind, name, suffix string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown image kind %q", kind)
	}
	base := ulid.Make().String()
	if slug := recipe.Slugify(name); slug != "" {
		base += "_" + slug
	}
	return path.Join(string(kind), base+suffix), nil
}

func extractKeyPrefix(key string, prefix string) string {
	urlpath := strings.Trim(key, "/")
	pathPrefix := strings.Trim(prefix, "/")
	urlpath = strings.TrimPrefix(urlpath, pathPrefix)
	return strings.TrimLeft(urlpath, "/")
}
