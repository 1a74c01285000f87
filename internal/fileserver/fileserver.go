// Package fileserver contains utilities for interacting with the image volume.
package fileserver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	directoryPerms = 0o755
	filePerms      = 0o644
)

const (
	RecipesDir = "recipes"
	StepsDir   = "steps"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrNotExist    = errors.New("file does not exist")
)

// topLevelDirectories are the only directories files may be written to or
// deleted from.
var topLevelDirectories = []string{RecipesDir, StepsDir}

type FileServerInterface interface {
	Write(path string, data []byte) (location string, n int, err error)
	Delete(path string) error
	Exists(path string) (bool, error)
	BaseDirectory() string
}

type FileServer struct {
	baseDir string
}

var _ FileServerInterface = (*FileServer)(nil)

func New(baseDir string) *FileServer {
	return &FileServer{
		baseDir: baseDir,
	}
}

func (f *FileServer) BaseDirectory() string {
	if f == nil {
		return ""
	}
	return f.baseDir
}

// Write stores data at path relative to the base directory and returns the
// absolute location of the written file.
func (f *FileServer) Write(path string, data []byte) (location string, n int, err error) {
	if f == nil {
		return "", 0, nil
	}

	fullpath, err := f.resolve(path)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return "", 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerms)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = file.Close() }()

	n, err = file.Write(data)
	if err != nil {
		return "", 0, fmt.Errorf("writing file: %w", err)
	}

	return fullpath, n, nil
}

// Delete removes the file at path and prunes parent directories that became
// empty, stopping at the top-level directory.
func (f *FileServer) Delete(path string) error {
	if f == nil {
		return nil
	}

	fullpath, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullpath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q: %w", path, ErrNotExist)
		}
		return fmt.Errorf("removing file: %w", err)
	}

	base, err := filepath.Abs(f.baseDir)
	if err != nil {
		return fmt.Errorf("resolving base directory: %w", err)
	}
	top := filepath.Join(base, topLevelDirectory(path))
	for dir := filepath.Dir(fullpath); dir != top && strings.HasPrefix(dir, top); dir = filepath.Dir(dir) {
		empty, err := isEmptyDirectory(dir)
		if err != nil || !empty {
			break
		}
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("pruning directory: %w", err)
		}
	}
	return nil
}

func (f *FileServer) Exists(path string) (bool, error) {
	if f == nil {
		return false, nil
	}
	fullpath, err := cleanPath(f.baseDir, path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullpath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *FileServer) resolve(path string) (string, error) {
	if !slices.Contains(topLevelDirectories, topLevelDirectory(path)) {
		return "", fmt.Errorf("%q is outside the allowed directories: %w", path, ErrInvalidPath)
	}
	return cleanPath(f.baseDir, path)
}

// cleanPath joins path onto baseDir and rejects results outside of baseDir.
func cleanPath(baseDir, path string) (string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("absolute path %q: %w", path, ErrInvalidPath)
	}

	full := filepath.Join(base, filepath.Clean(path))
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, ErrInvalidPath)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q escapes base directory: %w", path, ErrInvalidPath)
	}
	return full, nil
}

func topLevelDirectory(path string) string {
	cleaned := strings.TrimPrefix(filepath.Clean(path), string(filepath.Separator))
	if i := strings.IndexRune(cleaned, filepath.Separator); i >= 0 {
		return cleaned[:i]
	}
	return cleaned
}

func isEmptyDirectory(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = dir.Close() }()

	_, err = dir.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
