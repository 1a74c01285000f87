// Package store owns the recipe collection. A Store is built once per process
// around a persist.Persister; reads work on copies of the collection and every
// write rewrites the whole persisted document before it becomes visible.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/matt-dz/silviakaka/internal/log"
	"github.com/matt-dz/silviakaka/internal/pagination"
	"github.com/matt-dz/silviakaka/internal/persist"
	"github.com/matt-dz/silviakaka/internal/query"
	"github.com/matt-dz/silviakaka/internal/recipe"
)

const DefaultPageSize = 6

type Store struct {
	mu        sync.RWMutex
	persister persist.Persister
	recipes   []recipe.Recipe
	version   string
	logger    *slog.Logger
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a Store and loads the persisted collection.
func New(ctx context.Context, p persist.Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    log.NullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collection with the persisted one.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.persister.Load(ctx)
	if err != nil {
		return &PersistenceError{Op: "loading", Err: err}
	}
	version, err := versionOf(recipes)
	if err != nil {
		return err
	}
	warnDuplicates(ctx, s.logger, recipes)

	s.recipes = recipes
	s.version = version
	s.logger.DebugContext(ctx, "Loaded recipes", slog.Int("count", len(recipes)), slog.String("version", version))
	return nil
}

// Version identifies the current content of the collection. It changes
// whenever a write succeeds or a reload brings in different content.
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// All returns a copy of the collection in storage order, newest insert first.
func (s *Store) All() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := recipe.CloneAll(s.recipes)
	if out == nil {
		out = []recipe.Recipe{}
	}
	return out
}

// Slugs returns every current slug in storage order.
func (s *Store) Slugs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slugs := make([]string, len(s.recipes))
	for i, r := range s.recipes {
		slugs[i] = r.Slug
	}
	return slugs
}

// GetBySlug matches the current slug only.
func (s *Store) GetBySlug(slug string) (recipe.Recipe, error) {
	return s.find(func(r recipe.Recipe) bool { return r.Slug == slug })
}

// GetByFormerSlug returns the first recipe, in storage order, that used slug
// before it was renamed.
func (s *Store) GetByFormerSlug(slug string) (recipe.Recipe, error) {
	return s.find(func(r recipe.Recipe) bool { return slices.Contains(r.FormerSlugs, slug) })
}

func (s *Store) GetByID(id string) (recipe.Recipe, error) {
	return s.find(func(r recipe.Recipe) bool { return r.ID == id })
}

func (s *Store) find(match func(recipe.Recipe) bool) (recipe.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := slices.IndexFunc(s.recipes, match); i >= 0 {
		return s.recipes[i].Clone(), nil
	}
	return recipe.Recipe{}, ErrNotFound
}

// ListOptions selects one page of the collection. A zero Page or PageSize
// means the first page of DefaultPageSize; negative values are rejected.
type ListOptions struct {
	Page      int
	PageSize  int
	Filters   []query.Filter
	OrderBy   string
	Direction query.Direction
}

// List filters, sorts and paginates a snapshot of the collection. Malformed
// filters or sort options are returned as *query.MalformedFilterError so the
// caller can decide whether to retry without them.
func (s *Store) List(opts ListOptions) (pagination.Page[recipe.Recipe], error) {
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Page < 1 || opts.PageSize < 1 {
		return pagination.Page[recipe.Recipe]{}, pagination.ErrInvalidPage
	}

	matched, err := query.Apply(s.All(), opts.Filters)
	if err != nil {
		return pagination.Page[recipe.Recipe]{}, err
	}
	if err := query.Sort(matched, opts.OrderBy, opts.Direction); err != nil {
		return pagination.Page[recipe.Recipe]{}, err
	}
	return pagination.Paginate(matched, opts.Page, opts.PageSize)
}

func versionOf(recipes []recipe.Recipe) (string, error) {
	data, err := persist.Encode(recipes)
	if err != nil {
		return "", fmt.Errorf("hashing recipes: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}

func warnDuplicates(ctx context.Context, logger *slog.Logger, recipes []recipe.Recipe) {
	ids := make(map[string]struct{}, len(recipes))
	slugs := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if _, ok := ids[r.ID]; ok {
			logger.WarnContext(ctx, "Duplicate recipe id in persisted document", slog.String("id", r.ID))
		}
		if _, ok := slugs[r.Slug]; ok {
			logger.WarnContext(ctx, "Duplicate recipe slug in persisted document", slog.String("slug", r.Slug))
		}
		ids[r.ID] = struct{}{}
		slugs[r.Slug] = struct{}{}
	}
}
