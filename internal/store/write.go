package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

type writeOptions struct {
	version string
}

// WriteOption modifies a single write.
type WriteOption func(*writeOptions)

// IfVersion makes the write fail with ErrVersionMismatch unless the
// collection is still at version.
func IfVersion(version string) WriteOption {
	return func(o *writeOptions) {
		o.version = version
	}
}

// withWriteLock runs fn as one read-modify-write transaction. fn receives a
// private copy of the collection and returns the collection to persist. The
// result only replaces the in-memory collection once it has been saved.
func (s *Store) withWriteLock(
	ctx context.Context,
	opts []WriteOption,
	fn func(current []recipe.Recipe) ([]recipe.Recipe, error),
) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if o.version != "" && o.version != s.version {
		return ErrVersionMismatch
	}

	next, err := fn(recipe.CloneAll(s.recipes))
	if err != nil {
		return err
	}
	version, err := versionOf(next)
	if err != nil {
		return err
	}
	if err := s.persister.Save(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save recipes", slog.Any("error", err))
		return &PersistenceError{Op: "saving", Err: err}
	}

	s.recipes = next
	s.version = version
	return nil
}

// Insert validates r and prepends it to the collection.
func (s *Store) Insert(ctx context.Context, r recipe.Recipe, opts ...WriteOption) (recipe.Recipe, error) {
	r = r.Clone()
	if err := recipe.Validate(r); err != nil {
		return recipe.Recipe{}, err
	}

	err := s.withWriteLock(ctx, opts, func(current []recipe.Recipe) ([]recipe.Recipe, error) {
		for _, existing := range current {
			if existing.ID == r.ID {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
			}
			if existing.Slug == r.Slug {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, r.Slug)
			}
		}
		return append([]recipe.Recipe{r}, current...), nil
	})
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.logger.InfoContext(ctx, "Inserted recipe", slog.String("id", r.ID), slog.String("slug", r.Slug))
	return r.Clone(), nil
}

// Update replaces the recipe with the same id. When the slug changes, the old
// slug is appended to the slug history so it keeps resolving.
func (s *Store) Update(ctx context.Context, r recipe.Recipe, opts ...WriteOption) (recipe.Recipe, error) {
	r = r.Clone()
	if err := recipe.Validate(r); err != nil {
		return recipe.Recipe{}, err
	}

	err := s.withWriteLock(ctx, opts, func(current []recipe.Recipe) ([]recipe.Recipe, error) {
		i := slices.IndexFunc(current, func(existing recipe.Recipe) bool { return existing.ID == r.ID })
		if i < 0 {
			return nil, fmt.Errorf("%w: id %q", ErrNotFound, r.ID)
		}
		for j, existing := range current {
			if j != i && existing.Slug == r.Slug {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, r.Slug)
			}
		}

		r.FormerSlugs = mergeHistory(current[i], r)
		if r.Extra == nil {
			r.Extra = current[i].Extra
		}
		current[i] = r
		return current, nil
	})
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.logger.InfoContext(ctx, "Updated recipe", slog.String("id", r.ID), slog.String("slug", r.Slug))
	return r.Clone(), nil
}

// Delete removes the recipe with the given id and returns it.
func (s *Store) Delete(ctx context.Context, id string, opts ...WriteOption) (recipe.Recipe, error) {
	var removed recipe.Recipe
	err := s.withWriteLock(ctx, opts, func(current []recipe.Recipe) ([]recipe.Recipe, error) {
		i := slices.IndexFunc(current, func(existing recipe.Recipe) bool { return existing.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
		}
		removed = current[i]
		return slices.Delete(current, i, i+1), nil
	})
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.logger.InfoContext(ctx, "Deleted recipe", slog.String("id", id))
	return removed, nil
}

// mergeHistory keeps the stored history, adds any slugs the update brings
// along, and records the stored slug if it is being replaced. The current
// slug never appears in its own history.
func mergeHistory(stored, updated recipe.Recipe) []string {
	var history []string
	add := func(slug string) {
		if slug != "" && slug != updated.Slug && !slices.Contains(history, slug) {
			history = append(history, slug)
		}
	}
	for _, slug := range stored.FormerSlugs {
		add(slug)
	}
	for _, slug := range updated.FormerSlugs {
		add(slug)
	}
	add(stored.Slug)
	return history
}
