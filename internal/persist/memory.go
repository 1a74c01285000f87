package persist

import (
	"context"
	"sync"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

// Memory keeps the collection in process memory. It is used by tests and by
// dry runs of the CLI.
type Memory struct {
	mu      sync.Mutex
	recipes []recipe.Recipe
	saves   int
}

var _ Persister = (*Memory)(nil)

func NewMemory(recipes []recipe.Recipe) *Memory {
	return &Memory{recipes: recipe.CloneAll(recipes)}
}

func (m *Memory) Load(ctx context.Context) ([]recipe.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recipes == nil {
		return []recipe.Recipe{}, nil
	}
	return recipe.CloneAll(m.recipes), nil
}

func (m *Memory) Save(ctx context.Context, recipes []recipe.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes = recipe.CloneAll(recipes)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
