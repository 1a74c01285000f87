package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matt-dz/silviakaka/internal/recipe"
)

// DefaultDocument is the row name used when none is configured.
const DefaultDocument = "recipes"

const (
	createTable = `CREATE TABLE IF NOT EXISTS recipe_documents (
	name       text PRIMARY KEY,
	body       jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`
	selectDocument = `SELECT body FROM recipe_documents WHERE name = $1`
	upsertDocument = `INSERT INTO recipe_documents (name, body, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
)

// DBTX is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres keeps the collection as one jsonb row in recipe_documents.
type Postgres struct {
	db       DBTX
	document string
}

var _ Persister = (*Postgres)(nil)

func NewPostgres(db DBTX, document string) *Postgres {
	if document == "" {
		document = DefaultDocument
	}
	return &Postgres{db: db, document: document}
}

// EnsureSchema creates the documents table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("creating recipe_documents: %w", err)
	}
	return nil
}

// Load reads the row. A missing row is an empty collection.
func (p *Postgres) Load(ctx context.Context) ([]recipe.Recipe, error) {
	var body []byte
	err := p.db.QueryRow(ctx, selectDocument, p.document).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return []recipe.Recipe{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("selecting document %q: %w", p.document, err)
	}
	return Decode(body)
}

func (p *Postgres) Save(ctx context.Context, recipes []recipe.Recipe) error {
	data, err := Encode(recipes)
	if err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, upsertDocument, p.document, json.RawMessage(data)); err != nil {
		return fmt.Errorf("upserting document %q: %w", p.document, err)
	}
	return nil
}
