// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matt-dz/silviakaka/internal/argon2id"
	"github.com/matt-dz/silviakaka/internal/buildhook"
	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/config"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/filestore"
	mhttp "github.com/matt-dz/silviakaka/internal/http"
	"github.com/matt-dz/silviakaka/internal/persist"
	"github.com/matt-dz/silviakaka/internal/sitegen"
	"github.com/matt-dz/silviakaka/internal/store"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Persister opens the recipe document for the configured backend. The
// returned close function releases connections and is never nil.
func Persister(ctx context.Context, cfg config.Storage) (persist.Persister, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.StorageFile:
		path, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, noop, NewBackendError(string(cfg.Backend), err)
		}
		return persist.NewFile(path), noop, nil

	case config.StorageS3:
		client := persist.NewS3Client(persist.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		return persist.NewS3(client, cfg.S3.Bucket, cfg.S3.Key), noop, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.URL())
		if err != nil {
			return nil, noop, NewBackendError(string(cfg.Backend), fmt.Errorf("creating database pool: %w", err))
		}
		p := persist.NewPostgres(pool, cfg.Database.Document)
		if err := p.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, NewBackendError(string(cfg.Backend), fmt.Errorf("initializing database: %w", err))
		}
		return p, pool.Close, nil
	}

	return nil, noop, NewBackendError(string(cfg.Backend), ErrUnknownBackend)
}

// FileStore returns the MinIO store when it is configured and the local
// volume otherwise.
func FileStore(cfg *config.Config) (filestore.FileStoreInterface, error) {
	if cfg.Minio.Enabled() {
		opts := filestore.MinioOptions{
			Endpoint:        cfg.Minio.Endpoint,
			Bucket:          cfg.Minio.Bucket,
			AccessKeyID:     cfg.Minio.AccessKeyID,
			SecretAccessKey: cfg.Minio.SecretAccessKey,
			UseSSL:          cfg.Minio.UseSSL,
		}
		client, err := filestore.NewMinioClient(opts)
		if err != nil {
			return nil, err
		}
		return filestore.NewMinio(client, opts.Bucket, filestore.PublicBaseURL(opts)), nil
	}

	fileserverPath, err := filepath.Abs(cfg.Fileserver.Volume)
	if err != nil {
		return nil, fmt.Errorf("creating fileserver path: %w", err)
	}
	urlPrefix := cfg.Fileserver.URLPrefix
	if urlPrefix == "" {
		urlPrefix = filestore.DefaultURLPrefix
	}
	return filestore.New(fileserverPath, urlPrefix, cfg.HostOrigin), nil
}

// Taxonomy loads the category file at path, or the built-in taxonomy when
// path is empty.
func Taxonomy(path string) (category.Taxonomy, error) {
	if path == "" {
		return category.Default(), nil
	}
	t, err := category.LoadTaxonomy(path)
	if err != nil {
		return category.Taxonomy{}, fmt.Errorf("loading taxonomy: %w", err)
	}
	return t, nil
}

// Auth hashes the configured admin password. The plain password is not kept.
func Auth(cfg *config.Config, params argon2id.Params) (env.Auth, error) {
	auth := env.Auth{
		Token:         cfg.Admin.Token,
		Username:      cfg.Admin.Username,
		SecretVersion: cfg.AppSecret.Version,
	}
	if cfg.AppSecret.Value != nil {
		auth.Secret = []byte(*cfg.AppSecret.Value)
	}
	if cfg.Admin.Password == "" {
		return auth, nil
	}

	hash, err := argon2id.New(string(cfg.Admin.Password), params)
	if err != nil {
		return env.Auth{}, fmt.Errorf("hashing admin password: %w", err)
	}
	auth.PasswordHash = hash
	return auth, nil
}

// Hook returns a background webhook when a rebuild URL is configured.
func Hook(cfg *config.Config, logger *slog.Logger) buildhook.Hook {
	if cfg.Site.RebuildHookURL == "" {
		return buildhook.Nop{}
	}
	client := mhttp.New(mhttp.DefaultConfig(logger))
	return buildhook.NewAsync(buildhook.NewWebhook(cfg.Site.RebuildHookURL, client), logger)
}

// Env builds every application dependency from cfg.
func Env(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*env.Env, func(), error) {
	p, closeFn, err := Persister(ctx, cfg.Storage)
	if err != nil {
		return nil, closeFn, err
	}

	st, err := store.New(ctx, p, store.WithLogger(logger))
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("loading recipes: %w", err)
	}

	taxonomy, err := Taxonomy(cfg.Site.TaxonomyPath)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}

	policy, err := sitegen.ParseFilterPolicy(string(cfg.Site.FilterPolicy))
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}

	e := env.New(logger, st, taxonomy,
		sitegen.WithPageSize(cfg.Site.PageSize),
		sitegen.WithFilterPolicy(policy))

	if e.FileStore, err = FileStore(cfg); err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("creating file store: %w", err)
	}
	if e.Auth, err = Auth(cfg, argon2id.DefaultParams); err != nil {
		closeFn()
		return nil, func() {}, err
	}
	e.Hook = Hook(cfg, logger)
	if cfg.Fileserver.MaxImageWidth > 0 {
		e.Upload.MaxWidth = cfg.Fileserver.MaxImageWidth
	}

	return e, closeFn, nil
}
