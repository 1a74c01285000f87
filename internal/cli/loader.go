package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matt-dz/silviakaka/internal/config"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/log"
	"github.com/matt-dz/silviakaka/internal/persist"
	"github.com/matt-dz/silviakaka/internal/setup"
	"github.com/matt-dz/silviakaka/internal/sitegen"
	"github.com/matt-dz/silviakaka/internal/store"
)

// source is where the collection and site settings come from, after flags
// have been merged over the configuration.
type source struct {
	persister    persist.Persister
	closeFn      func()
	taxonomyPath string
	pageSize     int
	filterPolicy string
}

// openEnv loads the collection read-only and wires the read side around it.
// The returned close function is never nil.
func openEnv(ctx context.Context, opts *RootOptions, stderr io.Writer) (*env.Env, func(), error) {
	logger := log.NullLogger()
	if opts.Verbose {
		logger = log.NewWithWriter(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	src, err := resolveSource(ctx, opts)
	if err != nil {
		return nil, func() {}, err
	}

	st, err := store.New(ctx, src.persister, store.WithLogger(logger))
	if err != nil {
		src.closeFn()
		return nil, func() {}, WrapExitError(ExitCommandError, "loading recipes", err)
	}
	taxonomy, err := setup.Taxonomy(src.taxonomyPath)
	if err != nil {
		src.closeFn()
		return nil, func() {}, WrapExitError(ExitCommandError, "loading taxonomy", err)
	}
	policy, err := sitegen.ParseFilterPolicy(src.filterPolicy)
	if err != nil {
		src.closeFn()
		return nil, func() {}, WrapExitError(ExitCommandError, "invalid filter policy", err)
	}

	e := env.New(logger, st, taxonomy,
		sitegen.WithPageSize(src.pageSize),
		sitegen.WithFilterPolicy(policy))
	return e, src.closeFn, nil
}

func resolveSource(ctx context.Context, opts *RootOptions) (source, error) {
	if opts.File != "" {
		path, err := filepath.Abs(opts.File)
		if err != nil {
			return source{}, WrapExitError(ExitCommandError, "resolving recipe file", err)
		}
		if _, err := os.Stat(path); err != nil {
			return source{}, WrapExitError(ExitCommandError, "opening recipe file", err)
		}
		return source{
			persister:    persist.NewFile(path),
			closeFn:      func() {},
			taxonomyPath: opts.Taxonomy,
			pageSize:     opts.PageSize,
			filterPolicy: opts.FilterPolicy,
		}, nil
	}

	conf, err := config.LoadConfig()
	if err != nil {
		return source{}, WrapExitError(ExitCommandError, "loading configuration", err)
	}
	p, closeFn, err := setup.Persister(ctx, conf.Storage)
	if err != nil {
		return source{}, WrapExitError(ExitCommandError, "opening recipe storage", err)
	}

	src := source{
		persister:    p,
		closeFn:      closeFn,
		taxonomyPath: conf.Site.TaxonomyPath,
		pageSize:     conf.Site.PageSize,
		filterPolicy: string(conf.Site.FilterPolicy),
	}
	if opts.Taxonomy != "" {
		src.taxonomyPath = opts.Taxonomy
	}
	if opts.PageSize > 0 {
		src.pageSize = opts.PageSize
	}
	if opts.FilterPolicy != "" {
		src.filterPolicy = opts.FilterPolicy
	}
	return src, nil
}

// withEnv opens the collection, runs fn and releases the backend.
func withEnv(ctx context.Context, opts *RootOptions, stderr io.Writer, fn func(*env.Env) error) error {
	e, closeFn, err := openEnv(ctx, opts, stderr)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(e)
}
