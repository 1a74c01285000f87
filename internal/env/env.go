// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/matt-dz/silviakaka/internal/buildhook"
	"github.com/matt-dz/silviakaka/internal/category"
	"github.com/matt-dz/silviakaka/internal/filestore"
	"github.com/matt-dz/silviakaka/internal/log"
	"github.com/matt-dz/silviakaka/internal/sitegen"
	"github.com/matt-dz/silviakaka/internal/slugs"
	"github.com/matt-dz/silviakaka/internal/store"
)

const (
	DefaultMaxUploadBytes = 10 << 20
	DefaultMaxImageWidth  = 1600
)

// Auth holds what the admin API needs to authenticate a request.
type Auth struct {
	// Token is a static bearer secret. Empty disables it.
	Token string
	// Username and PasswordHash (argon2id) enable JWT login.
	Username      string
	PasswordHash  string
	Secret        []byte
	SecretVersion string
}

// Enabled reports whether any admin credential is configured.
func (a Auth) Enabled() bool {
	return a.Token != "" || (a.Username != "" && a.PasswordHash != "")
}

type Upload struct {
	MaxBytes int64
	MaxWidth int
}

type Env struct {
	Logger    *slog.Logger
	Store     *store.Store
	Resolver  *slugs.Resolver
	Site      *sitegen.Generator
	Taxonomy  category.Taxonomy
	FileStore filestore.FileStoreInterface
	Hook      buildhook.Hook
	Auth      Auth
	Upload    Upload
}

// New wires the read side around st. FileStore, Auth and Hook are left for
// the caller; Hook defaults to a no-op.
func New(lg *slog.Logger, st *store.Store, taxonomy category.Taxonomy, siteOpts ...sitegen.Option) *Env {
	if lg == nil {
		lg = log.NullLogger()
	}
	siteOpts = append([]sitegen.Option{sitegen.WithLogger(lg)}, siteOpts...)

	return &Env{
		Logger:   lg,
		Store:    st,
		Resolver: slugs.NewResolver(st),
		Site:     sitegen.New(st, taxonomy, siteOpts...),
		Taxonomy: taxonomy,
		Hook:     buildhook.Nop{},
		Upload: Upload{
			MaxBytes: DefaultMaxUploadBytes,
			MaxWidth: DefaultMaxImageWidth,
		},
	}
}

func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
		Hook:   buildhook.Nop{},
	}
}

type envKeyType struct{}

var envKey envKeyType

func WithCtx(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey, env)
}

// EnvFromCtx returns the Env stored in ctx, or Null when there is none.
func EnvFromCtx(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey).(*Env); ok && env != nil {
		return env
	}
	return Null()
}
