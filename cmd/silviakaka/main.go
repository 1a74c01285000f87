package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/matt-dz/silviakaka/internal/api"
	"github.com/matt-dz/silviakaka/internal/buildhook"
	"github.com/matt-dz/silviakaka/internal/config"
	"github.com/matt-dz/silviakaka/internal/env"
	"github.com/matt-dz/silviakaka/internal/log"
	"github.com/matt-dz/silviakaka/internal/setup"
	"github.com/matt-dz/silviakaka/internal/watch"
)

const (
	setupTime    = 30 * time.Second
	shutdownTime = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	bootLogger := log.New(nil)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		bootLogger.Warn("failed to load .env", slog.Any("error", err))
	}

	conf, err := config.LoadConfig()
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	logger := log.New(&slog.HandlerOptions{Level: level})
	slog.SetDefault(logger)

	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()
	environment, closeFn, err := setup.Env(setupCtx, &conf, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	if async, ok := environment.Hook.(*buildhook.Async); ok {
		defer async.Wait()
	}
	logger.Info("loaded recipes",
		slog.Int("count", environment.Store.Len()),
		slog.String("backend", string(conf.Storage.Backend)),
		slog.String("version", environment.Store.Version()))

	if conf.Storage.Backend == config.StorageFile && conf.Storage.Watch {
		if err := startWatcher(ctx, conf.Storage.Path, environment); err != nil {
			return err
		}
	}

	opts := api.Options{
		Port:              conf.Port,
		HostOrigin:        conf.HostOrigin,
		IsProd:            conf.Env == config.EnvProd,
		RequestsPerMinute: conf.RateLimit.RequestsPerMinute,
		Burst:             conf.RateLimit.Burst,
	}
	if !conf.Minio.Enabled() {
		opts.ImagesDir = conf.Fileserver.Volume
		opts.ImagesPrefix = conf.Fileserver.URLPrefix
	}
	server := api.NewServer(ctx, environment, opts)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", server.Addr))
		if !opts.IsProd {
			logger.Info("swagger UI available at /api/swagger/index.html")
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTime)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}

// startWatcher reloads the store whenever the recipe file changes on disk.
func startWatcher(ctx context.Context, path string, environment *env.Env) error {
	reload := watch.OnChange(environment.Store, func(ctx context.Context, version string) error {
		return environment.Hook.Notify(ctx, buildhook.Event{
			Action:  buildhook.ActionReload,
			Version: version,
			At:      time.Now().UTC(),
		})
	})

	w, err := watch.New(path, reload, watch.WithLogger(environment.Logger))
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			environment.Logger.Error("file watcher stopped", slog.Any("error", err))
		}
	}()
	environment.Logger.Info("watching recipe file", slog.String("path", path))
	return nil
}
