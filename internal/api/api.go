// Package api sets up the API server with routing, middleware, and Swagger
// documentation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/matt-dz/silviakaka/docs"
	"github.com/matt-dz/silviakaka/internal/api/middleware"
	"github.com/matt-dz/silviakaka/internal/api/routes/admin"
	"github.com/matt-dz/silviakaka/internal/api/routes/auth"
	"github.com/matt-dz/silviakaka/internal/api/routes/ping"
	"github.com/matt-dz/silviakaka/internal/api/routes/recipes"
	"github.com/matt-dz/silviakaka/internal/api/routes/site"
	"github.com/matt-dz/silviakaka/internal/env"
)

const (
	DefaultPort         = 8080
	readHeaderTimeout   = 10 * time.Second
	limiterCleanupEvery = time.Minute
)

type Options struct {
	Port       uint16
	HostOrigin string
	IsProd     bool
	// RequestsPerMinute and Burst limit search and login per client IP.
	RequestsPerMinute int
	Burst             int
	// ImagesDir is served under ImagesPrefix when set. It is left empty when
	// images live in object storage.
	ImagesDir    string
	ImagesPrefix string
}

func addDocs(r chi.Router, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addImages(r chi.Router, dir, prefix string) {
	if dir == "" {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, req)
	})
}

func addRoutes(router chi.Router, limiter *middleware.RateLimiter) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Get("/recipes", recipes.HandleListRecipes)
		r.Get("/recipes/{slug}", recipes.HandleGetRecipe)
		r.With(limiter.Limit).Get("/search", recipes.HandleSearch)

		r.Get("/home", site.HandleHome)
		r.Get("/paths", site.HandlePaths)
		r.Get("/listing/{page}", site.HandleListing)
		r.Get("/categories", site.HandleCategories)
		r.Get("/categories/{slug}", site.HandleCategory)
		r.Get("/pillars/{slug}", site.HandlePillar)

		r.Route("/auth", func(r chi.Router) {
			r.With(limiter.Limit).Post("/login", auth.HandleLogin)
			r.With(middleware.Authorize).Get("/session", auth.HandleVerifySession)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authorize)

			r.Get("/recipes", admin.HandleListRecipes)
			r.Post("/recipes", admin.HandleCreateRecipe)
			r.Put("/recipes/{id}", admin.HandleUpdateRecipe)
			r.Delete("/recipes/{id}", admin.HandleDeleteRecipe)
			r.Post("/upload", admin.HandleUploadImage)
			r.Post("/reload", admin.HandleReload)
		})
	})
}

// NewRouter builds the HTTP handler. The rate limiter forgets idle clients
// until ctx is done.
//
//	@title						Silviakaka API
//	@version					1.0
//	@description				Recipe collection and static site data for silviakaka.se.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//
//	@host						localhost:8080
//	@BasePath					/api
func NewRouter(ctx context.Context, env *env.Env, opts Options) http.Handler {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	limiter := middleware.NewRateLimiter(opts.RequestsPerMinute, opts.Burst)
	go limiter.Run(ctx, limiterCleanupEvery)

	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.Cors(opts.HostOrigin, opts.IsProd))

	addRoutes(router, limiter)
	addImages(router, opts.ImagesDir, opts.ImagesPrefix)
	if !opts.IsProd {
		addDocs(router, fmt.Sprintf("localhost:%d", opts.Port))
	}
	return router
}

// NewServer returns a server for the router on opts.Port.
func NewServer(ctx context.Context, env *env.Env, opts Options) *http.Server {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(ctx, env, opts),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
