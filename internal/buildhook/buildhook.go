// Package buildhook notifies the static site builder that recipes changed.
package buildhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	mhttp "github.com/matt-dz/silviakaka/internal/http"
	"github.com/matt-dz/silviakaka/internal/log"
)

type Action string

const (
	ActionCreated Action = "recipe.created"
	ActionUpdated Action = "recipe.updated"
	ActionDeleted Action = "recipe.deleted"
	ActionReload  Action = "recipes.reloaded"
)

// Event is the JSON body posted to the hook.
type Event struct {
	Action  Action    `json:"action"`
	ID      string    `json:"id,omitempty"`
	Slug    string    `json:"slug,omitempty"`
	Version string    `json:"version"`
	At      time.Time `json:"at"`
}

//go:generate mockgen -source=buildhook.go -destination=hookmock/hook.go -package=hookmock

type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// Nop is used when no hook URL is configured.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

// Webhook posts events to a deploy hook URL with retries.
type Webhook struct {
	url    string
	client mhttp.HTTPDoer
}

func NewWebhook(url string, client mhttp.HTTPDoer) *Webhook {
	return &Webhook{url: url, client: client}
}

func (w *Webhook) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting event: %w", err)
	}
	if err := mhttp.ExpectStatus2xx(resp); err != nil {
		return err
	}
	return resp.Body.Close()
}

// Async delivers events in the background so admin requests never wait on
// the builder. Failures are logged and dropped.
type Async struct {
	hook    Hook
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

const defaultTimeout = 30 * time.Second

func NewAsync(hook Hook, logger *slog.Logger) *Async {
	if logger == nil {
		logger = log.NullLogger()
	}
	return &Async{hook: hook, logger: logger, timeout: defaultTimeout}
}

func (a *Async) Notify(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	// The request context ends with the response; keep its values only.
	ctx = context.WithoutCancel(ctx)

	a.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		if err := a.hook.Notify(ctx, event); err != nil {
			a.logger.ErrorContext(ctx, "rebuild hook failed",
				slog.String("action", string(event.Action)), slog.Any("error", err))
			return
		}
		a.logger.DebugContext(ctx, "rebuild hook delivered", slog.String("action", string(event.Action)))
	})
	return nil
}

// Wait blocks until every pending delivery has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}
