package buildhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	mhttp "github.com/matt-dz/silviakaka/internal/http"
	"github.com/matt-dz/silviakaka/internal/log"
)

func testClient() *mhttp.HTTP {
	client := mhttp.DefaultConfig(nil)
	client.RetryMax = 1
	client.RetryWaitMin = time.Millisecond
	client.RetryWaitMax = time.Millisecond
	return mhttp.New(client)
}

func TestWebhookNotify(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %q", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, testClient())
	event := Event{Action: ActionUpdated, ID: "1", Slug: "silviakaka", Version: "abc"}
	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if got.Action != ActionUpdated || got.Slug != "silviakaka" || got.Version != "abc" {
		t.Errorf("received %+v", got)
	}
}

func TestWebhookNotify_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, testClient())
	if err := hook.Notify(context.Background(), Event{Action: ActionDeleted}); err == nil {
		t.Error("expected error, got nil")
	}
}

type recordingHook struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingHook) Notify(ctx context.Context, event Event) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func TestAsync(t *testing.T) {
	rec := &recordingHook{}
	async := NewAsync(rec, log.NullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	if err := async.Notify(ctx, Event{Action: ActionCreated, Slug: "kladdkaka"}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	// Cancelling the request must not cancel the delivery.
	cancel()
	async.Wait()

	if len(rec.events) != 1 {
		t.Fatalf("delivered %d events, want 1", len(rec.events))
	}
	if rec.events[0].At.IsZero() {
		t.Error("At should be stamped")
	}
}

func TestAsync_FailureIsSwallowed(t *testing.T) {
	async := NewAsync(&recordingHook{err: errors.New("builder down")}, nil)
	if err := async.Notify(context.Background(), Event{Action: ActionDeleted}); err != nil {
		t.Errorf("Notify() error = %v, want nil", err)
	}
	async.Wait()
}

func TestNop(t *testing.T) {
	var h Hook = Nop{}
	if err := h.Notify(context.Background(), Event{}); err != nil {
		t.Errorf("Nop.Notify() error = %v", err)
	}
}
