package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

func TestExpectStatus2xx(t *testing.T) {
	tests := []struct {
		status  int
		wantErr bool
	}{
		{status: http.StatusOK},
		{status: http.StatusNoContent},
		{status: http.StatusMultipleChoices, wantErr: true},
		{status: http.StatusBadGateway, wantErr: true},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		rec.WriteHeader(tt.status)
		_, _ = rec.WriteString("body")
		err := ExpectStatus2xx(rec.Result())
		if (err != nil) != tt.wantErr {
			t.Errorf("ExpectStatus2xx(%d) error = %v, wantErr %v", tt.status, err, tt.wantErr)
		}
	}
}

func TestDefaultConfigRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := DefaultConfig(nil)
	client.RetryWaitMin = time.Millisecond
	client.RetryWaitMax = time.Millisecond
	h := New(client)

	req, err := retryablehttp.NewRequest(http.MethodPost, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := h.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := ExpectStatus2xx(resp); err != nil {
		t.Errorf("ExpectStatus2xx() error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}
