package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAppendCtx(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	base := AppendCtx(context.Background(), slog.String("log_id", "01J"))
	a := AppendCtx(base, slog.String("slug", "silviakaka"))
	_ = AppendCtx(base, slog.String("slug", "kladdkaka"))

	logger.InfoContext(a, "resolved")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decoding log line: %v", err)
	}
	if record["log_id"] != "01J" {
		t.Errorf("log_id = %v", record["log_id"])
	}
	if record["slug"] != "silviakaka" {
		t.Errorf("slug = %v, want silviakaka", record["slug"])
	}
}

func TestWithAttrsKeepsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, nil).With(slog.String("component", "store"))

	logger.InfoContext(AppendCtx(context.Background(), slog.String("log_id", "abc")), "saved")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decoding log line: %v", err)
	}
	if record["component"] != "store" || record["log_id"] != "abc" {
		t.Errorf("record = %v", record)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
