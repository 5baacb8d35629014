package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func silentConsole() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestFormatLineSkipsUnsetFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	line := formatLine(now, Entry{
		Level:   LevelInfo,
		Message: "Response Success",
		Module:  "shops",
		Service: "jiran-tetangga",
	})

	if strings.Contains(line, "method=") || strings.Contains(line, "status=") {
		t.Fatalf("unset fields must be omitted: %q", line)
	}
	for _, want := range []string{
		`timestamp="2025-06-01T12:00:00Z"`,
		`level="info"`,
		`message="Response Success"`,
		`module="shops"`,
		`service="jiran-tetangga"`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in line %q", want, line)
		}
	}
}

func TestFormatLineEncodesData(t *testing.T) {
	now := time.Now()
	line := formatLine(now, Entry{
		Level:   LevelError,
		Message: "boom",
		Status:  500,
		TraceID: "trace-1",
		Module:  "events",
		Service: "svc",
		APIName: "Get All Events API",
		Data:    map[string]string{"k": "v 1"},
	})

	if !strings.Contains(line, `status=500`) {
		t.Fatalf("expected numeric status, got %q", line)
	}
	if !strings.Contains(line, `data={"k":"v 1"}`) {
		t.Fatalf("expected JSON-encoded data, got %q", line)
	}
	if !strings.Contains(line, `apiName="Get All Events API"`) {
		t.Fatalf("expected apiName, got %q", line)
	}
}

func TestLogShipsStreamEnvelope(t *testing.T) {
	var mu sync.Mutex
	var got pushRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	l := New(silentConsole(), srv.URL, "1295685:loki-token")
	l.Log(Entry{
		Level:   LevelInfo,
		Message: "received",
		TraceID: "trace-7",
		Module:  "parks",
		Service: "jiran-tetangga",
	})
	l.Flush()

	mu.Lock()
	defer mu.Unlock()
	if auth != "Bearer 1295685:loki-token" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
	if len(got.Streams) != 1 {
		t.Fatalf("expected one stream, got %d", len(got.Streams))
	}
	stream := got.Streams[0]
	if stream.Stream["level"] != "info" || stream.Stream["module"] != "parks" || stream.Stream["service"] != "jiran-tetangga" {
		t.Fatalf("unexpected stream labels: %v", stream.Stream)
	}
	if len(stream.Values) != 1 {
		t.Fatalf("expected one value pair")
	}
	ts, line := stream.Values[0][0], stream.Values[0][1]
	if len(ts) < 19 {
		t.Fatalf("expected nanosecond timestamp, got %q", ts)
	}
	if !strings.Contains(line, `traceId="trace-7"`) {
		t.Fatalf("expected trace id in shipped line %q", line)
	}
}

func TestShippingFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var console bytes.Buffer
	l := New(slog.New(slog.NewTextHandler(&console, nil)), srv.URL, "token")
	l.Log(Entry{Message: "hello"})
	l.Flush()

	if !strings.Contains(console.String(), "failed to ship log entry") {
		t.Fatalf("expected console notice about failed shipping, got %q", console.String())
	}
}

func TestEmptyHostDisablesShipping(t *testing.T) {
	var console bytes.Buffer
	l := New(slog.New(slog.NewTextHandler(&console, nil)), "", "")
	l.Log(Entry{Message: "local only"})
	l.Flush()

	if !strings.Contains(console.String(), "local only") {
		t.Fatalf("expected console line, got %q", console.String())
	}
}

func TestLogAppliesDefaults(t *testing.T) {
	var got pushRequest
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	l := New(silentConsole(), srv.URL, "t")
	l.Log(Entry{Message: "defaults"})
	l.Flush()

	mu.Lock()
	defer mu.Unlock()
	labels := got.Streams[0].Stream
	if labels["level"] != "info" || labels["module"] != "general" || labels["service"] != "app" {
		t.Fatalf("expected default labels, got %v", labels)
	}
}
