package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"jirantetangga/internal/platform/logger"
	"jirantetangga/internal/platform/metrics"
	"jirantetangga/pkg/requestcontext"
)

// capturingSink records shipped lines via a local test server. Entries ship
// on separate goroutines, so appends are guarded.
func capturingSink(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var lines []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Streams []struct {
				Values [][2]string `json:"values"`
			} `json:"streams"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		mu.Lock()
		defer mu.Unlock()
		for _, s := range payload.Streams {
			for _, v := range s.Values {
				lines = append(lines, v[1])
			}
		}
	}))
	return srv, &lines
}

func TestWrapEmitsLifecycleEvents(t *testing.T) {
	srv, lines := capturingSink(t)
	defer srv.Close()

	log := logger.New(silentConsole(), srv.URL, "token")
	inst := NewInstrumenter(log, nil, "jiran-tetangga", "shops")

	handler := inst.Wrap("Get All Shops API", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/shops", nil)
	req = req.WithContext(requestcontext.WithTraceID(req.Context(), "trace-42"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	log.Flush()

	if len(*lines) != 2 {
		t.Fatalf("expected received+completed lines, got %d: %v", len(*lines), *lines)
	}
	// Shipping is fire-and-forget, so delivery order is not guaranteed.
	joined := strings.Join(*lines, "\n")
	if !strings.Contains(joined, "Get All Shops API received") {
		t.Fatalf("missing received event: %q", joined)
	}
	if !strings.Contains(joined, "Get All Shops API completed") || !strings.Contains(joined, "status=200") {
		t.Fatalf("missing completed event: %q", joined)
	}
	for _, line := range *lines {
		if !strings.Contains(line, `traceId="trace-42"`) {
			t.Fatalf("trace id must thread through every line: %q", line)
		}
	}
}

func TestWrapLogsFailureForErrorStatus(t *testing.T) {
	srv, lines := capturingSink(t)
	defer srv.Close()

	log := logger.New(silentConsole(), srv.URL, "token")
	inst := NewInstrumenter(log, nil, "jiran-tetangga", "parks")

	handler := inst.Wrap("Get All Parks API", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/parks", nil))
	log.Flush()

	joined := strings.Join(*lines, "\n")
	if !strings.Contains(joined, "Get All Parks API failed") || !strings.Contains(joined, `level="error"`) {
		t.Fatalf("4xx outcome must log a failed event at error level: %q", joined)
	}
}

func TestWrapConvertsPanicToServerError(t *testing.T) {
	log := logger.New(silentConsole(), "", "")
	inst := NewInstrumenter(log, nil, "jiran-tetangga", "events")

	handler := inst.Wrap("Get All Events API", func(w http.ResponseWriter, r *http.Request) {
		panic("storage handle gone")
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
			Stack   string `json:"stack"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Get All Events API error" {
		t.Fatalf("expected generic per-endpoint message, got %q", body.Message)
	}
	if body.Error == nil || body.Error.Message != "storage handle gone" || body.Error.Stack == "" {
		t.Fatalf("expected diagnostic descriptor, got %+v", body.Error)
	}
}

func TestWrapRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := logger.New(silentConsole(), "", "")
	inst := NewInstrumenter(log, m, "jiran-tetangga", "reports")

	handler := inst.Wrap("Get All Reports API", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reports", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "jirantetangga_http_requests_total" {
			for _, metric := range f.GetMetric() {
				labels := map[string]string{}
				for _, l := range metric.GetLabel() {
					labels[l.GetName()] = l.GetValue()
				}
				if labels["module"] == "reports" && labels["status"] == "4xx" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected request counter labeled reports/4xx")
	}
}

func TestTraceMiddlewareMintsUniqueIDs(t *testing.T) {
	var ids []string
	handler := Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, requestcontext.TraceID(r.Context()))
	}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if got := w.Header().Get(TraceHeader); got == "" || got != ids[i] {
			t.Fatalf("trace header must mirror the context value")
		}
	}
	if ids[0] == ids[1] {
		t.Fatalf("each request must get its own trace id")
	}
}
