// Package logger formats and ships the structured request-lifecycle log lines.
//
// Each entry becomes one space-delimited key=value line, wrapped in the log
// sink's push-stream envelope and delivered over HTTP. Delivery is
// fire-and-forget: failures surface on the console logger only and never
// propagate to the request being instrumented.
package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// Log levels used across the service.
const (
	LevelCritical = "critical"
	LevelError    = "error"
	LevelWarning  = "warning"
	LevelInfo     = "info"
	LevelDebug    = "debug"
)

// Entry is one request-lifecycle event. Zero-valued fields are left out of
// the formatted line.
type Entry struct {
	Level   string
	Message string
	Method  string
	Status  int
	TraceID string
	Module  string
	Service string
	APIName string
	Data    interface{}
}

// Logger ships entries to the external sink and mirrors them on the console.
type Logger struct {
	console *slog.Logger
	host    string
	token   string
	client  *http.Client
	now     func() time.Time

	wg sync.WaitGroup
}

// New builds a Logger. An empty host disables shipping; entries then go to
// the console only. token is sent verbatim after "Bearer ", so Grafana Cloud
// deployments store the combined "<user-id>:<api-key>" form in LOKI_TOKEN.
func New(console *slog.Logger, host, token string) *Logger {
	if console == nil {
		console = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return &Logger{
		console: console,
		host:    host,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
		now:     time.Now,
	}
}

// Console exposes the underlying slog logger for components that only need
// local logging.
func (l *Logger) Console() *slog.Logger {
	return l.console
}

// Log emits the entry. Shipping happens on a goroutine; the caller never
// waits on it.
func (l *Logger) Log(e Entry) {
	if e.Level == "" {
		e.Level = LevelInfo
	}
	if e.Module == "" {
		e.Module = "general"
	}
	if e.Service == "" {
		e.Service = "app"
	}

	line := formatLine(l.now(), e)
	l.console.Info(line)

	if l.host == "" {
		return
	}
	payload := pushPayload(e, line, l.now())
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.push(payload); err != nil {
			l.console.Error("failed to ship log entry", "error", err)
		}
	}()
}

// Flush blocks until every in-flight shipment settles. Only tests need the
// determinism.
func (l *Logger) Flush() {
	l.wg.Wait()
}

// formatLine renders the space-delimited key=value line. Keys appear in a
// fixed order; values are JSON-encoded so embedded spaces stay parseable.
func formatLine(now time.Time, e Entry) string {
	var buf bytes.Buffer
	appendField(&buf, "timestamp", now.UTC().Format(time.RFC3339Nano))
	appendField(&buf, "level", e.Level)
	appendField(&buf, "message", e.Message)
	if e.Method != "" {
		appendField(&buf, "method", e.Method)
	}
	if e.Status != 0 {
		appendField(&buf, "status", e.Status)
	}
	if e.TraceID != "" {
		appendField(&buf, "traceId", e.TraceID)
	}
	appendField(&buf, "module", e.Module)
	appendField(&buf, "service", e.Service)
	if e.APIName != "" {
		appendField(&buf, "apiName", e.APIName)
	}
	if e.Data != nil {
		appendField(&buf, "data", e.Data)
	}
	return buf.String()
}

func appendField(buf *bytes.Buffer, key string, value interface{}) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
	buf.WriteString(key)
	buf.WriteByte('=')
	encoded, err := json.Marshal(value)
	if err != nil {
		encoded, _ = json.Marshal(fmt.Sprint(value))
	}
	buf.Write(encoded)
}

type pushStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type pushRequest struct {
	Streams []pushStream `json:"streams"`
}

// pushPayload wraps the line in the sink's stream envelope with a
// nanosecond-resolution timestamp.
func pushPayload(e Entry, line string, now time.Time) pushRequest {
	return pushRequest{
		Streams: []pushStream{{
			Stream: map[string]string{
				"level":   e.Level,
				"module":  e.Module,
				"service": e.Service,
			},
			Values: [][2]string{{strconv.FormatInt(now.UnixNano(), 10), line}},
		}},
	}
}

func (l *Logger) push(payload pushRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, l.host, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)

	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("log sink returned status %d", resp.StatusCode)
	}
	return nil
}
