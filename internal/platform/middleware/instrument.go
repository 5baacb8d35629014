package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"jirantetangga/internal/platform/logger"
	"jirantetangga/internal/platform/metrics"
	"jirantetangga/pkg/httputil"
	"jirantetangga/pkg/requestcontext"
)

// Instrumenter emits the "received"/"completed"/"failed" lifecycle events for
// every endpoint of one resource module, so handlers never hand-roll log
// calls. It also records request metrics and converts panics into the 500
// envelope at the handler boundary.
type Instrumenter struct {
	log     *logger.Logger
	metrics *metrics.Metrics
	service string
	module  string
}

// NewInstrumenter binds the lifecycle logger to one module's log labels.
func NewInstrumenter(log *logger.Logger, m *metrics.Metrics, service, module string) *Instrumenter {
	return &Instrumenter{log: log, metrics: m, service: service, module: module}
}

// Module returns the module label, used by routers for metric labels.
func (i *Instrumenter) Module() string {
	return i.module
}

// Wrap instruments one endpoint. apiName is the human-readable endpoint name
// carried on every log line (e.g. "Get All Shops API").
func (i *Instrumenter) Wrap(apiName string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := requestcontext.TraceID(r.Context())
		start := time.Now()

		i.log.Log(logger.Entry{
			Level:   logger.LevelInfo,
			Message: apiName + " received",
			Method:  r.Method,
			TraceID: traceID,
			Module:  i.module,
			Service: i.service,
			APIName: apiName,
		})

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if v := recover(); v != nil {
				err, ok := v.(error)
				if !ok {
					err = fmt.Errorf("%v", v)
				}
				rec.status = http.StatusInternalServerError
				httputil.ServerError(rec, apiName, err)
			}
			i.finish(apiName, traceID, rec.status, start)
		}()

		next(rec, r)
	}
}

func (i *Instrumenter) finish(apiName, traceID string, status int, start time.Time) {
	level := logger.LevelInfo
	message := apiName + " completed"
	if status >= http.StatusBadRequest {
		level = logger.LevelError
		message = apiName + " failed"
	}
	i.log.Log(logger.Entry{
		Level:   level,
		Message: message,
		Status:  status,
		TraceID: traceID,
		Module:  i.module,
		Service: i.service,
		APIName: apiName,
	})
	if i.metrics != nil {
		i.metrics.Observe(i.module, statusClass(status), time.Since(start).Seconds())
	}
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
