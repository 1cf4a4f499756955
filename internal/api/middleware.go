package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/logger"
	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/rs/cors"
)

const (
	eventTypeHTTPRequest = "http_request"
	traceIDHeader        = "X-Trace-Id"
)

var (
	allowedMethods = []string{"GET", "POST", "OPTIONS"}
	allowedHeaders = []string{"Content-Type", "Authorization"}
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// LoggingMiddleware attaches a wide event to the request context and emits it
// once the handler returns.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		event := logging.NewWideEvent(eventTypeHTTPRequest)
		ctx := logging.WithContext(r.Context(), event)
		logging.EnrichHTTP(ctx, r.Method, r.URL.Path, r.UserAgent())
		w.Header().Set(traceIDHeader, event.TraceID)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		logging.EnrichHTTPStatus(ctx, rec.status)
		logging.EnrichHTTPDuration(ctx, time.Since(start))
		logging.Emit(ctx)
	})
}

// RecoveryMiddleware turns a handler panic into an Internal error envelope.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := r.Context()
				logging.EnrichPanic(ctx)
				logger.Log.Error("panic in handler",
					"trace_id", logging.GetTraceID(ctx),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				writeJSONError(w, r, errs.Errorf(errs.Internal, "", "internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: allowedMethods,
		AllowedHeaders: allowedHeaders,
		ExposedHeaders: []string{traceIDHeader},
	})
}
