package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const (
	contextKeyWideEvent contextKey = "wide_event"
	contextKeyTraceID   contextKey = "trace_id"
)

// WideEvent is a single structured log entry describing one generation
// request from upload to response. Pipeline stages fill it in as they run and
// it is emitted once when the request ends.
type WideEvent struct {
	TraceID   string    `json:"trace_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`

	HTTPMethod     string `json:"http_method,omitempty"`
	HTTPPath       string `json:"http_path,omitempty"`
	HTTPStatusCode int    `json:"http_status_code,omitempty"`
	HTTPDurationMs int64  `json:"http_duration_ms,omitempty"`
	UserAgent      string `json:"user_agent,omitempty"`

	// Upload
	Filename    string `json:"filename,omitempty"`
	FileFormat  string `json:"file_format,omitempty"`
	FileBytes   int    `json:"file_bytes,omitempty"`
	ColumnCount int    `json:"column_count,omitempty"`
	InputRows   int    `json:"input_rows,omitempty"`

	// Generation
	Stage            string `json:"stage,omitempty"`
	RowsRequested    int    `json:"rows_requested,omitempty"`
	RowsGenerated    int    `json:"rows_generated,omitempty"`
	Provider         string `json:"provider,omitempty"`
	Model            string `json:"model,omitempty"`
	SchemaPolicy     string `json:"schema_policy,omitempty"`
	PromptChars      int    `json:"prompt_chars,omitempty"`
	CompletionMs     int64  `json:"completion_ms,omitempty"`
	Attempts         int    `json:"attempts,omitempty"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`

	Error          string `json:"error,omitempty"`
	ErrorKind      string `json:"error_kind,omitempty"`
	ErrorStage     string `json:"error_stage,omitempty"`
	PanicRecovered bool   `json:"panic_recovered,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewWideEvent creates a new WideEvent with a trace ID and timestamp
func NewWideEvent(eventType string) *WideEvent {
	return &WideEvent{
		TraceID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Metadata:  make(map[string]interface{}),
	}
}

// WithContext attaches a WideEvent to a context
func WithContext(ctx context.Context, event *WideEvent) context.Context {
	ctx = context.WithValue(ctx, contextKeyWideEvent, event)
	ctx = context.WithValue(ctx, contextKeyTraceID, event.TraceID)
	return ctx
}

// FromContext retrieves the WideEvent from a context
func FromContext(ctx context.Context) *WideEvent {
	if event, ok := ctx.Value(contextKeyWideEvent).(*WideEvent); ok {
		return event
	}
	return nil
}

// GetTraceID retrieves just the trace ID from context
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(contextKeyTraceID).(string); ok {
		return traceID
	}
	return ""
}

// Enrich helpers - these allow different parts of the code to enrich the event

func EnrichHTTP(ctx context.Context, method, path, userAgent string) {
	if event := FromContext(ctx); event != nil {
		event.HTTPMethod = method
		event.HTTPPath = path
		event.UserAgent = userAgent
	}
}

func EnrichHTTPStatus(ctx context.Context, statusCode int) {
	if event := FromContext(ctx); event != nil {
		event.HTTPStatusCode = statusCode
	}
}

func EnrichHTTPDuration(ctx context.Context, duration time.Duration) {
	if event := FromContext(ctx); event != nil {
		event.HTTPDurationMs = duration.Milliseconds()
	}
}

func EnrichUpload(ctx context.Context, filename string, size int) {
	if event := FromContext(ctx); event != nil {
		event.Filename = filename
		event.FileBytes = size
	}
}

func EnrichTable(ctx context.Context, format string, columns, rows int) {
	if event := FromContext(ctx); event != nil {
		event.FileFormat = format
		event.ColumnCount = columns
		event.InputRows = rows
	}
}

func EnrichStage(ctx context.Context, stage string) {
	if event := FromContext(ctx); event != nil {
		event.Stage = stage
	}
}

func EnrichGeneration(ctx context.Context, provider, model, policy string, rowsRequested int) {
	if event := FromContext(ctx); event != nil {
		event.Provider = provider
		event.Model = model
		event.SchemaPolicy = policy
		event.RowsRequested = rowsRequested
	}
}

func EnrichPrompt(ctx context.Context, chars int) {
	if event := FromContext(ctx); event != nil {
		event.PromptChars = chars
	}
}

func EnrichCompletion(ctx context.Context, attempts int, duration time.Duration) {
	if event := FromContext(ctx); event != nil {
		event.Attempts = attempts
		event.CompletionMs = duration.Milliseconds()
	}
}

func EnrichTokens(ctx context.Context, prompt, completion int) {
	if event := FromContext(ctx); event != nil {
		event.PromptTokens += prompt
		event.CompletionTokens += completion
	}
}

func EnrichRowsGenerated(ctx context.Context, rows int) {
	if event := FromContext(ctx); event != nil {
		event.RowsGenerated = rows
	}
}

func EnrichError(ctx context.Context, err error, kind, stage string) {
	if event := FromContext(ctx); event != nil {
		if err != nil {
			event.Error = err.Error()
			event.ErrorKind = kind
			event.ErrorStage = stage
		}
	}
}

func EnrichPanic(ctx context.Context) {
	if event := FromContext(ctx); event != nil {
		event.PanicRecovered = true
	}
}

func EnrichMetadata(ctx context.Context, key string, value interface{}) {
	if event := FromContext(ctx); event != nil {
		event.Metadata[key] = value
	}
}

// Emit outputs the WideEvent as a structured log
func Emit(ctx context.Context) {
	event := FromContext(ctx)
	if event == nil {
		return
	}

	slog.LogAttrs(ctx, event.Level(), "wide_event", event.Attrs()...)
}

// Level is ERROR for failed or panicking requests and INFO otherwise.
func (event *WideEvent) Level() slog.Level {
	if event.Error != "" || event.PanicRecovered {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Attrs lists the populated fields of the event as slog attributes.
func (event *WideEvent) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("trace_id", event.TraceID),
		slog.String("event_type", event.EventType),
		slog.Time("timestamp", event.Timestamp),
	}

	str := func(key, value string) {
		if value != "" {
			attrs = append(attrs, slog.String(key, value))
		}
	}
	num := func(key string, value int64) {
		if value != 0 {
			attrs = append(attrs, slog.Int64(key, value))
		}
	}

	str("http_method", event.HTTPMethod)
	str("http_path", event.HTTPPath)
	num("http_status_code", int64(event.HTTPStatusCode))
	num("http_duration_ms", event.HTTPDurationMs)
	str("user_agent", event.UserAgent)

	str("filename", event.Filename)
	str("file_format", event.FileFormat)
	num("file_bytes", int64(event.FileBytes))
	num("column_count", int64(event.ColumnCount))
	num("input_rows", int64(event.InputRows))

	str("stage", event.Stage)
	num("rows_requested", int64(event.RowsRequested))
	num("rows_generated", int64(event.RowsGenerated))
	str("provider", event.Provider)
	str("model", event.Model)
	str("schema_policy", event.SchemaPolicy)
	num("prompt_chars", int64(event.PromptChars))
	num("completion_ms", event.CompletionMs)
	num("attempts", int64(event.Attempts))
	num("prompt_tokens", int64(event.PromptTokens))
	num("completion_tokens", int64(event.CompletionTokens))

	str("error", event.Error)
	str("error_kind", event.ErrorKind)
	str("error_stage", event.ErrorStage)
	if event.PanicRecovered {
		attrs = append(attrs, slog.Bool("panic_recovered", true))
	}

	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}
	return attrs
}
