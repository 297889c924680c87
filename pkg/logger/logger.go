package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

const (
	Reset     = "\033[0m"
	Red       = "\033[31m"
	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Magenta   = "\033[35m"
	Cyan      = "\033[36m"
	White     = "\033[37m"
	BoldBlue  = "\033[1;34m"
	BoldWhite = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: Cyan,
	slog.LevelInfo:  Green,
	slog.LevelWarn:  Yellow,
	slog.LevelError: Red,
}

type RequestKey string

const (
	RequestIDKey RequestKey = "requestID"
)

// ColoredHandler renders records as one colored line. Attributes added through
// WithAttrs are kept and printed after the record's own attributes.
type ColoredHandler struct {
	opts  slog.HandlerOptions
	out   io.Writer
	attrs []slog.Attr
	group string
}

func NewColoredHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredHandler {
	h := &ColoredHandler{out: w}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *ColoredHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *ColoredHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs()+1)
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})

	requestID := GetRequestID(ctx)
	for _, a := range attrs {
		if a.Key == "request_id" && a.Value.Kind() == slog.KindString {
			requestID = a.Value.String()
		}
	}

	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = White
	}

	var line strings.Builder
	fmt.Fprintf(&line, "%s%s%s ", Magenta, r.Time.Format("15:04:05.000"), Reset)
	fmt.Fprintf(&line, "%s%-6s%s ", levelColor, strings.ToUpper(r.Level.String()), Reset)
	if requestID != "" {
		fmt.Fprintf(&line, "%s[%s]%s ", BoldBlue, requestID, Reset)
	}
	fmt.Fprintf(&line, "%s%s%s ", BoldWhite, r.Message, Reset)

	for _, a := range attrs {
		if a.Key == "request_id" {
			continue
		}
		val := a.Value.String()
		if a.Value.Kind() == slog.KindString {
			val = fmt.Sprintf("%q", val)
		}
		fmt.Fprintf(&line, "%s%s%s=%s ", Yellow, a.Key, Reset, val)
	}

	_, err := fmt.Fprintln(h.out, strings.TrimRight(line.String(), " "))
	return err
}

func (h *ColoredHandler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	a.Key = h.group + "." + a.Key
	return a
}

func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, h.qualify(a))
	}
	return &next
}

func (h *ColoredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

// Setup installs the colored handler as the default logger. Logs go to stderr
// so stdout stays free for program output. LOG_LEVEL=debug enables debug lines.
func Setup() *ColoredHandler {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}

	handler := NewColoredHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))

	return handler
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// EnsureRequestID returns ctx unchanged when it already carries a request id,
// otherwise a child context with a fresh one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := GetRequestID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return WithRequestID(ctx, id), id
}
