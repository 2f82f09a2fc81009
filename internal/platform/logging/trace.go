package logging

import (
	"encoding/hex"
	"log/slog"
	"strings"
)

const traceparentHeader = "traceparent"

// traceContext is the part of a W3C traceparent header the logs care about.
type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

// parseTraceparent parses "{version}-{trace-id}-{parent-id}-{flags}".
// All-zero trace or span ids are invalid per W3C Trace Context.
func parseTraceparent(header string) (traceContext, bool) {
	parts := strings.Split(strings.TrimSpace(header), "-")
	if len(parts) != 4 {
		return traceContext{}, false
	}
	version, traceID, spanID, flags := parts[0], parts[1], parts[2], parts[3]
	if !isHex(version, 2) || !isHex(traceID, 32) || !isHex(spanID, 16) || !isHex(flags, 2) {
		return traceContext{}, false
	}
	if strings.Trim(traceID, "0") == "" || strings.Trim(spanID, "0") == "" {
		return traceContext{}, false
	}

	b, _ := hex.DecodeString(flags)
	return traceContext{
		traceID: strings.ToLower(traceID),
		spanID:  strings.ToLower(spanID),
		sampled: b[0]&0x01 == 0x01,
	}, true
}

func isHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// resource returns the Cloud Trace resource name, or the bare trace id when
// no project is configured.
func (tc traceContext) resource(projectID string) string {
	if projectID == "" {
		return tc.traceID
	}
	return "projects/" + projectID + "/traces/" + tc.traceID
}

// attrs returns the log attributes Cloud Logging uses to correlate entries
// with a trace. Without a project the trace is logged under plain keys.
func (tc traceContext) attrs(projectID string) []slog.Attr {
	if projectID == "" {
		return []slog.Attr{
			slog.String("trace_id", tc.traceID),
			slog.String("span_id", tc.spanID),
		}
	}
	return []slog.Attr{
		slog.String("logging.googleapis.com/trace", tc.resource(projectID)),
		slog.String("logging.googleapis.com/spanId", tc.spanID),
		slog.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
	}
}

// requestLogger derives the per-request logger and the correlation id stored
// in the request context.
func requestLogger(base *slog.Logger, header, projectID, requestID string) (*slog.Logger, string) {
	var (
		attrs       []slog.Attr
		correlation = requestID
	)
	if tc, ok := parseTraceparent(header); ok {
		attrs = tc.attrs(projectID)
		correlation = tc.resource(projectID)
	}
	if requestID != "" {
		attrs = append(attrs, slog.String("requestId", requestID))
	}
	if len(attrs) == 0 {
		return base, correlation
	}

	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return base.With(args...), correlation
}
