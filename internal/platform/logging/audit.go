package logging

import (
	"context"
	"log/slog"
)

// AuditEvent describes a state change worth keeping in the audit trail.
// Actor is whoever triggered the change: a user id when authenticated,
// otherwise the client address.
type AuditEvent struct {
	Action       string
	Actor        string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAuditEvent logs a structured audit event.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit.action", ev.Action),
		slog.String("audit.actor", ev.Actor),
		slog.String("audit.resource_type", ev.ResourceType),
		slog.String("audit.resource_id", ev.ResourceID),
		slog.String("audit.result", ev.Result),
	}
	if len(ev.Details) > 0 {
		attrs = append(attrs, slog.Any("audit.details", ev.Details))
	}
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelInfo, "Audit event", attrs...)
}
