package useragent

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a ContextExtractor for the logger.
// Only the primary agent and node id are logged; informational agents are
// caller controlled and can be arbitrarily long.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		ua, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		attrs := []slog.Attr{slog.String("primary", ua.primary.name+"/"+effectiveVersion(ua.primary.version))}
		if ua.nodeID != "" {
			attrs = append(attrs, slog.String("node_id", ua.nodeID))
		}
		return slog.Attr{Key: "user_agent", Value: slog.GroupValue(attrs...)}, true
	}
}
