package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/servicekit/pkg/logger"
)

// LoggerExtractor returns a ContextExtractor for the logger
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
