package agentstats

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/servicekit/pkg/logger"
	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

// Middleware records the primary agent of every request in store. The agent
// is taken from the context set by useragent.Middleware, falling back to the
// raw header. Store failures are logged and never fail the request.
func Middleware(store Store, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ua, ok := useragent.FromContext(ctx)
			if !ok {
				ua = useragent.TryParseRequest(useragent.HTTPHeader(r.Header))
			}
			if err := store.Record(ctx, ua); err != nil {
				log.WarnContext(ctx, "failed to record agent",
					logger.Error(err),
					logger.Agent(useragent.Format(ua)),
					logger.Component("agentstats"),
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}
