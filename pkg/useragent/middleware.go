package useragent

import "net/http"

// Middleware best-effort parses the inbound User-Agent header and stores the
// result in the request context. It never rejects a request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := TryParseRequest(HTTPHeader(r.Header))
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ua)))
	})
}
